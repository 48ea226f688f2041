// Package button toggles action controls between idle and busy.
package button

import (
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/spinner"
)

// BusyContent replaces a control's label while its request is in flight.
const BusyContent = "⏳ Working..."

// Control is the state of one clickable control.
type Control struct {
	ID string

	mu        sync.Mutex
	content   string
	savedIdle string
	disabled  bool
	busy      bool
	claimed   bool
}

func NewControl(id string, content string) *Control {
	return &Control{ID: id, content: content}
}

// Capture records the current idle content for a later SetIdle. While the
// control is busy the previously saved content is returned unchanged.
func (c *Control) Capture() string {
	if c == nil {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return c.savedIdle
	}
	c.savedIdle = c.content
	return c.savedIdle
}

func (c *Control) Content() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content
}

func (c *Control) Disabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disabled
}

func (c *Control) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// TryClaim reserves an enabled control for one click. It fails while the
// control is disabled or another click still holds it, so two clicks queued
// before the control turns busy cannot both fire.
func (c *Control) TryClaim() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled || c.claimed {
		return false
	}
	c.claimed = true
	return true
}

// Release ends the claim taken by TryClaim.
func (c *Control) Release() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.claimed = false
	c.mu.Unlock()
}

func (c *Control) enterBusy() {
	c.mu.Lock()
	c.busy = true
	c.disabled = true
	c.content = BusyContent
	c.mu.Unlock()
}

func (c *Control) leaveBusy(original string) {
	c.mu.Lock()
	c.busy = false
	c.disabled = false
	c.content = original
	c.mu.Unlock()
}

// Controller drives busy/idle transitions and owns the spinner animation
// shared by every busy control.
type Controller struct {
	once      sync.Once
	installs  atomic.Int32
	animation spinner.Spinner
	onChange  func(*Control)
}

func NewController(onChange func(*Control)) *Controller {
	return &Controller{onChange: onChange}
}

func (b *Controller) SetBusy(c *Control) {
	if c == nil {
		return
	}
	b.once.Do(func() {
		b.animation = spinner.MiniDot
		b.installs.Add(1)
	})
	c.enterBusy()
	b.changed(c)
}

func (b *Controller) SetIdle(c *Control, original string) {
	if c == nil {
		return
	}
	c.leaveBusy(original)
	b.changed(c)
}

// Animation returns the spinner once any control has been busy.
func (b *Controller) Animation() (spinner.Spinner, bool) {
	if b.installs.Load() == 0 {
		return spinner.Spinner{}, false
	}
	return b.animation, true
}

func (b *Controller) installCount() int {
	return int(b.installs.Load())
}

func (b *Controller) changed(c *Control) {
	if b.onChange != nil {
		b.onChange(c)
	}
}
