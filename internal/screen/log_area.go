package screen

import (
	"slices"
	"sync"

	"organizer-console/internal/logpoll"
)

// LogArea is the backend log console. It starts with the ready placeholder.
type LogArea struct {
	onChange ChangeFunc

	mu       sync.Mutex
	lines    []logpoll.Line
	version  int
	scrolled int
}

func NewLogArea(onChange ChangeFunc) *LogArea {
	return &LogArea{
		onChange: onChange,
		lines:    logpoll.BuildLines(nil),
	}
}

// RenderLog replaces the content and scrolls to the last line.
func (a *LogArea) RenderLog(lines []logpoll.Line) {
	a.mu.Lock()
	a.lines = slices.Clone(lines)
	a.version++
	a.scrolled = a.version
	a.mu.Unlock()
	a.onChange.fire(PartLog)
}

func (a *LogArea) Lines() []logpoll.Line {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.lines)
}

// Version increases with every render.
func (a *LogArea) Version() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.version
}

// ScrolledToEnd reports whether the latest render asked for bottom scroll.
func (a *LogArea) ScrolledToEnd() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.scrolled == a.version
}
