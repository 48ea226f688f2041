// Package screen holds the state of every on-screen widget. Models are safe
// for concurrent use and call their change hook after each mutation, outside
// their lock.
package screen

import (
	"fmt"
	"slices"
	"sync"
)

type Part string

const (
	PartPath    Part = "path"
	PartQuery   Part = "query"
	PartMethod  Part = "method"
	PartLog     Part = "log"
	PartGauge   Part = "gauge"
	PartResults Part = "results"
	PartStats   Part = "stats"

	// Parts owned outside this package that still trigger a redraw.
	PartToast    Part = "toast"
	PartControls Part = "controls"
)

// ChangeFunc is told which part changed.
type ChangeFunc func(Part)

func (f ChangeFunc) fire(p Part) {
	if f != nil {
		f(p)
	}
}

// Field is a single-line text input.
type Field struct {
	part     Part
	onChange ChangeFunc

	mu          sync.Mutex
	value       string
	focusCount  int
	focusSerial int
}

func NewField(part Part, value string, onChange ChangeFunc) *Field {
	return &Field{part: part, value: value, onChange: onChange}
}

func (f *Field) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

func (f *Field) SetValue(value string) {
	f.mu.Lock()
	if f.value == value {
		f.mu.Unlock()
		return
	}
	f.value = value
	f.mu.Unlock()
	f.onChange.fire(f.part)
}

// Focus asks the frontend to move keyboard focus to this field.
func (f *Field) Focus() {
	f.mu.Lock()
	f.focusCount++
	f.mu.Unlock()
	f.onChange.fire(f.part)
}

// TakeFocusRequest reports whether Focus was called since the last call.
func (f *Field) TakeFocusRequest() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.focusCount == f.focusSerial {
		return false
	}
	f.focusSerial = f.focusCount
	return true
}

// RadioGroup is a named set of mutually exclusive options.
type RadioGroup struct {
	Name     string
	options  []string
	onChange ChangeFunc

	mu      sync.Mutex
	checked string
}

func NewRadioGroup(name string, options []string, checked string, onChange ChangeFunc) *RadioGroup {
	g := &RadioGroup{Name: name, options: slices.Clone(options), onChange: onChange}
	if slices.Contains(g.options, checked) {
		g.checked = checked
	}
	return g
}

func (g *RadioGroup) Options() []string {
	return slices.Clone(g.options)
}

func (g *RadioGroup) Checked() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.checked, g.checked != ""
}

func (g *RadioGroup) Select(value string) error {
	if !slices.Contains(g.options, value) {
		return fmt.Errorf("%s: unknown option %q", g.Name, value)
	}
	g.mu.Lock()
	g.checked = value
	g.mu.Unlock()
	g.onChange.fire(PartMethod)
	return nil
}

func (g *RadioGroup) Clear() {
	g.mu.Lock()
	g.checked = ""
	g.mu.Unlock()
	g.onChange.fire(PartMethod)
}
