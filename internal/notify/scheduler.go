// Package notify owns the single toast slot of the console.
package notify

import (
	"sync"
	"time"
)

const (
	DefaultShowDelay = 10 * time.Millisecond
	DefaultHideAfter = 3 * time.Second
)

type Severity int

const (
	SeveritySuccess Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "success"
}

// Toast is a snapshot of the slot. Seq increases with every Notify call.
type Toast struct {
	Icon     string
	Message  string
	Severity Severity
	Visible  bool
	Seq      uint64
}

type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. Tests substitute a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type Options struct {
	ShowDelay time.Duration
	HideAfter time.Duration
	Clock     Clock
	OnChange  func(Toast)
}

type Scheduler struct {
	clock     Clock
	showDelay time.Duration
	hideAfter time.Duration
	onChange  func(Toast)

	mu        sync.Mutex
	current   Toast
	showTimer Timer
	hideTimer Timer
}

func NewScheduler(opts Options) *Scheduler {
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	if opts.ShowDelay < 0 {
		opts.ShowDelay = DefaultShowDelay
	}
	if opts.HideAfter <= 0 {
		opts.HideAfter = DefaultHideAfter
	}
	return &Scheduler{
		clock:     opts.Clock,
		showDelay: opts.ShowDelay,
		hideAfter: opts.HideAfter,
		onChange:  opts.OnChange,
	}
}

// Notify replaces the slot content at once and schedules display after the
// show delay. Timers of the previous toast are stopped; any that already
// fired are ignored by the sequence check.
func (s *Scheduler) Notify(icon string, message string, isError bool) {
	severity := SeveritySuccess
	if isError {
		severity = SeverityError
	}

	s.mu.Lock()
	stopTimer(s.showTimer)
	stopTimer(s.hideTimer)
	s.hideTimer = nil
	seq := s.current.Seq + 1
	s.current = Toast{
		Icon:     icon,
		Message:  message,
		Severity: severity,
		Seq:      seq,
	}
	snapshot := s.current
	s.showTimer = s.clock.AfterFunc(s.showDelay, func() { s.show(seq) })
	s.mu.Unlock()

	s.emit(snapshot)
}

// Dismiss hides the current toast immediately.
func (s *Scheduler) Dismiss() {
	s.mu.Lock()
	stopTimer(s.showTimer)
	stopTimer(s.hideTimer)
	s.showTimer = nil
	s.hideTimer = nil
	if !s.current.Visible {
		s.mu.Unlock()
		return
	}
	s.current.Visible = false
	snapshot := s.current
	s.mu.Unlock()

	s.emit(snapshot)
}

func (s *Scheduler) Current() Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Scheduler) show(seq uint64) {
	s.mu.Lock()
	if s.current.Seq != seq {
		s.mu.Unlock()
		return
	}
	s.showTimer = nil
	s.current.Visible = true
	snapshot := s.current
	s.hideTimer = s.clock.AfterFunc(s.hideAfter, func() { s.hide(seq) })
	s.mu.Unlock()

	s.emit(snapshot)
}

func (s *Scheduler) hide(seq uint64) {
	s.mu.Lock()
	if s.current.Seq != seq || !s.current.Visible {
		s.mu.Unlock()
		return
	}
	s.hideTimer = nil
	s.current.Visible = false
	snapshot := s.current
	s.mu.Unlock()

	s.emit(snapshot)
}

func (s *Scheduler) emit(toast Toast) {
	if s.onChange != nil {
		s.onChange(toast)
	}
}

func stopTimer(t Timer) {
	if t != nil {
		t.Stop()
	}
}
