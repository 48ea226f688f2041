package logging

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// historyLimit bounds the events kept for late subscribers.
const historyLimit = 256

// Logger is the developer console of the client. Events go to the terminal
// (unless a full-screen UI owns it), the file sink and every subscriber.
// Loggers derived with With share one console and add their own fields.
type Logger struct {
	console *console
	fields  map[string]any
}

// console is the state shared by a root Logger and its children.
type console struct {
	debugEnabled atomic.Bool
	terminalOut  atomic.Bool
	pretty       bool
	out          io.Writer

	mu          sync.RWMutex
	sink        *fileSink
	nextID      int
	subscribers map[int]func(Event)
	history     []Event
}

type Event struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Fields  map[string]any
}

func New(debug bool) *Logger {
	c := &console{
		pretty:      shouldPrettyPrint(),
		out:         os.Stderr,
		subscribers: map[int]func(Event){},
	}
	c.debugEnabled.Store(debug)
	c.terminalOut.Store(true)
	return &Logger{console: c}
}

func Field(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

// With returns a logger that adds fields to every event. Call-site fields
// with the same key win.
func (l *Logger) With(fields ...slog.Attr) *Logger {
	if l == nil {
		return nil
	}
	merged := maps.Clone(l.fields)
	if extra := attrsToMap(fields); len(extra) > 0 {
		if merged == nil {
			merged = make(map[string]any, len(extra))
		}
		maps.Copy(merged, extra)
	}
	return &Logger{console: l.console, fields: merged}
}

func (l *Logger) SetDebugEnabled(enabled bool) {
	if l == nil {
		return
	}
	l.console.debugEnabled.Store(enabled)
}

func (l *Logger) DebugEnabled() bool {
	if l == nil {
		return false
	}
	return l.console.debugEnabled.Load()
}

// SetTerminalOutputEnabled controls stderr output. The TUI turns it off while
// it owns the alternate screen.
func (l *Logger) SetTerminalOutputEnabled(enabled bool) {
	if l == nil {
		return
	}
	l.console.terminalOut.Store(enabled)
}

func (l *Logger) EnableFilePersistence(maxBytes int64) error {
	if l == nil {
		return nil
	}
	sink, err := newFileSink(maxBytes)
	if err != nil {
		return err
	}
	l.console.swapSink(sink)
	return nil
}

func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	return l.console.swapSink(nil)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.Debug(fmt.Sprintf(format, args...))
}

// Debug events always reach the file sink. Subscribers and the terminal only
// see them while debug output is enabled.
func (l *Logger) Debug(msg string, fields ...slog.Attr) {
	if l == nil {
		return
	}
	l.log(slog.LevelDebug, msg, fields, l.console.debugEnabled.Load())
}

func (l *Logger) Info(msg string, fields ...slog.Attr) {
	if l == nil {
		return
	}
	l.log(slog.LevelInfo, msg, fields, true)
}

func (l *Logger) Warn(msg string, fields ...slog.Attr) {
	if l == nil {
		return
	}
	l.log(slog.LevelWarn, msg, fields, true)
}

func (l *Logger) Error(msg string, fields ...slog.Attr) {
	if l == nil {
		return
	}
	l.log(slog.LevelError, msg, fields, true)
}

// Subscribe registers fn for every published event and returns its
// unsubscribe func.
func (l *Logger) Subscribe(fn func(Event)) func() {
	return l.subscribe("Subscribe", fn, false)
}

// SubscribeWithHistory is Subscribe that first replays the recent published
// events, so a console opened after startup still shows how it got there.
func (l *Logger) SubscribeWithHistory(fn func(Event)) func() {
	return l.subscribe("SubscribeWithHistory", fn, true)
}

func (l *Logger) subscribe(name string, fn func(Event), replay bool) func() {
	if l == nil {
		panic("logging.Logger." + name + ": logger must not be nil")
	}
	if fn == nil {
		panic("logging.Logger." + name + ": callback must not be nil")
	}
	c := l.console
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	var backlog []Event
	if replay {
		backlog = append(backlog, c.history...)
	}
	c.subscribers[id] = fn
	c.mu.Unlock()

	for _, event := range backlog {
		fn(event)
	}
	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

func (l *Logger) log(level slog.Level, msg string, attrs []slog.Attr, publish bool) {
	fields := attrsToMap(attrs)
	if len(l.fields) > 0 {
		merged := maps.Clone(l.fields)
		maps.Copy(merged, fields)
		fields = merged
	}
	l.console.emit(Event{
		Time:    time.Now(),
		Level:   level,
		Message: msg,
		Fields:  fields,
	}, publish)
}

func (c *console) swapSink(next *fileSink) error {
	c.mu.Lock()
	previous := c.sink
	c.sink = next
	c.mu.Unlock()
	if previous == nil {
		return nil
	}
	return previous.Close()
}

func (c *console) emit(event Event, publish bool) {
	c.mu.RLock()
	sink := c.sink
	c.mu.RUnlock()
	if sink != nil {
		_ = sink.WriteEvent(event)
	}
	if !publish {
		return
	}
	if c.terminalOut.Load() {
		line := FormatEventLine(event)
		if c.pretty {
			line = FormatEventANSI(event)
		}
		_, _ = io.WriteString(c.out, line)
	}

	c.mu.Lock()
	if len(c.history) == historyLimit {
		copy(c.history, c.history[1:])
		c.history = c.history[:historyLimit-1]
	}
	c.history = append(c.history, event)
	callbacks := make([]func(Event), 0, len(c.subscribers))
	for _, cb := range c.subscribers {
		callbacks = append(callbacks, cb)
	}
	c.mu.Unlock()

	for _, cb := range callbacks {
		cb(event)
	}
}
