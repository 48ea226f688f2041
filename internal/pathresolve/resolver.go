// Package pathresolve turns picker selections and pasted text into the target
// directory string. It never touches the file system; the backend decides
// whether a path is valid.
package pathresolve

import (
	"strings"
	"sync"

	"organizer-console/internal/logging"
)

const (
	SelectedMessage = "Folder selected successfully!"
	NoPathMessage   = "The picker did not expose an absolute path. Please paste the path directly."
	selectedIcon    = "📁"
	manualEntryIcon = "⚠️"
)

// Entry is one item of a picker selection. Path is empty when the picker
// could not expose an absolute location.
type Entry struct {
	Name string
	Path string
}

// Selection is the picker's current set of chosen entries.
type Selection struct {
	mu      sync.Mutex
	entries []Entry
}

func NewSelection(entries ...Entry) *Selection {
	return &Selection{entries: append([]Entry(nil), entries...)}
}

func (s *Selection) First() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[0], true
}

func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear empties the selection so choosing the same entry again is reported
// as a fresh change.
func (s *Selection) Clear() {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
}

type Field interface {
	SetValue(value string)
}

type Notifier interface {
	Notify(icon string, message string, isError bool)
}

type Resolver struct {
	field    Field
	notifier Notifier
	logger   *logging.Logger
}

func NewResolver(field Field, notifier Notifier, logger *logging.Logger) *Resolver {
	if logger == nil {
		panic("pathresolve.NewResolver: logger must not be nil")
	}
	if field == nil || notifier == nil {
		panic("pathresolve.NewResolver: field and notifier must not be nil")
	}
	return &Resolver{field: field, notifier: notifier, logger: logger}
}

// HandlePickerChange writes the directory of the first selected entry into
// the path field. It reports the directory and whether the field was written.
// The selection is always cleared afterwards.
func (r *Resolver) HandlePickerChange(sel *Selection) (string, bool) {
	if sel == nil {
		return "", false
	}
	defer sel.Clear()

	first, ok := sel.First()
	if !ok {
		return "", false
	}
	if first.Path == "" {
		r.logger.Debug("picker entry has no absolute path", logging.Field("name", first.Name))
		r.notifier.Notify(manualEntryIcon, NoPathMessage, true)
		return "", false
	}

	dir := DirectoryOf(first.Path)
	r.field.SetValue(dir)
	r.logger.Debug("picker selection resolved", logging.Field("entry", first.Path), logging.Field("directory", dir))
	r.notifier.Notify(selectedIcon, SelectedMessage, false)
	return dir, true
}

// ApplyBrowsed writes a directory chosen through the backend's native dialog.
func (r *Resolver) ApplyBrowsed(path string) bool {
	path = strings.TrimSpace(path)
	if path == "" {
		return false
	}
	r.field.SetValue(path)
	r.notifier.Notify(selectedIcon, SelectedMessage, false)
	return true
}

// Manual normalizes pasted text.
func Manual(text string) string {
	return strings.TrimSpace(text)
}

// DirectoryOf strips the last component of path. Backslash is used as the
// separator when present anywhere in the string, slash otherwise. A path
// without a separator yields "".
func DirectoryOf(path string) string {
	sep := "/"
	if strings.Contains(path, `\`) {
		sep = `\`
	}
	idx := strings.LastIndex(path, sep)
	if idx < 0 {
		return ""
	}
	return path[:idx]
}
