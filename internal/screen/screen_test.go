package screen

import (
	"testing"

	"organizer-console/internal/client"
	"organizer-console/internal/logpoll"
	"organizer-console/internal/storagegauge"
)

type changeRecorder struct {
	parts []Part
}

func (r *changeRecorder) hook() ChangeFunc {
	return func(p Part) { r.parts = append(r.parts, p) }
}

func TestField_SetValueAndFocus(t *testing.T) {
	rec := &changeRecorder{}
	f := NewField(PartPath, "", rec.hook())

	f.SetValue("/tmp")
	f.SetValue("/tmp")
	if f.Value() != "/tmp" || len(rec.parts) != 1 {
		t.Fatalf("value=%q changes=%v", f.Value(), rec.parts)
	}
	if f.TakeFocusRequest() {
		t.Fatal("focus request without Focus")
	}
	f.Focus()
	if !f.TakeFocusRequest() || f.TakeFocusRequest() {
		t.Fatal("focus request must be reported exactly once")
	}
}

func TestRadioGroup(t *testing.T) {
	g := NewRadioGroup("method", []string{"type", "date"}, "type", nil)
	if v, ok := g.Checked(); !ok || v != "type" {
		t.Fatalf("Checked() = %q, %v", v, ok)
	}
	if err := g.Select("size"); err == nil {
		t.Fatal("expected error for unknown option")
	}
	if err := g.Select("date"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if v, _ := g.Checked(); v != "date" {
		t.Fatalf("Checked() = %q", v)
	}
	g.Clear()
	if _, ok := g.Checked(); ok {
		t.Fatal("Checked() ok after Clear")
	}
	if _, ok := NewRadioGroup("m", []string{"a"}, "zzz", nil).Checked(); ok {
		t.Fatal("invalid initial option must leave the group unchecked")
	}
}

func TestLogArea_StartsWithPlaceholder(t *testing.T) {
	rec := &changeRecorder{}
	a := NewLogArea(rec.hook())
	lines := a.Lines()
	if len(lines) != 1 || lines[0].Text != logpoll.Placeholder {
		t.Fatalf("initial lines = %#v", lines)
	}
	a.RenderLog([]logpoll.Line{{Text: "✅ ok", Class: logpoll.ClassSuccess}})
	if a.Version() != 1 || !a.ScrolledToEnd() || len(rec.parts) != 1 || rec.parts[0] != PartLog {
		t.Fatalf("after render: version=%d parts=%v", a.Version(), rec.parts)
	}
}

func TestGauge_InitialStateIsEmpty(t *testing.T) {
	g := NewGauge(nil)
	st := g.State()
	if st.HasReading || st.Label != "" || st.Reading.Offset != storagegauge.Circumference {
		t.Fatalf("initial state = %#v", st)
	}
	g.SetTotalLabel("Total: 10 GB")
	g.SetReading(storagegauge.NewReading(50))
	st = g.State()
	if !st.HasReading || st.Reading.Offset != 63 || st.Label != "Total: 10 GB" {
		t.Fatalf("state = %#v", st)
	}
}

func TestResultsTable_PlaceholderAndRowsExclusive(t *testing.T) {
	r := NewResultsTable(nil)
	r.Show()
	r.SetRows([]client.SearchResult{{Name: "a"}})
	r.SetPlaceholder("Error: x", true)
	st := r.State()
	if !st.Visible || len(st.Rows) != 0 || st.Placeholder != "Error: x" || !st.PlaceholderError {
		t.Fatalf("state = %#v", st)
	}
	r.SetRows([]client.SearchResult{{Name: "b"}})
	st = r.State()
	if st.Placeholder != "" || len(st.Rows) != 1 {
		t.Fatalf("state = %#v", st)
	}
}

func TestFolderStats(t *testing.T) {
	rec := &changeRecorder{}
	f := NewFolderStats(rec.hook())
	f.Set("/data", client.FolderStats{Success: true, Size: "1.5 GB", Files: 10, Folders: 2})
	st := f.State()
	if !st.Present || st.Stats.Files != 10 || st.Path != "/data" || rec.parts[0] != PartStats {
		t.Fatalf("state = %#v", st)
	}
}
