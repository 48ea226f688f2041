package logpoll

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"organizer-console/internal/logging"
)

type scriptedFetcher struct {
	mu      sync.Mutex
	buffers [][]string
	errs    []error
	calls   int
}

func (f *scriptedFetcher) FetchLogs(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	if i >= len(f.buffers) {
		i = len(f.buffers) - 1
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return nil, err
	}
	return f.buffers[i], nil
}

type recordingRenderer struct {
	mu      sync.Mutex
	renders [][]Line
}

func (r *recordingRenderer) RenderLog(lines []Line) {
	r.mu.Lock()
	r.renders = append(r.renders, lines)
	r.mu.Unlock()
}

func (r *recordingRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.renders)
}

func quietLogger() *logging.Logger {
	logger := logging.New(false)
	logger.SetTerminalOutputEnabled(false)
	return logger
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want Class
	}{
		{text: "❌ Failed to move a.txt", want: ClassError},
		{text: "Error reading folder", want: ClassError},
		{text: "⚠️ Skipped locked file", want: ClassWarning},
		{text: "Warning: permission denied", want: ClassWarning},
		{text: "✅ Moved a.txt", want: ClassSuccess},
		{text: "--- Starting Organization (Method: type) ---", want: ClassInfo},
		{text: "❌ Warning and ✅", want: ClassError},
		{text: "plain line", want: ClassNone},
	}
	for _, tt := range tests {
		if got := Classify(tt.text); got != tt.want {
			t.Fatalf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestBuildLines_EmptyShowsPlaceholder(t *testing.T) {
	lines := BuildLines(nil)
	if len(lines) != 1 || lines[0].Text != Placeholder || lines[0].Class != ClassInfo {
		t.Fatalf("BuildLines(nil) = %#v", lines)
	}
}

func TestRefresh_RendersOnlyWhenLengthChanges(t *testing.T) {
	fetcher := &scriptedFetcher{buffers: [][]string{
		{"a"},
		{"b"},
		{"a", "b"},
		{},
	}}
	renderer := &recordingRenderer{}
	p := NewPoller(fetcher, renderer, quietLogger(), Options{})

	want := []bool{true, false, true, true}
	for i, w := range want {
		got, err := p.Refresh(context.Background())
		if err != nil {
			t.Fatalf("refresh %d error = %v", i, err)
		}
		if got != w {
			t.Fatalf("refresh %d rendered = %v, want %v", i, got, w)
		}
	}
	if renderer.count() != 3 || p.Renders() != 3 {
		t.Fatalf("renders = %d/%d, want 3", renderer.count(), p.Renders())
	}
	last := renderer.renders[2]
	if len(last) != 1 || last[0].Text != Placeholder {
		t.Fatalf("empty buffer render = %#v", last)
	}
}

func TestRefresh_SameLengthTwiceRendersOnce(t *testing.T) {
	fetcher := &scriptedFetcher{buffers: [][]string{{"x", "y"}, {"x", "y"}}}
	renderer := &recordingRenderer{}
	p := NewPoller(fetcher, renderer, quietLogger(), Options{})

	_, _ = p.Refresh(context.Background())
	_, _ = p.Refresh(context.Background())
	if renderer.count() != 1 {
		t.Fatalf("renders = %d, want 1", renderer.count())
	}
}

func TestRefresh_InitialEmptyBufferIsUnchanged(t *testing.T) {
	for _, detector := range []ChangeDetector{&LengthDetector{}, &DigestDetector{}} {
		fetcher := &scriptedFetcher{buffers: [][]string{{}}}
		renderer := &recordingRenderer{}
		p := NewPoller(fetcher, renderer, quietLogger(), Options{Detector: detector})
		if rendered, _ := p.Refresh(context.Background()); rendered {
			t.Fatalf("%T rendered an initial empty buffer", detector)
		}
	}
}

func TestRefresh_FailureKeepsState(t *testing.T) {
	fetcher := &scriptedFetcher{
		buffers: [][]string{{"a"}, nil, {"a"}},
		errs:    []error{nil, errors.New("connection refused"), nil},
	}
	renderer := &recordingRenderer{}
	p := NewPoller(fetcher, renderer, quietLogger(), Options{})

	_, _ = p.Refresh(context.Background())
	if _, err := p.Refresh(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	if !p.Failing() {
		t.Fatal("Failing() = false after error")
	}
	rendered, err := p.Refresh(context.Background())
	if err != nil || rendered {
		t.Fatalf("refresh after recovery = %v, %v; want no render", rendered, err)
	}
	if p.Failing() {
		t.Fatal("Failing() = true after recovery")
	}
}

func TestDigestDetector_CatchesSameLengthRewrite(t *testing.T) {
	length := &LengthDetector{}
	digest := &DigestDetector{}
	first := []string{"✅ Moved a.txt"}
	second := []string{"❌ Failed b.txt"}

	if !length.Changed(first) || !digest.Changed(first) {
		t.Fatal("first buffer should be a change")
	}
	if length.Changed(second) {
		t.Fatal("length detector should miss a same-length rewrite")
	}
	if !digest.Changed(second) {
		t.Fatal("digest detector should catch a same-length rewrite")
	}
	if digest.Changed(second) {
		t.Fatal("digest detector reported an unchanged buffer")
	}
	if digest.LastRenderedCount() != 1 || length.LastRenderedCount() != 1 {
		t.Fatal("unexpected rendered counts")
	}
}

func TestNewDetector(t *testing.T) {
	if d, err := NewDetector("length"); err != nil {
		t.Fatalf("NewDetector(length) error = %v", err)
	} else if _, ok := d.(*LengthDetector); !ok {
		t.Fatalf("NewDetector(length) = %T", d)
	}
	if d, err := NewDetector("digest"); err != nil {
		t.Fatalf("NewDetector(digest) error = %v", err)
	} else if _, ok := d.(*DigestDetector); !ok {
		t.Fatalf("NewDetector(digest) = %T", d)
	}
	if _, err := NewDetector("mtime"); err == nil {
		t.Fatal("expected error for unknown detector")
	}
}

func TestRun_TicksUntilCanceled(t *testing.T) {
	fetcher := &scriptedFetcher{buffers: [][]string{{"a"}, {"a", "b"}, {"a", "b", "c"}}}
	renderer := &recordingRenderer{}
	p := NewPoller(fetcher, renderer, quietLogger(), Options{Interval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for renderer.count() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if renderer.count() != 3 {
		t.Fatalf("renders = %d, want 3", renderer.count())
	}
}
