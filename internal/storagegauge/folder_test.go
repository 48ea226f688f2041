package storagegauge

import (
	"context"
	"errors"
	"testing"

	"organizer-console/internal/client"
)

type stubFolderFetcher struct {
	stats client.FolderStats
	err   error
	paths []string
}

func (f *stubFolderFetcher) FetchFolderStats(_ context.Context, path string) (client.FolderStats, error) {
	f.paths = append(f.paths, path)
	return f.stats, f.err
}

type staticPath string

func (p staticPath) Value() string { return string(p) }

type recordingSink struct {
	path  string
	stats client.FolderStats
	calls int
}

func (s *recordingSink) Set(path string, stats client.FolderStats) {
	s.path = path
	s.stats = stats
	s.calls++
}

type countingNotifier struct {
	messages []string
}

func (n *countingNotifier) Notify(_ string, message string, _ bool) {
	n.messages = append(n.messages, message)
}

func TestFolderStatsLoader(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		stats     client.FolderStats
		err       error
		want      bool
		wantSet   int
		wantToast int
	}{
		{name: "success", path: " /data ", stats: client.FolderStats{Success: true, Size: "2.0 GB", Files: 40, Folders: 3}, want: true, wantSet: 1},
		{name: "degraded", path: "/missing", stats: client.FolderStats{Size: "Unknown"}, want: false, wantSet: 1},
		{name: "transport", path: "/data", err: errors.New("connection refused"), want: false},
		{name: "no path", path: "  ", want: false, wantToast: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &stubFolderFetcher{stats: tt.stats, err: tt.err}
			sink := &recordingSink{}
			notifier := &countingNotifier{}
			loader := NewFolderStatsLoader(fetcher, staticPath(tt.path), sink, notifier, quietLogger(), 0)

			if got := loader.Load(context.Background()); got != tt.want {
				t.Fatalf("Load() = %v, want %v", got, tt.want)
			}
			if sink.calls != tt.wantSet || len(notifier.messages) != tt.wantToast {
				t.Fatalf("sets=%d toasts=%d", sink.calls, len(notifier.messages))
			}
			if tt.wantSet == 1 && (sink.path != "/data" && sink.path != "/missing" || sink.stats != tt.stats) {
				t.Fatalf("sink = %#v", sink)
			}
			if tt.wantToast == 0 && len(fetcher.paths) != 1 {
				t.Fatalf("fetch calls = %d", len(fetcher.paths))
			}
		})
	}
}
