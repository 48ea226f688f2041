package storagegauge

import (
	"context"
	"strings"
	"time"

	"organizer-console/internal/client"
	"organizer-console/internal/logging"
)

type FolderFetcher interface {
	FetchFolderStats(ctx context.Context, path string) (client.FolderStats, error)
}

type PathSource interface {
	Value() string
}

type FolderSink interface {
	Set(path string, stats client.FolderStats)
}

type Notifier interface {
	Notify(icon string, message string, isError bool)
}

// FolderStatsLoader reports size and entry counts of the selected directory.
type FolderStatsLoader struct {
	fetcher  FolderFetcher
	path     PathSource
	sink     FolderSink
	notifier Notifier
	logger   *logging.Logger
	timeout  time.Duration
}

func NewFolderStatsLoader(fetcher FolderFetcher, path PathSource, sink FolderSink, notifier Notifier, logger *logging.Logger, timeout time.Duration) *FolderStatsLoader {
	if logger == nil {
		panic("storagegauge.NewFolderStatsLoader: logger must not be nil")
	}
	if fetcher == nil || path == nil || sink == nil || notifier == nil {
		panic("storagegauge.NewFolderStatsLoader: missing dependency")
	}
	return &FolderStatsLoader{fetcher: fetcher, path: path, sink: sink, notifier: notifier, logger: logger, timeout: timeout}
}

// Load needs a path; without one the operator is told to enter it. A
// success=false answer is shown as sent since it carries placeholder values.
func (l *FolderStatsLoader) Load(ctx context.Context) bool {
	path := strings.TrimSpace(l.path.Value())
	if path == "" {
		l.notifier.Notify("⚠️", "Please paste an absolute directory path first!", true)
		return false
	}

	fetchCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	stats, err := l.fetcher.FetchFolderStats(fetchCtx, path)
	if err != nil {
		l.logger.Warn("folder stats fetch failed", logging.Field("path", path), logging.Field("error", err))
		return false
	}
	l.sink.Set(path, stats)
	l.logger.Debug("folder stats loaded",
		logging.Field("path", path),
		logging.Field("size", stats.Size),
		logging.Field("files", stats.Files),
		logging.Field("folders", stats.Folders),
	)
	return stats.Success
}
