// Package logpoll mirrors the backend's append-only log buffer.
package logpoll

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"organizer-console/internal/logging"
)

const DefaultInterval = time.Second

type Fetcher interface {
	FetchLogs(ctx context.Context) ([]string, error)
}

// Renderer replaces the displayed log with lines and scrolls to the end.
type Renderer interface {
	RenderLog(lines []Line)
}

type Options struct {
	Interval time.Duration
	Timeout  time.Duration
	Detector ChangeDetector
}

type Poller struct {
	fetcher  Fetcher
	renderer Renderer
	logger   *logging.Logger
	interval time.Duration
	timeout  time.Duration

	mu       sync.Mutex
	detector ChangeDetector

	renders atomic.Int64
	failing atomic.Bool
}

func NewPoller(fetcher Fetcher, renderer Renderer, logger *logging.Logger, opts Options) *Poller {
	if logger == nil {
		panic("logpoll.NewPoller: logger must not be nil")
	}
	if fetcher == nil || renderer == nil {
		panic("logpoll.NewPoller: fetcher and renderer must not be nil")
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Detector == nil {
		opts.Detector = &LengthDetector{}
	}
	return &Poller{
		fetcher:  fetcher,
		renderer: renderer,
		logger:   logger,
		interval: opts.Interval,
		timeout:  opts.Timeout,
		detector: opts.Detector,
	}
}

// Refresh fetches the full buffer once and re-renders when the detector
// reports a change. Fetch failures are logged and leave the display as is.
func (p *Poller) Refresh(ctx context.Context) (bool, error) {
	fetchCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	buffer, err := p.fetcher.FetchLogs(fetchCtx)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if p.failing.CompareAndSwap(false, true) {
			p.logger.Warn("log poll failed", logging.Field("error", err))
		} else {
			p.logger.Debug("log poll still failing", logging.Field("error", err))
		}
		return false, err
	}
	if p.failing.CompareAndSwap(true, false) {
		p.logger.Info("log poll recovered")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.detector.Changed(buffer) {
		return false, nil
	}
	p.renderer.RenderLog(BuildLines(buffer))
	p.renders.Add(1)
	return true, nil
}

// Run refreshes immediately and then on every interval until ctx ends.
// Errors never stop the loop.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Debug("log poller started", logging.Field("interval", p.interval))
	_, _ = p.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("log poller stopped", logging.Field("error", ctx.Err()))
			return nil
		case <-ticker.C:
			_, _ = p.Refresh(ctx)
		}
	}
}

func (p *Poller) Renders() int64 {
	return p.renders.Load()
}

// Failing reports whether the most recent fetch failed.
func (p *Poller) Failing() bool {
	return p.failing.Load()
}
