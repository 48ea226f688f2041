// Package storagegauge loads the disk usage snapshot shown at startup.
package storagegauge

import (
	"context"
	"strconv"
	"time"

	"organizer-console/internal/client"
	"organizer-console/internal/logging"
	"organizer-console/internal/runctx"
)

// Circumference is the stroke length of the full gauge arc.
const Circumference = 126.0

const DefaultDelay = 300 * time.Millisecond

const (
	ColorAlert   = "#ef4444"
	ColorWarning = "#f59e0b"
	ColorSafe    = "#10b981"
)

// StrokeOffset is the dash offset for usedPercent: the full circumference when
// empty, zero when full.
func StrokeOffset(usedPercent float64) float64 {
	return Circumference - (usedPercent/100)*Circumference
}

func StrokeColor(usedPercent float64) string {
	switch {
	case usedPercent > 90:
		return ColorAlert
	case usedPercent > 75:
		return ColorWarning
	default:
		return ColorSafe
	}
}

// Reading is the animated part of the gauge.
type Reading struct {
	UsedPercent float64
	PercentText string
	Offset      float64
	Color       string
}

func NewReading(usedPercent float64) Reading {
	return Reading{
		UsedPercent: usedPercent,
		PercentText: FormatNumber(usedPercent) + "%",
		Offset:      StrokeOffset(usedPercent),
		Color:       StrokeColor(usedPercent),
	}
}

// FormatNumber prints a backend number the way it was sent: 476.3 stays
// 476.3 and 50 stays 50.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func TotalLabel(totalGB float64) string {
	return "Total: " + FormatNumber(totalGB) + " GB"
}

type Fetcher interface {
	FetchSystemStorage(ctx context.Context) (client.StorageSnapshot, error)
}

type Gauge interface {
	SetTotalLabel(label string)
	SetReading(reading Reading)
}

type Loader struct {
	fetcher Fetcher
	gauge   Gauge
	logger  *logging.Logger
	delay   time.Duration
	timeout time.Duration
}

func NewLoader(fetcher Fetcher, gauge Gauge, logger *logging.Logger, delay time.Duration, timeout time.Duration) *Loader {
	if logger == nil {
		panic("storagegauge.NewLoader: logger must not be nil")
	}
	if fetcher == nil || gauge == nil {
		panic("storagegauge.NewLoader: fetcher and gauge must not be nil")
	}
	if delay < 0 {
		delay = DefaultDelay
	}
	return &Loader{fetcher: fetcher, gauge: gauge, logger: logger, delay: delay, timeout: timeout}
}

// Load fetches the snapshot once. The total label is written at once and the
// reading after the animation delay. Failures are only logged and leave the
// gauge empty.
func (l *Loader) Load(ctx context.Context) bool {
	fetchCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	snap, err := l.fetcher.FetchSystemStorage(fetchCtx)
	if err != nil {
		l.logger.Warn("storage fetch failed", logging.Field("error", err))
		return false
	}
	l.gauge.SetTotalLabel(TotalLabel(snap.TotalGB))

	if !runctx.SleepOrDone(ctx, l.delay) {
		return false
	}
	reading := NewReading(snap.UsedPercent)
	l.gauge.SetReading(reading)
	l.logger.Debug("storage gauge updated",
		logging.Field("used_percent", snap.UsedPercent),
		logging.Field("offset", reading.Offset),
		logging.Field("color", reading.Color),
	)
	return true
}
