package logpoll

import (
	"crypto/sha256"
	"fmt"
)

// ChangeDetector decides whether a fetched buffer differs from what was last
// rendered. Changed records buffer as rendered when it reports true.
type ChangeDetector interface {
	Changed(buffer []string) bool
}

// LengthDetector compares buffer lengths only. A buffer that is replaced by
// different content of the same length is not detected.
type LengthDetector struct {
	lastRenderedCount int
}

func (d *LengthDetector) Changed(buffer []string) bool {
	if len(buffer) == d.lastRenderedCount {
		return false
	}
	d.lastRenderedCount = len(buffer)
	return true
}

func (d *LengthDetector) LastRenderedCount() int {
	return d.lastRenderedCount
}

// DigestDetector also hashes the content, so rotated or rewritten buffers of
// equal length re-render.
type DigestDetector struct {
	lastRenderedCount int
	digest            [sha256.Size]byte
	seeded            bool
}

func (d *DigestDetector) Changed(buffer []string) bool {
	sum := digestOf(buffer)
	if !d.seeded {
		d.digest = digestOf(nil)
		d.seeded = true
	}
	if len(buffer) == d.lastRenderedCount && sum == d.digest {
		return false
	}
	d.lastRenderedCount = len(buffer)
	d.digest = sum
	return true
}

func (d *DigestDetector) LastRenderedCount() int {
	return d.lastRenderedCount
}

func digestOf(buffer []string) [sha256.Size]byte {
	h := sha256.New()
	for _, line := range buffer {
		_, _ = h.Write([]byte(line))
		_, _ = h.Write([]byte{0})
	}
	var out [sha256.Size]byte
	copy(out[:], h.Sum(nil))
	return out
}

// NewDetector maps the --log-change-detect value to a detector.
func NewDetector(kind string) (ChangeDetector, error) {
	switch kind {
	case "", "length":
		return &LengthDetector{}, nil
	case "digest":
		return &DigestDetector{}, nil
	default:
		return nil, fmt.Errorf("unknown log change detector %q", kind)
	}
}
