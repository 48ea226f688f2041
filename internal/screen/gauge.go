package screen

import (
	"sync"

	"organizer-console/internal/storagegauge"
)

type GaugeState struct {
	Label      string
	Reading    storagegauge.Reading
	HasReading bool
}

// Gauge starts empty: full offset, no label.
type Gauge struct {
	onChange ChangeFunc

	mu    sync.Mutex
	state GaugeState
}

func NewGauge(onChange ChangeFunc) *Gauge {
	return &Gauge{
		onChange: onChange,
		state: GaugeState{
			Reading: storagegauge.Reading{Offset: storagegauge.Circumference},
		},
	}
}

func (g *Gauge) SetTotalLabel(label string) {
	g.mu.Lock()
	g.state.Label = label
	g.mu.Unlock()
	g.onChange.fire(PartGauge)
}

func (g *Gauge) SetReading(reading storagegauge.Reading) {
	g.mu.Lock()
	g.state.Reading = reading
	g.state.HasReading = true
	g.mu.Unlock()
	g.onChange.fire(PartGauge)
}

func (g *Gauge) State() GaugeState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}
