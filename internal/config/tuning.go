package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultSearchCap = 1000

// Tuning holds the timing constants of the console. Every field can be
// overridden from a YAML profile; durations use Go syntax ("750ms", "2s").
type Tuning struct {
	PollInterval   time.Duration `yaml:"poll_interval"`
	PollTimeout    time.Duration `yaml:"poll_timeout"`
	ActionTimeout  time.Duration `yaml:"action_timeout"`
	ToastShowDelay time.Duration `yaml:"toast_show_delay"`
	ToastDuration  time.Duration `yaml:"toast_duration"`
	GaugeDelay     time.Duration `yaml:"gauge_delay"`
	ReadyTimeout   time.Duration `yaml:"ready_timeout"`
	SearchCap      int           `yaml:"search_cap"`
}

func DefaultTuning() Tuning {
	return Tuning{
		PollInterval:   time.Second,
		PollTimeout:    10 * time.Second,
		ToastShowDelay: 10 * time.Millisecond,
		ToastDuration:  3 * time.Second,
		GaugeDelay:     300 * time.Millisecond,
		ReadyTimeout:   30 * time.Second,
		SearchCap:      DefaultSearchCap,
	}
}

// LoadTuning reads path over the defaults. An empty path yields the defaults.
func LoadTuning(path string) (Tuning, error) {
	tuning := DefaultTuning()
	path = strings.TrimSpace(path)
	if path == "" {
		return tuning, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, err
	}
	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return Tuning{}, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := tuning.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("tuning %s: %w", path, err)
	}
	return tuning, nil
}

// ApplyOptions lets command-line values win over the profile.
func (t Tuning) ApplyOptions(opts Options) Tuning {
	if opts.SearchCap > 0 {
		t.SearchCap = opts.SearchCap
	}
	return t
}

func (t Tuning) Validate() error {
	if t.PollInterval <= 0 {
		return errors.New("poll_interval must be positive")
	}
	if t.PollTimeout < 0 || t.ActionTimeout < 0 || t.ReadyTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	if t.ToastShowDelay < 0 || t.ToastDuration <= 0 {
		return errors.New("toast_show_delay must not be negative and toast_duration must be positive")
	}
	if t.GaugeDelay < 0 {
		return errors.New("gauge_delay must not be negative")
	}
	if t.SearchCap <= 0 {
		return errors.New("search_cap must be positive")
	}
	return nil
}
