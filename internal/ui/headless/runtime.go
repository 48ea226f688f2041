package headless

import (
	tea "github.com/charmbracelet/bubbletea"

	"organizer-console/internal/button"
	"organizer-console/internal/dispatch"
	"organizer-console/internal/screen"
	headlessview "organizer-console/internal/ui/headless/view"
)

// applyChanges copies app state that the view keeps its own widgets for.
// Everything else is read straight from the app at render time.
func (m *headlessModel) applyChanges(parts []screen.Part) {
	for _, part := range parts {
		switch part {
		case screen.PartPath:
			if value := m.app.Path.Value(); m.ui.PathInput.Value() != value {
				m.ui.PathInput.SetValue(value)
				m.ui.PathInput.CursorEnd()
			}
			if m.app.Path.TakeFocusRequest() {
				m.ui = m.ui.WithFocus(headlessview.FocusPath)
			}
		case screen.PartQuery:
			if value := m.app.Query.Value(); m.ui.QueryInput.Value() != value {
				m.ui.QueryInput.SetValue(value)
				m.ui.QueryInput.CursorEnd()
			}
		case screen.PartLog:
			m.ui.SetLogLines(m.app.Log.Lines(), m.app.Log.ScrolledToEnd())
		case screen.PartGauge:
			if state := m.app.Gauge.State(); state.HasReading {
				m.ui = m.ui.WithGaugeColor(state.Reading.Color)
			}
		case screen.PartResults:
			m.ui.SetResults(m.app.Results.State().Rows)
		}
	}
}

// spinnerCmd starts the busy animation once the button controller has
// installed it and some control is busy.
func (m *headlessModel) spinnerCmd() tea.Cmd {
	if m.spinTicking || !m.runtimeView().AnyBusy {
		return nil
	}
	animation, ok := m.app.Buttons.Animation()
	if !ok {
		return nil
	}
	m.ui.Spinner.Spinner = animation
	m.ui.SpinnerOn = true
	m.spinTicking = true
	return m.ui.Spinner.Tick
}

func controlView(c *button.Control) headlessview.ControlView {
	if c == nil {
		return headlessview.ControlView{}
	}
	return headlessview.ControlView{Label: c.Content(), Disabled: c.Disabled(), Busy: c.Busy()}
}

func (m *headlessModel) cleanup() {
	m.cleanupOnce.Do(func() {
		m.logger.Debug("headless cleanup started")

		if m.rootCancel != nil {
			m.logger.Debug("canceling headless root context")
			m.rootCancel()
		}

		if m.unsubscribe != nil {
			m.logger.Debug("unsubscribing console listener")
			m.unsubscribe()
		}

		m.logger.Debug("stopping runtime controller")
		m.runner.Stop()
		m.logger.Debug("headless cleanup complete")
	})
}

func (m *headlessModel) actionControls() map[int]headlessview.ControlView {
	controls := make(map[int]headlessview.ControlView, len(dispatch.Actions)+2)
	for _, action := range dispatch.Actions {
		if focus, ok := headlessview.FocusForAction(action); ok {
			controls[focus] = controlView(m.app.Controls[action])
		}
	}
	controls[headlessview.FocusSearch] = controlView(m.app.SearchBt)
	controls[headlessview.FocusNative] = controlView(m.app.BrowseBt)
	return controls
}
