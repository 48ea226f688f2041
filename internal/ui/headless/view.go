package headless

import headlessview "organizer-console/internal/ui/headless/view"

// runtimeView projects app state into the render DTO consumed by the view package.
func (m *headlessModel) runtimeView() headlessview.Runtime {
	method, _ := m.app.Method.Checked()
	controls := m.actionControls()
	anyBusy := false
	for _, control := range controls {
		anyBusy = anyBusy || control.Busy
	}
	return headlessview.Runtime{
		BuildVersion: m.buildVersion,
		BaseURL:      m.service.Client().Endpoints().BaseURL,
		Offline:      m.app.PollFailing(),
		Method:       method,
		Methods:      m.app.Method.Options(),
		Controls:     controls,
		Toast:        m.app.Toast.Current(),
		Gauge:        m.app.Gauge.State(),
		Results:      m.app.Results.State(),
		Stats:        m.app.Stats.State(),
		AnyBusy:      anyBusy,
	}
}

// View is the Bubble Tea render entrypoint; rendering is delegated to the pure view package.
func (m *headlessModel) View() string {
	return headlessview.RenderApp(&m.ui, m.runtimeView())
}
