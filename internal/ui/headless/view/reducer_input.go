package view

import tea "github.com/charmbracelet/bubbletea"

// ReduceInput feeds msg to the focused text input. It reports false when no
// input has focus.
func ReduceInput(state State, msg tea.Msg) (State, tea.Cmd, bool) {
	var cmd tea.Cmd
	switch state.Focus {
	case FocusPath:
		state.PathInput, cmd = state.PathInput.Update(msg)
	case FocusQuery:
		state.QueryInput, cmd = state.QueryInput.Update(msg)
	default:
		return state, nil, false
	}
	return state, cmd, true
}
