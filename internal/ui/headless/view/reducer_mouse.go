package view

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

type MouseEffect int

const (
	MouseEffectNone MouseEffect = iota
	MouseEffectActivateFocused
	MouseEffectConfirmQuitAccept
)

func ReduceMouse(state State, msg tea.MouseMsg) (State, tea.Cmd, MouseEffect) {
	if state.ConfirmQuit {
		if !isLeftPress(msg) {
			return state, nil, MouseEffectNone
		}
		switch {
		case inZone(zoneDialogQuitAccept, msg):
			return state, nil, MouseEffectConfirmQuitAccept
		case inZone(zoneDialogQuitCancel, msg):
			state.ConfirmQuit = false
		}
		return state, nil, MouseEffectNone
	}
	if state.ErrorModalText != "" {
		if isLeftPress(msg) {
			state.ErrorModalText = ""
		}
		return state, nil, MouseEffectNone
	}

	if tea.MouseEvent(msg).IsWheel() {
		var cmd tea.Cmd
		switch {
		case state.ShowConsole && inZone(zoneConsolePanel, msg):
			state.ConsoleView, cmd = state.ConsoleView.Update(msg)
		default:
			state.LogView, cmd = state.LogView.Update(msg)
			state.FollowLogs = state.LogView.AtBottom()
		}
		return state, cmd, MouseEffectNone
	}

	slot, hit := focusUnderCursor(msg)
	state.HoverZone = ""
	if hit {
		state.HoverZone = zoneForFocus(slot)
	}
	if !hit || !isLeftPress(msg) {
		return state, nil, MouseEffectNone
	}
	state = state.WithFocus(slot)
	if state.InputFocused() {
		return state, nil, MouseEffectNone
	}
	return state, nil, MouseEffectActivateFocused
}

func focusUnderCursor(msg tea.MouseMsg) (int, bool) {
	for slot := range focusCount {
		if inZone(zoneForFocus(slot), msg) {
			return slot, true
		}
	}
	return 0, false
}

func isLeftPress(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}

// inZone is false for zones that were not part of the last frame.
func inZone(id string, msg tea.MouseMsg) bool {
	info := zone.Get(id)
	return info != nil && info.InBounds(msg)
}
