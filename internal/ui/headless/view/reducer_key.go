package view

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type KeyEffect int

const (
	KeyEffectNone KeyEffect = iota
	// KeyEffectConsumed means the key was handled and must not reach an input.
	KeyEffectConsumed
	KeyEffectRequestQuit
	KeyEffectActivateFocused
	KeyEffectConfirmQuitAccept
	KeyEffectNativeBrowse
	KeyEffectFolderStats
)

const confirmChoiceCount = 2

const confirmChoiceQuit = 1

func ReduceKey(state State, msg tea.KeyMsg) (State, KeyEffect) {
	if state.ErrorModalText != "" {
		if msg.String() == "esc" || key.Matches(msg, state.Keys.Activate) {
			state.ErrorModalText = ""
		}
		return state, KeyEffectConsumed
	}

	if state.ConfirmQuit {
		switch {
		case msg.String() == "esc":
			state.ConfirmQuit = false
		case key.Matches(msg, state.Keys.ModalToggle):
			state.ConfirmQuitChoice = (state.ConfirmQuitChoice + 1) % confirmChoiceCount
		case key.Matches(msg, state.Keys.Activate):
			if state.ConfirmQuitChoice == confirmChoiceQuit {
				return state, KeyEffectConfirmQuitAccept
			}
			state.ConfirmQuit = false
		}
		return state, KeyEffectConsumed
	}

	switch {
	case key.Matches(msg, state.Keys.Quit):
		return state, KeyEffectRequestQuit
	case key.Matches(msg, state.Keys.NativeBrowse):
		return state, KeyEffectNativeBrowse
	case key.Matches(msg, state.Keys.FolderStats):
		return state, KeyEffectFolderStats
	case key.Matches(msg, state.Keys.ToggleConsole):
		state.ShowConsole = !state.ShowConsole
		if state.ShowConsole {
			state.ConsoleView.GotoBottom()
		}
		return state, KeyEffectConsumed
	case key.Matches(msg, state.Keys.FollowLogs):
		state.FollowLogs = true
		state.LogView.GotoBottom()
		return state, KeyEffectConsumed
	case msg.String() == "pgup" || msg.String() == "pgdown":
		state.LogView, _ = state.LogView.Update(msg)
		state.FollowLogs = state.LogView.AtBottom()
		return state, KeyEffectConsumed
	case key.Matches(msg, state.Keys.NextFocus):
		return state.WithFocus(state.Focus + 1), KeyEffectConsumed
	case key.Matches(msg, state.Keys.PrevFocus):
		return state.WithFocus(state.Focus - 1), KeyEffectConsumed
	case msg.String() == "enter" && state.Focus == FocusQuery:
		return state, KeyEffectActivateFocused
	case key.Matches(msg, state.Keys.Activate) && !state.InputFocused():
		return state, KeyEffectActivateFocused
	}

	return state, KeyEffectNone
}
