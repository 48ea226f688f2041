package view

import (
	"slices"

	"organizer-console/internal/dispatch"
)

type ActivateEffect int

const (
	ActivateEffectNone ActivateEffect = iota
	ActivateEffectOpenPicker
	ActivateEffectNativeBrowse
	ActivateEffectSelectMethod
	ActivateEffectDispatch
	ActivateEffectSearch
	ActivateEffectFolderStats
	ActivateEffectDebugLevelChanged
	ActivateEffectRequestQuit
)

var focusActions = map[int]dispatch.Action{
	FocusOrganize:     dispatch.ActionOrganize,
	FocusUndo:         dispatch.ActionUndo,
	FocusDuplicates:   dispatch.ActionDuplicates,
	FocusEmptyFolders: dispatch.ActionEmptyFolders,
}

// ActionForFocus maps an action button slot to its action.
func ActionForFocus(focus int) (dispatch.Action, bool) {
	action, ok := focusActions[focus]
	return action, ok
}

// FocusForAction is the inverse of ActionForFocus.
func FocusForAction(action dispatch.Action) (int, bool) {
	for focus, candidate := range focusActions {
		if candidate == action {
			return focus, true
		}
	}
	return 0, false
}

// NextMethod cycles through the organize methods.
func NextMethod(methods []string, current string) string {
	if len(methods) == 0 {
		return current
	}
	i := slices.Index(methods, current)
	return methods[(i+1)%len(methods)]
}

func ReduceActivate(state State, rt Runtime) (State, ActivateEffect) {
	if control, ok := rt.Controls[state.Focus]; ok && control.Disabled {
		return state, ActivateEffectNone
	}
	switch state.Focus {
	case FocusPick:
		return state, ActivateEffectOpenPicker
	case FocusNative:
		return state, ActivateEffectNativeBrowse
	case FocusMethod:
		return state, ActivateEffectSelectMethod
	case FocusOrganize, FocusUndo, FocusDuplicates, FocusEmptyFolders:
		return state, ActivateEffectDispatch
	case FocusQuery, FocusSearch:
		return state, ActivateEffectSearch
	case FocusStats:
		return state, ActivateEffectFolderStats
	case FocusDebug:
		state.DebugOn = !state.DebugOn
		return state, ActivateEffectDebugLevelChanged
	case FocusQuit:
		return state, ActivateEffectRequestQuit
	default:
		return state, ActivateEffectNone
	}
}
