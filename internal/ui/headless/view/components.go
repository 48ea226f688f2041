package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"organizer-console/internal/ui/headless/theme"
)

const (
	minComponentWidth = 1
	scrollbarMinThumb = 0
)

// ControlView is the render snapshot of one clickable control.
type ControlView struct {
	Label    string
	Disabled bool
	Busy     bool
}

func renderButton(state *State, focus int, control ControlView) string {
	label := control.Label
	if control.Busy && state.SpinnerOn {
		label = state.Spinner.View() + " " + label
	}
	focused := state.Focus == focus
	hovered := state.HoverZone == zoneForFocus(focus)

	var style lipgloss.Style
	switch {
	case control.Disabled && focused:
		style = theme.ButtonDisabledFocusedStyle
	case control.Disabled:
		style = theme.ButtonDisabledStyle
	case focused:
		style = theme.ButtonFocusedStyle
	case hovered:
		style = theme.ButtonHoverStyle
	default:
		style = theme.ButtonStyle
	}
	return zone.Mark(zoneForFocus(focus), style.Render(label))
}

func renderSegments(state *State, focus int, options []string, checked string) string {
	parts := make([]string, 0, len(options))
	for _, option := range options {
		if option == checked {
			parts = append(parts, theme.SegmentOnStyle.Render(option))
		} else {
			parts = append(parts, theme.SegmentOffStyle.Render(option))
		}
	}
	content := strings.Join(parts, theme.SegmentBaseStyle.Render("|"))
	style := theme.ButtonStyle
	if state.Focus == focus {
		style = theme.ButtonFocusedStyle
	} else if state.HoverZone == zoneForFocus(focus) {
		style = theme.ButtonHoverStyle
	}
	return zone.Mark(zoneForFocus(focus), style.Render(content))
}

func renderLabel(state *State, focus int, label string) string {
	text := label + ":"
	if state.Focus == focus {
		text = theme.FocusStyle.Render("> " + text)
	} else {
		text = theme.LabelStyle.Render(text)
	}
	return lipgloss.NewStyle().Width(inputLabelWidth + 2).Render(text)
}

func RenderActionsRow(segments []string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = minComponentWidth
	}
	lines := make([]string, 0, len(segments))
	rowParts := make([]string, 0, len(segments))
	joinRow := func(parts []string) string {
		if len(parts) == 0 {
			return ""
		}
		row := parts[0]
		for i := 1; i < len(parts); i++ {
			row = lipgloss.JoinHorizontal(lipgloss.Top, row, " ", parts[i])
		}
		return row
	}
	for _, seg := range segments {
		if len(rowParts) == 0 {
			rowParts = append(rowParts, seg)
			continue
		}
		candidateParts := append(append([]string(nil), rowParts...), seg)
		candidate := joinRow(candidateParts)
		if lipgloss.Width(candidate) <= maxWidth {
			rowParts = candidateParts
			continue
		}
		lines = append(lines, joinRow(rowParts))
		rowParts = []string{seg}
	}
	if len(rowParts) > 0 {
		lines = append(lines, joinRow(rowParts))
	}
	return strings.Join(lines, "\n")
}

func WithScrollBar(content string, width int, height int, percent float64) string {
	if height <= 0 {
		return content
	}
	width = max(width, minComponentWidth)
	lines := strings.Split(content, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	thumb := int(percent * float64(height-1))
	thumb = max(thumb, scrollbarMinThumb)
	if thumb >= height {
		thumb = height - 1
	}
	barInactive := lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Render("┊")
	barActive := lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Render("▯")

	out := make([]string, 0, height)
	for i := range height {
		bar := barInactive
		if i == thumb {
			bar = barActive
		}
		text := ansi.Cut(lines[i], 0, width)
		if pad := width - ansi.StringWidth(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
		out = append(out, text+" "+bar)
	}
	return strings.Join(out, "\n")
}
