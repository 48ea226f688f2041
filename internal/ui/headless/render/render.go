package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func Frame(content string, width int, panelStyle lipgloss.Style) string {
	innerWidth := width - panelStyle.GetHorizontalFrameSize()
	innerWidth = max(innerWidth, 1)
	return panelStyle.Width(innerWidth).Render(content)
}

func TruncateDisplayWidth(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(value) <= width {
		return value
	}
	if width == 1 {
		return "…"
	}
	limit := width - ansi.StringWidth("…")
	limit = max(limit, 0)
	var b strings.Builder
	current := 0
	for _, r := range value {
		w := ansi.StringWidth(string(r))
		if current+w > limit {
			break
		}
		b.WriteRune(r)
		current += w
	}
	return b.String() + "…"
}

// TruncateMiddle keeps both ends of a long path visible.
func TruncateMiddle(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return TruncateDisplayWidth(value, width)
	}
	runes := []rune(value)
	keep := width - 1
	head := keep / 2
	tail := keep - head
	for ansi.StringWidth(string(runes[:head]))+ansi.StringWidth(string(runes[len(runes)-tail:])) > keep && head > 0 {
		head--
	}
	return string(runes[:head]) + "…" + string(runes[len(runes)-tail:])
}
