package view

import (
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"organizer-console/internal/client"
	"organizer-console/internal/logpoll"
	"organizer-console/internal/ui/headless/theme"
)

const (
	minPageWidth           = 24
	panelFrameOverhead     = 4
	minViewportDimension   = 1
	minLogViewportHeight   = 3
	inputLabelWidth        = 8
	inputReserve           = 30
	filePickerHeightOffset = 10
	minFilePickerHeight    = 6
	gaugeReserve           = 40
	minGaugeWidth          = 10
	scrollbarColumns       = 2
)

func (s State) ContentWidth() int {
	width := max(s.Width, 1)
	// Some Windows terminals wrap when a styled line lands exactly on the
	// reported last column; keep one-column headroom to avoid right-edge drift.
	if runtime.GOOS == "windows" && width > 1 {
		width--
	}
	return width
}

func (s State) PageWidth() int {
	return max(s.ContentWidth()-theme.PanelStyle.GetHorizontalFrameSize(), minPageWidth)
}

func (s State) panelInnerWidth() int {
	return max(s.PageWidth()-panelFrameOverhead, minViewportDimension)
}

// Resize recomputes widget widths after a window size change. Heights of the
// log viewport are settled at render time by FitLogViewportHeight.
func (s *State) Resize() {
	inner := s.panelInnerWidth()
	inputWidth := max(inner-inputLabelWidth-inputReserve, minPageWidth)
	s.PathInput.Width = inputWidth
	s.QueryInput.Width = inputWidth

	// Room for the scrollbar column.
	s.LogView.Width = max(inner-scrollbarColumns, minViewportDimension)
	s.ConsoleView.Width = max(inner-scrollbarColumns, minViewportDimension)
	s.ConsoleView.SetContent(wrapText(s.ConsoleText, s.ConsoleView.Width))

	s.Results.SetColumns(resultColumns(inner))
	s.Results.SetWidth(inner)

	s.Gauge.Width = max(inner-gaugeReserve, minGaugeWidth)
	s.ResizeFilePicker()
}

func (s *State) ResizeFilePicker() {
	h := max(s.Height-filePickerHeightOffset, minFilePickerHeight)
	s.FilePicker.SetHeight(h)
}

// FitLogViewportHeight gives the backend log whatever height the other
// sections leave over.
func (s *State) FitLogViewportHeight(nonLogSections []string) {
	if s.Height <= 0 {
		return
	}
	used := lipgloss.Height(strings.Join(nonLogSections, "\n"))
	available := s.Height - used - panelFrameOverhead
	s.LogView.Height = max(available, minLogViewportHeight)
}

// SetLogLines replaces the backend log content. The view follows the bottom
// while the renderer asked for it and the user has not scrolled away.
func (s *State) SetLogLines(lines []logpoll.Line, scrollToEnd bool) {
	styled := make([]string, len(lines))
	for i, line := range lines {
		styled[i] = theme.LogLine(line)
	}
	s.LogView.SetContent(wrapText(strings.Join(styled, "\n"), s.LogView.Width))
	s.LogVersion++
	if scrollToEnd && s.FollowLogs {
		s.LogView.GotoBottom()
	}
}

func (s *State) SetResults(results []client.SearchResult) {
	rows := make([]table.Row, len(results))
	for i, r := range results {
		rows[i] = table.Row{r.Name, r.Path, r.Size}
	}
	s.Results.SetRows(rows)
	s.Results.GotoTop()
}

func wrapText(text string, width int) string {
	if width <= 0 || text == "" {
		return text
	}
	return ansi.Wrap(text, width, "")
}
