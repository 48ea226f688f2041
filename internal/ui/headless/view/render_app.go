package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"organizer-console/internal/notify"
	"organizer-console/internal/screen"
	"organizer-console/internal/ui/headless/render"
	"organizer-console/internal/ui/headless/theme"
)

// Runtime is the per-frame snapshot of application state the view renders.
type Runtime struct {
	BuildVersion string
	BaseURL      string
	Offline      bool
	Method       string
	Methods      []string
	Controls     map[int]ControlView
	Toast        notify.Toast
	Gauge        screen.GaugeState
	Results      screen.ResultsState
	Stats        screen.FolderStatsState
	AnyBusy      bool
}

const (
	dialogHorizontalInset    = 8
	quitDialogWidth          = 72
	errorDialogWidth         = 78
	filePickerDialogMaxWidth = 96
)

func RenderApp(state *State, rt Runtime) string {
	if state.Width == 0 {
		return "initializing..."
	}

	base := renderBase(state, rt)
	if state.FilePickerOpen {
		return renderModalOverlay(state, base, renderFilePickerDialog(state))
	}
	if state.ErrorModalText != "" {
		return renderModalOverlay(state, base, renderErrorDialog(state))
	}
	if state.ConfirmQuit {
		return renderModalOverlay(state, base, renderQuitConfirmDialog(state))
	}
	return zone.Scan(base)
}

func renderBase(state *State, rt Runtime) string {
	header := renderHeader(state, rt)
	gauge := renderFrame(renderGauge(state, rt), state.PageWidth())
	target := renderFrame(renderTarget(state, rt), state.PageWidth())
	search := renderFrame(renderSearch(state, rt), state.PageWidth())
	helpText := theme.HelpStyle.Render(state.HelpView.View(state.Keys))

	sections := []string{header, gauge, target, search}
	var console string
	if state.ShowConsole {
		console = renderConsolePanel(state)
	}
	state.FitLogViewportHeight(append(append([]string(nil), sections...), console, helpText))
	sections = append(sections, renderLogPanel(state))
	if console != "" {
		sections = append(sections, console)
	}
	sections = append(sections, helpText)
	return lipgloss.NewStyle().Width(state.ContentWidth()).Render(strings.Join(sections, "\n"))
}

func renderFrame(content string, width int) string {
	return render.Frame(content, width, theme.PanelStyle)
}

func renderHeader(state *State, rt Runtime) string {
	title := theme.TitleStyle.Render("File Organizer Console (" + rt.BuildVersion + ")")
	status := theme.OnlineStyle.Render("● " + rt.BaseURL)
	if rt.Offline {
		status = theme.OfflineStyle.Render("● backend unreachable")
	}
	left := title + "  " + status

	toast := ""
	if rt.Toast.Visible {
		text := rt.Toast.Icon + " " + rt.Toast.Message
		room := max(state.ContentWidth()-lipgloss.Width(left)-4, minComponentWidth)
		toast = theme.Toast(rt.Toast.Severity).Render(render.TruncateDisplayWidth(text, room))
	}
	gap := max(state.ContentWidth()-lipgloss.Width(left)-lipgloss.Width(toast), 1)
	return left + strings.Repeat(" ", gap) + toast
}

func renderGauge(state *State, rt Runtime) string {
	percent := 0.0
	percentText := "--%"
	if rt.Gauge.HasReading {
		percent = rt.Gauge.Reading.UsedPercent / 100
		percentText = rt.Gauge.Reading.PercentText
	}
	color := lipgloss.NewStyle().Foreground(lipgloss.Color(state.GaugeColor)).Bold(true)
	parts := []string{
		theme.LabelStyle.Render("Storage"),
		state.Gauge.ViewAs(percent),
		color.Render(percentText),
	}
	if rt.Gauge.Label != "" {
		parts = append(parts, theme.LabelStyle.Render(rt.Gauge.Label))
	}
	return strings.Join(parts, "  ")
}

func renderTarget(state *State, rt Runtime) string {
	width := state.panelInnerWidth()
	pathRow := lipgloss.JoinHorizontal(lipgloss.Center,
		renderLabel(state, FocusPath, "Folder"),
		zone.Mark(zoneForFocus(FocusPath), state.PathInput.View()),
	)
	pickers := RenderActionsRow([]string{
		renderButton(state, FocusPick, ControlView{Label: "📁 Browse"}),
		renderButton(state, FocusNative, rt.Controls[FocusNative]),
		renderSegments(state, FocusMethod, rt.Methods, rt.Method),
	}, width)
	actions := RenderActionsRow([]string{
		renderButton(state, FocusOrganize, rt.Controls[FocusOrganize]),
		renderButton(state, FocusUndo, rt.Controls[FocusUndo]),
		renderButton(state, FocusDuplicates, rt.Controls[FocusDuplicates]),
		renderButton(state, FocusEmptyFolders, rt.Controls[FocusEmptyFolders]),
		renderButton(state, FocusStats, ControlView{Label: "📊 Stats"}),
		renderButton(state, FocusQuit, ControlView{Label: "Quit"}),
	}, width)

	rows := []string{pathRow, pickers, actions}
	if rt.Stats.Present {
		stats := fmt.Sprintf("📊 %s  %s · %d files · %d folders",
			render.TruncateMiddle(rt.Stats.Path, max(width/2, minPageWidth)),
			rt.Stats.Stats.Size, rt.Stats.Stats.Files, rt.Stats.Stats.Folders)
		rows = append(rows, theme.LabelStyle.Render(stats))
	}
	return strings.Join(rows, "\n")
}

func renderSearch(state *State, rt Runtime) string {
	queryRow := lipgloss.JoinHorizontal(lipgloss.Center,
		renderLabel(state, FocusQuery, "Search"),
		zone.Mark(zoneForFocus(FocusQuery), state.QueryInput.View()),
		" ",
		renderButton(state, FocusSearch, rt.Controls[FocusSearch]),
	)
	if !rt.Results.Visible {
		return queryRow
	}

	rows := []string{queryRow}
	if rt.Results.Status != "" {
		rows = append(rows, theme.LabelStyle.Render(rt.Results.Status))
	}
	if rt.Results.Placeholder != "" {
		style := theme.HelpStyle
		if rt.Results.PlaceholderError {
			style = theme.ErrorStyle
		}
		rows = append(rows, style.Render(rt.Results.Placeholder))
	} else {
		rows = append(rows, state.Results.View())
	}
	return strings.Join(rows, "\n")
}

func renderLogPanel(state *State) string {
	check := "[ ] Debug"
	if state.DebugOn {
		check = "[x] Debug"
	}
	debug := renderButton(state, FocusDebug, ControlView{Label: check})
	hints := theme.HelpStyle.Render("ctrl+f follow • pgup/pgdn scroll")
	toolbar := lipgloss.JoinHorizontal(lipgloss.Center, theme.TitleStyle.Render("Backend Log"), "  ", debug, "  ", hints)
	body := WithScrollBar(state.LogView.View(), state.LogView.Width, state.LogView.Height, state.LogView.ScrollPercent())
	return zone.Mark(zoneLogPanel, renderFrame(toolbar+"\n"+body, state.PageWidth()))
}

func renderConsolePanel(state *State) string {
	title := theme.TitleStyle.Render("Developer Console")
	body := WithScrollBar(state.ConsoleView.View(), state.ConsoleView.Width, state.ConsoleView.Height, state.ConsoleView.ScrollPercent())
	return zone.Mark(zoneConsolePanel, renderFrame(title+"\n"+body, state.PageWidth()))
}

func renderQuitConfirmDialog(state *State) string {
	cancelButton := theme.ButtonStyle.Render("Cancel")
	quitButton := theme.ButtonStyle.Render("Quit")
	if state.ConfirmQuitChoice == ConfirmQuitChoiceCancel {
		cancelButton = theme.ButtonFocusedStyle.Render("Cancel")
	} else {
		quitButton = theme.ButtonFocusedStyle.Render("Quit")
	}
	buttonRow := lipgloss.JoinHorizontal(lipgloss.Top,
		zone.Mark(zoneDialogQuitCancel, cancelButton), "  ",
		zone.Mark(zoneDialogQuitAccept, quitButton),
	)
	dialogWidth := min(state.ContentWidth()-dialogHorizontalInset, quitDialogWidth)
	buttonLine := lipgloss.NewStyle().
		Width(max(dialogWidth-panelFrameOverhead, 1)).
		AlignHorizontal(lipgloss.Center).
		Render(buttonRow)

	body := strings.Join([]string{
		theme.TitleStyle.Render("Quit while an operation is running?"),
		"The backend keeps working; this console stops waiting for the result.",
		buttonLine,
		theme.HelpStyle.Render("tab/arrow switch • enter confirms"),
	}, "\n")
	return renderFrame(body, dialogWidth)
}

func renderErrorDialog(state *State) string {
	body := strings.Join([]string{
		theme.ErrorStyle.Render("Error"),
		state.ErrorModalText,
		theme.HelpStyle.Render("Press Enter or Esc to close"),
	}, "\n")
	return renderFrame(body, min(state.ContentWidth()-dialogHorizontalInset, errorDialogWidth))
}

func renderFilePickerDialog(state *State) string {
	title := theme.TitleStyle.Render("Select any file inside the target folder")
	current := theme.LabelStyle.Render(render.TruncateMiddle(state.FilePicker.CurrentDirectory, filePickerDialogMaxWidth-panelFrameOverhead))
	help := theme.HelpStyle.Render("up/down move • space open • enter select • left/backspace up • esc close")
	body := strings.Join([]string{title, current, state.FilePicker.View(), help}, "\n")
	return renderFrame(body, min(state.PageWidth(), filePickerDialogMaxWidth))
}

func renderModalOverlay(state *State, base string, dialog string) string {
	faded := theme.ModalBackdrop.Render(base)
	overlay := lipgloss.Place(state.Width, state.Height, lipgloss.Center, lipgloss.Center, dialog)
	return zone.Scan(faded + "\n" + overlay)
}
