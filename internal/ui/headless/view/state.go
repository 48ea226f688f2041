package view

import (
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"organizer-console/internal/storagegauge"
	"organizer-console/internal/ui/headless/keyboard"
)

// Focus slots in tab order.
const (
	FocusPath = iota
	FocusPick
	FocusNative
	FocusMethod
	FocusOrganize
	FocusUndo
	FocusDuplicates
	FocusEmptyFolders
	FocusQuery
	FocusSearch
	FocusStats
	FocusDebug
	FocusQuit
	focusCount
)

const (
	defaultInputCharLimit = 4096
	defaultInputWidth     = 60
	defaultLogViewWidth   = 80
	defaultLogViewHeight  = 10
	defaultConsoleHeight  = 8
	defaultResultsHeight  = 6
	defaultGaugeWidth     = 40
	consoleLineLimit      = 2000
)

const ConfirmQuitChoiceCancel = 0

type State struct {
	PathInput  textinput.Model
	QueryInput textinput.Model
	Focus      int

	HelpView help.Model
	Keys     keyboard.Map

	LogView     viewport.Model
	FollowLogs  bool
	LogVersion  int
	ConsoleView viewport.Model
	ConsoleText string
	ShowConsole bool
	DebugOn     bool

	Results    table.Model
	Gauge      progress.Model
	GaugeColor string
	Spinner    spinner.Model
	SpinnerOn  bool

	Width  int
	Height int

	ConfirmQuit       bool
	ConfirmQuitChoice int
	ErrorModalText    string
	FilePickerOpen    bool
	FilePicker        filepicker.Model
	HoverZone         string
}

func NewState(path string, debug bool) State {
	pathInput := textinput.New()
	pathInput.CharLimit = defaultInputCharLimit
	pathInput.Width = defaultInputWidth
	pathInput.Prompt = ""
	pathInput.Placeholder = "/absolute/path/to/folder"
	pathInput.SetValue(strings.TrimSpace(path))
	pathInput.CursorEnd()
	pathInput.Focus()

	queryInput := textinput.New()
	queryInput.CharLimit = defaultInputCharLimit
	queryInput.Width = defaultInputWidth
	queryInput.Prompt = ""
	queryInput.Placeholder = "file name or content"

	picker := filepicker.New()
	picker.FileAllowed = true
	picker.DirAllowed = false
	picker.ShowHidden = false
	picker.ShowPermissions = false
	picker.KeyMap.Open = key.NewBinding(key.WithKeys(" ", "right", "l"), key.WithHelp("space", "open"))
	picker.KeyMap.Select = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select"))

	results := table.New(
		table.WithColumns(resultColumns(defaultLogViewWidth)),
		table.WithHeight(defaultResultsHeight),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("238")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = lipgloss.NewStyle()
	results.SetStyles(styles)

	sp := spinner.New()
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	helpView := help.New()
	helpView.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	helpView.Styles.FullKey = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	helpView.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpView.Styles.FullDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpView.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpView.Styles.FullSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	return State{
		PathInput:   pathInput,
		QueryInput:  queryInput,
		Focus:       FocusPath,
		HelpView:    helpView,
		Keys:        keyboard.New(),
		LogView:     viewport.New(defaultLogViewWidth, defaultLogViewHeight),
		FollowLogs:  true,
		ConsoleView: viewport.New(defaultLogViewWidth, defaultConsoleHeight),
		DebugOn:     debug,
		Results:     results,
		Gauge:       newGaugeBar(storagegauge.ColorSafe, defaultGaugeWidth),
		GaugeColor:  storagegauge.ColorSafe,
		Spinner:     sp,
		FilePicker:  picker,
	}
}

func newGaugeBar(color string, width int) progress.Model {
	bar := progress.New(progress.WithSolidFill(color), progress.WithoutPercentage())
	bar.Width = width
	return bar
}

func resultColumns(width int) []table.Column {
	sizeWidth := 10
	nameWidth := max((width-sizeWidth)/3, 8)
	pathWidth := max(width-sizeWidth-nameWidth-6, 8)
	return []table.Column{
		{Title: "Name", Width: nameWidth},
		{Title: "Path", Width: pathWidth},
		{Title: "Size", Width: sizeWidth},
	}
}

func (s State) WithWindowSize(width int, height int) State {
	s.Width = width
	s.Height = height
	return s
}

// WithGaugeColor swaps the bar fill when the severity color changes.
func (s State) WithGaugeColor(color string) State {
	if color == "" || color == s.GaugeColor {
		return s
	}
	s.Gauge = newGaugeBar(color, s.Gauge.Width)
	s.GaugeColor = color
	return s
}

// ApplyFocus moves the text cursor to the focused input, if any.
func (s *State) ApplyFocus() {
	s.PathInput.Blur()
	s.QueryInput.Blur()
	switch s.Focus {
	case FocusPath:
		s.PathInput.Focus()
	case FocusQuery:
		s.QueryInput.Focus()
	}
}

func (s State) WithFocus(focus int) State {
	s.Focus = ((focus % focusCount) + focusCount) % focusCount
	s.ApplyFocus()
	return s
}

func (s State) InputFocused() bool {
	return s.Focus == FocusPath || s.Focus == FocusQuery
}

// AppendConsole adds developer console lines, keeping the newest ones.
func (s *State) AppendConsole(text string) {
	lines := splitLines(s.ConsoleText)
	lines = append(lines, splitLines(text)...)
	if len(lines) > consoleLineLimit {
		lines = append([]string(nil), lines[len(lines)-consoleLineLimit:]...)
	}
	s.ConsoleText = strings.Join(lines, "\n")
	wasAtBottom := s.ConsoleView.AtBottom()
	s.ConsoleView.SetContent(wrapText(s.ConsoleText, s.ConsoleView.Width))
	if wasAtBottom {
		s.ConsoleView.GotoBottom()
	}
}

func splitLines(input string) []string {
	if input == "" {
		return nil
	}
	normalized := strings.ReplaceAll(input, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	lines := strings.Split(normalized, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
