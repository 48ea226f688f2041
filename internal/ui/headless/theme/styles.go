package theme

import (
	"github.com/charmbracelet/lipgloss"

	"organizer-console/internal/logpoll"
	"organizer-console/internal/notify"
)

var (
	PanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	LabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	FocusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	HelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	ModalBackdrop = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	DisabledButtonBorder = lipgloss.Border{
		Top:         "╌",
		Bottom:      "╌",
		Left:        "┊",
		Right:       "┊",
		TopLeft:     "┌",
		TopRight:    "┐",
		BottomLeft:  "└",
		BottomRight: "┘",
	}
	DisabledBorderColor = lipgloss.Color("240")
	DisabledTextColor   = lipgloss.Color("240")

	ButtonStyle                = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder())
	ButtonFocusedStyle         = ButtonStyle.BorderForeground(lipgloss.Color("10")).Foreground(lipgloss.Color("10"))
	ButtonHoverStyle           = ButtonStyle.BorderForeground(lipgloss.Color("15")).Foreground(lipgloss.Color("15"))
	ButtonDisabledBaseStyle    = ButtonStyle.Border(DisabledButtonBorder).BorderForeground(DisabledBorderColor)
	ButtonDisabledStyle        = ButtonDisabledBaseStyle.Foreground(DisabledTextColor)
	ButtonDisabledFocusedStyle = ButtonStyle.BorderForeground(lipgloss.Color("255")).Foreground(lipgloss.Color("250"))
	SegmentBaseStyle           = lipgloss.NewStyle().Padding(0, 1)
	SegmentOnStyle             = SegmentBaseStyle.Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10"))
	SegmentOffStyle            = SegmentBaseStyle.Foreground(lipgloss.Color("245")).Background(lipgloss.Color("236"))

	ToastBaseStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Bold(true)
	ToastSuccessStyle = ToastBaseStyle.BorderForeground(lipgloss.Color("#10b981")).Foreground(lipgloss.Color("#10b981"))
	ToastErrorStyle   = ToastBaseStyle.BorderForeground(lipgloss.Color("#ef4444")).Foreground(lipgloss.Color("#ef4444"))

	OnlineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	OfflineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

var logLineStyles = map[logpoll.Class]lipgloss.Style{
	logpoll.ClassError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
	logpoll.ClassWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b")),
	logpoll.ClassSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981")),
	logpoll.ClassInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#60a5fa")),
}

// LogLine colors a backend log line by its class. Unclassified lines are
// returned as is.
func LogLine(line logpoll.Line) string {
	style, ok := logLineStyles[line.Class]
	if !ok {
		return line.Text
	}
	return style.Render(line.Text)
}

func Toast(severity notify.Severity) lipgloss.Style {
	if severity == notify.SeverityError {
		return ToastErrorStyle
	}
	return ToastSuccessStyle
}
