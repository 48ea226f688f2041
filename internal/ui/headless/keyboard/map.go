package keyboard

import "github.com/charmbracelet/bubbles/key"

type Map struct {
	NextFocus     key.Binding
	PrevFocus     key.Binding
	Activate      key.Binding
	Quit          key.Binding
	NativeBrowse  key.Binding
	FolderStats   key.Binding
	ToggleConsole key.Binding
	FollowLogs    key.Binding
	ModalToggle   key.Binding
}

func New() Map {
	return Map{
		NextFocus: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/down", "next"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/up", "prev"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "activate"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		NativeBrowse: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "native picker"),
		),
		FolderStats: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "folder stats"),
		),
		ToggleConsole: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "console"),
		),
		FollowLogs: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "follow log"),
		),
		ModalToggle: key.NewBinding(
			key.WithKeys("tab", "up", "down", "left", "right"),
			key.WithHelp("tab/arrows", "toggle"),
		),
	}
}

func (m Map) ShortHelp() []key.Binding {
	return []key.Binding{m.NextFocus, m.Activate, m.NativeBrowse, m.FolderStats, m.ToggleConsole, m.Quit}
}

func (m Map) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.NextFocus, m.PrevFocus, m.Activate},
		{m.NativeBrowse, m.FolderStats, m.ToggleConsole},
		{m.FollowLogs, m.Quit},
	}
}
