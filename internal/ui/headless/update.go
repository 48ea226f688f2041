package headless

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"organizer-console/internal/app"
	"organizer-console/internal/logging"
	"organizer-console/internal/pathresolve"
	headlessview "organizer-console/internal/ui/headless/view"
)

func (m *headlessModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		if _, ok := msg.(quitNowMsg); ok {
			m.cleanup()
			return m, tea.Quit
		}
		return m, nil
	}

	if m.ui.FilePickerOpen {
		if ws, ok := msg.(tea.WindowSizeMsg); ok {
			m.resize(ws.Width, ws.Height)
		}
		return m.updateFilePickerMsg(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case consoleMsg:
		m.ui.AppendConsole(string(msg))
		return m, waitForConsole(m.consoleCh)
	case changedMsg:
		m.applyChanges(msg)
		return m, tea.Batch(waitForChange(m.changes), m.spinnerCmd())
	case spinner.TickMsg:
		if !m.runtimeView().AnyBusy {
			m.spinTicking = false
			return m, nil
		}
		var cmd tea.Cmd
		m.ui.Spinner, cmd = m.ui.Spinner.Update(msg)
		return m, cmd
	case tickMsg:
		return m, tickCmd()
	case startResultMsg:
		if msg.err != nil {
			m.ui.ErrorModalText = msg.err.Error()
			return m, nil
		}
		m.running = true
		return m, nil
	case runDoneMsg:
		m.running = false
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.ui.ErrorModalText = msg.err.Error()
		}
		return m, nil
	case tea.MouseMsg:
		return m.updateMouseMsg(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m.updateInputs(msg)
}

func (m *headlessModel) resize(width int, height int) {
	m.ui = m.ui.WithWindowSize(width, height)
	m.ui.Resize()
	m.ui.SetLogLines(m.app.Log.Lines(), m.app.Log.ScrolledToEnd())
}

func (m *headlessModel) updateMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	next, cmd, effect := headlessview.ReduceMouse(m.ui, msg)
	m.ui = next
	switch effect {
	case headlessview.MouseEffectActivateFocused:
		return m, tea.Batch(cmd, m.activateFocusedControl())
	case headlessview.MouseEffectConfirmQuitAccept:
		return m, tea.Batch(cmd, m.beginQuitCmd())
	}
	return m, cmd
}

func (m *headlessModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, effect := headlessview.ReduceKey(m.ui, msg)
	m.ui = next
	switch effect {
	case headlessview.KeyEffectConsumed:
		return m, nil
	case headlessview.KeyEffectRequestQuit:
		return m, m.requestQuitCmd()
	case headlessview.KeyEffectActivateFocused:
		return m, m.activateFocusedControl()
	case headlessview.KeyEffectConfirmQuitAccept:
		return m, m.beginQuitCmd()
	case headlessview.KeyEffectNativeBrowse:
		return m, m.post(app.BrowseClicked{})
	case headlessview.KeyEffectFolderStats:
		return m, m.post(app.FolderStatsRequested{})
	default:
		return m.updateInputs(msg)
	}
}

// updateInputs forwards msg to the focused text input and reports edits to
// the app so the path and query fields stay the single source of truth.
func (m *headlessModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	path, query := m.ui.PathInput.Value(), m.ui.QueryInput.Value()
	next, cmd, ok := headlessview.ReduceInput(m.ui, msg)
	if !ok {
		return m, nil
	}
	m.ui = next
	if value := m.ui.PathInput.Value(); value != path {
		m.handle(app.PathEdited{Text: value})
	}
	if value := m.ui.QueryInput.Value(); value != query {
		m.handle(app.QueryEdited{Text: value})
	}
	return m, cmd
}

func (m *headlessModel) activateFocusedControl() tea.Cmd {
	rt := m.runtimeView()
	next, effect := headlessview.ReduceActivate(m.ui, rt)
	m.ui = next
	switch effect {
	case headlessview.ActivateEffectOpenPicker:
		return m.openPickerCmd()
	case headlessview.ActivateEffectNativeBrowse:
		return m.post(app.BrowseClicked{})
	case headlessview.ActivateEffectSelectMethod:
		m.handle(app.MethodSelected{Value: headlessview.NextMethod(rt.Methods, rt.Method)})
		return nil
	case headlessview.ActivateEffectDispatch:
		action, ok := headlessview.ActionForFocus(m.ui.Focus)
		if !ok {
			return nil
		}
		return m.post(app.ActionClicked{Action: action})
	case headlessview.ActivateEffectSearch:
		return m.post(app.SearchClicked{})
	case headlessview.ActivateEffectFolderStats:
		return m.post(app.FolderStatsRequested{})
	case headlessview.ActivateEffectDebugLevelChanged:
		m.logger.SetDebugEnabled(m.ui.DebugOn)
		return nil
	case headlessview.ActivateEffectRequestQuit:
		return m.requestQuitCmd()
	default:
		return nil
	}
}

// handle runs a non-blocking event inline so the screen models are updated
// before the next frame.
func (m *headlessModel) handle(ev app.Event) {
	if err := m.app.Handle(m.rootCtx, ev); err != nil {
		m.logger.Warn("event dropped", logging.Field("kind", string(ev.Kind())), logging.Field("error", err))
	}
}

// post queues a blocking event off the UI goroutine.
func (m *headlessModel) post(ev app.Event) tea.Cmd {
	return func() tea.Msg {
		if !m.app.Post(m.rootCtx, ev) {
			m.logger.Debug("event not queued", logging.Field("kind", string(ev.Kind())))
		}
		return nil
	}
}

func (m *headlessModel) openPickerCmd() tea.Cmd {
	startDir := strings.TrimSpace(m.app.Path.Value())
	if info, err := os.Stat(startDir); startDir == "" || err != nil || !info.IsDir() {
		startDir, _ = os.UserHomeDir()
	}
	if startDir == "" {
		startDir = "."
	}
	if abs, err := filepath.Abs(startDir); err == nil {
		startDir = abs
	}
	m.ui.FilePicker.CurrentDirectory = startDir
	m.ui.FilePicker.Path = ""
	m.ui.FilePickerOpen = true
	m.ui.ResizeFilePicker()
	return m.ui.FilePicker.Init()
}

func (m *headlessModel) updateFilePickerMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c":
			m.ui.FilePickerOpen = false
			return m, m.requestQuitCmd()
		case "esc":
			m.ui.FilePickerOpen = false
			return m, nil
		case "left", "backspace":
			parent := filepath.Dir(m.ui.FilePicker.CurrentDirectory)
			if parent == "" || parent == m.ui.FilePicker.CurrentDirectory {
				return m, nil
			}
			m.ui.FilePicker.CurrentDirectory = parent
			return m, m.ui.FilePicker.Init()
		}
	}
	var cmd tea.Cmd
	m.ui.FilePicker, cmd = m.ui.FilePicker.Update(msg)
	if ok, path := m.ui.FilePicker.DidSelectFile(msg); ok {
		m.ui.FilePickerOpen = false
		m.applyPickedFile(path)
		return m, nil
	}
	return m, cmd
}

// applyPickedFile hands a picked file to the path resolver, which keeps its
// containing folder.
func (m *headlessModel) applyPickedFile(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	selection := pathresolve.NewSelection(pathresolve.Entry{Name: filepath.Base(path), Path: path})
	m.handle(app.PickerChanged{Selection: selection})
}

func (m *headlessModel) requestQuitCmd() tea.Cmd {
	if m.runtimeView().AnyBusy {
		m.ui.ConfirmQuit = true
		m.ui.ConfirmQuitChoice = headlessview.ConfirmQuitChoiceCancel
		return nil
	}
	return m.beginQuitCmd()
}

func quitProgramCmd() tea.Cmd {
	return tea.Sequence(func() tea.Msg {
		return tea.DisableMouse()
	}, waitForMouseDrainCmd(), func() tea.Msg {
		return quitNowMsg{}
	})
}

func waitForMouseDrainCmd() tea.Cmd {
	return func() tea.Msg {
		time.Sleep(120 * time.Millisecond)
		return nil
	}
}

func (m *headlessModel) beginQuitCmd() tea.Cmd {
	m.quitting = true
	m.ui.ConfirmQuit = false
	if err := m.service.SaveSettings(); err != nil {
		m.logger.Warn("failed to save settings", logging.Field("error", err))
	}
	return quitProgramCmd()
}
