package headless

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"organizer-console/internal/app"
	"organizer-console/internal/config"
	"organizer-console/internal/logging"
	"organizer-console/internal/runtime"
	headlessview "organizer-console/internal/ui/headless/view"
)

const (
	consoleChannelBufferSize = 512
	updateTickInterval       = 500 * time.Millisecond
	shutdownWait             = 3 * time.Second
	runErrorExitCode         = 1
	startupErrorExitCode     = 2
)

// Run starts the full-screen console and returns the process exit code.
func Run(rootCtx context.Context, buildVersion string, opts config.Options, tuning config.Tuning) int {
	defer forceDisableMouseTracking()

	logger := logging.New(false)
	logger.SetDebugEnabled(opts.Debug)
	if err := logger.EnableFilePersistence(0); err != nil {
		logger.Warn("failed to enable file log persistence", logging.Field("error", err))
	}
	defer func() {
		_ = logger.Close()
	}()

	m, err := newHeadlessModel(rootCtx, buildVersion, opts, tuning, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return startupErrorExitCode
	}
	logger.SetTerminalOutputEnabled(false)
	logger.Info("starting organizer TUI", logging.Field("version", buildVersion))

	zone.NewGlobal()
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	m.program = program
	result, runErr := program.Run()
	model, _ := result.(*headlessModel)
	if model != nil {
		model.cleanup()
	}
	if !m.runner.Wait(shutdownWait) {
		logger.Warn("console did not stop in time")
	}
	logger.SetTerminalOutputEnabled(true)
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		return runErrorExitCode
	}
	return 0
}

func forceDisableMouseTracking() {
	_, _ = os.Stdout.WriteString("\x1b[?1000l\x1b[?1002l\x1b[?1003l\x1b[?1006l\x1b[?1015l")
}

func newHeadlessModel(rootCtx context.Context, buildVersion string, opts config.Options, tuning config.Tuning, logger *logging.Logger) (*headlessModel, error) {
	if logger == nil {
		panic("headless.newHeadlessModel: logger must not be nil")
	}
	if rootCtx == nil {
		rootCtx = context.Background()
	}
	changes := newChangeFeed()
	service, err := runtime.NewService(opts, tuning, logger, app.Hooks{OnChange: changes.mark})
	if err != nil {
		return nil, err
	}
	runCtx, runCancel := context.WithCancel(rootCtx)

	m := &headlessModel{
		buildVersion: buildVersion,
		modelDeps: modelDeps{
			runner:     runtime.NewController(runCtx, logger),
			service:    service,
			app:        service.App(),
			logger:     logger,
			rootCtx:    runCtx,
			rootCancel: runCancel,
		},
		modelChannels: modelChannels{
			consoleCh: make(chan string, consoleChannelBufferSize),
			changes:   changes,
		},
		ui: headlessview.NewState(service.App().Path.Value(), logger.DebugEnabled()),
	}
	m.ui.SetLogLines(m.app.Log.Lines(), true)

	m.unsubscribe = logger.SubscribeWithHistory(func(event logging.Event) {
		line := logging.FormatEventANSI(event)
		select {
		case m.consoleCh <- line:
		default:
			select {
			case <-m.consoleCh:
			default:
			}
			select {
			case m.consoleCh <- line:
			default:
			}
		}
	})

	return m, nil
}

func (m *headlessModel) Init() tea.Cmd {
	return tea.Batch(
		waitForConsole(m.consoleCh),
		waitForChange(m.changes),
		tickCmd(),
		textinput.Blink,
		m.startServiceCmd(),
	)
}

func (m *headlessModel) startServiceCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.runner.Start(m.service, m.onServiceExit)
		return startResultMsg{err: err}
	}
}

func (m *headlessModel) onServiceExit(runErr error) {
	if m.program == nil {
		return
	}
	m.program.Send(runDoneMsg{err: runErr})
}

func waitForConsole(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return nil
		}
		return consoleMsg(line)
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(updateTickInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}
