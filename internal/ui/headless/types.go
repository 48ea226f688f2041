package headless

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"organizer-console/internal/app"
	"organizer-console/internal/logging"
	"organizer-console/internal/runtime"
	"organizer-console/internal/screen"
	headlessview "organizer-console/internal/ui/headless/view"
)

type consoleMsg string
type changedMsg []screen.Part
type tickMsg struct{}

type runDoneMsg struct {
	err error
}

type startResultMsg struct {
	err error
}

type quitNowMsg struct{}

type modelDeps struct {
	runner      *runtime.Controller
	service     *runtime.ConsoleService
	app         *app.App
	logger      *logging.Logger
	unsubscribe func()
	rootCtx     context.Context
	rootCancel  context.CancelFunc
	program     *tea.Program
}

type modelChannels struct {
	consoleCh chan string
	changes   *changeFeed
}

type modelRuntime struct {
	running     bool
	quitting    bool
	spinTicking bool
}

type headlessModel struct {
	buildVersion string
	modelDeps
	modelChannels
	modelRuntime
	cleanupOnce sync.Once
	ui          headlessview.State
}
