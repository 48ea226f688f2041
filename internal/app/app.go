// Package app wires the console components together and routes events to
// them through an explicit dispatch table.
package app

import (
	"context"
	"fmt"
	"sync"

	"organizer-console/internal/button"
	"organizer-console/internal/client"
	"organizer-console/internal/config"
	"organizer-console/internal/dispatch"
	"organizer-console/internal/logging"
	"organizer-console/internal/logpoll"
	"organizer-console/internal/notify"
	"organizer-console/internal/pathresolve"
	"organizer-console/internal/runctx"
	"organizer-console/internal/screen"
	"organizer-console/internal/storagegauge"
)

const eventQueueSize = 64

// Backend is the full set of backend calls the console makes.
type Backend interface {
	dispatch.Backend
	FetchLogs(ctx context.Context) ([]string, error)
	FetchSystemStorage(ctx context.Context) (client.StorageSnapshot, error)
	FetchFolderStats(ctx context.Context, path string) (client.FolderStats, error)
	Browse(ctx context.Context) (client.BrowseResult, error)
}

type Hooks struct {
	// OnChange is called from any goroutine after visible state changed.
	OnChange func(screen.Part)
	// OnOutcome reports the result of every action and search.
	OnOutcome func(kind EventKind, action dispatch.Action, outcome dispatch.Outcome)
}

type Deps struct {
	Backend       Backend
	Endpoints     config.APIEndpoints
	Logger        *logging.Logger
	Tuning        config.Tuning
	Detector      logpoll.ChangeDetector
	Clock         notify.Clock
	InitialPath   string
	InitialMethod string
	Hooks         Hooks
}

// Control labels shown while idle.
var controlLabels = map[dispatch.Action]string{
	dispatch.ActionOrganize:     "🗂  Organize",
	dispatch.ActionUndo:         "↩  Undo",
	dispatch.ActionDuplicates:   "🧹 Duplicates",
	dispatch.ActionEmptyFolders: "📂 Empty Folders",
}

const (
	searchLabel = "🔍 Search"
	browseLabel = "🖥  Native"
)

var methodOptions = []string{"type", "date"}

type handler struct {
	// blocking handlers wait on the network and run on their own goroutine.
	blocking bool
	run      func(ctx context.Context, ev Event)
}

type App struct {
	logger  *logging.Logger
	backend Backend
	hooks   Hooks

	Path    *screen.Field
	Query   *screen.Field
	Method  *screen.RadioGroup
	Log     *screen.LogArea
	Gauge   *screen.Gauge
	Results *screen.ResultsTable
	Stats   *screen.FolderStats

	Toast    *notify.Scheduler
	Buttons  *button.Controller
	Controls map[dispatch.Action]*button.Control
	SearchBt *button.Control
	BrowseBt *button.Control

	resolver     *pathresolve.Resolver
	poller       *logpoll.Poller
	gaugeLoader  *storagegauge.Loader
	folderLoader *storagegauge.FolderStatsLoader
	dispatcher   *dispatch.Dispatcher
	searcher     *dispatch.Searcher

	handlers map[EventKind]handler
	events   chan Event
	wg       sync.WaitGroup

	startOnce sync.Once
}

func New(deps Deps) *App {
	if deps.Logger == nil {
		panic("app.New: logger must not be nil")
	}
	if deps.Backend == nil {
		panic("app.New: backend must not be nil")
	}
	if deps.Tuning == (config.Tuning{}) {
		deps.Tuning = config.DefaultTuning()
	}

	a := &App{
		logger:  deps.Logger,
		backend: deps.Backend,
		hooks:   deps.Hooks,
		events:  make(chan Event, eventQueueSize),
	}
	changed := screen.ChangeFunc(a.changed)

	method := deps.InitialMethod
	if method == "" {
		method = dispatch.DefaultMethod
	}
	a.Path = screen.NewField(screen.PartPath, deps.InitialPath, changed)
	a.Query = screen.NewField(screen.PartQuery, "", changed)
	a.Method = screen.NewRadioGroup("organize-method", methodOptions, method, changed)
	a.Log = screen.NewLogArea(changed)
	a.Gauge = screen.NewGauge(changed)
	a.Results = screen.NewResultsTable(changed)
	a.Stats = screen.NewFolderStats(changed)

	a.Toast = notify.NewScheduler(notify.Options{
		ShowDelay: deps.Tuning.ToastShowDelay,
		HideAfter: deps.Tuning.ToastDuration,
		Clock:     deps.Clock,
		OnChange:  func(notify.Toast) { a.changed(screen.PartToast) },
	})
	a.Buttons = button.NewController(func(*button.Control) { a.changed(screen.PartControls) })
	a.Controls = make(map[dispatch.Action]*button.Control, len(dispatch.Actions))
	for _, action := range dispatch.Actions {
		a.Controls[action] = button.NewControl(string(action), controlLabels[action])
	}
	a.SearchBt = button.NewControl("search", searchLabel)
	a.BrowseBt = button.NewControl("browse", browseLabel)

	a.resolver = pathresolve.NewResolver(a.Path, a.Toast, a.component("picker"))
	a.poller = logpoll.NewPoller(deps.Backend, a.Log, a.component("logpoll"), logpoll.Options{
		Interval: deps.Tuning.PollInterval,
		Timeout:  deps.Tuning.PollTimeout,
		Detector: deps.Detector,
	})
	a.gaugeLoader = storagegauge.NewLoader(deps.Backend, a.Gauge, a.component("gauge"), deps.Tuning.GaugeDelay, deps.Tuning.PollTimeout)
	a.folderLoader = storagegauge.NewFolderStatsLoader(deps.Backend, a.Path, a.Stats, a.Toast, a.component("folder-stats"), deps.Tuning.PollTimeout)
	a.dispatcher = dispatch.NewDispatcher(dispatch.Deps{
		Backend:   deps.Backend,
		Endpoints: dispatch.Endpoints(deps.Endpoints),
		Path:      a.Path,
		Method:    a.Method,
		Notifier:  a.Toast,
		Buttons:   a.Buttons,
		Controls:  a.Controls,
		Logs:      a.poller,
		Logger:    a.component("dispatch"),
		Timeout:   deps.Tuning.ActionTimeout,
	})
	a.searcher = dispatch.NewSearcher(dispatch.SearchDeps{
		Backend:   deps.Backend,
		Path:      a.Path,
		Query:     a.Query,
		Panel:     a.Results,
		Notifier:  a.Toast,
		Buttons:   a.Buttons,
		Control:   a.SearchBt,
		Logger:    a.component("search"),
		SearchCap: deps.Tuning.SearchCap,
		Timeout:   deps.Tuning.ActionTimeout,
	})

	a.handlers = map[EventKind]handler{
		KindStartup:              {run: a.onStartup},
		KindPickerChanged:        {run: a.onPickerChanged},
		KindPathEdited:           {run: a.onPathEdited},
		KindMethodSelected:       {run: a.onMethodSelected},
		KindQueryEdited:          {run: a.onQueryEdited},
		KindActionClicked:        {blocking: true, run: a.onActionClicked},
		KindSearchClicked:        {blocking: true, run: a.onSearchClicked},
		KindBrowseClicked:        {blocking: true, run: a.onBrowseClicked},
		KindFolderStatsRequested: {blocking: true, run: a.onFolderStats},
	}
	return a
}

// RunContext fires Startup and drains the event queue until ctx ends. It
// returns once every handler and background loop has stopped.
func (a *App) RunContext(ctx context.Context) error {
	a.logger.Info("console starting")
	if err := a.Handle(ctx, Startup{}); err != nil {
		return err
	}
	for {
		ev, ok := runctx.RecvOrDone(ctx, "event loop", a.logger, a.events)
		if !ok {
			break
		}
		if err := a.Handle(ctx, ev); err != nil {
			a.logger.Warn("event dropped", logging.Field("error", err))
		}
	}
	a.wg.Wait()
	a.logger.Info("console stopped")
	return nil
}

// Post queues ev for the event loop. It reports false once ctx is done.
func (a *App) Post(ctx context.Context, ev Event) bool {
	if ev == nil {
		return false
	}
	return runctx.SendOrDone(ctx, "event post", a.logger, a.events, ev)
}

// Handle looks ev up in the dispatch table and runs its handler.
func (a *App) Handle(ctx context.Context, ev Event) error {
	if ev == nil {
		return ErrNilEvent
	}
	h, ok := a.handlers[ev.Kind()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnhandledEvent, ev.Kind())
	}
	a.logger.Debug("handling event", logging.Field("kind", string(ev.Kind())))
	if h.blocking {
		a.wg.Go(func() { h.run(ctx, ev) })
		return nil
	}
	h.run(ctx, ev)
	return nil
}

// Wait blocks until every blocking handler started so far has returned.
func (a *App) Wait() {
	a.wg.Wait()
}

// Dispatch runs action synchronously.
func (a *App) Dispatch(ctx context.Context, action dispatch.Action) dispatch.Outcome {
	outcome := a.dispatcher.Dispatch(ctx, action)
	a.reportOutcome(KindActionClicked, action, outcome)
	return outcome
}

// Search runs the search synchronously.
func (a *App) Search(ctx context.Context) dispatch.Outcome {
	outcome := a.searcher.Search(ctx)
	a.reportOutcome(KindSearchClicked, "", outcome)
	return outcome
}

// RefreshLog forces one log poll outside the interval loop.
func (a *App) RefreshLog(ctx context.Context) (bool, error) {
	return a.poller.Refresh(ctx)
}

// LoadGauge runs the one-shot storage gauge load synchronously.
func (a *App) LoadGauge(ctx context.Context) bool {
	return a.gaugeLoader.Load(ctx)
}

// PollLogs runs the log loop until ctx ends.
func (a *App) PollLogs(ctx context.Context) error {
	return a.poller.Run(ctx)
}

// PollFailing reports whether the last log poll failed, which the frontends
// use as the backend connection indicator.
func (a *App) PollFailing() bool {
	return a.poller.Failing()
}

func (a *App) onStartup(ctx context.Context, _ Event) {
	a.startOnce.Do(func() {
		a.wg.Go(func() { a.gaugeLoader.Load(ctx) })
		a.wg.Go(func() {
			if err := a.poller.Run(ctx); err != nil {
				a.logger.Warn("log poller stopped with error", logging.Field("error", err))
			}
		})
	})
}

func (a *App) onPickerChanged(_ context.Context, ev Event) {
	picked, ok := ev.(PickerChanged)
	if !ok {
		a.rejected(ev)
		return
	}
	a.resolver.HandlePickerChange(picked.Selection)
}

func (a *App) onPathEdited(_ context.Context, ev Event) {
	edited, ok := ev.(PathEdited)
	if !ok {
		a.rejected(ev)
		return
	}
	a.Path.SetValue(edited.Text)
}

func (a *App) onMethodSelected(_ context.Context, ev Event) {
	selected, ok := ev.(MethodSelected)
	if !ok {
		a.rejected(ev)
		return
	}
	if err := a.Method.Select(selected.Value); err != nil {
		a.logger.Warn("ignoring method selection", logging.Field("error", err))
	}
}

func (a *App) onQueryEdited(_ context.Context, ev Event) {
	edited, ok := ev.(QueryEdited)
	if !ok {
		a.rejected(ev)
		return
	}
	a.Query.SetValue(edited.Text)
}

// Disabled controls do not fire, so a click on a busy control is dropped.
// The claim covers the gap until the dispatcher marks the control busy.
func (a *App) onActionClicked(ctx context.Context, ev Event) {
	clicked, ok := ev.(ActionClicked)
	if !ok {
		a.rejected(ev)
		return
	}
	if control := a.Controls[clicked.Action]; control != nil {
		if !control.TryClaim() {
			a.logger.Debug("ignoring click on busy control", logging.Field("action", string(clicked.Action)))
			return
		}
		defer control.Release()
	}
	a.Dispatch(ctx, clicked.Action)
}

func (a *App) onSearchClicked(ctx context.Context, _ Event) {
	if !a.SearchBt.TryClaim() {
		a.logger.Debug("ignoring click on busy search control")
		return
	}
	defer a.SearchBt.Release()
	a.Search(ctx)
}

func (a *App) onBrowseClicked(ctx context.Context, _ Event) {
	if !a.BrowseBt.TryClaim() {
		return
	}
	defer a.BrowseBt.Release()
	original := a.BrowseBt.Capture()
	a.Buttons.SetBusy(a.BrowseBt)
	defer a.Buttons.SetIdle(a.BrowseBt, original)

	result, err := a.backend.Browse(ctx)
	switch {
	case err == nil && result.Success:
		a.resolver.ApplyBrowsed(result.Path)
	case err == nil:
		message := result.Message
		if message == "" {
			message = "No folder selected."
		}
		a.Toast.Notify("⚠️", message, true)
	case client.IsHTTPStatus(err):
		a.Toast.Notify("❌", client.MessageOf(err), true)
	default:
		a.Toast.Notify("❌", dispatch.NetworkMessage, true)
		a.logger.Error("browse request failed", logging.Field("error", err))
	}
}

func (a *App) onFolderStats(ctx context.Context, _ Event) {
	a.folderLoader.Load(ctx)
}

func (a *App) rejected(ev Event) {
	a.logger.Warn("dropping event",
		logging.Field("kind", string(ev.Kind())),
		logging.Field("error", ErrEventRejected),
	)
}

func (a *App) reportOutcome(kind EventKind, action dispatch.Action, outcome dispatch.Outcome) {
	a.logger.Debug("dispatch outcome",
		logging.Field("kind", string(kind)),
		logging.Field("action", string(action)),
		logging.Field("outcome", outcome.String()),
	)
	if a.hooks.OnOutcome != nil {
		a.hooks.OnOutcome(kind, action, outcome)
	}
}

// component scopes the app logger to one of its parts.
func (a *App) component(name string) *logging.Logger {
	return a.logger.With(logging.Field("component", name))
}

func (a *App) changed(part screen.Part) {
	if a.hooks.OnChange != nil {
		a.hooks.OnChange(part)
	}
}
