// Package dispatch turns action and search clicks into backend requests.
package dispatch

import (
	"context"
	"errors"
	"strings"
	"time"

	"organizer-console/internal/button"
	"organizer-console/internal/client"
	"organizer-console/internal/config"
	"organizer-console/internal/logging"
)

type Action string

const (
	ActionOrganize     Action = "organize"
	ActionUndo         Action = "undo"
	ActionDuplicates   Action = "duplicates"
	ActionEmptyFolders Action = "empty_folders"
)

// Actions lists the maintenance actions in display order.
var Actions = []Action{ActionOrganize, ActionUndo, ActionDuplicates, ActionEmptyFolders}

const (
	DefaultMethod = "type"

	MissingPathMessage = "Please paste an absolute directory path first!"
	NetworkMessage     = "Network error. Is the server running?"
)

type Outcome int

const (
	OutcomeRejected Outcome = iota
	OutcomeSucceeded
	OutcomeFailed
	OutcomeTransportError
	OutcomeUnknownAction
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	case OutcomeTransportError:
		return "transport_error"
	case OutcomeUnknownAction:
		return "unknown_action"
	default:
		return "unknown"
	}
}

type Backend interface {
	PostAction(ctx context.Context, url string, req client.ActionRequest) (client.ActionResponse, error)
	Search(ctx context.Context, req client.SearchRequest) (client.SearchResponse, error)
}

type Notifier interface {
	Notify(icon string, message string, isError bool)
}

type PathField interface {
	Value() string
	Focus()
}

type MethodGroup interface {
	Checked() (string, bool)
}

type LogRefresher interface {
	Refresh(ctx context.Context) (bool, error)
}

// Endpoints maps each action to its backend URL.
func Endpoints(api config.APIEndpoints) map[Action]string {
	return map[Action]string{
		ActionOrganize:     api.Organize,
		ActionUndo:         api.Undo,
		ActionDuplicates:   api.Duplicates,
		ActionEmptyFolders: api.EmptyFolders,
	}
}

type Deps struct {
	Backend   Backend
	Endpoints map[Action]string
	Path      PathField
	Method    MethodGroup
	Notifier  Notifier
	Buttons   *button.Controller
	Controls  map[Action]*button.Control
	Logs      LogRefresher
	Logger    *logging.Logger
	Timeout   time.Duration
}

type Dispatcher struct {
	backend   Backend
	endpoints map[Action]string
	path      PathField
	method    MethodGroup
	notifier  Notifier
	buttons   *button.Controller
	controls  map[Action]*button.Control
	logs      LogRefresher
	logger    *logging.Logger
	timeout   time.Duration
}

func NewDispatcher(deps Deps) *Dispatcher {
	if deps.Logger == nil {
		panic("dispatch.NewDispatcher: logger must not be nil")
	}
	if deps.Backend == nil || deps.Path == nil || deps.Notifier == nil || deps.Buttons == nil || deps.Logs == nil {
		panic("dispatch.NewDispatcher: missing dependency")
	}
	return &Dispatcher{
		backend:   deps.Backend,
		endpoints: deps.Endpoints,
		path:      deps.Path,
		method:    deps.Method,
		notifier:  deps.Notifier,
		buttons:   deps.Buttons,
		controls:  deps.Controls,
		logs:      deps.Logs,
		logger:    deps.Logger,
		timeout:   deps.Timeout,
	}
}

// Dispatch runs action against the current path. It issues at most one
// request, keeps the action's control busy for exactly that request and
// forces a log refresh once the request settles.
func (d *Dispatcher) Dispatch(ctx context.Context, action Action) Outcome {
	path := strings.TrimSpace(d.path.Value())
	if action != ActionUndo && path == "" {
		d.notifier.Notify("⚠️", MissingPathMessage, true)
		d.path.Focus()
		return OutcomeRejected
	}

	req := client.ActionRequest{Path: path}
	if action == ActionOrganize {
		req.Method = d.checkedMethod()
	}

	url, ok := d.endpoints[action]
	if !ok || url == "" {
		d.logger.Debug("ignoring unknown action", logging.Field("action", string(action)))
		return OutcomeUnknownAction
	}

	control := d.controls[action]
	original := control.Capture()
	d.buttons.SetBusy(control)
	defer func() {
		d.buttons.SetIdle(control, original)
		if _, err := d.logs.Refresh(ctx); err != nil {
			d.logger.Debug("forced log refresh failed", logging.Field("error", err))
		}
	}()

	reqCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	started := time.Now()
	resp, err := d.backend.PostAction(reqCtx, url, req)
	elapsed := time.Since(started)
	switch {
	case err == nil:
		d.notifier.Notify("✅", resp.Message, false)
		d.logger.Info("action completed",
			logging.Field("action", string(action)),
			logging.Field("duration", elapsed),
			logging.Field("message", resp.Message),
		)
		return OutcomeSucceeded
	case client.IsHTTPStatus(err):
		d.notifier.Notify("❌", client.MessageOf(err), true)
		d.logger.Warn("action rejected by backend",
			logging.Field("action", string(action)),
			logging.Field("duration", elapsed),
			logging.Field("error", err),
		)
		return OutcomeFailed
	default:
		d.notifier.Notify("❌", NetworkMessage, true)
		d.logger.Error("action request failed",
			logging.Field("action", string(action)),
			logging.Field("url", url),
			logging.Field("timeout", errors.Is(err, context.DeadlineExceeded)),
			logging.Field("error", err),
		)
		return OutcomeTransportError
	}
}

func (d *Dispatcher) checkedMethod() string {
	if d.method == nil {
		return DefaultMethod
	}
	method, ok := d.method.Checked()
	if !ok || strings.TrimSpace(method) == "" {
		return DefaultMethod
	}
	return method
}
