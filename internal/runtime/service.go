package runtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"organizer-console/internal/app"
	"organizer-console/internal/client"
	"organizer-console/internal/config"
	"organizer-console/internal/logging"
	"organizer-console/internal/logpoll"
)

var ErrBackendUnavailable = errors.New("organizer backend unavailable")

type Service interface {
	RunContext(ctx context.Context) error
}

// ConsoleService owns one App together with the backend client and the
// settings watcher that runs beside it.
type ConsoleService struct {
	opts    config.Options
	tuning  config.Tuning
	logger  *logging.Logger
	client  *client.OrganizerClient
	app     *app.App
	watch   func(ctx context.Context, onChange func(config.ConsoleSettings), onError func(error)) error
	watchMu sync.Mutex
	applied config.ConsoleSettings
}

func NewService(opts config.Options, tuning config.Tuning, logger *logging.Logger, hooks app.Hooks) (*ConsoleService, error) {
	if logger == nil {
		panic("runtime.NewService: logger must not be nil")
	}
	opts = config.WithDefaults(opts)
	if err := config.ValidateRequired(opts); err != nil {
		return nil, err
	}
	if err := tuning.Validate(); err != nil {
		return nil, err
	}

	endpoints, err := config.BuildEndpoints(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	logger.Debug("constructed API endpoints",
		logging.Field("base_url", endpoints.BaseURL),
		logging.Field("organize_url", endpoints.Organize),
		logging.Field("logs_url", endpoints.Logs),
		logging.Field("search_url", endpoints.Search),
		logging.Field("system_storage_url", endpoints.SystemStorage),
	)

	detector, err := logpoll.NewDetector(opts.LogChangeDetect)
	if err != nil {
		return nil, err
	}

	// Deadlines are per request (poll_timeout, action_timeout); a client-wide
	// timeout would cut off long organize runs.
	httpClient := &http.Client{}
	organizer := client.New(httpClient, endpoints, logger.With(logging.Field("component", "client")))
	console := app.New(app.Deps{
		Backend:       organizer,
		Endpoints:     endpoints,
		Logger:        logger,
		Tuning:        tuning,
		Detector:      detector,
		InitialPath:   strings.TrimSpace(opts.Path),
		InitialMethod: opts.Method,
		Hooks:         hooks,
	})
	return &ConsoleService{
		opts:   opts,
		tuning: tuning,
		logger: logger,
		client: organizer,
		app:    console,
		watch:  config.WatchSettings,
	}, nil
}

func (s *ConsoleService) App() *app.App {
	return s.app
}

func (s *ConsoleService) Client() *client.OrganizerClient {
	return s.client
}

func (s *ConsoleService) Options() config.Options {
	return s.opts
}

// WaitReady blocks until the backend answers when --wait-ready is set.
func (s *ConsoleService) WaitReady(ctx context.Context) error {
	if !s.opts.WaitReady {
		return nil
	}
	s.logger.Info("waiting for backend", logging.Field("base_url", s.client.Endpoints().BaseURL))
	if err := s.client.WaitReady(ctx, s.tuning.ReadyTimeout); err != nil {
		return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	return nil
}

func (s *ConsoleService) RunContext(ctx context.Context) error {
	if err := s.WaitReady(ctx); err != nil {
		return err
	}

	watchCtx, cancelWatch := context.WithCancel(ctx)
	var wg sync.WaitGroup
	if s.watch != nil {
		wg.Go(func() {
			err := s.watch(watchCtx, s.applySettings, func(err error) {
				s.logger.Debug("settings watcher error", logging.Field("error", err))
			})
			if err != nil && watchCtx.Err() == nil {
				s.logger.Warn("settings watcher stopped", logging.Field("error", err))
			}
		})
	}

	runErr := s.app.RunContext(ctx)
	cancelWatch()
	wg.Wait()
	return runErr
}

// applySettings picks up external edits of the settings file. Debug output
// follows the file; a saved path is only applied while the field is empty so
// typing is never overwritten.
func (s *ConsoleService) applySettings(settings config.ConsoleSettings) {
	s.watchMu.Lock()
	previous := s.applied
	s.applied = settings
	s.watchMu.Unlock()

	if settings.Debug != previous.Debug || settings.Debug != s.logger.DebugEnabled() {
		s.logger.SetDebugEnabled(settings.Debug)
		s.logger.Info("debug output toggled from settings", logging.Field("debug", settings.Debug))
	}
	path := strings.TrimSpace(settings.LastPath)
	if path != "" && strings.TrimSpace(s.app.Path.Value()) == "" {
		s.app.Path.SetValue(path)
		s.logger.Info("path restored from settings", logging.Field("path", path))
	}
	if settings.Method != "" && settings.Method != previous.Method {
		if err := s.app.Method.Select(settings.Method); err != nil {
			s.logger.Debug("ignoring saved method", logging.Field("error", err))
		}
	}
}

// SaveSettings persists the current path and method for the next session.
func (s *ConsoleService) SaveSettings() error {
	opts := s.opts
	opts.Path = s.app.Path.Value()
	if method, ok := s.app.Method.Checked(); ok {
		opts.Method = method
	}
	opts.Debug = s.logger.DebugEnabled()
	return config.SaveSettings(config.SettingsFromOptions(opts))
}

var _ Service = (*ConsoleService)(nil)
