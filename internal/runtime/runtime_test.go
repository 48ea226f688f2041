package runtime

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"organizer-console/internal/app"
	"organizer-console/internal/config"
	"organizer-console/internal/logging"
)

func quietLogger() *logging.Logger {
	logger := logging.New(false)
	logger.SetTerminalOutputEnabled(false)
	return logger
}

type blockingService struct {
	started chan struct{}
	err     error
}

func (s *blockingService) RunContext(ctx context.Context) error {
	close(s.started)
	<-ctx.Done()
	if s.err != nil {
		return s.err
	}
	return ctx.Err()
}

func TestController_StartStopWait(t *testing.T) {
	c := NewController(context.Background(), quietLogger())
	svc := &blockingService{started: make(chan struct{})}
	exited := make(chan error, 1)

	if err := c.Start(svc, func(err error) { exited <- err }); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	<-svc.started
	if !c.IsRunning() {
		t.Fatal("IsRunning() = false after Start")
	}
	if err := c.Start(svc, nil); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second Start() error = %v, want ErrAlreadyRunning", err)
	}
	if !c.StopAndWait(2 * time.Second) {
		t.Fatal("StopAndWait() timed out")
	}
	if c.IsRunning() {
		t.Fatal("IsRunning() = true after stop")
	}
	if err := <-exited; !errors.Is(err, context.Canceled) {
		t.Fatalf("exit error = %v", err)
	}
	if err := c.Err(); err != nil {
		t.Fatalf("Err() = %v after cancellation, want nil", err)
	}
}

func TestController_RecordsFailureAndRestarts(t *testing.T) {
	c := NewController(context.Background(), quietLogger())
	boom := errors.New("boom")
	svc := &blockingService{started: make(chan struct{}), err: boom}
	if err := c.Start(svc, nil); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	<-svc.started
	if !c.StopAndWait(2 * time.Second) {
		t.Fatal("StopAndWait() timed out")
	}
	if err := c.Err(); !errors.Is(err, boom) {
		t.Fatalf("Err() = %v, want %v", err, boom)
	}

	again := &blockingService{started: make(chan struct{})}
	if err := c.Start(again, nil); err != nil {
		t.Fatalf("restart error = %v", err)
	}
	<-again.started
	if c.Err() != nil {
		t.Fatal("Err() not reset by Start")
	}
	c.Stop()
	if !c.Wait(2 * time.Second) {
		t.Fatal("Wait() timed out")
	}
}

func TestController_NilService(t *testing.T) {
	c := NewController(nil, quietLogger())
	if err := c.Start(nil, nil); !errors.Is(err, ErrNilService) {
		t.Fatalf("Start(nil) error = %v", err)
	}
	if !c.Wait(time.Millisecond) {
		t.Fatal("Wait() on idle controller should return true")
	}
}

func TestNewService_RejectsBadConfig(t *testing.T) {
	logger := quietLogger()
	if _, err := NewService(config.Options{BaseURL: "ftp://x"}, config.DefaultTuning(), logger, app.Hooks{}); err == nil {
		t.Fatal("expected invalid base URL error")
	}
	if _, err := NewService(config.Options{LogChangeDetect: "mtime"}, config.DefaultTuning(), logger, app.Hooks{}); err == nil {
		t.Fatal("expected unknown detector error")
	}
	bad := config.DefaultTuning()
	bad.PollInterval = 0
	if _, err := NewService(config.Options{}, bad, logger, app.Hooks{}); err == nil {
		t.Fatal("expected tuning validation error")
	}
}

func TestNewService_Defaults(t *testing.T) {
	svc, err := NewService(config.Options{Path: " /data "}, config.DefaultTuning(), quietLogger(), app.Hooks{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if svc.Options().BaseURL != config.DefaultBaseURL {
		t.Fatalf("BaseURL = %q", svc.Options().BaseURL)
	}
	if svc.App().Path.Value() != "/data" {
		t.Fatalf("initial path = %q", svc.App().Path.Value())
	}
	if m, _ := svc.App().Method.Checked(); m != "type" {
		t.Fatalf("initial method = %q", m)
	}
}

func TestApplySettings(t *testing.T) {
	logger := quietLogger()
	svc, err := NewService(config.Options{}, config.DefaultTuning(), logger, app.Hooks{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	svc.applySettings(config.ConsoleSettings{LastPath: "/saved", Method: "date", Debug: true})
	if svc.App().Path.Value() != "/saved" || !logger.DebugEnabled() {
		t.Fatalf("path=%q debug=%v", svc.App().Path.Value(), logger.DebugEnabled())
	}
	if m, _ := svc.App().Method.Checked(); m != "date" {
		t.Fatalf("method = %q", m)
	}

	svc.App().Path.SetValue("/typed")
	svc.applySettings(config.ConsoleSettings{LastPath: "/other"})
	if svc.App().Path.Value() != "/typed" {
		t.Fatalf("typed path overwritten: %q", svc.App().Path.Value())
	}
	if logger.DebugEnabled() {
		t.Fatal("debug not turned off")
	}
}

func TestRunContext_WaitReadyFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	tuning := config.DefaultTuning()
	tuning.ReadyTimeout = 200 * time.Millisecond
	svc, err := NewService(config.Options{BaseURL: srv.URL, WaitReady: true}, tuning, quietLogger(), app.Hooks{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	svc.watch = nil
	if err := svc.RunContext(context.Background()); !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("RunContext() error = %v", err)
	}
}

func TestRunContext_RunsAppUntilCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/logs":
			_, _ = w.Write([]byte(`{"logs":["--- ready ---"]}`))
		default:
			_, _ = w.Write([]byte(`{"success":true,"total_gb":10,"used_percent":10}`))
		}
	}))
	defer srv.Close()

	tuning := config.DefaultTuning()
	tuning.PollInterval = 10 * time.Millisecond
	svc, err := NewService(config.Options{BaseURL: srv.URL}, tuning, quietLogger(), app.Hooks{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	watched := make(chan struct{})
	svc.watch = func(ctx context.Context, _ func(config.ConsoleSettings), _ func(error)) error {
		close(watched)
		<-ctx.Done()
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.RunContext(ctx) }()

	<-watched
	deadline := time.Now().Add(5 * time.Second)
	for svc.App().Log.Version() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if svc.App().Log.Version() == 0 {
		t.Fatal("log never rendered")
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("RunContext() error = %v", err)
	}
}
