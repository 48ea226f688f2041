package runtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"organizer-console/internal/logging"
)

var (
	ErrAlreadyRunning = errors.New("console is already running")
	ErrNilService     = errors.New("runtime service must not be nil")
)

// Controller owns the background run of one Service. A stopped controller
// can be started again.
type Controller struct {
	rootCtx context.Context
	logger  *logging.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	lastErr error
}

func NewController(rootCtx context.Context, logger *logging.Logger) *Controller {
	if logger == nil {
		panic("runtime.NewController: logger must not be nil")
	}
	if rootCtx == nil {
		rootCtx = context.Background()
	}
	return &Controller{rootCtx: rootCtx, logger: logger}
}

// Start runs service until Stop or the root context ends. onExit, if set,
// gets the service's return value after the controller is idle again.
func (c *Controller) Start(service Service, onExit func(error)) error {
	if service == nil {
		return ErrNilService
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done != nil {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(c.rootCtx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done
	c.lastErr = nil
	c.logger.Debug("console service starting")

	go func() {
		defer close(done)
		defer cancel()
		runErr := service.RunContext(ctx)
		c.logExit(runErr)

		c.mu.Lock()
		c.cancel = nil
		c.done = nil
		if !isCancellation(runErr) {
			c.lastErr = runErr
		}
		c.mu.Unlock()

		if onExit != nil {
			onExit(runErr)
		}
	}()
	return nil
}

func (c *Controller) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Wait blocks until the current run ends. A zero timeout waits forever; the
// result is false when the timeout passed first.
func (c *Controller) Wait(timeout time.Duration) bool {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done == nil {
		return true
	}
	if timeout <= 0 {
		<-done
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

func (c *Controller) StopAndWait(timeout time.Duration) bool {
	c.Stop()
	return c.Wait(timeout)
}

func (c *Controller) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done != nil
}

// Err is the error of the last run, nil when it ended by cancellation.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller) logExit(err error) {
	switch {
	case err == nil:
		c.logger.Info("console service exited")
	case isCancellation(err):
		c.logger.Debug("console service canceled", logging.Field("error", err))
	default:
		c.logger.Warn("console service failed", logging.Field("error", err))
	}
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
