package client

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"

	"organizer-console/internal/logging"
)

// WaitReady probes the log endpoint until the backend answers with JSON or
// maxElapsed passes. HTTP errors count as ready: the server is up.
func (c *OrganizerClient) WaitReady(ctx context.Context, maxElapsed time.Duration) error {
	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = readyProbeDelay
	retry.MaxInterval = readyProbeMax
	retry.Reset()

	attempt := 0
	opts := []backoff.RetryOption{
		backoff.WithBackOff(retry),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Info("backend not reachable yet",
				logging.Field("attempt", attempt),
				logging.Field("retry_in", next),
				logging.Field("error", err),
			)
		}),
	}
	if maxElapsed > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(maxElapsed))
	}

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		_, err := c.FetchLogs(ctx)
		if err == nil || IsHTTPStatus(err) {
			return struct{}{}, nil
		}
		return struct{}{}, err
	}, opts...)
	if err != nil {
		return err
	}
	c.logger.Debug("backend ready", logging.Field("attempts", attempt))
	return nil
}
