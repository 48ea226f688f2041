package client

import (
	"context"
	"net/http"
)

// FetchLogs returns the full backend log buffer.
func (c *OrganizerClient) FetchLogs(ctx context.Context) ([]string, error) {
	data, err := c.roundTrip(ctx, "logs", http.MethodGet, c.endpoints.Logs, nil)
	if err != nil {
		return nil, err
	}
	var out logsResponse
	if err := c.decode("logs", data, &out); err != nil {
		return nil, err
	}
	if out.Logs == nil {
		return []string{}, nil
	}
	return out.Logs, nil
}
