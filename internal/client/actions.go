package client

import (
	"context"
	"net/http"

	"organizer-console/internal/logging"
)

// PostAction runs one maintenance action against url.
func (c *OrganizerClient) PostAction(ctx context.Context, url string, req ActionRequest) (ActionResponse, error) {
	data, err := c.roundTrip(ctx, "action", http.MethodPost, url, req)
	if err != nil {
		return ActionResponse{}, err
	}
	var out ActionResponse
	if err := c.decode("action", data, &out); err != nil {
		return ActionResponse{}, err
	}
	c.logger.Debug("action accepted", logging.Field("url", url), logging.Field("message", out.Message))
	return out, nil
}
