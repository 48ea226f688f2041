package client

import (
	"context"
	"net/http"

	"organizer-console/internal/logging"
)

// Search returns the backend's matches in server order. A 2xx answer with
// success=false is returned as is; callers treat it like a rejection.
func (c *OrganizerClient) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	data, err := c.roundTrip(ctx, "search", http.MethodPost, c.endpoints.Search, req)
	if err != nil {
		return SearchResponse{}, err
	}
	var out SearchResponse
	if err := c.decode("search", data, &out); err != nil {
		return SearchResponse{}, err
	}
	c.logger.Debug("search answered",
		logging.Field("success", out.Success),
		logging.Field("count", len(out.Results)),
	)
	return out, nil
}
