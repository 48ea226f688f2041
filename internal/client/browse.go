package client

import (
	"context"
	"net/http"
)

// Browse opens the backend host's native folder dialog and waits for the
// operator to choose. Success is false when the dialog was dismissed.
func (c *OrganizerClient) Browse(ctx context.Context) (BrowseResult, error) {
	data, err := c.roundTrip(ctx, "browse", http.MethodGet, c.endpoints.Browse, nil)
	if err != nil {
		return BrowseResult{}, err
	}
	var out BrowseResult
	if err := c.decode("browse", data, &out); err != nil {
		return BrowseResult{}, err
	}
	return out, nil
}
