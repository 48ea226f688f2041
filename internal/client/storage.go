package client

import (
	"context"
	"errors"
	"net/http"

	"organizer-console/internal/logging"
)

func (c *OrganizerClient) FetchSystemStorage(ctx context.Context) (StorageSnapshot, error) {
	data, err := c.roundTrip(ctx, "system storage", http.MethodGet, c.endpoints.SystemStorage, nil)
	if err != nil {
		return StorageSnapshot{}, err
	}
	var out StorageSnapshot
	if err := c.decode("system storage", data, &out); err != nil {
		return StorageSnapshot{}, err
	}
	if !out.Success {
		message := out.Message
		if message == "" {
			message = "backend reported failure"
		}
		return StorageSnapshot{}, errors.New("system storage: " + message)
	}
	c.logger.Debug("system storage loaded",
		logging.Field("total_gb", out.TotalGB),
		logging.Field("used_percent", out.UsedPercent),
	)
	return out, nil
}

// FetchFolderStats asks for size and entry counts of path. The backend
// answers success=false with placeholder values instead of an error status;
// those are returned unchanged.
func (c *OrganizerClient) FetchFolderStats(ctx context.Context, path string) (FolderStats, error) {
	data, err := c.roundTrip(ctx, "folder stats", http.MethodPost, c.endpoints.FolderStorage, folderStatsRequest{Path: path})
	if err != nil {
		return FolderStats{}, err
	}
	var out FolderStats
	if err := c.decode("folder stats", data, &out); err != nil {
		return FolderStats{}, err
	}
	return out, nil
}
