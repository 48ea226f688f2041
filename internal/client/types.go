package client

// ActionRequest is the body of the four maintenance endpoints. Method is
// only sent for organize.
type ActionRequest struct {
	Path   string `json:"path"`
	Method string `json:"method,omitempty"`
}

type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SearchRequest struct {
	Path  string `json:"path"`
	Query string `json:"query"`
}

type SearchResult struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size string `json:"size"`
}

type SearchResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Results []SearchResult `json:"results"`
}

type logsResponse struct {
	Logs []string `json:"logs"`
}

type StorageSnapshot struct {
	Success     bool    `json:"success"`
	Message     string  `json:"message"`
	TotalGB     float64 `json:"total_gb"`
	UsedGB      float64 `json:"used_gb"`
	FreeGB      float64 `json:"free_gb"`
	UsedPercent float64 `json:"used_percent"`
}

type folderStatsRequest struct {
	Path string `json:"path"`
}

// FolderStats describes one directory. Size is preformatted by the backend
// ("1.2 GB", or a degraded text such as "Unknown").
type FolderStats struct {
	Success bool   `json:"success"`
	Size    string `json:"size"`
	Files   int    `json:"files"`
	Folders int    `json:"folders"`
}

type BrowseResult struct {
	Success bool   `json:"success"`
	Path    string `json:"path"`
	Message string `json:"message"`
}
