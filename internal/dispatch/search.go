package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"organizer-console/internal/button"
	"organizer-console/internal/client"
	"organizer-console/internal/logging"
)

const (
	MissingSearchInputMessage = "Please provide both a Target Directory and a Search Query."
	SearchingMessage          = "Searching, please wait..."
	NoMatchesMessage          = "No files found matching your query."
	ZeroMatchesStatus         = "0 matches found."
	SearchFailedMessage       = "Search failed. Please ensure the path exists."
	SearchFailedStatus        = "Search failed."
	SearchNetworkMessage      = "Network error occurred."

	DefaultSearchCap = 1000
)

type QueryField interface {
	Value() string
}

// ResultsPanel is the table that shows search matches.
type ResultsPanel interface {
	Show()
	SetPlaceholder(text string, isError bool)
	SetRows(rows []client.SearchResult)
	SetStatus(text string)
}

type SearchDeps struct {
	Backend   Backend
	Path      PathField
	Query     QueryField
	Panel     ResultsPanel
	Notifier  Notifier
	Buttons   *button.Controller
	Control   *button.Control
	Logger    *logging.Logger
	SearchCap int
	Timeout   time.Duration
}

type Searcher struct {
	backend   Backend
	path      PathField
	query     QueryField
	panel     ResultsPanel
	notifier  Notifier
	buttons   *button.Controller
	control   *button.Control
	logger    *logging.Logger
	searchCap int
	timeout   time.Duration
}

func NewSearcher(deps SearchDeps) *Searcher {
	if deps.Logger == nil {
		panic("dispatch.NewSearcher: logger must not be nil")
	}
	if deps.Backend == nil || deps.Path == nil || deps.Query == nil || deps.Panel == nil || deps.Notifier == nil || deps.Buttons == nil {
		panic("dispatch.NewSearcher: missing dependency")
	}
	if deps.SearchCap <= 0 {
		deps.SearchCap = DefaultSearchCap
	}
	return &Searcher{
		backend:   deps.Backend,
		path:      deps.Path,
		query:     deps.Query,
		panel:     deps.Panel,
		notifier:  deps.Notifier,
		buttons:   deps.Buttons,
		control:   deps.Control,
		logger:    deps.Logger,
		searchCap: deps.SearchCap,
		timeout:   deps.Timeout,
	}
}

// FormatMatchStatus renders the count line. A count at or above searchCap is
// suffixed with "+" because the backend stops collecting there.
func FormatMatchStatus(count int, query string, searchCap int) string {
	suffix := ""
	if searchCap > 0 && count >= searchCap {
		suffix = "+"
	}
	return fmt.Sprintf("Found %d%s matches for \"%s\"", count, suffix, query)
}

func (s *Searcher) Search(ctx context.Context) Outcome {
	path := strings.TrimSpace(s.path.Value())
	query := strings.TrimSpace(s.query.Value())
	if path == "" || query == "" {
		s.notifier.Notify("⚠️", MissingSearchInputMessage, true)
		return OutcomeRejected
	}

	original := s.control.Capture()
	s.panel.Show()
	s.panel.SetPlaceholder(SearchingMessage, false)
	s.panel.SetStatus(fmt.Sprintf("Searching inside %s...", path))
	s.buttons.SetBusy(s.control)
	defer s.buttons.SetIdle(s.control, original)

	reqCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.backend.Search(reqCtx, client.SearchRequest{Path: path, Query: query})
	switch {
	case err == nil && resp.Success:
		if len(resp.Results) == 0 {
			s.panel.SetPlaceholder(NoMatchesMessage, false)
			s.panel.SetStatus(ZeroMatchesStatus)
		} else {
			s.panel.SetRows(resp.Results)
			s.panel.SetStatus(FormatMatchStatus(len(resp.Results), query, s.searchCap))
		}
		s.logger.Info("search completed",
			logging.Field("query", query),
			logging.Field("count", len(resp.Results)),
		)
		return OutcomeSucceeded
	case err == nil || client.IsHTTPStatus(err):
		message := resp.Message
		if err != nil {
			message = backendMessage(err)
		}
		if message == "" {
			message = SearchFailedMessage
		}
		s.notifier.Notify("❌", message, true)
		s.panel.SetPlaceholder("Error: "+message, true)
		s.panel.SetStatus(SearchFailedStatus)
		s.logger.Warn("search rejected by backend", logging.Field("message", message), logging.Field("error", err))
		return OutcomeFailed
	default:
		s.notifier.Notify("❌", SearchNetworkMessage, true)
		s.panel.SetPlaceholder("Network Error: "+err.Error(), true)
		s.panel.SetStatus(SearchFailedStatus)
		s.logger.Error("search request failed", logging.Field("error", err))
		return OutcomeTransportError
	}
}

func backendMessage(err error) string {
	var statusErr *client.HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return ""
}
