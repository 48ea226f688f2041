package screen

import (
	"slices"
	"sync"

	"organizer-console/internal/client"
)

type ResultsState struct {
	Visible          bool
	Placeholder      string
	PlaceholderError bool
	Rows             []client.SearchResult
	Status           string
}

// ResultsTable shows either a placeholder row or result rows, never both.
type ResultsTable struct {
	onChange ChangeFunc

	mu    sync.Mutex
	state ResultsState
}

func NewResultsTable(onChange ChangeFunc) *ResultsTable {
	return &ResultsTable{onChange: onChange}
}

func (r *ResultsTable) Show() {
	r.update(func(s *ResultsState) { s.Visible = true })
}

func (r *ResultsTable) Hide() {
	r.update(func(s *ResultsState) { s.Visible = false })
}

func (r *ResultsTable) SetPlaceholder(text string, isError bool) {
	r.update(func(s *ResultsState) {
		s.Placeholder = text
		s.PlaceholderError = isError
		s.Rows = nil
	})
}

func (r *ResultsTable) SetRows(rows []client.SearchResult) {
	r.update(func(s *ResultsState) {
		s.Placeholder = ""
		s.PlaceholderError = false
		s.Rows = slices.Clone(rows)
	})
}

func (r *ResultsTable) SetStatus(text string) {
	r.update(func(s *ResultsState) { s.Status = text })
}

func (r *ResultsTable) State() ResultsState {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.state
	out.Rows = slices.Clone(r.state.Rows)
	return out
}

func (r *ResultsTable) update(fn func(*ResultsState)) {
	r.mu.Lock()
	fn(&r.state)
	r.mu.Unlock()
	r.onChange.fire(PartResults)
}
