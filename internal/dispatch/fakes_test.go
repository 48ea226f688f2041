package dispatch

import (
	"context"
	"sync"

	"organizer-console/internal/client"
	"organizer-console/internal/logging"
)

type actionCall struct {
	url string
	req client.ActionRequest
}

type fakeBackend struct {
	mu          sync.Mutex
	actionCalls []actionCall
	searchCalls []client.SearchRequest
	actionResp  client.ActionResponse
	actionErr   error
	searchResp  client.SearchResponse
	searchErr   error
	// onCall runs inside the request, while the control is busy.
	onCall func()
}

func (b *fakeBackend) PostAction(_ context.Context, url string, req client.ActionRequest) (client.ActionResponse, error) {
	b.mu.Lock()
	b.actionCalls = append(b.actionCalls, actionCall{url: url, req: req})
	b.mu.Unlock()
	if b.onCall != nil {
		b.onCall()
	}
	return b.actionResp, b.actionErr
}

func (b *fakeBackend) Search(_ context.Context, req client.SearchRequest) (client.SearchResponse, error) {
	b.mu.Lock()
	b.searchCalls = append(b.searchCalls, req)
	b.mu.Unlock()
	if b.onCall != nil {
		b.onCall()
	}
	return b.searchResp, b.searchErr
}

type fakeField struct {
	value   string
	focused int
}

func (f *fakeField) Value() string { return f.value }
func (f *fakeField) Focus()        { f.focused++ }

type fakeMethod struct {
	value string
	ok    bool
}

func (m fakeMethod) Checked() (string, bool) { return m.value, m.ok }

type toast struct {
	icon    string
	message string
	isError bool
}

type fakeNotifier struct {
	toasts []toast
}

func (n *fakeNotifier) Notify(icon string, message string, isError bool) {
	n.toasts = append(n.toasts, toast{icon: icon, message: message, isError: isError})
}

type fakeRefresher struct {
	calls int
}

func (r *fakeRefresher) Refresh(context.Context) (bool, error) {
	r.calls++
	return true, nil
}

type fakePanel struct {
	shown        bool
	placeholders []string
	placeholderE bool
	rows         []client.SearchResult
	statuses     []string
}

func (p *fakePanel) Show() { p.shown = true }

func (p *fakePanel) SetPlaceholder(text string, isError bool) {
	p.placeholders = append(p.placeholders, text)
	p.placeholderE = isError
	p.rows = nil
}

func (p *fakePanel) SetRows(rows []client.SearchResult) { p.rows = rows }

func (p *fakePanel) SetStatus(text string) { p.statuses = append(p.statuses, text) }

func (p *fakePanel) lastStatus() string {
	if len(p.statuses) == 0 {
		return ""
	}
	return p.statuses[len(p.statuses)-1]
}

func (p *fakePanel) lastPlaceholder() string {
	if len(p.placeholders) == 0 {
		return ""
	}
	return p.placeholders[len(p.placeholders)-1]
}

func quietLogger() *logging.Logger {
	logger := logging.New(false)
	logger.SetTerminalOutputEnabled(false)
	return logger
}
