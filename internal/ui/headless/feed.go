package headless

import (
	"slices"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"organizer-console/internal/screen"
)

// changeFeed coalesces screen change notifications from any goroutine into
// one pending set that the program drains between frames.
type changeFeed struct {
	mu      sync.Mutex
	pending map[screen.Part]struct{}
	signal  chan struct{}
}

func newChangeFeed() *changeFeed {
	return &changeFeed{
		pending: map[screen.Part]struct{}{},
		signal:  make(chan struct{}, 1),
	}
}

func (f *changeFeed) mark(part screen.Part) {
	f.mu.Lock()
	f.pending[part] = struct{}{}
	f.mu.Unlock()
	select {
	case f.signal <- struct{}{}:
	default:
	}
}

func (f *changeFeed) drain() []screen.Part {
	f.mu.Lock()
	defer f.mu.Unlock()
	parts := make([]screen.Part, 0, len(f.pending))
	for part := range f.pending {
		parts = append(parts, part)
	}
	clear(f.pending)
	slices.Sort(parts)
	return parts
}

func waitForChange(f *changeFeed) tea.Cmd {
	return func() tea.Msg {
		<-f.signal
		return changedMsg(f.drain())
	}
}
