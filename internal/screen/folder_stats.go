package screen

import (
	"sync"

	"organizer-console/internal/client"
)

type FolderStatsState struct {
	Path    string
	Stats   client.FolderStats
	Present bool
}

type FolderStats struct {
	onChange ChangeFunc

	mu    sync.Mutex
	state FolderStatsState
}

func NewFolderStats(onChange ChangeFunc) *FolderStats {
	return &FolderStats{onChange: onChange}
}

func (f *FolderStats) Set(path string, stats client.FolderStats) {
	f.mu.Lock()
	f.state = FolderStatsState{Path: path, Stats: stats, Present: true}
	f.mu.Unlock()
	f.onChange.fire(PartStats)
}

func (f *FolderStats) State() FolderStatsState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}
