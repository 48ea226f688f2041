//go:build !windows

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

type instanceLock struct {
	lock *flock.Flock
	path string
}

func (l *instanceLock) Release() error {
	if l == nil || l.lock == nil || !l.lock.Locked() {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", l.path, err)
	}
	_ = os.Remove(l.path)
	return nil
}

// acquireInstanceLock takes an advisory file lock under the user cache
// directory. lockedByOther is true when another console holds it.
func acquireInstanceLock(key string) (lock *instanceLock, lockedByOther bool, err error) {
	root, err := os.UserCacheDir()
	if err != nil {
		return nil, false, fmt.Errorf("resolve cache directory: %w", err)
	}
	dir := filepath.Join(root, "organizer-console")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, false, fmt.Errorf("create lock directory: %w", err)
	}
	path := filepath.Join(dir, "console-"+key+".lock")
	f := flock.New(path)
	locked, err := f.TryLock()
	if err != nil {
		return nil, false, fmt.Errorf("lock %s: %w", path, err)
	}
	if !locked {
		return nil, true, nil
	}
	return &instanceLock{lock: f, path: path}, false, nil
}
