//go:build windows

package main

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

type instanceLock struct {
	handle windows.Handle
}

func (l *instanceLock) Release() error {
	if l == nil || l.handle == 0 {
		return nil
	}
	err := windows.CloseHandle(l.handle)
	l.handle = 0
	if err != nil {
		return fmt.Errorf("close console mutex: %w", err)
	}
	return nil
}

// acquireInstanceLock uses a named session mutex; the name carries key so
// each backend gets its own console.
func acquireInstanceLock(key string) (lock *instanceLock, lockedByOther bool, err error) {
	name, err := windows.UTF16PtrFromString(`Local\OrganizerConsole-` + key)
	if err != nil {
		return nil, false, fmt.Errorf("encode mutex name: %w", err)
	}
	handle, err := windows.CreateMutex(nil, false, name)
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		if handle != 0 {
			_ = windows.CloseHandle(handle)
		}
		return nil, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("create console mutex: %w", err)
	}
	return &instanceLock{handle: handle}, false, nil
}
