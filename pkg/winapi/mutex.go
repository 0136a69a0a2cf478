//go:build windows

package winapi

import (
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/clayne/physfs/pkg/platform"
)

// Mutex wraps an unnamed Windows mutex object. The native object is
// reentrant per OS thread, which the contract relies on.
type Mutex struct {
	handle windows.Handle
}

var _ platform.Mutex = (*Mutex)(nil)

func (p *Platform) NewMutex() (platform.Mutex, error) {
	h, err := windows.CreateMutex(nil, false, nil)
	if err != nil {
		return nil, fmt.Errorf("winapi: create mutex: %w", nativeError(err))
	}
	return &Mutex{handle: h}, nil
}

// Acquire blocks until ownership is obtained. Contention is not an error;
// only a failed wait reports one.
func (m *Mutex) Acquire() error {
	event, err := windows.WaitForSingleObject(m.handle, windows.INFINITE)
	if event == windows.WAIT_FAILED {
		return fmt.Errorf("winapi: mutex wait: %w", nativeError(err))
	}
	return nil
}

func (m *Mutex) Release() {
	windows.ReleaseMutex(m.handle)
}

func (m *Mutex) Close() error {
	windows.CloseHandle(m.handle)
	m.handle = windows.InvalidHandle
	return nil
}
