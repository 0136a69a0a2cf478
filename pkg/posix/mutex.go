//go:build linux

package posix

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/clayne/physfs/pkg/platform"
)

// Mutex reproduces the reference backend's reentrancy on top of sync.Mutex
// by tracking the owning goroutine and a hold count. Ownership is keyed on
// the goroutine, not the OS thread: the scheduler reuses a parked holder's
// thread for other goroutines, so a thread id cannot identify the holder.
// The count is only ever touched by the owner, so it needs no atomics.
type Mutex struct {
	inner sync.Mutex
	owner atomic.Int64
	count int
}

var _ platform.Mutex = (*Mutex)(nil)

func (p *Platform) NewMutex() (platform.Mutex, error) {
	return &Mutex{}, nil
}

// Acquire blocks until ownership is obtained. Recursive acquisition by the
// holding goroutine succeeds immediately.
func (m *Mutex) Acquire() error {
	g := gid()
	if m.owner.Load() == g {
		m.count++
		return nil
	}
	m.inner.Lock()
	m.owner.Store(g)
	m.count = 1
	return nil
}

func (m *Mutex) Release() {
	m.count--
	if m.count == 0 {
		m.owner.Store(0)
		m.inner.Unlock()
	}
}

func (m *Mutex) Close() error {
	return nil
}

// gid parses the caller's goroutine id from the first stack-trace line,
// "goroutine N [running]:". Goroutine ids start at 1 and are never reused,
// so 0 is free to mean "unowned".
func gid() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id int64
	for _, c := range buf[len("goroutine "):n] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + int64(c-'0')
	}
	return id
}
