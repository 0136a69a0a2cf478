//go:build windows

package winapi

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clayne/physfs/pkg/platform"
)

func newPlatform(t *testing.T) *Platform {
	t.Helper()
	p, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

func TestSeekTellConsistency(t *testing.T) {
	p := newPlatform(t)
	path := filepath.Join(t.TempDir(), "a.bin")

	f, err := p.OpenWrite(path)
	require.NoError(t, err)
	defer f.Close()

	payload := []byte("0123456789abcdef")
	n, err := f.Write(payload)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)

	pos, err := f.Tell()
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), pos)

	size, err := f.Length()
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), size)
}

func TestAppendScenario(t *testing.T) {
	p := newPlatform(t)
	path := filepath.Join(t.TempDir(), "a.txt")

	w, err := p.OpenWrite(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("0123456789"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	a, err := p.OpenAppend(path)
	require.NoError(t, err)
	pos, err := a.Tell()
	require.NoError(t, err)
	assert.Equal(t, int64(10), pos, "append must start at the existing length")

	_, err = a.Write([]byte("abcde"))
	require.NoError(t, err)
	require.NoError(t, a.Flush())
	require.NoError(t, a.Close())

	st, err := p.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, platform.TypeRegular, st.Type)
	assert.Equal(t, int64(15), st.Size)
}

func TestCheckTransferLen(t *testing.T) {
	assert.NoError(t, checkTransferLen(0))
	assert.NoError(t, checkTransferLen(math.MaxUint16))
	if strconv.IntSize == 64 {
		assert.NoError(t, checkTransferLen(int(int64(math.MaxUint32))))
		err := checkTransferLen(int(int64(math.MaxUint32) + 1))
		assert.True(t, errors.Is(err, platform.ErrInvalidArgument))
	}
}

func TestOpenReadMissing(t *testing.T) {
	p := newPlatform(t)
	_, err := p.OpenRead(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
	var nerr *platform.NativeError
	assert.True(t, errors.As(err, &nerr))
	assert.NotEmpty(t, nerr.Message)
}

func TestEnumerate(t *testing.T) {
	p := newPlatform(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "two"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	var names []string
	err := p.Enumerate(dir, false, func(origDir, name string) {
		assert.Equal(t, "/virt", origDir)
		names = append(names, name)
	}, "/virt")
	require.NoError(t, err)
	sort.Strings(names)
	assert.Equal(t, []string{"one", "sub", "two"}, names)
	assert.NotContains(t, names, ".")
	assert.NotContains(t, names, "..")
}

func TestEnumerateEmptyDir(t *testing.T) {
	p := newPlatform(t)
	calls := 0
	err := p.Enumerate(t.TempDir(), false, func(_, _ string) { calls++ }, "/")
	require.NoError(t, err)
	assert.Equal(t, 0, calls)
}

func TestEnumerateMissingDir(t *testing.T) {
	p := newPlatform(t)
	calls := 0
	err := p.Enumerate(filepath.Join(t.TempDir(), "absent"), false, func(_, _ string) { calls++ }, "/")
	assert.True(t, errors.Is(err, platform.ErrNotExist))
	assert.Equal(t, 0, calls)
}

func TestStat(t *testing.T) {
	p := newPlatform(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	st, err := p.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, platform.TypeRegular, st.Type)
	assert.Equal(t, int64(5), st.Size)
	assert.InDelta(t, time.Now().Unix(), st.ModTime, 60)

	st, err = p.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, platform.TypeDirectory, st.Type)
	assert.Equal(t, int64(0), st.Size)
}

func TestStatMissing(t *testing.T) {
	p := newPlatform(t)
	_, err := p.Stat(filepath.Join(t.TempDir(), "ghost"))
	assert.True(t, errors.Is(err, platform.ErrNotExist))
}

func TestMutexSequential(t *testing.T) {
	p := newPlatform(t)
	m, err := p.NewMutex()
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Acquire())
	m.Release()
	require.NoError(t, m.Acquire())
	m.Release()
}

func TestMutexRecursive(t *testing.T) {
	// the native mutex is reentrant per OS thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	p := newPlatform(t)
	m, err := p.NewMutex()
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Acquire())
	require.NoError(t, m.Acquire())
	m.Release()
	m.Release()
}

func TestMutexBlocks(t *testing.T) {
	// the native mutex must be released by the acquiring thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	p := newPlatform(t)
	m, err := p.NewMutex()
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Acquire())

	acquired := make(chan struct{})
	go func() {
		m.Acquire()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second acquire succeeded while mutex was held")
	case <-time.After(100 * time.Millisecond):
	}

	m.Release()
	select {
	case <-acquired:
	case <-time.After(5 * time.Second):
		t.Fatal("second acquire never woke up")
	}
}

func TestEnvironment(t *testing.T) {
	p := newPlatform(t)

	home, err := p.UserDir()
	require.NoError(t, err)
	assert.NotEmpty(t, home)

	base, err := p.BaseDir()
	require.NoError(t, err)
	assert.Equal(t, `\`, base[len(base)-1:])

	cwd, err := p.CurrentDir()
	require.NoError(t, err)
	assert.Equal(t, `\`, cwd[len(cwd)-1:])

	name, err := p.UserName()
	require.NoError(t, err)
	assert.NotEmpty(t, name)
}

func TestToDependent(t *testing.T) {
	p := newPlatform(t)
	assert.Equal(t, `\`, p.DirSeparator())
	assert.Equal(t, `C:\games\x`, p.ToDependent("C:/", "games", "/x"))
}

func TestNativeErrorMessageSingleLine(t *testing.T) {
	e := nativeErrorByNum(2) // ERROR_FILE_NOT_FOUND
	assert.NotEmpty(t, e.Message)
	assert.NotContains(t, e.Message, "\n")
	assert.NotContains(t, e.Message, "\r")
	assert.Equal(t, uint64(2), e.Code)
}
