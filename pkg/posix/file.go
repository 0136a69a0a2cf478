//go:build linux

package posix

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/clayne/physfs/pkg/platform"
)

// File owns one open file descriptor.
type File struct {
	fd       int
	readonly bool
}

var _ platform.File = (*File)(nil)

func doOpen(path string, flags int, readonly bool) (*File, error) {
	fd, err := unix.Open(path, flags, 0o644)
	if err != nil {
		if err == unix.ENOENT {
			return nil, fmt.Errorf("posix: open %s: %w", path, platform.ErrNotExist)
		}
		return nil, fmt.Errorf("posix: open %s: %w", path, nativeError(err))
	}
	return &File{fd: fd, readonly: readonly}, nil
}

func (p *Platform) OpenRead(path string) (platform.File, error) {
	return doOpen(path, unix.O_RDONLY, true)
}

func (p *Platform) OpenWrite(path string) (platform.File, error) {
	return doOpen(path, unix.O_WRONLY|unix.O_CREAT|unix.O_TRUNC, false)
}

// OpenAppend opens or creates the file and seeks to its end. If the seek
// fails the fresh descriptor is released and no File is returned.
func (p *Platform) OpenAppend(path string) (platform.File, error) {
	f, err := doOpen(path, unix.O_WRONLY|unix.O_CREAT, false)
	if err != nil {
		return nil, err
	}
	if _, err := unix.Seek(f.fd, 0, unix.SEEK_END); err != nil {
		unix.Close(f.fd)
		return nil, fmt.Errorf("posix: append seek %s: %w", path, nativeError(err))
	}
	return f, nil
}

func (f *File) Read(p []byte) (int, error) {
	n, err := unix.Read(f.fd, p)
	if err != nil {
		return 0, fmt.Errorf("posix: read: %w", nativeError(err))
	}
	return n, nil
}

func (f *File) Write(p []byte) (int, error) {
	n, err := unix.Write(f.fd, p)
	if err != nil {
		return 0, fmt.Errorf("posix: write: %w", nativeError(err))
	}
	return n, nil
}

// Seek moves to an absolute byte offset from the start of the file.
func (f *File) Seek(pos int64) error {
	if pos < 0 {
		return fmt.Errorf("posix: seek to %d: %w", pos, platform.ErrInvalidArgument)
	}
	if _, err := unix.Seek(f.fd, pos, unix.SEEK_SET); err != nil {
		return fmt.Errorf("posix: seek: %w", nativeError(err))
	}
	return nil
}

func (f *File) Tell() (int64, error) {
	pos, err := unix.Seek(f.fd, 0, unix.SEEK_CUR)
	if err != nil {
		return -1, fmt.Errorf("posix: tell: %w", nativeError(err))
	}
	return pos, nil
}

func (f *File) Length() (int64, error) {
	var st unix.Stat_t
	if err := unix.Fstat(f.fd, &st); err != nil {
		return -1, fmt.Errorf("posix: length: %w", nativeError(err))
	}
	return st.Size, nil
}

// Flush forces buffered writes to stable storage. Read-only handles have
// nothing to flush.
func (f *File) Flush() error {
	if f.readonly {
		return nil
	}
	if err := unix.Fsync(f.fd); err != nil {
		return fmt.Errorf("posix: flush: %w", nativeError(err))
	}
	return nil
}

// Close releases the descriptor unconditionally. Close errors are
// swallowed; anyone who cares about durability flushed first.
func (f *File) Close() error {
	unix.Close(f.fd)
	f.fd = -1
	return nil
}
