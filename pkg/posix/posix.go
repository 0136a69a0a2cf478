//go:build linux

// Package posix is the Linux backend of the platform contract. It matches
// the observable semantics of the reference backend; where the reference
// splits 64-bit offsets for 32-bit native calls, this backend talks to
// 64-bit syscalls directly.
package posix

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/clayne/physfs/pkg/platform"
)

const dirSeparator = "/"

// Platform implements platform.Platform on Linux.
type Platform struct {
	userDir    string
	userDirErr error
	baseDir    string
	baseDirErr error
}

var _ platform.Platform = (*Platform)(nil)

// New resolves the user and base directories once. Discovery failures are
// recorded and resurface from UserDir/BaseDir, they do not fail New.
func New() (*Platform, error) {
	p := &Platform{}
	p.userDir, p.userDirErr = os.UserHomeDir()
	p.baseDir, p.baseDirErr = calcBaseDir()
	return p, nil
}

// Close drops the cached directories. The Platform must not be used
// afterwards.
func (p *Platform) Close() error {
	p.userDir, p.userDirErr = "", nil
	p.baseDir, p.baseDirErr = "", nil
	return nil
}

// calcBaseDir resolves the running executable through /proc/self/exe with a
// doubling buffer (readlink truncates silently when the buffer is full),
// then truncates after the last separator.
func calcBaseDir() (string, error) {
	buflen := 64
	var exe string
	for {
		buf := make([]byte, buflen)
		n, err := unix.Readlink("/proc/self/exe", buf)
		if err != nil {
			return "", fmt.Errorf("posix: readlink /proc/self/exe: %w", nativeError(err))
		}
		if n < buflen {
			exe = string(buf[:n])
			break
		}
		buflen *= 2
	}

	i := strings.LastIndex(exe, dirSeparator)
	if i < 0 {
		return "", fmt.Errorf("posix: executable path %q: %w", exe, platform.ErrNoDirSeparator)
	}
	return exe[:i+1], nil
}

func (p *Platform) UserDir() (string, error) {
	if p.userDirErr != nil {
		return "", p.userDirErr
	}
	return p.userDir, nil
}

func (p *Platform) BaseDir() (string, error) {
	if p.baseDirErr != nil {
		return "", p.baseDirErr
	}
	return p.baseDir, nil
}

// CurrentDir returns the working directory, always separator-terminated.
func (p *Platform) CurrentDir() (string, error) {
	dir, err := unix.Getwd()
	if err != nil {
		return "", fmt.Errorf("posix: getwd: %w", nativeError(err))
	}
	if !strings.HasSuffix(dir, dirSeparator) {
		dir += dirSeparator
	}
	return dir, nil
}

// RealPath resolves path to a canonical absolute form, following symlinks.
func (p *Platform) RealPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("posix: realpath %s: %w", path, err)
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("posix: realpath %s: %w", path, classify(err))
	}
	return real, nil
}

func (p *Platform) UserName() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("posix: current user: %w", err)
	}
	return u.Username, nil
}

func (p *Platform) Mkdir(path string) error {
	if err := unix.Mkdir(path, 0o755); err != nil {
		return fmt.Errorf("posix: mkdir %s: %w", path, nativeError(err))
	}
	return nil
}

// Delete removes a file or an empty directory, chosen by what the path is.
func (p *Platform) Delete(path string) error {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return fmt.Errorf("posix: delete %s: %w", path, nativeError(err))
	}
	var err error
	if st.Mode&unix.S_IFMT == unix.S_IFDIR {
		err = unix.Rmdir(path)
	} else {
		err = unix.Unlink(path)
	}
	if err != nil {
		return fmt.Errorf("posix: delete %s: %w", path, nativeError(err))
	}
	return nil
}

func (p *Platform) DirSeparator() string {
	return dirSeparator
}

func (p *Platform) ToDependent(prepend, dirName, suffix string) string {
	return platform.ToDependent(dirSeparator, prepend, dirName, suffix)
}

// nativeError wraps an errno into the portable native-failure shape.
func nativeError(err error) error {
	if errno, ok := err.(syscall.Errno); ok {
		return &platform.NativeError{Code: uint64(errno), Message: errno.Error()}
	}
	return err
}

// classify maps not-found errnos (possibly buried in *os.PathError) onto
// the portable sentinel and wraps everything else as a native failure.
func classify(err error) error {
	if os.IsNotExist(err) {
		return platform.ErrNotExist
	}
	if pe, ok := err.(*os.PathError); ok {
		return nativeError(pe.Err)
	}
	return nativeError(err)
}
