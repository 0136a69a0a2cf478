//go:build windows

// Package winapi is the Windows backend of the platform contract. It is the
// reference backend: every other backend matches its observable semantics.
//
// All paths are converted to UTF-16 at the syscall boundary; nothing wide
// escapes this package. Environment discovery happens once in New and is
// cached on the Platform value.
package winapi

import (
	"fmt"
	"strings"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/clayne/physfs/pkg/platform"
	"github.com/clayne/physfs/pkg/widestr"
)

const dirSeparator = `\`

var (
	modKernel32 = windows.NewLazySystemDLL("kernel32.dll")
	modAdvapi32 = windows.NewLazySystemDLL("advapi32.dll")

	procSetFilePointer = modKernel32.NewProc("SetFilePointer")
	procGetFileSize    = modKernel32.NewProc("GetFileSize")
	procGetUserNameW   = modAdvapi32.NewProc("GetUserNameW")
)

// Platform implements platform.Platform on Windows.
type Platform struct {
	userenv windows.Handle

	userDir    string
	userDirErr error
	baseDir    string
	baseDirErr error
}

var _ platform.Platform = (*Platform)(nil)

// New loads the environment-service library and resolves the user and base
// directories. User-directory discovery failure is recorded, not fatal; the
// error resurfaces from UserDir.
func New() (*Platform, error) {
	lib, err := windows.LoadLibraryEx("userenv.dll", 0, windows.LOAD_LIBRARY_SEARCH_SYSTEM32)
	if err != nil {
		return nil, fmt.Errorf("winapi: load userenv.dll: %w", nativeError(err))
	}
	p := &Platform{userenv: lib}
	p.userDir, p.userDirErr = p.determineUserDir()
	p.baseDir, p.baseDirErr = calcBaseDir()
	return p, nil
}

// Close releases the environment-service library and drops the cached
// directories. The Platform must not be used afterwards.
func (p *Platform) Close() error {
	if p.userenv != 0 {
		windows.FreeLibrary(p.userenv)
		p.userenv = 0
	}
	p.userDir, p.userDirErr = "", nil
	p.baseDir, p.baseDirErr = "", nil
	return nil
}

// determineUserDir queries the profile directory of the process token. The
// entry point is resolved dynamically; an OS without it reports
// ErrNotAvailable instead of failing the whole backend.
func (p *Platform) determineUserDir() (string, error) {
	addr, err := windows.GetProcAddress(p.userenv, "GetUserProfileDirectoryW")
	if err != nil {
		return "", fmt.Errorf("winapi: GetUserProfileDirectoryW: %w", platform.ErrNotAvailable)
	}

	var token windows.Token
	if err := windows.OpenProcessToken(windows.CurrentProcess(), windows.TOKEN_QUERY, &token); err != nil {
		return "", fmt.Errorf("winapi: open process token: %w", nativeError(err))
	}
	defer token.Close()

	// Probe call writes the needed size. The buffer argument must not be
	// nil even for the probe.
	var dummy uint16
	var psize uint32
	rc, _, _ := syscall.SyscallN(addr,
		uintptr(token), uintptr(unsafe.Pointer(&dummy)), uintptr(unsafe.Pointer(&psize)))
	if rc != 0 || psize == 0 {
		return "", fmt.Errorf("winapi: profile directory size probe did not fail as expected")
	}

	buf := make([]uint16, psize)
	rc, _, e := syscall.SyscallN(addr,
		uintptr(token), uintptr(unsafe.Pointer(&buf[0])), uintptr(unsafe.Pointer(&psize)))
	if rc == 0 {
		return "", fmt.Errorf("winapi: query profile directory: %w", nativeErrorByNum(errnoFromCallErr(e)))
	}
	return widestr.FromWide(buf), nil
}

// calcBaseDir resolves the running executable's path with a doubling retry
// loop, then truncates after the last separator.
func calcBaseDir() (string, error) {
	buflen := uint32(64)
	var buf []uint16
	for {
		buf = make([]uint16, buflen)
		rc, err := windows.GetModuleFileName(0, &buf[0], buflen)
		if rc == 0 {
			return "", fmt.Errorf("winapi: query module path: %w", nativeError(err))
		}
		if rc < buflen {
			buf = buf[:rc]
			break
		}
		buflen *= 2
	}

	for i := len(buf) - 1; i >= 0; i-- {
		if buf[i] == '\\' {
			return widestr.FromWide(buf[:i+1]), nil
		}
	}
	return "", fmt.Errorf("winapi: module path %q: %w", widestr.FromWide(buf), platform.ErrNoDirSeparator)
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
	buflen, err := windows.GetCurrentDirectory(0, nil)
	if err != nil || buflen == 0 {
		return "", fmt.Errorf("winapi: current directory size: %w", nativeError(err))
	}
	buf := make([]uint16, buflen+2)
	if _, err := windows.GetCurrentDirectory(buflen, &buf[0]); err != nil {
		return "", fmt.Errorf("winapi: current directory: %w", nativeError(err))
	}
	dir := widestr.FromWide(buf)
	if !strings.HasSuffix(dir, dirSeparator) {
		dir += dirSeparator
	}
	return dir, nil
}

// RealPath is the identity on this backend: the only callers hand it paths
// the OS already resolved.
func (p *Platform) RealPath(path string) (string, error) {
	return path, nil
}

// UserName queries the account name with the probe-then-fill pattern.
func (p *Platform) UserName() (string, error) {
	var size uint32
	rc, _, _ := procGetUserNameW.Call(0, uintptr(unsafe.Pointer(&size)))
	if rc != 0 || size == 0 {
		return "", fmt.Errorf("winapi: user name size probe did not fail as expected")
	}
	buf := make([]uint16, size)
	rc, _, e := procGetUserNameW.Call(
		uintptr(unsafe.Pointer(&buf[0])), uintptr(unsafe.Pointer(&size)))
	if rc == 0 {
		return "", fmt.Errorf("winapi: query user name: %w", nativeErrorByNum(errnoFromCallErr(e)))
	}
	return widestr.FromWide(buf), nil
}

func (p *Platform) Mkdir(path string) error {
	wpath, err := widestr.ToWide(path)
	if err != nil {
		return err
	}
	if err := windows.CreateDirectory(&wpath[0], nil); err != nil {
		return fmt.Errorf("winapi: mkdir %s: %w", path, nativeError(err))
	}
	return nil
}

// Delete removes a file or a directory, chosen by the path's attributes.
func (p *Platform) Delete(path string) error {
	wpath, err := widestr.ToWide(path)
	if err != nil {
		return err
	}
	attrs, err := windows.GetFileAttributes(&wpath[0])
	if err != nil {
		return fmt.Errorf("winapi: delete %s: %w", path, nativeError(err))
	}
	if attrs&windows.FILE_ATTRIBUTE_DIRECTORY != 0 {
		err = windows.RemoveDirectory(&wpath[0])
	} else {
		err = windows.DeleteFile(&wpath[0])
	}
	if err != nil {
		return fmt.Errorf("winapi: delete %s: %w", path, nativeError(err))
	}
	return nil
}

func (p *Platform) DirSeparator() string {
	return dirSeparator
}

func (p *Platform) ToDependent(prepend, dirName, suffix string) string {
	return platform.ToDependent(dirSeparator, prepend, dirName, suffix)
}
