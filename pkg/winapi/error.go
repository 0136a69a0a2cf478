//go:build windows

package winapi

import (
	"syscall"

	"golang.org/x/sys/windows"

	"github.com/clayne/physfs/pkg/platform"
	"github.com/clayne/physfs/pkg/widestr"
)

// errnoFromCallErr extracts the raw errno from a LazyProc.Call result.
// Call always returns a non-nil error value; success is errno 0.
func errnoFromCallErr(e error) syscall.Errno {
	if errno, ok := e.(syscall.Errno); ok {
		return errno
	}
	if e == nil {
		return 0
	}
	return syscall.EINVAL
}

// nativeErrorByNum formats one Windows error code into a portable error
// value owning its message. The message is truncated at the first newline
// or carriage return so it stays single-line.
func nativeErrorByNum(code syscall.Errno) *platform.NativeError {
	var msgbuf [255]uint16
	n, err := windows.FormatMessage(
		windows.FORMAT_MESSAGE_FROM_SYSTEM|windows.FORMAT_MESSAGE_IGNORE_INSERTS,
		0, uint32(code), 0, msgbuf[:], nil)
	if err != nil {
		n = 0
	}
	msg := msgbuf[:n]
	for i, c := range msg {
		if c == '\n' || c == '\r' {
			msg = msg[:i]
			break
		}
	}
	return &platform.NativeError{Code: uint64(code), Message: widestr.FromWide(msg)}
}

// nativeError wraps the errno of a failed x/sys/windows call. Unknown error
// shapes are passed through untouched.
func nativeError(err error) error {
	if errno, ok := err.(syscall.Errno); ok {
		return nativeErrorByNum(errno)
	}
	return err
}
