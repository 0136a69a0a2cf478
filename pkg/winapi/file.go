//go:build windows

package winapi

import (
	"fmt"
	"math"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/clayne/physfs/pkg/platform"
	"github.com/clayne/physfs/pkg/widestr"
)

// SetFilePointer and GetFileSize report failure through this marker value,
// but it is also a legitimate low-order result: the call only failed if the
// thread's last error is set as well.
const invalidSetFilePointer = 0xFFFFFFFF

// File owns one open Windows file handle.
type File struct {
	handle   windows.Handle
	readonly bool
}

var _ platform.File = (*File)(nil)

func doOpen(path string, access uint32, disposition uint32, readonly bool) (*File, error) {
	wpath, err := widestr.ToWide(path)
	if err != nil {
		return nil, err
	}
	h, err := windows.CreateFile(&wpath[0], access,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE, nil,
		disposition, windows.FILE_ATTRIBUTE_NORMAL, 0)
	if err != nil {
		return nil, fmt.Errorf("winapi: open %s: %w", path, nativeError(err))
	}
	return &File{handle: h, readonly: readonly}, nil
}

func (p *Platform) OpenRead(path string) (platform.File, error) {
	return doOpen(path, windows.GENERIC_READ, windows.OPEN_EXISTING, true)
}

func (p *Platform) OpenWrite(path string) (platform.File, error) {
	return doOpen(path, windows.GENERIC_WRITE, windows.CREATE_ALWAYS, false)
}

// OpenAppend opens or creates the file and seeks to its end. If the seek
// fails the fresh handle is released and no File is returned.
func (p *Platform) OpenAppend(path string) (platform.File, error) {
	f, err := doOpen(path, windows.GENERIC_WRITE, windows.OPEN_ALWAYS, false)
	if err != nil {
		return nil, err
	}
	if err := f.seekWhence(0, windows.FILE_END); err != nil {
		windows.CloseHandle(f.handle)
		return nil, fmt.Errorf("winapi: append seek %s: %w", path, err)
	}
	return f, nil
}

// checkTransferLen rejects counts the native 32-bit transfer calls cannot
// express.
func checkTransferLen(n int) error {
	if uint64(n) > math.MaxUint32 {
		return fmt.Errorf("winapi: transfer of %d bytes exceeds native range: %w", n, platform.ErrInvalidArgument)
	}
	return nil
}

func (f *File) Read(p []byte) (int, error) {
	if err := checkTransferLen(len(p)); err != nil {
		return 0, err
	}
	var done uint32
	if err := windows.ReadFile(f.handle, p, &done, nil); err != nil {
		return 0, fmt.Errorf("winapi: read: %w", nativeError(err))
	}
	return int(done), nil
}

func (f *File) Write(p []byte) (int, error) {
	if err := checkTransferLen(len(p)); err != nil {
		return 0, err
	}
	var done uint32
	if err := windows.WriteFile(f.handle, p, &done, nil); err != nil {
		return 0, fmt.Errorf("winapi: write: %w", nativeError(err))
	}
	return int(done), nil
}

// seekWhence moves the file pointer, splitting the 64-bit offset into the
// halves SetFilePointer wants. Per the API contract the high-order pointer
// must be nil when the high half is zero.
func (f *File) seekWhence(pos int64, whence uint32) error {
	low := uint32(pos & 0xFFFFFFFF)
	high := int32(pos >> 32)

	var rc uintptr
	var e error
	if high != 0 {
		rc, _, e = procSetFilePointer.Call(uintptr(f.handle),
			uintptr(low), uintptr(unsafe.Pointer(&high)), uintptr(whence))
	} else {
		rc, _, e = procSetFilePointer.Call(uintptr(f.handle),
			uintptr(low), 0, uintptr(whence))
	}
	if uint32(rc) == invalidSetFilePointer && errnoFromCallErr(e) != 0 {
		return nativeErrorByNum(errnoFromCallErr(e))
	}
	return nil
}

// Seek moves to an absolute byte offset from the start of the file.
func (f *File) Seek(pos int64) error {
	if pos < 0 {
		return fmt.Errorf("winapi: seek to %d: %w", pos, platform.ErrInvalidArgument)
	}
	if err := f.seekWhence(pos, windows.FILE_BEGIN); err != nil {
		return fmt.Errorf("winapi: seek: %w", err)
	}
	return nil
}

// Tell reconstructs the 64-bit position from the high/low halves of a
// zero-distance move.
func (f *File) Tell() (int64, error) {
	var high int32
	rc, _, e := procSetFilePointer.Call(uintptr(f.handle),
		0, uintptr(unsafe.Pointer(&high)), uintptr(windows.FILE_CURRENT))
	low := uint32(rc)
	if low == invalidSetFilePointer && errnoFromCallErr(e) != 0 {
		return -1, fmt.Errorf("winapi: tell: %w", nativeErrorByNum(errnoFromCallErr(e)))
	}
	return int64(uint64(uint32(high))<<32 | uint64(low)), nil
}

// Length reconstructs the 64-bit size from GetFileSize's high/low halves.
func (f *File) Length() (int64, error) {
	var high uint32
	rc, _, e := procGetFileSize.Call(uintptr(f.handle), uintptr(unsafe.Pointer(&high)))
	low := uint32(rc)
	if low == invalidSetFilePointer && errnoFromCallErr(e) != 0 {
		return -1, fmt.Errorf("winapi: length: %w", nativeErrorByNum(errnoFromCallErr(e)))
	}
	return int64(uint64(high)<<32 | uint64(low)), nil
}

// Flush forces buffered writes to stable storage. Read-only handles have
// nothing to flush.
func (f *File) Flush() error {
	if f.readonly {
		return nil
	}
	if err := windows.FlushFileBuffers(f.handle); err != nil {
		return fmt.Errorf("winapi: flush: %w", nativeError(err))
	}
	return nil
}

// Close releases the handle unconditionally. Close errors are swallowed;
// anyone who cares about durability flushed first.
func (f *File) Close() error {
	windows.CloseHandle(f.handle)
	f.handle = windows.InvalidHandle
	return nil
}
