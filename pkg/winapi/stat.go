//go:build windows

package winapi

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/clayne/physfs/pkg/platform"
	"github.com/clayne/physfs/pkg/widestr"
)

// Offline and device attributes mark entries whose size field means
// nothing; they classify as TypeOther with size 0.
const (
	fileAttributeOffline = 0x00001000
	fileAttributeDevice  = 0x00000040
)

func filetimeToEpoch(ft windows.Filetime) int64 {
	return ft.Nanoseconds() / 1e9
}

// Stat queries the extended attributes of path. A missing file or path
// wraps ErrNotExist; any other failure means the record is indeterminate.
func (p *Platform) Stat(path string) (platform.Stat, error) {
	var st platform.Stat

	wpath, err := widestr.ToWide(path)
	if err != nil {
		return st, err
	}

	var data windows.Win32FileAttributeData
	err = windows.GetFileAttributesEx(&wpath[0], windows.GetFileExInfoStandard, (*byte)(unsafe.Pointer(&data)))
	if err != nil {
		if err == windows.ERROR_FILE_NOT_FOUND || err == windows.ERROR_PATH_NOT_FOUND {
			return st, fmt.Errorf("winapi: stat %s: %w", path, platform.ErrNotExist)
		}
		return st, fmt.Errorf("winapi: stat %s: %w", path, nativeError(err))
	}

	st.ModTime = filetimeToEpoch(data.LastWriteTime)
	st.AccessTime = filetimeToEpoch(data.LastAccessTime)
	st.CreateTime = filetimeToEpoch(data.CreationTime)

	switch {
	case data.FileAttributes&windows.FILE_ATTRIBUTE_DIRECTORY != 0:
		st.Type = platform.TypeDirectory
		st.Size = 0
	case data.FileAttributes&(fileAttributeOffline|fileAttributeDevice) != 0:
		st.Type = platform.TypeOther
		st.Size = 0
	default:
		st.Type = platform.TypeRegular
		st.Size = int64(uint64(data.FileSizeHigh)<<32 | uint64(data.FileSizeLow))
	}
	st.ReadOnly = data.FileAttributes&windows.FILE_ATTRIBUTE_READONLY != 0

	return st, nil
}
