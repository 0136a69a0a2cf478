//go:build windows

package winapi

import (
	"fmt"
	"strings"

	"golang.org/x/sys/windows"

	"github.com/clayne/physfs/pkg/platform"
	"github.com/clayne/physfs/pkg/widestr"
)

// Reserved0 of a reparse-point entry carries this tag for symbolic links.
// Not defined before the Vista SDK.
const ioReparseTagSymlink = 0xA000000C

func isSymlinkAttrs(attrs, tag uint32) bool {
	return attrs&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0 && tag == ioReparseTagSymlink
}

// Enumerate walks the entries of dir with a FindFirstFile iteration over
// the pattern "dir\*". The "." and ".." pseudo-entries are always skipped;
// with omitSymlinks set, reparse points tagged as symlinks are skipped too.
// Order is whatever the OS yields.
func (p *Platform) Enumerate(dir string, omitSymlinks bool, fn platform.EnumerateFunc, origDir string) error {
	pattern := dir
	if !strings.HasSuffix(pattern, dirSeparator) {
		pattern += dirSeparator
	}
	pattern += "*"

	wpattern, err := widestr.ToWide(pattern)
	if err != nil {
		return err
	}

	var data windows.Win32finddata
	h, err := windows.FindFirstFile(&wpattern[0], &data)
	if err != nil {
		if err == windows.ERROR_FILE_NOT_FOUND || err == windows.ERROR_PATH_NOT_FOUND {
			return fmt.Errorf("winapi: enumerate %s: %w", dir, platform.ErrNotExist)
		}
		return fmt.Errorf("winapi: enumerate %s: %w", dir, nativeError(err))
	}
	defer windows.FindClose(h)

	for {
		name := widestr.FromWide(data.FileName[:])
		if name != "." && name != ".." &&
			!(omitSymlinks && isSymlinkAttrs(data.FileAttributes, data.Reserved0)) {
			fn(origDir, name)
		}

		if err := windows.FindNextFile(h, &data); err != nil {
			if err == windows.ERROR_NO_MORE_FILES {
				return nil
			}
			return fmt.Errorf("winapi: enumerate %s: %w", dir, nativeError(err))
		}
	}
}
