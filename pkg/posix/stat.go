//go:build linux

package posix

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/clayne/physfs/pkg/platform"
)

// Stat queries path without following a trailing symlink. A missing file
// or path wraps ErrNotExist; any other failure means the record is
// indeterminate.
func (p *Platform) Stat(path string) (platform.Stat, error) {
	var st platform.Stat

	var native unix.Stat_t
	if err := unix.Lstat(path, &native); err != nil {
		if err == unix.ENOENT || err == unix.ENOTDIR {
			return st, fmt.Errorf("posix: stat %s: %w", path, platform.ErrNotExist)
		}
		return st, fmt.Errorf("posix: stat %s: %w", path, nativeError(err))
	}

	switch native.Mode & unix.S_IFMT {
	case unix.S_IFDIR:
		st.Type = platform.TypeDirectory
		st.Size = 0
	case unix.S_IFLNK:
		st.Type = platform.TypeSymlink
		st.Size = 0
	case unix.S_IFREG:
		st.Type = platform.TypeRegular
		st.Size = native.Size
	default:
		// Devices, sockets, FIFOs: the size field means nothing here.
		st.Type = platform.TypeOther
		st.Size = 0
	}

	st.ModTime = native.Mtim.Sec
	st.AccessTime = native.Atim.Sec
	st.CreateTime = native.Ctim.Sec
	st.ReadOnly = unix.Access(path, unix.W_OK) != nil

	return st, nil
}
