// Package platform defines the operating-system contract consumed by the
// portable virtual-filesystem core. Every backend implements it with
// identical observable semantics so the core never branches on platform.
//
// Path strings crossing this boundary are always UTF-8; backends perform
// any conversion to the native encoding internally and never expose native
// buffers to callers. All operations are synchronous and may block the
// calling goroutine; none support cancellation or timeouts. Operations on
// the same File from multiple goroutines are not synchronized internally
// and must be serialized by the caller.
package platform

// EnumerateFunc receives one directory entry per call. The name string is
// only guaranteed valid for the duration of the call. There is no way to
// stop enumeration early.
type EnumerateFunc func(origDir, name string)

// Platform is one operating-system backend. A Platform is created by the
// backend's constructor, which performs one-time environment discovery, and
// must be closed exactly once to release the cached singletons. Construction
// must complete before the Platform is shared between goroutines.
type Platform interface {
	// OpenRead opens an existing file for reading.
	OpenRead(path string) (File, error)
	// OpenWrite creates the file, truncating it if it already exists.
	OpenWrite(path string) (File, error)
	// OpenAppend creates or opens the file and positions it at the end.
	// If positioning fails the freshly opened handle is released and no
	// File is returned.
	OpenAppend(path string) (File, error)

	// Stat queries type, size, timestamps and the read-only flag.
	// A missing path yields an error wrapping ErrNotExist; for any other
	// error the returned record must not be trusted.
	Stat(path string) (Stat, error)

	// Enumerate lists the entries of dir, skipping "." and "..", invoking
	// fn once per entry with origDir passed through verbatim. With
	// omitSymlinks set, entries the native layer marks as symbolic links
	// are skipped too. Order is whatever the OS yields. An empty directory
	// results in zero calls and a nil error; a directory that cannot be
	// opened results in zero calls and a non-nil error.
	Enumerate(dir string, omitSymlinks bool, fn EnumerateFunc, origDir string) error

	Mkdir(path string) error
	// Delete removes a file or an empty directory.
	Delete(path string) error

	// UserDir returns the current user's home directory, resolved once at
	// construction time.
	UserDir() (string, error)
	// BaseDir returns the directory containing the running executable,
	// terminated with the native separator.
	BaseDir() (string, error)
	CurrentDir() (string, error)
	// RealPath resolves path to a canonical absolute form.
	RealPath(path string) (string, error)
	UserName() (string, error)

	// DirSeparator reports the backend's preferred separator as a single
	// character.
	DirSeparator() string
	// ToDependent concatenates prepend, dirName and suffix and rewrites
	// every portable separator to the native one.
	ToDependent(prepend, dirName, suffix string) string

	// NewMutex creates a process-local mutex usable from multiple
	// goroutines.
	NewMutex() (Mutex, error)

	// Close releases process-wide state held by the backend. The Platform
	// must not be used afterwards.
	Close() error
}

// File is one open native file resource. It is owned exclusively by the
// caller that opened it and must be closed exactly once. A File must not be
// used after Close.
type File interface {
	// Read transfers up to len(p) bytes from the current position. A
	// length beyond the native addressable maximum fails with
	// ErrInvalidArgument and transfers nothing. Backends may transfer
	// fewer bytes than requested and return the short count: Linux caps
	// a single native transfer just below 2 GiB.
	Read(p []byte) (int, error)
	// Write transfers len(p) bytes at the current position, with the same
	// length restriction and short-count caveat as Read.
	Write(p []byte) (int, error)
	// Seek moves to an absolute, non-negative byte offset.
	Seek(pos int64) error
	// Tell reports the current absolute offset.
	Tell() (int64, error)
	// Length reports the current file size.
	Length() (int64, error)
	// Flush forces buffered data to stable storage. It is a no-op success
	// on read-only handles.
	Flush() error
	// Close releases the native resource unconditionally. Errors during
	// close are not reported; call Flush first if durability matters.
	Close() error
}

// Mutex is a process-local mutual-exclusion object. Recursive acquisition
// by the holder succeeds without deadlock. The Windows backend keys
// ownership on the OS thread, so a goroutine relying on reentrancy there
// must be locked to its thread; the Linux backend keys ownership on the
// goroutine itself.
type Mutex interface {
	// Acquire blocks until ownership is obtained. It fails only if the
	// underlying wait itself fails, never on ordinary contention.
	Acquire() error
	Release()
	Close() error
}
