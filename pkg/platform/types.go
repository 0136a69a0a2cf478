package platform

// FileType classifies a path for Stat.
type FileType uint8

const (
	TypeRegular FileType = iota
	TypeDirectory
	TypeSymlink
	TypeOther
)

func (t FileType) String() string {
	switch t {
	case TypeRegular:
		return "regular"
	case TypeDirectory:
		return "directory"
	case TypeSymlink:
		return "symlink"
	case TypeOther:
		return "other"
	default:
		return "unknown"
	}
}

// Stat describes one path at the moment of the query. Size is 0 for
// directories and for paths of TypeOther, where the native size field is
// not meaningful. Timestamps are signed seconds since the Unix epoch.
type Stat struct {
	Type       FileType
	Size       int64
	ModTime    int64
	AccessTime int64
	CreateTime int64
	ReadOnly   bool
}
