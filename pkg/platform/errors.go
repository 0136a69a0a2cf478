package platform

import (
	"errors"
	"fmt"
)

// Sentinel errors making up the portable failure vocabulary. Backends wrap
// these with %w; callers match with errors.Is rather than on message text.
var (
	// ErrNotExist reports that the path does not exist. Only Stat is
	// required to distinguish it from a generic native failure.
	ErrNotExist = errors.New("file or path not found")

	// ErrInvalidArgument reports a request the native layer cannot
	// express, such as a transfer length beyond its addressable range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotAvailable reports that an optional OS service could not be
	// resolved on this platform.
	ErrNotAvailable = errors.New("service not available on this platform")

	// ErrNoDirSeparator reports that the executable path contained no
	// directory separator, so no base directory could be derived.
	ErrNoDirSeparator = errors.New("executable path has no directory separator")
)

// NativeError carries one native API failure: the numeric code and a
// single-line human-readable message, both owned by the value. Callers
// needing structured handling should match the portable sentinels above,
// not the message text.
type NativeError struct {
	Code    uint64
	Message string
}

func (e *NativeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("native error %d", e.Code)
	}
	return e.Message
}
