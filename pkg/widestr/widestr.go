// Package widestr converts between the UTF-8 strings used at the portable
// boundary and the NUL-terminated UTF-16 buffers the native layer consumes.
package widestr

import (
	"fmt"
	"unicode/utf16"

	"github.com/clayne/physfs/pkg/platform"
)

// ToWide converts s to a NUL-terminated UTF-16 buffer. An input of length L
// always fits in the returned buffer of at least L+1 code units. Interior
// NUL bytes cannot survive the NUL-terminated native representation and are
// rejected with ErrInvalidArgument.
func ToWide(s string) ([]uint16, error) {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return nil, fmt.Errorf("widestr: string contains NUL at byte %d: %w", i, platform.ErrInvalidArgument)
		}
	}
	buf := utf16.Encode([]rune(s))
	return append(buf, 0), nil
}

// FromWide converts a UTF-16 buffer to a string, stopping at the first NUL
// code unit or at the end of the slice. Each wide code unit can expand to
// up to 4 UTF-8 bytes; the returned string is sized exactly, never padded.
func FromWide(w []uint16) string {
	for i, u := range w {
		if u == 0 {
			w = w[:i]
			break
		}
	}
	return string(utf16.Decode(w))
}
