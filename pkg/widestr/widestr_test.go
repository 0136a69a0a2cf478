package widestr

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clayne/physfs/pkg/platform"
)

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"a.txt",
		"dir/sub/file",
		"ünïcødé",
		"日本語のファイル名",
		"emoji \U0001F4C1 folder", // needs a surrogate pair in UTF-16
		strings.Repeat("x", 300),
	}
	for _, s := range inputs {
		w, err := ToWide(s)
		assert.NoError(t, err, "input %q", s)
		assert.Equal(t, s, FromWide(w), "input %q", s)
	}
}

func TestToWideTerminator(t *testing.T) {
	w, err := ToWide("abc")
	assert.NoError(t, err)
	// length L input needs at least L+1 code units, last one NUL
	assert.GreaterOrEqual(t, len(w), 4)
	assert.Equal(t, uint16(0), w[len(w)-1])

	w, err = ToWide("")
	assert.NoError(t, err)
	assert.Equal(t, []uint16{0}, w)
}

func TestToWideRejectsInteriorNUL(t *testing.T) {
	_, err := ToWide("a\x00b")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, platform.ErrInvalidArgument))
}

func TestFromWideStopsAtNUL(t *testing.T) {
	w := []uint16{'a', 'b', 0, 'c', 'd'}
	assert.Equal(t, "ab", FromWide(w))
	assert.Equal(t, "", FromWide([]uint16{0}))
	assert.Equal(t, "", FromWide(nil))
	// no terminator at all: whole slice decoded
	assert.Equal(t, "xyz", FromWide([]uint16{'x', 'y', 'z'}))
}

func TestFromWideSurrogatePair(t *testing.T) {
	// U+1F4C1 encodes as a surrogate pair and expands to 4 UTF-8 bytes.
	w, err := ToWide("\U0001F4C1")
	assert.NoError(t, err)
	assert.Equal(t, 3, len(w)) // two surrogates plus terminator
	assert.Equal(t, "\U0001F4C1", FromWide(w))
}
