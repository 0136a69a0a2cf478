package platform

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDependent(t *testing.T) {
	assert.Equal(t, `C:\games\`, ToDependent(`\`, "C:/", "games", "/"))
	assert.Equal(t, `a\b\c`, ToDependent(`\`, "", "a/b/c", ""))
	assert.Equal(t, "a/b/c", ToDependent("/", "", "a/b/c", ""))
	assert.Equal(t, "", ToDependent(`\`, "", "", ""))
	assert.Equal(t, `pre\mid\post`, ToDependent(`\`, "pre/", "mid", "/post"))
}

func TestFileTypeString(t *testing.T) {
	assert.Equal(t, "regular", TypeRegular.String())
	assert.Equal(t, "directory", TypeDirectory.String())
	assert.Equal(t, "symlink", TypeSymlink.String())
	assert.Equal(t, "other", TypeOther.String())
	assert.Equal(t, "unknown", FileType(42).String())
}

func TestNativeErrorMessage(t *testing.T) {
	e := &NativeError{Code: 5, Message: "Access is denied."}
	assert.Equal(t, "Access is denied.", e.Error())

	e = &NativeError{Code: 1337}
	assert.Equal(t, "native error 1337", e.Error())
}

func TestSentinelWrapping(t *testing.T) {
	err := fmt.Errorf("stat foo: %w", ErrNotExist)
	assert.True(t, errors.Is(err, ErrNotExist))
	assert.False(t, errors.Is(err, ErrInvalidArgument))

	var nerr *NativeError
	wrapped := fmt.Errorf("open: %w", &NativeError{Code: 2, Message: "x"})
	assert.True(t, errors.As(wrapped, &nerr))
	assert.Equal(t, uint64(2), nerr.Code)
}
