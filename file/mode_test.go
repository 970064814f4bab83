package file

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fsio/errors"
	"github.com/jmgilman/go/fsio/fs/core"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in    string
		flags int
		str   string
	}{
		{"", os.O_RDONLY, "r"},
		{"r", os.O_RDONLY, "r"},
		{"rb", os.O_RDONLY, "rb"},
		{"r+", os.O_RDWR, "r+"},
		{"r+b", os.O_RDWR, "r+b"},
		{"rb+", os.O_RDWR, "r+b"},
		{"w", os.O_WRONLY | os.O_CREATE | os.O_TRUNC, "w"},
		{"w+", os.O_RDWR | os.O_CREATE | os.O_TRUNC, "w+"},
		{"wb", os.O_WRONLY | os.O_CREATE | os.O_TRUNC, "wb"},
		{"a", os.O_WRONLY | os.O_CREATE | os.O_APPEND, "a"},
		{"a+", os.O_RDWR | os.O_CREATE | os.O_APPEND, "a+"},
		{"ab+", os.O_RDWR | os.O_CREATE | os.O_APPEND, "a+b"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := ParseMode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.flags, m.Flags())
			assert.Equal(t, tt.str, m.String())
			assert.True(t, m.Read || m.Write)
		})
	}
}

func TestParseMode_Invalid(t *testing.T) {
	for _, in := range []string{"x", "rw", "r++", "rbb", "r+x", "+", "b", "read"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseMode(in)
			require.Error(t, err)
			assert.True(t, errors.IsContract(err))
			assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
		})
	}
}

func TestParseWhence(t *testing.T) {
	tests := map[string]int{
		"set": io.SeekStart,
		"cur": io.SeekCurrent,
		"":    io.SeekCurrent,
		"end": io.SeekEnd,
	}
	for in, want := range tests {
		got, err := ParseWhence(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, "ParseWhence(%q)", in)
	}

	_, err := ParseWhence("start")
	assert.True(t, errors.IsContract(err))
}

func TestParseLockKind(t *testing.T) {
	kind, err := ParseLockKind("shared")
	require.NoError(t, err)
	assert.Equal(t, core.LockShared, kind)

	kind, err = ParseLockKind("exclusive")
	require.NoError(t, err)
	assert.Equal(t, core.LockExclusive, kind)

	_, err = ParseLockKind("non-blocking")
	assert.True(t, errors.IsContract(err))
}
