package buffer

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fsio/errors"
	"github.com/jmgilman/go/fsio/fs/billy"
	"github.com/jmgilman/go/fsio/fs/core"
)

// countingStream records how often the raw stream is read.
type countingStream struct {
	core.File
	reads int
}

func (c *countingStream) Read(p []byte) (int, error) {
	c.reads++
	return c.File.Read(p)
}

func openStream(t *testing.T, content string) *countingStream {
	t.Helper()
	mfs := billy.NewMemory()
	f, err := mfs.OpenFile("/stream", os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	_, err = io.WriteString(f, content)
	require.NoError(t, err)
	_, err = f.Seek(0, io.SeekStart)
	require.NoError(t, err)
	return &countingStream{File: f}
}

func TestBuffer_ReadLine(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"terminated", "one\ntwo\n", []string{"one", "two"}},
		{"unterminated last line", "one\ntwo", []string{"one", "two"}},
		{"empty lines", "\n\nx", []string{"", "", "x"}},
		{"empty stream", "", nil},
		{"line longer than buffer", strings.Repeat("z", 40) + "\nend", []string{strings.Repeat("z", 40), "end"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(openStream(t, tt.content), 8)

			var got []string
			for {
				line, ok, err := b.ReadLine()
				require.NoError(t, err)
				if !ok {
					break
				}
				got = append(got, line)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuffer_ReadAll(t *testing.T) {
	content := strings.Repeat("0123456789", 50)
	b := New(openStream(t, content), 16)

	got, err := b.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, content, got)

	got, err = b.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "", got, "ReadAll at end of stream returns the empty string")
}

func TestBuffer_ReadN(t *testing.T) {
	b := New(openStream(t, "abcdef"), 4)

	s, ok, err := b.ReadN(4)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abcd", s)

	s, ok, err = b.ReadN(0)
	require.NoError(t, err)
	assert.True(t, ok, "ReadN(0) before end of stream")
	assert.Equal(t, "", s)

	s, ok, err = b.ReadN(10)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ef", s, "short read at end of stream")

	_, ok, err = b.ReadN(0)
	require.NoError(t, err)
	assert.False(t, ok, "ReadN(0) at end of stream")

	_, ok, err = b.ReadN(1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = b.ReadN(-1)
	assert.True(t, errors.IsContract(err))
}

func TestBuffer_ReadNumber(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    float64
		ok      bool
		rest    string
	}{
		{"integer", "42 rest", 42, true, " rest"},
		{"leading whitespace", " \t\n-3.5\n", -3.5, true, "\n"},
		{"exponent", "1e3x", 1000, true, "x"},
		{"hex", "0x1F;", 31, true, ";"},
		{"negative hex", "-0x10", -16, true, ""},
		{"trailing sign", "7-", 7, true, "-"},
		{"malformed", "abc", 0, false, "abc"},
		{"malformed after whitespace", "  \nabc", 0, false, "abc"},
		{"empty", "", 0, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(openStream(t, tt.content), 4)

			got, ok, err := b.ReadNumber()
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)

			rest, err := b.ReadAll()
			require.NoError(t, err)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestBuffer_ReadNumberLongWhitespace(t *testing.T) {
	b := New(openStream(t, strings.Repeat(" ", 10000)+"5\n"), 8)

	got, ok, err := b.ReadNumber()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, float64(5), got)
	assert.LessOrEqual(t, len(b.data), 4*maxNumberLen, "window grows with the numeral, not the whitespace")
}

func TestBuffer_ReadFormats(t *testing.T) {
	b := New(openStream(t, "first\n12 tail"), 0)

	results, err := b.ReadFormats(Line, Number, Bytes(3), All, Line)
	require.NoError(t, err)
	require.Len(t, results, 5)

	assert.Equal(t, "first", results[0].Text)
	assert.Equal(t, float64(12), results[1].Number)
	assert.Equal(t, " ta", results[2].Text)
	assert.Equal(t, "il", results[3].Text)
	assert.False(t, results[4].OK)
}

func TestBuffer_ReadFormatsStopsAtFirstAbsent(t *testing.T) {
	b := New(openStream(t, "only"), 0)

	results, err := b.ReadFormats(Line, Line, Line)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
}

func TestBuffer_ReadFormatsDefault(t *testing.T) {
	b := New(openStream(t, "a\nb\n"), 0)

	results, err := b.ReadFormats()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Text)
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		in      string
		want    Request
		wantErr bool
	}{
		{"*l", Line, false},
		{"l", Line, false},
		{"*a", All, false},
		{"a", All, false},
		{"*n", Number, false},
		{"n", Number, false},
		{"16", Bytes(16), false},
		{"0", Bytes(0), false},
		{"-1", Request{}, true},
		{"*x", Request{}, true},
		{"", Request{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRequest(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsContract(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuffer_WriteConcatenation(t *testing.T) {
	raw := openStream(t, "")
	b := New(raw, 4)

	writes := []string{"ab", "cdefgh", "", "i", strings.Repeat("j", 10)}
	for _, w := range writes {
		_, err := b.WriteString(w)
		require.NoError(t, err)
	}

	_, err := b.Seek(0, io.SeekStart)
	require.NoError(t, err)
	got, err := b.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, strings.Join(writes, ""), got)
}

func TestBuffer_WriteHeldUntilFlush(t *testing.T) {
	raw := openStream(t, "")
	b := New(raw, 64)

	_, err := b.WriteString("pending")
	require.NoError(t, err)
	assert.Equal(t, 7, b.Pending())

	info, err := raw.Stat()
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	require.NoError(t, b.Flush())
	assert.Zero(t, b.Pending())
	info, err = raw.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(7), info.Size())
}

func TestBuffer_WriteValues(t *testing.T) {
	raw := openStream(t, "")
	b := New(raw, 0)

	require.NoError(t, b.WriteValues("x=", 42, " y=", 0.1, " z=", 3.0, " ", []byte("b"), " ", int64(-7)))
	require.NoError(t, b.Flush())

	_, err := b.Seek(0, io.SeekStart)
	require.NoError(t, err)
	got, err := b.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "x=42 y=0.1 z=3 b -7", got)
}

func TestBuffer_WriteValuesRejectsUnknownType(t *testing.T) {
	b := New(openStream(t, ""), 0)

	err := b.WriteValues("ok", struct{}{})
	require.Error(t, err)
	assert.True(t, errors.IsContract(err))
	assert.Zero(t, b.Pending(), "nothing is written when any value is invalid")
}

func TestBuffer_WriteAfterReadAhead(t *testing.T) {
	raw := openStream(t, "0123456789")
	b := New(raw, 0)

	s, ok, err := b.ReadN(3)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "012", s)

	_, err = b.WriteString("XY")
	require.NoError(t, err)
	require.NoError(t, b.Flush())

	_, err = b.Seek(0, io.SeekStart)
	require.NoError(t, err)
	got, err := b.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "012XY56789", got)
}

func TestBuffer_SeekCurrentZeroIsIdempotent(t *testing.T) {
	b := New(openStream(t, "line one\nline two\n"), 4)

	_, _, err := b.ReadN(3)
	require.NoError(t, err)

	pos, err := b.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pos)

	rest, err := b.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "e one\nline two\n", rest)
}

func TestBuffer_SeekBackwardWithinWindow(t *testing.T) {
	content := strings.Repeat("abcdefghij", 100)
	raw := openStream(t, content)
	b := New(raw, 64)

	s, _, err := b.ReadN(20)
	require.NoError(t, err)
	require.Equal(t, content[:20], s)
	reads := raw.reads

	pos, err := b.Seek(-7, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(13), pos)

	s, _, err = b.ReadN(7)
	require.NoError(t, err)
	assert.Equal(t, content[13:20], s)
	assert.Equal(t, reads, raw.reads, "no re-read for a seek inside the window")

	s, _, err = b.ReadN(50)
	require.NoError(t, err)
	assert.Equal(t, content[20:70], s, "data after the window follows the window")
}

func TestBuffer_SeekOutsideWindow(t *testing.T) {
	content := strings.Repeat("0123456789", 100)
	b := New(openStream(t, content), 16)

	_, _, err := b.ReadN(4)
	require.NoError(t, err)

	pos, err := b.Seek(500, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(500), pos)
	assert.Zero(t, b.Buffered())

	s, _, err := b.ReadN(5)
	require.NoError(t, err)
	assert.Equal(t, content[500:505], s)

	pos, err = b.Seek(-3, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)-3), pos)
	rest, err := b.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "789", rest)
}

func TestBuffer_SeekErrors(t *testing.T) {
	b := New(openStream(t, "abc"), 0)

	_, err := b.Seek(0, 42)
	assert.True(t, errors.IsContract(err))

	_, err = b.Seek(-10, io.SeekStart)
	assert.Error(t, err)
}

type pipeStream struct {
	io.Reader
	io.Writer
}

func TestBuffer_Unseekable(t *testing.T) {
	b := New(pipeStream{Reader: strings.NewReader("piped\n"), Writer: io.Discard}, 0)

	_, err := b.Seek(0, io.SeekStart)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotImplemented, errors.GetCode(err))

	line, ok, err := b.ReadLine()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "piped", line)

	_, err = b.WriteString("out")
	assert.NoError(t, err)
}

func TestBuffer_ReadImplementsReader(t *testing.T) {
	content := strings.Repeat("xyz", 100)
	b := New(openStream(t, content), 8)

	got, err := io.ReadAll(b)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestExactNumber(t *testing.T) {
	f, err := ExactNumber(1 << 53)
	require.NoError(t, err)
	assert.Equal(t, float64(1<<53), f)

	_, err = ExactNumber(1<<53 + 1)
	require.Error(t, err)
	assert.Equal(t, errors.CodeOutOfRange, errors.GetCode(err))

	_, err = ExactNumber(-(1<<53 + 1))
	assert.Equal(t, errors.CodeOutOfRange, errors.GetCode(err))
}

func TestOffset(t *testing.T) {
	n, err := Offset(12)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)

	_, err = Offset(1.5)
	assert.True(t, errors.IsContract(err))

	_, err = Offset(1e300)
	assert.Equal(t, errors.CodeOutOfRange, errors.GetCode(err))
}
