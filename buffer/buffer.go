package buffer

import (
	"bytes"
	"io"

	"github.com/jmgilman/go/fsio/errors"
)

// DefaultSize is the initial capacity of the read window and the size at
// which pending output is written through.
const DefaultSize = 1024

// maxEmptyReads bounds consecutive zero-byte reads from the raw stream.
const maxEmptyReads = 100

// Buffer layers a read-ahead window and a write buffer over a raw stream.
//
// The window holds data[index:limit]; the raw stream is always positioned at
// the byte following data[limit-1], so the window starts at raw - limit.
type Buffer struct {
	raw    io.ReadWriter
	seeker io.Seeker
	size   int

	data  []byte
	index int
	limit int

	out []byte
}

// New creates a Buffer over raw. Seek is only available when raw also
// implements io.Seeker. A size of zero or less selects DefaultSize.
func New(raw io.ReadWriter, size int) *Buffer {
	if size <= 0 {
		size = DefaultSize
	}
	b := &Buffer{raw: raw, size: size}
	if s, ok := raw.(io.Seeker); ok {
		b.seeker = s
	}
	return b
}

// Size returns the configured buffer size.
func (b *Buffer) Size() int {
	return b.size
}

// Buffered returns the number of read-ahead bytes not yet consumed.
func (b *Buffer) Buffered() int {
	return b.limit - b.index
}

// Pending returns the number of written bytes not yet passed to the raw
// stream.
func (b *Buffer) Pending() int {
	return len(b.out)
}

func (b *Buffer) avail() []byte {
	return b.data[b.index:b.limit]
}

// invalidate drops the read-ahead window.
func (b *Buffer) invalidate() {
	b.index = 0
	b.limit = 0
}

// shift moves unread bytes to the front of the window.
func (b *Buffer) shift() {
	if b.index == 0 {
		return
	}
	n := copy(b.data, b.data[b.index:b.limit])
	b.index = 0
	b.limit = n
}

// grow enlarges the window by half, starting from the configured size.
func (b *Buffer) grow() {
	newSize := b.size
	if len(b.data) >= newSize {
		newSize = len(b.data) / 2 * 3
	}
	data := make([]byte, newSize)
	copy(data, b.data[:b.limit])
	b.data = data
}

// fill reads more input into the window. It returns io.EOF when the stream
// has no more data; any bytes read alongside an error are kept.
func (b *Buffer) fill() error {
	if err := b.flushOut(); err != nil {
		return err
	}

	b.shift()
	if b.limit == len(b.data) {
		b.grow()
	}

	for range maxEmptyReads {
		n, err := b.raw.Read(b.data[b.limit:])
		b.limit += n
		if n > 0 {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err != nil {
			return err
		}
	}
	return io.ErrNoProgress
}

// Read implements io.Reader.
func (b *Buffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.Buffered() == 0 {
		if err := b.fill(); err != nil && b.Buffered() == 0 {
			return 0, err
		}
	}
	n := copy(p, b.avail())
	b.index += n
	return n, nil
}

// ReadLine returns the next line without its trailing newline. A final line
// without a newline is returned as is. ok is false at end of stream.
func (b *Buffer) ReadLine() (string, bool, error) {
	offset := 0
	for {
		if i := bytes.IndexByte(b.avail()[offset:], '\n'); i >= 0 {
			line := string(b.avail()[:offset+i])
			b.index += offset + i + 1
			return line, true, nil
		}
		offset = b.Buffered()

		err := b.fill()
		if err == io.EOF {
			if b.Buffered() == 0 {
				return "", false, nil
			}
			line := string(b.avail())
			b.index = b.limit
			return line, true, nil
		}
		if err != nil {
			return "", false, err
		}
	}
}

// ReadAll returns everything up to the end of the stream. At end of stream
// it returns the empty string.
func (b *Buffer) ReadAll() (string, error) {
	for {
		err := b.fill()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}
	s := string(b.avail())
	b.index = b.limit
	return s, nil
}

// ReadN returns up to n bytes. Fewer bytes are returned only when the stream
// ends first. ok is false when no byte is left; ReadN(0) therefore reports
// whether the stream has more data.
func (b *Buffer) ReadN(n int) (string, bool, error) {
	if n < 0 {
		return "", false, errors.Contract("n", "byte count must not be negative, got %d", n)
	}

	want := max(n, 1)
	for b.Buffered() < want {
		err := b.fill()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", false, err
		}
	}
	if b.Buffered() == 0 {
		return "", false, nil
	}

	n = min(n, b.Buffered())
	s := string(b.avail()[:n])
	b.index += n
	return s, true, nil
}
