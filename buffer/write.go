package buffer

import (
	"io"
	"strconv"

	"github.com/jmgilman/go/fsio/errors"
)

// resync moves the raw stream back to the logical position before output,
// discarding unread look-ahead.
func (b *Buffer) resync() error {
	if ahead := b.Buffered(); ahead > 0 && b.seeker != nil {
		if _, err := b.seeker.Seek(int64(-ahead), io.SeekCurrent); err != nil {
			return err
		}
	}
	b.invalidate()
	return nil
}

// Write implements io.Writer. Data is held until the buffer fills, Flush is
// called, or a read or seek needs the raw stream.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := b.resync(); err != nil {
		return 0, err
	}

	if len(b.out) == 0 && len(p) >= b.size {
		return b.writeRaw(p)
	}

	written := 0
	for len(p) > 0 {
		room := b.size - len(b.out)
		n := min(room, len(p))
		b.out = append(b.out, p[:n]...)
		p = p[n:]
		written += n
		if len(b.out) >= b.size {
			if err := b.flushOut(); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

// WriteString writes s.
func (b *Buffer) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

// WriteValues writes each value in order. Strings and byte slices are
// written as is; integers in decimal; floats with 14 significant digits.
// Any other type is a contract error and nothing is written.
func (b *Buffer) WriteValues(values ...any) error {
	var out []byte
	for i, v := range values {
		var err error
		out, err = appendValue(out, v)
		if err != nil {
			return errors.WithContext(err, "index", i)
		}
	}
	_, err := b.Write(out)
	return err
}

func appendValue(dst []byte, v any) ([]byte, error) {
	switch v := v.(type) {
	case string:
		return append(dst, v...), nil
	case []byte:
		return append(dst, v...), nil
	case int:
		return strconv.AppendInt(dst, int64(v), 10), nil
	case int8:
		return strconv.AppendInt(dst, int64(v), 10), nil
	case int16:
		return strconv.AppendInt(dst, int64(v), 10), nil
	case int32:
		return strconv.AppendInt(dst, int64(v), 10), nil
	case int64:
		return strconv.AppendInt(dst, v, 10), nil
	case uint:
		return strconv.AppendUint(dst, uint64(v), 10), nil
	case uint8:
		return strconv.AppendUint(dst, uint64(v), 10), nil
	case uint16:
		return strconv.AppendUint(dst, uint64(v), 10), nil
	case uint32:
		return strconv.AppendUint(dst, uint64(v), 10), nil
	case uint64:
		return strconv.AppendUint(dst, v, 10), nil
	case float32:
		return strconv.AppendFloat(dst, float64(v), 'g', 14, 32), nil
	case float64:
		return strconv.AppendFloat(dst, v, 'g', 14, 64), nil
	default:
		return nil, errors.Contract("value", "cannot write value of type %T", v)
	}
}

// Flush writes all pending output to the raw stream.
func (b *Buffer) Flush() error {
	return b.flushOut()
}

func (b *Buffer) flushOut() error {
	for len(b.out) > 0 {
		n, err := b.raw.Write(b.out)
		b.out = b.out[:copy(b.out, b.out[n:])]
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
	}
	return nil
}

func (b *Buffer) writeRaw(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := b.raw.Write(p[written:])
		written += n
		if err != nil {
			return written, err
		}
		if n == 0 {
			return written, io.ErrShortWrite
		}
	}
	return written, nil
}
