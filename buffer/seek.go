package buffer

import (
	"io"

	"github.com/jmgilman/go/fsio/errors"
)

// Seek implements io.Seeker over the logical position, which trails the raw
// stream by the unread part of the window.
//
// The window start is computed from the raw position before anything moves.
// The seek is then performed on the raw stream; if the result lies inside
// the window only the read cursor moves and the raw stream is returned to
// the window end, otherwise the window is dropped.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	if b.seeker == nil {
		return 0, errors.New(errors.CodeNotImplemented, "stream does not support seeking")
	}
	if whence != io.SeekStart && whence != io.SeekCurrent && whence != io.SeekEnd {
		return 0, errors.Contract("whence", "invalid whence %d", whence)
	}
	if err := b.flushOut(); err != nil {
		return 0, err
	}

	end, err := b.seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	start := end - int64(b.limit)

	if whence == io.SeekCurrent {
		offset += start + int64(b.index)
		whence = io.SeekStart
	}

	pos, err := b.seeker.Seek(offset, whence)
	if err != nil {
		return 0, err
	}

	if b.limit > 0 && pos >= start && pos <= end {
		if pos != end {
			if _, err := b.seeker.Seek(end, io.SeekStart); err != nil {
				b.invalidate()
				return 0, err
			}
		}
		b.index = int(pos - start)
		return pos, nil
	}

	b.invalidate()
	return pos, nil
}
