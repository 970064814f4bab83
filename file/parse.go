package file

import (
	"io"

	"github.com/jmgilman/go/fsio/errors"
	"github.com/jmgilman/go/fsio/fs/core"
)

// ParseWhence maps "set", "cur" and "end" to io.SeekStart, io.SeekCurrent
// and io.SeekEnd. The empty string means "cur".
func ParseWhence(s string) (int, error) {
	switch s {
	case "set":
		return io.SeekStart, nil
	case "cur", "":
		return io.SeekCurrent, nil
	case "end":
		return io.SeekEnd, nil
	}
	return 0, errors.Contract("whence", "invalid whence %q", s)
}

// ParseLockKind maps "shared" and "exclusive" to a lock kind.
func ParseLockKind(s string) (core.LockKind, error) {
	switch s {
	case "shared":
		return core.LockShared, nil
	case "exclusive":
		return core.LockExclusive, nil
	}
	return 0, errors.Contract("kind", "invalid lock kind %q", s)
}
