//go:build unix

package billy

import (
	"errors"
	"io/fs"

	"github.com/jmgilman/go/fsio/fs/core"
	"golang.org/x/sys/unix"
)

// fdLocker locks local files with flock(2). A second Lock through the same
// descriptor converts the lock in place instead of blocking.
type fdLocker struct{}

type fder interface {
	Fd() uintptr
}

func (fdLocker) lock(f *File, kind core.LockKind, blocking bool) error {
	d, ok := f.file.(fder)
	if !ok {
		return &fs.PathError{Op: "lock", Path: f.name, Err: core.ErrUnsupported}
	}

	how := unix.LOCK_SH
	if kind == core.LockExclusive {
		how = unix.LOCK_EX
	}
	if !blocking {
		how |= unix.LOCK_NB
	}

	for {
		err := unix.Flock(int(d.Fd()), how)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EWOULDBLOCK):
			return &fs.PathError{Op: "lock", Path: f.name, Err: core.ErrWouldBlock}
		default:
			return &fs.PathError{Op: "lock", Path: f.name, Err: err}
		}
	}
}

func (fdLocker) unlock(f *File) error {
	d, ok := f.file.(fder)
	if !ok {
		return &fs.PathError{Op: "unlock", Path: f.name, Err: core.ErrUnsupported}
	}
	if err := unix.Flock(int(d.Fd()), unix.LOCK_UN); err != nil {
		return &fs.PathError{Op: "unlock", Path: f.name, Err: err}
	}
	return nil
}

// release is a no-op: the kernel drops flock locks when the descriptor closes.
func (fdLocker) release(*File) {}
