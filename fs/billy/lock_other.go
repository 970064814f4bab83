//go:build !unix

package billy

import (
	"io/fs"

	"github.com/jmgilman/go/fsio/fs/core"
)

// fdLocker falls back to billy's own exclusive, blocking file lock.
type fdLocker struct{}

func (fdLocker) lock(f *File, _ core.LockKind, blocking bool) error {
	if !blocking {
		return &fs.PathError{Op: "lock", Path: f.name, Err: core.ErrUnsupported}
	}
	return f.file.Lock()
}

func (fdLocker) unlock(f *File) error {
	return f.file.Unlock()
}

func (fdLocker) release(*File) {}
