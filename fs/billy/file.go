package billy

import (
	"io"
	"io/fs"
	"os"
	"syscall"

	"github.com/go-git/go-billy/v5"
	"github.com/jmgilman/go/fsio/fs/core"
)

// locker implements whole-file locking for a provider.
type locker interface {
	lock(f *File, kind core.LockKind, blocking bool) error
	unlock(f *File) error
	// release drops any lock f still holds when it is closed.
	release(f *File)
}

// File wraps billy.File to implement core.File.
// It stores the filename since billy.File.Name() may return different formats
// depending on the backend implementation.
type File struct {
	file   billy.File
	name   string
	locker locker

	// memory-backed files emulate the flag checks the OS performs natively
	virtual bool
	flag    int
	stat    func() (fs.FileInfo, error)
	touch   func()
}

// Read implements io.Reader.
func (f *File) Read(p []byte) (int, error) {
	if f.virtual && f.flag&os.O_WRONLY != 0 {
		return 0, pathError("read", f.name, syscall.EBADF)
	}
	return f.file.Read(p)
}

// Write implements io.Writer.
func (f *File) Write(p []byte) (int, error) {
	if f.virtual {
		if f.flag&(os.O_WRONLY|os.O_RDWR) == 0 {
			return 0, pathError("write", f.name, syscall.EBADF)
		}
		if f.flag&os.O_APPEND != 0 {
			if _, err := f.file.Seek(0, io.SeekEnd); err != nil {
				return 0, err
			}
		}
		if f.touch != nil {
			defer f.touch()
		}
	}
	return f.file.Write(p)
}

// Seek implements io.Seeker.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if !f.virtual {
		return f.file.Seek(offset, whence)
	}

	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		pos, err := f.file.Seek(0, io.SeekCurrent)
		if err != nil {
			return 0, err
		}
		base = pos
	case io.SeekEnd:
		info, err := f.Stat()
		if err != nil {
			return 0, err
		}
		base = info.Size()
	default:
		return 0, pathError("seek", f.name, syscall.EINVAL)
	}
	if base+offset < 0 {
		return 0, pathError("seek", f.name, syscall.EINVAL)
	}
	return f.file.Seek(base+offset, io.SeekStart)
}

// Close releases any lock held through the handle and closes it.
func (f *File) Close() error {
	f.locker.release(f)
	return f.file.Close()
}

// Name returns the name the file was opened with, made absolute.
func (f *File) Name() string {
	return f.name
}

// Stat returns metadata for the open handle.
func (f *File) Stat() (fs.FileInfo, error) {
	if f.stat != nil {
		return f.stat()
	}
	if s, ok := f.file.(interface{ Stat() (fs.FileInfo, error) }); ok {
		return s.Stat()
	}
	return nil, &fs.PathError{Op: "fstat", Path: f.name, Err: core.ErrUnsupported}
}

// Sync commits the file to stable storage. It is a no-op for backends
// without Sync (e.g., memfs).
func (f *File) Sync() error {
	if syncer, ok := f.file.(interface{ Sync() error }); ok {
		return syncer.Sync()
	}
	return nil
}

// Lock acquires a whole-file lock.
func (f *File) Lock(kind core.LockKind, blocking bool) error {
	return f.locker.lock(f, kind, blocking)
}

// Unlock releases a lock acquired with Lock.
func (f *File) Unlock() error {
	return f.locker.unlock(f)
}

// Truncate implements core.Truncater.
func (f *File) Truncate(size int64) error {
	if size < 0 {
		return pathError("truncate", f.name, syscall.EINVAL)
	}
	return f.file.Truncate(size)
}

// Compile-time interface checks.
var (
	_ core.File      = (*File)(nil)
	_ core.Truncater = (*File)(nil)
)
