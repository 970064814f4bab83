package billy

import (
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/jmgilman/go/fsio/fs/core"
)

// LocalFS exposes the host filesystem through go-billy's osfs.
// Relative names are resolved against the process working directory.
type LocalFS struct {
	bfs backend
}

// NewLocal creates a go-billy-backed local filesystem.
func NewLocal() *LocalFS {
	return &LocalFS{bfs: osfs.Default}
}

// Unwrap returns the underlying billy filesystem.
func (lfs *LocalFS) Unwrap() billy.Basic {
	return lfs.bfs
}

// abs converts name to a clean absolute path.
func abs(name string) string {
	if p, err := filepath.Abs(name); err == nil {
		return p
	}
	return filepath.Clean(name)
}

// OpenFile opens a file with the specified flags and permissions.
func (lfs *LocalFS) OpenFile(name string, flag int, perm fs.FileMode) (core.File, error) {
	name = abs(name)
	if flag&os.O_CREATE != 0 {
		if err := checkParent(lfs.bfs.Stat, "open", name); err != nil {
			return nil, err
		}
	}
	if info, err := lfs.bfs.Stat(name); err == nil && info.IsDir() && flag&(os.O_WRONLY|os.O_RDWR) != 0 {
		return nil, pathError("open", name, syscall.EISDIR)
	}

	f, err := lfs.bfs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &File{file: f, name: name, locker: fdLocker{}}, nil
}

// Stat returns file metadata for the named file.
func (lfs *LocalFS) Stat(name string) (fs.FileInfo, error) {
	return lfs.bfs.Stat(abs(name))
}

// Lstat returns file metadata without following symbolic links.
func (lfs *LocalFS) Lstat(name string) (fs.FileInfo, error) {
	return lfs.bfs.Lstat(abs(name))
}

// Exists reports whether the named file or directory exists.
func (lfs *LocalFS) Exists(name string) (bool, error) {
	return exists(lfs.Stat, name)
}

// OpenDir opens the named directory for streaming iteration.
func (lfs *LocalFS) OpenDir(name string) (core.DirStream, error) {
	return openOSDir(abs(name))
}

// Mkdir creates a new directory with the specified name and permission bits.
// osfs applies a fixed mode in MkdirAll, so creation goes to the os package.
func (lfs *LocalFS) Mkdir(name string, perm fs.FileMode) error {
	return os.Mkdir(abs(name), perm)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (lfs *LocalFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(abs(path), perm)
}

// Remove removes the named file, symbolic link or empty directory.
func (lfs *LocalFS) Remove(name string) error {
	return lfs.bfs.Remove(abs(name))
}

// Rename renames (moves) oldpath to newpath.
func (lfs *LocalFS) Rename(oldpath, newpath string) error {
	newpath = abs(newpath)
	if err := checkParent(lfs.bfs.Stat, "rename", newpath); err != nil {
		return err
	}
	return lfs.bfs.Rename(abs(oldpath), newpath)
}

// Chmod changes the mode of the named file. osfs does not implement
// billy.Change, so this goes straight to the os package.
func (lfs *LocalFS) Chmod(name string, mode fs.FileMode) error {
	return os.Chmod(abs(name), mode)
}

// Chtimes changes the access and modification times of the named file.
func (lfs *LocalFS) Chtimes(name string, atime, mtime time.Time) error {
	return os.Chtimes(abs(name), atime, mtime)
}

// Symlink creates a symbolic link named newname pointing to oldname.
func (lfs *LocalFS) Symlink(oldname, newname string) error {
	newname = abs(newname)
	if err := checkParent(lfs.bfs.Stat, "symlink", newname); err != nil {
		return err
	}
	return lfs.bfs.Symlink(oldname, newname)
}

// Readlink returns the destination of the named symbolic link.
func (lfs *LocalFS) Readlink(name string) (string, error) {
	return lfs.bfs.Readlink(abs(name))
}

// Type returns FSTypeLocal for local filesystem implementations.
func (lfs *LocalFS) Type() core.FSType {
	return core.FSTypeLocal
}
