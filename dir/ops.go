package dir

import (
	"io/fs"
	"syscall"

	"github.com/jmgilman/go/fsio/errors"
	"github.com/jmgilman/go/fsio/fs/core"
)

// Make creates the directory path. The parent must exist.
func Make(fsys core.FS, path string, perm fs.FileMode) error {
	if err := fsys.Mkdir(path, perm); err != nil {
		return errors.FromOS("mkdir", path, err)
	}
	return nil
}

// MakeAll creates path along with any missing parents.
func MakeAll(fsys core.FS, path string, perm fs.FileMode) error {
	if err := fsys.MkdirAll(path, perm); err != nil {
		return errors.FromOS("mkdir", path, err)
	}
	return nil
}

// Remove deletes the empty directory at path.
func Remove(fsys core.FS, path string) error {
	info, err := fsys.Lstat(path)
	if err != nil {
		return errors.FromOS("rmdir", path, err)
	}
	if !info.IsDir() {
		return notDirectory("rmdir", path)
	}
	if err := fsys.Remove(path); err != nil {
		return errors.FromOS("rmdir", path, err)
	}
	return nil
}

func notDirectory(op, path string) error {
	return errors.FromOS(op, path, &fs.PathError{Op: op, Path: path, Err: syscall.ENOTDIR})
}
