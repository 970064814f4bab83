package billy

import (
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/go-git/go-billy/v5"
	"github.com/jmgilman/go/fsio/fs/core"
)

// backend is the subset of billy.Filesystem both providers are built on.
// osfs.Default implements it without the chroot helper, which keeps the
// underlying *os.File (and its descriptor) reachable from opened files.
type backend interface {
	billy.Basic
	billy.Dir
	billy.Symlink
}

// maxSymlinkHops bounds symbolic link resolution before ELOOP is reported.
const maxSymlinkHops = 40

func pathError(op, name string, errno syscall.Errno) error {
	return &fs.PathError{Op: op, Path: name, Err: errno}
}

// checkParent verifies the parent of name exists and is a directory. billy
// backends create missing parents on O_CREATE; fsio keeps POSIX semantics.
func checkParent(stat func(string) (fs.FileInfo, error), op, name string) error {
	parent := filepath.Dir(name)
	if parent == name {
		return nil
	}
	info, err := stat(parent)
	if err != nil {
		return pathError(op, name, syscall.ENOENT)
	}
	if !info.IsDir() {
		return pathError(op, name, syscall.ENOTDIR)
	}
	return nil
}

// exists reports whether name exists, following symbolic links.
func exists(stat func(string) (fs.FileInfo, error), name string) (bool, error) {
	_, err := stat(name)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Compile-time interface checks.
var (
	_ core.FS        = (*LocalFS)(nil)
	_ core.SymlinkFS = (*LocalFS)(nil)
	_ core.FS        = (*MemoryFS)(nil)
	_ core.SymlinkFS = (*MemoryFS)(nil)
)
