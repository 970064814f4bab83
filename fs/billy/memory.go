package billy

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/jmgilman/go/fsio/fs/core"
)

// MemoryFS wraps billy's memfs for in-memory filesystem access.
//
// memfs keeps no permission changes or timestamps, so MemoryFS records both
// in an overlay keyed by path. It also provides the POSIX behaviours memfs
// lacks: ENOTEMPTY on Remove, ELOOP on symlink cycles, and flock-style locks.
type MemoryFS struct {
	bfs   billy.Filesystem
	locks *lockTable

	mu   sync.Mutex
	meta map[string]*memMeta
}

type memMeta struct {
	perm    fs.FileMode
	hasPerm bool
	atime   time.Time
	mtime   time.Time
}

// NewMemory creates a go-billy-backed in-memory filesystem.
// The filesystem is initially empty.
func NewMemory() *MemoryFS {
	bfs := memfs.New()
	// memfs has no root entry until something is created beneath it
	_ = bfs.MkdirAll(string(filepath.Separator), 0o755)

	return &MemoryFS{
		bfs:   bfs,
		locks: newLockTable(),
		meta:  make(map[string]*memMeta),
	}
}

// Unwrap returns the underlying billy.Filesystem.
func (mfs *MemoryFS) Unwrap() billy.Filesystem {
	return mfs.bfs
}

// normalize converts name to a clean absolute path inside the memory tree.
func normalize(name string) string {
	return filepath.Join(string(filepath.Separator), filepath.FromSlash(name))
}

// wrap gives memfs's bare sentinel errors an op and path.
func wrap(op, name string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return pathError(op, name, syscall.ENOENT)
	case errors.Is(err, fs.ErrExist):
		return pathError(op, name, syscall.EEXIST)
	}
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return err
	}
	return &fs.PathError{Op: op, Path: name, Err: err}
}

// resolve follows symbolic links from name. When the final target does not
// exist its path is still returned alongside the error, so O_CREATE through
// a dangling link creates the target.
func (mfs *MemoryFS) resolve(op, name string) (string, fs.FileInfo, error) {
	orig := name
	for range maxSymlinkHops {
		info, err := mfs.bfs.Lstat(name)
		if err != nil {
			return name, nil, wrap(op, orig, err)
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			return name, info, nil
		}
		target, err := mfs.bfs.Readlink(name)
		if err != nil {
			return name, nil, wrap(op, orig, err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(name), target)
		}
		name = normalize(target)
	}
	return name, nil, pathError(op, orig, syscall.ELOOP)
}

// statRaw follows links like Stat but skips the metadata overlay.
func (mfs *MemoryFS) statRaw(name string) (fs.FileInfo, error) {
	_, info, err := mfs.resolve("stat", name)
	return info, err
}

func (mfs *MemoryFS) touch(name string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	m := mfs.metaFor(name)
	now := time.Now()
	m.mtime = now
	m.atime = now
}

// metaFor returns the overlay entry for name, creating it. Callers hold mu.
func (mfs *MemoryFS) metaFor(name string) *memMeta {
	m, ok := mfs.meta[name]
	if !ok {
		m = &memMeta{}
		mfs.meta[name] = m
	}
	return m
}

func (mfs *MemoryFS) dropMeta(name string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	delete(mfs.meta, name)
}

// decorate applies the overlay for path to info. A non-empty name replaces
// the reported base name.
func (mfs *MemoryFS) decorate(path, name string, info fs.FileInfo) fs.FileInfo {
	mi := &memInfo{FileInfo: info, name: info.Name(), mode: info.Mode()}
	if name != "" {
		mi.name = name
	}

	mfs.mu.Lock()
	if m, ok := mfs.meta[path]; ok {
		if m.hasPerm {
			mi.mode = mi.mode&^fs.ModePerm | m.perm.Perm()
		}
		mi.mtime = m.mtime
		mi.atime = m.atime
	}
	mfs.mu.Unlock()

	return mi
}

// memInfo carries overlay metadata for a memfs entry.
type memInfo struct {
	fs.FileInfo
	name  string
	mode  fs.FileMode
	mtime time.Time
	atime time.Time
}

func (i *memInfo) Name() string      { return i.name }
func (i *memInfo) Mode() fs.FileMode { return i.mode }
func (i *memInfo) IsDir() bool       { return i.mode.IsDir() }

// ModTime returns the recorded modification time, or the Unix epoch for
// entries that were never written through MemoryFS.
func (i *memInfo) ModTime() time.Time {
	if i.mtime.IsZero() {
		return time.Unix(0, 0)
	}
	return i.mtime
}

// AccessTime returns the recorded access time, falling back to ModTime.
func (i *memInfo) AccessTime() time.Time {
	if i.atime.IsZero() {
		return i.ModTime()
	}
	return i.atime
}

// OpenFile opens a file with the specified flags and permissions.
func (mfs *MemoryFS) OpenFile(name string, flag int, perm fs.FileMode) (core.File, error) {
	name = normalize(name)
	target, info, err := mfs.resolve("open", name)

	created := false
	switch {
	case err == nil:
		if flag&os.O_CREATE != 0 && flag&os.O_EXCL != 0 {
			return nil, pathError("open", name, syscall.EEXIST)
		}
		if info.IsDir() {
			return nil, pathError("open", name, syscall.EISDIR)
		}
	case errors.Is(err, fs.ErrNotExist) && flag&os.O_CREATE != 0:
		if perr := checkParent(mfs.statRaw, "open", target); perr != nil {
			return nil, perr
		}
		created = true
	default:
		return nil, err
	}

	bf, err := mfs.bfs.OpenFile(target, flag, perm)
	if err != nil {
		return nil, wrap("open", name, err)
	}
	if created || (flag&os.O_TRUNC != 0 && flag&(os.O_WRONLY|os.O_RDWR) != 0) {
		mfs.touch(target)
	}

	f := &File{
		file:    bf,
		name:    target,
		locker:  mfs.locks,
		virtual: true,
		flag:    flag,
		touch:   func() { mfs.touch(target) },
		stat:    func() (fs.FileInfo, error) { return mfs.handleStat(target) },
	}
	return f, nil
}

// handleStat reports metadata for an open handle. memfs handles carry no
// Stat, so the resolved path is queried instead.
func (mfs *MemoryFS) handleStat(target string) (fs.FileInfo, error) {
	info, err := mfs.bfs.Lstat(target)
	if err != nil {
		return nil, wrap("fstat", target, err)
	}
	return mfs.decorate(target, "", info), nil
}

// Stat returns file metadata for the named file, following symbolic links.
func (mfs *MemoryFS) Stat(name string) (fs.FileInfo, error) {
	name = normalize(name)
	target, info, err := mfs.resolve("stat", name)
	if err != nil {
		return nil, err
	}
	return mfs.decorate(target, filepath.Base(name), info), nil
}

// Lstat returns file metadata without following symbolic links.
func (mfs *MemoryFS) Lstat(name string) (fs.FileInfo, error) {
	name = normalize(name)
	info, err := mfs.bfs.Lstat(name)
	if err != nil {
		return nil, wrap("lstat", name, err)
	}
	return mfs.decorate(name, "", info), nil
}

// Exists reports whether the named file or directory exists.
func (mfs *MemoryFS) Exists(name string) (bool, error) {
	return exists(mfs.Stat, name)
}

// OpenDir opens the named directory. Entries are listed when the stream is
// opened and again on each Rewind.
func (mfs *MemoryFS) OpenDir(name string) (core.DirStream, error) {
	name = normalize(name)
	target, info, err := mfs.resolve("opendir", name)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, pathError("opendir", name, syscall.ENOTDIR)
	}

	return newSnapshotDir(func() ([]fs.FileInfo, error) {
		infos, err := mfs.bfs.ReadDir(target)
		if err != nil {
			return nil, wrap("readdir", name, err)
		}
		out := make([]fs.FileInfo, len(infos))
		for i, info := range infos {
			out[i] = mfs.decorate(filepath.Join(target, info.Name()), "", info)
		}
		return out, nil
	})
}

// Mkdir creates a new directory with the specified name and permission bits.
// Unlike MkdirAll, this will fail if the parent directory does not exist.
func (mfs *MemoryFS) Mkdir(name string, perm fs.FileMode) error {
	name = normalize(name)
	if _, err := mfs.bfs.Lstat(name); err == nil {
		return pathError("mkdir", name, syscall.EEXIST)
	}
	if err := checkParent(mfs.statRaw, "mkdir", name); err != nil {
		return err
	}
	if err := mfs.bfs.MkdirAll(name, perm); err != nil {
		return wrap("mkdir", name, err)
	}
	mfs.touch(name)
	return nil
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (mfs *MemoryFS) MkdirAll(path string, perm fs.FileMode) error {
	path = normalize(path)
	if info, err := mfs.Stat(path); err == nil {
		if info.IsDir() {
			return nil
		}
		return pathError("mkdir", path, syscall.ENOTDIR)
	}
	if err := mfs.bfs.MkdirAll(path, perm); err != nil {
		// memfs refuses when a path component is a regular file
		return pathError("mkdir", path, syscall.ENOTDIR)
	}
	mfs.touch(path)
	return nil
}

// Remove removes the named file, symbolic link or empty directory.
func (mfs *MemoryFS) Remove(name string) error {
	name = normalize(name)
	info, err := mfs.bfs.Lstat(name)
	if err != nil {
		return wrap("remove", name, err)
	}
	if info.IsDir() {
		children, err := mfs.bfs.ReadDir(name)
		if err != nil {
			return wrap("remove", name, err)
		}
		if len(children) > 0 {
			return pathError("remove", name, syscall.ENOTEMPTY)
		}
	}
	if err := mfs.bfs.Remove(name); err != nil {
		return wrap("remove", name, err)
	}
	mfs.dropMeta(name)
	return nil
}

// Rename renames (moves) oldpath to newpath.
//
// Entries are moved one by one rather than through memfs's own Rename, which
// matches paths by string prefix and would also move "a.txt" when renaming "a".
func (mfs *MemoryFS) Rename(oldpath, newpath string) error {
	oldpath, newpath = normalize(oldpath), normalize(newpath)
	src, err := mfs.bfs.Lstat(oldpath)
	if err != nil {
		return wrap("rename", oldpath, err)
	}
	if oldpath == newpath {
		return nil
	}
	if src.IsDir() && strings.HasPrefix(newpath, oldpath+string(filepath.Separator)) {
		return pathError("rename", newpath, syscall.EINVAL)
	}
	if err := checkParent(mfs.statRaw, "rename", newpath); err != nil {
		return err
	}

	if dst, err := mfs.bfs.Lstat(newpath); err == nil {
		switch {
		case dst.IsDir() && !src.IsDir():
			return pathError("rename", newpath, syscall.EISDIR)
		case !dst.IsDir() && src.IsDir():
			return pathError("rename", newpath, syscall.ENOTDIR)
		}
		if err := mfs.Remove(newpath); err != nil {
			return err
		}
	}

	return mfs.move(oldpath, newpath, src)
}

func (mfs *MemoryFS) move(from, to string, info fs.FileInfo) error {
	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		target, err := mfs.bfs.Readlink(from)
		if err != nil {
			return wrap("rename", from, err)
		}
		if err := mfs.bfs.Symlink(target, to); err != nil {
			return wrap("rename", to, err)
		}

	case info.IsDir():
		if err := mfs.bfs.MkdirAll(to, info.Mode().Perm()); err != nil {
			return wrap("rename", to, err)
		}
		children, err := mfs.bfs.ReadDir(from)
		if err != nil {
			return wrap("rename", from, err)
		}
		for _, child := range children {
			if err := mfs.move(filepath.Join(from, child.Name()), filepath.Join(to, child.Name()), child); err != nil {
				return err
			}
		}

	default:
		if err := mfs.copyFile(from, to, info.Mode().Perm()); err != nil {
			return err
		}
	}

	if err := mfs.bfs.Remove(from); err != nil {
		return wrap("rename", from, err)
	}

	mfs.mu.Lock()
	if m, ok := mfs.meta[from]; ok {
		mfs.meta[to] = m
		delete(mfs.meta, from)
	}
	mfs.mu.Unlock()
	return nil
}

func (mfs *MemoryFS) copyFile(from, to string, perm fs.FileMode) error {
	in, err := mfs.bfs.Open(from)
	if err != nil {
		return wrap("rename", from, err)
	}
	defer func() { _ = in.Close() }()

	out, err := mfs.bfs.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return wrap("rename", to, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return wrap("rename", to, err)
	}
	return out.Close()
}

// Chmod changes the mode of the named file, following symbolic links.
func (mfs *MemoryFS) Chmod(name string, mode fs.FileMode) error {
	target, _, err := mfs.resolve("chmod", normalize(name))
	if err != nil {
		return err
	}
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	m := mfs.metaFor(target)
	m.perm = mode.Perm()
	m.hasPerm = true
	return nil
}

// Chtimes changes the access and modification times of the named file.
// A zero time leaves the corresponding value unchanged.
func (mfs *MemoryFS) Chtimes(name string, atime, mtime time.Time) error {
	target, _, err := mfs.resolve("chtimes", normalize(name))
	if err != nil {
		return err
	}
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	m := mfs.metaFor(target)
	if !atime.IsZero() {
		m.atime = atime
	}
	if !mtime.IsZero() {
		m.mtime = mtime
	}
	return nil
}

// Symlink creates a symbolic link named newname pointing to oldname.
func (mfs *MemoryFS) Symlink(oldname, newname string) error {
	newname = normalize(newname)
	if err := checkParent(mfs.statRaw, "symlink", newname); err != nil {
		return err
	}
	return wrap("symlink", newname, mfs.bfs.Symlink(oldname, newname))
}

// Readlink returns the destination of the named symbolic link.
func (mfs *MemoryFS) Readlink(name string) (string, error) {
	name = normalize(name)
	target, err := mfs.bfs.Readlink(name)
	if err != nil {
		return "", wrap("readlink", name, err)
	}
	return target, nil
}

// Type returns FSTypeMemory for in-memory filesystem implementations.
func (mfs *MemoryFS) Type() core.FSType {
	return core.FSTypeMemory
}
