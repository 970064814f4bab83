package core

import (
	"io"
	"io/fs"
	"time"
)

// FSType represents the underlying type of filesystem implementation.
type FSType int

const (
	// FSTypeUnknown indicates the filesystem type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates a local filesystem (e.g., disk-backed).
	FSTypeLocal
	// FSTypeMemory indicates an in-memory filesystem.
	FSTypeMemory
)

// String returns a string representation of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// FS is the capability interface every provider implements. The handle,
// buffer and removal layers only ever reach the operating system through it.
//
// FS is composed of five sub-interfaces: OpenFS, ReadFS, WriteFS, ManageFS
// and MetadataFS.
type FS interface {
	OpenFS
	ReadFS
	WriteFS
	ManageFS
	MetadataFS

	// Type returns the underlying filesystem type.
	Type() FSType
}

// OpenFS opens file handles.
type OpenFS interface {
	// OpenFile opens a file with the specified flags and permissions.
	// The flags are a bitmask of os.O_* values (O_RDONLY, O_WRONLY, O_RDWR,
	// O_CREATE, O_TRUNC, O_APPEND, O_EXCL).
	//
	// If the file is created, the permission mode perm is used (before umask).
	// The returned file must be closed when no longer needed.
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)
}

// ReadFS defines read-only filesystem operations.
type ReadFS interface {
	// Stat returns file metadata, following symbolic links.
	// If there is an error, it will be of type *fs.PathError.
	Stat(name string) (fs.FileInfo, error)

	// OpenDir opens the named directory for streaming iteration.
	// The stream never yields the "." and ".." pseudo-entries.
	OpenDir(name string) (DirStream, error)

	// Exists reports whether the named file or directory exists.
	// A false result with a non-nil error indicates the existence
	// could not be determined, not that the file doesn't exist.
	Exists(name string) (bool, error)
}

// WriteFS defines directory creation operations.
type WriteFS interface {
	// Mkdir creates a new directory with the specified name and permission bits.
	// If the directory already exists, Mkdir returns an error (typically ErrExist).
	Mkdir(name string, perm fs.FileMode) error

	// MkdirAll creates a directory named path, along with any necessary parents.
	// If path is already a directory, MkdirAll does nothing and returns nil.
	MkdirAll(path string, perm fs.FileMode) error
}

// ManageFS defines file and directory management operations.
type ManageFS interface {
	// Remove removes the named file, symbolic link or empty directory.
	// If the path is a directory and is not empty, Remove returns an error.
	Remove(name string) error

	// Rename renames (moves) oldpath to newpath.
	// If newpath already exists and is not a directory, Rename replaces it.
	Rename(oldpath, newpath string) error
}

// MetadataFS defines metadata operations.
type MetadataFS interface {
	// Lstat returns file info without following symbolic links.
	// If the file is a symbolic link, the returned FileInfo describes
	// the symbolic link itself, not the file it points to.
	Lstat(name string) (fs.FileInfo, error)

	// Chmod changes the mode/permissions of the named file.
	Chmod(name string, mode fs.FileMode) error

	// Chtimes changes the access and modification times of the named file.
	Chtimes(name string, atime, mtime time.Time) error
}

// SymlinkFS defines symbolic link operations.
//
// Use type assertion to check if a filesystem supports symlink operations:
//
//	if sfs, ok := filesystem.(SymlinkFS); ok {
//	    err := sfs.Symlink("target", "linkname")
//	}
type SymlinkFS interface {
	// Symlink creates a symbolic link named newname pointing to oldname.
	// If newname already exists, Symlink returns an error.
	//
	// The oldname path is not validated; it is stored as-is in the symlink.
	// Broken symbolic links are valid and detectable via Lstat.
	Symlink(oldname, newname string) error

	// Readlink returns the destination of the named symbolic link.
	Readlink(name string) (string, error)
}

// LockKind selects between shared and exclusive whole-file locks.
type LockKind int

const (
	// LockShared allows any number of shared holders.
	LockShared LockKind = iota
	// LockExclusive allows a single holder.
	LockExclusive
)

// String returns "shared" or "exclusive".
func (k LockKind) String() string {
	if k == LockExclusive {
		return "exclusive"
	}
	return "shared"
}

// File represents an open file handle.
//
// A File is not safe for concurrent use; callers serialize access.
type File interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer

	// Name returns the name of the file as provided to OpenFile.
	Name() string

	// Stat returns metadata for the open handle rather than for a path.
	Stat() (fs.FileInfo, error)

	// Sync commits the current contents of the file to stable storage.
	Sync() error

	// Lock acquires a whole-file lock. With blocking false a contended lock
	// fails immediately with ErrWouldBlock. Acquiring a lock already held
	// through the same handle does not block; the kind is converted.
	Lock(kind LockKind, blocking bool) error

	// Unlock releases a lock acquired with Lock.
	Unlock() error
}

// Truncater allows truncating a file to a specified size.
//
// Not all File implementations support truncation. Callers should use
// type assertion to check if this capability is available:
//
//	if t, ok := file.(Truncater); ok {
//	    err := t.Truncate(size)
//	}
type Truncater interface {
	// Truncate changes the size of the file.
	// It does not change the I/O offset.
	Truncate(size int64) error
}

// DirStream iterates over the entries of an open directory one at a time.
type DirStream interface {
	// Next returns lstat-style information for the next entry, or io.EOF
	// once the directory is exhausted.
	Next() (fs.FileInfo, error)

	// Rewind restarts iteration from the first entry.
	Rewind() error

	// Close releases the stream. Calling Close more than once returns nil.
	Close() error
}
