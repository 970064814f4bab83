// Package billy provides go-billy-backed implementations of the core.FS
// interface.
//
// LocalFS wraps osfs and operates on the host filesystem with absolute
// paths. MemoryFS wraps memfs and adds what memfs leaves out so both
// providers behave the same under the fstest conformance suite: POSIX
// errno values, permission bits and timestamps, symlink loop detection and
// whole-file locks.
//
// Usage:
//
//	// Create local filesystem
//	fs := billy.NewLocal()
//	f, err := fs.OpenFile("/tmp/data.txt", os.O_RDWR|os.O_CREATE, 0o644)
//
//	// Lock the file for exclusive use
//	err = f.Lock(core.LockExclusive, true)
//
// # Memory Filesystem
//
// For testing or temporary storage, use the in-memory filesystem:
//
//	fs := billy.NewMemory()
//	err := fs.MkdirAll("/work", 0o755)
//
// Locks taken on MemoryFS files only exclude other handles of the same
// MemoryFS instance.
//
// # Thread Safety
//
// FS instances (LocalFS, MemoryFS) are safe for concurrent use by
// multiple goroutines. File handles are not safe for concurrent use.
package billy
