// Package core defines the operating-system capability interfaces that the
// fsio handle, buffer and removal layers are written against.
//
// Nothing above this package calls the os package for file access. Providers
// (see package billy) implement FS for a real disk or for memory, which keeps
// every higher layer testable without touching the host filesystem.
//
// # Interface Hierarchy
//
// The main FS interface is composed of five sub-interfaces:
//
//   - OpenFS: file handles (OpenFile)
//   - ReadFS: Stat, OpenDir, Exists
//   - WriteFS: Mkdir, MkdirAll
//   - ManageFS: Remove, Rename
//   - MetadataFS: Lstat, Chmod, Chtimes
//
// Optional capabilities are discovered with type assertions:
//
//   - SymlinkFS: Symlink, Readlink
//   - Truncater: File.Truncate
//
// # Handles
//
// A File is a raw, unbuffered byte stream with whole-file advisory locking.
// A DirStream yields one entry at a time and never reports "." or "..".
// Both are single-owner objects; callers serialize access.
//
//	f, err := filesystem.OpenFile("data.bin", os.O_RDWR|os.O_CREATE, 0o644)
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	if err := f.Lock(core.LockExclusive, false); errors.Is(err, core.ErrWouldBlock) {
//	    // held elsewhere
//	}
package core
