// Package file provides buffered file handles and whole-file operations on
// top of a core.FS provider.
//
// A File owns a dedicated pool, an OS handle registered as a cleanup of that
// pool, and a read/write buffer. Close flushes pending output, closes the
// handle and destroys the pool; it is idempotent. A File that becomes
// unreachable without being closed is closed by the garbage collector and a
// warning is logged.
//
//	f, err := file.Open(fsys, "/tmp/notes.txt", "w+")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	if err := f.WriteValues("total=", 42, "\n"); err != nil {
//	    return err
//	}
//	if _, err := f.Seek(0, io.SeekStart); err != nil {
//	    return err
//	}
//	line, ok, err := f.ReadLine()
//
// # Errors
//
// Operation failures are returned as errors.PlatformError values carrying
// the failing operation, the path and the symbolic errno name. Using a closed
// File, an invalid mode string or an unknown option returns an error that
// wraps errors.ErrContract. Open panics with a CodeExhausted error when the
// pool allocator limit is reached.
//
// A File is not safe for concurrent use.
package file
