package file

import (
	"fmt"
	"io"
	"runtime"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/jmgilman/go/fsio/buffer"
	"github.com/jmgilman/go/fsio/errors"
	"github.com/jmgilman/go/fsio/fs/core"
	"github.com/jmgilman/go/fsio/pool"
	"github.com/jmgilman/go/fsio/stat"
)

// File is an open, buffered file.
type File struct {
	h       *handle
	cleanup runtime.Cleanup
}

// handle holds everything a File releases on close. It never points back
// at its File so the garbage collector can reclaim an abandoned File.
type handle struct {
	path string
	mode Mode
	pool *pool.Pool
	f    core.File
	buf  *buffer.Buffer
	log  logrus.FieldLogger

	// set by the garbage collector cleanup before it destroys the pool
	reclaimed atomic.Bool
}

// Open opens path on fsys with an fopen-style mode string (see ParseMode).
//
// A missing file, a permission problem or any other provider failure is
// returned as an error. Open panics with a CodeExhausted error when the
// allocator cannot create the handle pool.
func Open(fsys core.FS, path, mode string, opts ...Option) (*File, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	o := newOptions(opts)

	p, err := o.alloc.Create(o.parent)
	if err != nil {
		if errors.IsExhausted(err) {
			panic(err)
		}
		return nil, err
	}

	f, err := fsys.OpenFile(path, m.Flags(), o.perm)
	if err != nil {
		_ = p.Destroy()
		return nil, errors.FromOS("open", path, err)
	}

	h := &handle{
		path: p.Strdup(path),
		mode: m,
		pool: p,
		f:    f,
		buf:  buffer.New(f, o.bufSize),
		log:  o.log.WithFields(logrus.Fields{"path": path, "pool": p.ID()}),
	}
	p.Register(h.release)

	file := &File{h: h}
	file.cleanup = runtime.AddCleanup(file, (*handle).reclaim, h)

	h.log.WithField("mode", m.String()).Debug("file opened")
	return file, nil
}

// release flushes and closes the OS handle. It runs as a cleanup of the
// handle pool, so destroying a parent pool closes the file too.
func (h *handle) release() error {
	if h.f == nil {
		return nil
	}
	flushErr := h.buf.Flush()
	closeErr := h.f.Close()
	h.f = nil
	h.buf = nil

	if h.reclaimed.Load() {
		h.log.Warn("file reclaimed by the garbage collector without Close")
	} else {
		h.log.Debug("file closed")
	}
	if flushErr != nil {
		return errors.FromOS("flush", h.path, flushErr)
	}
	if closeErr != nil {
		return errors.FromOS("close", h.path, closeErr)
	}
	return nil
}

// reclaim closes a handle whose File was garbage collected while open.
func (h *handle) reclaim() {
	h.reclaimed.Store(true)
	_ = h.pool.Destroy()
}

func (f *File) live() (*handle, error) {
	if f.h.f == nil {
		return nil, errors.Closed("file")
	}
	return f.h, nil
}

// Path returns the path the file was opened with.
func (f *File) Path() string {
	return f.h.path
}

// Mode returns the mode the file was opened with.
func (f *File) Mode() Mode {
	return f.h.mode
}

// Closed reports whether the file has been closed, either explicitly or by
// destruction of a parent pool.
func (f *File) Closed() bool {
	return f.h.f == nil
}

// String returns "file (<address>)" for an open file and "file (closed)"
// otherwise.
func (f *File) String() string {
	if f.Closed() {
		return "file (closed)"
	}
	return fmt.Sprintf("file (%p)", f)
}

// Close flushes pending output, closes the OS handle and destroys the
// handle pool. Closing a closed file is a no-op.
func (f *File) Close() error {
	f.cleanup.Stop()
	if f.h.f == nil {
		return nil
	}
	return f.h.pool.Destroy()
}

// ReadLine reads the next line without its newline. ok is false at end of
// file.
func (f *File) ReadLine() (string, bool, error) {
	h, err := f.live()
	if err != nil {
		return "", false, err
	}
	s, ok, err := h.buf.ReadLine()
	return s, ok, h.wrap("read", err)
}

// ReadAll reads from the current position to the end of the file. It
// returns the empty string at end of file.
func (f *File) ReadAll() (string, error) {
	h, err := f.live()
	if err != nil {
		return "", err
	}
	s, err := h.buf.ReadAll()
	return s, h.wrap("read", err)
}

// ReadN reads up to n bytes. ok is false at end of file.
func (f *File) ReadN(n int) (string, bool, error) {
	h, err := f.live()
	if err != nil {
		return "", false, err
	}
	s, ok, err := h.buf.ReadN(n)
	return s, ok, h.wrap("read", err)
}

// ReadNumber reads a number. ok is false when the input does not start with
// one.
func (f *File) ReadNumber() (float64, bool, error) {
	h, err := f.live()
	if err != nil {
		return 0, false, err
	}
	v, ok, err := h.buf.ReadNumber()
	return v, ok, h.wrap("read", err)
}

// ReadFormats runs several read requests in order, stopping after the first
// one that finds nothing. With no requests one line is read.
func (f *File) ReadFormats(reqs ...buffer.Request) ([]buffer.Result, error) {
	h, err := f.live()
	if err != nil {
		return nil, err
	}
	results, err := h.buf.ReadFormats(reqs...)
	return results, h.wrap("read", err)
}

// Read implements io.Reader.
func (f *File) Read(p []byte) (int, error) {
	h, err := f.live()
	if err != nil {
		return 0, err
	}
	n, err := h.buf.Read(p)
	if err == io.EOF {
		return n, err
	}
	return n, h.wrap("read", err)
}

// Write implements io.Writer.
func (f *File) Write(p []byte) (int, error) {
	h, err := f.live()
	if err != nil {
		return 0, err
	}
	n, err := h.buf.Write(p)
	return n, h.wrap("write", err)
}

// WriteString writes s.
func (f *File) WriteString(s string) (int, error) {
	h, err := f.live()
	if err != nil {
		return 0, err
	}
	n, err := h.buf.WriteString(s)
	return n, h.wrap("write", err)
}

// WriteValues writes strings, byte slices and numbers in order. Any other
// value is a contract error and nothing is written.
func (f *File) WriteValues(values ...any) error {
	h, err := f.live()
	if err != nil {
		return err
	}
	return h.wrap("write", h.buf.WriteValues(values...))
}

// Seek implements io.Seeker.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	h, err := f.live()
	if err != nil {
		return 0, err
	}
	pos, err := h.buf.Seek(offset, whence)
	return pos, h.wrap("seek", err)
}

// SeekNumber seeks with a textual whence ("set", "cur" or "end") and a
// float64 offset, returning the new position as a float64. Offsets beyond
// ±2^53 fail with CodeOutOfRange instead of losing precision.
func (f *File) SeekNumber(whence string, offset float64) (float64, error) {
	w, err := ParseWhence(whence)
	if err != nil {
		return 0, err
	}
	off, err := buffer.Offset(offset)
	if err != nil {
		return 0, err
	}
	pos, err := f.Seek(off, w)
	if err != nil {
		return 0, err
	}
	return buffer.ExactNumber(pos)
}

// Flush writes buffered output to the OS.
func (f *File) Flush() error {
	h, err := f.live()
	if err != nil {
		return err
	}
	return h.wrap("flush", h.buf.Flush())
}

// Sync flushes buffered output and commits the file to stable storage.
func (f *File) Sync() error {
	h, err := f.live()
	if err != nil {
		return err
	}
	if err := h.buf.Flush(); err != nil {
		return h.wrap("flush", err)
	}
	return h.wrap("sync", h.f.Sync())
}

// Lock acquires a whole-file lock. With blocking false a contended lock
// fails at once with CodeWouldBlock. Locking again through the same File
// converts the lock instead of blocking.
func (f *File) Lock(kind core.LockKind, blocking bool) error {
	h, err := f.live()
	if err != nil {
		return err
	}
	if kind != core.LockShared && kind != core.LockExclusive {
		return errors.Contract("kind", "invalid lock kind %d", int(kind))
	}
	if err := h.f.Lock(kind, blocking); err != nil {
		return errors.WithContext(h.wrap("lock", err), "kind", kind.String())
	}
	return nil
}

// Unlock releases the lock held through the File.
func (f *File) Unlock() error {
	h, err := f.live()
	if err != nil {
		return err
	}
	return h.wrap("unlock", h.f.Unlock())
}

// Stat returns metadata read through the open handle. names selects fields
// as in stat.ParseRequest; none selects all fields.
func (f *File) Stat(names ...string) (*stat.Record, error) {
	h, err := f.live()
	if err != nil {
		return nil, err
	}
	req, err := stat.ParseRequest(names...)
	if err != nil {
		return nil, err
	}
	if err := h.buf.Flush(); err != nil {
		return nil, h.wrap("flush", err)
	}
	info, err := h.f.Stat()
	if err != nil {
		return nil, h.wrap("stat", err)
	}
	return stat.FromFileInfo(h.path, info, req), nil
}

// wrap converts err into a PlatformError for op on the handle path.
func (h *handle) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return errors.FromOS(op, h.path, err)
}
