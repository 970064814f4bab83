package dir

import (
	"fmt"
	"io"
	"io/fs"
	"runtime"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/jmgilman/go/fsio/errors"
	"github.com/jmgilman/go/fsio/fs/core"
	"github.com/jmgilman/go/fsio/pool"
	"github.com/jmgilman/go/fsio/stat"
)

// Dir is an open directory stream.
type Dir struct {
	h       *handle
	cleanup runtime.Cleanup
}

type handle struct {
	fsys core.FS
	path string
	pool *pool.Pool
	ds   core.DirStream
	log  logrus.FieldLogger

	reclaimed atomic.Bool
}

// Open opens the directory at path. It panics with a CodeExhausted error
// when the allocator cannot create the handle pool.
func Open(fsys core.FS, path string, opts ...Option) (*Dir, error) {
	o := newOptions(opts)
	d, err := open(fsys, path, o.alloc, o.parent, o.log)
	if errors.IsExhausted(err) {
		panic(err)
	}
	return d, err
}

func open(fsys core.FS, path string, alloc *pool.Allocator, parent *pool.Pool, log logrus.FieldLogger) (*Dir, error) {
	p, err := alloc.Create(parent)
	if err != nil {
		return nil, err
	}

	ds, err := fsys.OpenDir(path)
	if err != nil {
		_ = p.Destroy()
		return nil, errors.FromOS("opendir", path, err)
	}

	h := &handle{
		fsys: fsys,
		path: p.Strdup(path),
		pool: p,
		ds:   ds,
		log:  log.WithFields(logrus.Fields{"path": path, "pool": p.ID()}),
	}
	p.Register(h.release)

	d := &Dir{h: h}
	d.cleanup = runtime.AddCleanup(d, (*handle).reclaim, h)

	h.log.Debug("directory opened")
	return d, nil
}

func (h *handle) release() error {
	if h.ds == nil {
		return nil
	}
	err := h.ds.Close()
	h.ds = nil

	if h.reclaimed.Load() {
		h.log.Warn("directory reclaimed by the garbage collector without Close")
	} else {
		h.log.Debug("directory closed")
	}
	return errors.FromOS("closedir", h.path, err)
}

// reclaim closes a handle whose Dir was garbage collected while open.
// Destroy is a no-op when the pool is already gone.
func (h *handle) reclaim() {
	h.reclaimed.Store(true)
	_ = h.pool.Destroy()
}

func (d *Dir) live() (*handle, error) {
	if d.h.ds == nil {
		return nil, errors.Closed("directory")
	}
	return d.h, nil
}

// Path returns the path the directory was opened with.
func (d *Dir) Path() string {
	return d.h.path
}

// Closed reports whether the directory has been closed.
func (d *Dir) Closed() bool {
	return d.h.ds == nil
}

// String returns "directory (<address>)" for an open directory and
// "directory (closed)" otherwise.
func (d *Dir) String() string {
	if d.Closed() {
		return "directory (closed)"
	}
	return fmt.Sprintf("directory (%p)", d)
}

// Close closes the directory stream and destroys the handle pool. Closing a
// closed directory is a no-op.
func (d *Dir) Close() error {
	d.cleanup.Stop()
	if d.h.ds == nil {
		return nil
	}
	return d.h.pool.Destroy()
}

// Read returns the next entry with the requested fields. ok is false once
// the stream is exhausted. names selects fields as in stat.ParseRequest;
// none selects all fields. Symbolic links are followed unless "link" is
// requested; a dangling link is reported as the link itself.
func (d *Dir) Read(names ...string) (*stat.Record, bool, error) {
	if _, err := d.live(); err != nil {
		return nil, false, err
	}
	req, err := stat.ParseRequest(names...)
	if err != nil {
		return nil, false, err
	}
	return d.read(req)
}

func (d *Dir) read(req stat.Request) (*stat.Record, bool, error) {
	h, err := d.live()
	if err != nil {
		return nil, false, err
	}
	for {
		info, err := h.ds.Next()
		if err == io.EOF {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, errors.FromOS("readdir", h.path, err)
		}
		if name := info.Name(); name == "." || name == ".." {
			continue
		}
		return h.record(info, req), true, nil
	}
}

func (h *handle) record(info fs.FileInfo, req stat.Request) *stat.Record {
	path := h.pool.Join(h.path, info.Name())
	if info.Mode()&fs.ModeSymlink != 0 && !req.NoFollow {
		if target, err := h.fsys.Stat(path); err == nil {
			info = target
		}
	}
	return stat.FromFileInfo(path, info, req)
}

// Rewind resets the stream to its first entry.
func (d *Dir) Rewind() error {
	h, err := d.live()
	if err != nil {
		return err
	}
	return errors.FromOS("rewinddir", h.path, h.ds.Rewind())
}
