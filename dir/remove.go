package dir

import (
	"io"
	"io/fs"

	"github.com/sirupsen/logrus"

	"github.com/jmgilman/go/fsio/errors"
	"github.com/jmgilman/go/fsio/fs/core"
	"github.com/jmgilman/go/fsio/pool"
)

// RemoveAll deletes root and everything beneath it.
//
// The tree is walked iteratively. Files are removed as their directory is
// scanned, subdirectories are queued, and the emptied directories are
// removed deepest first once the walk is complete. Symbolic links are
// removed without being followed, and a root that is itself a link fails
// with CodeNotDirectory.
//
// The first failure aborts the walk and is returned; whatever was already
// removed stays removed. All pools and any open directory are released on
// every return path. Pool exhaustion is returned as a CodeExhausted error.
func RemoveAll(fsys core.FS, root string, opts ...Option) (err error) {
	o := newOptions(opts)
	log := o.log.WithField("root", root)

	info, err := fsys.Lstat(root)
	if err != nil {
		return errors.FromOS("rmtree", root, err)
	}
	if !info.IsDir() {
		return notDirectory("rmtree", root)
	}

	outer, err := o.alloc.Create(o.parent)
	if err != nil {
		return err
	}
	defer func() {
		if derr := outer.Destroy(); err == nil && derr != nil {
			err = derr
		}
	}()

	middle, err := o.alloc.Create(outer)
	if err != nil {
		return err
	}
	inner, err := o.alloc.Create(outer)
	if err != nil {
		return err
	}

	w := &walk{
		fsys:   fsys,
		opts:   o,
		log:    log,
		outer:  outer,
		middle: middle,
		inner:  inner,
		todo:   []string{outer.Strdup(root)},
	}

	log.Debug("removing directory tree")
	if err := w.mark(); err != nil {
		return err
	}
	if err := w.sweep(); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"files": w.files, "dirs": w.dirs}).Debug("directory tree removed")
	return nil
}

// walk is the state of one RemoveAll call. Queued directory paths live in
// the outer pool, the open directory in the middle pool and file paths in
// the inner pool.
type walk struct {
	fsys core.FS
	opts *options
	log  logrus.FieldLogger

	outer  *pool.Pool
	middle *pool.Pool
	inner  *pool.Pool

	todo []string
	done []string

	files int
	dirs  int
}

// mark empties every directory of files, collecting the directories in
// done so that each one follows its parent.
func (w *walk) mark() error {
	for len(w.todo) > 0 {
		path := w.todo[len(w.todo)-1]
		w.todo = w.todo[:len(w.todo)-1]

		if err := w.middle.Clear(); err != nil {
			return err
		}
		if err := w.scan(path); err != nil {
			return err
		}
		w.done = append(w.done, path)
	}
	return nil
}

// scan removes the files in path and queues its subdirectories.
func (w *walk) scan(path string) error {
	d, err := open(w.fsys, path, w.opts.alloc, w.middle, w.log)
	if err != nil {
		return err
	}
	h := d.h

	removed := 0
	for {
		info, err := h.ds.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.FromOS("readdir", path, err)
		}

		name := info.Name()
		if name == "." || name == ".." {
			continue
		}
		if info.Mode().Type() == fs.ModeDir {
			w.todo = append(w.todo, w.outer.Join(path, name))
			continue
		}

		child := w.inner.Join(path, name)
		if err := w.fsys.Remove(child); err != nil {
			return errors.FromOS("remove", child, err)
		}
		removed++
		w.files++
		if w.files%w.opts.fileInterval == 0 {
			if err := w.inner.Clear(); err != nil {
				return err
			}
		}
	}

	w.log.WithFields(logrus.Fields{"dir": path, "files": removed}).Debug("directory emptied")
	return d.Close()
}

// sweep removes the emptied directories, children before parents.
func (w *walk) sweep() error {
	for i := len(w.done) - 1; i >= 0; i-- {
		path := w.done[i]
		if err := w.fsys.Remove(path); err != nil {
			return errors.FromOS("rmdir", path, err)
		}
		w.dirs++
		w.log.WithField("dir", path).Debug("directory removed")

		if w.dirs%w.opts.dirInterval == 0 {
			if err := w.middle.Clear(); err != nil {
				return err
			}
		}
	}
	return nil
}
