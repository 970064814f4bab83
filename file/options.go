package file

import (
	"io/fs"

	"github.com/sirupsen/logrus"

	"github.com/jmgilman/go/fsio/buffer"
	"github.com/jmgilman/go/fsio/pool"
)

// DefaultPerm is the permission used when Open creates a file.
const DefaultPerm fs.FileMode = 0o666

// options holds the settings applied by Open.
type options struct {
	log     logrus.FieldLogger
	bufSize int
	alloc   *pool.Allocator
	parent  *pool.Pool
	perm    fs.FileMode
}

func newOptions(opts []Option) *options {
	o := &options{
		log:     logrus.StandardLogger(),
		bufSize: buffer.DefaultSize,
		alloc:   pool.Default,
		perm:    DefaultPerm,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures a File at open time.
type Option func(*options)

// WithLogger returns an Option that sets the logger for handle lifecycle
// events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithBufferSize returns an Option that sets the buffer size.
func WithBufferSize(n int) Option {
	return func(o *options) {
		o.bufSize = n
	}
}

// WithAllocator returns an Option that sets the allocator the handle pool
// is created from.
func WithAllocator(a *pool.Allocator) Option {
	return func(o *options) {
		o.alloc = a
	}
}

// WithParent returns an Option that creates the handle pool under parent.
// Destroying parent closes the file.
func WithParent(p *pool.Pool) Option {
	return func(o *options) {
		o.parent = p
	}
}

// WithPerm returns an Option that sets the permission bits for newly
// created files.
func WithPerm(perm fs.FileMode) Option {
	return func(o *options) {
		o.perm = perm
	}
}
