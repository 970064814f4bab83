package dir

import (
	"github.com/sirupsen/logrus"

	"github.com/jmgilman/go/fsio/pool"
)

const (
	// DefaultFileClearInterval is the number of file removals after which
	// RemoveAll clears the pool holding file paths.
	DefaultFileClearInterval = 1000

	// DefaultDirClearInterval is the number of directory removals after
	// which RemoveAll clears the pool holding per-directory state.
	DefaultDirClearInterval = 100
)

type options struct {
	log          logrus.FieldLogger
	alloc        *pool.Allocator
	parent       *pool.Pool
	fileInterval int
	dirInterval  int
}

func newOptions(opts []Option) *options {
	o := &options{
		log:          logrus.StandardLogger(),
		alloc:        pool.Default,
		fileInterval: DefaultFileClearInterval,
		dirInterval:  DefaultDirClearInterval,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures Open and RemoveAll.
type Option func(*options)

// WithLogger returns an Option that sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithAllocator returns an Option that sets the allocator pools are created
// from.
func WithAllocator(a *pool.Allocator) Option {
	return func(o *options) {
		o.alloc = a
	}
}

// WithParent returns an Option that creates the top-level pool under
// parent.
func WithParent(p *pool.Pool) Option {
	return func(o *options) {
		o.parent = p
	}
}

// WithClearIntervals returns an Option that sets how often RemoveAll clears
// its scratch pools: after every files file removals and every dirs
// directory removals. Values below one keep the defaults.
func WithClearIntervals(files, dirs int) Option {
	return func(o *options) {
		if files > 0 {
			o.fileInterval = files
		}
		if dirs > 0 {
			o.dirInterval = dirs
		}
	}
}
