package pool

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jmgilman/go/fsio/errors"
)

// Allocator creates pools and tracks how many are alive.
type Allocator struct {
	mu    sync.Mutex
	limit int
	live  int
	log   logrus.FieldLogger
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithLimit caps the number of live pools. Zero or a negative value means no
// limit.
func WithLimit(n int) Option {
	return func(a *Allocator) {
		a.limit = n
	}
}

// WithLogger sets the logger used for pool lifecycle events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(a *Allocator) {
		a.log = log
	}
}

// NewAllocator creates an Allocator.
func NewAllocator(opts ...Option) *Allocator {
	a := &Allocator{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Default is the unlimited allocator used when none is configured.
var Default = NewAllocator()

// Create returns a new pool. When parent is non-nil the new pool is
// destroyed together with it.
//
// Returns a CodeExhausted error when the allocator limit is reached, or a
// contract error when parent has already been destroyed.
func (a *Allocator) Create(parent *Pool) (*Pool, error) {
	a.mu.Lock()
	if a.limit > 0 && a.live >= a.limit {
		a.mu.Unlock()
		return nil, errors.WithContext(
			errors.Newf(errors.CodeExhausted, "pool limit of %d reached", a.limit),
			"limit", a.limit,
		)
	}
	a.live++
	a.mu.Unlock()

	p := &Pool{id: uuid.New(), alloc: a, parent: parent}
	if parent != nil {
		if !parent.adopt(p) {
			a.release()
			return nil, errors.Closed("pool")
		}
	}

	if a.log != nil {
		entry := a.log.WithField("pool", p.id)
		if parent != nil {
			entry = entry.WithField("parent", parent.id)
		}
		entry.Debug("pool created")
	}
	return p, nil
}

// MustCreate is like Create but panics with the PlatformError on failure.
// Handle opens use it: running out of pools is not a condition callers are
// expected to recover from.
func (a *Allocator) MustCreate(parent *Pool) *Pool {
	p, err := a.Create(parent)
	if err != nil {
		panic(err)
	}
	return p
}

// Live returns the number of pools created and not yet destroyed.
func (a *Allocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.live
}

// Limit returns the configured live-pool limit, zero when unlimited.
func (a *Allocator) Limit() int {
	return a.limit
}

func (a *Allocator) release() {
	a.mu.Lock()
	a.live--
	a.mu.Unlock()
}

// Create creates a pool with the Default allocator.
func Create(parent *Pool) (*Pool, error) {
	return Default.Create(parent)
}

// MustCreate creates a pool with the Default allocator, panicking on failure.
func MustCreate(parent *Pool) *Pool {
	return Default.MustCreate(parent)
}
