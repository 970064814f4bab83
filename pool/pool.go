package pool

import (
	stderrors "errors"
	"path/filepath"
	"slices"
	"sync"
	"unsafe"

	"github.com/google/uuid"

	"github.com/jmgilman/go/fsio/errors"
)

// blockSize is the size of each arena block. Larger requests get a block of
// their own.
const blockSize = 8 << 10

// Pool is a node in a tree of resource lifetimes.
type Pool struct {
	id     uuid.UUID
	alloc  *Allocator
	parent *Pool

	mu        sync.Mutex
	children  []*Pool
	destroyed bool

	cleanups    []func() error
	block       []byte
	allocations int
}

// ID returns the pool identifier, used to correlate log entries.
func (p *Pool) ID() uuid.UUID {
	return p.id
}

// Parent returns the parent pool, or nil for a root pool.
func (p *Pool) Parent() *Pool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.parent
}

// Destroyed reports whether Destroy has been called.
func (p *Pool) Destroyed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.destroyed
}

// Allocations returns the number of arena allocations made since the pool
// was created or last cleared.
func (p *Pool) Allocations() int {
	return p.allocations
}

// Register adds fn to the cleanup stack. Cleanups run in reverse order of
// registration when the pool is cleared or destroyed.
func (p *Pool) Register(fn func() error) {
	p.mustBeLive()
	p.mu.Lock()
	p.cleanups = append(p.cleanups, fn)
	p.mu.Unlock()
}

// Alloc returns n zeroed bytes from the pool arena. The memory stays valid
// until the last reference to it is dropped; Clear and Destroy only stop the
// pool from handing out more of the same block.
func (p *Pool) Alloc(n int) []byte {
	p.mustBeLive()
	p.allocations++

	if n > blockSize/4 {
		return make([]byte, n)
	}
	if len(p.block) < n {
		p.block = make([]byte, blockSize)
	}
	b := p.block[:n:n]
	p.block = p.block[n:]
	return b
}

// Strdup copies s into the pool arena.
func (p *Pool) Strdup(s string) string {
	if s == "" {
		p.mustBeLive()
		p.allocations++
		return ""
	}
	b := p.Alloc(len(s))
	copy(b, s)
	return unsafe.String(&b[0], len(b))
}

// Join merges name onto base and copies the cleaned result into the pool
// arena. An absolute name is returned as is.
func (p *Pool) Join(base, name string) string {
	if filepath.IsAbs(name) || base == "" {
		return p.Strdup(filepath.Clean(name))
	}
	return p.Strdup(filepath.Join(base, name))
}

// Clear destroys all child pools, runs the registered cleanups and resets
// the arena, leaving the pool ready for reuse. All cleanups run even when
// some fail; their errors are joined.
func (p *Pool) Clear() error {
	p.mustBeLive()
	return p.teardown()
}

// Destroy clears the pool and detaches it from its parent. Destroying a
// pool twice is a no-op.
func (p *Pool) Destroy() error {
	p.mu.Lock()
	if p.destroyed {
		p.mu.Unlock()
		return nil
	}
	p.destroyed = true
	parent := p.parent
	p.parent = nil
	p.mu.Unlock()

	err := p.teardown()

	if parent != nil {
		parent.disown(p)
	}
	p.alloc.release()
	if p.alloc.log != nil {
		p.alloc.log.WithField("pool", p.id).Debug("pool destroyed")
	}
	return err
}

func (p *Pool) teardown() error {
	p.mu.Lock()
	children := p.children
	p.children = nil
	cleanups := p.cleanups
	p.cleanups = nil
	p.mu.Unlock()

	var errs []error
	for _, child := range slices.Backward(children) {
		if err := child.Destroy(); err != nil {
			errs = append(errs, err)
		}
	}

	for _, fn := range slices.Backward(cleanups) {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}

	p.block = nil
	p.allocations = 0
	return stderrors.Join(errs...)
}

func (p *Pool) adopt(child *Pool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.destroyed {
		return false
	}
	p.children = append(p.children, child)
	return true
}

func (p *Pool) disown(child *Pool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i := slices.Index(p.children, child); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
}

func (p *Pool) mustBeLive() {
	if p.Destroyed() {
		panic(errors.Closed("pool"))
	}
}
