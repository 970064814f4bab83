package billy

import (
	"io/fs"
	"sync"

	"github.com/jmgilman/go/fsio/fs/core"
)

// lockTable emulates flock semantics for memory-backed files: any number of
// shared holders or one exclusive holder per path, with the holding handle
// able to convert its own lock without blocking.
type lockTable struct {
	mu   sync.Mutex
	cond *sync.Cond
	held map[string]*lockState
}

type lockState struct {
	exclusive *File
	shared    map[*File]struct{}
}

func newLockTable() *lockTable {
	t := &lockTable{held: make(map[string]*lockState)}
	t.cond = sync.NewCond(&t.mu)
	return t
}

func (s *lockState) grantable(f *File, kind core.LockKind) bool {
	if s.exclusive != nil && s.exclusive != f {
		return false
	}
	if kind == core.LockShared {
		return true
	}
	for holder := range s.shared {
		if holder != f {
			return false
		}
	}
	return true
}

func (t *lockTable) lock(f *File, kind core.LockKind, blocking bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for {
		s := t.held[f.name]
		if s == nil {
			s = &lockState{shared: make(map[*File]struct{})}
			t.held[f.name] = s
		}
		if s.grantable(f, kind) {
			if kind == core.LockExclusive {
				delete(s.shared, f)
				s.exclusive = f
			} else {
				if s.exclusive == f {
					s.exclusive = nil
				}
				s.shared[f] = struct{}{}
			}
			return nil
		}
		if !blocking {
			return &fs.PathError{Op: "lock", Path: f.name, Err: core.ErrWouldBlock}
		}
		t.cond.Wait()
	}
}

func (t *lockTable) unlock(f *File) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.drop(f)
	return nil
}

func (t *lockTable) release(f *File) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.drop(f)
}

func (t *lockTable) drop(f *File) {
	s := t.held[f.name]
	if s == nil {
		return
	}
	if s.exclusive == f {
		s.exclusive = nil
	}
	delete(s.shared, f)
	if s.exclusive == nil && len(s.shared) == 0 {
		delete(t.held, f.name)
	}
	t.cond.Broadcast()
}
