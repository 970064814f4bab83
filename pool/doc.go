// Package pool implements hierarchical resource pools.
//
// A Pool owns arena memory, a stack of cleanup functions and any number of
// child pools. Destroying a pool destroys its children first, then runs its
// cleanups in reverse registration order, then drops its arena. File and
// directory handles each own a dedicated pool and register their OS handle
// as a cleanup, so destroying a parent pool closes every handle beneath it.
//
// Pools are created through an Allocator, which can cap the number of live
// pools:
//
//	alloc := pool.NewAllocator(pool.WithLimit(128))
//	p, err := alloc.Create(nil)
//	if err != nil {
//	    // CodeExhausted
//	}
//	defer p.Destroy()
//
//	path := p.Join("/var/log", "app.log")
//
// A single Pool is not safe for concurrent use. Creating and destroying
// child pools of a shared parent from several goroutines is safe.
package pool
