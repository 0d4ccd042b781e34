package block

import "sync"

// bufPool recycles the raw byte buffers backing blocks across every
// PoolAllocator, the same way the executor's result and row pools recycle
// query-time allocations.
var bufPool = sync.Pool{
	New: func() interface{} {
		return make([]byte, Size)
	},
}

// PoolAllocator hands out blocks backed by recycled buffers, bounded by an
// optional capacity. A capacity of 0 means unbounded (limited only by the
// host's actual memory); a positive capacity lets callers exercise the
// insert engine's out-of-memory handling deterministically.
type PoolAllocator struct {
	capacity int
	live     int
}

// NewPoolAllocator returns a pool-backed allocator. capacity <= 0 means
// unbounded.
func NewPoolAllocator(capacity int) *PoolAllocator {
	return &PoolAllocator{capacity: capacity}
}

// Allocate returns a fresh, zeroed block, or ErrOutOfMemory if the
// allocator's capacity is already exhausted.
func (a *PoolAllocator) Allocate() (*Block, error) {
	if a.capacity > 0 && a.live >= a.capacity {
		return nil, ErrOutOfMemory
	}
	raw := bufPool.Get().([]byte)
	for i := range raw {
		raw[i] = 0
	}
	a.live++
	return &Block{Raw: raw}, nil
}

// Release returns a block's buffer to the pool for reuse.
func (a *PoolAllocator) Release(b *Block) {
	if b == nil || b.Raw == nil {
		return
	}
	b.reset()
	bufPool.Put(b.Raw)
	b.Raw = nil
	a.live--
}

// Live reports the number of blocks currently on loan from this allocator.
func (a *PoolAllocator) Live() int { return a.live }
