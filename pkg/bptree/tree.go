// Package bptree implements an in-memory, page-tuned B+ tree mapping
// uint64 keys to uint64 opaque values. Every node occupies one fixed-size
// block.Block; the tree owns no storage of its own beyond the blocks it
// obtains from a block.Allocator.
package bptree

import "pagetree/pkg/block"

// Options configures a new Tree.
type Options struct {
	// Allocator supplies and reclaims the node blocks the tree is built
	// from. A nil Allocator defaults to an unbounded block.PoolAllocator.
	Allocator block.Allocator
}

// Tree is an ordered index from uint64 keys to uint64 values, implemented
// as an in-memory B+ tree of fixed-size blocks.
type Tree struct {
	alloc   block.Allocator
	root    *block.Block
	height  int // number of index levels above the leaf level
	size    int
	cursors *Cursor // head of the intrusive active-cursor list
	scratch path
}

// New creates an empty tree. It fails with ErrNoMem if the allocator
// cannot produce the initial root block.
func New(opts Options) (*Tree, error) {
	alloc := opts.Allocator
	if alloc == nil {
		alloc = block.NewPoolAllocator(0)
	}
	root, err := newLeaf(alloc)
	if err != nil {
		return nil, ErrNoMem
	}
	return &Tree{alloc: alloc, root: root}, nil
}

// Free releases every block the tree holds and deactivates every cursor
// still positioned on it. Deactivated cursors return ErrNotFound from
// Get, Update, and Next, and their Free is a safe no-op.
func (t *Tree) Free() {
	t.freeSubtree(t.root)
	t.root = nil
	for c := t.cursors; c != nil; {
		next := c.next
		c.tree = nil
		c.leaf = nil
		c.active = false
		c.prev, c.next = nil, nil
		c = next
	}
	t.cursors = nil
}

func (t *Tree) freeSubtree(n *block.Block) {
	if n == nil {
		return
	}
	if !n.IsLeaf() {
		for i := 0; i <= n.KeyCount(); i++ {
			t.freeSubtree(n.Child(i))
		}
	}
	t.alloc.Release(n)
}

// Size returns the number of keys currently stored in the tree.
func (t *Tree) Size() int { return t.size }

// GetActiveStorage reports the number of records stored, live node
// blocks, and active cursors this tree currently holds. The cursor count
// is computed by walking the tree's live cursor list rather than a
// running counter, so a cursor freed after the tree itself cannot
// underflow it.
func (t *Tree) GetActiveStorage() (records int, blocks int, cursors int) {
	records = t.size
	blocks = t.countBlocks(t.root)
	for c := t.cursors; c != nil; c = c.next {
		cursors++
	}
	return records, blocks, cursors
}

func (t *Tree) countBlocks(n *block.Block) int {
	if n == nil {
		return 0
	}
	cnt := 1
	if !n.IsLeaf() {
		for i := 0; i <= n.KeyCount(); i++ {
			cnt += t.countBlocks(n.Child(i))
		}
	}
	return cnt
}

func (t *Tree) linkCursor(c *Cursor) {
	c.tree = t
	c.next = t.cursors
	c.prev = nil
	if t.cursors != nil {
		t.cursors.prev = c
	}
	t.cursors = c
	c.active = true
}

func (t *Tree) unlinkCursor(c *Cursor) {
	if c.prev != nil {
		c.prev.next = c.next
	} else if t.cursors == c {
		t.cursors = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	}
	c.prev, c.next = nil, nil
	c.active = false
}

// descend walks from the root to the leaf owning key, recording the index
// nodes and child indices visited in p so insert and delete can walk back
// up the same route for splits, rotations, and merges.
func (t *Tree) descend(key uint64, p *path) (*block.Block, error) {
	if err := p.ensure(t.height + 1); err != nil {
		return nil, err
	}
	p.reset()
	n := t.root
	for !n.IsLeaf() {
		idx := indexSearch(n, key)
		p.push(pathEntry{node: n, idx: idx})
		n = n.Child(idx)
	}
	return n, nil
}
