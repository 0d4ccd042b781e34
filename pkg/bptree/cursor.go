package bptree

import "pagetree/pkg/block"

// Cursor is a forward iterator over a tree's records in ascending key
// order. A cursor survives concurrent insert, delete, split, and merge on
// the tree it is positioned on: the tree fixes up every active cursor in
// place as part of each mutation, rather than the cursor re-deriving its
// position on next use.
type Cursor struct {
	tree      *Tree
	leaf      *block.Block
	idx       int
	active    bool
	exhausted bool

	// invalid is set when the record the cursor was positioned on has
	// been deleted. Get and Update report ErrNotFound while it is set;
	// Next clears it and, without advancing further, lands on whatever
	// record slid into the deleted record's place.
	invalid bool

	prev, next *Cursor
}

// FirstRecord returns a cursor positioned on the tree's lowest-keyed
// record.
func (t *Tree) FirstRecord() (*Cursor, error) {
	n := t.root
	for !n.IsLeaf() {
		n = n.Child(0)
	}
	c := &Cursor{leaf: n, idx: 0}
	t.linkCursor(c)
	if n.KeyCount() == 0 {
		c.exhausted = true
	}
	return c, nil
}

// FindRecord returns a cursor positioned exactly on key, or ErrNotFound if
// key is absent.
func (t *Tree) FindRecord(key uint64) (*Cursor, error) {
	n := t.root
	for !n.IsLeaf() {
		n = n.Child(indexSearch(n, key))
	}
	idx, found := leafSearch(n, key)
	if !found {
		return nil, ErrNotFound
	}
	c := &Cursor{leaf: n, idx: idx}
	t.linkCursor(c)
	return c, nil
}

// GetTree returns the tree a cursor was obtained from, or nil once that
// tree has been freed.
func (c *Cursor) GetTree() *Tree { return c.tree }

// Get returns the key and value the cursor is currently positioned on. It
// returns ErrNotFound if the record under the cursor has been deleted
// since the cursor was positioned there.
func (c *Cursor) Get() (key, value uint64, err error) {
	if !c.active || c.exhausted || c.invalid {
		return 0, 0, ErrNotFound
	}
	return c.leaf.Key(c.idx), c.leaf.Value(c.idx), nil
}

// Update overwrites the value of the record the cursor is positioned on.
// It returns ErrNotFound if the record under the cursor has been deleted.
func (c *Cursor) Update(value uint64) error {
	if !c.active || c.exhausted || c.invalid {
		return ErrNotFound
	}
	c.leaf.SetValue(c.idx, value)
	return nil
}

// Next advances the cursor to the following record in key order. If the
// cursor was invalidated by the deletion of its record, Next instead
// clears the invalidation flag and leaves the cursor where it is, which
// now refers to whatever record took the deleted record's place. Next
// returns ErrNotFound once the cursor has advanced past the last record.
func (c *Cursor) Next() error {
	if !c.active || c.exhausted {
		return ErrNotFound
	}
	if c.invalid {
		c.invalid = false
	} else {
		c.idx++
	}
	for c.idx >= c.leaf.KeyCount() {
		if c.leaf.Next == nil {
			c.exhausted = true
			return ErrNotFound
		}
		c.leaf = c.leaf.Next
		c.idx = 0
	}
	return nil
}

// Free releases the cursor. A freed cursor may not be used again; Free
// itself is safe to call more than once.
func (c *Cursor) Free() {
	if c.tree != nil {
		c.tree.unlinkCursor(c)
	}
	c.leaf = nil
}
