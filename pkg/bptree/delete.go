package bptree

import "pagetree/pkg/block"

// Delete removes key from the tree, or returns ErrNotFound if it is
// absent. Deletion never allocates; a non-root node that falls below its
// minimum occupancy is repaired by rotating a record from a sibling or,
// failing that, merging with one. The preference order at each step is
// right-rotate, left-rotate, left-merge, right-merge.
func (t *Tree) Delete(key uint64) error {
	leaf, err := t.descend(key, &t.scratch)
	if err != nil {
		return err
	}
	idx, found := leafSearch(leaf, key)
	if !found {
		return ErrNotFound
	}

	t.fixupCursorsRemove(leaf, idx)
	leafRemoveAt(leaf, idx)
	t.size--

	if t.scratch.len() == 0 {
		// The root is the leaf; it is exempt from the occupancy floor.
		return nil
	}
	if leaf.KeyCount() >= block.LHalf {
		return nil
	}
	t.fixLeafUnderflow(&t.scratch, leaf)
	return nil
}

// fixupCursorsRemove adjusts cursors positioned on leaf for the removal of
// the entry at idx. A cursor past idx shifts left by one. A cursor
// exactly on idx is invalidated: the record it was positioned on is gone,
// so Get and Update must report ErrNotFound until Next is called to move
// it on to whatever record (if any) slides into that slot.
func (t *Tree) fixupCursorsRemove(leaf *block.Block, idx int) {
	for c := t.cursors; c != nil; c = c.next {
		if c.leaf != leaf || c.exhausted {
			continue
		}
		switch {
		case c.idx > idx:
			c.idx--
		case c.idx == idx:
			c.invalid = true
		}
	}
}

func (t *Tree) fixLeafUnderflow(p *path, leaf *block.Block) {
	level := p.len() - 1
	entry := p.at(level)
	parent := entry.node
	childIdx := entry.idx

	var left, right *block.Block
	if childIdx > 0 {
		left = parent.Child(childIdx - 1)
	}
	if childIdx < parent.KeyCount() {
		right = parent.Child(childIdx + 1)
	}

	// Preference order: right-rotate, left-rotate, left-merge, right-merge.
	switch {
	case right != nil && right.KeyCount() > block.RHalf:
		t.rotateLeafFromRight(leaf, right, parent, childIdx)
		return
	case left != nil && left.KeyCount() > block.LHalf:
		t.rotateLeafFromLeft(leaf, left, parent, childIdx)
		return
	case left != nil:
		t.mergeLeafWithLeft(leaf, left, parent, childIdx)
	case right != nil:
		t.mergeLeafWithRight(leaf, right, parent, childIdx)
	default:
		return
	}
	t.fixIndexUnderflow(p, level)
}

func (t *Tree) rotateLeafFromLeft(leaf, left, parent *block.Block, childIdx int) {
	n := left.KeyCount()
	k, v := left.Key(n-1), left.Value(n-1)
	for c := t.cursors; c != nil; c = c.next {
		if c.exhausted {
			continue
		}
		if c.leaf == left && c.idx == n-1 {
			c.leaf, c.idx = leaf, 0
		} else if c.leaf == leaf {
			c.idx++
		}
	}
	leafRemoveAt(left, n-1)
	leafInsertAt(leaf, 0, k, v)
	parent.SetKey(childIdx-1, k)
}

func (t *Tree) rotateLeafFromRight(leaf, right, parent *block.Block, childIdx int) {
	appendAt := leaf.KeyCount()
	k, v := right.Key(0), right.Value(0)
	for c := t.cursors; c != nil; c = c.next {
		if c.exhausted {
			continue
		}
		if c.leaf == right {
			if c.idx == 0 {
				c.leaf, c.idx = leaf, appendAt
			} else {
				c.idx--
			}
		}
	}
	leafRemoveAt(right, 0)
	leafInsertAt(leaf, appendAt, k, v)
	parent.SetKey(childIdx, right.Key(0))
}

// mergeLeafWithLeft absorbs leaf into its left sibling, removing the
// separator at childIdx-1 and the child pointer at childIdx from parent.
func (t *Tree) mergeLeafWithLeft(leaf, left, parent *block.Block, childIdx int) {
	base := left.KeyCount()
	for c := t.cursors; c != nil; c = c.next {
		if c.leaf == leaf && !c.exhausted {
			c.leaf = left
			c.idx += base
		}
	}
	for i := 0; i < leaf.KeyCount(); i++ {
		left.SetKey(base+i, leaf.Key(i))
		left.SetValue(base+i, leaf.Value(i))
	}
	left.SetKeyCount(base + leaf.KeyCount())
	left.Next = leaf.Next
	indexRemoveAt(parent, childIdx-1, childIdx)
	t.alloc.Release(leaf)
}

// mergeLeafWithRight absorbs right into leaf, removing the separator at
// childIdx and the child pointer at childIdx+1 from parent.
func (t *Tree) mergeLeafWithRight(leaf, right, parent *block.Block, childIdx int) {
	base := leaf.KeyCount()
	for c := t.cursors; c != nil; c = c.next {
		if c.leaf == right && !c.exhausted {
			c.leaf = leaf
			c.idx += base
		}
	}
	for i := 0; i < right.KeyCount(); i++ {
		leaf.SetKey(base+i, right.Key(i))
		leaf.SetValue(base+i, right.Value(i))
	}
	leaf.SetKeyCount(base + right.KeyCount())
	leaf.Next = right.Next
	indexRemoveAt(parent, childIdx, childIdx+1)
	t.alloc.Release(right)
}

// fixIndexUnderflow checks whether the index node recorded at p.at(level)
// has fallen below its minimum occupancy and, if so, repairs it by
// rotation or merge against its parent at p.at(level-1). level 0 is the
// root, which has no occupancy floor but must be replaced by its sole
// child if it is ever emptied of keys entirely.
func (t *Tree) fixIndexUnderflow(p *path, level int) {
	node := p.at(level).node

	if level == 0 {
		if node.KeyCount() == 0 {
			t.root = node.Child(0)
			t.height--
			t.alloc.Release(node)
		}
		return
	}
	if node.KeyCount() >= block.LHalf {
		return
	}

	parentEntry := p.at(level - 1)
	parent := parentEntry.node
	childIdx := parentEntry.idx

	var left, right *block.Block
	if childIdx > 0 {
		left = parent.Child(childIdx - 1)
	}
	if childIdx < parent.KeyCount() {
		right = parent.Child(childIdx + 1)
	}

	// Preference order: right-rotate, left-rotate, left-merge, right-merge.
	// A sibling with at least LHalf keys lends one rather than merging, so
	// a merged node never exceeds MaxKeys (at most 127 + 1 + 127 keys).
	switch {
	case right != nil && right.KeyCount() >= block.RHalf:
		t.rotateIndexFromRight(node, right, parent, childIdx)
		return
	case left != nil && left.KeyCount() >= block.LHalf:
		t.rotateIndexFromLeft(node, left, parent, childIdx)
		return
	case left != nil:
		t.mergeIndexWithLeft(node, left, parent, childIdx)
	case right != nil:
		t.mergeIndexWithRight(node, right, parent, childIdx)
	default:
		return
	}
	t.fixIndexUnderflow(p, level-1)
}

func (t *Tree) rotateIndexFromLeft(node, left, parent *block.Block, childIdx int) {
	n := left.KeyCount()
	borrowedChild := left.Child(n)
	sepDown := parent.Key(childIdx - 1)
	sepUp := left.Key(n - 1)

	left.SetChild(n, nil)
	left.SetKeyCount(n - 1)
	indexPrependChild(node, sepDown, borrowedChild)
	parent.SetKey(childIdx-1, sepUp)
}

func (t *Tree) rotateIndexFromRight(node, right, parent *block.Block, childIdx int) {
	borrowedChild := right.Child(0)
	sepDown := parent.Key(childIdx)
	sepUp := right.Key(0)

	indexRemoveFront(right)
	indexAppendChild(node, sepDown, borrowedChild)
	parent.SetKey(childIdx, sepUp)
}

// mergeIndexWithLeft absorbs node and the separator at childIdx-1 into
// left, then removes that separator and the child pointer at childIdx
// from parent.
func (t *Tree) mergeIndexWithLeft(node, left, parent *block.Block, childIdx int) {
	sep := parent.Key(childIdx - 1)
	base := left.KeyCount()

	left.SetKey(base, sep)
	for i := 0; i < node.KeyCount(); i++ {
		left.SetKey(base+1+i, node.Key(i))
	}
	for i := 0; i <= node.KeyCount(); i++ {
		left.SetChild(base+1+i, node.Child(i))
	}
	left.SetKeyCount(base + 1 + node.KeyCount())

	indexRemoveAt(parent, childIdx-1, childIdx)
	t.alloc.Release(node)
}

// mergeIndexWithRight absorbs right and the separator at childIdx into
// node, then removes that separator and the child pointer at childIdx+1
// from parent.
func (t *Tree) mergeIndexWithRight(node, right, parent *block.Block, childIdx int) {
	sep := parent.Key(childIdx)
	base := node.KeyCount()

	node.SetKey(base, sep)
	for i := 0; i < right.KeyCount(); i++ {
		node.SetKey(base+1+i, right.Key(i))
	}
	for i := 0; i <= right.KeyCount(); i++ {
		node.SetChild(base+1+i, right.Child(i))
	}
	node.SetKeyCount(base + 1 + right.KeyCount())

	indexRemoveAt(parent, childIdx, childIdx+1)
	t.alloc.Release(right)
}
