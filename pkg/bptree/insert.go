package bptree

import "pagetree/pkg/block"

// spareBlocks holds node blocks reserved before a mutation begins, so an
// insert that needs several new blocks for a cascading split either gets
// all of them up front or fails cleanly without having touched the tree.
type spareBlocks struct {
	alloc block.Allocator
	list  []*block.Block
	used  int
}

// reserveSplitSpares allocates exactly the spare blocks that splitting the
// full leaf reached via p will consume: one new leaf, one new index node
// for each full ancestor the split propagates through (walking up from the
// leaf's parent), and one new root block if every ancestor is full.
func (t *Tree) reserveSplitSpares(p *path) (spareBlocks, error) {
	need := 1
	i := p.len() - 1
	for ; i >= 0 && p.at(i).node.KeyCount() == block.MaxKeys; i-- {
		need++
	}
	if i < 0 {
		need++
	}
	sp := spareBlocks{alloc: t.alloc}
	for i := 0; i < need; i++ {
		b, err := t.alloc.Allocate()
		if err != nil {
			for _, got := range sp.list {
				t.alloc.Release(got)
			}
			return spareBlocks{}, ErrNoMem
		}
		sp.list = append(sp.list, b)
	}
	return sp, nil
}

func (sp *spareBlocks) take() *block.Block {
	b := sp.list[sp.used]
	sp.used++
	return b
}

func (t *Tree) releaseUnused(sp *spareBlocks) {
	for _, b := range sp.list[sp.used:] {
		t.alloc.Release(b)
	}
}

// Insert adds key/value to the tree, or overwrites the value of an
// existing key. It either fully succeeds or fails with ErrNoMem and
// leaves the tree completely unchanged.
func (t *Tree) Insert(key, value uint64) error {
	leaf, err := t.descend(key, &t.scratch)
	if err != nil {
		return err
	}

	idx, found := leafSearch(leaf, key)
	if found {
		leaf.SetValue(idx, value)
		return nil
	}

	if leaf.KeyCount() < block.MaxKeys {
		leafInsertAt(leaf, idx, key, value)
		t.fixupCursorsInsert(leaf, idx)
		t.size++
		return nil
	}

	spares, err := t.reserveSplitSpares(&t.scratch)
	if err != nil {
		return err
	}
	defer t.releaseUnused(&spares)

	newLeafBlock := spares.take()
	promoted := t.splitLeafWithInsert(leaf, newLeafBlock, idx, key, value)
	right := newLeafBlock

	for i := t.scratch.len() - 1; i >= 0; i-- {
		entry := t.scratch.at(i)
		node := entry.node
		if node.KeyCount() < block.MaxKeys {
			indexInsertAt(node, entry.idx, promoted, right)
			t.size++
			return nil
		}
		newIndexBlock := spares.take()
		promoted, right = t.splitIndexWithInsert(node, newIndexBlock, entry.idx, promoted, right)
	}

	newRoot := spares.take()
	newRoot.SetKeyCount(0)
	newRoot.SetLeaf(false)
	newRoot.SetChild(0, t.root)
	indexInsertAt(newRoot, 0, promoted, right)
	t.root = newRoot
	t.height++
	t.size++
	return nil
}

func (t *Tree) fixupCursorsInsert(leaf *block.Block, idx int) {
	for c := t.cursors; c != nil; c = c.next {
		if c.leaf == leaf && !c.exhausted && c.idx >= idx {
			c.idx++
		}
	}
}

// splitLeafWithInsert combines leaf's existing entries with the new
// key/value, splits the combined run across leaf (left half) and newLeaf
// (right half), relinks the leaf chain, fixes up any cursor positioned on
// leaf, and returns the separator key promoted to the parent.
func (t *Tree) splitLeafWithInsert(leaf, newLeafBlock *block.Block, insIdx int, key, value uint64) uint64 {
	var keys [block.MaxKeys + 1]uint64
	var vals [block.MaxKeys + 1]uint64

	cnt := leaf.KeyCount()
	j := 0
	for i := 0; i < cnt; i++ {
		if i == insIdx {
			keys[j], vals[j] = key, value
			j++
		}
		keys[j], vals[j] = leaf.Key(i), leaf.Value(i)
		j++
	}
	if insIdx == cnt {
		keys[j], vals[j] = key, value
		j++
	}

	leftCount := block.LHalf
	rightCount := j - leftCount

	t.fixupCursorsForLeafSplit(leaf, newLeafBlock, insIdx, leftCount)

	leaf.SetKeyCount(leftCount)
	for i := 0; i < leftCount; i++ {
		leaf.SetKey(i, keys[i])
		leaf.SetValue(i, vals[i])
	}

	newLeafBlock.SetLeaf(true)
	newLeafBlock.SetKeyCount(rightCount)
	for i := 0; i < rightCount; i++ {
		newLeafBlock.SetKey(i, keys[leftCount+i])
		newLeafBlock.SetValue(i, vals[leftCount+i])
	}

	newLeafBlock.Next = leaf.Next
	leaf.Next = newLeafBlock

	return keys[leftCount]
}

// fixupCursorsForLeafSplit remaps cursors on leaf to their position in the
// post-split combined ordering, moving them to newLeaf when their record
// landed in the right half. It must run before leaf and newLeaf are
// overwritten with their split contents, since it reasons in terms of
// leaf's pre-split indices.
func (t *Tree) fixupCursorsForLeafSplit(leaf, newLeafBlock *block.Block, insIdx, leftCount int) {
	for c := t.cursors; c != nil; c = c.next {
		if c.leaf != leaf || c.exhausted {
			continue
		}
		combined := c.idx
		if combined >= insIdx {
			combined++
		}
		if combined < leftCount {
			c.idx = combined
			continue
		}
		c.leaf = newLeafBlock
		c.idx = combined - leftCount
	}
}

// splitIndexWithInsert combines node's existing keys/children with the
// inserted separator and child, splits the combined run across node (left
// half) and newNode (right half), and returns the key promoted to the
// parent along with the new right sibling.
func (t *Tree) splitIndexWithInsert(node, newNode *block.Block, insIdx int, insKey uint64, insRight *block.Block) (uint64, *block.Block) {
	var keys [block.MaxKeys + 1]uint64
	var children [block.MaxFields + 1]*block.Block

	cnt := node.KeyCount()
	kj, cj := 0, 0
	children[cj] = node.Child(0)
	cj++
	for i := 0; i < cnt; i++ {
		if i == insIdx {
			keys[kj] = insKey
			kj++
			children[cj] = insRight
			cj++
		}
		keys[kj] = node.Key(i)
		kj++
		children[cj] = node.Child(i + 1)
		cj++
	}
	if insIdx == cnt {
		keys[kj] = insKey
		kj++
		children[cj] = insRight
		cj++
	}

	leftKeys := block.LHalf
	promoted := keys[leftKeys]
	rightKeys := kj - leftKeys - 1

	node.SetKeyCount(leftKeys)
	for i := 0; i < leftKeys; i++ {
		node.SetKey(i, keys[i])
	}
	for i := 0; i <= leftKeys; i++ {
		node.SetChild(i, children[i])
	}
	for i := leftKeys + 1; i < block.MaxFields; i++ {
		node.SetChild(i, nil)
	}

	newNode.SetLeaf(false)
	newNode.SetKeyCount(rightKeys)
	for i := 0; i < rightKeys; i++ {
		newNode.SetKey(i, keys[leftKeys+1+i])
	}
	for i := 0; i <= rightKeys; i++ {
		newNode.SetChild(i, children[leftKeys+1+i])
	}

	return promoted, newNode
}
