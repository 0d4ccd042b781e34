package bptree

import "pagetree/pkg/block"

// leafSearch returns the index of key within a leaf's key array, and
// whether it was found. When not found, idx is the position that keeps
// the array sorted if key were inserted there.
func leafSearch(n *block.Block, key uint64) (idx int, found bool) {
	lo, hi := 0, n.KeyCount()
	for lo < hi {
		mid := (lo + hi) / 2
		switch k := n.Key(mid); {
		case k == key:
			return mid, true
		case k < key:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return lo, false
}

// indexSearch returns the child index an index node routes key through:
// the position of the first key strictly greater than key, which is also
// the index of the child covering key's range.
func indexSearch(n *block.Block, key uint64) int {
	lo, hi := 0, n.KeyCount()
	for lo < hi {
		mid := (lo + hi) / 2
		if n.Key(mid) <= key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func newLeaf(a block.Allocator) (*block.Block, error) {
	b, err := a.Allocate()
	if err != nil {
		return nil, err
	}
	b.SetKeyCount(0)
	b.SetLeaf(true)
	return b, nil
}

// leafInsertAt inserts key/value at idx, shifting later entries right.
func leafInsertAt(n *block.Block, idx int, key, value uint64) {
	cnt := n.KeyCount()
	for i := cnt; i > idx; i-- {
		n.SetKey(i, n.Key(i-1))
		n.SetValue(i, n.Value(i-1))
	}
	n.SetKey(idx, key)
	n.SetValue(idx, value)
	n.SetKeyCount(cnt + 1)
}

// leafRemoveAt removes the entry at idx, shifting later entries left.
func leafRemoveAt(n *block.Block, idx int) {
	cnt := n.KeyCount()
	for i := idx; i < cnt-1; i++ {
		n.SetKey(i, n.Key(i+1))
		n.SetValue(i, n.Value(i+1))
	}
	n.SetKeyCount(cnt - 1)
}

// indexInsertAt inserts key at idx and rightChild at idx+1, leaving the
// existing child at idx untouched.
func indexInsertAt(n *block.Block, idx int, key uint64, rightChild *block.Block) {
	cnt := n.KeyCount()
	for i := cnt; i > idx; i-- {
		n.SetKey(i, n.Key(i-1))
	}
	for i := cnt + 1; i > idx+1; i-- {
		n.SetChild(i, n.Child(i-1))
	}
	n.SetKey(idx, key)
	n.SetChild(idx+1, rightChild)
	n.SetKeyCount(cnt + 1)
}

// indexRemoveAt removes the key at keyIdx and the child at childIdx.
func indexRemoveAt(n *block.Block, keyIdx, childIdx int) {
	cnt := n.KeyCount()
	for i := keyIdx; i < cnt-1; i++ {
		n.SetKey(i, n.Key(i+1))
	}
	for i := childIdx; i < cnt; i++ {
		n.SetChild(i, n.Child(i+1))
	}
	n.SetChild(cnt, nil)
	n.SetKeyCount(cnt - 1)
}

// indexPrependChild inserts key and child at the front of n, shifting all
// existing keys and children right by one slot.
func indexPrependChild(n *block.Block, key uint64, child *block.Block) {
	cnt := n.KeyCount()
	for i := cnt; i > 0; i-- {
		n.SetKey(i, n.Key(i-1))
	}
	for i := cnt + 1; i > 0; i-- {
		n.SetChild(i, n.Child(i-1))
	}
	n.SetKey(0, key)
	n.SetChild(0, child)
	n.SetKeyCount(cnt + 1)
}

// indexAppendChild appends key and child at the end of n.
func indexAppendChild(n *block.Block, key uint64, child *block.Block) {
	cnt := n.KeyCount()
	n.SetKey(cnt, key)
	n.SetChild(cnt+1, child)
	n.SetKeyCount(cnt + 1)
}

// indexRemoveFront removes the first key and first child of n, shifting
// the rest left by one slot.
func indexRemoveFront(n *block.Block) {
	cnt := n.KeyCount()
	for i := 0; i < cnt-1; i++ {
		n.SetKey(i, n.Key(i+1))
	}
	for i := 0; i < cnt; i++ {
		n.SetChild(i, n.Child(i+1))
	}
	n.SetChild(cnt, nil)
	n.SetKeyCount(cnt - 1)
}
