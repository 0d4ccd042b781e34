package bptree

// Enumerate calls fn once for every record in ascending key order, using
// the leaf chain rather than a tree walk. It stops early if fn returns
// false.
func (t *Tree) Enumerate(fn func(key, value uint64) bool) {
	n := t.root
	for !n.IsLeaf() {
		n = n.Child(0)
	}
	for n != nil {
		for i := 0; i < n.KeyCount(); i++ {
			if !fn(n.Key(i), n.Value(i)) {
				return
			}
		}
		n = n.Next
	}
}
