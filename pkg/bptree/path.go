package bptree

import "pagetree/pkg/block"

// pathEntry records one step of a root-to-leaf descent: the index node
// visited and the child index taken to reach the next level.
type pathEntry struct {
	node *block.Block
	idx  int
}

// path is a reusable stack recording the route taken from the root to a
// leaf, so insert and delete can walk back up for splits, rotations, and
// merges without re-descending the tree.
type path struct {
	entries []pathEntry
}

func (p *path) reset() { p.entries = p.entries[:0] }

func (p *path) push(e pathEntry) { p.entries = append(p.entries, e) }

func (p *path) len() int { return len(p.entries) }

func (p *path) at(i int) pathEntry { return p.entries[i] }

// ensure grows the path's backing array to hold at least depth entries
// before a descent begins, so a mid-descent allocation failure can never
// leave the path in a half-grown state.
func (p *path) ensure(depth int) (err error) {
	if cap(p.entries) >= depth {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = ErrNoMem
		}
	}()
	buf := make([]pathEntry, len(p.entries), depth)
	copy(buf, p.entries)
	p.entries = buf
	return nil
}
