package tree

import "pagetree/pkg/bptree"

// Adapt wraps a *bptree.Tree as a Tree, so code written against the
// interface can be exercised without depending on the concrete type.
func Adapt(t *bptree.Tree) Tree { return &treeAdapter{t: t} }

type treeAdapter struct {
	t *bptree.Tree
}

func (a *treeAdapter) Insert(key, value uint64) error { return a.t.Insert(key, value) }
func (a *treeAdapter) Find(key uint64) (uint64, error) { return a.t.Find(key) }
func (a *treeAdapter) Delete(key uint64) error         { return a.t.Delete(key) }

func (a *treeAdapter) Enumerate(fn func(key, value uint64) bool) { a.t.Enumerate(fn) }

func (a *treeAdapter) FirstRecord() (Cursor, error) {
	c, err := a.t.FirstRecord()
	if err != nil {
		return nil, err
	}
	return &cursorAdapter{c}, nil
}

func (a *treeAdapter) FindRecord(key uint64) (Cursor, error) {
	c, err := a.t.FindRecord(key)
	if err != nil {
		return nil, err
	}
	return &cursorAdapter{c}, nil
}

func (a *treeAdapter) Size() int                         { return a.t.Size() }
func (a *treeAdapter) GetActiveStorage() (int, int, int) { return a.t.GetActiveStorage() }
func (a *treeAdapter) Free()                             { a.t.Free() }

type cursorAdapter struct {
	c *bptree.Cursor
}

func (c *cursorAdapter) Get() (uint64, uint64, error) { return c.c.Get() }
func (c *cursorAdapter) Update(value uint64) error    { return c.c.Update(value) }
func (c *cursorAdapter) Next() error                  { return c.c.Next() }
func (c *cursorAdapter) Free()                        { c.c.Free() }

var _ Tree = (*treeAdapter)(nil)
var _ Cursor = (*cursorAdapter)(nil)
