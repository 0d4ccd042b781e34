package tree

import (
	"testing"

	"pagetree/pkg/bptree"
)

func TestAdapterSatisfiesTreeInterface(t *testing.T) {
	bt, err := bptree.New(bptree.Options{})
	if err != nil {
		t.Fatalf("bptree.New: %v", err)
	}
	var tr Tree = Adapt(bt)
	defer tr.Free()

	if err := tr.Insert(1, 100); err != nil {
		t.Fatal(err)
	}
	v, err := tr.Find(1)
	if err != nil || v != 100 {
		t.Fatalf("Find(1) = (%d, %v), want (100, nil)", v, err)
	}

	cur, err := tr.FirstRecord()
	if err != nil {
		t.Fatal(err)
	}
	defer cur.Free()
	k, v, err := cur.Get()
	if err != nil || k != 1 || v != 100 {
		t.Fatalf("cursor Get() = (%d, %d, %v)", k, v, err)
	}

	if err := tr.Delete(1); err != nil {
		t.Fatal(err)
	}
	if tr.Size() != 0 {
		t.Fatalf("Size() = %d, want 0", tr.Size())
	}
}
