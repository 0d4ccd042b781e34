package block

import "testing"

func TestPoolAllocatorAllocateRelease(t *testing.T) {
	a := NewPoolAllocator(0)
	b, err := a.Allocate()
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if len(b.Raw) != Size {
		t.Fatalf("Raw length = %d, want %d", len(b.Raw), Size)
	}
	b.SetKeyCount(5)
	a.Release(b)
	if b.Raw != nil {
		t.Fatal("Release did not clear Raw")
	}
}

func TestPoolAllocatorCapacityBound(t *testing.T) {
	a := NewPoolAllocator(2)
	b1, err := a.Allocate()
	if err != nil {
		t.Fatalf("Allocate 1: %v", err)
	}
	b2, err := a.Allocate()
	if err != nil {
		t.Fatalf("Allocate 2: %v", err)
	}
	if _, err := a.Allocate(); err != ErrOutOfMemory {
		t.Fatalf("Allocate 3: got %v, want ErrOutOfMemory", err)
	}
	a.Release(b1)
	if _, err := a.Allocate(); err != nil {
		t.Fatalf("Allocate after release: %v", err)
	}
	a.Release(b2)
}

func TestPoolAllocatorReusedBufferIsZeroed(t *testing.T) {
	a := NewPoolAllocator(0)
	b, _ := a.Allocate()
	b.SetKeyCount(42)
	b.SetKey(0, 0xdeadbeef)
	a.Release(b)

	b2, _ := a.Allocate()
	if b2.KeyCount() != 0 {
		t.Fatalf("reused buffer not zeroed: KeyCount() = %d", b2.KeyCount())
	}
	if b2.Key(0) != 0 {
		t.Fatalf("reused buffer not zeroed: Key(0) = %d", b2.Key(0))
	}
}
