//go:build unix || darwin || linux || freebsd || openbsd || netbsd

package block

import "golang.org/x/sys/unix"

// MmapAllocator sources block buffers from anonymous, OS-backed memory
// mappings rather than the Go heap, one page per block. It never reuses a
// freed mapping; Release unmaps it immediately.
type MmapAllocator struct{}

// NewMmapAllocator returns an allocator backed by anonymous mmap pages.
func NewMmapAllocator() *MmapAllocator { return &MmapAllocator{} }

// Allocate maps a fresh, zeroed page and wraps it in a Block.
func (a *MmapAllocator) Allocate() (*Block, error) {
	raw, err := unix.Mmap(-1, 0, Size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, ErrOutOfMemory
	}
	return &Block{Raw: raw}, nil
}

// Release unmaps a block's backing page.
func (a *MmapAllocator) Release(b *Block) {
	if b == nil || b.Raw == nil {
		return
	}
	b.reset()
	_ = unix.Munmap(b.Raw)
	b.Raw = nil
}
