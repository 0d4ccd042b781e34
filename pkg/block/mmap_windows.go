//go:build windows

package block

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// MmapAllocator sources block buffers from anonymous, OS-backed memory
// mappings rather than the Go heap, one page per block. It never reuses a
// freed mapping; Release frees it immediately.
type MmapAllocator struct{}

// NewMmapAllocator returns an allocator backed by anonymous VirtualAlloc
// pages.
func NewMmapAllocator() *MmapAllocator { return &MmapAllocator{} }

// Allocate reserves and commits a fresh, zeroed page and wraps it in a
// Block.
func (a *MmapAllocator) Allocate() (*Block, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(Size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, ErrOutOfMemory
	}
	raw := unsafe.Slice((*byte)(unsafe.Pointer(addr)), Size)
	return &Block{Raw: raw}, nil
}

// Release frees a block's backing page.
func (a *MmapAllocator) Release(b *Block) {
	if b == nil || b.Raw == nil {
		return
	}
	b.reset()
	addr := uintptr(unsafe.Pointer(&b.Raw[0]))
	_ = windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
	b.Raw = nil
}
