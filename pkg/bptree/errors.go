package bptree

import "errors"

// ErrNotFound is returned when a lookup, delete, or cursor positioning
// operation cannot locate the requested key.
var ErrNotFound = errors.New("bptree: key not found")

// ErrNoMem is returned when an operation cannot obtain the blocks it needs
// from the tree's allocator. It leaves the tree, and any cursors positioned
// on it, exactly as they were before the call.
var ErrNoMem = errors.New("bptree: out of memory")
