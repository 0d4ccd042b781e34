package block

import "errors"

// ErrOutOfMemory is returned by an Allocator when it cannot produce a new
// block, whether because the host is out of memory or because the
// allocator's own capacity bound has been reached.
var ErrOutOfMemory = errors.New("block: allocator out of memory")
