// Package tree defines the public interface contract implemented by
// pkg/bptree's Tree and Cursor types.
package tree

// Tree is the interface for ordered uint64-keyed index operations.
type Tree interface {
	// Insert inserts a key/value pair, or overwrites the value of an
	// existing key.
	Insert(key, value uint64) error

	// Find retrieves the value stored for key.
	Find(key uint64) (uint64, error)

	// Delete removes a key from the tree.
	Delete(key uint64) error

	// Enumerate calls fn once per record in ascending key order, stopping
	// early if fn returns false.
	Enumerate(fn func(key, value uint64) bool)

	// FirstRecord returns a cursor positioned on the lowest-keyed record.
	FirstRecord() (Cursor, error)

	// FindRecord returns a cursor positioned exactly on key.
	FindRecord(key uint64) (Cursor, error)

	// Size returns the number of keys currently stored in the tree.
	Size() int

	// GetActiveStorage reports the number of records stored, live node
	// blocks, and active cursors the tree currently holds.
	GetActiveStorage() (records int, blocks int, cursors int)

	// Free releases every block the tree holds and deactivates every
	// cursor still positioned on it.
	Free()
}

// Cursor is the interface for forward iteration over a Tree's records.
type Cursor interface {
	// Get returns the key and value the cursor is currently positioned on.
	Get() (key, value uint64, err error)

	// Update overwrites the value of the record the cursor is positioned
	// on.
	Update(value uint64) error

	// Next advances the cursor to the following record in key order.
	Next() error

	// Free releases the cursor.
	Free()
}
