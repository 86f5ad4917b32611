package vec

import "errors"

var (
	// ErrNoMemory indicates a storage request whose slot arithmetic overflows
	// the int range, so no allocator could serve it.
	ErrNoMemory = errors.New("vec: cannot allocate storage")

	// ErrNotDuplicable indicates a duplication request on a move-only element
	// type (a Lifecycle with Move or Drop set but no Copy).
	ErrNotDuplicable = errors.New("vec: element type is not duplicable")
)
