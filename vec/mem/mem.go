package mem

// Allocator hands out and takes back contiguous slot arrays of element type T.
//
// Implementations:
//   - Heap: exact-fit allocation backed by the Go heap
//   - Limited: budget-enforcing wrapper around another allocator
//   - Slab: size-class recycling allocator
//
// This interface lets containers swap allocation strategies without changing
// how they manage element lifetimes.
type Allocator[T any] interface {
	// Grab returns an array of at least n slots. The returned array may be
	// longer than requested; the caller owns all len(s) slots. A request for
	// zero slots returns nil with no error.
	Grab(n int) ([]T, error)

	// Release returns an array previously obtained from Grab on the same
	// allocator. The caller must not touch the array afterwards. No element
	// state may remain in the slots; implementations are free to retain the
	// storage and hand it to a later Grab.
	Release(s []T)
}

// Heap is the default allocator: every Grab is a fresh exact-fit heap
// allocation and Release lets the garbage collector do the reclaiming.
// The zero value is ready to use.
type Heap[T any] struct{}

// Grab returns a zeroed array of exactly n slots.
func (Heap[T]) Grab(n int) ([]T, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	if n == 0 {
		return nil, nil
	}
	return make([]T, n), nil
}

// Release drops the array reference. Storage is reclaimed by the garbage
// collector once the caller holds no other reference.
func (Heap[T]) Release(s []T) {}
