package mem

// maxFreePerClass bounds how many released arrays each size class retains.
// Arrays released beyond this are dropped for the garbage collector.
const maxFreePerClass = 16

// Slab is a size-class recycling allocator. Requests are rounded up to the
// nearest class boundary and released arrays are kept on per-class free lists
// so later requests of similar size reuse them instead of hitting the heap.
//
// Key characteristics:
//   - O(log classes) class lookup, O(1) reuse and release
//   - Grab returns the full class capacity, not just the requested count
//   - Requests beyond MediumMax are exact-fit and never retained
//   - Released arrays are cleared before retention so no element state leaks
//     into a later Grab
//
// This allocator suits workloads that repeatedly grow and shrink containers
// of similar sizes. For one-shot growth the zero-overhead Heap is a better
// fit.
type Slab[T any] struct {
	table *classTable

	// free holds retained arrays per size class. Every retained array has
	// len equal to its class boundary.
	free [][][]T

	stats SlabStats
}

// SlabStats reports cumulative Slab activity.
type SlabStats struct {
	Grabs    int // Total Grab calls that returned an array
	Reuses   int // Grabs served from a free list instead of the heap
	Releases int // Total Release calls with a non-empty array
	Discards int // Released arrays dropped instead of retained
}

// NewSlab creates a Slab allocator using the given size class configuration.
// Pass DefaultConfig when in doubt.
func NewSlab[T any](config SlabConfig) *Slab[T] {
	table := newClassTable(config)
	return &Slab[T]{
		table: table,
		free:  make([][][]T, table.numClasses),
	}
}

// Grab returns an array of at least n slots. The array length is the class
// boundary for n, so callers get the full rounded-up capacity. Counts beyond
// the configured MediumMax are allocated exact-fit.
func (s *Slab[T]) Grab(n int) ([]T, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	if n == 0 {
		return nil, nil
	}

	cls := s.table.classFor(n)
	if cls == s.table.numClasses {
		// Beyond the largest class, serve exact-fit with no retention.
		s.stats.Grabs++
		return make([]T, n), nil
	}

	if list := s.free[cls]; len(list) > 0 {
		got := list[len(list)-1]
		s.free[cls] = list[:len(list)-1]
		s.stats.Grabs++
		s.stats.Reuses++
		return got, nil
	}

	s.stats.Grabs++
	return make([]T, s.table.boundaries[cls]), nil
}

// Release returns an array to its size class free list. Arrays whose length
// does not match a class boundary, and arrays released once a class list is
// full, are dropped for the garbage collector. The array is cleared either
// way.
func (s *Slab[T]) Release(arr []T) {
	if len(arr) == 0 {
		return
	}
	s.stats.Releases++
	clear(arr)

	cls := s.table.classFor(len(arr))
	if cls == s.table.numClasses || len(arr) != s.table.boundaries[cls] {
		s.stats.Discards++
		return
	}
	if len(s.free[cls]) >= maxFreePerClass {
		s.stats.Discards++
		return
	}
	s.free[cls] = append(s.free[cls], arr)
}

// Stats returns cumulative allocator activity counters.
func (s *Slab[T]) Stats() SlabStats {
	return s.stats
}

// Retained reports how many arrays are currently held on free lists.
func (s *Slab[T]) Retained() int {
	total := 0
	for _, list := range s.free {
		total += len(list)
	}
	return total
}

// Drain empties every free list, releasing all retained storage to the
// garbage collector.
func (s *Slab[T]) Drain() {
	for i := range s.free {
		s.free[i] = nil
	}
}

// Config returns the size class configuration in use.
func (s *Slab[T]) Config() SlabConfig {
	return s.table.config
}

// Compile-time interface check
var _ Allocator[int] = (*Slab[int])(nil)
