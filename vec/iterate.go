package vec

import "iter"

// All returns an index-ascending iterator over the live elements. Values
// are read views: do not retain or drop them. Mutating the vector while
// iterating invalidates the sequence; this is a contract, not a detected
// condition.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, *v.block.Ptr(i)) {
				return
			}
		}
	}
}

// Values returns an index-ascending iterator over the live element values.
// The same read-view and no-mutation contracts as All apply.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(*v.block.Ptr(i)) {
				return
			}
		}
	}
}
