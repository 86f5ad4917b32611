package vec

import "fmt"

// Vectors that exchange elements through Clone, CopyFrom, MoveFrom or Swap
// must have been built with the same Lifecycle; the hooks are the element
// type's semantics, not per-container state.

// Clone returns a new vector holding independent duplicates of every
// element in an exact-fit block, using the same lifecycle and allocator.
// Move-only element types report ErrNotDuplicable. A failed duplicate
// releases everything built so far and leaves the source untouched.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	if !v.lc.duplicable() {
		return nil, ErrNotDuplicable
	}
	out := NewWith(Options[T]{Lifecycle: v.lc, Alloc: v.alloc})
	nb, err := NewBlock(out.allocator(), v.size)
	if err != nil {
		return nil, err
	}
	for i := range v.size {
		dup, err := v.lc.duplicate(*v.block.Ptr(i))
		if err != nil {
			for j := range i {
				v.lc.drop(nb.Ptr(j))
			}
			nb.Release()
			return nil, fmt.Errorf("vec: copy during clone failed at index %d: %w", i, err)
		}
		*nb.Ptr(i) = dup
	}
	out.block = nb
	out.size = v.size
	out.stats.Constructs = v.size
	out.stats.CopyTransfers = v.size
	return out, nil
}

// Take move-constructs a vector from src: the block, length and counters
// change hands in O(1) and src is left empty with no block. src remains
// usable and keeps its lifecycle and allocator.
func Take[T any](src *Vector[T]) *Vector[T] {
	out := &Vector[T]{lc: src.lc, alloc: src.alloc, hint: src.hint}
	out.block.Swap(&src.block)
	out.size, src.size = src.size, 0
	out.stats, src.stats = src.stats, Stats{}
	return out
}

// CopyFrom replaces this vector's contents with duplicates of src's
// elements. Move-only element types report ErrNotDuplicable.
//
// Three plans, chosen by where the copies fit:
//   - src longer than capacity: duplicate everything into a fresh block
//     first, then swap it in. A failure leaves this vector untouched.
//   - src at most as long: overwrite the common prefix, drop the surplus.
//   - src longer but within capacity: overwrite the common prefix, then
//     fill the tail with duplicates.
//
// The in-place plans replace elements as they go; a failed duplicate stops
// there with the prefix already replaced, the length unchanged and this
// operation's tail constructs dropped.
func (v *Vector[T]) CopyFrom(src *Vector[T]) error {
	if v == src {
		return nil
	}
	if !v.lc.duplicable() {
		return ErrNotDuplicable
	}

	if src.size > v.block.Cap() {
		nb, err := NewBlock(v.allocator(), src.size)
		if err != nil {
			return err
		}
		for i := range src.size {
			dup, err := v.lc.duplicate(*src.block.Ptr(i))
			if err != nil {
				for j := range i {
					v.lc.drop(nb.Ptr(j))
				}
				nb.Release()
				return fmt.Errorf("vec: copy during assign failed at index %d: %w", i, err)
			}
			*nb.Ptr(i) = dup
		}
		for i := range v.size {
			v.lc.drop(v.block.Ptr(i))
		}
		v.stats.Removals += v.size
		v.stats.Constructs += src.size
		v.stats.CopyTransfers += src.size
		v.block.Swap(&nb)
		nb.Release()
		v.size = src.size
		return nil
	}

	common := v.size
	if src.size < common {
		common = src.size
	}
	for i := range common {
		dup, err := v.lc.duplicate(*src.block.Ptr(i))
		if err != nil {
			return fmt.Errorf("vec: copy during assign failed at index %d: %w", i, err)
		}
		v.lc.drop(v.block.Ptr(i))
		*v.block.Ptr(i) = dup
		v.stats.Removals++
		v.stats.Constructs++
		v.stats.CopyTransfers++
	}

	if src.size < v.size {
		for i := src.size; i < v.size; i++ {
			v.lc.drop(v.block.Ptr(i))
			v.stats.Removals++
		}
	} else {
		for i := v.size; i < src.size; i++ {
			dup, err := v.lc.duplicate(*src.block.Ptr(i))
			if err != nil {
				for j := v.size; j < i; j++ {
					v.lc.drop(v.block.Ptr(j))
					v.stats.Removals++
				}
				v.stats.Constructs += i - v.size
				return fmt.Errorf("vec: copy during assign failed at index %d: %w", i, err)
			}
			*v.block.Ptr(i) = dup
			v.stats.CopyTransfers++
		}
		v.stats.Constructs += src.size - v.size
	}
	v.size = src.size
	return nil
}

// MoveFrom replaces this vector's contents by stealing src's block and
// length in O(1), dropping its own elements first. src is left empty with
// no block; its lifecycle, allocator and counters move over with the
// elements and this vector's previous history is discarded.
func (v *Vector[T]) MoveFrom(src *Vector[T]) {
	if v == src {
		return
	}
	for i := range v.size {
		v.lc.drop(v.block.Ptr(i))
	}
	v.block.Release()
	v.block.Swap(&src.block)
	v.size, src.size = src.size, 0
	v.lc = src.lc
	v.alloc = src.alloc
	v.hint = src.hint
	v.stats, src.stats = src.stats, Stats{}
}

// Swap exchanges the entire state of two vectors in O(1).
func (v *Vector[T]) Swap(other *Vector[T]) {
	if v == other {
		return
	}
	v.block.Swap(&other.block)
	v.size, other.size = other.size, v.size
	v.lc, other.lc = other.lc, v.lc
	v.alloc, other.alloc = other.alloc, v.alloc
	v.hint, other.hint = other.hint, v.hint
	v.stats, other.stats = other.stats, v.stats
}
