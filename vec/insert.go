package vec

import "fmt"

// Emplace constructs an element at index i, shifting [i, Len) right by one.
// The index may equal Len, which appends. The Make callback runs before any
// state changes, so it may read existing elements; nil means
// default-construct. Returns a pointer to the new element, valid until the
// next operation that can relocate storage.
//
// When the element fits the current capacity and every transfer is
// infallible, a failed construct leaves the vector untouched. When growth
// is needed, the operation commits only after every element reached the
// new block, so failures on the copy path leave the old contents intact.
// A fallible element move that fails mid-operation keeps the vector valid
// but may land the new element right of i or drop trailing elements; the
// returned error reports what happened.
func (v *Vector[T]) Emplace(i int, mk Make[T]) (*T, error) {
	return v.emplaceAt(i, mk)
}

// Insert adopts x as a new element at index i, shifting [i, Len) right by
// one. The index may equal Len.
func (v *Vector[T]) Insert(i int, x T) error {
	_, err := v.emplaceAt(i, func() (T, error) { return x, nil })
	return err
}

// InsertCopy duplicates x and inserts the copy at index i. Move-only
// element types report ErrNotDuplicable.
func (v *Vector[T]) InsertCopy(i int, x T) error {
	if !v.lc.duplicable() {
		return ErrNotDuplicable
	}
	_, err := v.emplaceAt(i, func() (T, error) { return v.lc.duplicate(x) })
	return err
}

// Erase drops the element at index i and shifts [i+1, Len) left by one.
// The vacated tail slot is zeroed. Panics when i is not a live index.
// If a fallible move fails while closing the gap, the elements from the
// failure point to the end are dropped and reported in the error.
func (v *Vector[T]) Erase(i int) error {
	v.checkLive(i)
	v.lc.drop(v.block.Ptr(i))
	v.stats.Removals++
	for j := i + 1; j < v.size; j++ {
		val, err := v.lc.moveOut(v.block.Ptr(j))
		if err != nil {
			dropped := v.size - j
			for k := j; k < v.size; k++ {
				v.lc.drop(v.block.Ptr(k))
				v.stats.Removals++
			}
			v.stats.MoveTransfers += j - 1 - i
			v.size = j - 1
			return fmt.Errorf("vec: move during erase failed at index %d, %d trailing elements dropped: %w", j, dropped, err)
		}
		*v.block.Ptr(j - 1) = val
	}
	v.stats.MoveTransfers += v.size - 1 - i
	v.size--
	return nil
}

// ---- internals ----

// emplaceAt dispatches an insertion at pos between the append, in-capacity
// shift and growth layouts. pos == size appends; anything outside [0, size]
// panics.
func (v *Vector[T]) emplaceAt(pos int, mk Make[T]) (*T, error) {
	if pos < 0 || pos > v.size {
		panic(fmt.Sprintf("vec: insert index %d out of range with length %d", pos, v.size))
	}
	construct := mk
	if construct == nil {
		construct = v.lc.construct
	}

	if v.size == v.block.Cap() {
		return v.emplaceGrow(pos, construct)
	}
	if pos == v.size {
		val, err := construct()
		if err != nil {
			return nil, fmt.Errorf("vec: construct failed: %w", err)
		}
		*v.block.Ptr(pos) = val
		v.size++
		v.stats.Constructs++
		return v.block.Ptr(pos), nil
	}
	return v.emplaceShift(pos, construct)
}

// emplaceShift inserts within the current block. The element is built into
// a temporary first, the last element moves into the open end slot, the
// range [pos, size-1) shifts right from the back, and the temporary lands
// in slot pos. Shift targets are always retired slots, so placements are
// plain writes.
func (v *Vector[T]) emplaceShift(pos int, construct Make[T]) (*T, error) {
	tmp, err := construct()
	if err != nil {
		return nil, fmt.Errorf("vec: construct failed: %w", err)
	}

	last, err := v.lc.moveOut(v.block.Ptr(v.size - 1))
	if err != nil {
		v.lc.drop(&tmp)
		return nil, fmt.Errorf("vec: move during insert failed at index %d: %w", v.size-1, err)
	}
	*v.block.Ptr(v.size) = last

	for k := v.size - 2; k >= pos; k-- {
		val, err := v.lc.moveOut(v.block.Ptr(k))
		if err != nil {
			// Slot k+1 is the open one; land the new element there so the
			// sequence stays contiguous, one position right of the request.
			*v.block.Ptr(k + 1) = tmp
			v.stats.MoveTransfers += v.size - 1 - k
			v.stats.Constructs++
			v.size++
			return v.block.Ptr(k + 1), fmt.Errorf(
				"vec: move during insert failed at index %d; element placed at index %d instead: %w", k, k+1, err)
		}
		*v.block.Ptr(k + 1) = val
	}

	*v.block.Ptr(pos) = tmp
	v.stats.MoveTransfers += v.size - pos
	v.stats.Constructs++
	v.size++
	return v.block.Ptr(pos), nil
}

// emplaceGrow inserts while relocating to a grown block. The new element
// is constructed at its final position in the new block before any
// existing element is touched, then the prefix [0, pos) and suffix
// [pos, size) transfer around it.
func (v *Vector[T]) emplaceGrow(pos int, construct Make[T]) (*T, error) {
	nb, err := v.grownBlock()
	if err != nil {
		return nil, err
	}
	val, err := construct()
	if err != nil {
		nb.Release()
		return nil, fmt.Errorf("vec: construct failed: %w", err)
	}
	*nb.Ptr(pos) = val

	if v.lc.moveOnTransfer() {
		for i := range pos {
			mv, err := v.lc.moveOut(v.block.Ptr(i))
			if err != nil {
				v.lc.drop(nb.Ptr(pos))
				dropped := v.size - i
				for j := i; j < v.size; j++ {
					v.lc.drop(v.block.Ptr(j))
					v.stats.Removals++
				}
				v.stats.MoveTransfers += i
				v.commitBlock(&nb, i)
				return nil, fmt.Errorf(
					"vec: move during grow failed at index %d; new element and %d existing elements dropped: %w",
					i, dropped, err)
			}
			*nb.Ptr(i) = mv
		}
		for i := pos; i < v.size; i++ {
			mv, err := v.lc.moveOut(v.block.Ptr(i))
			if err != nil {
				dropped := v.size - i
				for j := i; j < v.size; j++ {
					v.lc.drop(v.block.Ptr(j))
					v.stats.Removals++
				}
				v.stats.MoveTransfers += i
				v.stats.Constructs++
				v.commitBlock(&nb, i+1)
				return nil, fmt.Errorf(
					"vec: move during grow failed at index %d, %d elements dropped: %w", i, dropped, err)
			}
			*nb.Ptr(i + 1) = mv
		}
		v.stats.MoveTransfers += v.size
		v.stats.Constructs++
		v.commitBlock(&nb, v.size+1)
		return v.block.Ptr(pos), nil
	}

	for i := range pos {
		dup, err := v.lc.duplicate(*v.block.Ptr(i))
		if err != nil {
			v.lc.drop(nb.Ptr(pos))
			for j := range i {
				v.lc.drop(nb.Ptr(j))
			}
			nb.Release()
			return nil, fmt.Errorf("vec: copy during grow failed at index %d: %w", i, err)
		}
		*nb.Ptr(i) = dup
	}
	for i := pos; i < v.size; i++ {
		dup, err := v.lc.duplicate(*v.block.Ptr(i))
		if err != nil {
			for j := range i + 1 {
				v.lc.drop(nb.Ptr(j))
			}
			nb.Release()
			return nil, fmt.Errorf("vec: copy during grow failed at index %d: %w", i, err)
		}
		*nb.Ptr(i + 1) = dup
	}
	n := v.size
	for i := range n {
		v.lc.drop(v.block.Ptr(i))
	}
	v.stats.Constructs += n + 1
	v.stats.Removals += n
	v.stats.CopyTransfers += n
	v.commitBlock(&nb, n+1)
	return v.block.Ptr(pos), nil
}
