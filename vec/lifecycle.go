package vec

// Lifecycle carries the element-type hooks a Vector uses to manage values.
// Every hook is optional; the zero Lifecycle describes a plain data type
// whose values can be created, duplicated and relocated bitwise.
//
// Hook contracts:
//   - New constructs a fresh value. On error nothing was created.
//   - Copy produces an independent duplicate of v. On error no duplicate
//     exists and v is untouched.
//   - Move extracts the value out of *src and resets *src to a droppable
//     rest state. On error *src is unchanged.
//   - Drop releases whatever *src owns. It must tolerate values that Move
//     has already reset, and the zero value.
//
// A type is duplicable when Copy is set, or when it has neither Move nor
// Drop (no ownership semantics, so a bitwise duplicate is independent by
// construction). A type with Move or Drop but no Copy is move-only.
//
// Transfers between slots move when the move cannot fail (Move nil, or
// MoveCannotFail declared) or when the type is move-only; otherwise they
// copy, which keeps the originals intact until the operation commits.
type Lifecycle[T any] struct {
	// New default-constructs a value. Nil means the zero value, which
	// cannot fail.
	New func() (T, error)

	// Copy duplicates a value. See the duplicability rule above.
	Copy func(T) (T, error)

	// Move relocates the value out of *src, resetting *src. Nil means the
	// bits are adopted wholesale and the source slot is zeroed.
	Move func(*T) (T, error)

	// Drop releases the resources a value owns. Nil means values own
	// nothing that needs releasing.
	Drop func(*T)

	// MoveCannotFail declares that a non-nil Move never returns an error,
	// which lets transfers prefer moving even for duplicable types.
	MoveCannotFail bool
}

// Make constructs an element in place for Emplace and EmplaceBack. It runs
// before the container mutates anything, so it may read existing elements.
type Make[T any] func() (T, error)

// duplicable reports whether the container may create independent copies
// of this type's values.
func (lc Lifecycle[T]) duplicable() bool {
	return lc.Copy != nil || (lc.Move == nil && lc.Drop == nil)
}

// movesCannotFail reports whether relocating a value can never error.
func (lc Lifecycle[T]) movesCannotFail() bool {
	return lc.Move == nil || lc.MoveCannotFail
}

// moveOnTransfer decides between the move path and the copy path when
// elements change slots wholesale.
func (lc Lifecycle[T]) moveOnTransfer() bool {
	return lc.movesCannotFail() || !lc.duplicable()
}

// construct runs New, or produces the zero value when no hook is set.
func (lc Lifecycle[T]) construct() (T, error) {
	if lc.New == nil {
		var zero T
		return zero, nil
	}
	return lc.New()
}

// duplicate produces an independent copy of v. Callers must have checked
// duplicable first; without a Copy hook the duplicate is bitwise.
func (lc Lifecycle[T]) duplicate(v T) (T, error) {
	if lc.Copy == nil {
		return v, nil
	}
	return lc.Copy(v)
}

// moveOut extracts the value from *src and retires the slot. With no Move
// hook the bits are adopted and the slot zeroed; with a hook the reset
// rest state is Dropped before zeroing. On error *src is unchanged.
func (lc Lifecycle[T]) moveOut(src *T) (T, error) {
	if lc.Move == nil {
		out := *src
		var zero T
		*src = zero
		return out, nil
	}
	out, err := lc.Move(src)
	if err != nil {
		return out, err
	}
	if lc.Drop != nil {
		lc.Drop(src)
	}
	var zero T
	*src = zero
	return out, nil
}

// drop releases the value in *p and zeroes the slot.
func (lc Lifecycle[T]) drop(p *T) {
	if lc.Drop != nil {
		lc.Drop(p)
	}
	var zero T
	*p = zero
}
