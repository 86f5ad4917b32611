package vec

import (
	"fmt"
	"reflect"
)

// Stats reports cumulative Vector activity.
//
// Constructs counts elements brought to life in this vector: pushes,
// emplaces, resize growth, and duplicates made by clone, assign or a
// copying relocation. Removals counts live elements retired: pops, erases,
// resize shrinkage, clears, replaced or dropped values. The difference
// always equals Len.
//
// MoveTransfers and CopyTransfers count elements the container relocated
// internally (block migrations and shift closing/opening), split by which
// transfer path the lifecycle selected. A moved element is neither
// constructed nor removed; a copied one counts as both.
//
// Take and MoveFrom transfer the counters with the elements; the absorbing
// vector's previous history is discarded.
type Stats struct {
	// Grows counts block adoptions through the growth path.
	Grows int

	// MoveTransfers counts elements relocated by moving.
	MoveTransfers int

	// CopyTransfers counts elements relocated by copying.
	CopyTransfers int

	// Constructs counts elements brought to life in this vector.
	Constructs int

	// Removals counts live elements retired from this vector.
	Removals int
}

// Stats returns a copy of the cumulative counters.
func (v *Vector[T]) Stats() Stats {
	return v.stats
}

// Audit verifies the container's structural invariants: the length fits
// the block, every dead slot holds the zero value, and the counter
// identity Constructs-Removals == Len holds. Returns nil when consistent.
func (v *Vector[T]) Audit() error {
	if v.size < 0 || v.size > v.block.Cap() {
		return fmt.Errorf("vec: audit: length %d outside [0, %d]", v.size, v.block.Cap())
	}
	for i := v.size; i < v.block.Cap(); i++ {
		rv := reflect.ValueOf(*v.block.Ptr(i))
		if rv.IsValid() && !rv.IsZero() {
			return fmt.Errorf("vec: audit: dead slot %d is not zeroed", i)
		}
	}
	if got := v.stats.Constructs - v.stats.Removals; got != v.size {
		return fmt.Errorf("vec: audit: constructs-removals %d does not match length %d", got, v.size)
	}
	return nil
}
