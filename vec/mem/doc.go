// Package mem provides slot-array allocation strategies for vector storage.
//
// # Overview
//
// This package defines the Allocator interface used by vec to obtain and
// return contiguous slot arrays, plus three implementations covering the
// common strategies: direct heap allocation, budget enforcement, and
// size-class recycling.
//
// # Allocator Interface
//
// The core abstraction is the generic Allocator interface:
//
//   - Grab(n): Obtain an array of at least n slots
//   - Release(s): Return an array obtained from Grab
//
// Grab may return more slots than requested; callers own every slot of the
// returned array and should treat its length as the usable capacity.
//
// # Implementations
//
// Heap: Direct exact-fit allocation
//
//   - Grab(n) returns exactly n slots
//   - Release is a no-op (the garbage collector reclaims storage)
//   - Zero value is ready to use
//
// Limited: Budget-enforcing wrapper
//
//   - Caps the total number of outstanding slots
//   - Grab fails with ErrBudget instead of exceeding the cap
//   - Useful for failure injection and resource-constrained embedding
//
// Slab: Size-class recycling allocator
//
//   - Rounds requests up to size-class boundaries
//   - Retains released arrays per class for reuse
//   - Reduces allocation churn for workloads that grow and shrink repeatedly
//
// # Usage Example
//
//	slab := mem.NewSlab[record](mem.ConfigBalanced)
//
//	slots, err := slab.Grab(100)
//	if err != nil {
//	    return err
//	}
//
//	// Use slots[0:len(slots)]...
//
//	// Later, hand the array back for reuse
//	slab.Release(slots)
//
// # Size Classes
//
// Slab groups requests into size classes so that released arrays can serve
// later requests of similar size. Classes grow linearly for small counts and
// exponentially for medium ones; requests beyond the configured maximum are
// allocated exact-fit and never retained. See SlabConfig for the presets.
//
// # Thread Safety
//
// Allocator implementations are not thread-safe. Callers must synchronize
// access externally.
package mem
