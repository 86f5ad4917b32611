// Package vec provides a generic growable sequence with explicit element
// lifetime management.
//
// # Overview
//
// This package implements a contiguous, dynamically-resizable container in
// two layers. Block owns raw slot storage obtained from an allocator and
// never looks at element values. Vector manages element lifetimes inside a
// Block: which slots are live, how values are constructed, duplicated,
// relocated, and released, and what state the container is left in when any
// of those steps fails.
//
// # Key Types
//
// The main types provided by this package are:
//
//   - Vector: The growable sequence of live elements
//   - Block: A move-only owner of one contiguous slot run
//   - Lifecycle: Per-type hooks for construct/duplicate/relocate/release
//   - Options: Construction configuration (lifecycle, allocator, capacity)
//   - Stats: Cumulative counters for growth and element traffic
//
// # Storage Model
//
// A Vector's storage looks like this:
//
//	[ live elements 0..Len ) [ dead slots Len..Cap )
//
// Live slots hold constructed values. Dead slots are always the zero value
// of the element type, so dropped references never pin garbage and audits
// can verify the boundary. Growth allocates a fresh block, transfers the
// live elements, and releases the old block; capacity doubles from one.
//
// # Element Lifecycles
//
// Plain data types need no configuration:
//
//	v := vec.New[int]()
//	if err := v.PushBack(42); err != nil {
//	    log.Fatal(err)
//	}
//
// Types that own resources register hooks once at construction:
//
//	lc := vec.Lifecycle[*os.File]{
//	    Drop: func(f **os.File) { (*f).Close() },
//	}
//	v := vec.NewWith(vec.Options[*os.File]{Lifecycle: lc})
//
// The Copy hook makes a type duplicable; a type with Move or Drop but no
// Copy is move-only, and duplication attempts report ErrNotDuplicable.
//
// # Failure Safety
//
// Operations that place the container onto a fresh block (growth, Reserve,
// Clone, oversized CopyFrom) either complete or leave the previous contents
// untouched, provided element transfer cannot fail: transfers move when the
// move cannot fail or the type is move-only, and copy otherwise, with
// copies rolled back on error. In-place shifts (Emplace, Insert, Erase)
// keep the container valid on a mid-shift failure but may reorder or drop
// trailing elements; the returned error says what happened.
//
// # Adoption vs Construction
//
// PushBack, Insert and Set store the argument value as passed. Types whose
// values must be initialized in their final slot (for example because a
// Make callback computes them from neighbors) should use EmplaceBack or
// Emplace, which run the callback before any state changes.
//
// # Thread Safety
//
// Vector instances are not thread-safe. Multiple goroutines may read
// concurrently, but any mutation requires external synchronization.
//
// # Related Packages
//
//   - github.com/joshuapare/veckit/vec/mem: Pluggable slot allocators
//   - github.com/joshuapare/veckit/vec/spill: File-backed slot storage
package vec
