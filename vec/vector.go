package vec

import (
	"fmt"
	"os"

	"github.com/joshuapare/veckit/internal/buf"
	"github.com/joshuapare/veckit/vec/mem"
)

// Debug flag - set to true to enable verbose growth logging (compile-time toggle).
const debugGrow = false

// Runtime debug flag for growth logging - controlled by VEC_LOG_GROW env var.
var logGrow = os.Getenv("VEC_LOG_GROW") != ""

// Vector is a contiguous growable sequence. Live elements occupy slots
// [0, Len) of one Block; slots [Len, Cap) are dead and always hold the zero
// value. Element construction, duplication, relocation and release go
// through the Lifecycle fixed at construction.
//
// The zero value is an empty vector of plain-data elements using the
// default heap allocator.
type Vector[T any] struct {
	block Block[T]
	size  int
	lc    Lifecycle[T]
	alloc mem.Allocator[T]
	hint  int
	stats Stats
}

// Options configures Vector construction.
type Options[T any] struct {
	// Lifecycle supplies the element hooks. The zero value suits plain
	// data types.
	Lifecycle Lifecycle[T]

	// Alloc supplies slot storage. Nil means mem.Heap.
	Alloc mem.Allocator[T]

	// Capacity is a pre-reserve hint honored when the vector allocates its
	// first block, so the non-failing constructors stay non-failing.
	Capacity int
}

// New creates an empty vector of a plain data type with default options.
func New[T any]() *Vector[T] {
	return &Vector[T]{}
}

// NewWith creates an empty vector with the given options. No storage is
// allocated until the first element arrives or Reserve is called.
func NewWith[T any](opts Options[T]) *Vector[T] {
	hint := opts.Capacity
	if hint < 0 {
		hint = 0
	}
	return &Vector[T]{lc: opts.Lifecycle, alloc: opts.Alloc, hint: hint}
}

// NewLen creates a vector holding n default-constructed elements in an
// exact-fit block. On any failure everything built so far is released and
// only the error survives. A negative n panics.
func NewLen[T any](n int, opts Options[T]) (*Vector[T], error) {
	if n < 0 {
		panic(fmt.Sprintf("vec: negative length %d", n))
	}
	v := NewWith(opts)
	capacity := n
	if v.hint > capacity {
		capacity = v.hint
	}
	nb, err := NewBlock(v.allocator(), capacity)
	if err != nil {
		return nil, err
	}
	for i := range n {
		val, err := v.lc.construct()
		if err != nil {
			for j := range i {
				v.lc.drop(nb.Ptr(j))
			}
			nb.Release()
			return nil, fmt.Errorf("vec: construct failed at index %d: %w", i, err)
		}
		*nb.Ptr(i) = val
	}
	v.block = nb
	v.size = n
	v.stats.Constructs = n
	return v, nil
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the number of slots the current block owns.
func (v *Vector[T]) Cap() int {
	return v.block.Cap()
}

// At returns the element at index i by value. The index must be within
// [0, Len). For resource-owning types the returned value is a read view
// that must not be retained or dropped; use Ptr to work in place.
func (v *Vector[T]) At(i int) T {
	v.checkLive(i)
	return *v.block.Ptr(i)
}

// Ptr returns a pointer to the live slot at index i. The pointer is valid
// until the next operation that can relocate storage.
func (v *Vector[T]) Ptr(i int) *T {
	v.checkLive(i)
	return v.block.Ptr(i)
}

// Back returns a pointer to the last element. Panics on an empty vector.
func (v *Vector[T]) Back() *T {
	if v.size == 0 {
		panic("vec: Back on empty vector")
	}
	return v.block.Ptr(v.size - 1)
}

// Set replaces the element at index i with x: the old value is dropped and
// x is adopted as passed.
func (v *Vector[T]) Set(i int, x T) {
	v.checkLive(i)
	v.lc.drop(v.block.Ptr(i))
	*v.block.Ptr(i) = x
	v.stats.Removals++
	v.stats.Constructs++
}

// Reserve guarantees capacity for at least n elements. Requests at or below
// the current capacity are a no-op; otherwise the vector relocates onto a
// fresh block of exactly n slots (the allocator may round up). Existing
// elements survive a failed Reserve untouched unless a fallible move fails
// mid-relocation, in which case the relocated prefix is kept and the error
// reports what was dropped.
func (v *Vector[T]) Reserve(n int) error {
	if n <= v.block.Cap() {
		return nil
	}
	if v.block.Cap() == 0 && v.hint > n {
		n = v.hint
	}
	nb, err := NewBlock(v.allocator(), n)
	if err != nil {
		return err
	}
	if debugGrow || logGrow {
		fmt.Fprintf(os.Stderr, "[GROW] reserve %d -> %d slots (len=%d)\n", v.block.Cap(), nb.Cap(), v.size)
	}
	return v.migrate(nb)
}

// Resize changes the number of live elements to n. Shrinking drops the
// surplus in ascending order and keeps the capacity. Growing reserves
// exactly n slots and default-constructs the new tail; if a construct
// fails, this operation's constructs are dropped and the length is
// unchanged (the capacity may remain grown). A negative n panics.
func (v *Vector[T]) Resize(n int) error {
	if n < 0 {
		panic(fmt.Sprintf("vec: negative length %d", n))
	}
	switch {
	case n == v.size:
		return nil
	case n < v.size:
		for i := n; i < v.size; i++ {
			v.lc.drop(v.block.Ptr(i))
			v.stats.Removals++
		}
		v.size = n
		return nil
	default:
		if err := v.Reserve(n); err != nil {
			return err
		}
		for i := v.size; i < n; i++ {
			val, err := v.lc.construct()
			if err != nil {
				for j := v.size; j < i; j++ {
					v.lc.drop(v.block.Ptr(j))
					v.stats.Removals++
				}
				v.stats.Constructs += i - v.size
				return fmt.Errorf("vec: construct during resize failed at index %d: %w", i, err)
			}
			*v.block.Ptr(i) = val
		}
		v.stats.Constructs += n - v.size
		v.size = n
		return nil
	}
}

// Clear drops every element and keeps the capacity.
func (v *Vector[T]) Clear() {
	for i := range v.size {
		v.lc.drop(v.block.Ptr(i))
		v.stats.Removals++
	}
	v.size = 0
}

// Destroy drops every element and returns the block to the allocator.
// Idempotent; the vector remains usable and starts over with no storage.
// Allocators that recycle, account or map storage reclaim it here rather
// than waiting on the garbage collector.
func (v *Vector[T]) Destroy() {
	v.Clear()
	v.block.Release()
}

// ---- internals ----

// allocator returns the configured allocator, defaulting to mem.Heap so
// the zero Vector works.
func (v *Vector[T]) allocator() mem.Allocator[T] {
	if v.alloc == nil {
		return mem.Heap[T]{}
	}
	return v.alloc
}

// checkLive panics unless i addresses a live element.
func (v *Vector[T]) checkLive(i int) {
	if i < 0 || i >= v.size {
		panic(fmt.Sprintf("vec: index %d out of range with length %d", i, v.size))
	}
}

// grownBlock allocates the block an append-driven growth relocates to:
// double the current capacity, starting from one (or the construction
// capacity hint when the vector has never allocated).
func (v *Vector[T]) grownBlock() (Block[T], error) {
	cur := v.block.Cap()
	target := 1
	if cur > 0 {
		doubled, ok := buf.MulOverflowSafe(cur, 2)
		if !ok {
			// Doubling overflows; one more slot may still fit.
			add, ok2 := buf.AddOverflowSafe(cur, 1)
			if !ok2 {
				return Block[T]{}, ErrNoMemory
			}
			doubled = add
		}
		target = doubled
	} else if v.hint > 1 {
		target = v.hint
	}
	nb, err := NewBlock(v.allocator(), target)
	if err != nil {
		return Block[T]{}, err
	}
	if debugGrow || logGrow {
		fmt.Fprintf(os.Stderr, "[GROW] append %d -> %d slots (len=%d)\n", cur, nb.Cap(), v.size)
	}
	return nb, nil
}

// migrate transfers every live element into nb and commits the vector to
// it. The copy path leaves the vector untouched on failure; the move path
// commits the relocated prefix and drops the rest when a fallible move
// fails.
func (v *Vector[T]) migrate(nb Block[T]) error {
	if v.lc.moveOnTransfer() {
		for i := range v.size {
			val, err := v.lc.moveOut(v.block.Ptr(i))
			if err != nil {
				dropped := v.size - i
				for j := i; j < v.size; j++ {
					v.lc.drop(v.block.Ptr(j))
					v.stats.Removals++
				}
				v.stats.MoveTransfers += i
				v.commitBlock(&nb, i)
				return fmt.Errorf("vec: move during grow failed at index %d, %d elements dropped: %w", i, dropped, err)
			}
			*nb.Ptr(i) = val
		}
		v.stats.MoveTransfers += v.size
		v.commitBlock(&nb, v.size)
		return nil
	}

	for i := range v.size {
		dup, err := v.lc.duplicate(*v.block.Ptr(i))
		if err != nil {
			for j := range i {
				v.lc.drop(nb.Ptr(j))
			}
			nb.Release()
			return fmt.Errorf("vec: copy during grow failed at index %d: %w", i, err)
		}
		*nb.Ptr(i) = dup
	}
	n := v.size
	for i := range n {
		v.lc.drop(v.block.Ptr(i))
	}
	v.stats.Constructs += n
	v.stats.Removals += n
	v.stats.CopyTransfers += n
	v.commitBlock(&nb, n)
	return nil
}

// commitBlock swaps nb in as the vector's storage, releases the old block
// and records the growth.
func (v *Vector[T]) commitBlock(nb *Block[T], newLen int) {
	v.block.Swap(nb)
	nb.Release()
	v.size = newLen
	v.stats.Grows++
}
