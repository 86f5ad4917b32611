package vec

import (
	"fmt"

	"github.com/joshuapare/veckit/vec/mem"
)

// Block owns one contiguous run of element slots obtained from an
// allocator. It is a pure storage handle: it never constructs, copies or
// drops element values, and it hands slots out uninspected. Managing what
// lives in the slots is the Vector layer's job.
//
// Blocks are move-only. Ownership changes hands through Swap; copying a
// Block struct would alias the storage and double-release it.
// The zero Block owns nothing and is safe to Release.
type Block[T any] struct {
	slots []T
	alloc mem.Allocator[T]
}

// NewBlock obtains a block of at least capacity slots from the allocator.
// A capacity of zero allocates nothing. The allocator may round the
// request up; Cap reports what was actually delivered.
func NewBlock[T any](a mem.Allocator[T], capacity int) (Block[T], error) {
	if capacity == 0 {
		return Block[T]{alloc: a}, nil
	}
	slots, err := a.Grab(capacity)
	if err != nil {
		return Block[T]{}, fmt.Errorf("vec: block of %d slots: %w", capacity, err)
	}
	return Block[T]{slots: slots, alloc: a}, nil
}

// Cap returns the number of slots the block owns.
func (b *Block[T]) Cap() int {
	return len(b.slots)
}

// Ptr returns the slot at index i. The index must be within [0, Cap).
func (b *Block[T]) Ptr(i int) *T {
	if i < 0 || i >= len(b.slots) {
		panic(fmt.Sprintf("vec: block index %d out of range with capacity %d", i, len(b.slots)))
	}
	return &b.slots[i]
}

// Span returns the slots [i, j) as a slice view. The empty one-past-the-end
// span Span(Cap, Cap) is valid.
func (b *Block[T]) Span(i, j int) []T {
	if i < 0 || j < i || j > len(b.slots) {
		panic(fmt.Sprintf("vec: block span [%d:%d] out of range with capacity %d", i, j, len(b.slots)))
	}
	return b.slots[i:j]
}

// Swap exchanges storage ownership with another block in O(1).
func (b *Block[T]) Swap(other *Block[T]) {
	b.slots, other.slots = other.slots, b.slots
	b.alloc, other.alloc = other.alloc, b.alloc
}

// Release returns the slots to the allocator that produced them. The block
// is empty afterwards; releasing an empty block is a no-op, so Release is
// idempotent. Slot contents must already be retired by the caller.
func (b *Block[T]) Release() {
	if b.slots == nil {
		return
	}
	if b.alloc != nil {
		b.alloc.Release(b.slots)
	}
	b.slots = nil
}
