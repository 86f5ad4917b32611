package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/veckit/vec/mem"
)

// TestBlock_ZeroValue tests that an unallocated block is inert.
func TestBlock_ZeroValue(t *testing.T) {
	var b Block[int]
	assert.Equal(t, 0, b.Cap())
	b.Release()
	b.Release() // idempotent
	assert.Empty(t, b.Span(0, 0))
}

// TestBlock_GrabAndRelease tests that storage flows through the allocator
// in both directions.
func TestBlock_GrabAndRelease(t *testing.T) {
	lim := mem.NewLimited[int](nil, 16)

	b, err := NewBlock[int](lim, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, b.Cap())
	assert.Equal(t, 4, lim.InUse())

	b.Release()
	assert.Equal(t, 0, b.Cap())
	assert.Equal(t, 0, lim.InUse())
	b.Release()
	assert.Equal(t, 0, lim.InUse(), "double release must not credit twice")
}

// TestBlock_ZeroCapacity tests that a zero request allocates nothing.
func TestBlock_ZeroCapacity(t *testing.T) {
	lim := mem.NewLimited[int](nil, 16)
	b, err := NewBlock[int](lim, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Cap())
	assert.Equal(t, 0, lim.InUse())
}

// TestBlock_AllocatorRounding tests that Cap reports delivered slots, not
// requested ones.
func TestBlock_AllocatorRounding(t *testing.T) {
	slab := mem.NewSlab[int](mem.DefaultConfig)
	b, err := NewBlock[int](slab, 10)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, b.Cap(), 10, "size-class allocators round up")
	b.Release()
}

// TestBlock_PtrAndSpan tests slot access and its bounds contract.
func TestBlock_PtrAndSpan(t *testing.T) {
	b, err := NewBlock[int](mem.Heap[int]{}, 4)
	require.NoError(t, err)
	for i := range 4 {
		*b.Ptr(i) = i * 10
	}

	assert.Equal(t, 20, *b.Ptr(2))
	assert.Equal(t, []int{10, 20}, b.Span(1, 3))
	assert.Empty(t, b.Span(4, 4), "one-past-the-end span is valid")

	assert.PanicsWithValue(t, "vec: block index 4 out of range with capacity 4", func() { b.Ptr(4) })
	assert.Panics(t, func() { b.Ptr(-1) })
	assert.Panics(t, func() { b.Span(2, 1) })
	assert.Panics(t, func() { b.Span(0, 5) })
}

// TestBlock_SwapMovesOwnership tests that slots and their allocator travel
// together.
func TestBlock_SwapMovesOwnership(t *testing.T) {
	lim := mem.NewLimited[int](nil, 16)
	a, err := NewBlock[int](lim, 3)
	require.NoError(t, err)
	var b Block[int]

	a.Swap(&b)
	assert.Equal(t, 0, a.Cap())
	assert.Equal(t, 3, b.Cap())

	b.Release()
	assert.Equal(t, 0, lim.InUse(), "the swapped-in owner must release to the original allocator")
}
