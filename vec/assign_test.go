package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClone_Independent tests that a clone shares nothing with its source.
func TestClone_Independent(t *testing.T) {
	c := &counter{}
	v := newItemVec(t, duplicableLC(c), c, 4)

	clone, err := v.Clone()
	require.NoError(t, err)
	assert.Equal(t, values(v), values(clone))
	assert.Equal(t, clone.Len(), clone.Cap(), "clone block is exact-fit")

	v.Ptr(0).val = 777
	assert.Equal(t, 0, clone.At(0).val, "clone must not alias the source")
	assert.Equal(t, 8, c.liveBalance(), "four originals plus four duplicates")
	requireSound(t, v)
	requireSound(t, clone)
}

// TestClone_MoveOnly tests the duplicability gate on cloning.
func TestClone_MoveOnly(t *testing.T) {
	c := &counter{}
	v := NewWith(Options[item]{Lifecycle: moveOnlyLC(c)})
	require.NoError(t, v.PushBack(newItem(c, 1)))

	_, err := v.Clone()
	assert.ErrorIs(t, err, ErrNotDuplicable)
	assert.Equal(t, 1, v.Len(), "a refused clone changes nothing")
	requireSound(t, v)
}

// TestClone_TrivialType tests that hook-free types duplicate bitwise.
func TestClone_TrivialType(t *testing.T) {
	v := New[int]()
	for i := range 3 {
		require.NoError(t, v.PushBack(i))
	}

	clone, err := v.Clone()
	require.NoError(t, err, "plain data types are duplicable without hooks")
	assert.Equal(t, []int{0, 1, 2}, collect(clone))
	requireSound(t, clone)
}

// TestTake_StealsState tests move construction.
func TestTake_StealsState(t *testing.T) {
	c := &counter{}
	src := newItemVec(t, duplicableLC(c), c, 3)
	srcStats := src.Stats()

	dst := Take(src)
	assert.Equal(t, []int{0, 1, 2}, values(dst))
	assert.Equal(t, srcStats, dst.Stats(), "counters travel with the elements")

	assert.Equal(t, 0, src.Len())
	assert.Equal(t, 0, src.Cap(), "source must be left without a block")
	assert.Equal(t, Stats{}, src.Stats())
	requireSound(t, src)
	requireSound(t, dst)

	require.NoError(t, src.PushBack(newItem(c, 9)), "source must stay usable")
	assert.Equal(t, []int{9}, values(src))
	assert.Equal(t, 4, c.liveBalance(), "no duplicates were made by Take")
}

// TestCopyFrom_GrowsToFit tests the fresh-block assignment plan.
func TestCopyFrom_GrowsToFit(t *testing.T) {
	c := &counter{}
	lc := duplicableLC(c)
	dst := newItemVec(t, lc, c, 2)
	src := newItemVec(t, lc, c, 6)

	require.NoError(t, dst.CopyFrom(src))
	assert.Equal(t, values(src), values(dst))
	assert.Equal(t, 6, dst.Cap(), "fresh block sized to the source length")
	assert.Equal(t, 12, c.liveBalance(), "six sources and six duplicates live")
	requireSound(t, dst)
	requireSound(t, src)
}

// TestCopyFrom_OverwriteAndDrop tests the shorter-source in-place plan.
func TestCopyFrom_OverwriteAndDrop(t *testing.T) {
	c := &counter{}
	lc := duplicableLC(c)
	dst := newItemVec(t, lc, c, 5)
	src := newItemVec(t, lc, c, 2)
	capBefore := dst.Cap()

	require.NoError(t, dst.CopyFrom(src))
	assert.Equal(t, []int{0, 1}, values(dst))
	assert.Equal(t, capBefore, dst.Cap(), "in-place plan keeps the block")
	assert.Equal(t, 4, c.liveBalance(), "two sources and two duplicates live")
	requireSound(t, dst)
}

// TestCopyFrom_OverwriteAndExtend tests the longer-source-within-capacity
// plan.
func TestCopyFrom_OverwriteAndExtend(t *testing.T) {
	c := &counter{}
	lc := duplicableLC(c)
	dst := newItemVec(t, lc, c, 2)
	require.NoError(t, dst.Reserve(10))
	src := newItemVec(t, lc, c, 6)
	capBefore := dst.Cap()

	require.NoError(t, dst.CopyFrom(src))
	assert.Equal(t, values(src), values(dst))
	assert.Equal(t, capBefore, dst.Cap(), "in-place plan keeps the block")
	requireSound(t, dst)
}

// TestCopyFrom_SelfAndGate tests self-assignment and the duplicability
// gate.
func TestCopyFrom_SelfAndGate(t *testing.T) {
	c := &counter{}
	v := newItemVec(t, duplicableLC(c), c, 3)

	require.NoError(t, v.CopyFrom(v), "self-assignment is a no-op")
	assert.Equal(t, []int{0, 1, 2}, values(v))

	mo := NewWith(Options[item]{Lifecycle: moveOnlyLC(c)})
	assert.ErrorIs(t, mo.CopyFrom(v), ErrNotDuplicable)
}

// TestMoveFrom_StealsAndDropsOwn tests move assignment.
func TestMoveFrom_StealsAndDropsOwn(t *testing.T) {
	c := &counter{}
	lc := duplicableLC(c)
	dst := newItemVec(t, lc, c, 3)
	src := newItemVec(t, lc, c, 2)

	dst.MoveFrom(src)
	assert.Equal(t, []int{0, 1}, values(dst))
	assert.Equal(t, 0, src.Len())
	assert.Equal(t, 0, src.Cap(), "source must be left without a block")
	assert.Equal(t, 2, c.liveBalance(), "destination's old elements must be dropped")
	requireSound(t, dst)
	requireSound(t, src)

	dst.MoveFrom(dst) // self move is a no-op
	assert.Equal(t, []int{0, 1}, values(dst))
}

// TestSwap_ExchangesEverything tests O(1) whole-state exchange.
func TestSwap_ExchangesEverything(t *testing.T) {
	c := &counter{}
	lc := duplicableLC(c)
	a := newItemVec(t, lc, c, 4)
	b := newItemVec(t, lc, c, 2)
	aStats, bStats := a.Stats(), b.Stats()
	aCap, bCap := a.Cap(), b.Cap()

	a.Swap(b)
	assert.Equal(t, []int{0, 1}, values(a))
	assert.Equal(t, []int{0, 1, 2, 3}, values(b))
	assert.Equal(t, bCap, a.Cap())
	assert.Equal(t, aCap, b.Cap())
	assert.Equal(t, bStats, a.Stats())
	assert.Equal(t, aStats, b.Stats())
	requireSound(t, a)
	requireSound(t, b)
	assert.Equal(t, 6, c.liveBalance(), "swap must not create or drop elements")
}
