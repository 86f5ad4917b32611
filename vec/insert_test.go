package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInsert_Front tests insertion at index zero with shifting.
func TestInsert_Front(t *testing.T) {
	c := &counter{}
	v := newItemVec(t, nothrowMoveLC(c), c, 4)
	require.NoError(t, v.Reserve(8), "make room so the insert shifts in place")

	require.NoError(t, v.Insert(0, newItem(c, 99)))
	assert.Equal(t, []int{99, 0, 1, 2, 3}, values(v))
	assert.Equal(t, 5, c.liveBalance())
	requireSound(t, v)
}

// TestInsert_Middle tests order preservation around the insertion point.
func TestInsert_Middle(t *testing.T) {
	v := New[int]()
	for i := range 5 {
		require.NoError(t, v.PushBack(i * 10))
	}

	require.NoError(t, v.Insert(2, 999))
	assert.Equal(t, []int{0, 10, 999, 20, 30, 40}, collect(v))
	requireSound(t, v)
}

// TestInsert_End tests that inserting at Len appends.
func TestInsert_End(t *testing.T) {
	v := New[int]()
	require.NoError(t, v.PushBack(1))
	require.NoError(t, v.Insert(v.Len(), 2))
	assert.Equal(t, []int{1, 2}, collect(v))
	requireSound(t, v)

	assert.Panics(t, func() { _ = v.Insert(v.Len()+1, 3) }, "index past Len must panic")
	assert.Panics(t, func() { _ = v.Insert(-1, 3) }, "negative index must panic")
}

// TestInsertCopy_DuplicatesValue tests copying insertion.
func TestInsertCopy_DuplicatesValue(t *testing.T) {
	c := &counter{}
	v := newItemVec(t, duplicableLC(c), c, 2)

	orig := newItem(c, 5)
	require.NoError(t, v.InsertCopy(1, orig))
	assert.True(t, orig.live, "original must be untouched")
	assert.Equal(t, []int{0, 5, 1}, values(v))
	requireSound(t, v)

	mo := NewWith(Options[item]{Lifecycle: moveOnlyLC(c)})
	assert.ErrorIs(t, mo.InsertCopy(0, item{}), ErrNotDuplicable)
}

// TestEmplace_GrowthKeepsOrder tests positional emplace when the block is
// full and the new element is built into the grown block directly.
func TestEmplace_GrowthKeepsOrder(t *testing.T) {
	v := New[int]()
	for i := range 4 {
		require.NoError(t, v.PushBack(i))
	}
	require.Equal(t, v.Len(), v.Cap(), "insert must trigger growth")

	p, err := v.Emplace(2, func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, *p)
	assert.Equal(t, []int{0, 1, 42, 2, 3}, collect(v))
	assert.Equal(t, 8, v.Cap(), "growth doubles")
	assert.Same(t, v.Ptr(2), p)
	requireSound(t, v)
}

// TestEmplace_CallbackReadsNeighbors tests that the callback runs before
// any element shifts.
func TestEmplace_CallbackReadsNeighbors(t *testing.T) {
	v := New[int]()
	for i := range 3 {
		require.NoError(t, v.PushBack(i + 1)) // 1 2 3
	}
	require.NoError(t, v.Reserve(8))

	_, err := v.Emplace(1, func() (int, error) {
		return v.At(0) + v.At(2), nil // must read pre-shift values
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 2, 3}, collect(v))
	requireSound(t, v)
}

// TestErase_Positions tests removal at the front, middle and back.
func TestErase_Positions(t *testing.T) {
	c := &counter{}
	v := newItemVec(t, nothrowMoveLC(c), c, 5)

	require.NoError(t, v.Erase(0))
	assert.Equal(t, []int{1, 2, 3, 4}, values(v))

	require.NoError(t, v.Erase(1))
	assert.Equal(t, []int{1, 3, 4}, values(v))

	require.NoError(t, v.Erase(v.Len()-1))
	assert.Equal(t, []int{1, 3}, values(v))

	assert.Equal(t, 2, c.liveBalance(), "erased elements must be dropped")
	requireSound(t, v)

	assert.Panics(t, func() { _ = v.Erase(2) }, "dead index must panic")
	assert.Panics(t, func() { _ = v.Erase(-1) }, "negative index must panic")
}

// TestErase_KeepsCapacity tests that erase never reallocates.
func TestErase_KeepsCapacity(t *testing.T) {
	v := New[int]()
	for i := range 9 {
		require.NoError(t, v.PushBack(i))
	}
	capBefore := v.Cap()

	for v.Len() > 0 {
		require.NoError(t, v.Erase(v.Len()/2))
		requireSound(t, v)
	}
	assert.Equal(t, capBefore, v.Cap())
}

// TestInsertErase_Churn tests a mixed positional workload against a plain
// slice model.
func TestInsertErase_Churn(t *testing.T) {
	v := New[int]()
	var model []int

	insertAt := func(i, x int) {
		require.NoError(t, v.Insert(i, x))
		model = append(model, 0)
		copy(model[i+1:], model[i:])
		model[i] = x
	}
	eraseAt := func(i int) {
		require.NoError(t, v.Erase(i))
		model = append(model[:i], model[i+1:]...)
	}

	seq := 0
	for round := range 50 {
		insertAt((round*7)%(len(model)+1), seq)
		seq++
		if round%3 == 2 {
			eraseAt((round * 5) % len(model))
		}
		require.Equal(t, model, collect(v), "round %d", round)
		requireSound(t, v)
	}
}
