package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLifecycle_CapabilityTable tests how hook combinations resolve to
// duplicability and the transfer path.
func TestLifecycle_CapabilityTable(t *testing.T) {
	move := func(src *int) (int, error) { return *src, nil }
	cp := func(v int) (int, error) { return v, nil }
	drop := func(*int) {}

	cases := []struct {
		name       string
		lc         Lifecycle[int]
		duplicable bool
		moves      bool
	}{
		{"plain data", Lifecycle[int]{}, true, true},
		{"copy only", Lifecycle[int]{Copy: cp}, true, true},
		{"drop only", Lifecycle[int]{Drop: drop}, false, true},
		{"fallible move only", Lifecycle[int]{Move: move}, false, true},
		{"fallible move with copy", Lifecycle[int]{Move: move, Copy: cp}, true, false},
		{"infallible move with copy", Lifecycle[int]{Move: move, Copy: cp, MoveCannotFail: true}, true, true},
		{"drop with copy", Lifecycle[int]{Drop: drop, Copy: cp}, true, true},
		{"full move-only", Lifecycle[int]{Move: move, Drop: drop}, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.duplicable, tc.lc.duplicable(), "duplicable")
			assert.Equal(t, tc.moves, tc.lc.moveOnTransfer(), "move on transfer")
		})
	}
}

// TestLifecycle_BitwiseMoveOut tests that a hookless move adopts the bits
// and retires the slot without dropping anything.
func TestLifecycle_BitwiseMoveOut(t *testing.T) {
	var lc Lifecycle[item]
	slot := item{val: 7, live: true}

	out, err := lc.moveOut(&slot)
	require.NoError(t, err)
	assert.Equal(t, item{val: 7, live: true}, out, "the value changes slots unaltered")
	assert.Equal(t, item{}, slot, "the source slot is retired to zero")
}

// TestLifecycle_HookedMoveOut tests that a hooked move runs the reset,
// drops the rest state without counting a live release, and zeroes the
// slot.
func TestLifecycle_HookedMoveOut(t *testing.T) {
	c := &counter{}
	lc := moveOnlyLC(c)
	slot := item{val: 7, live: true}
	c.news++ // the fixture item above was made by hand

	out, err := lc.moveOut(&slot)
	require.NoError(t, err)
	assert.Equal(t, 7, out.val)
	assert.True(t, out.live)
	assert.Equal(t, item{}, slot)
	assert.Equal(t, 1, c.moves)
	assert.Equal(t, 0, c.drops, "dropping a moved-from rest state is not a live release")
	assert.Equal(t, 1, c.liveBalance())
}

// TestLifecycle_MoveOutFailureLeavesSource tests the on-error contract.
func TestLifecycle_MoveOutFailureLeavesSource(t *testing.T) {
	c := &counter{}
	lc := moveOnlyLC(c)
	slot := item{val: 7, live: true}

	c.failMoveOn = 1
	_, err := lc.moveOut(&slot)
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, item{val: 7, live: true}, slot, "a failed move must not disturb the source")
}

// TestLifecycle_ConstructDefaults tests construct with and without a hook.
func TestLifecycle_ConstructDefaults(t *testing.T) {
	var plain Lifecycle[int]
	v, err := plain.construct()
	require.NoError(t, err)
	assert.Zero(t, v)

	hooked := Lifecycle[int]{New: func() (int, error) { return 41, nil }}
	v, err = hooked.construct()
	require.NoError(t, err)
	assert.Equal(t, 41, v)
}

// TestLifecycle_DuplicateBitwise tests that copy-hookless duplicable types
// duplicate by value.
func TestLifecycle_DuplicateBitwise(t *testing.T) {
	var lc Lifecycle[int]
	d, err := lc.duplicate(9)
	require.NoError(t, err)
	assert.Equal(t, 9, d)
}

// TestLifecycle_DropZeroes tests that drop releases and retires in one
// step and tolerates already-zero slots.
func TestLifecycle_DropZeroes(t *testing.T) {
	c := &counter{}
	lc := moveOnlyLC(c)

	slot := newItem(c, 3)
	lc.drop(&slot)
	assert.Equal(t, item{}, slot)
	assert.Equal(t, 1, c.drops)

	lc.drop(&slot) // dropping the retired slot is harmless
	assert.Equal(t, 1, c.drops)
}
