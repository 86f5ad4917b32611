package vec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// errBoom is the injected hook failure used across these tests.
var errBoom = errors.New("boom")

// counter records lifecycle traffic for the instrumented element type and
// can inject a failure at a specific 1-based call number per hook.
type counter struct {
	news   int
	copies int
	moves  int
	drops  int

	failNewOn  int
	failCopyOn int
	failMoveOn int
}

// liveBalance reports constructed-minus-dropped values, which must equal
// the number of live items across every vector built on this counter.
func (c *counter) liveBalance() int {
	return c.news + c.copies - c.drops
}

// item is the instrumented element type. A live item owns its value; Drop
// and Move retire it so double-releases and leaked husks are detectable.
type item struct {
	val  int
	live bool
}

// newItem builds a live item outside any hook, for adoption-style pushes.
func newItem(c *counter, val int) item {
	c.news++
	return item{val: val, live: true}
}

// duplicableLC has every hook and a fallible Move, so transfers take the
// copy path.
func duplicableLC(c *counter) Lifecycle[item] {
	lc := moveOnlyLC(c)
	lc.Copy = func(x item) (item, error) {
		if c.failCopyOn > 0 && c.copies+1 == c.failCopyOn {
			return item{}, errBoom
		}
		c.copies++
		return item{val: x.val, live: true}, nil
	}
	return lc
}

// nothrowMoveLC has every hook with Move declared infallible, so transfers
// take the move path while staying duplicable.
func nothrowMoveLC(c *counter) Lifecycle[item] {
	lc := duplicableLC(c)
	lc.MoveCannotFail = true
	return lc
}

// moveOnlyLC has Move and Drop but no Copy: a move-only type whose moves
// can fail, exercising the weak-guarantee paths.
func moveOnlyLC(c *counter) Lifecycle[item] {
	return Lifecycle[item]{
		New: func() (item, error) {
			if c.failNewOn > 0 && c.news+1 == c.failNewOn {
				return item{}, errBoom
			}
			c.news++
			return item{live: true}, nil
		},
		Move: func(src *item) (item, error) {
			if c.failMoveOn > 0 && c.moves+1 == c.failMoveOn {
				return item{}, errBoom
			}
			c.moves++
			out := *src
			src.val, src.live = 0, false
			return out, nil
		},
		Drop: func(src *item) {
			if src.live {
				c.drops++
			}
			src.val, src.live = 0, false
		},
	}
}

// newItemVec builds a vector of n live items with ascending values.
func newItemVec(t *testing.T, lc Lifecycle[item], c *counter, n int) *Vector[item] {
	t.Helper()
	v := NewWith(Options[item]{Lifecycle: lc})
	for i := range n {
		require.NoError(t, v.PushBack(newItem(c, i)), "push %d should succeed", i)
	}
	requireSound(t, v)
	return v
}

// requireSound runs the structural audit every mutation must preserve.
func requireSound[T any](t *testing.T, v *Vector[T]) {
	t.Helper()
	require.NoError(t, v.Audit(), "vector must stay internally consistent")
}

// values flattens the live elements of an item vector for order checks.
func values(v *Vector[item]) []int {
	out := make([]int, 0, v.Len())
	for _, it := range v.All() {
		out = append(out, it.val)
	}
	return out
}
