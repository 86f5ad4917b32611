package spill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/veckit/vec"
	"github.com/joshuapare/veckit/vec/mem"
)

func TestArena_RejectsPointerTypes(t *testing.T) {
	type record struct {
		ID   int64
		Name string
	}

	_, err := CreateFor[string](t.TempDir(), "")
	assert.ErrorIs(t, err, ErrPointerElem, "strings carry a data pointer")

	_, err = CreateFor[record](t.TempDir(), "")
	assert.ErrorIs(t, err, ErrPointerElem, "a struct field with pointers taints the struct")

	_, err = CreateFor[*int](t.TempDir(), "")
	assert.ErrorIs(t, err, ErrPointerElem)

	_, err = CreateFor[struct{}](t.TempDir(), "")
	assert.Error(t, err, "zero-size elements cannot live in file slots")
}

func TestArena_AcceptsFlatTypes(t *testing.T) {
	type sample struct {
		When  int64
		Value float64
		Tags  [4]uint16
	}
	st, err := CreateFor[sample](t.TempDir(), "samples")
	require.NoError(t, err, "pointer-free struct should be accepted")
	defer st.Close()

	ar, err := NewArena[sample](st)
	require.NoError(t, err)
	assert.Same(t, st, ar.Store())
}

func TestArena_GeometryMismatch(t *testing.T) {
	st, err := CreateFor[int64](t.TempDir(), "")
	require.NoError(t, err)
	defer st.Close()

	_, err = NewArena[int32](st)
	require.Error(t, err, "an int32 arena cannot share an int64 store")
	assert.Contains(t, err.Error(), "holds", "error should describe both geometries")

	_, err = NewArena[int64](st)
	assert.NoError(t, err, "matching geometry binds cleanly")
}

func TestArena_GrabAndRelease(t *testing.T) {
	st, err := CreateFor[uint32](t.TempDir(), "")
	require.NoError(t, err)
	defer st.Close()
	ar, err := NewArena[uint32](st)
	require.NoError(t, err)

	s, err := ar.Grab(0)
	require.NoError(t, err)
	assert.Nil(t, s, "zero slots means no region")

	_, err = ar.Grab(-1)
	assert.ErrorIs(t, err, mem.ErrNegativeCount)

	s, err = ar.Grab(10)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(s), 10, "page rounding over-provisions")
	for i := range s {
		require.Zero(t, s[i], "fresh slots read zero")
	}
	for i := range s {
		s[i] = uint32(i * 3)
	}
	assert.Equal(t, uint32(27), s[9], "typed writes land in the region")
	assert.Positive(t, st.Live(), "a live region holds file bytes")

	ar.Release(s)
	assert.Zero(t, st.Live(), "release returns the region")
	assert.Zero(t, st.Regions())
}

func TestArena_BacksVector(t *testing.T) {
	st, err := CreateFor[float64](t.TempDir(), "vector spill")
	require.NoError(t, err)
	defer st.Close()
	ar, err := NewArena[float64](st)
	require.NoError(t, err)

	v := vec.NewWith(vec.Options[float64]{Alloc: ar})
	const n = 10_000
	for i := range n {
		require.NoError(t, v.PushBack(float64(i)*0.5), "push %d", i)
	}
	require.NoError(t, v.Audit())
	require.Equal(t, n, v.Len())
	assert.Equal(t, float64(4242)*0.5, v.At(4242))
	assert.Equal(t, float64(n-1)*0.5, v.At(n-1))

	sum := 0.0
	for x := range v.Values() {
		sum += x
	}
	assert.Equal(t, 0.5*float64(n)*float64(n-1)/2, sum, "iteration sees every element")

	assert.Equal(t, 1, st.Regions(), "growth releases the outgrown regions")
	assert.GreaterOrEqual(t, st.Live(), int64(n*8), "live bytes cover the element data")
	assert.Greater(t, st.Size(), st.Live(), "bump allocation leaves dead file space behind")

	v.Destroy()
	assert.Zero(t, st.Live(), "destroying the vector empties the store")
	assert.Zero(t, st.Regions())
	require.NoError(t, st.Close())
}
