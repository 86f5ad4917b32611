package spill

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/joshuapare/veckit/internal/buf"
	"github.com/joshuapare/veckit/vec/mem"
)

// Arena hands out typed slot arrays backed by a Store's file regions.
// It satisfies the allocator contract of vec/mem, so a vector built on
// an Arena keeps its elements in the spill file instead of the heap.
//
// T must be pointer-free: the garbage collector never scans file-backed
// memory, so a pointer stored there would not keep its target alive.
type Arena[T any] struct {
	store *Store
	size  int
}

var _ mem.Allocator[int64] = (*Arena[int64])(nil)

// NewArena binds an arena for T to st. Fails if T contains pointers or
// if T's size and alignment differ from the geometry st was created
// with.
func NewArena[T any](st *Store) (*Arena[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if hasPointers(t) {
		return nil, fmt.Errorf("%w: %s", ErrPointerElem, t)
	}
	size := int(t.Size())
	if size == 0 {
		return nil, fmt.Errorf("spill: element type %s has zero size", t)
	}
	if size != st.ElemSize() || t.Align() != st.ElemAlign() {
		return nil, fmt.Errorf("spill: element %s is %d bytes aligned %d but store %s holds %d aligned %d",
			t, size, t.Align(), st.Path(), st.ElemSize(), st.ElemAlign())
	}
	return &Arena[T]{store: st, size: size}, nil
}

// Grab claims a fresh file region of at least n slots. The region is
// rounded up to the page, so the returned array is usually longer than
// asked; all of it belongs to the caller.
func (a *Arena[T]) Grab(n int) ([]T, error) {
	if n < 0 {
		return nil, mem.ErrNegativeCount
	}
	if n == 0 {
		return nil, nil
	}
	bytes, ok := buf.MulOverflowSafe(n, a.size)
	if !ok {
		return nil, fmt.Errorf("spill: %d slots of %d bytes overflows", n, a.size)
	}
	view, err := a.store.Claim(bytes)
	if err != nil {
		return nil, err
	}
	slots := len(view) / a.size
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(view))), slots), nil
}

// Release returns a slot array to the store. After the store is closed
// the regions are already gone and the call is a no-op.
func (a *Arena[T]) Release(s []T) {
	if len(s) == 0 || a.store.closed {
		return
	}
	a.store.release((*byte)(unsafe.Pointer(unsafe.SliceData(s))))
}

// Store returns the store backing this arena.
func (a *Arena[T]) Store() *Store { return a.store }

// CreateFor makes a store whose geometry matches T, ready for
// NewArena[T]. dir empty means the OS temp directory.
func CreateFor[T any](dir, label string) (*Store, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if hasPointers(t) {
		return nil, fmt.Errorf("%w: %s", ErrPointerElem, t)
	}
	if t.Size() == 0 {
		return nil, fmt.Errorf("spill: element type %s has zero size", t)
	}
	return Create(Options{
		Dir:       dir,
		Label:     label,
		ElemSize:  int(t.Size()),
		ElemAlign: t.Align(),
	})
}

// hasPointers reports whether values of t contain pointers anywhere,
// including interior ones such as string headers or interface words.
func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
