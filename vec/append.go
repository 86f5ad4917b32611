package vec

// PushBack appends x, adopting the value as passed. The vector owns it
// afterwards; the caller must treat its original as relinquished. Grows the
// block when full.
func (v *Vector[T]) PushBack(x T) error {
	_, err := v.emplaceAt(v.size, func() (T, error) { return x, nil })
	return err
}

// PushBackCopy appends an independent duplicate of x, leaving the caller's
// value untouched. Move-only element types report ErrNotDuplicable. The
// duplicate is created after storage is secured, so a failed copy changes
// nothing.
func (v *Vector[T]) PushBackCopy(x T) error {
	if !v.lc.duplicable() {
		return ErrNotDuplicable
	}
	_, err := v.emplaceAt(v.size, func() (T, error) { return v.lc.duplicate(x) })
	return err
}

// EmplaceBack appends an element built by mk; nil means default-construct.
// Returns a pointer to the new element, valid until the next operation
// that can relocate storage. The callback runs after any growth block is
// secured and before existing elements transfer, so it may read the
// vector's current contents and a failure leaves the vector untouched.
func (v *Vector[T]) EmplaceBack(mk Make[T]) (*T, error) {
	return v.emplaceAt(v.size, mk)
}

// PopBack drops the last element. Panics on an empty vector.
func (v *Vector[T]) PopBack() {
	if v.size == 0 {
		panic("vec: PopBack on empty vector")
	}
	v.size--
	v.lc.drop(v.block.Ptr(v.size))
	v.stats.Removals++
}
