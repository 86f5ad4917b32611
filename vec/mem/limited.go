package mem

// Limited wraps another allocator and enforces a budget on the total number
// of outstanding slots. Grab fails with ErrBudget rather than exceed the
// budget; Release credits the slots back.
//
// A budget of zero refuses every non-empty request, which makes Limited a
// convenient failure injector for exercising out-of-memory paths in tests.
type Limited[T any] struct {
	inner  Allocator[T]
	budget int

	inUse     int
	highWater int
}

// NewLimited creates a budget-enforcing wrapper around inner. A nil inner
// defaults to Heap. The budget is the maximum number of slots that may be
// outstanding at once; zero or negative refuses all non-empty requests.
func NewLimited[T any](inner Allocator[T], budget int) *Limited[T] {
	if inner == nil {
		inner = Heap[T]{}
	}
	return &Limited[T]{inner: inner, budget: budget}
}

// Grab obtains an array from the wrapped allocator if the budget allows it.
// Accounting uses the length of the array actually returned, so allocators
// that round up (like Slab) are charged for what they hand out.
func (l *Limited[T]) Grab(n int) ([]T, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	if n == 0 {
		return nil, nil
	}
	if l.inUse+n > l.budget {
		return nil, ErrBudget
	}

	got, err := l.inner.Grab(n)
	if err != nil {
		return nil, err
	}
	if l.inUse+len(got) > l.budget {
		// The inner allocator rounded past the budget.
		l.inner.Release(got)
		return nil, ErrBudget
	}

	l.inUse += len(got)
	if l.inUse > l.highWater {
		l.highWater = l.inUse
	}
	return got, nil
}

// Release credits the array's slots back to the budget and forwards the
// array to the wrapped allocator.
func (l *Limited[T]) Release(s []T) {
	l.inUse -= len(s)
	l.inner.Release(s)
}

// InUse reports the number of slots currently outstanding.
func (l *Limited[T]) InUse() int {
	return l.inUse
}

// HighWater reports the largest number of slots ever outstanding at once.
func (l *Limited[T]) HighWater() int {
	return l.highWater
}

// Budget reports the configured slot budget.
func (l *Limited[T]) Budget() int {
	return l.budget
}

// Compile-time interface check
var _ Allocator[int] = (*Limited[int])(nil)
