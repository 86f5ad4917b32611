package mem

import "errors"

var (
	// ErrBudget indicates that serving the request would push the number of
	// outstanding slots past the allocator's budget.
	ErrBudget = errors.New("mem: slot budget exceeded")

	// ErrNegativeCount indicates a Grab call with a negative slot count.
	ErrNegativeCount = errors.New("mem: negative slot count")
)
