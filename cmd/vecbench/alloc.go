package main

import (
	"fmt"

	"github.com/joshuapare/veckit/vec/mem"
)

// allocChoice is a built allocator plus the handles the reports need.
// slab and lim stay nil for the kinds that do not use them.
type allocChoice struct {
	alloc mem.Allocator[int64]
	slab  *mem.Slab[int64]
	lim   *mem.Limited[int64]
}

// pickAllocator builds the allocator named by --allocator. budget only
// applies to the limited kind and counts slots, not bytes.
func pickAllocator(kind string, budget int) (allocChoice, error) {
	switch kind {
	case "heap":
		return allocChoice{alloc: mem.Heap[int64]{}}, nil
	case "slab":
		s := mem.NewSlab[int64](mem.DefaultConfig)
		return allocChoice{alloc: s, slab: s}, nil
	case "limited":
		if budget <= 0 {
			return allocChoice{}, fmt.Errorf("allocator %q needs --budget > 0", kind)
		}
		l := mem.NewLimited[int64](mem.Heap[int64]{}, budget)
		return allocChoice{alloc: l, lim: l}, nil
	default:
		return allocChoice{}, fmt.Errorf("unknown allocator %q (heap, slab, limited)", kind)
	}
}
