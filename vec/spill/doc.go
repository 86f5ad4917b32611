// Package spill provides file-backed slot storage for vectors whose
// contents should live outside the Go heap.
//
// # Overview
//
// A Store owns one scratch file: a fixed 4 KiB header page followed by
// bump-allocated regions. On Linux and macOS each region is claimed by
// extending the file and memory-mapping the new range read-write and
// shared, so writes land in the page cache without copying. Every region
// gets its own mapping; claiming more space never moves earlier views, so
// a vector can hold its old block and its grown block at the same time
// during a relocation. Other platforms fall back to heap-backed regions
// that reach the file only on Flush.
//
// Region space is append-only: releasing a region unmaps the view but the
// file range is not recycled. The file is removed on Close unless the
// store was created with Keep.
//
// # Arena
//
// Arena[T] adapts a Store into a mem.Allocator[T], which is how a Vector
// ends up spill-backed:
//
//	st, err := spill.CreateFor[float64]("", "samples")
//	if err != nil {
//		return err
//	}
//	defer st.Close()
//
//	ar, err := spill.NewArena[float64](st)
//	if err != nil {
//		return err
//	}
//	v := vec.NewWith(vec.Options[float64]{Alloc: ar})
//
// Element types must be pointer-free (no pointers, strings, slices, maps,
// channels, funcs or interfaces anywhere in the value): the garbage
// collector never scans mapped memory, so a pointer stored there would
// not keep its target alive. NewArena and CreateFor reject such types
// with ErrPointerElem. Vectors must release their blocks (Destroy) before
// the store closes.
//
// # Header
//
// The header page records the format version, the element geometry, the
// claim counters and a diagnostic label, protected by an XOR checksum.
// Inspect reads it back from a path, the recovery tool for spill files
// orphaned by a crash.
//
// # Thread Safety
//
// Stores and arenas are not thread-safe. Callers coordinating access from
// multiple goroutines must synchronize externally, same as the vectors
// they back.
package spill
