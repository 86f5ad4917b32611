package mem

import "math"

// SlabConfig defines the size class strategy for a Slab allocator.
// Different configurations can be tested to find the right reuse/overhead
// tradeoff for a workload. All counts are in slots, not bytes.
type SlabConfig struct {
	// Name for this configuration (for benchmarking)
	Name string

	// Small request settings (linear increments)
	SmallMin       int // Minimum class size (typically 8)
	SmallMax       int // Max for linear increments (typically 256-512)
	SmallIncrement int // Increment between small classes (8, 16, or 32)

	// Medium request settings (logarithmic growth)
	MediumMax    int     // Max slot count served from classes; beyond is exact-fit
	GrowthFactor float64 // Exponential growth factor (1.5, 2.0, etc.)
}

// Predefined configurations.
var (
	// FineGrained: Many small classes, good for varied workloads
	// 8-256 step 8 (31 classes) + 256-16K log growth (~15 classes) = ~46 total.
	ConfigFineGrained = SlabConfig{
		Name:           "FineGrained",
		SmallMin:       8,
		SmallMax:       256,
		SmallIncrement: 8,
		MediumMax:      16384,
		GrowthFactor:   1.5,
	}

	// Balanced: Good balance between retained memory and granularity
	// 8-512 step 16 (32 classes) + 512-16K log growth (~8 classes) = ~40 total.
	ConfigBalanced = SlabConfig{
		Name:           "Balanced",
		SmallMin:       8,
		SmallMax:       512,
		SmallIncrement: 16,
		MediumMax:      16384,
		GrowthFactor:   1.5,
	}

	// Coarse: Fewer classes, faster lookup but more internal fragmentation
	// 8-512 step 32 (16 classes) + 512-16K log growth (~6 classes) = ~22 total.
	ConfigCoarse = SlabConfig{
		Name:           "Coarse",
		SmallMin:       8,
		SmallMax:       512,
		SmallIncrement: 32,
		MediumMax:      16384,
		GrowthFactor:   2.0,
	}

	// Default configuration (used if none specified).
	DefaultConfig = ConfigBalanced
)

// classTable holds the computed size class boundaries.
type classTable struct {
	config     SlabConfig
	boundaries []int // Upper bound (inclusive, in slots) for each class
	numClasses int
}

// newClassTable computes size class boundaries from config.
func newClassTable(config SlabConfig) *classTable {
	table := &classTable{
		config:     config,
		boundaries: make([]int, 0, 64), // Preallocate reasonable size
	}

	// Phase 1: Small requests (linear increments)
	for size := config.SmallMin; size < config.SmallMax; size += config.SmallIncrement {
		table.boundaries = append(table.boundaries, size+config.SmallIncrement-1)
	}

	// Phase 2: Medium requests (logarithmic growth)
	if config.SmallMax < config.MediumMax {
		size := config.SmallMax
		for size < config.MediumMax {
			nextSize := int(math.Ceil(float64(size) * config.GrowthFactor))
			if nextSize <= size {
				nextSize = size + 1 // Ensure progress
			}
			table.boundaries = append(table.boundaries, nextSize-1)
			size = nextSize
		}
	}

	table.numClasses = len(table.boundaries)
	return table
}

// classFor returns the size class index for a given slot count.
// Returns table.numClasses for counts beyond the last boundary (exact-fit).
func (t *classTable) classFor(n int) int {
	// Binary search for the appropriate size class
	lo, hi := 0, t.numClasses-1

	for lo <= hi {
		mid := (lo + hi) / 2
		if n <= t.boundaries[mid] {
			// Check if this is the smallest boundary that fits
			if mid == 0 || n > t.boundaries[mid-1] {
				return mid
			}
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}

	// Count is larger than all boundaries, serve exact-fit
	return t.numClasses
}

// String returns a human-readable description of the size class table.
func (t *classTable) String() string {
	return t.config.Name
}

// NumClasses returns the number of size classes (excluding exact-fit).
func (t *classTable) NumClasses() int {
	return t.numClasses
}
