package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/veckit/vec"
	"github.com/joshuapare/veckit/vec/mem"
)

var (
	growCount   int
	growReserve bool
	growAlloc   string
	growBudget  int
)

func init() {
	cmd := newGrowCmd()
	cmd.Flags().IntVar(&growCount, "count", 1_000_000, "Elements to append")
	cmd.Flags().BoolVar(&growReserve, "reserve", false, "Reserve full capacity up front")
	cmd.Flags().StringVar(&growAlloc, "allocator", "heap", "Allocator: heap, slab, limited")
	cmd.Flags().IntVar(&growBudget, "budget", 0, "Slot budget for the limited allocator")
	rootCmd.AddCommand(cmd)
}

func newGrowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grow",
		Short: "Append elements and report growth behavior",
		Long: `The grow command appends a fixed number of elements to a fresh vector
and reports how the container grew: block adoptions, relocated elements,
and the final geometry.

Example:
  vecbench grow --count 5000000
  vecbench grow --count 1000000 --reserve
  vecbench grow --allocator slab --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrow()
		},
	}
}

type GrowReport struct {
	Count     int
	Allocator string
	Reserved  bool

	FinalLen int
	FinalCap int
	MemBytes uint64
	Grows    int
	Moved    int
	Copied   int

	Elapsed time.Duration
	Rate    float64 // elements per second

	Slab   *mem.SlabStats `json:",omitempty"`
	Budget *BudgetReport  `json:",omitempty"`
}

type BudgetReport struct {
	InUse     int
	HighWater int
	Budget    int
}

func runGrow() error {
	if growCount < 1 {
		return fmt.Errorf("--count must be positive, got %d", growCount)
	}
	choice, err := pickAllocator(growAlloc, growBudget)
	if err != nil {
		return err
	}

	printVerbose("Appending %s elements via %s allocator\n",
		humanize.Comma(int64(growCount)), growAlloc)

	v := vec.NewWith(vec.Options[int64]{Alloc: choice.alloc})
	if growReserve {
		if err := v.Reserve(growCount); err != nil {
			return fmt.Errorf("reserve %d: %w", growCount, err)
		}
	}

	start := time.Now()
	for i := range growCount {
		if err := v.PushBack(int64(i)); err != nil {
			return fmt.Errorf("push %d: %w", i, err)
		}
	}
	elapsed := time.Since(start)

	if err := v.Audit(); err != nil {
		return err
	}
	if got := v.At(growCount - 1); got != int64(growCount-1) {
		return fmt.Errorf("last element reads %d, want %d", got, growCount-1)
	}

	stats := v.Stats()
	report := GrowReport{
		Count:     growCount,
		Allocator: growAlloc,
		Reserved:  growReserve,
		FinalLen:  v.Len(),
		FinalCap:  v.Cap(),
		MemBytes:  uint64(v.Cap()) * 8,
		Grows:     stats.Grows,
		Moved:     stats.MoveTransfers,
		Copied:    stats.CopyTransfers,
		Elapsed:   elapsed,
		Rate:      float64(growCount) / elapsed.Seconds(),
	}
	if choice.slab != nil {
		st := choice.slab.Stats()
		report.Slab = &st
	}
	if choice.lim != nil {
		report.Budget = &BudgetReport{
			InUse:     choice.lim.InUse(),
			HighWater: choice.lim.HighWater(),
			Budget:    choice.lim.Budget(),
		}
	}

	v.Destroy()
	if choice.lim != nil {
		printVerbose("Slots in use after destroy: %d\n", choice.lim.InUse())
	}

	if jsonOut {
		return printJSON(report)
	}

	printInfo("\nGrowth Report\n")
	printInfo("%s\n\n", strings.Repeat("═", 40))

	printInfo("Workload:\n")
	printInfo("  Elements: %s\n", humanize.Comma(int64(report.Count)))
	printInfo("  Allocator: %s\n", report.Allocator)
	printInfo("  Reserved up front: %v\n\n", report.Reserved)

	printInfo("Container:\n")
	printInfo("  Final length: %s\n", humanize.Comma(int64(report.FinalLen)))
	printInfo("  Final capacity: %s slots (%s)\n",
		humanize.Comma(int64(report.FinalCap)), humanize.IBytes(report.MemBytes))
	printInfo("  Block adoptions: %d\n", report.Grows)
	printInfo("  Elements moved: %s\n", humanize.Comma(int64(report.Moved)))
	printInfo("  Elements copied: %s\n\n", humanize.Comma(int64(report.Copied)))

	if report.Slab != nil {
		printInfo("Slab:\n")
		printInfo("  Grabs: %d  Reuses: %d  Releases: %d  Discards: %d\n",
			report.Slab.Grabs, report.Slab.Reuses, report.Slab.Releases, report.Slab.Discards)
		printInfo("\n")
	}
	if report.Budget != nil {
		printInfo("Budget:\n")
		printInfo("  High water: %s of %s slots\n\n",
			humanize.Comma(int64(report.Budget.HighWater)),
			humanize.Comma(int64(report.Budget.Budget)))
	}

	printInfo("Timing:\n")
	printInfo("  Elapsed: %s\n", report.Elapsed)
	printInfo("  Rate: %s\n", humanize.SI(report.Rate, "el/s"))

	return nil
}
