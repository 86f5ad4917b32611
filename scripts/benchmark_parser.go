package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult represents a parsed benchmark result.
type BenchmarkResult struct {
	Name        string
	Operation   string
	Variant     string // b.Run subcase, e.g. "Heap" or "Slab"; empty when flat
	Iterations  int
	NsPerOp     float64
	BytesPerOp  int64
	AllocsPerOp int64
}

// ComparisonResult pairs one variant of an operation against the baseline.
type ComparisonResult struct {
	Operation    string
	Variant      string
	VariantNs    float64
	BaselineNs   float64
	Speedup      float64 // baseline / variant; > 1 means the variant is faster
	VariantMem   int64
	BaselineMem  int64
	VariantAlloc int64
	BaselineAllc int64
	Unpaired     bool // no baseline subcase to compare against
}

var (
	inputFile = flag.String(
		"input",
		"",
		"Input file with benchmark output (stdin if not specified)",
	)
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	baseline   = flag.String("baseline", "Heap", "Subcase name treated as the baseline")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

func main() {
	flag.Parse()

	// Read benchmark output
	var scanner *bufio.Scanner
	var inputF *os.File
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		inputF = f
		scanner = bufio.NewScanner(f)
	} else {
		scanner = bufio.NewScanner(os.Stdin)
	}

	results := parseBenchmarks(scanner)

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	comparisons := generateComparisons(results, *baseline)

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Generated %d comparisons\n", len(comparisons))
	}

	report := generateMarkdownReport(comparisons, *baseline)

	if *outputFile != "" {
		err := os.WriteFile(*outputFile, []byte(report), 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			if inputF != nil {
				inputF.Close()
			}
			os.Exit(1)
		}
		if !*quiet {
			fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
		}
	} else {
		fmt.Fprint(os.Stdout, report)
	}

	if inputF != nil {
		inputF.Close()
	}
}

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult

	// Regex to parse benchmark output lines
	// BenchmarkPushBack_Amortized/Slab-8    10000    12450 ns/op    4096 B/op    8 allocs/op
	benchmarkRegex := regexp.MustCompile(
		`^(Benchmark\S+)\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+(?:B|MB)/op)?(?:\s+([\d.]+)\s+allocs/op)?`,
	)

	for scanner.Scan() {
		line := scanner.Text()

		// Unwrap test2json events (from -json flag)
		var testEvent map[string]any
		if err := json.Unmarshal([]byte(line), &testEvent); err == nil {
			if output, ok := testEvent["Output"].(string); ok {
				line = output
			}
		}

		matches := benchmarkRegex.FindStringSubmatch(strings.TrimSpace(line))
		if matches == nil {
			continue
		}

		name := matches[1]
		iterations, _ := strconv.Atoi(matches[2])
		nsPerOp, _ := strconv.ParseFloat(matches[3], 64)

		var bytesPerOp int64
		var allocsPerOp int64

		if matches[4] != "" {
			bytesPerOp, _ = strconv.ParseInt(matches[4], 10, 64)
		}
		if matches[5] != "" {
			allocsPerOp, _ = strconv.ParseInt(matches[5], 10, 64)
		}

		operation, variant := splitBenchmarkName(name)

		results = append(results, BenchmarkResult{
			Name:        name,
			Operation:   operation,
			Variant:     variant,
			Iterations:  iterations,
			NsPerOp:     nsPerOp,
			BytesPerOp:  bytesPerOp,
			AllocsPerOp: allocsPerOp,
		})
	}

	return results
}

// splitBenchmarkName breaks a benchmark line name into operation and
// subcase. Names look like Benchmark<Operation>[/<variant>]-<procs>.
func splitBenchmarkName(name string) (operation, variant string) {
	// Strip the -N GOMAXPROCS suffix from the final segment
	parts := strings.Split(name, "/")
	last := parts[len(parts)-1]
	if dashIdx := strings.LastIndex(last, "-"); dashIdx > 0 {
		parts[len(parts)-1] = last[:dashIdx]
	}

	operation = strings.TrimPrefix(parts[0], "Benchmark")
	if len(parts) > 1 {
		variant = strings.Join(parts[1:], "/")
	}
	return operation, variant
}

func generateComparisons(results []BenchmarkResult, baseline string) []ComparisonResult {
	// Group subcases under their operation
	grouped := make(map[string]map[string]BenchmarkResult)

	for _, result := range results {
		if grouped[result.Operation] == nil {
			grouped[result.Operation] = make(map[string]BenchmarkResult)
		}
		grouped[result.Operation][result.Variant] = result
	}

	var comparisons []ComparisonResult

	for operation, variants := range grouped {
		base, hasBase := variants[baseline]

		for variantName, r := range variants {
			if variantName == baseline && len(variants) > 1 {
				continue // the baseline appears inside each comparison row
			}

			if hasBase && variantName != baseline {
				comparisons = append(comparisons, ComparisonResult{
					Operation:    operation,
					Variant:      variantName,
					VariantNs:    r.NsPerOp,
					BaselineNs:   base.NsPerOp,
					Speedup:      base.NsPerOp / r.NsPerOp,
					VariantMem:   r.BytesPerOp,
					BaselineMem:  base.BytesPerOp,
					VariantAlloc: r.AllocsPerOp,
					BaselineAllc: base.AllocsPerOp,
				})
			} else {
				comparisons = append(comparisons, ComparisonResult{
					Operation:    operation,
					Variant:      variantName,
					VariantNs:    r.NsPerOp,
					VariantMem:   r.BytesPerOp,
					VariantAlloc: r.AllocsPerOp,
					Unpaired:     true,
				})
			}
		}
	}

	sort.Slice(comparisons, func(i, j int) bool {
		if comparisons[i].Operation != comparisons[j].Operation {
			return comparisons[i].Operation < comparisons[j].Operation
		}
		return comparisons[i].Variant < comparisons[j].Variant
	})

	return comparisons
}

func generateMarkdownReport(comparisons []ComparisonResult, baseline string) string {
	var sb strings.Builder

	sb.WriteString("# Benchmark Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	variantFaster := 0
	baselineFaster := 0
	unpaired := 0
	totalSpeedup := 0.0

	for _, comp := range comparisons {
		if comp.Unpaired {
			unpaired++
		} else {
			if comp.Speedup > 1.0 {
				variantFaster++
			} else if comp.Speedup < 1.0 {
				baselineFaster++
			}
			totalSpeedup += comp.Speedup
		}
	}

	comparableCount := len(comparisons) - unpaired
	avgSpeedup := 0.0
	if comparableCount > 0 {
		avgSpeedup = totalSpeedup / float64(comparableCount)
	}

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Baseline subcase**: %s\n", baseline))
	sb.WriteString(fmt.Sprintf("- **Total rows**: %d\n", len(comparisons)))
	sb.WriteString(fmt.Sprintf("- **Compared against baseline**: %d\n", comparableCount))
	if comparableCount > 0 {
		sb.WriteString(fmt.Sprintf("  - variant faster: %d\n", variantFaster))
		sb.WriteString(fmt.Sprintf("  - baseline faster: %d\n", baselineFaster))
		sb.WriteString(fmt.Sprintf("  - Average speedup: **%.2fx**\n", avgSpeedup))
	}
	sb.WriteString(fmt.Sprintf("- **Standalone rows**: %d\n", unpaired))
	sb.WriteString("\n")

	sb.WriteString("## Detailed Results\n\n")
	sb.WriteString(
		"| Operation | Variant | ns/op | baseline ns/op | Speedup | Memory (B/op) | Allocs |\n",
	)
	sb.WriteString(
		"|-----------|---------|-------|----------------|---------|---------------|--------|\n",
	)

	for _, comp := range comparisons {
		if comp.Unpaired {
			variant := comp.Variant
			if variant == "" {
				variant = "-"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | *N/A* | *standalone* | %s | %s |\n",
				comp.Operation,
				variant,
				formatNumber(comp.VariantNs),
				formatBytes(comp.VariantMem),
				formatNumber(float64(comp.VariantAlloc)),
			))
		} else {
			indicator := "✓"
			speedupStyle := "**"
			if comp.Speedup < 1.0 {
				indicator = "✗"
				speedupStyle = ""
			}

			memIndicator := ""
			if comp.VariantMem < comp.BaselineMem {
				memIndicator = " ✓"
			} else if comp.VariantMem > comp.BaselineMem {
				memIndicator = " ✗"
			}

			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s%.2fx%s %s | %s vs %s%s | %s vs %s |\n",
				comp.Operation,
				comp.Variant,
				formatNumber(comp.VariantNs),
				formatNumber(comp.BaselineNs),
				speedupStyle,
				comp.Speedup,
				speedupStyle,
				indicator,
				formatBytes(comp.VariantMem),
				formatBytes(comp.BaselineMem),
				memIndicator,
				formatNumber(float64(comp.VariantAlloc)),
				formatNumber(float64(comp.BaselineAllc)),
			))
		}
	}

	sb.WriteString("\n")

	sb.WriteString("## Performance by Category\n\n")

	categories := categorizeOperations(comparisons)
	order := []string{"Append", "Positional", "Assign", "Iterate", "Other"}
	for _, category := range order {
		comps := categories[category]
		if len(comps) == 0 {
			continue
		}

		avgSpeed := 0.0
		count := 0
		for _, comp := range comps {
			if !comp.Unpaired {
				avgSpeed += comp.Speedup
				count++
			}
		}

		if count > 0 {
			avgSpeed /= float64(count)
			status := "✓"
			if avgSpeed < 1.0 {
				status = "✗"
			}
			sb.WriteString(fmt.Sprintf("- %s **%s**: %.2fx average speedup vs %s\n",
				status, category, avgSpeed, baseline))
		} else {
			sb.WriteString(fmt.Sprintf("- **%s**: standalone measurements only\n", category))
		}
	}

	sb.WriteString("\n")

	sb.WriteString("## Notes\n\n")
	sb.WriteString(fmt.Sprintf("- **Speedup > 1.0**: the variant beats the %s baseline ✓\n", baseline))
	sb.WriteString("- **Speedup < 1.0**: the baseline is faster ✗\n")
	sb.WriteString("- **Memory comparison**: Lower is better\n")
	sb.WriteString("- **Standalone**: benchmarks with no baseline subcase to pair with\n")

	return sb.String()
}

func categorizeOperations(comparisons []ComparisonResult) map[string][]ComparisonResult {
	categories := map[string][]ComparisonResult{
		"Append":     {},
		"Positional": {},
		"Assign":     {},
		"Iterate":    {},
		"Other":      {},
	}

	for _, comp := range comparisons {
		op := strings.ToLower(comp.Operation)

		switch {
		case strings.Contains(op, "push") || strings.Contains(op, "emplaceback") ||
			strings.Contains(op, "pop"):
			categories["Append"] = append(categories["Append"], comp)
		case strings.Contains(op, "insert") || strings.Contains(op, "erase") ||
			strings.Contains(op, "emplace"):
			categories["Positional"] = append(categories["Positional"], comp)
		case strings.Contains(op, "clone") || strings.Contains(op, "copyfrom") ||
			strings.Contains(op, "assign"):
			categories["Assign"] = append(categories["Assign"], comp)
		case strings.Contains(op, "iterate") || strings.Contains(op, "values") ||
			strings.Contains(op, "range"):
			categories["Iterate"] = append(categories["Iterate"], comp)
		default:
			categories["Other"] = append(categories["Other"], comp)
		}
	}

	return categories
}

func formatNumber(n float64) string {
	if n >= 1000000 {
		return fmt.Sprintf("%.2fM", n/1000000)
	} else if n >= 1000 {
		return fmt.Sprintf("%.1fK", n/1000)
	}
	return fmt.Sprintf("%.0f", n)
}

func formatBytes(b int64) string {
	if b >= 1024*1024 {
		return fmt.Sprintf("%.2fMB", float64(b)/(1024*1024))
	} else if b >= 1024 {
		return fmt.Sprintf("%.1fKB", float64(b)/1024)
	}
	return fmt.Sprintf("%dB", b)
}
