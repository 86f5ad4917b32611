package main

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/veckit/vec/spill"
)

func init() {
	rootCmd.AddCommand(newInspectCmd())
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Read the header of a kept spill file",
		Long: `The inspect command validates and prints the header of a spill file
left behind by a --keep run, without mapping any of its data.

Example:
  vecbench inspect /tmp/veckit-spill-1234.vspl
  vecbench inspect run.vspl --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args)
		},
	}
}

func runInspect(args []string) error {
	info, err := spill.Inspect(args[0])
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nSpill File: %s\n", info.Path)
	printInfo("%s\n\n", strings.Repeat("═", 40))
	printInfo("  Format version: %d\n", info.Version)
	printInfo("  Element geometry: %d bytes, aligned %d\n", info.ElemSize, info.ElemAlign)
	printInfo("  Regions claimed: %d\n", info.Regions)
	printInfo("  Region data: %s\n", humanize.IBytes(uint64(info.DataBytes)))
	printInfo("  File size: %s\n", humanize.IBytes(uint64(info.FileSize)))
	if info.Label != "" {
		printInfo("  Label: %s\n", info.Label)
	}
	return nil
}
