package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/enginemem/mem/memory"
)

var usageTagDemo bool

func init() {
	cmd := newUsageCmd()
	cmd.Flags().BoolVar(&usageTagDemo, "tag-demo", false, "Run a small tagged workload before reporting")
	rootCmd.AddCommand(cmd)
}

func newUsageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Boot the engine and print the tagged memory usage report",
		Long: `The usage command boots the memory stack and prints the per-tag usage
report. With --tag-demo it first allocates a handful of blocks under several
tags and releases some of them, so the report has something to show.

Example:
  memctl usage
  memctl usage --tag-demo
  memctl usage --tag-demo --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsage()
		},
	}
}

// UsageReport is the JSON form of memory.Usage.
type UsageReport struct {
	Tags        map[string]int64 `json:"tags"`
	Total       int64            `json:"total"`
	Allocations uint64           `json:"allocations"`
	Frees       uint64           `json:"frees"`
	Capacity    uint64           `json:"capacity"`
	FreeSpace   uint64           `json:"free_space"`
}

func newUsageReport(u memory.Usage) UsageReport {
	return UsageReport{
		Tags:        u.ByTag(),
		Total:       u.Total,
		Allocations: u.Allocations,
		Frees:       u.Frees,
		Capacity:    u.Capacity,
		FreeSpace:   u.FreeSpace,
	}
}

// demoWorkload is what --tag-demo allocates. Entries with release set are
// freed again before the report.
var demoWorkload = []struct {
	tag     memory.Tag
	size    uint64
	release bool
}{
	{memory.TagString, 100, false},
	{memory.TagString, 50, false},
	{memory.TagArray, 4096, false},
	{memory.TagDArray, 1536, true},
	{memory.TagTexture, 256 << 10, false},
	{memory.TagRenderer, 64 << 10, true},
	{memory.TagHashtable, 2048, false},
	{memory.TagEntity, 512, false},
}

func runDemoWorkload(sys *memory.System) error {
	var release []memory.Block
	for _, w := range demoWorkload {
		b, err := sys.Allocate(w.size, w.tag)
		if err != nil {
			return err
		}
		if w.release {
			release = append(release, b)
		}
	}
	for _, b := range release {
		if err := sys.Free(b); err != nil {
			return err
		}
	}
	return nil
}

func runUsage() error {
	e, shutdown, err := bootEngine()
	if err != nil {
		return err
	}
	defer shutdown()

	sys := e.Memory()
	if usageTagDemo {
		printVerbose("Running tagged demo workload (%d allocations)\n", len(demoWorkload))
		if err := runDemoWorkload(sys); err != nil {
			return err
		}
	}

	if jsonOut {
		return printJSON(newUsageReport(sys.Usage()))
	}
	if quiet {
		return nil
	}
	return sys.PrintUsage(os.Stdout)
}
