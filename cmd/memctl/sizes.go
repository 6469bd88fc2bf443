package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/enginemem/engine"
	"github.com/joshuapare/enginemem/internal/format"
	"github.com/joshuapare/enginemem/mem/alloc"
	"github.com/joshuapare/enginemem/mem/freelist"
	"github.com/joshuapare/enginemem/mem/memory"
)

func init() {
	rootCmd.AddCommand(newSizesCmd())
}

func newSizesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sizes",
		Short: "Print the nested memory size requirements",
		Long: `The sizes command prints how many bytes each layer of the memory stack
needs for the configured size and node capacity, without allocating anything.

Example:
  memctl sizes
  memctl sizes --size 1073741824 --nodes 4096
  memctl sizes --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSizes()
		},
	}
}

// SizeReport lists the required size of every layer.
type SizeReport struct {
	TotalSize       uint64 `json:"total_size"`
	NodeCapacity    int    `json:"node_capacity"`
	FreeListPool    uint64 `json:"freelist_pool"`
	DynamicArena    uint64 `json:"dynamic_arena"`
	MemorySystem    uint64 `json:"memory_system"`
	Headroom        uint64 `json:"headroom"`
	BootstrapRegion uint64 `json:"bootstrap_region"`
}

func computeSizes() SizeReport {
	opts := engineOptions()
	nodes := opts.Memory.NodeCapacity
	if nodes <= 0 {
		nodes = freelist.DefaultCapacity(opts.Memory.TotalSize)
	}
	return SizeReport{
		TotalSize:       opts.Memory.TotalSize,
		NodeCapacity:    nodes,
		FreeListPool:    freelist.RequiredSize(opts.Memory.TotalSize, nodes),
		DynamicArena:    alloc.DynamicRequiredSize(opts.Memory.TotalSize, nodes),
		MemorySystem:    memory.RequiredSize(opts.Memory),
		Headroom:        opts.Headroom,
		BootstrapRegion: engine.RequiredSize(opts),
	}
}

func runSizes() error {
	r := computeSizes()
	if jsonOut {
		return printJSON(r)
	}

	printInfo("\n%s\n", heading("Memory Size Requirements:"))
	printInfo("  Dynamic size:     %s (%s bytes)\n", format.Bytes(r.TotalSize), format.Grouped(r.TotalSize))
	printInfo("  Node capacity:    %s\n", format.Grouped(uint64(r.NodeCapacity)))
	printInfo("  Free-list pool:   %s\n", format.Bytes(r.FreeListPool))
	printInfo("  Dynamic arena:    %s\n", format.Bytes(r.DynamicArena))
	printInfo("  Memory system:    %s\n", format.Bytes(r.MemorySystem))
	printInfo("  Headroom:         %s\n", format.Bytes(r.Headroom))
	printInfo("  Bootstrap region: %s (%s bytes)\n", format.Bytes(r.BootstrapRegion), format.Grouped(r.BootstrapRegion))
	return nil
}
