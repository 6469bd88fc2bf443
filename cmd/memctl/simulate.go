package main

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/joshuapare/enginemem/internal/format"
	"github.com/joshuapare/enginemem/mem/alloc"
	"github.com/joshuapare/enginemem/mem/memory"
)

var (
	simOps      int
	simSeed     int64
	simMaxAlloc uint64
	simFreePct  int
)

func init() {
	cmd := newSimulateCmd()
	cmd.Flags().IntVar(&simOps, "ops", 10000, "Number of allocate/free operations")
	cmd.Flags().Int64Var(&simSeed, "seed", 1, "Random seed")
	cmd.Flags().Uint64Var(&simMaxAlloc, "max-alloc", 4096, "Largest single allocation in bytes")
	cmd.Flags().IntVar(&simFreePct, "free-pct", 45, "Percentage of operations that free a live block")
	rootCmd.AddCommand(cmd)
}

func newSimulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Run a randomized allocate/free workload",
		Long: `The simulate command boots the memory stack and drives a seeded random
workload of tagged allocations and frees against it. After every operation it
checks that the free list is sorted and coalesced, that the tag counters sum
to the total, and that free space plus live bytes equals the allocator size.

Example:
  memctl simulate
  memctl simulate --ops 100000 --seed 42 --max-alloc 65536
  memctl simulate --size 1048576 --nodes 64 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate()
		},
	}
}

// SimResult summarizes a simulation run.
type SimResult struct {
	Ops         int            `json:"ops"`
	Seed        int64          `json:"seed"`
	Allocations int            `json:"allocations"`
	Frees       int            `json:"frees"`
	Failures    map[string]int `json:"failures"`
	LiveBlocks  int            `json:"live_blocks"`
	LiveBytes   uint64         `json:"live_bytes"`
	LeakedBytes uint64         `json:"leaked_bytes"`
	FreeBytes   uint64         `json:"free_bytes"`
	Fragments   int            `json:"fragments"`
	LargestFree uint64         `json:"largest_free"`
	PeakNodes   int            `json:"peak_nodes"`
	NodeCap     int            `json:"node_capacity"`
}

// failureKind buckets an allocator error for the report.
func failureKind(err error) string {
	switch {
	case errors.Is(err, alloc.ErrNoSpace):
		return "no_space"
	case errors.Is(err, alloc.ErrNodePoolExhausted):
		return "node_pool_exhausted"
	case errors.Is(err, alloc.ErrDoubleFree):
		return "double_free"
	case errors.Is(err, alloc.ErrOutOfRange):
		return "out_of_range"
	default:
		return "other"
	}
}

// simulate runs ops random operations against sys. A free the allocator
// rejects has already been subtracted from the tag counters, so its bytes are
// tracked as leaked to keep the conservation check exact.
func simulate(sys *memory.System, ops int, seed int64, maxAlloc uint64, freePct int) (SimResult, error) {
	if maxAlloc == 0 || maxAlloc > math.MaxInt64 {
		return SimResult{}, errors.Newf("max-alloc must be in [1, %d]", int64(math.MaxInt64))
	}
	rng := rand.New(rand.NewSource(seed))
	dyn := sys.Allocator()
	res := SimResult{Ops: ops, Seed: seed, Failures: make(map[string]int)}

	var live []memory.Block
	for i := 0; i < ops; i++ {
		if len(live) > 0 && rng.Intn(100) < freePct {
			j := rng.Intn(len(live))
			b := live[j]
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
			res.LiveBytes -= b.Len()

			if err := sys.Free(b); err != nil {
				res.Failures[failureKind(err)]++
				res.LeakedBytes += b.Len()
			} else {
				res.Frees++
			}
		} else {
			size := 1 + uint64(rng.Int63n(int64(maxAlloc)))
			tag := memory.Tag(1 + rng.Intn(int(memory.TagMax)-1))
			b, err := sys.Allocate(size, tag)
			if err != nil {
				res.Failures[failureKind(err)]++
			} else {
				res.Allocations++
				live = append(live, b)
				res.LiveBytes += b.Len()
			}
		}

		if err := sys.Validate(); err != nil {
			return res, errors.Wrapf(err, "invariant violated after op %d", i)
		}
		free := dyn.FreeSpace()
		if free+res.LiveBytes+res.LeakedBytes != dyn.Size() {
			return res, errors.Newf("conservation violated after op %d: free %d + live %d + leaked %d != %d",
				i, free, res.LiveBytes, res.LeakedBytes, dyn.Size())
		}
		if n := dyn.Stats().LiveNodes; n > res.PeakNodes {
			res.PeakNodes = n
		}
	}

	st := dyn.Stats()
	res.LiveBlocks = len(live)
	res.FreeBytes = st.FreeBytes
	res.Fragments = st.Fragments
	res.LargestFree = st.LargestFree
	res.NodeCap = st.NodeCapacity
	return res, nil
}

func runSimulate() error {
	e, shutdown, err := bootEngine()
	if err != nil {
		return err
	}
	defer shutdown()

	printVerbose("Simulating %d ops (seed %d, max alloc %d)\n", simOps, simSeed, simMaxAlloc)
	res, err := simulate(e.Memory(), simOps, simSeed, simMaxAlloc, simFreePct)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(res)
	}

	printInfo("\n%s\n", heading(fmt.Sprintf("Simulation Results (seed %d):", res.Seed)))
	printInfo("  Operations:   %s\n", format.Grouped(uint64(res.Ops)))
	printInfo("  Allocations:  %s\n", format.Grouped(uint64(res.Allocations)))
	printInfo("  Frees:        %s\n", format.Grouped(uint64(res.Frees)))
	printInfo("  Live blocks:  %s (%s)\n", format.Grouped(uint64(res.LiveBlocks)), format.Bytes(res.LiveBytes))
	printInfo("  Free space:   %s in %d fragment(s), largest %s\n",
		format.Bytes(res.FreeBytes), res.Fragments, format.Bytes(res.LargestFree))
	printInfo("  Peak nodes:   %d of %d\n", res.PeakNodes, res.NodeCap)
	if res.LeakedBytes > 0 {
		printInfo("  Leaked:       %s\n", warn(format.Bytes(res.LeakedBytes)+" (rejected frees)"))
	}
	if len(res.Failures) == 0 {
		printInfo("  Failures:     %s\n", ok("none"))
		return nil
	}
	printInfo("  Failures:\n")
	for _, kind := range []string{"no_space", "node_pool_exhausted", "double_free", "out_of_range", "other"} {
		if n := res.Failures[kind]; n > 0 {
			printInfo("    %-20s %s\n", kind+":", warn(format.Grouped(uint64(n))))
		}
	}
	return nil
}
