package main

import (
	"testing"

	"github.com/joshuapare/enginemem/engine"
	"github.com/joshuapare/enginemem/mem/freelist"
)

func TestSizesCommand(t *testing.T) {
	tests := []struct {
		name        string
		size        uint64
		nodes       int
		wantNodes   int
		wantContain []string
	}{
		{
			name:        "explicit capacity",
			size:        4096,
			nodes:       16,
			wantNodes:   16,
			wantContain: []string{"Dynamic size:     4.00KiB (4,096 bytes)", "Node capacity:    16"},
		},
		{
			name:        "derived capacity",
			size:        1 << 20,
			nodes:       0,
			wantNodes:   freelist.DefaultCapacity(1 << 20),
			wantContain: []string{"Dynamic size:     1.00MiB (1,048,576 bytes)", "Bootstrap region:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withFlags(t, tt.size, tt.nodes, false)

			r := computeSizes()
			if r.NodeCapacity != tt.wantNodes {
				t.Errorf("node capacity = %d, want %d", r.NodeCapacity, tt.wantNodes)
			}
			if want := engine.RequiredSize(engineOptions()); r.BootstrapRegion != want {
				t.Errorf("bootstrap region = %d, want %d", r.BootstrapRegion, want)
			}
			if r.DynamicArena != r.FreeListPool+r.TotalSize {
				t.Errorf("dynamic arena %d != pool %d + size %d", r.DynamicArena, r.FreeListPool, r.TotalSize)
			}

			output, err := captureOutput(t, runSizes)
			if err != nil {
				t.Fatalf("runSizes: %v", err)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestSizesCommand_JSON(t *testing.T) {
	withFlags(t, 4096, 16, true)

	output, err := captureOutput(t, runSizes)
	if err != nil {
		t.Fatalf("runSizes: %v", err)
	}

	var r SizeReport
	decodeJSON(t, output, &r)
	if r != computeSizes() {
		t.Errorf("JSON report %+v does not match %+v", r, computeSizes())
	}
}
