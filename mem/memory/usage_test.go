package memory

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/enginemem/internal/format"
)

func TestUsage_Snapshot(t *testing.T) {
	s, _ := newTestSystem(t, smallConfig)
	a := mustAllocate(t, s, 100, TagString)
	mustAllocate(t, s, 200, TagTexture)
	require.NoError(t, s.Free(a))

	u := s.Usage()
	assert.Equal(t, int64(0), u.Tagged[TagString])
	assert.Equal(t, int64(200), u.Tagged[TagTexture])
	assert.Equal(t, int64(200), u.Total)
	assert.Equal(t, uint64(2), u.Allocations)
	assert.Equal(t, uint64(1), u.Frees)
	assert.Equal(t, smallConfig.TotalSize, u.Capacity)
	assert.Equal(t, smallConfig.TotalSize-200, u.FreeSpace)
	assert.Equal(t, map[string]int64{"TEXTURE": 200}, u.ByTag())

	// Snapshots do not follow later changes.
	mustAllocate(t, s, 10, TagTexture)
	assert.Equal(t, int64(200), u.Tagged[TagTexture])
}

func TestUsage_UnitThresholds(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{"bytes", 1023, "1023.00B"},
		{"kib", format.KiB, "1.00KiB"},
		{"kib fraction", 1536, "1.50KiB"},
		{"mib", 2 * format.MiB, "2.00MiB"},
		{"gib", 3 * format.GiB, "3.00GiB"},
		{"negative", -1536, "-1.50KiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, signedBytes(tt.n))
		})
	}
}

func TestPrintUsage(t *testing.T) {
	s, _ := newTestSystem(t, Config{TotalSize: 4 * format.MiB, NodeCapacity: 64})
	mustAllocate(t, s, 1536, TagTexture)
	mustAllocate(t, s, 2*format.MiB, TagRenderer)

	var out bytes.Buffer
	require.NoError(t, s.PrintUsage(&out))
	report := out.String()

	assert.Contains(t, report, "System memory use (tagged):")
	assert.Contains(t, report, "  TEXTURE     : 1.50KiB\n")
	assert.Contains(t, report, "  RENDERER    : 2.00MiB\n")
	assert.Contains(t, report, "  UNKNOWN     : 0.00B\n")
	assert.Contains(t, report, "(2,098,688 bytes)")
	assert.Contains(t, report, "Allocations: 2, frees: 0")
	assert.Contains(t, report, "of 4.00MiB")

	for tag := Tag(0); tag < TagMax; tag++ {
		assert.Contains(t, report, "  "+tag.String())
	}
}
