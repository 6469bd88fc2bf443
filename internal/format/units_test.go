package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaleThresholds(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0.00B"},
		{1023, "1023.00B"},
		{KiB, "1.00KiB"},
		{1536, "1.50KiB"},
		{MiB - 1, "1024.00KiB"},
		{MiB, "1.00MiB"},
		{GiB, "1.00GiB"},
		{5 * GiB / 2, "2.50GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Bytes(tt.n), "Bytes(%d)", tt.n)
	}
}

func TestGrouped(t *testing.T) {
	assert.Equal(t, "999", Grouped(999))
	assert.Equal(t, "1,048,576", Grouped(MiB))
}
