package buf

import (
	"fmt"
	"math/bits"
)

// AddU64 adds a and b, returning ok = false when the result would overflow.
func AddU64(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry == 0
}

// MulU64 multiplies a and b, returning ok = false when the result would overflow.
func MulU64(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}

// CheckRange validates that [off, off+n) fits inside a space of size bytes.
// Returns the exclusive end offset, or an error naming the failure.
func CheckRange(size, off, n uint64) (uint64, error) {
	end, ok := AddU64(off, n)
	if !ok {
		return 0, fmt.Errorf("overflow: off=%d + n=%d", off, n)
	}
	if end > size {
		return 0, fmt.Errorf("bounds: end=%d > size=%d", end, size)
	}
	return end, nil
}

// SlabSize returns count*elemSize, or ok = false when it overflows.
func SlabSize(count, elemSize uint64) (uint64, bool) {
	return MulU64(count, elemSize)
}
