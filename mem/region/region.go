// Package region acquires the process memory that the bootstrap arena is
// built on.
//
// On Linux and macOS the region is an anonymous private mapping, so it never
// counts against the Go heap and is returned to the OS on Close. Elsewhere it
// falls back to a heap slice.
package region

import (
	"math"

	"github.com/cockroachdb/errors"
)

// ErrClosed is returned when a closed region is used.
var ErrClosed = errors.New("region: closed")

// Region is a fixed-size, zero-initialized block of memory.
//
// NOT thread-safe.
type Region struct {
	data   []byte
	mapped bool
}

// Bytes returns the region's memory, or nil after Close.
func (r *Region) Bytes() []byte { return r.data }

// Size returns the region size in bytes, or 0 after Close.
func (r *Region) Size() uint64 { return uint64(len(r.data)) }

// Mapped reports whether the region is an OS mapping rather than heap memory.
func (r *Region) Mapped() bool { return r.mapped }

// Map acquires a region of size bytes.
func Map(size uint64) (*Region, error) {
	if size == 0 {
		return nil, errors.New("region: size must be non-zero")
	}
	if size > math.MaxInt {
		return nil, errors.Newf("region: size %d too large to map", size)
	}
	return mapRegion(int(size))
}

// Close releases the region. Closing twice returns ErrClosed.
func (r *Region) Close() error {
	if r.data == nil {
		return ErrClosed
	}
	err := unmapRegion(r)
	r.data = nil
	return err
}
