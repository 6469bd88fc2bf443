package freelist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestTracker builds a tracker over size bytes with its own slab.
func newTestTracker(t testing.TB, size uint64, capacity int) *Tracker {
	t.Helper()
	slab := make([]byte, RequiredSize(size, capacity))
	fl, err := New(size, capacity, slab)
	require.NoError(t, err)
	return fl
}

// mustAllocate allocates and asserts the returned offset.
func mustAllocate(t testing.TB, fl *Tracker, size, wantOff uint64) {
	t.Helper()
	off, err := fl.Allocate(size)
	require.NoError(t, err, "Allocate(%d)", size)
	require.Equal(t, wantOff, off, "Allocate(%d) offset", size)
}

// requireValid asserts the structural invariants.
func requireValid(t testing.TB, fl *Tracker) {
	t.Helper()
	require.NoError(t, fl.Validate(), "free list: %s", fl)
}
