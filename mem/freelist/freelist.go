package freelist

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/enginemem/internal/buf"
	"github.com/joshuapare/enginemem/internal/logger"
)

const (
	// minCapacity is the smallest default pool. A pool always needs at least
	// one slot to describe the initial free block.
	minCapacity = 20

	// bytesPerDefaultNode sets the default pool size relative to the tracked
	// space: one node per 192 tracked bytes.
	bytesPerDefaultNode = 192
)

// DefaultCapacity returns the node-pool capacity used when a caller passes 0.
func DefaultCapacity(trackedSize uint64) int {
	n := trackedSize / bytesPerDefaultNode
	if n < minCapacity {
		return minCapacity
	}
	return int(n)
}

// RequiredSize returns the slab size New needs for a tracker of trackedSize
// bytes with the given node capacity (0 = DefaultCapacity). It has no side
// effects.
func RequiredSize(trackedSize uint64, capacity int) uint64 {
	if capacity <= 0 {
		capacity = DefaultCapacity(trackedSize)
	}
	n, ok := buf.SlabSize(uint64(capacity), slotSize+indexSize)
	if !ok {
		return 0
	}
	return n
}

// Tracker is a first-fit free-list over [0, Size()).
//
// Invariant: FreeSpace() plus the lengths of all outstanding allocations
// equals Size().
//
// NOT thread-safe.
type Tracker struct {
	size uint64
	head ref
	pool pool
	log  *slog.Logger
}

// New builds a tracker for trackedSize bytes inside slab. capacity is the
// maximum number of free blocks the tracker can describe at once (0 =
// DefaultCapacity). slab must hold at least RequiredSize(trackedSize, capacity)
// bytes; only that prefix is used. The whole range starts free.
func New(trackedSize uint64, capacity int, slab []byte, opts ...Option) (*Tracker, error) {
	if trackedSize == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "freelist: tracked size must be non-zero")
	}
	if capacity <= 0 {
		capacity = DefaultCapacity(trackedSize)
	}
	need := RequiredSize(trackedSize, capacity)
	if need == 0 || uint64(len(slab)) < need {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"freelist: slab of %d bytes, need %d for %d nodes", len(slab), need, capacity)
	}

	t := &Tracker{
		size: trackedSize,
		pool: newPool(slab, capacity),
		log:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.Clear()
	return t, nil
}

// Size returns the tracked size in bytes.
func (t *Tracker) Size() uint64 { return t.size }

// Capacity returns the node-pool capacity.
func (t *Tracker) Capacity() int { return t.pool.capacity }

// LiveNodes returns the number of free blocks currently in the list.
func (t *Tracker) LiveNodes() int { return t.pool.live() }

// Allocate reserves size bytes from the first free block large enough and
// returns their offset. The bytes come off the front of that block.
func (t *Tracker) Allocate(size uint64) (uint64, error) {
	if size == 0 {
		return 0, errors.Wrap(ErrInvalidArgument, "freelist: allocate 0 bytes")
	}

	var prev ref
	for cur := t.head; cur != 0; prev, cur = cur, t.pool.next(cur) {
		length := t.pool.length(cur)
		if length < size {
			continue
		}

		off := t.pool.offset(cur)
		if length == size {
			t.unlink(prev, cur)
		} else {
			t.pool.setOffset(cur, off+size)
			t.pool.setLength(cur, length-size)
		}
		return off, nil
	}

	free := t.FreeSpace()
	logger.Warnf(t.log, "freelist: no block with enough free space found (requested: %dB, available: %dB)",
		size, free)
	return 0, errors.Wrapf(ErrNoSpace, "freelist: allocate %d bytes (free %d)", size, free)
}

// Free returns [off, off+size) to the free list, merging it with a free
// neighbor on either side. size must be the size passed to Allocate.
//
// A range that overlaps a free block is rejected with ErrDoubleFree. A range
// that touches no free neighbor needs a node; when none is left Free fails with
// ErrNodePoolExhausted and the list is unchanged.
func (t *Tracker) Free(off, size uint64) error {
	if size == 0 {
		return errors.Wrapf(ErrInvalidArgument, "freelist: free 0 bytes at %d", off)
	}
	end, err := buf.CheckRange(t.size, off, size)
	if err != nil {
		return errors.Wrapf(ErrOutOfRange, "freelist: free [%d,+%d) in %d bytes: %v", off, size, t.size, err)
	}

	// prev: last block starting before off. cur: first block starting at or after off.
	var prev ref
	cur := t.head
	for cur != 0 && t.pool.offset(cur) < off {
		prev, cur = cur, t.pool.next(cur)
	}

	if (prev != 0 && t.pool.end(prev) > off) || (cur != 0 && t.pool.offset(cur) < end) {
		logger.Warnf(t.log, "freelist: attempting to free already-freed block at %d (size %d)", off, size)
		return errors.Wrapf(ErrDoubleFree, "freelist: free [%d,%d)", off, end)
	}

	mergePrev := prev != 0 && t.pool.end(prev) == off
	mergeNext := cur != 0 && t.pool.offset(cur) == end

	switch {
	case mergePrev && mergeNext:
		t.pool.setLength(prev, t.pool.length(prev)+size+t.pool.length(cur))
		t.unlink(prev, cur)
	case mergePrev:
		t.pool.setLength(prev, t.pool.length(prev)+size)
	case mergeNext:
		t.pool.setOffset(cur, off)
		t.pool.setLength(cur, t.pool.length(cur)+size)
	default:
		n, ok := t.pool.acquire()
		if !ok {
			logger.Errorf(t.log, "freelist: no free node to record [%d,%d) (capacity %d)",
				off, end, t.pool.capacity)
			return errors.Wrapf(ErrNodePoolExhausted, "freelist: free [%d,%d) with %d/%d nodes live",
				off, end, t.pool.live(), t.pool.capacity)
		}
		t.pool.set(n, off, size, cur)
		t.link(prev, n)
	}
	return nil
}

// Resize grows the tracked space to newSize. The new bytes join the free
// block that ends at the old size, or form a new tail block if the old tail
// is allocated. Shrinking is rejected.
func (t *Tracker) Resize(newSize uint64) error {
	if newSize <= t.size {
		return errors.Wrapf(ErrInvalidArgument, "freelist: resize %d -> %d: only growth is supported",
			t.size, newSize)
	}
	delta := newSize - t.size

	var last ref
	for cur := t.head; cur != 0; cur = t.pool.next(cur) {
		last = cur
	}

	if last != 0 && t.pool.end(last) == t.size {
		t.pool.setLength(last, t.pool.length(last)+delta)
	} else {
		n, ok := t.pool.acquire()
		if !ok {
			return errors.Wrapf(ErrNodePoolExhausted, "freelist: resize %d -> %d needs a tail node",
				t.size, newSize)
		}
		t.pool.set(n, t.size, delta, 0)
		t.link(last, n)
	}

	t.size = newSize
	return nil
}

// Clear resets the tracker to a single free block spanning [0, Size()).
func (t *Tracker) Clear() {
	t.pool.reset()
	n, _ := t.pool.acquire()
	t.pool.set(n, 0, t.size, 0)
	t.head = n
}

// FreeSpace returns the sum of all free block lengths. Cost is proportional
// to the number of fragments.
func (t *Tracker) FreeSpace() uint64 {
	var total uint64
	for cur := t.head; cur != 0; cur = t.pool.next(cur) {
		total += t.pool.length(cur)
	}
	return total
}

// link inserts n after prev (or at the head when prev is 0).
func (t *Tracker) link(prev, n ref) {
	if prev == 0 {
		t.head = n
		return
	}
	t.pool.setNext(prev, n)
}

// unlink removes cur, whose predecessor is prev, and returns its slot.
func (t *Tracker) unlink(prev, cur ref) {
	next := t.pool.next(cur)
	if prev == 0 {
		t.head = next
	} else {
		t.pool.setNext(prev, next)
	}
	t.pool.release(cur)
}
