package freelist

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/enginemem/internal/buf"
)

// Stats is a point-in-time summary of a tracker.
type Stats struct {
	TrackedSize  uint64 // Size of the tracked space
	FreeBytes    uint64 // Sum of free block lengths
	Fragments    int    // Number of free blocks
	LargestFree  uint64 // Length of the largest free block
	LiveNodes    int    // Pool slots in use (== Fragments)
	NodeCapacity int    // Pool capacity
}

// Stats walks the free list once and summarizes it.
func (t *Tracker) Stats() Stats {
	s := Stats{
		TrackedSize:  t.size,
		LiveNodes:    t.pool.live(),
		NodeCapacity: t.pool.capacity,
	}
	for cur := t.head; cur != 0; cur = t.pool.next(cur) {
		length := t.pool.length(cur)
		s.FreeBytes += length
		s.Fragments++
		if length > s.LargestFree {
			s.LargestFree = length
		}
	}
	return s
}

// Walk calls fn for each free block in offset order. Walking stops at the
// first error, which is returned.
func (t *Tracker) Walk(fn func(off, length uint64) error) error {
	for cur := t.head; cur != 0; cur = t.pool.next(cur) {
		if err := fn(t.pool.offset(cur), t.pool.length(cur)); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the structural invariants of the list and the node pool:
// strictly increasing, non-overlapping, non-adjacent, in-bounds blocks; every
// listed slot live; every stacked slot free and listed once.
func (t *Tracker) Validate() error {
	p := &t.pool
	listed := make([]bool, p.capacity)

	count := 0
	var prevEnd uint64
	for cur := t.head; cur != 0; cur = p.next(cur) {
		if cur.slot() >= p.capacity {
			return errors.Newf("freelist: node %d outside pool of %d", cur.slot(), p.capacity)
		}
		if listed[cur.slot()] {
			return errors.Newf("freelist: cycle at node %d", cur.slot())
		}
		listed[cur.slot()] = true
		count++

		if p.state(cur) != stateLive {
			return errors.Newf("freelist: listed node %d is not live", cur.slot())
		}

		off, length := p.offset(cur), p.length(cur)
		if length == 0 {
			return errors.Newf("freelist: empty block at %d", off)
		}
		if _, err := buf.CheckRange(t.size, off, length); err != nil {
			return errors.Newf("freelist: block [%d,+%d) outside %d bytes: %v", off, length, t.size, err)
		}
		if count > 1 && off <= prevEnd {
			// off == prevEnd means two adjacent blocks that should have merged.
			return errors.Newf("freelist: block at %d not after previous end %d", off, prevEnd)
		}
		prevEnd = off + length
	}

	if count != p.live() {
		return errors.Newf("freelist: %d listed blocks but %d live slots", count, p.live())
	}

	for i := 0; i < p.top; i++ {
		idx := int(buf.U32At(p.stack, i*indexSize))
		if idx >= p.capacity {
			return errors.Newf("freelist: stacked index %d outside pool of %d", idx, p.capacity)
		}
		if listed[idx] {
			return errors.Newf("freelist: slot %d is both listed and stacked", idx)
		}
		listed[idx] = true
		if p.state(ref(idx+1)) != stateFree {
			return errors.Newf("freelist: stacked slot %d is live", idx)
		}
	}
	return nil
}

// String renders the free list for debugging, e.g. "[0,300) [500,1024)".
func (t *Tracker) String() string {
	out := ""
	for cur := t.head; cur != 0; cur = t.pool.next(cur) {
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf("[%d,%d)", t.pool.offset(cur), t.pool.end(cur))
	}
	if out == "" {
		return "(full)"
	}
	return out
}
