package alloc

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/enginemem/internal/buf"
	"github.com/joshuapare/enginemem/internal/logger"
	"github.com/joshuapare/enginemem/mem/freelist"
)

// DynamicOptions configures a Dynamic allocator.
type DynamicOptions struct {
	// NodeCapacity bounds the number of free fragments the allocator can
	// track. Must match the value passed to DynamicRequiredSize.
	// Default: 0 (freelist.DefaultCapacity of the tracked size)
	NodeCapacity int

	// Logger receives failure reports. Default: discard.
	Logger *slog.Logger
}

// DynamicRequiredSize returns the arena bytes NewDynamic consumes for a
// trackedSize-byte allocator: the free-list node pool plus the raw block.
// Returns 0 if the size overflows. It has no side effects.
func DynamicRequiredSize(trackedSize uint64, nodeCapacity int) uint64 {
	pool := freelist.RequiredSize(trackedSize, nodeCapacity)
	if pool == 0 {
		return 0
	}
	n, ok := buf.AddU64(pool, trackedSize)
	if !ok {
		return 0
	}
	return n
}

// Dynamic is a general-purpose allocator over one raw memory block. Placement
// is delegated to a freelist.Tracker covering [0, Size()).
//
// NOT thread-safe.
type Dynamic struct {
	mem []byte
	fl  *freelist.Tracker
	log *slog.Logger
}

// NewDynamic carves a node pool and a trackedSize-byte memory block from arena
// and builds an allocator over them. opts may be nil.
func NewDynamic(arena Arena, trackedSize uint64, opts *DynamicOptions) (*Dynamic, error) {
	if opts == nil {
		opts = &DynamicOptions{}
	}
	if arena == nil || trackedSize == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "alloc: dynamic needs an arena and a non-zero size")
	}

	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	slab, err := arena.Alloc(freelist.RequiredSize(trackedSize, opts.NodeCapacity))
	if err != nil {
		return nil, errors.Wrap(err, "alloc: dynamic node pool")
	}
	fl, err := freelist.New(trackedSize, opts.NodeCapacity, slab, freelist.WithLogger(log))
	if err != nil {
		return nil, classify(errors.Wrap(err, "alloc: dynamic free list"))
	}

	mem, err := arena.Alloc(trackedSize)
	if err != nil {
		return nil, errors.Wrap(err, "alloc: dynamic memory block")
	}

	return &Dynamic{mem: mem, fl: fl, log: log}, nil
}

// Alloc reserves size bytes. The memory is not zeroed.
func (d *Dynamic) Alloc(size uint64) (Block, error) {
	off, err := d.fl.Allocate(size)
	if err != nil {
		return Block{}, classify(errors.Wrapf(err, "alloc: dynamic allocate %d bytes", size))
	}
	end := off + size
	return Block{off: off, data: d.mem[off:end:end]}, nil
}

// Free releases b. b must have come from this allocator; a Block from any
// other allocator is rejected with ErrOutOfRange.
func (d *Dynamic) Free(b Block) error {
	if b.IsZero() {
		return errors.Wrap(ErrInvalidArgument, "alloc: free of zero block")
	}
	if !d.owns(b) {
		logger.Errorf(d.log, "alloc: trying to release block (off %d, %dB) outside of allocator range", b.off, b.Len())
		return errors.Wrapf(ErrOutOfRange, "alloc: free block at %d (%d bytes)", b.off, b.Len())
	}
	if err := d.fl.Free(b.off, b.Len()); err != nil {
		logger.Errorf(d.log, "alloc: dynamic free failed: %v", err)
		return classify(errors.Wrapf(err, "alloc: dynamic free %d bytes at %d", b.Len(), b.off))
	}
	return nil
}

// owns reports whether b's memory lies inside d.mem at b's recorded offset.
func (d *Dynamic) owns(b Block) bool {
	if _, err := buf.CheckRange(uint64(len(d.mem)), b.off, b.Len()); err != nil {
		return false
	}
	return &d.mem[b.off] == &b.data[0]
}

// FreeSpace returns the free bytes remaining across all fragments.
func (d *Dynamic) FreeSpace() uint64 { return d.fl.FreeSpace() }

// Size returns the size of the managed memory block.
func (d *Dynamic) Size() uint64 { return uint64(len(d.mem)) }

// Stats summarizes the underlying free list.
func (d *Dynamic) Stats() freelist.Stats { return d.fl.Stats() }

// Validate checks the underlying free list's invariants.
func (d *Dynamic) Validate() error { return d.fl.Validate() }
