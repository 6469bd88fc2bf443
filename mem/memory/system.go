package memory

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/enginemem/internal/logger"
	"github.com/joshuapare/enginemem/mem/alloc"
)

var (
	// ErrInvalidTag indicates a Tag outside [TagUnknown, TagMax).
	ErrInvalidTag = errors.New("memory: invalid tag")

	// ErrShutdown indicates use of a System after Shutdown.
	ErrShutdown = errors.New("memory: system is shut down")
)

// Block is a tagged allocation returned by System.Allocate.
type Block struct {
	alloc.Block
	tag Tag
}

// Tag returns the tag the block was allocated under.
func (b Block) Tag() Tag { return b.tag }

// RequiredSize returns the arena bytes New consumes for cfg. It has no side
// effects and returns 0 if cfg has no TotalSize or the size overflows.
func RequiredSize(cfg Config) uint64 {
	if cfg.TotalSize == 0 {
		return 0
	}
	return alloc.DynamicRequiredSize(cfg.TotalSize, cfg.NodeCapacity)
}

// System is the tagged allocation facade. See the package documentation.
//
// NOT thread-safe.
type System struct {
	cfg Config
	dyn *alloc.Dynamic
	log *slog.Logger

	// Byte counters. Signed so that a failed Free, which leaves the counters
	// decremented, shows up as a negative value instead of wrapping.
	tagged [TagMax]int64
	total  int64

	allocCount uint64 // monotonic
	freeCount  uint64
}

// New builds a System whose dynamic allocator is carved from arena. The arena
// must have at least RequiredSize(cfg) bytes left.
func New(arena alloc.Arena, cfg Config, opts ...Option) (*System, error) {
	s := &System{cfg: cfg, log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}

	if cfg.TotalSize == 0 {
		logger.Fatalf(s.log, "memory: system created with zero total size")
		return nil, errors.Wrap(alloc.ErrInvalidArgument, "memory: total size must be non-zero")
	}

	dyn, err := alloc.NewDynamic(arena, cfg.TotalSize, &alloc.DynamicOptions{
		NodeCapacity: cfg.NodeCapacity,
		Logger:       s.log,
	})
	if err != nil {
		logger.Fatalf(s.log, "memory: system is unable to set up internal allocator: %v", err)
		return nil, errors.Wrap(err, "memory: create dynamic allocator")
	}
	s.dyn = dyn
	return s, nil
}

// Allocate returns size zeroed bytes accounted under tag.
//
// TagUnknown is accepted but logs a warning. Allocation failure is logged at
// fatal severity and returned; nothing is retried.
func (s *System) Allocate(size uint64, tag Tag) (Block, error) {
	if s.dyn == nil {
		return Block{}, ErrShutdown
	}
	if !tag.Valid() {
		return Block{}, errors.Wrapf(ErrInvalidTag, "memory: allocate with tag %d", tag)
	}
	if tag == TagUnknown {
		logger.Warnf(s.log, "memory: allocate called using TagUnknown, re-class this allocation")
	}

	b, err := s.dyn.Alloc(size)
	if err != nil {
		logger.Fatalf(s.log, "memory: allocate failed for %dB (%s): %v", size, tag, err)
		return Block{}, errors.Wrapf(err, "memory: allocate %d bytes (%s)", size, tag)
	}
	clear(b.Bytes())

	s.tagged[tag] += int64(size)
	s.total += int64(size)
	s.allocCount++
	return Block{Block: b, tag: tag}, nil
}

// Free releases b and subtracts its size from its tag's counter.
//
// The counters are adjusted before the allocator sees the block. If the
// allocator rejects it, the failure is logged at fatal severity and returned
// and the counters stay decremented.
func (s *System) Free(b Block) error {
	if s.dyn == nil {
		return ErrShutdown
	}
	if b.IsZero() {
		return errors.Wrap(alloc.ErrInvalidArgument, "memory: free of zero block")
	}

	size := int64(b.Len())
	s.tagged[b.tag] -= size
	s.total -= size
	s.freeCount++

	if err := s.dyn.Free(b.Block); err != nil {
		logger.Fatalf(s.log, "memory: free failed for %dB (%s): %v", b.Len(), b.tag, err)
		return errors.Wrapf(err, "memory: free %d bytes (%s)", b.Len(), b.tag)
	}
	return nil
}

// Set fills dst with v.
func Set(dst []byte, v byte) {
	for i := range dst {
		dst[i] = v
	}
}

// Zero clears dst.
func Zero(dst []byte) { clear(dst) }

// Copy copies src into dst and returns the number of bytes copied.
func Copy(dst, src []byte) int { return copy(dst, src) }

// AllocationCount returns the number of successful allocations. It never
// decreases.
func (s *System) AllocationCount() uint64 { return s.allocCount }

// FreeCount returns the number of Free calls that got past argument checks,
// including ones the allocator rejected.
func (s *System) FreeCount() uint64 { return s.freeCount }

// TaggedBytes returns the bytes currently accounted under tag.
func (s *System) TaggedBytes(tag Tag) int64 {
	if !tag.Valid() {
		return 0
	}
	return s.tagged[tag]
}

// TotalBytes returns the bytes currently accounted across all tags.
func (s *System) TotalBytes() int64 { return s.total }

// Config returns the configuration the System was built with.
func (s *System) Config() Config { return s.cfg }

// Allocator exposes the underlying dynamic allocator for diagnostics. It is
// nil after Shutdown.
func (s *System) Allocator() *alloc.Dynamic { return s.dyn }

// Validate checks the allocator's free list and that the per-tag counters sum
// to the total.
func (s *System) Validate() error {
	if s.dyn == nil {
		return ErrShutdown
	}
	var sum int64
	for _, n := range s.tagged {
		sum += n
	}
	if sum != s.total {
		return errors.Newf("memory: tag counters sum to %d, total is %d", sum, s.total)
	}
	return s.dyn.Validate()
}

// Shutdown releases the allocator. Any further call returns ErrShutdown;
// Blocks handed out earlier must not be used.
func (s *System) Shutdown() error {
	if s.dyn == nil {
		return ErrShutdown
	}
	s.dyn = nil
	return nil
}
