package alloc

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/enginemem/internal/logger"
)

// Bump is a forward-only allocator over a fixed region. It is the arena
// engine bootstrap uses to hand sub-regions to every other subsystem.
//
// Key characteristics:
//   - O(1) allocation: advance the offset, return the slice behind it
//   - No per-allocation free; FreeAll is the only way to reclaim memory
//   - FreeAll zero-fills the whole region
//
// NOT thread-safe.
type Bump struct {
	mem []byte

	// offset is where the next allocation starts.
	offset uint64

	log *slog.Logger
}

// BumpOption configures a Bump.
type BumpOption func(*Bump)

// WithBumpLogger sets the logger used for allocation failures.
func WithBumpLogger(l *slog.Logger) BumpOption {
	return func(b *Bump) {
		if l != nil {
			b.log = l
		}
	}
}

// NewBump creates a bump allocator over mem. The allocator does not copy mem;
// callers must keep it alive for the allocator's lifetime.
func NewBump(mem []byte, opts ...BumpOption) (*Bump, error) {
	if len(mem) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "alloc: bump region is empty")
	}
	b := &Bump{
		mem: mem,
		log: logger.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Alloc returns the next size bytes of the region and advances the offset.
// The returned slice's capacity equals its length.
func (b *Bump) Alloc(size uint64) ([]byte, error) {
	if size == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "alloc: bump allocate 0 bytes")
	}

	remaining := b.Remaining()
	if size > remaining {
		logger.Errorf(b.log, "alloc: bump tried to allocate %dB, only %dB remaining", size, remaining)
		return nil, errors.Wrapf(ErrNoSpace, "alloc: bump allocate %d bytes (%d remaining)", size, remaining)
	}

	start := b.offset
	b.offset += size
	return b.mem[start:b.offset:b.offset], nil
}

// FreeAll rewinds the allocator to the start of the region and zero-fills it.
// Every slice previously returned by Alloc is invalidated.
func (b *Bump) FreeAll() {
	b.offset = 0
	clear(b.mem)
}

// Size returns the region size in bytes.
func (b *Bump) Size() uint64 { return uint64(len(b.mem)) }

// Used returns the number of bytes handed out since the last FreeAll.
func (b *Bump) Used() uint64 { return b.offset }

// Remaining returns the bytes still available.
func (b *Bump) Remaining() uint64 { return uint64(len(b.mem)) - b.offset }

// Compile-time interface check
var _ Arena = (*Bump)(nil)
