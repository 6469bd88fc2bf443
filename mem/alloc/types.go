package alloc

// Arena supplies backing storage to components at construction time.
//
// Implementations:
//   - Bump: forward-only allocation from a fixed region
type Arena interface {
	// Alloc returns size bytes of storage owned by the arena.
	Alloc(size uint64) ([]byte, error)
}

// Block is a live allocation from a Dynamic allocator. The zero Block is
// invalid. A Block's length is fixed at allocation time and is the length
// Free releases.
type Block struct {
	off  uint64
	data []byte
}

// Bytes returns the block's memory. Its capacity equals its length, so an
// append never spills into a neighboring block.
func (b Block) Bytes() []byte { return b.data }

// Len returns the block size in bytes.
func (b Block) Len() uint64 { return uint64(len(b.data)) }

// Offset returns the block's offset inside the allocator's memory.
func (b Block) Offset() uint64 { return b.off }

// IsZero reports whether b is the zero Block.
func (b Block) IsZero() bool { return b.data == nil }
