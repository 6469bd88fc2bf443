package freelist

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidArgument indicates a zero-length request, a short or nil slab,
	// or an attempted shrink.
	ErrInvalidArgument = errors.New("freelist: invalid argument")

	// ErrNoSpace indicates that no single free block is large enough.
	ErrNoSpace = errors.New("freelist: no free block large enough")

	// ErrNodePoolExhausted indicates that a free range needed a new node and
	// every slot in the pool is live.
	ErrNodePoolExhausted = errors.New("freelist: node pool exhausted")

	// ErrOutOfRange indicates a range that does not fit in the tracked space.
	ErrOutOfRange = errors.New("freelist: range out of bounds")

	// ErrDoubleFree indicates a freed range that overlaps an existing free block.
	ErrDoubleFree = errors.New("freelist: range already free")
)
