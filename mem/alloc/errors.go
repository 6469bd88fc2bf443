package alloc

import (
	"github.com/cockroachdb/errors"

	"github.com/joshuapare/enginemem/mem/freelist"
)

var (
	// ErrInvalidArgument indicates a zero-length request, an empty region, or
	// a zero Block.
	ErrInvalidArgument = errors.New("alloc: invalid argument")

	// ErrNoSpace indicates that no single free range is large enough.
	ErrNoSpace = errors.New("alloc: no space")

	// ErrNodePoolExhausted indicates that the free-list node pool is full.
	ErrNodePoolExhausted = errors.New("alloc: free-list node pool exhausted")

	// ErrOutOfRange indicates a Block that does not belong to the allocator.
	ErrOutOfRange = errors.New("alloc: block outside allocator range")

	// ErrDoubleFree indicates a Block that is already free.
	ErrDoubleFree = errors.New("alloc: block already free")
)

// classify marks a freelist error with the matching alloc sentinel so callers
// can test against either package's errors.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, freelist.ErrNoSpace):
		return errors.Mark(err, ErrNoSpace)
	case errors.Is(err, freelist.ErrNodePoolExhausted):
		return errors.Mark(err, ErrNodePoolExhausted)
	case errors.Is(err, freelist.ErrOutOfRange):
		return errors.Mark(err, ErrOutOfRange)
	case errors.Is(err, freelist.ErrDoubleFree):
		return errors.Mark(err, ErrDoubleFree)
	case errors.Is(err, freelist.ErrInvalidArgument):
		return errors.Mark(err, ErrInvalidArgument)
	default:
		return err
	}
}
