package memory

import (
	"log/slog"

	"github.com/joshuapare/enginemem/internal/format"
)

// Config sizes a System.
type Config struct {
	// TotalSize is the size of the dynamic allocator's memory block.
	// Default: 64 MiB
	TotalSize uint64

	// NodeCapacity bounds the number of free fragments the allocator can
	// track. Default: 0 (derived from TotalSize)
	NodeCapacity int
}

// DefaultConfig returns the configuration used when the engine is booted
// without overrides.
func DefaultConfig() Config {
	return Config{TotalSize: 64 * format.MiB}
}

// Option configures optional System behavior.
type Option func(*System)

// WithLogger routes warnings and failure reports to l. The same logger is
// handed to the dynamic allocator.
func WithLogger(l *slog.Logger) Option {
	return func(s *System) {
		if l != nil {
			s.log = l
		}
	}
}
