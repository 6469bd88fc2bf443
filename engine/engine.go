// Package engine owns the process-wide memory bootstrap.
//
// Boot maps one region, lays a bump arena over it, and builds the memory
// System from that arena. The returned Engine is the only handle to those
// pieces; there is no package-level state.
package engine

import (
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/enginemem/internal/buf"
	"github.com/joshuapare/enginemem/internal/logger"
	"github.com/joshuapare/enginemem/mem/alloc"
	"github.com/joshuapare/enginemem/mem/memory"
	"github.com/joshuapare/enginemem/mem/region"
)

// ErrShutdown is returned by Shutdown on an engine that is already down.
var ErrShutdown = errors.New("engine: already shut down")

// Options configures Boot.
type Options struct {
	// Memory sizes the memory System.
	Memory memory.Config

	// Headroom is extra arena space reserved after the memory System for
	// other bootstrap-time allocations. Default: 0
	Headroom uint64

	// Logger is shared by every component. Default: discard.
	Logger *slog.Logger
}

// DefaultOptions returns the options used by Boot when nothing is overridden.
func DefaultOptions() Options {
	return Options{Memory: memory.DefaultConfig()}
}

// RequiredSize returns the region size Boot maps for opts. It has no side
// effects and returns 0 if the size overflows.
func RequiredSize(opts Options) uint64 {
	n := memory.RequiredSize(opts.Memory)
	if n == 0 {
		return 0
	}
	total, ok := buf.AddU64(n, opts.Headroom)
	if !ok {
		return 0
	}
	return total
}

// Engine holds the bootstrap region and everything built on it.
//
// NOT thread-safe.
type Engine struct {
	region *region.Region
	arena  *alloc.Bump
	mem    *memory.System
	log    *slog.Logger
}

// Boot builds the memory stack described by opts. On failure everything built
// so far is released and the error is returned.
func Boot(opts Options) (*Engine, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	size := RequiredSize(opts)
	if size == 0 {
		logger.Fatalf(log, "engine: invalid memory configuration %+v", opts.Memory)
		return nil, errors.Wrapf(alloc.ErrInvalidArgument, "engine: memory configuration %+v", opts.Memory)
	}

	r, err := region.Map(size)
	if err != nil {
		logger.Fatalf(log, "engine: unable to map %dB bootstrap region: %v", size, err)
		return nil, errors.Wrap(err, "engine: map bootstrap region")
	}

	arena, err := alloc.NewBump(r.Bytes(), alloc.WithBumpLogger(log))
	if err != nil {
		logger.Fatalf(log, "engine: unable to create bootstrap arena: %v", err)
		_ = r.Close()
		return nil, errors.Wrap(err, "engine: create bootstrap arena")
	}

	mem, err := memory.New(arena, opts.Memory, memory.WithLogger(log))
	if err != nil {
		logger.Fatalf(log, "engine: unable to initialize memory system: %v", err)
		_ = r.Close()
		return nil, errors.Wrap(err, "engine: initialize memory system")
	}

	logger.Debugf(log, "engine: booted with %dB region (mapped=%t)", r.Size(), r.Mapped())
	return &Engine{region: r, arena: arena, mem: mem, log: log}, nil
}

// Memory returns the memory System, or nil after Shutdown.
func (e *Engine) Memory() *memory.System { return e.mem }

// Arena returns the bootstrap arena. Space left in it after Boot is the
// configured headroom.
func (e *Engine) Arena() *alloc.Bump { return e.arena }

// RegionSize returns the size of the mapped bootstrap region, or 0 after
// Shutdown.
func (e *Engine) RegionSize() uint64 {
	if e.region == nil {
		return 0
	}
	return e.region.Size()
}

// Shutdown tears the stack down in reverse order of Boot. A second call
// returns ErrShutdown.
func (e *Engine) Shutdown() error {
	if e.mem == nil {
		return ErrShutdown
	}

	var errs error
	if err := e.mem.Shutdown(); err != nil {
		errs = errors.CombineErrors(errs, errors.Wrap(err, "engine: shut down memory system"))
	}
	e.mem = nil

	e.arena.FreeAll()
	e.arena = nil

	if err := e.region.Close(); err != nil {
		errs = errors.CombineErrors(errs, errors.Wrap(err, "engine: unmap bootstrap region"))
	}
	e.region = nil

	if errs != nil {
		logger.Errorf(e.log, "engine: shutdown: %v", errs)
	}
	return errs
}
