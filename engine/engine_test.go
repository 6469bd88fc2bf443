package engine

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/enginemem/internal/logger"
	"github.com/joshuapare/enginemem/mem/alloc"
	"github.com/joshuapare/enginemem/mem/memory"
)

func smallOptions() Options {
	return Options{Memory: memory.Config{TotalSize: 64 << 10, NodeCapacity: 128}}
}

func TestRequiredSize(t *testing.T) {
	opts := smallOptions()
	base := memory.RequiredSize(opts.Memory)
	assert.Equal(t, base, RequiredSize(opts))

	opts.Headroom = 4096
	assert.Equal(t, base+4096, RequiredSize(opts))

	opts.Headroom = ^uint64(0)
	assert.Zero(t, RequiredSize(opts), "overflow reports 0")

	assert.Zero(t, RequiredSize(Options{}))
}

func TestBoot_Shutdown(t *testing.T) {
	e, err := Boot(smallOptions())
	require.NoError(t, err)

	assert.Equal(t, RequiredSize(smallOptions()), e.RegionSize())
	assert.Zero(t, e.Arena().Remaining(), "no headroom configured")

	sys := e.Memory()
	require.NotNil(t, sys)
	b, err := sys.Allocate(100, memory.TagString)
	require.NoError(t, err)
	assert.Equal(t, int64(100), sys.TaggedBytes(memory.TagString))
	require.NoError(t, sys.Free(b))
	require.NoError(t, sys.Validate())

	require.NoError(t, e.Shutdown())
	assert.Nil(t, e.Memory())
	assert.Zero(t, e.RegionSize())

	assert.ErrorIs(t, e.Shutdown(), ErrShutdown)
}

func TestBoot_Headroom(t *testing.T) {
	opts := smallOptions()
	opts.Headroom = 1024

	e, err := Boot(opts)
	require.NoError(t, err)
	defer e.Shutdown()

	assert.Equal(t, uint64(1024), e.Arena().Remaining())
	scratch, err := e.Arena().Alloc(1024)
	require.NoError(t, err)
	assert.Len(t, scratch, 1024)
}

func TestBoot_InvalidConfig(t *testing.T) {
	var logs bytes.Buffer
	l, _, err := logger.New(logger.Options{Enabled: true, Level: slog.LevelDebug, Writer: &logs})
	require.NoError(t, err)

	_, err = Boot(Options{Logger: l})
	require.Error(t, err)
	assert.True(t, errors.Is(err, alloc.ErrInvalidArgument))
	assert.Contains(t, logs.String(), "level=FATAL")
}

func TestBoot_LogsAtDebug(t *testing.T) {
	var logs bytes.Buffer
	l, _, err := logger.New(logger.Options{Enabled: true, Level: slog.LevelDebug, Writer: &logs})
	require.NoError(t, err)

	opts := smallOptions()
	opts.Logger = l
	e, err := Boot(opts)
	require.NoError(t, err)
	require.NoError(t, e.Shutdown())

	assert.Contains(t, logs.String(), "engine: booted")
	assert.NotContains(t, logs.String(), "level=FATAL")
}
