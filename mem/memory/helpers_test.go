package memory

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/enginemem/internal/logger"
	"github.com/joshuapare/enginemem/mem/alloc"
)

// newTestSystem builds a System over an exactly sized arena and captures its
// log output.
func newTestSystem(t testing.TB, cfg Config) (*System, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	arena, err := alloc.NewBump(make([]byte, RequiredSize(cfg)))
	require.NoError(t, err)
	s, err := New(arena, cfg, WithLogger(testLogger(t, &logs)))
	require.NoError(t, err)
	require.Zero(t, arena.Remaining())
	return s, &logs
}

func mustAllocate(t testing.TB, s *System, size uint64, tag Tag) Block {
	t.Helper()
	b, err := s.Allocate(size, tag)
	require.NoError(t, err)
	return b
}

func testLogger(t testing.TB, w *bytes.Buffer) *slog.Logger {
	t.Helper()
	l, _, err := logger.New(logger.Options{Enabled: true, Level: slog.LevelDebug, Writer: w})
	require.NoError(t, err)
	return l
}
