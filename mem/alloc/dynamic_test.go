package alloc

import (
	"math/rand"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/enginemem/mem/freelist"
)

// newTestDynamic sizes a bump arena exactly and builds a Dynamic from it.
func newTestDynamic(t testing.TB, size uint64, nodes int) (*Dynamic, *Bump) {
	t.Helper()
	arena, err := NewBump(make([]byte, DynamicRequiredSize(size, nodes)))
	require.NoError(t, err)
	d, err := NewDynamic(arena, size, &DynamicOptions{NodeCapacity: nodes})
	require.NoError(t, err)
	return d, arena
}

func TestDynamic_RequiredSizeConsumesArenaExactly(t *testing.T) {
	d, arena := newTestDynamic(t, 4096, 16)
	assert.Zero(t, arena.Remaining(), "the size query must cover everything NewDynamic carves")
	assert.Equal(t, uint64(4096), d.Size())
	assert.Equal(t, freelist.RequiredSize(4096, 16)+4096, DynamicRequiredSize(4096, 16))
}

func TestDynamic_ShortArena(t *testing.T) {
	arena, err := NewBump(make([]byte, DynamicRequiredSize(4096, 16)-1))
	require.NoError(t, err)

	_, err = NewDynamic(arena, 4096, &DynamicOptions{NodeCapacity: 16})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSpace))
}

// TestDynamic_FullBlockBlocksFurtherAllocs: a 64-byte allocator holds exactly one 64-byte block.
func TestDynamic_FullBlockBlocksFurtherAllocs(t *testing.T) {
	d, _ := newTestDynamic(t, 64, 0)

	b, err := d.Alloc(64)
	require.NoError(t, err)
	require.Equal(t, uint64(64), b.Len())

	_, err = d.Alloc(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSpace))
	assert.True(t, errors.Is(err, freelist.ErrNoSpace), "freelist identity is preserved")

	require.NoError(t, d.Free(b))

	b2, err := d.Alloc(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), b2.Offset())
}

func TestDynamic_BlocksStayInRange(t *testing.T) {
	d, _ := newTestDynamic(t, 1024, 0)

	a, err := d.Alloc(100)
	require.NoError(t, err)
	b, err := d.Alloc(200)
	require.NoError(t, err)

	assert.Same(t, &d.mem[0], &a.Bytes()[0])
	assert.Same(t, &d.mem[100], &b.Bytes()[0])
	assert.Equal(t, 100, cap(a.Bytes()))

	// Writes through one block never touch the other.
	for i := range a.Bytes() {
		a.Bytes()[i] = 0xAA
	}
	for _, v := range b.Bytes() {
		require.Zero(t, v)
	}
}

func TestDynamic_FreeForeignBlock(t *testing.T) {
	d1, _ := newTestDynamic(t, 1024, 0)
	d2, _ := newTestDynamic(t, 1024, 0)

	b, err := d2.Alloc(64)
	require.NoError(t, err)

	err = d1.Free(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.Equal(t, uint64(1024), d1.FreeSpace(), "rejected free must not touch the tracker")

	err = d1.Free(Block{})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestDynamic_DoubleFree(t *testing.T) {
	d, _ := newTestDynamic(t, 1024, 0)

	b, err := d.Alloc(64)
	require.NoError(t, err)
	require.NoError(t, d.Free(b))

	err = d.Free(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDoubleFree))
}

func TestDynamic_NodePoolExhausted(t *testing.T) {
	d, _ := newTestDynamic(t, 500, 2)

	var blocks []Block
	for range 5 {
		b, err := d.Alloc(100)
		require.NoError(t, err)
		blocks = append(blocks, b)
	}

	// Two isolated fragments take both slots.
	require.NoError(t, d.Free(blocks[0]))
	require.NoError(t, d.Free(blocks[2]))

	err := d.Free(blocks[4])
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNodePoolExhausted))
	assert.True(t, errors.Is(err, freelist.ErrNodePoolExhausted))
	assert.False(t, errors.Is(err, ErrNoSpace))
	assert.Equal(t, uint64(200), d.FreeSpace())

	// blocks[1] bridges the two fragments, which releases a slot.
	require.NoError(t, d.Free(blocks[1]))
	require.NoError(t, d.Free(blocks[4]))
	require.NoError(t, d.Free(blocks[3]))
	assert.Equal(t, uint64(500), d.FreeSpace())
	require.NoError(t, d.Validate())
}

// TestDynamic_Conservation runs random traffic and frees everything.
func TestDynamic_Conservation(t *testing.T) {
	d, _ := newTestDynamic(t, 32*1024, 0)
	rng := rand.New(rand.NewSource(42))

	var live []Block
	for range 500 {
		if len(live) > 0 && rng.Intn(2) == 0 {
			i := rng.Intn(len(live))
			require.NoError(t, d.Free(live[i]))
			live = append(live[:i], live[i+1:]...)
			continue
		}
		b, err := d.Alloc(uint64(1 + rng.Intn(512)))
		if err != nil {
			require.True(t, errors.Is(err, ErrNoSpace), "%v", err)
			continue
		}
		live = append(live, b)
	}

	for _, b := range live {
		require.NoError(t, d.Free(b))
	}
	assert.Equal(t, d.Size(), d.FreeSpace())
	assert.Equal(t, 1, d.Stats().Fragments)
	require.NoError(t, d.Validate())
}
