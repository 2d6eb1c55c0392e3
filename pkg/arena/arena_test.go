package arena_test

import (
	"testing"

	"github.com/skyjson/skyjson/pkg/arena"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocWithinCapacity(t *testing.T) {
	a := arena.New(64)

	b1, err := a.Alloc(16)
	require.NoError(t, err)
	assert.Len(t, b1, 16)
	assert.Equal(t, 16, a.Used())

	b2, err := a.Alloc(48)
	require.NoError(t, err)
	assert.Len(t, b2, 48)
	assert.Equal(t, 64, a.Used())
	assert.Equal(t, 0, a.Remaining())
}

func TestAllocOverflowLeavesUsedUnchanged(t *testing.T) {
	a := arena.New(32)

	_, err := a.Alloc(20)
	require.NoError(t, err)

	// 13 > 32-20: must fail without moving the mark.
	_, err = a.Alloc(13)
	require.ErrorIs(t, err, arena.ErrOverflow)
	assert.Equal(t, 20, a.Used())

	// The exact remainder still fits.
	_, err = a.Alloc(12)
	require.NoError(t, err)
	assert.Equal(t, 32, a.Used())
}

func TestAllocZeroLength(t *testing.T) {
	a := arena.New(8)
	b, err := a.Alloc(0)
	require.NoError(t, err)
	assert.Empty(t, b)
	assert.Equal(t, 0, a.Used())
}

func TestReset(t *testing.T) {
	a := arena.New(16)
	_, err := a.Alloc(16)
	require.NoError(t, err)
	_, err = a.Alloc(1)
	require.ErrorIs(t, err, arena.ErrOverflow)

	a.Reset()
	assert.Equal(t, 0, a.Used())

	b, err := a.Alloc(16)
	require.NoError(t, err)
	assert.Len(t, b, 16)
}

func TestCopy(t *testing.T) {
	a := arena.New(64)
	src := []byte("hello")

	dst, err := a.Copy(src)
	require.NoError(t, err)
	assert.Equal(t, src, dst)
	assert.Equal(t, len(src), a.Used())

	// The copy is independent of the source.
	src[0] = 'H'
	assert.Equal(t, byte('h'), dst[0])
}

func TestCopyOverflow(t *testing.T) {
	a := arena.New(4)
	_, err := a.Copy([]byte("hello"))
	require.ErrorIs(t, err, arena.ErrOverflow)
	assert.Equal(t, 0, a.Used())
}

func TestDefaultCapacity(t *testing.T) {
	a := arena.New(0)
	assert.Equal(t, arena.DefaultCapacity, a.Capacity())

	a = arena.New(-1)
	assert.Equal(t, arena.DefaultCapacity, a.Capacity())
}

func TestMakeChargesCapacity(t *testing.T) {
	a := arena.New(64)

	s, err := arena.Make[int64](a, 4)
	require.NoError(t, err)
	assert.Len(t, s, 4)
	assert.Equal(t, 32, a.Used())

	// 5 more int64s would need 40 bytes, only 32 remain.
	_, err = arena.Make[int64](a, 5)
	require.ErrorIs(t, err, arena.ErrOverflow)
	assert.Equal(t, 32, a.Used())

	_, err = arena.Make[int64](a, 4)
	require.NoError(t, err)
	assert.Equal(t, 64, a.Used())
}

func TestMakeZeroLength(t *testing.T) {
	a := arena.New(8)
	s, err := arena.Make[byte](a, 0)
	require.NoError(t, err)
	assert.Empty(t, s)
	assert.Equal(t, 0, a.Used())
}
