package bstr_test

import (
	"testing"

	"github.com/skyjson/skyjson/pkg/arena"
	"github.com/skyjson/skyjson/pkg/bstr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderPush(t *testing.T) {
	var sb bstr.Builder
	sb.Push('a')
	sb.Push('b')
	sb.Push('c')

	assert.Equal(t, 3, sb.Len())
	assert.Equal(t, "abc", sb.Build().String())
}

func TestBuilderPushString(t *testing.T) {
	var sb bstr.Builder
	sb.PushString(bstr.S("hello"))
	sb.Push(',')
	sb.PushString(bstr.S(" world"))

	assert.Equal(t, "hello, world", sb.Build().String())
}

func TestBuilderPushf(t *testing.T) {
	var sb bstr.Builder
	sb.Pushf("%s=%d", "count", 42)
	assert.Equal(t, "count=42", sb.Build().String())
}

func TestBuilderSentinelAbutsBuild(t *testing.T) {
	var sb bstr.Builder
	sb.PushString(bstr.S("hi"))

	s := sb.Build()
	require.Equal(t, 2, s.Len())
	// The backing storage keeps a NUL just past the end of the view.
	assert.Equal(t, byte(0), s[:3:3][2])
}

func TestBuilderEmpty(t *testing.T) {
	var sb bstr.Builder
	assert.Equal(t, 0, sb.Len())
	assert.Nil(t, sb.Build())

	sb.PushString(nil)
	assert.Equal(t, 0, sb.Len())
}

func TestBuildToArena(t *testing.T) {
	a := arena.New(64)
	var sb bstr.Builder
	sb.PushString(bstr.S("hello"))

	s, err := sb.BuildToArena(a)
	require.NoError(t, err)
	assert.Equal(t, "hello", s.String())
	// Content plus sentinel landed in the arena; builder storage is gone.
	assert.Equal(t, 6, a.Used())
	assert.Equal(t, 0, sb.Len())
	assert.Nil(t, sb.Build())
}

func TestBuildToArenaEmptyKeepsSentinel(t *testing.T) {
	a := arena.New(8)
	var sb bstr.Builder

	s, err := sb.BuildToArena(a)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	// A lone sentinel landed in the arena just past the view's end.
	assert.Equal(t, 1, a.Used())
	assert.Equal(t, byte(0), s[:1:1][0])
}

func TestBuildToArenaOverflowFreesBuilder(t *testing.T) {
	a := arena.New(2)
	var sb bstr.Builder
	sb.PushString(bstr.S("too long"))

	_, err := sb.BuildToArena(a)
	require.ErrorIs(t, err, arena.ErrOverflow)
	assert.Equal(t, 0, sb.Len(), "builder released on the error path")
}

func TestBuilderReuseAfterFree(t *testing.T) {
	var sb bstr.Builder
	sb.PushString(bstr.S("first"))
	sb.Free()
	sb.Free() // idempotent

	sb.PushString(bstr.S("second"))
	assert.Equal(t, "second", sb.Build().String())
}
