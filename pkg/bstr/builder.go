package bstr

import (
	"fmt"

	"github.com/skyjson/skyjson/pkg/arena"
	"github.com/skyjson/skyjson/pkg/buffer"
)

// Builder accumulates bytes for a Str. Invariant: whenever the builder
// is non-empty, the last stored byte is a NUL sentinel; every append
// overwrites the old sentinel and re-appends a fresh one. The zero value
// is an empty builder ready for use.
type Builder struct {
	buf buffer.Buffer[byte]
}

// Push appends one content byte.
func (sb *Builder) Push(c byte) {
	if sb.buf.Len() == 0 {
		sb.buf.Append(c, 0)
		return
	}
	sb.buf.View()[sb.buf.Len()-1] = c
	sb.buf.Push(0)
}

// PushString appends the content bytes of s, trimming the existing
// sentinel first and re-terminating afterwards.
func (sb *Builder) PushString(s Str) {
	if len(s) == 0 {
		return
	}
	if sb.buf.Len() != 0 {
		sb.buf.Truncate(sb.buf.Len() - 1)
	}
	sb.buf.Append(s...)
	sb.buf.Push(0)
}

// Pushf renders the formatted string into scratch space and forwards it
// to PushString.
func (sb *Builder) Pushf(format string, args ...any) {
	sb.PushString(fmt.Appendf(nil, format, args...))
}

// Len reports the content length, excluding the sentinel.
func (sb *Builder) Len() int {
	if sb.buf.Len() == 0 {
		return 0
	}
	return sb.buf.Len() - 1
}

// Build returns a Str aliasing the builder's storage, excluding the
// sentinel that still abuts its end. Ownership passes to the caller: the
// builder must not be appended to afterwards without a Free.
//
// An empty builder owns no storage and returns nil with no sentinel;
// BuildToArena is the sentinel-preserving path for that case.
func (sb *Builder) Build() Str {
	if sb.buf.Len() == 0 {
		return nil
	}
	return Str(sb.buf.View()[:sb.buf.Len()-1])
}

// BuildToArena copies the content and its sentinel into the arena and
// frees the builder, yielding a Str with arena lifetime and no further
// release obligation. The builder is freed even when the copy fails.
// An empty builder yields a zero-length Str backed by a lone arena
// sentinel, so every built string has a terminator just past its end.
func (sb *Builder) BuildToArena(a *arena.Arena) (Str, error) {
	if sb.buf.Len() == 0 {
		dst, err := a.Copy([]byte{0})
		if err != nil {
			return nil, err
		}
		return Str(dst[:0]), nil
	}
	dst, err := a.Copy(sb.buf.View())
	if err != nil {
		sb.buf.Free()
		return nil, err
	}
	sb.buf.Free()
	return Str(dst[:len(dst)-1]), nil
}

// Free releases the builder's storage. Safe to call repeatedly.
func (sb *Builder) Free() {
	sb.buf.Free()
}
