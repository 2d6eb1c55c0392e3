// Package buffer provides a growable, exclusively-owned container used to
// accumulate elements before they are drained into an arena.
package buffer

import "github.com/skyjson/skyjson/pkg/arena"

// minCapacity is the floor applied when a zero-capacity buffer first grows.
const minCapacity = 16

// Buffer is a growable container of T. The zero value is an empty buffer
// ready for use. A Buffer is owned by whoever holds it and must be
// released with Free (or Drain, which frees it as a side effect).
type Buffer[T any] struct {
	data []T
	n    int
}

// Push appends a single element, growing the backing store to
// max(cap*2, 16) when full. Previous contents are preserved.
func (b *Buffer[T]) Push(v T) {
	if b.n == len(b.data) {
		b.grow(0)
	}
	b.data[b.n] = v
	b.n++
}

// Append appends all of vs, growing the backing store to
// max(cap*2, 16) + len(vs) when it would not fit.
func (b *Buffer[T]) Append(vs ...T) {
	if b.n+len(vs) > len(b.data) {
		b.grow(len(vs))
	}
	copy(b.data[b.n:], vs)
	b.n += len(vs)
}

// grow reallocates the backing store. extra is the bulk reserve added on
// top of the doubled capacity for Append.
func (b *Buffer[T]) grow(extra int) {
	newCap := len(b.data) * 2
	if newCap < minCapacity {
		newCap = minCapacity
	}
	newCap += extra
	next := make([]T, newCap)
	copy(next, b.data[:b.n])
	b.data = next
}

// Len reports the element count.
func (b *Buffer[T]) Len() int {
	return b.n
}

// Cap reports the element capacity.
func (b *Buffer[T]) Cap() int {
	return len(b.data)
}

// View returns a non-owning slice of the current contents, valid only
// until the buffer grows, is truncated, or is freed.
func (b *Buffer[T]) View() []T {
	return b.data[:b.n]
}

// Truncate shortens the buffer to n elements. It panics if n is negative
// or beyond the current length.
func (b *Buffer[T]) Truncate(n int) {
	if n < 0 || n > b.n {
		panic("buffer: truncate out of range")
	}
	b.n = n
}

// Free releases the backing store and resets the buffer to its zero
// state, so calling Free again is a no-op.
func (b *Buffer[T]) Free() {
	b.data = nil
	b.n = 0
}

// Drain copies the buffer's contents into the arena and frees the
// buffer, collapsing the transient heap lifetime into the arena's.
// The buffer is freed even when the arena copy fails.
func Drain[T any](a *arena.Arena, b *Buffer[T]) ([]T, error) {
	out, err := arena.Make[T](a, b.n)
	if err != nil {
		b.Free()
		return nil, err
	}
	copy(out, b.View())
	b.Free()
	return out, nil
}

// DrainBytes is Drain specialized to byte buffers: the copy lands in the
// arena's raw block rather than a charged runtime allocation.
func DrainBytes(a *arena.Arena, b *Buffer[byte]) ([]byte, error) {
	out, err := a.Copy(b.View())
	if err != nil {
		b.Free()
		return nil, err
	}
	b.Free()
	return out, nil
}
