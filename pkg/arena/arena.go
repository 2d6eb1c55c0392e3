// Package arena implements a fixed-capacity bump allocator.
// Typical usage: create one arena per unit of work (a request, a parse),
// allocate freely from it, then Reset() between turns for O(1) cleanup.
// There is no per-allocation free.
package arena

import (
	"errors"
	"unsafe"
)

// DefaultCapacity is the capacity used when New is given a non-positive
// value (8 MiB).
const DefaultCapacity = 8 << 20

// ErrOverflow is returned when an allocation would exceed the arena's
// remaining capacity. The arena is left unchanged by the failing call.
var ErrOverflow = errors.New("arena: capacity exhausted")

// Arena is a bump allocator over a single fixed-size block. The block is
// reserved lazily on the first allocation. Not safe for concurrent use;
// callers that share an arena across goroutines must serialize access.
type Arena struct {
	block    []byte
	used     int
	capacity int
}

// New creates an Arena with the given capacity in bytes.
// If capacity <= 0, DefaultCapacity is used. The backing block is not
// reserved until the first allocation.
func New(capacity int) *Arena {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Arena{capacity: capacity}
}

// Alloc returns n bytes taken from the unused tail of the block and
// advances the high-water mark. If n exceeds the remaining capacity it
// returns ErrOverflow and allocates nothing.
func (a *Arena) Alloc(n int) ([]byte, error) {
	if n < 0 {
		n = 0
	}
	if a.used+n > a.capacity {
		return nil, ErrOverflow
	}
	if a.block == nil {
		a.block = make([]byte, a.capacity)
	}
	b := a.block[a.used : a.used+n : a.used+n]
	a.used += n
	return b, nil
}

// Copy allocates len(b) bytes from the arena and copies b into them,
// producing an arena-owned range independent of b's lifetime.
func (a *Arena) Copy(b []byte) ([]byte, error) {
	dst, err := a.Alloc(len(b))
	if err != nil {
		return nil, err
	}
	copy(dst, b)
	return dst, nil
}

// Reset sets the high-water mark back to zero in O(1). Memory is not
// zeroed, so any slices previously handed out become logically invalid.
// The arena never resets itself; that is the caller's turn boundary.
func (a *Arena) Reset() {
	a.used = 0
}

// Used reports the current high-water mark in bytes.
func (a *Arena) Used() int {
	return a.used
}

// Capacity reports the fixed capacity in bytes.
func (a *Arena) Capacity() int {
	return a.capacity
}

// Remaining reports how many bytes can still be allocated.
func (a *Arena) Remaining() int {
	return a.capacity - a.used
}

// Make allocates a slice of n elements of type T charged against the
// arena's capacity. Element types may contain pointers, so the slice is
// backed by the runtime rather than carved out of the raw block (storing
// pointers in reinterpreted byte memory would hide them from the
// collector). The byte charge and overflow behavior are identical to
// Alloc: on ErrOverflow the arena is unchanged.
func Make[T any](a *Arena, n int) ([]T, error) {
	if n < 0 {
		n = 0
	}
	size := n * int(unsafe.Sizeof(*new(T)))
	if a.used+size > a.capacity {
		return nil, ErrOverflow
	}
	a.used += size
	return make([]T, n), nil
}
