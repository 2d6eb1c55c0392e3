// Package bstr provides non-owning byte-string views and a builder that
// maintains a trailing NUL sentinel, mirroring the conventions of the
// arena-backed JSON core: views never copy, builders own their storage
// until built or drained into an arena.
package bstr

// Str is a non-owning view over a byte range of text. Slicing a Str
// (advancing its start) never copies. A Str produced by a Builder is
// followed by a NUL sentinel in its backing storage; the sentinel is not
// part of the view.
type Str []byte

// S wraps a Go string as a Str without validation.
func S(s string) Str {
	return Str(s)
}

// Len reports the length in bytes.
func (s Str) Len() int {
	return len(s)
}

// String converts the view into an owned Go string.
func (s Str) String() string {
	return string(s)
}

// TrimLeft returns a subview with leading space, tab, and newline bytes
// removed. No other whitespace categories are recognized.
func (s Str) TrimLeft() Str {
	for len(s) > 0 && isSpace(s[0]) {
		s = s[1:]
	}
	return s
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

// StartsWith reports whether s begins with prefix, by raw byte
// comparison with no case folding.
func (s Str) StartsWith(prefix Str) bool {
	if len(s) < len(prefix) {
		return false
	}
	return bytesEqual(s[:len(prefix)], prefix)
}

// EndsWith reports whether s ends with suffix.
func (s Str) EndsWith(suffix Str) bool {
	if len(s) < len(suffix) {
		return false
	}
	return bytesEqual(s[len(s)-len(suffix):], suffix)
}

// Equals reports byte equality of the two views.
func (s Str) Equals(o Str) bool {
	return bytesEqual(s, o)
}

func bytesEqual(a, b Str) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Compare orders two strings and encodes where they diverge:
//
//	0        the strings are equal
//	1 + i    a is greater, first differing byte at index i
//	-1 - i   b is greater, first differing byte at index i
//
// When one string is a strict prefix of the other, the prefix length
// stands in for the differing index: 1+len(b) when b is a prefix of a,
// -1-len(a) when a is a prefix of b.
func Compare(a, b Str) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] > b[i] {
			return 1 + i
		}
		if a[i] < b[i] {
			return -1 - i
		}
	}
	switch {
	case len(a) > len(b):
		return 1 + len(b)
	case len(b) > len(a):
		return -1 - len(a)
	default:
		return 0
	}
}
