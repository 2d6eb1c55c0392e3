package json

import (
	"math"
	"strconv"

	"github.com/skyjson/skyjson/pkg/arena"
	"github.com/skyjson/skyjson/pkg/bstr"
)

// IntEpsilon is the tolerance within which a number prints as an integer
// literal instead of a fixed-point one.
const IntEpsilon = 1e-4

// maxExactInt bounds the integer fast path so the float-to-int64
// conversion cannot overflow.
const maxExactInt = 1 << 62

// Print renders v in compact form into the arena: no whitespace, no
// escaping, insertion order preserved. The result is terminator-backed
// like any builder-produced string.
func Print(a *arena.Arena, v Value, opts ...Option) (bstr.Str, error) {
	o := applyOptions(opts)

	var sb bstr.Builder
	if err := appendValue(&sb, v, 0, o.maxDepth); err != nil {
		sb.Free()
		o.logger.Error("print failed", "code", CodeOf(err).String())
		return nil, err
	}
	out, err := sb.BuildToArena(a)
	if err != nil {
		o.logger.Error("print failed", "code", CodeOutOfMemory.String())
		return nil, &PrintError{Code: CodeOutOfMemory, err: err}
	}
	return out, nil
}

// Append renders v in compact form onto an existing builder.
func Append(sb *bstr.Builder, v Value, opts ...Option) error {
	o := applyOptions(opts)
	return appendValue(sb, v, 0, o.maxDepth)
}

func appendValue(sb *bstr.Builder, v Value, depth, maxDepth int) error {
	if depth >= maxDepth {
		return &PrintError{Code: CodeTooDeep}
	}

	switch v.kind {
	case KindNull:
		sb.PushString(litNull)

	case KindBool:
		if v.b {
			sb.PushString(litTrue)
		} else {
			sb.PushString(litFalse)
		}

	case KindNumber:
		appendNumber(sb, v.num)

	case KindString:
		sb.Push('"')
		sb.PushString(v.str)
		sb.Push('"')

	case KindArray:
		sb.Push('[')
		for i, e := range v.arr {
			if i > 0 {
				sb.Push(',')
			}
			if err := appendValue(sb, e, depth+1, maxDepth); err != nil {
				return err
			}
		}
		sb.Push(']')

	case KindObject:
		sb.Push('{')
		for i, m := range v.obj {
			if i > 0 {
				sb.Push(',')
			}
			sb.Push('"')
			sb.PushString(m.Name)
			sb.Push('"')
			sb.Push(':')
			if err := appendValue(sb, m.Value, depth+1, maxDepth); err != nil {
				return err
			}
		}
		sb.Push('}')
	}
	return nil
}

// appendNumber prints an integer literal when the magnitude is within
// IntEpsilon of its truncation, otherwise a fixed-point literal with the
// shortest digits that parse back to the same double.
func appendNumber(sb *bstr.Builder, f float64) {
	t := math.Trunc(f)
	if math.Abs(f-t) < IntEpsilon && math.Abs(t) < maxExactInt {
		sb.PushString(strconv.AppendInt(make([]byte, 0, 20), int64(t), 10))
	} else {
		sb.PushString(strconv.AppendFloat(make([]byte, 0, 24), f, 'f', -1, 64))
	}
}
