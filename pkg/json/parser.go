package json

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/skyjson/skyjson/pkg/arena"
	"github.com/skyjson/skyjson/pkg/bstr"
	"github.com/skyjson/skyjson/pkg/buffer"
)

// Literals recognized by the scalar variants.
var (
	litNull  = bstr.S("null")
	litTrue  = bstr.S("true")
	litFalse = bstr.S("false")
)

// Parse decodes the first JSON value in input. The value's storage is
// drawn from a: it stays alive until the arena's next Reset. Parse
// returns the unconsumed remainder of the input; trailing content after
// a complete value is not an error.
//
// On failure the returned Value must not be read; only the error is
// meaningful. The error is a *ParseError carrying the failure Code and
// byte offset.
func Parse(a *arena.Arena, input bstr.Str, opts ...Option) (Value, bstr.Str, error) {
	o := applyOptions(opts)
	p := &parser{
		arena:    a,
		input:    input,
		cur:      input,
		maxDepth: o.maxDepth,
		log:      o.logger,
	}
	v, err := p.parseValue()
	if err != nil {
		p.log.Error("parse failed",
			"code", CodeOf(err).String(),
			"offset", len(input)-len(p.cur))
		return Value{}, p.cur, err
	}
	p.log.Debug("parsed value", "kind", v.Kind().String(), "rest", len(p.cur))
	return v, p.cur, nil
}

// parser holds the cursor state for one Parse call. The cursor is a
// subview of the input that variants advance as they consume bytes; the
// dispatcher restores it between failed attempts.
type parser struct {
	arena    *arena.Arena
	input    bstr.Str
	cur      bstr.Str
	depth    int
	maxDepth int
	log      *slog.Logger
}

// offset reports how far into the original input the cursor has moved.
func (p *parser) offset() int {
	return len(p.input) - len(p.cur)
}

func (p *parser) fail(c Code) *ParseError {
	return &ParseError{Code: c, Offset: p.offset()}
}

func (p *parser) failNoMatch(c Code) error {
	return &noMatch{err: p.fail(c)}
}

func (p *parser) oom(cause error) *ParseError {
	return &ParseError{Code: CodeOutOfMemory, Offset: p.offset(), err: cause}
}

// parseValue is the ordered-alternative dispatcher. It tries each
// variant in fixed order with a full cursor backtrack between attempts,
// advancing to the next alternative only on a leading-token noMatch.
// Any other error is fatal and propagates untouched.
func (p *parser) parseValue() (Value, error) {
	if p.depth >= p.maxDepth {
		return Value{}, p.fail(CodeTooDeep)
	}
	p.depth++
	defer func() { p.depth-- }()

	mark := p.cur
	alts := []func() (Value, error){
		p.parseNull,
		p.parseBool,
		p.parseNumber,
		p.parseString,
		p.parseArray,
		p.parseObject,
	}
	for _, alt := range alts {
		v, err := alt()
		if err == nil {
			return v, nil
		}
		var nm *noMatch
		if errors.As(err, &nm) {
			p.cur = mark
			continue
		}
		return Value{}, err
	}
	return Value{}, p.fail(CodeInvalidVariant)
}

func (p *parser) parseNull() (Value, error) {
	p.cur = p.cur.TrimLeft()
	if !p.cur.StartsWith(litNull) {
		return Value{}, p.failNoMatch(CodeExpectedNull)
	}
	p.cur = p.cur[len(litNull):]
	return Null(), nil
}

func (p *parser) parseBool() (Value, error) {
	p.cur = p.cur.TrimLeft()
	switch {
	case p.cur.StartsWith(litFalse):
		p.cur = p.cur[len(litFalse):]
		return Boolean(false), nil
	case p.cur.StartsWith(litTrue):
		p.cur = p.cur[len(litTrue):]
		return Boolean(true), nil
	}
	return Value{}, p.failNoMatch(CodeExpectedBool)
}

func (p *parser) parseNumber() (Value, error) {
	p.cur = p.cur.TrimLeft()
	n := scanNumber(p.cur)
	if n == 0 {
		return Value{}, p.failNoMatch(CodeExpectedNumber)
	}
	// A lexeme that scanned clean but overflows the double range is
	// still a number; ParseFloat clamps it to ±Inf under ErrRange.
	f, err := strconv.ParseFloat(string(p.cur[:n]), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Value{}, p.failNoMatch(CodeExpectedNumber)
	}
	p.cur = p.cur[n:]
	return Num(f), nil
}

// scanNumber measures the leading numeric lexeme: optional sign, digits,
// optional fraction, optional exponent. Returns 0 when no digits are
// consumed, which is the sole failure signal for the number variant.
func scanNumber(s bstr.Str) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if frac > 0 || digits > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (p *parser) parseString() (Value, error) {
	s, err := p.parseStringLiteral()
	if err != nil {
		return Value{}, err
	}
	return TextBytes(s), nil
}

// parseStringLiteral scans a quoted span, skipping any byte that follows
// an unescaped backslash, and drains the span into the arena through a
// builder. No unescaping is performed; bytes are copied raw.
func (p *parser) parseStringLiteral() (bstr.Str, error) {
	p.cur = p.cur.TrimLeft()
	if len(p.cur) == 0 || p.cur[0] != '"' {
		return nil, p.failNoMatch(CodeExpectedOpenQuote)
	}

	i := 1
	escaped := false
	for i < len(p.cur) {
		c := p.cur[i]
		if escaped {
			escaped = false
			i++
			continue
		}
		if c == '\\' {
			escaped = true
			i++
			continue
		}
		if c == '"' {
			break
		}
		i++
	}
	if i >= len(p.cur) {
		return nil, p.fail(CodeExpectedCloseQuote)
	}

	var sb bstr.Builder
	sb.PushString(p.cur[1:i])
	out, err := sb.BuildToArena(p.arena)
	if err != nil {
		return nil, p.oom(err)
	}
	p.cur = p.cur[i+1:]
	return out, nil
}

func (p *parser) parseArray() (Value, error) {
	p.cur = p.cur.TrimLeft()
	if len(p.cur) == 0 || p.cur[0] != '[' {
		return Value{}, p.failNoMatch(CodeExpectedOpenBracket)
	}
	p.cur = p.cur[1:]

	var elems buffer.Buffer[Value]
	defer elems.Free() // releases the accumulator on every exit path

	first := true
	for {
		p.cur = p.cur.TrimLeft()
		if len(p.cur) == 0 || p.cur[0] == ']' {
			break
		}
		if !first {
			if p.cur[0] != ',' {
				return Value{}, p.fail(CodeExpectedCloseBracket)
			}
			p.cur = p.cur[1:]
			p.cur = p.cur.TrimLeft()
			// A separator with nothing after it is a truncated array,
			// not an unrecognizable element.
			if len(p.cur) == 0 {
				return Value{}, p.fail(CodeExpectedCloseBracket)
			}
		}
		v, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		elems.Push(v)
		first = false
	}
	if len(p.cur) == 0 || p.cur[0] != ']' {
		return Value{}, p.fail(CodeExpectedCloseBracket)
	}
	p.cur = p.cur[1:]

	backing, err := buffer.Drain(p.arena, &elems)
	if err != nil {
		return Value{}, p.oom(err)
	}
	return Value{kind: KindArray, arr: backing}, nil
}

func (p *parser) parseObject() (Value, error) {
	p.cur = p.cur.TrimLeft()
	if len(p.cur) == 0 || p.cur[0] != '{' {
		return Value{}, p.failNoMatch(CodeExpectedOpenBrace)
	}
	p.cur = p.cur[1:]

	var members buffer.Buffer[Member]
	defer members.Free()

	first := true
	for {
		p.cur = p.cur.TrimLeft()
		if len(p.cur) == 0 || p.cur[0] == '}' {
			break
		}
		if !first {
			if p.cur[0] != ',' {
				return Value{}, p.fail(CodeExpectedCloseBrace)
			}
			p.cur = p.cur[1:]
			p.cur = p.cur.TrimLeft()
			if len(p.cur) == 0 {
				return Value{}, p.fail(CodeExpectedCloseBrace)
			}
		}

		// Once inside the braces the construct is committed: a bad key
		// is a real syntax error, not a wrong-variant signal.
		name, err := p.parseStringLiteral()
		if err != nil {
			return Value{}, fatal(err)
		}

		p.cur = p.cur.TrimLeft()
		if len(p.cur) == 0 || p.cur[0] != ':' {
			return Value{}, p.fail(CodeExpectedColon)
		}
		p.cur = p.cur[1:]

		v, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		members.Push(Member{Name: name, Value: v})
		first = false
	}
	if len(p.cur) == 0 || p.cur[0] != '}' {
		return Value{}, p.fail(CodeExpectedCloseBrace)
	}
	p.cur = p.cur[1:]

	backing, err := buffer.Drain(p.arena, &members)
	if err != nil {
		return Value{}, p.oom(err)
	}
	return Value{kind: KindObject, obj: backing}, nil
}
