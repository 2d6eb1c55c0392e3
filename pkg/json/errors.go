package json

import (
	"errors"
	"fmt"

	"github.com/skyjson/skyjson/pkg/arena"
)

// Code identifies a parse or print failure. All failures are returned as
// values; nothing panics on malformed input.
type Code int

const (
	CodeOK Code = iota
	CodeOutOfMemory
	CodeExpectedNull
	CodeExpectedBool
	CodeExpectedNumber
	CodeExpectedOpenQuote
	CodeExpectedCloseQuote
	CodeExpectedOpenBracket
	CodeExpectedCloseBracket
	CodeExpectedOpenBrace
	CodeExpectedCloseBrace
	CodeExpectedColon
	CodeInvalidVariant
	CodeTooDeep
)

var codeMessages = map[Code]string{
	CodeOK:                   "ok",
	CodeOutOfMemory:          "out of memory",
	CodeExpectedNull:         "expected 'null'",
	CodeExpectedBool:         "expected 'true' or 'false'",
	CodeExpectedNumber:       "expected a number",
	CodeExpectedOpenQuote:    "expected opening '\"'",
	CodeExpectedCloseQuote:   "expected closing '\"'",
	CodeExpectedOpenBracket:  "expected '['",
	CodeExpectedCloseBracket: "expected ']'",
	CodeExpectedOpenBrace:    "expected '{'",
	CodeExpectedCloseBrace:   "expected '}'",
	CodeExpectedColon:        "expected ':'",
	CodeInvalidVariant:       "no JSON variant matches",
	CodeTooDeep:              "too deeply nested",
}

func (c Code) String() string {
	if msg, ok := codeMessages[c]; ok {
		return msg
	}
	return fmt.Sprintf("unknown code %d", int(c))
}

// ParseError reports a decode failure with the byte offset into the
// original input at which it was detected.
type ParseError struct {
	Code   Code
	Offset int
	err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("json: %s at offset %d", e.Code, e.Offset)
}

// Unwrap exposes an underlying cause, such as arena.ErrOverflow.
func (e *ParseError) Unwrap() error {
	return e.err
}

// PrintError reports an encode failure.
type PrintError struct {
	Code Code
	err  error
}

func (e *PrintError) Error() string {
	return fmt.Sprintf("json print: %s", e.Code)
}

func (e *PrintError) Unwrap() error {
	return e.err
}

// noMatch marks a variant attempt that failed on its leading token. The
// dispatcher backtracks and tries the next variant on a noMatch; every
// other error is fatal and propagates. This keeps a genuine nested
// syntax error (a bad key string inside an object, say) from being
// mistaken for "not this variant".
type noMatch struct {
	err *ParseError
}

func (m *noMatch) Error() string {
	return m.err.Error()
}

func (m *noMatch) Unwrap() error {
	return m.err
}

// fatal strips the noMatch marker so an error propagates instead of
// triggering backtracking. Used where a construct is already committed,
// like the key string inside an object.
func fatal(err error) error {
	var nm *noMatch
	if errors.As(err, &nm) {
		return nm.err
	}
	return err
}

// CodeOf extracts the failure code from an error returned by Parse,
// Print, or Append. It returns CodeOK for nil.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code
	}
	var pr *PrintError
	if errors.As(err, &pr) {
		return pr.Code
	}
	if errors.Is(err, arena.ErrOverflow) {
		return CodeOutOfMemory
	}
	return CodeInvalidVariant
}
