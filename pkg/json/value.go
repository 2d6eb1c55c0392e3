// Package json implements a minimal JSON value model with an
// arena-backed recursive-descent parser and a compact printer.
//
// Values produced by Parse borrow their storage from the arena passed
// in; they die with the arena's next Reset. Values built with the
// constructors reference caller-owned memory and have no arena
// dependency.
package json

import "github.com/skyjson/skyjson/pkg/bstr"

// Kind names the active variant of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "invalid"
}

// Value is a closed tagged union over the six JSON variants. The zero
// value is Null. Payload fields are unexported and gated by kind-checked
// accessors, so reading the wrong member is impossible by construction.
type Value struct {
	kind Kind
	arr  []Value
	obj  []Member
	str  bstr.Str
	num  float64
	b    bool
}

// Member is one (name, value) pair of an object. Objects keep members in
// insertion order and never merge or reject duplicate names.
type Member struct {
	Name  bstr.Str
	Value Value
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Boolean returns a boolean value.
func Boolean(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Num returns a number value.
func Num(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Text returns a string value viewing the bytes of s.
func Text(s string) Value {
	return Value{kind: KindString, str: bstr.S(s)}
}

// TextBytes returns a string value viewing b without copying.
func TextBytes(b bstr.Str) Value {
	return Value{kind: KindString, str: b}
}

// Arr returns an array value over elems. The slice is not copied.
func Arr(elems ...Value) Value {
	return Value{kind: KindArray, arr: elems}
}

// Obj returns an object value over members. The slice is not copied.
func Obj(members ...Member) Value {
	return Value{kind: KindObject, obj: members}
}

// Field builds one object member.
func Field(name string, v Value) Member {
	return Member{Name: bstr.S(name), Value: v}
}

// Kind reports the active variant.
func (v Value) Kind() Kind {
	return v.kind
}

// Number returns the numeric payload, or 0 for other kinds.
func (v Value) Number() float64 {
	if v.kind != KindNumber {
		return 0
	}
	return v.num
}

// Str returns the string payload, or nil for other kinds.
func (v Value) Str() bstr.Str {
	if v.kind != KindString {
		return nil
	}
	return v.str
}

// Bool returns the boolean payload, or false for other kinds.
func (v Value) Bool() bool {
	if v.kind != KindBool {
		return false
	}
	return v.b
}

// Elems returns the array elements, or nil for other kinds.
func (v Value) Elems() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Members returns the object members, or nil for other kinds.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Equal reports structural equality. Numbers compare exactly; use the
// printer's epsilon yourself if you need integer-rounding tolerance.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.num == b.num
	case KindString:
		return a.str.Equals(b.str)
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for i := range a.obj {
			if !a.obj[i].Name.Equals(b.obj[i].Name) || !Equal(a.obj[i].Value, b.obj[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// Walk visits v and its descendants in document order. If fn returns
// false for a value, its children are not visited.
func Walk(v Value, fn func(Value) bool) {
	if !fn(v) {
		return
	}
	switch v.kind {
	case KindArray:
		for _, e := range v.arr {
			Walk(e, fn)
		}
	case KindObject:
		for _, m := range v.obj {
			Walk(m.Value, fn)
		}
	}
}
