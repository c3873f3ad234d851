// Package jsonvalue provides an order-preserving JSON value model.
//
// A Value is a closed tagged union over the six JSON kinds. Objects keep their
// members in document order, including repeated keys, so consumers can decide
// how duplicates are treated. Values are immutable once built: slices handed
// out by Items and Members must not be modified.
package jsonvalue

import (
	"errors"
	"math"
	"strconv"
)

// Kind identifies the variant held by a Value.
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
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ErrNonFinite is returned when a number is NaN or infinite. JSON cannot
// represent either.
var ErrNonFinite = errors.New("jsonvalue: number is not finite")

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON value. The zero Value is null.
type Value struct {
	kind    Kind
	boolean bool
	text    string // string contents, or the number literal
	integer bool
	ranged  bool // literal beyond float64 range; num is 0 or ±Inf
	num     float64
	items   []Value
	members []Member
}

// Null returns the JSON null value.
func Null() Value {
	return Value{}
}

// Bool returns a JSON boolean.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// String returns a JSON string.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Int returns an integer-valued JSON number.
func Int(i int64) Value {
	return Value{kind: KindNumber, text: strconv.FormatInt(i, 10), integer: true, num: float64(i)}
}

// Float returns a JSON number for f, or ErrNonFinite for NaN and infinities.
// Whole floats that fit in an int64 are integer-valued.
func Float(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, ErrNonFinite
	}
	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'g', -1, 64), integer: isWhole(f), num: f}, nil
}

// Number returns a JSON number from its textual literal. Literals outside the
// JSON number grammar (hex floats, underscores) are accepted when Go can parse
// them and are re-emitted in canonical form.
func Number(literal string) (Value, error) {
	if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return Value{kind: KindNumber, text: canonicalLiteral(literal, float64(i), true, i), integer: true, num: float64(i)}, nil
	}
	f, err := strconv.ParseFloat(literal, 64)
	if errors.Is(err, strconv.ErrRange) && validLiteral(literal) {
		// Overflow is never an int64 and underflow is never whole.
		return Value{kind: KindNumber, text: literal, ranged: true, num: f}, nil
	}
	if err != nil {
		return Value{}, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, ErrNonFinite
	}
	return Value{kind: KindNumber, text: canonicalLiteral(literal, f, false, 0), integer: isWhole(f), num: f}, nil
}

// Array returns a JSON array holding items.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: items}
}

// Object returns a JSON object holding members in the given order.
func Object(members ...Member) Value {
	return Value{kind: KindObject, members: members}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload, false for other kinds.
func (v Value) AsBool() bool { return v.boolean }

// AsString returns the string payload, "" for other kinds.
func (v Value) AsString() string {
	if v.kind != KindString {
		return ""
	}
	return v.text
}

// Literal returns the textual form of a number, "" for other kinds.
func (v Value) Literal() string {
	if v.kind != KindNumber {
		return ""
	}
	return v.text
}

// AsFloat returns the number as a float64, 0 for other kinds. Literals beyond
// the float64 range come back as ±Inf or 0; Literal keeps their exact text.
func (v Value) AsFloat() float64 { return v.num }

// IsInteger reports whether v is a number without a fractional component
// that fits in an int64.
func (v Value) IsInteger() bool { return v.kind == KindNumber && v.integer }

// Items returns the elements of an array.
func (v Value) Items() []Value { return v.items }

// Members returns the members of an object in document order.
func (v Value) Members() []Member { return v.members }

// Len returns the number of array elements or object members.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	}
	return 0
}

// Get returns the first member named key.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Equal reports whether a and b hold the same JSON value. Object members are
// compared in order, numbers by value.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolean == b.boolean
	case KindNumber:
		if a.ranged || b.ranged {
			return a.text == b.text
		}
		if a.integer && b.integer {
			return a.text == b.text || a.num == b.num
		}
		return a.num == b.num
	case KindString:
		return a.text == b.text
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.members) != len(b.members) {
			return false
		}
		for i := range a.members {
			if a.members[i].Key != b.members[i].Key || !Equal(a.members[i].Value, b.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// 2^63 as a float64; int64 holds [-2^63, 2^63).
const int64Bound = 9223372036854775808.0

func isWhole(f float64) bool {
	return math.Trunc(f) == f && f >= -int64Bound && f < int64Bound
}

func canonicalLiteral(literal string, f float64, isInt bool, i int64) string {
	if validLiteral(literal) {
		return literal
	}
	if isInt {
		return strconv.FormatInt(i, 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// validLiteral checks the JSON number grammar:
// -? (0 | [1-9][0-9]*) (\.[0-9]+)? ([eE][+-]?[0-9]+)?
func validLiteral(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	if i >= len(s) {
		return false
	}
	if s[i] == '0' {
		i++
	} else if s[i] >= '1' && s[i] <= '9' {
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	} else {
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
