package jsonschema

import (
	"math/bits"
	"strings"
)

// TypeSet is a set of JSON Schema primitive type names.
type TypeSet uint8

const (
	TypeNull TypeSet = 1 << iota
	TypeBoolean
	TypeInteger
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

// typeOrder is the order in which type names are emitted.
var typeOrder = []struct {
	t    TypeSet
	name string
}{
	{TypeInteger, "integer"},
	{TypeNumber, "number"},
	{TypeString, "string"},
	{TypeBoolean, "boolean"},
	{TypeArray, "array"},
	{TypeObject, "object"},
	{TypeNull, "null"},
}

// Has reports whether s contains every type in t.
func (s TypeSet) Has(t TypeSet) bool { return t != 0 && s&t == t }

func (s TypeSet) IsEmpty() bool { return s == 0 }

func (s TypeSet) Len() int { return bits.OnesCount8(uint8(s)) }

// Names returns the type names in emission order.
func (s TypeSet) Names() []string {
	names := make([]string, 0, s.Len())
	for _, e := range typeOrder {
		if s.Has(e.t) {
			names = append(names, e.name)
		}
	}
	return names
}

// Members returns the single-type sets making up s, in emission order.
func (s TypeSet) Members() []TypeSet {
	out := make([]TypeSet, 0, s.Len())
	for _, e := range typeOrder {
		if s.Has(e.t) {
			out = append(out, e.t)
		}
	}
	return out
}

func (s TypeSet) String() string {
	if s == 0 {
		return "any"
	}
	return strings.Join(s.Names(), "|")
}

// Union combines two type sets. Integer is subsumed by number, so a union
// holding both keeps only number.
func Union(a, b TypeSet) TypeSet {
	u := a | b
	if u.Has(TypeInteger | TypeNumber) {
		u &^= TypeInteger
	}
	return u
}

// ParseTypeName maps a JSON Schema type name to its TypeSet member.
func ParseTypeName(name string) (TypeSet, bool) {
	for _, e := range typeOrder {
		if e.name == name {
			return e.t, true
		}
	}
	return 0, false
}
