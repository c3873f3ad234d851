package jsonschema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Merge returns a fragment accepting every value accepted by a or b.
//
// Types are unioned with integer folded into number. When both sides describe
// objects, properties are unioned key-wise (shared keys merged) and Required is
// the intersection. When both describe arrays, items are merged. Structure
// from a side that alone carries object or array passes through unchanged.
// Property order is a's keys followed by b's new keys.
//
// A nil argument yields the other argument.
func Merge(a, b *Fragment) *Fragment {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}

	out := &Fragment{Types: Union(a.Types, b.Types)}

	aObj, bObj := a.Types.Has(TypeObject), b.Types.Has(TypeObject)
	switch {
	case aObj && bObj:
		out.Properties, out.Required = mergeObjects(a, b)
	case aObj:
		out.Properties, out.Required = objectParts(a)
	case bObj:
		out.Properties, out.Required = objectParts(b)
	}

	aArr, bArr := a.Types.Has(TypeArray), b.Types.Has(TypeArray)
	switch {
	case aArr && bArr:
		out.Items = Merge(itemsOf(a), itemsOf(b))
	case aArr:
		out.Items = itemsOf(a)
	case bArr:
		out.Items = itemsOf(b)
	}

	return out
}

func objectParts(f *Fragment) (*orderedmap.OrderedMap[string, *Fragment], map[string]struct{}) {
	props := f.Properties
	if props == nil {
		props = NewProperties()
	}
	return props, f.Required
}

func mergeObjects(a, b *Fragment) (*orderedmap.OrderedMap[string, *Fragment], map[string]struct{}) {
	props := NewProperties()
	for _, k := range a.PropertyKeys() {
		av, _ := a.Property(k)
		if bv, ok := b.Property(k); ok {
			props.Set(k, Merge(av, bv))
			continue
		}
		props.Set(k, av)
	}
	for _, k := range b.PropertyKeys() {
		if _, ok := props.Get(k); ok {
			continue
		}
		bv, _ := b.Property(k)
		props.Set(k, bv)
	}

	required := make(map[string]struct{})
	for k := range a.Required {
		if _, ok := b.Required[k]; ok {
			required[k] = struct{}{}
		}
	}
	return props, required
}
