package jsonschema

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Fragment is the inferred schema for one position in a JSON document.
//
// Properties and Required are meaningful only when Types has TypeObject, Items
// only when Types has TypeArray. Fragments are never modified after they are
// built; Merge returns new fragments that may share children with its inputs.
type Fragment struct {
	Types      TypeSet
	Properties *orderedmap.OrderedMap[string, *Fragment]
	Required   map[string]struct{}
	Items      *Fragment
}

// NewProperties returns an empty property map that keeps first-seen order.
func NewProperties() *orderedmap.OrderedMap[string, *Fragment] {
	return orderedmap.New[string, *Fragment]()
}

// PropertyKeys returns the property names in order.
func (f *Fragment) PropertyKeys() []string {
	if f == nil || f.Properties == nil {
		return nil
	}
	keys := make([]string, 0, f.Properties.Len())
	for pair := f.Properties.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Property returns the fragment for key.
func (f *Fragment) Property(key string) (*Fragment, bool) {
	if f == nil || f.Properties == nil {
		return nil, false
	}
	return f.Properties.Get(key)
}

// IsRequired reports whether key is required on object instances.
func (f *Fragment) IsRequired(key string) bool {
	if f == nil {
		return false
	}
	_, ok := f.Required[key]
	return ok
}

// RequiredKeys returns the required keys in property order.
func (f *Fragment) RequiredKeys() []string {
	keys := make([]string, 0, len(f.Required))
	for _, k := range f.PropertyKeys() {
		if f.IsRequired(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Equal reports whether two fragments describe the same schema. Property order
// is ignored.
func Equal(a, b *Fragment) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Types != b.Types {
		return false
	}
	if a.Types.Has(TypeObject) {
		if propertyLen(a) != propertyLen(b) || len(a.Required) != len(b.Required) {
			return false
		}
		for _, k := range a.PropertyKeys() {
			av, _ := a.Property(k)
			bv, ok := b.Property(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		for k := range a.Required {
			if !b.IsRequired(k) {
				return false
			}
		}
	}
	if a.Types.Has(TypeArray) && !Equal(itemsOf(a), itemsOf(b)) {
		return false
	}
	return true
}

func propertyLen(f *Fragment) int {
	if f.Properties == nil {
		return 0
	}
	return f.Properties.Len()
}

var emptyFragment = &Fragment{}

// itemsOf treats a missing Items as the empty fragment.
func itemsOf(f *Fragment) *Fragment {
	if f.Items == nil {
		return emptyFragment
	}
	return f.Items
}
