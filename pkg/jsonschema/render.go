package jsonschema

import (
	"github.com/usestring/schemainfer/pkg/jsonvalue"
)

// RenderOptions controls how fragments are rendered.
type RenderOptions struct {
	// AdditionalProperties sets additionalProperties on every object schema.
	// Default: nil (not set)
	AdditionalProperties *bool
}

// Render converts f to its JSON Schema value with default options.
func Render(f *Fragment) jsonvalue.Value {
	return RenderOptions{}.Render(f)
}

// Document renders f as a top-level schema document carrying $schema.
func Document(f *Fragment) jsonvalue.Value {
	return RenderOptions{}.Document(f)
}

// Document renders f with $schema as its first key.
func (o RenderOptions) Document(f *Fragment) jsonvalue.Value {
	body := o.Render(f)
	members := make([]jsonvalue.Member, 0, body.Len()+1)
	members = append(members, jsonvalue.Member{Key: "$schema", Value: jsonvalue.String(SchemaURI)})
	members = append(members, body.Members()...)
	return jsonvalue.Object(members...)
}

// Render converts f to an object with keys in the order type, properties,
// required, additionalProperties, items. An empty fragment renders as {}.
func (o RenderOptions) Render(f *Fragment) jsonvalue.Value {
	if f == nil || f.Types.IsEmpty() {
		return jsonvalue.Object()
	}

	members := make([]jsonvalue.Member, 0, 5)
	members = append(members, jsonvalue.Member{Key: "type", Value: renderType(f.Types)})

	if f.Types.Has(TypeObject) {
		keys := f.PropertyKeys()
		props := make([]jsonvalue.Member, 0, len(keys))
		for _, k := range keys {
			child, _ := f.Property(k)
			props = append(props, jsonvalue.Member{Key: k, Value: o.Render(child)})
		}
		required := make([]jsonvalue.Value, 0, len(f.Required))
		for _, k := range f.RequiredKeys() {
			required = append(required, jsonvalue.String(k))
		}
		members = append(members,
			jsonvalue.Member{Key: "properties", Value: jsonvalue.Object(props...)},
			jsonvalue.Member{Key: "required", Value: jsonvalue.Array(required...)},
		)
		if o.AdditionalProperties != nil {
			members = append(members, jsonvalue.Member{Key: "additionalProperties", Value: jsonvalue.Bool(*o.AdditionalProperties)})
		}
	}

	if f.Types.Has(TypeArray) {
		members = append(members, jsonvalue.Member{Key: "items", Value: o.Render(itemsOf(f))})
	}

	return jsonvalue.Object(members...)
}

func renderType(s TypeSet) jsonvalue.Value {
	names := s.Names()
	if len(names) == 1 {
		return jsonvalue.String(names[0])
	}
	vs := make([]jsonvalue.Value, len(names))
	for i, n := range names {
		vs[i] = jsonvalue.String(n)
	}
	return jsonvalue.Array(vs...)
}
