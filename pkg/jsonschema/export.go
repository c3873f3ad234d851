package jsonschema

import (
	"github.com/getkin/kin-openapi/openapi3"
	invopop "github.com/invopop/jsonschema"
)

// ToInvopop converts f to an invopop schema with default options.
func ToInvopop(f *Fragment) *invopop.Schema {
	return RenderOptions{}.Invopop(f)
}

// ToOpenAPI converts f to an OpenAPI 3.0 schema with default options.
func ToOpenAPI(f *Fragment) *openapi3.Schema {
	return RenderOptions{}.OpenAPI(f)
}

// Invopop converts f to an invopop schema document. Type unions are written
// as anyOf with one branch per type, since invopop models a single type name.
func (o RenderOptions) Invopop(f *Fragment) *invopop.Schema {
	s := o.invopop(f)
	s.Version = SchemaURI
	return s
}

func (o RenderOptions) invopop(f *Fragment) *invopop.Schema {
	if f == nil || f.Types.IsEmpty() {
		return &invopop.Schema{}
	}
	members := f.Types.Members()
	if len(members) == 1 {
		return o.invopopSingle(f, members[0])
	}
	anyOf := make([]*invopop.Schema, 0, len(members))
	for _, t := range members {
		anyOf = append(anyOf, o.invopopSingle(f, t))
	}
	return &invopop.Schema{AnyOf: anyOf}
}

func (o RenderOptions) invopopSingle(f *Fragment, t TypeSet) *invopop.Schema {
	s := &invopop.Schema{Type: t.String()}
	switch t {
	case TypeObject:
		s.Properties = invopop.NewProperties()
		for _, k := range f.PropertyKeys() {
			child, _ := f.Property(k)
			s.Properties.Set(k, o.invopop(child))
		}
		s.Required = f.RequiredKeys()
		if o.AdditionalProperties != nil {
			if *o.AdditionalProperties {
				s.AdditionalProperties = invopop.TrueSchema
			} else {
				s.AdditionalProperties = invopop.FalseSchema
			}
		}
	case TypeArray:
		s.Items = o.invopop(itemsOf(f))
	}
	return s
}

// OpenAPI converts f to an OpenAPI 3.0 schema. A null member becomes
// nullable: true on the remaining schema; a union of several non-null types
// becomes anyOf.
func (o RenderOptions) OpenAPI(f *Fragment) *openapi3.Schema {
	if f == nil || f.Types.IsEmpty() {
		return &openapi3.Schema{}
	}

	nullable := f.Types.Has(TypeNull)
	members := (f.Types &^ TypeNull).Members()

	var s *openapi3.Schema
	switch len(members) {
	case 0:
		s = &openapi3.Schema{}
	case 1:
		s = o.openAPISingle(f, members[0])
	default:
		s = &openapi3.Schema{}
		for _, t := range members {
			s.AnyOf = append(s.AnyOf, o.openAPISingle(f, t).NewRef())
		}
	}
	s.Nullable = nullable
	return s
}

func (o RenderOptions) openAPISingle(f *Fragment, t TypeSet) *openapi3.Schema {
	s := &openapi3.Schema{Type: t.String()}
	switch t {
	case TypeObject:
		s.Properties = make(openapi3.Schemas, propertyLen(f))
		for _, k := range f.PropertyKeys() {
			child, _ := f.Property(k)
			s.Properties[k] = o.OpenAPI(child).NewRef()
		}
		if req := f.RequiredKeys(); len(req) > 0 {
			s.Required = req
		}
		if o.AdditionalProperties != nil {
			allowed := *o.AdditionalProperties
			s.AdditionalProperties = openapi3.AdditionalProperties{Has: &allowed}
		}
	case TypeArray:
		s.Items = o.OpenAPI(itemsOf(f)).NewRef()
	}
	return s
}
