package jsonschema

import (
	"fmt"
	"strings"

	"github.com/usestring/schemainfer/pkg/jsonvalue"
)

// UnsupportedSchemaError reports a schema construct FromSchema cannot map to
// a Fragment.
type UnsupportedSchemaError struct {
	Pointer string // JSON pointer to the offending value, "" for the root
	Reason  string
}

func (e *UnsupportedSchemaError) Error() string {
	return fmt.Sprintf("jsonschema: unsupported schema at #%s: %s", e.Pointer, e.Reason)
}

// FromSchema converts a schema document produced by Render or Document back
// into a Fragment, so earlier results can be merged with new samples.
// Annotation keywords are skipped; any other keyword outside the rendered
// vocabulary is rejected.
func FromSchema(v jsonvalue.Value) (*Fragment, error) {
	return parseFragment(v, "", true)
}

func parseFragment(v jsonvalue.Value, ptr string, root bool) (*Fragment, error) {
	if v.Kind() != jsonvalue.KindObject {
		return nil, unsupported(ptr, "schema must be an object, got %s", v.Kind())
	}

	f := &Fragment{}
	var (
		props    *jsonvalue.Value
		required *jsonvalue.Value
		items    *jsonvalue.Value
	)
	for _, m := range v.Members() {
		at := ptr + "/" + escapePointer(m.Key)
		switch m.Key {
		case "$schema":
			if !root {
				return nil, unsupported(at, "$schema is only allowed at the root")
			}
			if m.Value.Kind() != jsonvalue.KindString {
				return nil, unsupported(at, "$schema must be a string")
			}
		case "type":
			types, err := parseTypes(m.Value, at)
			if err != nil {
				return nil, err
			}
			f.Types = types
		case "properties":
			mv := m.Value
			props = &mv
		case "required":
			mv := m.Value
			required = &mv
		case "items":
			mv := m.Value
			items = &mv
		case "additionalProperties":
			if k := m.Value.Kind(); k != jsonvalue.KindBool && k != jsonvalue.KindObject {
				return nil, unsupported(at, "additionalProperties must be a boolean or schema")
			}
		case "title", "description", "$id", "$comment":
		default:
			return nil, unsupported(at, "keyword %q is not supported", m.Key)
		}
	}

	if f.Types.Has(TypeObject) {
		if err := parseObject(f, props, required, ptr); err != nil {
			return nil, err
		}
	} else if props != nil || required != nil {
		return nil, unsupported(ptr, "properties or required without type object")
	}

	if f.Types.Has(TypeArray) {
		f.Items = &Fragment{}
		if items != nil {
			it, err := parseFragment(*items, ptr+"/items", false)
			if err != nil {
				return nil, err
			}
			f.Items = it
		}
	} else if items != nil {
		return nil, unsupported(ptr, "items without type array")
	}

	return f, nil
}

func parseTypes(v jsonvalue.Value, ptr string) (TypeSet, error) {
	switch v.Kind() {
	case jsonvalue.KindString:
		t, ok := ParseTypeName(v.AsString())
		if !ok {
			return 0, unsupported(ptr, "unknown type %q", v.AsString())
		}
		return t, nil
	case jsonvalue.KindArray:
		if v.Len() == 0 {
			return 0, unsupported(ptr, "type array is empty")
		}
		var set TypeSet
		for i, e := range v.Items() {
			t, ok := ParseTypeName(e.AsString())
			if e.Kind() != jsonvalue.KindString || !ok {
				return 0, unsupported(fmt.Sprintf("%s/%d", ptr, i), "unknown type %s", e)
			}
			set = Union(set, t)
		}
		return set, nil
	}
	return 0, unsupported(ptr, "type must be a string or array")
}

func parseObject(f *Fragment, props, required *jsonvalue.Value, ptr string) error {
	f.Properties = NewProperties()
	f.Required = make(map[string]struct{})

	if props != nil {
		if props.Kind() != jsonvalue.KindObject {
			return unsupported(ptr+"/properties", "properties must be an object")
		}
		for _, m := range props.Members() {
			child, err := parseFragment(m.Value, ptr+"/properties/"+escapePointer(m.Key), false)
			if err != nil {
				return err
			}
			f.Properties.Set(m.Key, child)
		}
	}

	if required != nil {
		if required.Kind() != jsonvalue.KindArray {
			return unsupported(ptr+"/required", "required must be an array")
		}
		for i, e := range required.Items() {
			at := fmt.Sprintf("%s/required/%d", ptr, i)
			if e.Kind() != jsonvalue.KindString {
				return unsupported(at, "required entries must be strings")
			}
			if _, ok := f.Properties.Get(e.AsString()); !ok {
				return unsupported(at, "required key %q has no property schema", e.AsString())
			}
			f.Required[e.AsString()] = struct{}{}
		}
	}
	return nil
}

func unsupported(ptr, format string, args ...any) error {
	return &UnsupportedSchemaError{Pointer: ptr, Reason: fmt.Sprintf(format, args...)}
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escapePointer(s string) string {
	return pointerEscaper.Replace(s)
}
