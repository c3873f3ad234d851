package jsonvalue

import (
	"fmt"

	"github.com/valyala/fastjson"
)

// ParseJSON parses a single JSON document.
func ParseJSON(data []byte) (Value, error) {
	var p fastjson.Parser
	fv, err := p.ParseBytes(data)
	if err != nil {
		return Value{}, fmt.Errorf("parse json: %w", err)
	}
	return fromFastJSON(fv)
}

// ParseJSONStream parses a sequence of whitespace-separated JSON values, as
// found in JSON Lines files or concatenated JSON output. An input holding only
// whitespace yields no values.
func ParseJSONStream(data []byte) ([]Value, error) {
	var sc fastjson.Scanner
	sc.InitBytes(data)

	var out []Value
	for sc.Next() {
		v, err := fromFastJSON(sc.Value())
		if err != nil {
			return nil, fmt.Errorf("json value %d: %w", len(out), err)
		}
		out = append(out, v)
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("parse json value %d: %w", len(out), err)
	}
	return out, nil
}

func fromFastJSON(v *fastjson.Value) (Value, error) {
	switch v.Type() {
	case fastjson.TypeNull:
		return Null(), nil
	case fastjson.TypeTrue:
		return Bool(true), nil
	case fastjson.TypeFalse:
		return Bool(false), nil
	case fastjson.TypeString:
		b, err := v.StringBytes()
		if err != nil {
			return Value{}, err
		}
		return String(string(b)), nil
	case fastjson.TypeNumber:
		lit := string(v.MarshalTo(nil))
		n, err := Number(lit)
		if err != nil {
			return Value{}, fmt.Errorf("number %q: %w", lit, err)
		}
		return n, nil
	case fastjson.TypeArray:
		elems, err := v.Array()
		if err != nil {
			return Value{}, err
		}
		items := make([]Value, 0, len(elems))
		for i, e := range elems {
			item, err := fromFastJSON(e)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items = append(items, item)
		}
		return Array(items...), nil
	case fastjson.TypeObject:
		o, err := v.Object()
		if err != nil {
			return Value{}, err
		}
		members := make([]Member, 0, o.Len())
		var visitErr error
		o.Visit(func(key []byte, child *fastjson.Value) {
			if visitErr != nil {
				return
			}
			cv, err := fromFastJSON(child)
			if err != nil {
				visitErr = fmt.Errorf("%q: %w", key, err)
				return
			}
			members = append(members, Member{Key: string(key), Value: cv})
		})
		if visitErr != nil {
			return Value{}, visitErr
		}
		return Object(members...), nil
	}
	return Value{}, fmt.Errorf("unexpected json type %s", v.Type())
}
