package jsonvalue

import (
	"bytes"
	"strings"

	json "github.com/goccy/go-json"
)

// AppendJSON appends the compact JSON encoding of v to dst. Object members are
// written in order, repeated keys included.
func (v Value) AppendJSON(dst []byte) []byte {
	switch v.kind {
	case KindNull:
		return append(dst, "null"...)
	case KindBool:
		if v.boolean {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case KindNumber:
		return append(dst, v.text...)
	case KindString:
		return appendString(dst, v.text)
	case KindArray:
		dst = append(dst, '[')
		for i, item := range v.items {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = item.AppendJSON(dst)
		}
		return append(dst, ']')
	case KindObject:
		dst = append(dst, '{')
		for i, m := range v.members {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendString(dst, m.Key)
			dst = append(dst, ':')
			dst = m.Value.AppendJSON(dst)
		}
		return append(dst, '}')
	}
	return dst
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.AppendJSON(nil), nil
}

// String returns the compact JSON encoding of v.
func (v Value) String() string {
	return string(v.AppendJSON(nil))
}

// MarshalIndent encodes v with each nesting level indented by width spaces.
// A width of zero yields the compact encoding.
func MarshalIndent(v Value, width int) ([]byte, error) {
	compact := v.AppendJSON(nil)
	if width <= 0 {
		return compact, nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", strings.Repeat(" ", width)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appendString(dst []byte, s string) []byte {
	b, err := json.MarshalNoEscape(s)
	if err != nil {
		// strings always encode
		return append(dst, `""`...)
	}
	return append(dst, b...)
}
