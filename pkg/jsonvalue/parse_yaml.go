package jsonvalue

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// maxYAMLDepth bounds alias expansion and nesting.
const maxYAMLDepth = 1000

// ParseYAML parses every document of a YAML stream. Mapping keys must be
// scalars. Timestamps and binary scalars become strings; .inf and .nan are
// rejected with ErrNonFinite.
func ParseYAML(data []byte) ([]Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var out []Value
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parse yaml document %d: %w", len(out), err)
		}
		v, err := fromYAMLNode(&doc, 0)
		if err != nil {
			return nil, fmt.Errorf("yaml document %d: %w", len(out), err)
		}
		out = append(out, v)
	}
	return out, nil
}

func fromYAMLNode(n *yaml.Node, depth int) (Value, error) {
	if depth > maxYAMLDepth {
		return Value{}, fmt.Errorf("yaml nesting exceeds %d levels", maxYAMLDepth)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return fromYAMLNode(n.Content[0], depth+1)
	case yaml.AliasNode:
		if n.Alias == nil {
			return Value{}, fmt.Errorf("line %d: unresolved alias %q", n.Line, n.Value)
		}
		return fromYAMLNode(n.Alias, depth+1)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := fromYAMLNode(c, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Array(items...), nil
	case yaml.MappingNode:
		return fromYAMLMapping(n, depth)
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	}
	return Value{}, fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
}

func fromYAMLMapping(n *yaml.Node, depth int) (Value, error) {
	explicit := make(map[string]struct{}, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k := resolveAlias(n.Content[i]); k.Kind == yaml.ScalarNode && k.ShortTag() != "!!merge" {
			explicit[k.Value] = struct{}{}
		}
	}

	members := make([]Member, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := resolveAlias(n.Content[i]), n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return Value{}, fmt.Errorf("line %d: mapping key must be a scalar", k.Line)
		}
		if k.ShortTag() == "!!merge" {
			merged, err := mergeMembers(v, depth+1)
			if err != nil {
				return Value{}, err
			}
			for _, m := range merged {
				if _, ok := explicit[m.Key]; ok {
					continue
				}
				members = append(members, m)
			}
			continue
		}
		cv, err := fromYAMLNode(v, depth+1)
		if err != nil {
			return Value{}, err
		}
		members = append(members, Member{Key: k.Value, Value: cv})
	}
	return Object(members...), nil
}

// mergeMembers expands the value of a "<<" key: a mapping or a sequence of
// mappings, possibly through aliases.
func mergeMembers(n *yaml.Node, depth int) ([]Member, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		v, err := fromYAMLMapping(n, depth)
		if err != nil {
			return nil, err
		}
		return v.Members(), nil
	case yaml.SequenceNode:
		var out []Member
		for _, c := range n.Content {
			ms, err := mergeMembers(c, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, ms...)
		}
		return out, nil
	}
	return nil, fmt.Errorf("line %d: merge value must be a mapping", n.Line)
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for i := 0; n.Kind == yaml.AliasNode && n.Alias != nil && i < maxYAMLDepth; i++ {
		n = n.Alias
	}
	return n
}

func fromYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return Number(strconv.FormatUint(u, 10))
		}
		return yamlFloat(n)
	case "!!float":
		return yamlFloat(n)
	}
	return String(n.Value), nil
}

func yamlFloat(n *yaml.Node) (Value, error) {
	var f float64
	if err := n.Decode(&f); err != nil {
		return Value{}, fmt.Errorf("line %d: %w", n.Line, err)
	}
	v, err := Float(f)
	if err != nil {
		return Value{}, fmt.Errorf("line %d: %q: %w", n.Line, n.Value, err)
	}
	return v, nil
}
