package query

import (
	"fmt"
	"math/big"
	"reflect"
	"sort"

	"github.com/goccy/go-json"

	"github.com/usestring/schemainfer/pkg/jsonvalue"
)

// sourceIndex converts jq outputs back into values using the input they came
// from. gojq works on Go maps, so member order and number literals are lost
// on the way in. Any part of an output equal to a part of the input gets that
// part back verbatim; other objects order their keys by first appearance in
// the input, then alphabetically.
type sourceIndex struct {
	input jsonvalue.Value
	built bool
	parts map[string][]jsonvalue.Value // canonical jq encoding -> source values
	rank  map[string]int               // key -> first appearance in input
}

func newSourceIndex(input jsonvalue.Value) *sourceIndex {
	return &sourceIndex{input: input}
}

func (s *sourceIndex) convert(out any) (jsonvalue.Value, error) {
	switch t := out.(type) {
	case map[string]any:
		if v, ok := s.lookup(out); ok {
			return v, nil
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		s.orderKeys(keys)
		members := make([]jsonvalue.Member, 0, len(keys))
		for _, k := range keys {
			v, err := s.convert(t[k])
			if err != nil {
				return jsonvalue.Value{}, fmt.Errorf("%q: %w", k, err)
			}
			members = append(members, jsonvalue.Member{Key: k, Value: v})
		}
		return jsonvalue.Object(members...), nil

	case []any:
		if v, ok := s.lookup(out); ok {
			return v, nil
		}
		items := make([]jsonvalue.Value, 0, len(t))
		for i, e := range t {
			v, err := s.convert(e)
			if err != nil {
				return jsonvalue.Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			items = append(items, v)
		}
		return jsonvalue.Array(items...), nil

	case int, float64, *big.Int:
		if v, ok := s.lookup(out); ok {
			return v, nil
		}
	}
	return jsonvalue.FromAny(out)
}

func (s *sourceIndex) lookup(out any) (jsonvalue.Value, bool) {
	s.build()
	key, ok := canonical(out)
	if !ok {
		return jsonvalue.Value{}, false
	}
	// The encoding does not tell 0 from 0.0; compare the jq forms.
	for _, v := range s.parts[key] {
		if reflect.DeepEqual(toJQ(v), out) {
			return v, true
		}
	}
	return jsonvalue.Value{}, false
}

func (s *sourceIndex) build() {
	if s.built {
		return
	}
	s.built = true
	s.parts = make(map[string][]jsonvalue.Value)
	s.rank = make(map[string]int)
	s.walk(s.input)
}

func (s *sourceIndex) walk(v jsonvalue.Value) {
	switch v.Kind() {
	case jsonvalue.KindObject:
		for _, m := range v.Members() {
			if _, ok := s.rank[m.Key]; !ok {
				s.rank[m.Key] = len(s.rank)
			}
			s.walk(m.Value)
		}
	case jsonvalue.KindArray:
		for _, item := range v.Items() {
			s.walk(item)
		}
	case jsonvalue.KindNumber:
	default:
		return
	}

	jq := toJQ(v)
	// jq keeps the last of repeated keys; such objects cannot come back whole.
	if m, ok := jq.(map[string]any); ok && len(m) != v.Len() {
		return
	}
	key, ok := canonical(jq)
	if !ok {
		return
	}
	for _, p := range s.parts[key] {
		if jsonvalue.Equal(p, v) {
			return
		}
	}
	s.parts[key] = append(s.parts[key], v)
}

func (s *sourceIndex) orderKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		ri, iok := s.rank[keys[i]]
		rj, jok := s.rank[keys[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		}
		return keys[i] < keys[j]
	})
}

// canonical encodes a jq value with sorted map keys.
func canonical(x any) (string, bool) {
	data, err := json.Marshal(x)
	if err != nil {
		return "", false
	}
	return string(data), true
}
