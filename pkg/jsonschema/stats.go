package jsonschema

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/schemainfer/pkg/jsonvalue"
)

// FieldStat contains per-field statistics computed across multiple JSON samples.
type FieldStat struct {
	Path          string            `json:"path"`                 // Field path (e.g., "user.name", "items[].id")
	Type          string            `json:"type"`                 // Type names joined by "|"
	Frequency     float64           `json:"frequency"`            // Fraction of observations containing this field (0.0-1.0)
	Required      bool              `json:"required"`             // Present in every observation and never null
	Nullable      bool              `json:"nullable"`             // At least one observation has null for this field
	DistinctCount int               `json:"distinct_count"`       // Number of distinct non-null values observed
	Examples      []jsonvalue.Value `json:"examples"`             // Up to 3 scalar example values
	MissingIn     []uint32          `json:"missing_in,omitempty"` // Indices of samples lacking the field
}

const (
	DefaultStatsMaxDepth = 5
	maxExamples          = 3
)

// observation is one object seen at the current level, tagged with the index
// of the top-level sample it came from.
type observation struct {
	sample uint32
	value  jsonvalue.Value
}

// ComputeFieldStats walks the merged fragment and computes per-field
// statistics by cross-referencing the raw samples. Returns a flat table of
// field stats in property order.
func ComputeFieldStats(f *Fragment, samples []jsonvalue.Value) []FieldStat {
	return ComputeFieldStatsDepth(f, samples, DefaultStatsMaxDepth)
}

// ComputeFieldStatsDepth is ComputeFieldStats with an explicit nesting limit.
func ComputeFieldStatsDepth(f *Fragment, samples []jsonvalue.Value, maxDepth int) []FieldStat {
	if f == nil || len(samples) == 0 {
		return nil
	}

	obs := make([]observation, 0, len(samples))
	for i, s := range samples {
		if s.Kind() == jsonvalue.KindObject {
			obs = append(obs, observation{sample: uint32(i), value: s})
		}
	}
	if len(obs) == 0 {
		return nil
	}

	var stats []FieldStat
	walkFragment(f, "", obs, 0, maxDepth, &stats)
	return stats
}

func walkFragment(f *Fragment, path string, obs []observation, depth, maxDepth int, stats *[]FieldStat) {
	if f == nil || !f.Types.Has(TypeObject) || len(obs) == 0 {
		return
	}
	if depth > maxDepth {
		if path != "" {
			*stats = append(*stats, FieldStat{
				Path: path + " (truncated at depth limit)",
				Type: "...",
			})
		}
		return
	}

	for _, key := range f.PropertyKeys() {
		child, _ := f.Property(key)

		fieldPath := key
		if path != "" {
			fieldPath = path + "." + key
		}

		*stats = append(*stats, computeSingleFieldStat(fieldPath, child, key, obs))

		if child.Types.Has(TypeObject) {
			walkFragment(child, fieldPath, collectNested(key, obs), depth+1, maxDepth, stats)
		}
		if child.Types.Has(TypeArray) && child.Items != nil && child.Items.Types.Has(TypeObject) {
			walkFragment(child.Items, fieldPath+"[]", collectArrayItems(key, obs), depth+1, maxDepth, stats)
		}
	}
}

// computeSingleFieldStat computes statistics for a single field across all
// observations at one level.
func computeSingleFieldStat(path string, f *Fragment, key string, obs []observation) FieldStat {
	stat := FieldStat{
		Path: path,
		Type: f.Types.String(),
	}

	present := roaring.New()
	nulls := roaring.New()
	distinct := make(map[string]struct{})

	for i, o := range obs {
		val, ok := o.value.Get(key)
		if !ok {
			continue
		}
		present.Add(uint32(i))

		if val.IsNull() {
			nulls.Add(uint32(i))
			continue
		}

		// Objects and arrays count as distinct values but are not kept as
		// examples; their own field stats describe them.
		text := val.String()
		if _, seen := distinct[text]; seen {
			continue
		}
		distinct[text] = struct{}{}
		if k := val.Kind(); k != jsonvalue.KindObject && k != jsonvalue.KindArray && len(stat.Examples) < maxExamples {
			stat.Examples = append(stat.Examples, val)
		}
	}

	total := uint64(len(obs))
	stat.Frequency = float64(present.GetCardinality()) / float64(total)
	stat.Required = present.GetCardinality() == total && nulls.IsEmpty()
	stat.Nullable = !nulls.IsEmpty()
	stat.DistinctCount = len(distinct)

	missing := roaring.Flip(present, 0, total)
	if !missing.IsEmpty() {
		samples := roaring.New()
		it := missing.Iterator()
		for it.HasNext() {
			samples.Add(obs[it.Next()].sample)
		}
		stat.MissingIn = samples.ToArray()
	}

	return stat
}

// collectNested extracts the object value of a field from each observation.
func collectNested(key string, obs []observation) []observation {
	var nested []observation
	for _, o := range obs {
		if val, ok := o.value.Get(key); ok && val.Kind() == jsonvalue.KindObject {
			nested = append(nested, observation{sample: o.sample, value: val})
		}
	}
	return nested
}

// collectArrayItems extracts every object element of an array field across
// observations.
func collectArrayItems(key string, obs []observation) []observation {
	var items []observation
	for _, o := range obs {
		val, ok := o.value.Get(key)
		if !ok || val.Kind() != jsonvalue.KindArray {
			continue
		}
		for _, item := range val.Items() {
			if item.Kind() == jsonvalue.KindObject {
				items = append(items, observation{sample: o.sample, value: item})
			}
		}
	}
	return items
}
