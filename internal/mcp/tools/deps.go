package tools

import (
	"context"
	"fmt"

	"github.com/usestring/schemainfer/internal/cache"
	"github.com/usestring/schemainfer/internal/config"
	"github.com/usestring/schemainfer/internal/samples"
	"github.com/usestring/schemainfer/pkg/contenttype"
	"github.com/usestring/schemainfer/pkg/shape"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config *config.Config
	Shape  *shape.Engine
	Cache  *cache.Cache[*shape.Result]
}

// LoadSamples parses in-memory documents into values. Document i is named
// "sample[i]" in labels and errors.
func (d *Deps) LoadSamples(ctx context.Context, format contenttype.Format, docs []string) ([]samples.Sample, error) {
	sources := make([]samples.Source, len(docs))
	for i, doc := range docs {
		sources[i] = samples.Source{
			Name: fmt.Sprintf("sample[%d]", i),
			Data: []byte(doc),
		}
	}

	loader := samples.NewLoader(samples.Options{
		Format:     format,
		Workers:    d.Config.LoadWorkers,
		MaxSamples: d.Config.MaxSamples,
		MaxBytes:   d.Config.MaxSampleBytes,
	})
	return loader.Load(ctx, sources)
}
