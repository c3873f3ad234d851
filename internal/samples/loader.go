// Package samples loads example documents from files, stdin or memory and
// parses them into values, concurrently and in a deterministic order.
package samples

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/usestring/schemainfer/internal/logging"
	"github.com/usestring/schemainfer/pkg/contenttype"
	"github.com/usestring/schemainfer/pkg/jsonvalue"
)

// StdinName is the source name that reads standard input.
const StdinName = "-"

var (
	// ErrTooManySamples is returned when the sources hold more values than
	// Options.MaxSamples.
	ErrTooManySamples = errors.New("samples: too many samples")
	// ErrTooLarge is returned when a source exceeds Options.MaxBytes.
	ErrTooLarge = errors.New("samples: input too large")
)

// Source is one input document.
type Source struct {
	Name        string // File path, StdinName, or a label for in-memory data
	ContentType string // Optional media type hint
	Data        []byte // Preloaded content; when nil the file Name is read
}

// Sample is one parsed value and where it came from.
type Sample struct {
	Source string
	Index  int // Position of the value within its source
	Value  jsonvalue.Value
}

// Label identifies the sample in messages, e.g. "events.jsonl#3".
func (s Sample) Label() string {
	return s.Source + "#" + strconv.Itoa(s.Index)
}

// Options controls loading.
type Options struct {
	Format     contenttype.Format // Auto, JSON or YAML
	Workers    int                // Parallel file reads (default 1)
	MaxSamples int                // Cap on parsed values, 0 = unlimited
	MaxBytes   int                // Cap on bytes per source, 0 = unlimited
}

// Loader reads and parses sources.
type Loader struct {
	opts Options
}

// NewLoader creates a loader.
func NewLoader(opts Options) *Loader {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Format == contenttype.Unknown {
		opts.Format = contenttype.Auto
	}
	return &Loader{opts: opts}
}

// LoadFiles loads the named files, or stdin when paths is empty. A path of
// StdinName also reads stdin.
func (l *Loader) LoadFiles(ctx context.Context, paths []string, stdin io.Reader) ([]Sample, error) {
	if len(paths) == 0 {
		paths = []string{StdinName}
	}

	sources := make([]Source, len(paths))
	for i, p := range paths {
		sources[i] = Source{Name: p}
		if p != StdinName {
			continue
		}
		// stdin is read once, up front
		data, err := l.readAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		sources[i].Data = data
		for j := i + 1; j < len(paths); j++ {
			if paths[j] == StdinName {
				return nil, errors.New("stdin can only be read once")
			}
		}
	}

	return l.Load(ctx, sources)
}

// Load parses every source using a bounded worker pool. Samples are returned
// in source order, then in order within each source, regardless of which
// worker finished first.
func (l *Loader) Load(ctx context.Context, sources []Source) ([]Sample, error) {
	parsed := make([][]jsonvalue.Value, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.Workers)

	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data := src.Data
			if data == nil {
				var err error
				data, err = l.readFile(src.Name)
				if err != nil {
					return err
				}
			} else if l.opts.MaxBytes > 0 && len(data) > l.opts.MaxBytes {
				return fmt.Errorf("%s: %w: limit is %d bytes", src.Name, ErrTooLarge, l.opts.MaxBytes)
			}

			values, err := Decode(l.opts.Format, src.Name, src.ContentType, data)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Name, err)
			}

			slog.DebugContext(logging.WithAttrs(ctx, slog.String("source", src.Name)), "loaded source",
				slog.Int("bytes", len(data)),
				slog.Int("values", len(values)),
			)
			parsed[i] = values
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Sample
	for i, values := range parsed {
		for j, v := range values {
			if l.opts.MaxSamples > 0 && len(out) >= l.opts.MaxSamples {
				return nil, fmt.Errorf("%w: limit is %d", ErrTooManySamples, l.opts.MaxSamples)
			}
			out = append(out, Sample{Source: sources[i].Name, Index: j, Value: v})
		}
	}
	return out, nil
}

// Decode parses data in the given format. In Auto mode the format comes from
// the content type, then the name's extension, then sniffing. JSON input may
// hold several whitespace-separated values and YAML input several documents;
// each becomes one value. Blank input yields no values.
func Decode(format contenttype.Format, name, contentType string, data []byte) ([]jsonvalue.Value, error) {
	if format == contenttype.Auto || format == contenttype.Unknown {
		format = contenttype.Detect(name, contentType, data)
	}

	switch format {
	case contenttype.JSON:
		return jsonvalue.ParseJSONStream(data)
	case contenttype.YAML:
		return jsonvalue.ParseYAML(data)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return nil, errors.New("cannot detect input format")
}

// Values extracts the parsed values.
func Values(samples []Sample) []jsonvalue.Value {
	out := make([]jsonvalue.Value, len(samples))
	for i, s := range samples {
		out[i] = s.Value
	}
	return out
}

// Labels returns Sample.Label for every sample.
func Labels(samples []Sample) []string {
	out := make([]string, len(samples))
	for i, s := range samples {
		out[i] = s.Label()
	}
	return out
}

func (l *Loader) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := l.readAll(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

func (l *Loader) readAll(r io.Reader) ([]byte, error) {
	if r == nil {
		return []byte{}, nil
	}
	if l.opts.MaxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, int64(l.opts.MaxBytes)+1))
	if err != nil {
		return nil, err
	}
	if len(data) > l.opts.MaxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, l.opts.MaxBytes)
	}
	return data, nil
}
