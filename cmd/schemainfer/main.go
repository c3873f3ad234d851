// Command schemainfer prints the JSON Schema that validates every value in the
// given JSON or YAML files (or stdin).
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"

	"github.com/usestring/schemainfer/internal/config"
	"github.com/usestring/schemainfer/internal/logging"
	"github.com/usestring/schemainfer/internal/query"
	"github.com/usestring/schemainfer/internal/samples"
	"github.com/usestring/schemainfer/pkg/contenttype"
	"github.com/usestring/schemainfer/pkg/jsonschema"
	"github.com/usestring/schemainfer/pkg/jsonvalue"
	"github.com/usestring/schemainfer/pkg/shape"
)

const usage = `Usage: schemainfer [flags] [file ...]

Infers a JSON Schema (draft-07) that validates every value in the input files,
or stdin when no file is given ("-" also reads stdin). JSON files may hold
several whitespace-separated values and YAML files several documents; every
value is one sample.

Flags:
`

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	logCleanup, err := logging.Setup(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		FilePath:   cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "schemainfer: failed to setup logging: %v\n", err)
		os.Exit(1)
	}

	err = run(ctx, cfg, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	_ = logCleanup()

	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errUsage):
		os.Exit(2)
	default:
		slog.Error("schemainfer failed", "error", err)
		os.Exit(1)
	}
}

// errUsage marks flag errors; the flag package has already printed them.
var errUsage = errors.New("usage error")

// options is the parsed command line.
type options struct {
	format               contenttype.Format
	query                string
	base                 string
	style                shape.Style
	stats                bool
	additionalProperties *bool
	indent               int
	files                []string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("schemainfer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}

	format := fs.String("format", "auto", "input format: auto, json or yaml (auto uses the extension, then content sniffing)")
	queryExpr := fs.String("query", "", "jq expression applied to every value; each output becomes a sample")
	base := fs.String("base", "", "schema document (draft07 JSON) to merge the inferred schema into")
	style := fs.String("style", string(shape.StyleDraft07), "output style: draft07, anyof or openapi")
	stats := fs.Bool("stats", false, "print per-field statistics instead of the schema")
	additional := fs.String("additional-properties", "", "set additionalProperties on every object schema: true or false (unset by default)")
	indent := fs.Int("indent", 2, "indentation width; 0 prints compact JSON")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, errUsage
	}

	opts := &options{
		query:  *queryExpr,
		base:   *base,
		stats:  *stats,
		indent: *indent,
		files:  fs.Args(),
	}

	var err error
	if opts.format, err = contenttype.ParseFormat(*format); err != nil {
		return nil, err
	}
	if opts.style, err = shape.ParseStyle(*style); err != nil {
		return nil, err
	}
	if *additional != "" {
		b, err := strconv.ParseBool(*additional)
		if err != nil {
			return nil, fmt.Errorf("invalid -additional-properties %q: want true or false", *additional)
		}
		opts.additionalProperties = &b
	}
	if opts.indent < 0 {
		return nil, fmt.Errorf("invalid -indent %d: must not be negative", opts.indent)
	}
	return opts, nil
}

func run(ctx context.Context, cfg *config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	var base *jsonschema.Fragment
	if opts.base != "" {
		data, err := os.ReadFile(opts.base)
		if err != nil {
			return fmt.Errorf("read base schema: %w", err)
		}
		if base, err = shape.ParseSchema(data); err != nil {
			return fmt.Errorf("base schema %s: %w", opts.base, err)
		}
	}

	start := time.Now()
	loadCtx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
	defer cancel()

	loader := samples.NewLoader(samples.Options{
		Format:     opts.format,
		Workers:    cfg.LoadWorkers,
		MaxSamples: cfg.MaxSamples,
		MaxBytes:   cfg.MaxSampleBytes,
	})
	loaded, err := loader.LoadFiles(loadCtx, opts.files, stdin)
	if err != nil {
		return err
	}

	engine := shape.NewEngine(query.NewEngine(cfg.MaxQueryResults))
	result, err := engine.Analyze(ctx, samples.Values(loaded), samples.Labels(loaded), shape.Options{
		Query:                opts.query,
		Base:                 base,
		Style:                opts.style,
		AdditionalProperties: opts.additionalProperties,
		IncludeStats:         opts.stats,
		StatsMaxDepth:        cfg.StatsMaxDepth,
	})
	if err != nil {
		return err
	}

	for _, msg := range result.QueryErrors {
		slog.Warn("query failed for sample", slog.String("error", msg))
	}
	if result.Truncated {
		slog.Warn("query output truncated", slog.Int("max_results", cfg.MaxQueryResults))
	}
	slog.Debug("inferred schema",
		slog.Int("samples", result.SampleCount),
		slog.Bool("all_match", result.AllMatch),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	var out []byte
	if opts.stats {
		out, err = marshalStats(result.FieldStats, opts.indent)
	} else {
		out, err = jsonvalue.MarshalIndent(result.Schema, opts.indent)
	}
	if err != nil {
		return err
	}

	out = append(out, '\n')
	_, err = stdout.Write(out)
	return err
}

func marshalStats(stats []jsonschema.FieldStat, indent int) ([]byte, error) {
	if stats == nil {
		stats = []jsonschema.FieldStat{}
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("encode field stats: %w", err)
	}
	if indent == 0 {
		return data, nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", strings.Repeat(" ", indent)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
