package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/schemainfer/internal/config"
	"github.com/usestring/schemainfer/internal/samples"
)

func testConfig() *config.Config {
	return &config.Config{
		LoadWorkers:     2,
		LoadTimeout:     5 * time.Second,
		MaxSamples:      100,
		MaxSampleBytes:  1 << 20,
		StatsMaxDepth:   config.DefaultStatsMaxDepth,
		MaxQueryResults: 100,
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), testConfig(), args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), err
}

func TestRun_Stdin(t *testing.T) {
	out, err := runCLI(t, `{"id": 1, "name": "Alice"} {"id": 2}`, "-indent", "0")
	require.NoError(t, err)
	assert.Equal(t,
		`{"$schema":"http://json-schema.org/draft-07/schema#","type":"object","properties":{"id":{"type":"integer"},"name":{"type":"string"}},"required":["id"]}`+"\n",
		out)
}

func TestRun_OutOfRangeNumbers(t *testing.T) {
	out, err := runCLI(t, `{"big": 1e400, "tiny": 1e-400}`, "-indent", "0")
	require.NoError(t, err)
	assert.Equal(t,
		`{"$schema":"http://json-schema.org/draft-07/schema#","type":"object","properties":{"big":{"type":"number"},"tiny":{"type":"number"}},"required":["big","tiny"]}`+"\n",
		out)
}

func TestRun_Files(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"tags": ["x"], "score": 1}`)
	b := writeFile(t, dir, "b.yaml", "tags: []\nscore: 2.5\n")

	out, err := runCLI(t, "", a, b)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{\n  \"$schema\""), out)
	assert.JSONEq(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"properties": {
			"tags": {"type": "array", "items": {"type": "string"}},
			"score": {"type": "number"}
		},
		"required": ["tags", "score"]
	}`, out)
}

func TestRun_QueryAndStyle(t *testing.T) {
	out, err := runCLI(t, `{"items": [{"v": 1}, {"v": "x"}]}`,
		"-query", ".items[]", "-style", "anyof", "-additional-properties", "false")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"properties": {"v": {"anyOf": [{"type": "integer"}, {"type": "string"}]}},
		"required": ["v"],
		"additionalProperties": false
	}`, out)
}

func TestRun_Base(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.json",
		`{"type":"object","properties":{"id":{"type":"integer"},"legacy":{"type":"string"}},"required":["id","legacy"]}`)

	out, err := runCLI(t, `{"id": 3}`, "-base", base)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"properties": {"id": {"type": "integer"}, "legacy": {"type": "string"}},
		"required": ["id"]
	}`, out)
}

func TestRun_Stats(t *testing.T) {
	out, err := runCLI(t, `{"id": 1, "email": "a@b.c"} {"id": 2}`, "-stats")
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"path": "id", "type": "integer", "frequency": 1, "required": true, "nullable": false, "distinct_count": 2, "examples": [1, 2]},
		{"path": "email", "type": "string", "frequency": 0.5, "required": false, "nullable": false, "distinct_count": 1, "examples": ["a@b.c"], "missing_in": [1]}
	]`, out)

	out, err = runCLI(t, `"scalar"`, "-stats", "-indent", "0")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	badBase := writeFile(t, dir, "bad.json", `{"type":"string","minLength":2}`)

	tests := []struct {
		name  string
		stdin string
		args  []string
		is    error
	}{
		{"unknown flag", "1", []string{"-nope"}, errUsage},
		{"help", "1", []string{"-h"}, flag.ErrHelp},
		{"bad format", "1", []string{"-format", "xml"}, nil},
		{"bad style", "1", []string{"-style", "draft04"}, nil},
		{"bad additional properties", "1", []string{"-additional-properties", "maybe"}, nil},
		{"negative indent", "1", []string{"-indent", "-1"}, nil},
		{"missing file", "", []string{filepath.Join(dir, "missing.json")}, os.ErrNotExist},
		{"missing base", "1", []string{"-base", filepath.Join(dir, "missing.json")}, os.ErrNotExist},
		{"unsupported base", "1", []string{"-base", badBase}, nil},
		{"malformed input", `{"a":`, nil, nil},
		{"empty input", "  ", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Empty(t, out)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), "got %v", err)
			}
		})
	}
}

func TestRun_TooManySamples(t *testing.T) {
	cfg := testConfig()
	cfg.MaxSamples = 2

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), cfg, nil, strings.NewReader("1 2 3"), &stdout, &stderr)
	require.ErrorIs(t, err, samples.ErrTooManySamples)
}
