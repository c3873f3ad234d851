// Package prompts contains MCP prompt implementations for schemainfer.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	MaxToolSamples int
	StatsMaxDepth  int
}
