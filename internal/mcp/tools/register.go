package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: infer_schema
	AddTool(srv, &sdkmcp.Tool{
		Name:        "infer_schema",
		Description: "Infer the most specific JSON Schema (draft-07) that validates every supplied sample. Returns {schema, sample_count, all_match, field_stats, query_errors, hint}. Samples are JSON or YAML text; a single entry may hold several values. Set query to a jq expression to infer the schema of a nested part (e.g. '.data.items[]'). Set style to anyof or openapi for other dialects, include_stats=true for per-field frequency and nullability.",
	}, ToolInferSchema(d))

	// Tool 2: merge_schemas
	AddTool(srv, &sdkmcp.Tool{
		Name:        "merge_schemas",
		Description: "Merge draft-07 schemas previously returned by infer_schema into one schema that accepts everything each input accepted. Returns {schema, schema_count, hint}. Properties are unioned, a property stays required only if every schema requires it, and type conflicts become type unions. Only the keywords infer_schema emits are supported.",
	}, ToolMergeSchemas(d))
}
