package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleBasePrompt serves the tool usage guide.
func HandleBasePrompt(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var sb strings.Builder

		sb.WriteString("# Schema Inference Tool Guide\n\n")

		// --- infer_schema ---
		sb.WriteString("## infer_schema: Parameter Decision Table\n\n")
		sb.WriteString("| Goal | Parameter | Example |\n")
		sb.WriteString("|------|-----------|--------|\n")
		sb.WriteString("| Schema of whole documents | `samples` | `samples: [\"{\\\"id\\\": 1}\", \"{\\\"id\\\": 2}\"]` |\n")
		sb.WriteString("| Schema of a nested part | `query` | `query: \".data.items[]\"` |\n")
		sb.WriteString("| Force the parser | `format` | `format: \"yaml\"` |\n")
		sb.WriteString("| Unions as anyOf / OpenAPI output | `style` | `style: \"openapi\"` |\n")
		sb.WriteString("| Which fields are optional or nullable | `include_stats` | `include_stats: true` |\n")
		sb.WriteString("| Reject unknown keys | `additional_properties` | `additional_properties: false` |\n")

		sb.WriteString("\n**Key rules**:\n")
		fmt.Fprintf(&sb, "- At most %d entries per call in `samples`; each entry may hold several JSON values or YAML documents\n", cfg.MaxToolSamples)
		sb.WriteString("- A property is `required` only if every object sample has it; `null` values still count as present\n")
		sb.WriteString("- Integers and fractional numbers merge into `number`; other conflicts become type unions\n")
		sb.WriteString("- Empty arrays produce `items: {}`, which accepts anything\n")
		sb.WriteString("- Every jq output is a sample, `null` included (use `.x[]?` or `select(. != null)` to skip); per-sample jq failures are reported in `query_errors`\n")

		// --- Field statistics ---
		sb.WriteString("\n## Field Statistics\n")
		fmt.Fprintf(&sb, "- Paths use `.` for nesting and `[]` for array elements, walked up to %d levels deep\n", cfg.StatsMaxDepth)
		sb.WriteString("- `frequency` is the share of parent objects that contain the field\n")
		sb.WriteString("- `missing_in` lists the indices of samples lacking the field, useful for finding outliers\n")

		// --- merge_schemas ---
		sb.WriteString("\n## merge_schemas\n")
		sb.WriteString("- Combines draft07 outputs of `infer_schema`, e.g. schemas inferred from different batches\n")
		sb.WriteString("- Supported keywords: `$schema`, `type`, `properties`, `required`, `items`, `additionalProperties`, `title`, `description`\n")
		sb.WriteString("- Anything else (`pattern`, `minimum`, `$ref`, ...) is rejected with its JSON pointer\n")

		// --- JQ Quick Reference ---
		sb.WriteString("\n## JQ Quick Reference\n")
		sb.WriteString("- `.data.items[]` - One sample per array element\n")
		sb.WriteString("- `.[] | select(.type == \"event\")` - Only matching elements\n")
		sb.WriteString("- `.. | objects | select(has(\"id\"))` - Every nested object with an id\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for inferring and merging JSON schemas",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
