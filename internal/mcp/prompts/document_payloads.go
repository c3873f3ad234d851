package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleDocumentPayloads implements the payload documentation workflow.
func HandleDocumentPayloads(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		subject := ""
		style := "draft07"
		if args := req.Params.Arguments; args != nil {
			if v, ok := args["subject"]; ok {
				subject = v
			}
			if v, ok := args["style"]; ok && v != "" {
				style = v
			}
		}

		var sb strings.Builder

		sb.WriteString("# Document Payloads with an Inferred Schema\n\n")
		sb.WriteString("You are documenting the structure of example payloads. ")
		sb.WriteString("Your goal is a schema that accepts every example and a short description of each field.\n\n")
		if subject != "" {
			fmt.Fprintf(&sb, "**Subject**: %s\n\n", subject)
		}

		sb.WriteString("## Workflow\n\n")
		sb.WriteString("1. **Collect examples**: gather representative payloads, including edge cases (empty lists, missing fields, nulls)\n")
		fmt.Fprintf(&sb, "2. **Infer**: `infer_schema(samples: [...], include_stats: true)`; split into batches of at most %d entries\n", cfg.MaxToolSamples)
		sb.WriteString("3. **Combine batches**: `merge_schemas(schemas: [...])` with the draft07 schema of each batch\n")
		sb.WriteString("4. **Review**: use `field_stats` to explain optional (`frequency < 1`) and nullable fields, and `missing_in` to find odd samples\n")
		if style != "draft07" {
			fmt.Fprintf(&sb, "5. **Export**: call `infer_schema` once more with `style: %q` for the final document\n", style)
		}

		sb.WriteString("\n## Output\n\n")
		sb.WriteString("- The final schema document\n")
		sb.WriteString("- A table of fields: path, type, required, notes from the statistics\n")
		sb.WriteString("- Any samples that look malformed, with the reason\n")

		return &sdkmcp.GetPromptResult{
			Description: "Workflow for documenting payloads from examples",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
