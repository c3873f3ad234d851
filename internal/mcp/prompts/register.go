package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	// Prompt 1: Tool usage guide
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "schema_guide",
		Description: "RECOMMENDED: How to use infer_schema and merge_schemas, what the inferred keywords mean, and a jq quick reference.",
	}, HandleBasePrompt(cfg))

	// Prompt 2: Document payloads from examples
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "document_payloads",
		Description: "Step-by-step workflow for turning example payloads into a documented schema.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "subject",
				Description: "What the payloads are (e.g., 'webhook events from the billing service')",
				Required:    false,
			},
			{
				Name:        "style",
				Description: "Final output style: draft07 (default), anyof or openapi",
				Required:    false,
			},
		},
	}, HandleDocumentPayloads(cfg))
}
