// Package mcpsrv provides an extensible MCP server for schema inference.
//
// This package exposes a high-level API for creating and running an MCP server
// with the builtin infer_schema and merge_schemas tools and the workflow
// prompts. Users can extend the server with custom tools, prompts, and
// resources using functional options.
//
// # Basic Usage
//
// Create a server with default configuration:
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Add custom tools using MCP SDK types directly:
//
//	import mcp "github.com/modelcontextprotocol/go-sdk/mcp"
//
//	type MyInput struct {
//	    Document string `json:"document"`
//	}
//
//	type MyOutput struct {
//	    Keys int `json:"keys"`
//	}
//
//	func myHandler(ctx context.Context, req *mcp.CallToolRequest, input MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	    return nil, MyOutput{Keys: 42}, nil
//	}
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithTool(&mcp.Tool{Name: "my_tool", Description: "My tool"}, myHandler),
//	)
//
// Tools that need the inference engine or the result cache use WithDepsTool.
//
// # Configuration
//
// Settings come from environment variables (LOG_LEVEL, CACHE_MAX_ITEMS,
// MAX_TOOL_SAMPLES and so on); options override them:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/schemainfer-mcp.log"),
//	    mcpsrv.WithMaxToolSamples(200),
//	)
package mcpsrv
