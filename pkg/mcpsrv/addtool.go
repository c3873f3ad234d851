package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemainfer/internal/mcp/tools"
)

// AddTool registers a tool with the server, panicking at startup if the zero
// value of Out does not validate against the schema the SDK infers for Out.
// The usual culprits are slice fields without omitzero and json.RawMessage
// fields; the panic message names the field.
//
// Use this instead of [sdkmcp.AddTool] to get the additional check.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
