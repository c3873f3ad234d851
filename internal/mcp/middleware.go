package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemainfer/internal/logging"
)

// LoggingMiddleware returns middleware that logs all incoming method calls.
// Tool calls put the tool name on the context, so it reaches every record
// logged during the call. Tool results flagged as errors are logged at warn
// level.
func LoggingMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()

			// Everything logged while the tool runs carries its name.
			if call, ok := req.(*sdkmcp.CallToolRequest); ok && call.Params != nil {
				ctx = logging.WithAttrs(ctx, slog.String("tool", call.Params.Name))
			}

			result, err := next(ctx, method, req)

			attrs := []slog.Attr{
				slog.String("method", method),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}

			switch {
			case err != nil:
				attrs = append(attrs, slog.String("error", err.Error()))
				slog.LogAttrs(ctx, slog.LevelError, "method call failed", attrs...)
			case isToolError(result):
				slog.LogAttrs(ctx, slog.LevelWarn, "tool returned error", attrs...)
			default:
				slog.LogAttrs(ctx, slog.LevelInfo, "method call completed", attrs...)
			}

			return result, err
		}
	}
}

func isToolError(r sdkmcp.Result) bool {
	res, ok := r.(*sdkmcp.CallToolResult)
	return ok && res != nil && res.IsError
}
