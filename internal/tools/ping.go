package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PingInput defines the input schema for the ping tool.
type PingInput struct {
	Echo string `json:"echo,omitempty" jsonschema:"Text to echo back"`
}

// NewPingHandler creates a ping tool handler with injected dependencies.
// Responds with the echo text, or with "pong" and the studio's current day.
func NewPingHandler(deps *Dependencies) mcp.ToolHandlerFor[PingInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input PingInput) (*mcp.CallToolResult, any, error) {
		if input.Echo != "" {
			return TextResult(input.Echo), nil, nil
		}
		if deps == nil || deps.Jobs == nil {
			return TextResult("pong"), nil, nil
		}
		return TextResult(fmt.Sprintf("pong (today is %s)", deps.Jobs.Today().Format("2006-01-02"))), nil, nil
	}
}
