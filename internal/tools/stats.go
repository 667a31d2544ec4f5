package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/studioflow/internal/metrics"
)

// StatsResult is the response from the server_stats tool.
type StatsResult struct {
	metrics.Snapshot
	Jobs int `json:"jobs"`
}

// NewServerStatsHandler creates the server_stats tool handler.
// Reports in-memory timings since the server started.
func NewServerStatsHandler(deps *Dependencies) mcp.ToolHandlerFor[struct{}, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
		if deps.Metrics == nil {
			return ErrorResult("Statistics are not collected", "Start the server with a metrics collector"), nil, nil
		}
		return JSONResult(StatsResult{
			Snapshot: deps.Metrics.Snapshot(),
			Jobs:     deps.Jobs.Snapshot().Len(),
		}), nil, nil
	}
}
