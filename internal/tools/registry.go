package tools

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/studioflow/internal/metrics"
)

var errToolResult = errors.New("tool returned an error result")

// RegisterAll registers all tools with the MCP server.
// This is called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	add(server, deps, &mcp.Tool{
		Name:        "ping",
		Description: "Test tool - responds with pong or echoes input",
	}, NewPingHandler(deps))

	add(server, deps, &mcp.Tool{
		Name:        "list_jobs",
		Description: "List jobs with progress, status (IN_PROGRESS, DUE_SOON, OVERDUE, FINALIZED) and urgency tone. Finalized jobs are hidden unless requested",
	}, NewListJobsHandler(deps))

	add(server, deps, &mcp.Tool{
		Name:        "get_job",
		Description: "Get one job with its full checklist, progress, status and tone",
	}, NewGetJobHandler(deps))

	add(server, deps, &mcp.Tool{
		Name:        "create_job",
		Description: "Create a job with the checklist for its project type and delivery mode. The due date is 45 business days after the event date",
	}, NewCreateJobHandler(deps))

	add(server, deps, &mcp.Tool{
		Name:        "set_delivery_mode",
		Description: "Change a job's delivery mode and rebuild its checklist, keeping the state of tasks present in both templates",
	}, NewSetDeliveryModeHandler(deps))

	add(server, deps, &mcp.Tool{
		Name:        "set_event_date",
		Description: "Set a job's event date and recompute its due date; an empty date clears both",
	}, NewSetEventDateHandler(deps))

	add(server, deps, &mcp.Tool{
		Name:        "set_due_date",
		Description: "Override a job's due date; an empty date clears it",
	}, NewSetDueDateHandler(deps))

	add(server, deps, &mcp.Tool{
		Name:        "update_task",
		Description: "Update one checklist task: done flag, date, notes or choice",
	}, NewUpdateTaskHandler(deps))

	add(server, deps, &mcp.Tool{
		Name:        "finalize_job",
		Description: "Mark a job as delivered today",
	}, NewFinalizeJobHandler(deps))

	add(server, deps, &mcp.Tool{
		Name:        "delete_job",
		Description: "Delete a job permanently",
	}, NewDeleteJobHandler(deps))

	add(server, deps, &mcp.Tool{
		Name:        "summary",
		Description: "Count jobs by status",
	}, NewSummaryHandler(deps))

	add(server, deps, &mcp.Tool{
		Name:        "list_templates",
		Description: "List the checklist templates for each project type and delivery mode",
	}, NewListTemplatesHandler(deps))

	add(server, deps, &mcp.Tool{
		Name:        "server_stats",
		Description: "Show in-memory timing statistics since the server started",
	}, NewServerStatsHandler(deps))
}

// add registers h and times every call under the tool's name.
func add[In any](server *mcp.Server, deps *Dependencies, tool *mcp.Tool, h mcp.ToolHandlerFor[In, any]) {
	op := metrics.OpToolCall + "/" + tool.Name
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		res, out, err := h(ctx, req, in)

		failed := err
		if failed == nil && res != nil && res.IsError {
			failed = errToolResult
		}
		deps.Metrics.RecordResult(op, time.Since(start), failed)
		return res, out, err
	})
}
