package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/studioflow/internal/models"
	"github.com/raphaelgruber/studioflow/internal/service"
)

// SetDeliveryModeInput defines the input schema for the set_delivery_mode tool.
type SetDeliveryModeInput struct {
	Job          string `json:"job" jsonschema:"Job id or a unique prefix of it"`
	DeliveryMode string `json:"delivery_mode" jsonschema:"DIGITAL_ONLY or DIGITAL_PLUS_ALBUM"`
}

// SetDateInput defines the input schema for the date tools.
type SetDateInput struct {
	Job  string `json:"job" jsonschema:"Job id or a unique prefix of it"`
	Date string `json:"date" jsonschema:"Date YYYY-MM-DD, or an empty string to clear it"`
}

// UpdateTaskInput defines the input schema for the update_task tool.
// Omitted fields are left unchanged.
type UpdateTaskInput struct {
	Job    string  `json:"job" jsonschema:"Job id or a unique prefix of it"`
	TaskID string  `json:"task_id" jsonschema:"Task id from the job's checklist"`
	Done   *bool   `json:"done,omitempty" jsonschema:"Mark the task done or not done"`
	Date   *string `json:"date,omitempty" jsonschema:"Task date YYYY-MM-DD, only on tasks with a date"`
	Notes  *string `json:"notes,omitempty" jsonschema:"Task notes"`
	Choice *string `json:"choice,omitempty" jsonschema:"ONLINE, IN_PERSON or empty, only on client-facing tasks"`
}

// NewSetDeliveryModeHandler creates the set_delivery_mode tool handler.
// The checklist is rebuilt from the new template, keeping the state of
// tasks present in both.
func NewSetDeliveryModeHandler(deps *Dependencies) mcp.ToolHandlerFor[SetDeliveryModeInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SetDeliveryModeInput) (*mcp.CallToolResult, any, error) {
		mode, ok := models.ParseDeliveryMode(input.DeliveryMode)
		if !ok {
			return serviceError(service.ErrInvalidDeliveryMode), nil, nil
		}
		job, err := deps.Jobs.SetDeliveryMode(ctx, input.Job, mode)
		if err != nil {
			return serviceError(err), nil, nil
		}
		return JSONResult(deps.describe(job)), nil, nil
	}
}

// NewSetEventDateHandler creates the set_event_date tool handler.
func NewSetEventDateHandler(deps *Dependencies) mcp.ToolHandlerFor[SetDateInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SetDateInput) (*mcp.CallToolResult, any, error) {
		job, err := deps.Jobs.SetEventDate(ctx, input.Job, input.Date)
		if err != nil {
			return serviceError(err), nil, nil
		}
		return JSONResult(deps.describe(job)), nil, nil
	}
}

// NewSetDueDateHandler creates the set_due_date tool handler.
func NewSetDueDateHandler(deps *Dependencies) mcp.ToolHandlerFor[SetDateInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SetDateInput) (*mcp.CallToolResult, any, error) {
		job, err := deps.Jobs.SetDueDate(ctx, input.Job, input.Date)
		if err != nil {
			return serviceError(err), nil, nil
		}
		return JSONResult(deps.describe(job)), nil, nil
	}
}

// NewUpdateTaskHandler creates the update_task tool handler.
func NewUpdateTaskHandler(deps *Dependencies) mcp.ToolHandlerFor[UpdateTaskInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input UpdateTaskInput) (*mcp.CallToolResult, any, error) {
		patch := service.TaskPatch{
			Done:  input.Done,
			Date:  input.Date,
			Notes: input.Notes,
		}
		if input.Choice != nil {
			c, ok := models.ParseChoice(*input.Choice)
			if !ok {
				return serviceError(service.ErrInvalidChoice), nil, nil
			}
			patch.Choice = &c
		}
		if patch == (service.TaskPatch{}) {
			return ErrorResult("Nothing to update", "Provide done, date, notes or choice"), nil, nil
		}

		job, err := deps.Jobs.UpdateTask(ctx, input.Job, input.TaskID, patch)
		if err != nil {
			return serviceError(err), nil, nil
		}
		return JSONResult(deps.describe(job)), nil, nil
	}
}
