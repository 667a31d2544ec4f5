package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/studioflow/internal/models"
	"github.com/raphaelgruber/studioflow/internal/service"
)

// ListJobsInput defines the input schema for the list_jobs tool.
type ListJobsInput struct {
	IncludeFinalized bool   `json:"include_finalized,omitempty" jsonschema:"Also list finalized jobs"`
	Status           string `json:"status,omitempty" jsonschema:"Only jobs with this status: IN_PROGRESS, DUE_SOON, OVERDUE or FINALIZED"`
}

// JobSummary is one row of the list_jobs result.
type JobSummary struct {
	ID         string         `json:"id"`
	ClientName string         `json:"client_name"`
	EventName  string         `json:"event_name"`
	EventDate  string         `json:"event_date,omitempty"`
	DueDate    string         `json:"due_date,omitempty"`
	Progress   int            `json:"progress"`
	Status     service.Status `json:"status"`
	Tone       service.Tone   `json:"tone"`
	DaysLeft   *int           `json:"days_left,omitempty"`
}

// ListJobsResult is the response from the list_jobs tool.
type ListJobsResult struct {
	Today string       `json:"today"`
	Jobs  []JobSummary `json:"jobs"`
	Count int          `json:"count"`
}

// JobRefInput names one job.
type JobRefInput struct {
	Job string `json:"job" jsonschema:"Job id or a unique prefix of it"`
}

// CreateJobInput defines the input schema for the create_job tool.
type CreateJobInput struct {
	ClientName   string `json:"client_name" jsonschema:"Client name"`
	EventName    string `json:"event_name" jsonschema:"Event name, e.g. Wedding"`
	ProjectType  string `json:"project_type,omitempty" jsonschema:"EVENT (default) or PORTRAIT_SESSION"`
	DeliveryMode string `json:"delivery_mode,omitempty" jsonschema:"DIGITAL_PLUS_ALBUM (default) or DIGITAL_ONLY"`
	EventDate    string `json:"event_date,omitempty" jsonschema:"Event date YYYY-MM-DD; the due date follows 45 business days later"`
	Notes        string `json:"notes,omitempty" jsonschema:"Free-form notes"`
}

// NewListJobsHandler creates the list_jobs tool handler.
func NewListJobsHandler(deps *Dependencies) mcp.ToolHandlerFor[ListJobsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListJobsInput) (*mcp.CallToolResult, any, error) {
		want := service.Status(strings.ToUpper(strings.TrimSpace(input.Status)))
		switch want {
		case "", service.StatusInProgress, service.StatusDueSoon, service.StatusOverdue:
		case service.StatusFinalized:
			input.IncludeFinalized = true
		default:
			return ErrorResult("Unknown status "+input.Status, "Use IN_PROGRESS, DUE_SOON, OVERDUE or FINALIZED"), nil, nil
		}

		result := ListJobsResult{
			Today: deps.Jobs.Today().Format("2006-01-02"),
			Jobs:  []JobSummary{},
		}
		for _, v := range deps.Jobs.List(input.IncludeFinalized) {
			if want != "" && v.Status != want {
				continue
			}
			result.Jobs = append(result.Jobs, JobSummary{
				ID:         v.ID,
				ClientName: v.ClientName,
				EventName:  v.EventName,
				EventDate:  v.EventDate,
				DueDate:    v.DueDate,
				Progress:   v.Progress,
				Status:     v.Status,
				Tone:       v.Tone,
				DaysLeft:   v.DaysLeft,
			})
		}
		result.Count = len(result.Jobs)

		deps.Logger.Debug("list_jobs completed", "count", result.Count)
		return JSONResult(result), nil, nil
	}
}

// NewGetJobHandler creates the get_job tool handler.
// Returns the job with its checklist and derived progress, status and tone.
func NewGetJobHandler(deps *Dependencies) mcp.ToolHandlerFor[JobRefInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input JobRefInput) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(input.Job) == "" {
			return ErrorResult("Job is required", "Provide a job id or id prefix"), nil, nil
		}
		v, err := deps.Jobs.Get(input.Job)
		if err != nil {
			return serviceError(err), nil, nil
		}
		return JSONResult(v), nil, nil
	}
}

// NewCreateJobHandler creates the create_job tool handler.
func NewCreateJobHandler(deps *Dependencies) mcp.ToolHandlerFor[CreateJobInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateJobInput) (*mcp.CallToolResult, any, error) {
		in := service.NewJob{
			ClientName:   input.ClientName,
			EventName:    input.EventName,
			Notes:        input.Notes,
			EventDate:    input.EventDate,
			ProjectType:  models.DefaultProjectType,
			DeliveryMode: models.DefaultDeliveryMode,
		}
		if input.ProjectType != "" {
			pt, ok := models.ParseProjectType(input.ProjectType)
			if !ok {
				return ErrorResult("Unknown project type "+input.ProjectType, "Use EVENT or PORTRAIT_SESSION"), nil, nil
			}
			in.ProjectType = pt
		}
		if input.DeliveryMode != "" {
			dm, ok := models.ParseDeliveryMode(input.DeliveryMode)
			if !ok {
				return serviceError(service.ErrInvalidDeliveryMode), nil, nil
			}
			in.DeliveryMode = dm
		}

		job, err := deps.Jobs.Create(ctx, in)
		if err != nil {
			return serviceError(err), nil, nil
		}
		deps.Logger.Info("create_job completed", "job_id", job.ID)
		return JSONResult(deps.describe(job)), nil, nil
	}
}

// NewFinalizeJobHandler creates the finalize_job tool handler.
// Finalizing an already finalized job succeeds without changes.
func NewFinalizeJobHandler(deps *Dependencies) mcp.ToolHandlerFor[JobRefInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input JobRefInput) (*mcp.CallToolResult, any, error) {
		job, err := deps.Jobs.Finalize(ctx, input.Job)
		if err != nil {
			return serviceError(err), nil, nil
		}
		return JSONResult(deps.describe(job)), nil, nil
	}
}

// NewDeleteJobHandler creates the delete_job tool handler.
func NewDeleteJobHandler(deps *Dependencies) mcp.ToolHandlerFor[JobRefInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input JobRefInput) (*mcp.CallToolResult, any, error) {
		job, err := deps.Jobs.Delete(ctx, input.Job)
		if err != nil {
			return serviceError(err), nil, nil
		}
		deps.Logger.Info("delete_job completed", "job_id", job.ID)
		return TextResult(fmt.Sprintf("Deleted %s: %s (%s)", job.ClientName, job.EventName, job.ID)), nil, nil
	}
}

// NewSummaryHandler creates the summary tool handler.
func NewSummaryHandler(deps *Dependencies) mcp.ToolHandlerFor[struct{}, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
		return JSONResult(deps.Jobs.Summary()), nil, nil
	}
}

func (d *Dependencies) describe(j models.Job) service.JobView {
	return service.Describe(j, d.Jobs.Today())
}
