package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/studioflow/internal/models"
)

// ListTemplatesInput defines the input schema for the list_templates tool.
type ListTemplatesInput struct {
	ProjectType  string `json:"project_type,omitempty" jsonschema:"Only templates for EVENT or PORTRAIT_SESSION"`
	DeliveryMode string `json:"delivery_mode,omitempty" jsonschema:"Only templates for DIGITAL_ONLY or DIGITAL_PLUS_ALBUM"`
}

// NewListTemplatesHandler creates the list_templates tool handler.
func NewListTemplatesHandler(deps *Dependencies) mcp.ToolHandlerFor[ListTemplatesInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListTemplatesInput) (*mcp.CallToolResult, any, error) {
		var (
			pt models.ProjectType
			dm models.DeliveryMode
			ok bool
		)
		if input.ProjectType != "" {
			if pt, ok = models.ParseProjectType(input.ProjectType); !ok {
				return ErrorResult("Unknown project type "+input.ProjectType, "Use EVENT or PORTRAIT_SESSION"), nil, nil
			}
		}
		if input.DeliveryMode != "" {
			if dm, ok = models.ParseDeliveryMode(input.DeliveryMode); !ok {
				return ErrorResult("Unknown delivery mode "+input.DeliveryMode, "Use DIGITAL_ONLY or DIGITAL_PLUS_ALBUM"), nil, nil
			}
		}

		out := []models.Template{}
		for _, t := range models.Templates() {
			if (pt == "" || t.ProjectType == pt) && (dm == "" || t.DeliveryMode == dm) {
				out = append(out, t)
			}
		}
		return JSONResult(out), nil, nil
	}
}
