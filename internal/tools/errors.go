package tools

import (
	"encoding/json"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphaelgruber/studioflow/internal/service"
)

// ErrorResult creates a tool error result with optional recovery hint.
// If hint is non-empty, formats as "{msg}. {hint}".
// Returns IsError=true so the client can see the error and self-correct.
func ErrorResult(msg, hint string) *mcp.CallToolResult {
	text := msg
	if hint != "" {
		text = msg + ". " + hint
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		IsError: true,
	}
}

// TextResult creates a success result with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// JSONResult creates a success result with v as indented JSON.
func JSONResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ErrorResult("Failed to encode result", err.Error())
	}
	return TextResult(string(data))
}

// serviceError turns a job service error into a tool error with a hint.
func serviceError(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, service.ErrJobNotFound):
		return ErrorResult("Job not found", "Use list_jobs to find the job id")
	case errors.Is(err, service.ErrAmbiguousRef):
		return ErrorResult("Job reference matches more than one job", "Use a longer id prefix")
	case errors.Is(err, service.ErrMissingFields):
		return ErrorResult("Client name and event name are required", "Provide non-blank client_name and event_name")
	case errors.Is(err, service.ErrJobFinalized):
		return ErrorResult("Job is finalized", "The delivery mode of a finalized job cannot change")
	case errors.Is(err, service.ErrTaskNotFound):
		return ErrorResult(err.Error(), "Use get_job to see the task ids of the job")
	case errors.Is(err, service.ErrFieldNotAllowed):
		return ErrorResult(err.Error(), "Use list_templates to see which tasks take a date or a choice")
	case errors.Is(err, service.ErrInvalidChoice):
		return ErrorResult(err.Error(), "Use ONLINE, IN_PERSON or an empty string")
	case errors.Is(err, service.ErrInvalidDate):
		return ErrorResult(err.Error(), "Use YYYY-MM-DD or an empty string to clear")
	case errors.Is(err, service.ErrInvalidDeliveryMode):
		return ErrorResult("Invalid delivery mode", "Use DIGITAL_ONLY or DIGITAL_PLUS_ALBUM")
	default:
		return ErrorResult("Failed to save jobs", "The change is kept in memory but storage may be unavailable")
	}
}
