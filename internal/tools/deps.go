// Package tools provides MCP tool handlers and registration.
package tools

import (
	"log/slog"

	"github.com/raphaelgruber/studioflow/internal/metrics"
	"github.com/raphaelgruber/studioflow/internal/service"
)

// Dependencies holds shared services for tool handlers.
// Passed to handler factories via closure capture.
type Dependencies struct {
	Jobs    *service.JobService
	Metrics *metrics.Collector
	Logger  *slog.Logger
}
