package cli

import (
	"fmt"
	"io"

	"github.com/raphaelgruber/studioflow/internal/metrics"
)

// printStats displays the runtime statistics collected during the command.
func printStats(w io.Writer, snap metrics.Snapshot) {
	if len(snap.Operations) == 0 {
		return
	}
	fmt.Fprintf(w, "\nStatistics (%.3f seconds)\n", snap.UptimeSeconds)
	fmt.Fprintf(w, "═══════════════════════════════\n")
	for _, name := range snap.Names() {
		fmt.Fprintf(w, "%s:\n", name)
		printOpStats(w, snap.Operations[name])
	}
}

// printOpStats displays timing statistics for an operation.
func printOpStats(w io.Writer, op metrics.OperationSnapshot) {
	fmt.Fprintf(w, "  Calls: %d, Errors: %d, Total: %dms\n", op.Count, op.Errors, op.TotalTimeMs)
	fmt.Fprintf(w, "  Time: avg %.1fms, min %dms, max %dms\n", op.AvgTimeMs, op.MinTimeMs, op.MaxTimeMs)
}
