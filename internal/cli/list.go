package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/studioflow/internal/service"
)

var (
	listAll  bool
	listTone bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs with their progress",
	Long: `List jobs in the order they were created, with a progress bar, the
status and the due date of each.

Finalized jobs are hidden unless --all is set. --tone adds the urgency tone
(CRITICAL, STALE, NOMINAL, NEUTRAL) used to color the listing.

Examples:
  studioflow list
  studioflow list --all --tone`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show job counters by status",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include finalized jobs")
	listCmd.Flags().BoolVar(&listTone, "tone", false, "show the urgency tone")
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	views := svc.List(listAll)
	if len(views) == 0 {
		fmt.Fprintln(out, "No jobs found.")
		return nil
	}

	r := newRenderer(out)
	fmt.Fprintf(out, "Jobs (%d):\n\n", len(views))
	for _, v := range views {
		line := fmt.Sprintf("%s %3d%%  %s: %s", r.progressBar(v.Progress), v.Progress, v.ClientName, v.EventName)
		fmt.Fprintln(out, r.tone(v.Tone, line))

		detail := fmt.Sprintf("  %s  [%s]  %s", shortID(v.ID), v.Status.Label(), dueLabel(v))
		if listTone {
			detail += "  " + r.tone(v.Tone, string(v.Tone))
		}
		fmt.Fprintln(out, detail)
		if verbose && v.Notes != "" {
			fmt.Fprintf(out, "  %s\n", v.Notes)
		}
	}
	return nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	s := svc.Summary()

	fmt.Fprintf(out, "Jobs on %s\n", svc.Today().Format("2006-01-02"))
	fmt.Fprintf(out, "═══════════════════════\n")
	fmt.Fprintf(out, "Active:      %d\n", s.Active)
	fmt.Fprintf(out, "  %-12s %d\n", service.StatusInProgress.Label()+":", s.InProgress)
	fmt.Fprintf(out, "  %-12s %d\n", service.StatusDueSoon.Label()+":", s.DueSoon)
	fmt.Fprintf(out, "  %-12s %d\n", service.StatusOverdue.Label()+":", s.Overdue)
	fmt.Fprintf(out, "Finalized:   %d\n", s.Finalized)
	fmt.Fprintf(out, "Total:       %d\n", s.Total)
	return nil
}

// shortID returns the leading part of id that is usually enough to refer to
// a job.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
