package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/studioflow/internal/models"
	"github.com/raphaelgruber/studioflow/internal/service"
)

var showCmd = &cobra.Command{
	Use:   "show <job>",
	Short: "Show a job and its checklist",
	Long: `Show a job with its full checklist grouped by stage.

A job is referred to by its id or by any unique prefix of it.

Examples:
  studioflow show 3f1c2a9e`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	v, err := svc.Get(args[0])
	if err != nil {
		return err
	}
	printJob(cmd.OutOrStdout(), v)
	return nil
}

func printJob(out io.Writer, v service.JobView) {
	r := newRenderer(out)

	fmt.Fprintln(out, r.tone(v.Tone, fmt.Sprintf("%s: %s", v.ClientName, v.EventName)))
	fmt.Fprintf(out, "ID:        %s\n", v.ID)
	fmt.Fprintf(out, "Template:  %s / %s\n", v.ProjectType, v.DeliveryMode)
	fmt.Fprintf(out, "Event:     %s\n", orDash(v.EventDate))
	fmt.Fprintf(out, "Delivery:  %s\n", dueLabel(v))
	fmt.Fprintf(out, "Status:    %s\n", v.Status.Label())
	if v.IsCompleted {
		fmt.Fprintf(out, "Finalized: %s\n", orDash(v.CompletedAt))
	}
	fmt.Fprintf(out, "Progress:  %s %d%% (%d/%d)\n", r.progressBar(v.Progress), v.Progress, v.DoneCount, len(v.Tasks))
	if v.Notes != "" {
		fmt.Fprintf(out, "Notes:     %s\n", v.Notes)
	}

	var current models.Stage
	for i, t := range v.Tasks {
		bp, _ := v.Blueprint(t.ID)
		if i == 0 || bp.Stage != current {
			current = bp.Stage
			fmt.Fprintf(out, "\n%s\n", r.heading(current.Heading()))
		}
		fmt.Fprintln(out, taskLine(t, bp))
	}
}

func taskLine(t models.Task, bp models.Blueprint) string {
	box := "[ ]"
	if t.Done {
		box = "[x]"
	}
	line := fmt.Sprintf("  %s %-28s %s", box, t.Title, t.ID)
	if bp.HasDate && t.Date != "" {
		line += "  date: " + t.Date
	}
	if c := t.ChoiceValue(); c != models.ChoiceNone {
		line += "  choice: " + string(c)
	}
	if t.Notes != "" {
		line += "  notes: " + t.Notes
	}
	return line
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
