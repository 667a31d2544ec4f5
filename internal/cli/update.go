package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/studioflow/internal/models"
	"github.com/raphaelgruber/studioflow/internal/service"
)

var modeCmd = &cobra.Command{
	Use:   "mode <job> <digital|album>",
	Short: "Change a job's delivery mode",
	Long: `Change a job's delivery mode and rebuild its checklist.

Tasks present in both templates keep their state. Tasks only in the old
template are dropped, new tasks start unchecked.

Examples:
  studioflow mode 3f1c digital
  studioflow mode 3f1c album`,
	Args: cobra.ExactArgs(2),
	RunE: runMode,
}

var eventDateCmd = &cobra.Command{
	Use:   "event-date <job> <YYYY-MM-DD|\"\">",
	Short: "Set a job's event date",
	Long: `Set a job's event date. The due date is recomputed as 45 business days
after it. An empty date clears both.`,
	Args: cobra.ExactArgs(2),
	RunE: runEventDate,
}

var dueDateCmd = &cobra.Command{
	Use:   "due-date <job> <YYYY-MM-DD|\"\">",
	Short: "Override a job's due date",
	Args:  cobra.ExactArgs(2),
	RunE:  runDueDate,
}

var (
	editClient string
	editEvent  string
	editNotes  string
)

var editCmd = &cobra.Command{
	Use:   "edit <job>",
	Short: "Edit a job's names and notes",
	Long: `Edit a job's client name, event name or notes. Only the flags given are
changed.

Examples:
  studioflow edit 3f1c --notes "second shooter booked"
  studioflow edit 3f1c --event "Civil wedding"`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	taskDone   bool
	taskUndone bool
	taskDate   string
	taskNotes  string
	taskChoice string
)

var taskCmd = &cobra.Command{
	Use:   "task <job> <task-id>",
	Short: "Update one checklist task",
	Long: `Update one task of a job's checklist.

Dates are accepted only on tasks that track one, choices (online or in-person)
only on client-facing tasks. Run 'studioflow show <job>' for the task ids.

Examples:
  studioflow task 3f1c backup_raw --done --date 2026-01-16
  studioflow task 3f1c client_selection --choice in-person
  studioflow task 3f1c retouch --undone --notes "redo skin tones"`,
	Args: cobra.ExactArgs(2),
	RunE: runTask,
}

var finalizeCmd = &cobra.Command{
	Use:   "finalize <job>",
	Short: "Mark a job as delivered",
	Args:  cobra.ExactArgs(1),
	RunE:  runFinalize,
}

func init() {
	editCmd.Flags().StringVarP(&editClient, "client", "c", "", "new client name")
	editCmd.Flags().StringVarP(&editEvent, "event", "e", "", "new event name")
	editCmd.Flags().StringVarP(&editNotes, "notes", "n", "", "new notes")

	taskCmd.Flags().BoolVar(&taskDone, "done", false, "mark the task done")
	taskCmd.Flags().BoolVar(&taskUndone, "undone", false, "mark the task not done")
	taskCmd.Flags().StringVarP(&taskDate, "date", "d", "", "task date (YYYY-MM-DD, empty to clear)")
	taskCmd.Flags().StringVarP(&taskNotes, "notes", "n", "", "task notes")
	taskCmd.Flags().StringVar(&taskChoice, "choice", "", "how it happened: online, in-person, or empty to clear")
	taskCmd.MarkFlagsMutuallyExclusive("done", "undone")
}

func runMode(cmd *cobra.Command, args []string) error {
	mode, ok := models.ParseDeliveryMode(args[1])
	if !ok {
		return fmt.Errorf("unknown delivery mode %q (want digital or album)", args[1])
	}
	job, err := svc.SetDeliveryMode(context.Background(), args[0], mode)
	if err != nil {
		return fmt.Errorf("set delivery mode: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Delivery mode of %s set to %s (%d tasks)\n", jobLabel(job), job.DeliveryMode, len(job.Tasks))
	return nil
}

func runEventDate(cmd *cobra.Command, args []string) error {
	job, err := svc.SetEventDate(context.Background(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("set event date: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Event date of %s: %s, due %s\n", jobLabel(job), orDash(job.EventDate), orDash(job.DueDate))
	return nil
}

func runDueDate(cmd *cobra.Command, args []string) error {
	job, err := svc.SetDueDate(context.Background(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("set due date: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Due date of %s: %s\n", jobLabel(job), orDash(job.DueDate))
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	var patch service.DetailsPatch
	if cmd.Flags().Changed("client") {
		patch.ClientName = &editClient
	}
	if cmd.Flags().Changed("event") {
		patch.EventName = &editEvent
	}
	if cmd.Flags().Changed("notes") {
		patch.Notes = &editNotes
	}
	if patch == (service.DetailsPatch{}) {
		return errors.New("nothing to change: use --client, --event or --notes")
	}

	job, err := svc.UpdateDetails(context.Background(), args[0], patch)
	if err != nil {
		return fmt.Errorf("edit job: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated: %s\n", jobLabel(job))
	return nil
}

func runTask(cmd *cobra.Command, args []string) error {
	var patch service.TaskPatch
	flags := cmd.Flags()
	switch {
	case flags.Changed("done"):
		patch.Done = &taskDone
	case flags.Changed("undone"):
		done := !taskUndone
		patch.Done = &done
	}
	if flags.Changed("date") {
		patch.Date = &taskDate
	}
	if flags.Changed("notes") {
		patch.Notes = &taskNotes
	}
	if flags.Changed("choice") {
		c, ok := models.ParseChoice(taskChoice)
		if !ok {
			return fmt.Errorf("%w: %q (want online or in-person)", service.ErrInvalidChoice, taskChoice)
		}
		patch.Choice = &c
	}
	if patch == (service.TaskPatch{}) {
		return errors.New("nothing to change: use --done, --undone, --date, --notes or --choice")
	}

	job, err := svc.UpdateTask(context.Background(), args[0], args[1], patch)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	t := job.Tasks[job.TaskByID(args[1])]
	state := "open"
	if t.Done {
		state = "done"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s), progress %d%%\n", jobLabel(job), t.Title, state, service.ComputeProgress(job))
	return nil
}

func runFinalize(cmd *cobra.Command, args []string) error {
	job, err := svc.Finalize(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("finalize job: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Finalized: %s on %s\n", jobLabel(job), job.CompletedAt)
	return nil
}

func jobLabel(j models.Job) string {
	return fmt.Sprintf("%s: %s (%s)", j.ClientName, j.EventName, shortID(j.ID))
}
