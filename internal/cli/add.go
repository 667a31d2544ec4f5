package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/studioflow/internal/models"
	"github.com/raphaelgruber/studioflow/internal/service"
)

var (
	addClient    string
	addEvent     string
	addType      string
	addMode      string
	addEventDate string
	addNotes     string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new job",
	Long: `Add a new job with the checklist for its project type and delivery mode.

The due date is set 45 business days after the event date.

Examples:
  studioflow add --client "Carla & Gilvan" --event Wedding --event-date 2026-01-15
  studioflow add --client Laura --event Maternity --type portrait --mode digital`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addClient, "client", "c", "", "client name (required)")
	addCmd.Flags().StringVarP(&addEvent, "event", "e", "", "event name (required)")
	addCmd.Flags().StringVarP(&addType, "type", "t", "event", "project type (event, portrait)")
	addCmd.Flags().StringVarP(&addMode, "mode", "m", "album", "delivery mode (digital, album)")
	addCmd.Flags().StringVarP(&addEventDate, "event-date", "d", "", "event date (YYYY-MM-DD)")
	addCmd.Flags().StringVarP(&addNotes, "notes", "n", "", "free-form notes")
}

func runAdd(cmd *cobra.Command, args []string) error {
	pt, ok := models.ParseProjectType(addType)
	if !ok {
		return fmt.Errorf("unknown project type %q (want event or portrait)", addType)
	}
	dm, ok := models.ParseDeliveryMode(addMode)
	if !ok {
		return fmt.Errorf("unknown delivery mode %q (want digital or album)", addMode)
	}

	job, err := svc.Create(context.Background(), service.NewJob{
		ClientName:   addClient,
		EventName:    addEvent,
		Notes:        addNotes,
		ProjectType:  pt,
		DeliveryMode: dm,
		EventDate:    addEventDate,
	})
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created job: %s: %s (%s)\n", job.ClientName, job.EventName, job.ID)
	if job.DueDate != "" {
		fmt.Fprintf(out, "  Due: %s\n", job.DueDate)
	}
	if verbose {
		fmt.Fprintf(out, "  Template: %s\n", models.TemplateKey(job.ProjectType, job.DeliveryMode))
		fmt.Fprintf(out, "  Tasks: %d\n", len(job.Tasks))
	}
	return nil
}
