package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/studioflow/internal/models"
)

var (
	templatesType string
	templatesMode string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Show the checklist templates",
	Long: `Show the checklist templates. There is one template per project type and
delivery mode.

Examples:
  studioflow templates
  studioflow templates --type portrait --mode album`,
	Args:        cobra.NoArgs,
	Annotations: noStore,
	RunE:        runTemplates,
}

func init() {
	templatesCmd.Flags().StringVarP(&templatesType, "type", "t", "", "only this project type (event, portrait)")
	templatesCmd.Flags().StringVarP(&templatesMode, "mode", "m", "", "only this delivery mode (digital, album)")
}

func runTemplates(cmd *cobra.Command, args []string) error {
	var (
		wantType models.ProjectType
		wantMode models.DeliveryMode
		ok       bool
	)
	if templatesType != "" {
		if wantType, ok = models.ParseProjectType(templatesType); !ok {
			return fmt.Errorf("unknown project type %q (want event or portrait)", templatesType)
		}
	}
	if templatesMode != "" {
		if wantMode, ok = models.ParseDeliveryMode(templatesMode); !ok {
			return fmt.Errorf("unknown delivery mode %q (want digital or album)", templatesMode)
		}
	}

	out := cmd.OutOrStdout()
	r := newRenderer(out)
	for _, t := range models.Templates() {
		if wantType != "" && t.ProjectType != wantType {
			continue
		}
		if wantMode != "" && t.DeliveryMode != wantMode {
			continue
		}

		fmt.Fprintf(out, "%s (%d tasks)\n", r.heading(t.Key), len(t.Tasks))
		for i, bp := range t.Tasks {
			var extras string
			if bp.HasDate {
				extras += " [date]"
			}
			if bp.ExtraChoice {
				extras += " [choice]"
			}
			fmt.Fprintf(out, "  %2d. %-28s %-18s %-14s%s\n", i+1, bp.Title, bp.ID, bp.Stage, extras)
		}
		fmt.Fprintln(out)
	}
	return nil
}
