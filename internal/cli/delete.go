package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	deleteForce bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete <job>",
	Short: "Delete a job",
	Long: `Delete a job and its checklist. This cannot be undone.
Requires confirmation unless --force is used.

Examples:
  studioflow delete 3f1c
  studioflow delete 3f1c --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// Resolve first so the prompt names the job
	v, err := svc.Get(args[0])
	if err != nil {
		return err
	}

	// Confirm deletion
	if !deleteForce {
		fmt.Fprintf(out, "About to delete: %s: %s (%s)\n", v.ClientName, v.EventName, v.ID)
		fmt.Fprint(out, "\nContinue? [y/N]: ")

		reader := bufio.NewReader(cmd.InOrStdin())
		response, err := reader.ReadString('\n')
		if err != nil && response == "" {
			return fmt.Errorf("read input: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))

		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	job, err := svc.Delete(context.Background(), v.ID)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}

	fmt.Fprintf(out, "Deleted: %s\n", jobLabel(job))
	return nil
}
