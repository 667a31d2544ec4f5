// Package cli provides the command-line interface for studioflow.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/studioflow/internal/config"
	"github.com/raphaelgruber/studioflow/internal/metrics"
	"github.com/raphaelgruber/studioflow/internal/service"
	"github.com/raphaelgruber/studioflow/internal/store"
)

// annotationNoStore marks commands that run without opening the job store.
const annotationNoStore = "studioflow/no-store"

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool
	envFile string

	// Global config and job service
	cfg       config.Config
	svc       *service.JobService
	collector *metrics.Collector
	logger    *slog.Logger
	closeLog  func() error

	// Overridable in tests.
	clock  service.Clock
	idFunc service.IDFunc
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "studioflow",
	Short: "Delivery checklist for photography jobs",
	Long: `StudioFlow tracks photography jobs from the shoot to the final delivery.

Every job carries a checklist built from a template chosen by its project type
and delivery mode. Due dates are counted in business days from the event, and
each job reports its progress, status and urgency.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		if err := config.LoadDotEnv(envFile); err != nil {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
		cfg = config.Load()

		stderrLevel := slog.LevelWarn
		if verbose {
			stderrLevel = slog.LevelDebug
		}
		logger, closeLog = config.SetupLogger(cfg.LogFile, stderrLevel, cfg.LogLevel)
		slog.SetDefault(logger)

		if !needsStore(cmd) {
			return nil
		}

		ctx := context.Background()
		st, err := store.Open(ctx, cfg, logger)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}

		collector = metrics.NewCollector()
		opts := []service.Option{
			service.WithClock(currentClock()),
			service.WithLogger(logger),
			service.WithMetrics(collector),
		}
		if idFunc != nil {
			opts = append(opts, service.WithIDFunc(idFunc))
		}
		svc = service.NewJobService(st, opts...)
		svc.Load(ctx)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		teardown(cmd)
	},
}

// teardown closes the store and the log file.
func teardown(cmd *cobra.Command) {
	if svc != nil {
		if verbose {
			printStats(cmd.ErrOrStderr(), collector.Snapshot())
		}
		if err := svc.Close(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close store: %v\n", err)
		}
		svc = nil
	}
	if closeLog != nil {
		_ = closeLog()
		closeLog = nil
	}
}

func currentClock() service.Clock {
	if clock != nil {
		return clock
	}
	return service.SystemClock{Location: cfg.Location()}
}

// needsStore reports whether cmd or one of its parents asks to run without a
// store.
func needsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[annotationNoStore]; ok {
			return false
		}
	}
	return true
}

var noStore = map[string]string{annotationNoStore: "true"}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		// PersistentPostRun is skipped when RunE fails.
		teardown(rootCmd)
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment")

	// Add subcommands
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(modeCmd)
	rootCmd.AddCommand(eventDateCmd)
	rootCmd.AddCommand(dueDateCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(finalizeCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(boardCmd)
}
