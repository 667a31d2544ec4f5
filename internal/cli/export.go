package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/studioflow/internal/export"
	"github.com/raphaelgruber/studioflow/internal/models"
	"github.com/raphaelgruber/studioflow/internal/parser"
	"github.com/raphaelgruber/studioflow/internal/service"
)

// Export formats.
const (
	formatJSON     = "json"
	formatYAML     = "yaml"
	formatMarkdown = "md"
	formatICS      = "ics"
)

var (
	exportFormat  string
	importReplace bool
)

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export all jobs",
	Long: `Export all jobs for backup, migration or a calendar app.

Formats:
  json  portable envelope, re-importable (default for .json)
  yaml  same content as YAML, re-importable (default for .yaml/.yml)
  md    one Markdown file per job with YAML frontmatter, written into the
        directory <path>, re-importable (default without extension)
  ics   iCalendar file with event and due dates of unfinished jobs

A path of "-" writes json, yaml or ics to stdout.

Examples:
  studioflow export ./backup.json
  studioflow export ./jobs --format md
  studioflow export ./studio.ics`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import jobs from an export",
	Long: `Import jobs from a JSON or YAML export, a Markdown file, or a directory
of Markdown files.

Imported jobs replace existing jobs with the same id and are appended
otherwise. With --replace the whole collection is swapped for the imported
jobs. Records that cannot be read are skipped with a warning.

Examples:
  studioflow import ./backup.json
  studioflow import ./jobs
  studioflow import ./backup.yaml --replace`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "F", "", "json, yaml, md or ics (default from the path)")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "replace all jobs instead of merging")
}

// formatFor picks the export format from the path extension.
func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON
	case ".yaml", ".yml":
		return formatYAML
	case ".ics":
		return formatICS
	case ".md", "":
		return formatMarkdown
	default:
		return formatJSON
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	path := args[0]
	format := strings.ToLower(exportFormat)
	if format == "" {
		format = formatFor(path)
		if path == "-" {
			format = formatJSON
		}
	}

	env := svc.Export()
	out := cmd.OutOrStdout()

	var (
		data []byte
		err  error
	)
	switch format {
	case formatJSON:
		data, err = models.EncodeEnvelope(env)
	case formatYAML:
		data, err = models.EncodeJobsYAML(env.Jobs)
	case formatICS:
		data = []byte(export.CalendarICS(env.Jobs, cfg.StudioName, time.Now()))
	case formatMarkdown:
		if path == "-" {
			return errors.New("markdown export needs a directory")
		}
		return exportMarkdown(out, path, env.Jobs)
	default:
		return fmt.Errorf("unknown format %q (want json, yaml, md or ics)", exportFormat)
	}
	if err != nil {
		return err
	}

	if path == "-" {
		_, err := out.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(out, "Exported %d jobs to %s\n", len(env.Jobs), path)
	return nil
}

func exportMarkdown(out io.Writer, dir string, jobs []models.Job) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	if len(jobs) == 0 {
		fmt.Fprintln(out, "No jobs to export.")
		return nil
	}

	today := svc.Today()
	exported := 0
	for _, j := range jobs {
		v := service.Describe(j, today)
		content, err := parser.RenderJob(j, parser.Meta{
			Progress: v.Progress,
			Status:   string(v.Status),
			Tone:     string(v.Tone),
		})
		if err != nil {
			fmt.Fprintf(out, "Warning: failed to render %s: %v\n", j.ID, err)
			continue
		}

		filename := filepath.Join(dir, parser.Filename(j))
		if err := os.WriteFile(filename, content, 0o644); err != nil {
			fmt.Fprintf(out, "Warning: failed to write %s: %v\n", filename, err)
			continue
		}
		exported++

		if verbose {
			fmt.Fprintf(out, "  Exported: %s\n", filename)
		}
	}

	fmt.Fprintf(out, "\nExported %d jobs to %s\n", exported, dir)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	jobs, err := readJobs(args[0])
	if err != nil {
		if !errors.Is(err, models.ErrMalformed) || len(jobs) == 0 {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		fmt.Fprintf(out, "Warning: %v\n", err)
	}
	if len(jobs) == 0 {
		fmt.Fprintln(out, "No jobs to import.")
		return nil
	}

	total, err := svc.Import(context.Background(), jobs, importReplace)
	if err != nil {
		return fmt.Errorf("import jobs: %w", err)
	}
	fmt.Fprintf(out, "Imported %d jobs (%d total)\n", len(jobs), total)
	return nil
}

// readJobs decodes path according to its kind. Decoding problems in single
// records come back as an ErrMalformed error next to the jobs that were read.
func readJobs(path string) ([]models.Job, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return readMarkdownDir(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch formatFor(path) {
	case formatMarkdown:
		j, err := parser.ParseJob(string(data))
		if err != nil {
			return nil, err
		}
		return []models.Job{j}, nil
	case formatYAML:
		return models.DecodeJobsYAML(data)
	default:
		return models.DecodeJobs(data)
	}
}

func readMarkdownDir(dir string) ([]models.Job, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var (
		jobs    []models.Job
		skipped []string
	)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			skipped = append(skipped, e.Name())
			continue
		}
		j, err := parser.ParseJob(string(data))
		if err != nil {
			skipped = append(skipped, e.Name())
			continue
		}
		jobs = append(jobs, j)
	}

	if len(skipped) > 0 {
		return jobs, fmt.Errorf("%w: skipped %s", models.ErrMalformed, strings.Join(skipped, ", "))
	}
	return jobs, nil
}
