package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/studioflow/internal/models"
	"github.com/raphaelgruber/studioflow/internal/service"
)

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

// setupCLI points the commands at a fresh file store and a fixed day.
func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "jobs.json")

	t.Setenv("STUDIOFLOW_STORE", "file")
	t.Setenv("STUDIOFLOW_DATA_FILE", dataFile)
	t.Setenv("STUDIOFLOW_LOG_FILE", filepath.Join(dir, "studioflow.log"))
	t.Setenv("STUDIOFLOW_STUDIO_NAME", "Casa Foto")

	n := 0
	clock = service.FixedClock{Day: monday}
	idFunc = func() string {
		n++
		return fmt.Sprintf("job-%04d", n)
	}
	t.Cleanup(func() {
		clock = nil
		idFunc = nil
	})
	return dataFile
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the CLI with args and returns everything written to stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))

	err := Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, "", args...)
	require.NoError(t, err, out)
	return out
}

func addWedding(t *testing.T) {
	t.Helper()
	mustRun(t, "add", "--client", "Carla", "--event", "Wedding", "--event-date", "2026-01-15")
}

func TestAddListShow(t *testing.T) {
	setupCLI(t)

	out := mustRun(t, "add", "--client", "Carla", "--event", "Wedding", "--event-date", "2026-01-15", "-v")
	assert.Contains(t, out, "Created job: Carla: Wedding (job-0001)")
	assert.Contains(t, out, "Tasks: 16")

	out = mustRun(t, "list", "--tone")
	assert.Contains(t, out, "Jobs (1):")
	assert.Contains(t, out, "[....................]   0%  Carla: Wedding")
	assert.Contains(t, out, "job-0001")

	out = mustRun(t, "show", "job-0001")
	assert.Contains(t, out, "ID:        job-0001")
	assert.Contains(t, out, "Event:     2026-01-15")
	assert.Contains(t, out, "\nBackup\n")
	assert.Contains(t, out, "\nAlbum\n")
	assert.Contains(t, out, "backup_raw")
}

func TestAddRejectsMissingNames(t *testing.T) {
	setupCLI(t)

	_, err := run(t, "", "add", "--client", "Carla")
	assert.ErrorIs(t, err, service.ErrMissingFields)

	_, err = run(t, "", "add", "--client", "Carla", "--event", "Wedding", "--mode", "print")
	assert.ErrorContains(t, err, "unknown delivery mode")
}

func TestTaskAndFinalize(t *testing.T) {
	setupCLI(t)
	addWedding(t)

	out := mustRun(t, "task", "job-0001", "backup_raw", "--done", "--date", "2026-01-16")
	assert.Contains(t, out, "Back up RAW files (done), progress 6%")

	_, err := run(t, "", "task", "job-0001", "backup_cloud", "--date", "2026-01-16")
	assert.ErrorIs(t, err, service.ErrFieldNotAllowed)

	_, err = run(t, "", "task", "job-0001", "client_selection", "--choice", "by-mail")
	assert.ErrorIs(t, err, service.ErrInvalidChoice)

	out = mustRun(t, "task", "job-0001", "client_selection", "--choice", "in-person")
	assert.Contains(t, out, "Client photo selection (open)")

	_, err = run(t, "", "task", "job-0001", "backup_raw")
	assert.ErrorContains(t, err, "nothing to change")

	out = mustRun(t, "finalize", "job-0001")
	assert.Contains(t, out, "Finalized: Carla: Wedding (job-0001) on 2026-03-02")

	out = mustRun(t, "list")
	assert.Contains(t, out, "No jobs found.")

	out = mustRun(t, "list", "--all")
	assert.Contains(t, out, "[finalized]")

	_, err = run(t, "", "mode", "job-0001", "digital")
	assert.ErrorIs(t, err, service.ErrJobFinalized)
}

func TestModeAndDates(t *testing.T) {
	setupCLI(t)
	addWedding(t)

	out := mustRun(t, "mode", "job", "digital")
	assert.Contains(t, out, "set to DIGITAL_ONLY (11 tasks)")

	out = mustRun(t, "event-date", "job-0001", "2026-03-06")
	assert.Contains(t, out, "Event date of Carla: Wedding (job-0001): 2026-03-06")

	out = mustRun(t, "due-date", "job-0001", "2026-03-09")
	assert.Contains(t, out, "Due date of Carla: Wedding (job-0001): 2026-03-09")

	out = mustRun(t, "show", "job-0001")
	assert.Contains(t, out, "Status:    due soon")

	out = mustRun(t, "event-date", "job-0001", "")
	assert.Contains(t, out, ": -, due -")

	_, err := run(t, "", "due-date", "job-0001", "09/03/2026")
	assert.ErrorIs(t, err, service.ErrInvalidDate)
}

func TestEdit(t *testing.T) {
	setupCLI(t)
	addWedding(t)

	out := mustRun(t, "edit", "job-0001", "--event", "Civil wedding", "--notes", "two venues")
	assert.Contains(t, out, "Updated: Carla: Civil wedding")

	_, err := run(t, "", "edit", "job-0001")
	assert.ErrorContains(t, err, "nothing to change")

	_, err = run(t, "", "edit", "nope", "--notes", "x")
	assert.ErrorIs(t, err, service.ErrJobNotFound)
}

func TestDeleteConfirmation(t *testing.T) {
	setupCLI(t)
	addWedding(t)

	out, err := run(t, "n\n", "delete", "job-0001")
	require.NoError(t, err)
	assert.Contains(t, out, "About to delete: Carla: Wedding (job-0001)")
	assert.Contains(t, out, "Cancelled.")

	out, err = run(t, "yes\n", "delete", "job-0001")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted: Carla: Wedding")

	out = mustRun(t, "list", "--all")
	assert.Contains(t, out, "No jobs found.")
}

func TestSummary(t *testing.T) {
	setupCLI(t)
	addWedding(t)
	mustRun(t, "add", "--client", "Laura", "--event", "Maternity", "--type", "portrait")
	mustRun(t, "finalize", "job-0002")

	out := mustRun(t, "summary")
	assert.Contains(t, out, "Jobs on 2026-03-02")
	assert.Contains(t, out, "Active:      1")
	assert.Contains(t, out, "Finalized:   1")
	assert.Contains(t, out, "Total:       2")
}

func TestExportImportJSON(t *testing.T) {
	dataFile := setupCLI(t)
	addWedding(t)
	mustRun(t, "task", "job-0001", "cull", "--done")

	path := filepath.Join(t.TempDir(), "backup.json")
	out := mustRun(t, "export", path)
	assert.Contains(t, out, "Exported 1 jobs to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	jobs, err := models.DecodeJobs(data)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.True(t, jobs[0].Tasks[jobs[0].TaskByID("cull")].Done)

	mustRun(t, "delete", "job-0001", "--force")
	out = mustRun(t, "import", path)
	assert.Contains(t, out, "Imported 1 jobs (1 total)")

	stored, err := os.ReadFile(dataFile)
	require.NoError(t, err)
	assert.Contains(t, string(stored), `"id": "job-0001"`)
}

func TestExportImportMarkdown(t *testing.T) {
	setupCLI(t)
	addWedding(t)
	mustRun(t, "add", "--client", "Laura", "--event", "Maternity", "--type", "portrait")

	dir := filepath.Join(t.TempDir(), "jobs")
	out := mustRun(t, "export", dir)
	assert.Contains(t, out, "Exported 2 jobs to "+dir)

	files, err := filepath.Glob(filepath.Join(dir, "*.md"))
	require.NoError(t, err)
	assert.Len(t, files, 2)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Notes\n"), 0o644))

	out = mustRun(t, "import", dir, "--replace")
	assert.Contains(t, out, "Warning:")
	assert.Contains(t, out, "README.md")
	assert.Contains(t, out, "Imported 2 jobs (2 total)")
}

func TestImportMarkdownRepeatedIDs(t *testing.T) {
	setupCLI(t)
	addWedding(t)

	dir := filepath.Join(t.TempDir(), "jobs")
	mustRun(t, "export", dir)
	files, err := filepath.Glob(filepath.Join(dir, "*.md"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zz-copy.md"), data, 0o644))

	out := mustRun(t, "import", dir, "--replace")
	assert.Contains(t, out, "Imported 2 jobs (2 total)")

	out = mustRun(t, "delete", "job-0001", "--force")
	assert.Contains(t, out, "Deleted:")

	out = mustRun(t, "summary")
	assert.Contains(t, out, "Total:       1")
}

func TestExportFormats(t *testing.T) {
	setupCLI(t)
	addWedding(t)

	out := mustRun(t, "export", "-", "--format", "ics")
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "X-WR-CALNAME:Casa Foto")
	assert.Contains(t, out, "UID:event-job-0001@studioflow")

	path := filepath.Join(t.TempDir(), "jobs.yaml")
	mustRun(t, "export", path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	jobs, err := models.DecodeJobsYAML(data)
	require.NoError(t, err)
	assert.Len(t, jobs, 1)

	_, err = run(t, "", "export", "-", "--format", "csv")
	assert.ErrorContains(t, err, "unknown format")
}

func TestImportRejectsGarbage(t *testing.T) {
	setupCLI(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := run(t, "", "import", path)
	assert.ErrorIs(t, err, models.ErrMalformed)
}

func TestCalendarCommands(t *testing.T) {
	setupCLI(t)

	assert.Equal(t, "2026-03-09\n", mustRun(t, "calendar", "business-days", "2026-03-06", "1"))
	assert.Equal(t, "5\n", mustRun(t, "calendar", "between", "2026-03-02", "2026-03-09"))
	assert.Contains(t, mustRun(t, "calendar", "is-business-day", "2026-04-21"), "is a holiday")
	assert.Contains(t, mustRun(t, "calendar", "is-business-day", "2026-03-07"), "is a weekend day")
	assert.Contains(t, mustRun(t, "calendar", "is-business-day", "2026-03-02"), "is a business day")
	assert.Contains(t, mustRun(t, "calendar", "holidays"), "12-25  Christmas Day")

	_, err := run(t, "", "calendar", "between", "2026-03-02", "tomorrow")
	assert.ErrorContains(t, err, "invalid date")
}

func TestTemplates(t *testing.T) {
	setupCLI(t)

	out := mustRun(t, "templates", "--type", "portrait", "--mode", "digital")
	assert.Contains(t, out, "PORTRAIT_SESSION/DIGITAL_ONLY (8 tasks)")
	assert.NotContains(t, out, "EVENT/")
	assert.Contains(t, out, "client_selection")
	assert.Contains(t, out, "[date] [choice]")

	_, err := run(t, "", "templates", "--type", "drone")
	assert.ErrorContains(t, err, "unknown project type")
}

func TestBoardNeedsTerminal(t *testing.T) {
	setupCLI(t)
	_, err := run(t, "", "board")
	assert.ErrorContains(t, err, "interactive terminal")
}
