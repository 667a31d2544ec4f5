package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/raphaelgruber/studioflow/internal/models"
	"github.com/raphaelgruber/studioflow/internal/service"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive checklist board",
	Long: `Open an interactive board of the active jobs.

Keys:
  up/down, k/j   move
  enter          open the selected job
  space, x       toggle the selected task
  f              finalize the open job
  a              show or hide finalized jobs
  esc            back to the job list
  q, ctrl+c      quit`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func runBoard(cmd *cobra.Command, args []string) error {
	if !isTerminal(cmd.OutOrStdout()) {
		return errors.New("board needs an interactive terminal; use 'studioflow list' instead")
	}
	return RunBoard(svc)
}

// jobsMsg carries a fresh listing.
type jobsMsg struct {
	views []service.JobView
}

// mutationMsg reports the outcome of a change made from the board.
type mutationMsg struct {
	job models.Job
	err error
}

// boardModel is the bubbletea model for the job board.
type boardModel struct {
	svc      *service.JobService
	views    []service.JobView
	cursor   int
	open     bool // showing one job's checklist
	taskIdx  int
	showAll  bool
	status   string
	err      error
	progress progress.Model
	theme    Theme
}

// newBoardModel creates a board over s.
func newBoardModel(s *service.JobService) boardModel {
	return boardModel{
		svc: s,
		progress: progress.New(
			progress.WithDefaultBlend(),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		),
		theme: defaultTheme,
	}
}

// Init loads the job list.
func (m boardModel) Init() tea.Cmd {
	return m.load()
}

func (m boardModel) load() tea.Cmd {
	showAll := m.showAll
	return func() tea.Msg {
		return jobsMsg{views: m.svc.List(showAll)}
	}
}

// Update handles messages and returns the updated model.
func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m.handleKey(msg.String())

	case jobsMsg:
		m.views = msg.views
		if m.cursor >= len(m.views) {
			m.cursor = max(len(m.views)-1, 0)
		}
		if m.open && len(m.views) == 0 {
			m.open = false
		}
		return m, nil

	case mutationMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.err = nil
		if msg.job.IsCompleted && !m.showAll {
			m.open = false
		}
		m.status = fmt.Sprintf("Saved %s: %s", msg.job.ClientName, msg.job.EventName)
		return m, m.load()
	}

	return m, nil
}

func (m boardModel) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "a":
		m.showAll = !m.showAll
		return m, m.load()
	}

	if !m.open {
		switch key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.views)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.views) > 0 {
				m.open = true
				m.taskIdx = 0
			}
		}
		return m, nil
	}

	v, ok := m.selected()
	if !ok {
		m.open = false
		return m, nil
	}
	switch key {
	case "esc", "backspace":
		m.open = false
	case "up", "k":
		if m.taskIdx > 0 {
			m.taskIdx--
		}
	case "down", "j":
		if m.taskIdx < len(v.Tasks)-1 {
			m.taskIdx++
		}
	case "space", " ", "x":
		if m.taskIdx < len(v.Tasks) {
			t := v.Tasks[m.taskIdx]
			return m, m.toggleTask(v.ID, t.ID, !t.Done)
		}
	case "f":
		return m, m.finalize(v.ID)
	}
	return m, nil
}

func (m boardModel) selected() (service.JobView, bool) {
	if m.cursor < 0 || m.cursor >= len(m.views) {
		return service.JobView{}, false
	}
	return m.views[m.cursor], true
}

// toggleTask saves in a command to avoid blocking Update().
func (m boardModel) toggleTask(jobID, taskID string, done bool) tea.Cmd {
	return func() tea.Msg {
		job, err := m.svc.UpdateTask(context.Background(), jobID, taskID, service.TaskPatch{Done: &done})
		return mutationMsg{job: job, err: err}
	}
}

func (m boardModel) finalize(jobID string) tea.Cmd {
	return func() tea.Msg {
		job, err := m.svc.Finalize(context.Background(), jobID)
		return mutationMsg{job: job, err: err}
	}
}

// View renders the board.
func (m boardModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m boardModel) renderContent() string {
	var b strings.Builder
	if m.open {
		m.renderJob(&b)
	} else {
		m.renderList(&b)
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.theme.errorStyle().Render("✗ "+m.err.Error()) + "\n")
	} else if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	hint := "enter open · a toggle finalized · q quit"
	if m.open {
		hint = "space toggle task · f finalize · esc back · q quit"
	}
	b.WriteString(m.theme.hintStyle().Render(hint) + "\n")
	return b.String()
}

func (m boardModel) renderList(b *strings.Builder) {
	b.WriteString(m.theme.headingStyle().Render(fmt.Sprintf("Jobs (%d)", len(m.views))) + "\n\n")
	if len(m.views) == 0 {
		b.WriteString("No jobs found.\n")
		return
	}
	for i, v := range m.views {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s %3d%%  %s: %s  [%s]",
			m.progress.ViewAs(float64(v.Progress)/100), v.Progress, v.ClientName, v.EventName, v.Status.Label())
		b.WriteString(cursor + m.theme.toneStyle(v.Tone).Render(line) + "\n")
	}
}

func (m boardModel) renderJob(b *strings.Builder) {
	v, ok := m.selected()
	if !ok {
		return
	}
	title := fmt.Sprintf("%s: %s", v.ClientName, v.EventName)
	b.WriteString(m.theme.toneStyle(v.Tone).Render(title) + "\n")
	fmt.Fprintf(b, "%s %d%%  %s\n", m.progress.ViewAs(float64(v.Progress)/100), v.Progress, dueLabel(v))

	var current models.Stage
	for i, t := range v.Tasks {
		bp, _ := v.Blueprint(t.ID)
		if i == 0 || bp.Stage != current {
			current = bp.Stage
			b.WriteString("\n" + m.theme.headingStyle().Render(current.Heading()) + "\n")
		}
		cursor := "  "
		if i == m.taskIdx {
			cursor = "> "
		}
		b.WriteString(cursor + taskLine(t, bp) + "\n")
	}
}

// RunBoard runs the interactive board until the user quits.
func RunBoard(s *service.JobService) error {
	p := tea.NewProgram(newBoardModel(s))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("board UI error: %w", err)
	}
	return nil
}
