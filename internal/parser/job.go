package parser

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raphaelgruber/studioflow/internal/models"
)

// ErrNotAJob indicates a Markdown document without job frontmatter.
var ErrNotAJob = errors.New("document has no job frontmatter")

// Meta holds derived values written next to the job fields. They are
// informational and ignored when the document is read back.
type Meta struct {
	Progress int
	Status   string
	Tone     string
}

type frontmatter struct {
	ID           string `yaml:"id"`
	ClientName   string `yaml:"clientName"`
	EventName    string `yaml:"eventName"`
	ProjectType  string `yaml:"projectType"`
	DeliveryMode string `yaml:"deliveryMode"`
	EventDate    string `yaml:"eventDate,omitempty"`
	DueDate      string `yaml:"dueDate,omitempty"`
	IsCompleted  bool   `yaml:"isCompleted"`
	CompletedAt  string `yaml:"completedAt,omitempty"`
	CreatedAt    string `yaml:"createdAt,omitempty"`
	Notes        string `yaml:"notes,omitempty"`
	Progress     int    `yaml:"progress"`
	Status       string `yaml:"status,omitempty"`
	Tone         string `yaml:"tone,omitempty"`
}

// RenderJob writes j as Markdown: YAML frontmatter, a title, and the
// checklist under one heading per run of same-stage tasks.
func RenderJob(j models.Job, meta Meta) ([]byte, error) {
	fm, err := yaml.Marshal(frontmatter{
		ID:           j.ID,
		ClientName:   j.ClientName,
		EventName:    j.EventName,
		ProjectType:  string(j.ProjectType),
		DeliveryMode: string(j.DeliveryMode),
		EventDate:    j.EventDate,
		DueDate:      j.DueDate,
		IsCompleted:  j.IsCompleted,
		CompletedAt:  j.CompletedAt,
		CreatedAt:    j.CreatedAt,
		Notes:        j.Notes,
		Progress:     meta.Progress,
		Status:       meta.Status,
		Tone:         meta.Tone,
	})
	if err != nil {
		return nil, fmt.Errorf("encode frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s: %s\n", j.ClientName, j.EventName)

	stages := make(map[string]models.Stage)
	for _, bp := range models.TemplateFor(j.ProjectType, j.DeliveryMode) {
		stages[bp.ID] = bp.Stage
	}

	var current models.Stage
	for _, t := range j.Tasks {
		if stage := stages[t.ID]; stage != current {
			current = stage
			fmt.Fprintf(&b, "\n## %s\n\n", stage.Heading())
		}
		b.WriteString(checklistLine(t))
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

func checklistLine(t models.Task) string {
	box := " "
	if t.Done {
		box = "x"
	}
	line := fmt.Sprintf("- [%s] %s `%s`", box, t.Title, t.ID)
	if t.Date != "" {
		line += " | date: " + t.Date
	}
	if c := t.ChoiceValue(); c != models.ChoiceNone {
		line += " | choice: " + string(c)
	}
	if t.Notes != "" {
		line += " | notes: " + strings.ReplaceAll(t.Notes, "\n", " ")
	}
	return line
}

// ParseJob reads a document produced by RenderJob, or a hand-written one in
// the same shape, and returns the normalized job.
func ParseJob(content string) (models.Job, error) {
	doc, err := ParseMarkdown(content)
	if err != nil {
		return models.Job{}, err
	}
	if doc.GetFrontmatterString("id") == "" && doc.GetFrontmatterString("clientName") == "" {
		return models.Job{}, ErrNotAJob
	}

	record := map[string]any{
		"id":           doc.Frontmatter["id"],
		"clientName":   doc.GetFrontmatterString("clientName"),
		"eventName":    doc.GetFrontmatterString("eventName"),
		"notes":        doc.GetFrontmatterString("notes"),
		"projectType":  doc.GetFrontmatterString("projectType"),
		"deliveryMode": doc.GetFrontmatterString("deliveryMode"),
		"eventDate":    doc.GetFrontmatterString("eventDate"),
		"dueDate":      doc.GetFrontmatterString("dueDate"),
		"isCompleted":  doc.GetFrontmatterBool("isCompleted"),
		"completedAt":  doc.GetFrontmatterString("completedAt"),
		"createdAt":    doc.GetFrontmatterString("createdAt"),
	}

	var tasks []any
	for _, item := range ExtractChecklist(doc.Content) {
		task := map[string]any{
			"id":    item.ID,
			"done":  item.Done,
			"date":  item.Date,
			"notes": item.Notes,
		}
		if item.Choice != "" {
			task["choice"] = item.Choice
		}
		tasks = append(tasks, task)
	}
	record["tasks"] = tasks

	return models.DecodeJobMap(record)
}

// Filename returns a stable file name for the job's Markdown export.
func Filename(j models.Job) string {
	slug := strings.Trim(models.Slugify(strings.TrimSpace(j.ClientName+" "+j.EventName)), "-")
	if slug == "" {
		slug = "job"
	}
	id := j.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s-%s.md", slug, models.Slugify(id))
}
