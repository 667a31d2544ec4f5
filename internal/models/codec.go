package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/raphaelgruber/studioflow/internal/calendar"
)

// SchemaVersion is written into every envelope. Version 1 is the bare JSON
// array earlier releases stored.
const SchemaVersion = 2

// ErrMalformed marks persisted data that could not be read as a job
// collection. Callers treat it as "no jobs" (or "fewer jobs"), never as fatal.
var ErrMalformed = errors.New("malformed job data")

// Envelope is the portable on-disk and export shape of a job collection.
type Envelope struct {
	Version    int    `json:"version" yaml:"version"`
	ExportedAt string `json:"exportedAt,omitempty" yaml:"exportedAt,omitempty"`
	Jobs       []Job  `json:"jobs" yaml:"jobs"`
}

// rawJob is the tolerant read shape: every field may be missing and the id
// may be a number.
type rawJob struct {
	ID           any       `json:"id"`
	ClientName   string    `json:"clientName"`
	EventName    string    `json:"eventName"`
	Notes        string    `json:"notes"`
	ProjectType  string    `json:"projectType"`
	DeliveryMode string    `json:"deliveryMode"`
	EventDate    string    `json:"eventDate"`
	DueDate      string    `json:"dueDate"`
	IsCompleted  bool      `json:"isCompleted"`
	CompletedAt  string    `json:"completedAt"`
	CreatedAt    string    `json:"createdAt"`
	Tasks        []rawTask `json:"tasks"`
}

type rawTask struct {
	ID     string  `json:"id"`
	Done   bool    `json:"done"`
	Date   string  `json:"date"`
	Notes  string  `json:"notes"`
	Choice *string `json:"choice"`
}

// EncodeJobs writes jobs as an indented version-2 envelope.
func EncodeJobs(jobs []Job) ([]byte, error) {
	return EncodeEnvelope(Envelope{Jobs: jobs})
}

// EncodeEnvelope writes env as indented JSON, stamping the schema version.
func EncodeEnvelope(env Envelope) ([]byte, error) {
	env.Version = SchemaVersion
	if env.Jobs == nil {
		env.Jobs = []Job{}
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode jobs: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeJobs reads an envelope or a bare array and normalizes every record.
//
// Blank input is an empty collection. Input that is neither shape yields an
// empty collection and ErrMalformed. Individual records that fail to decode
// are skipped; the remaining jobs are returned together with an ErrMalformed
// that says how many were dropped.
func DecodeJobs(data []byte) ([]Job, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []Job{}, nil
	}

	var records []json.RawMessage
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &records); err != nil {
			return []Job{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	case '{':
		var env struct {
			Version int               `json:"version"`
			Jobs    []json.RawMessage `json:"jobs"`
		}
		if err := json.Unmarshal(data, &env); err != nil {
			return []Job{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if env.Jobs == nil {
			return []Job{}, fmt.Errorf("%w: no jobs array", ErrMalformed)
		}
		records = env.Jobs
	default:
		return []Job{}, fmt.Errorf("%w: not a job collection", ErrMalformed)
	}

	jobs := make([]Job, 0, len(records))
	skipped := 0
	for _, rec := range records {
		job, err := DecodeJob(rec)
		if err != nil {
			skipped++
			continue
		}
		jobs = append(jobs, job)
	}
	jobs = UniqueIDs(jobs)

	if skipped > 0 {
		return jobs, fmt.Errorf("%w: skipped %d record(s)", ErrMalformed, skipped)
	}
	return jobs, nil
}

// UniqueIDs gives every job after the first with a repeated id a fresh id,
// so the collection can be addressed and stored by id. jobs is modified in
// place and returned.
func UniqueIDs(jobs []Job) []Job {
	seen := make(map[string]bool, len(jobs))
	for i := range jobs {
		if seen[jobs[i].ID] {
			jobs[i].ID = uuid.NewString()
		}
		seen[jobs[i].ID] = true
	}
	return jobs
}

// DecodeJob reads a single job record and normalizes it.
func DecodeJob(data []byte) (Job, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return Job{}, fmt.Errorf("%w: record is not an object", ErrMalformed)
	}
	var raw rawJob
	if err := json.Unmarshal(data, &raw); err != nil {
		return Job{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return normalize(raw), nil
}

// NormalizeJob runs an in-memory job through the same pass persisted records
// go through, so hand-built or imported jobs satisfy the task-list invariant.
func NormalizeJob(j Job) Job {
	raw := rawJob{
		ID:           j.ID,
		ClientName:   j.ClientName,
		EventName:    j.EventName,
		Notes:        j.Notes,
		ProjectType:  string(j.ProjectType),
		DeliveryMode: string(j.DeliveryMode),
		EventDate:    j.EventDate,
		DueDate:      j.DueDate,
		IsCompleted:  j.IsCompleted,
		CompletedAt:  j.CompletedAt,
		CreatedAt:    j.CreatedAt,
	}
	for _, t := range j.Tasks {
		rt := rawTask{ID: t.ID, Done: t.Done, Date: t.Date, Notes: t.Notes}
		if t.Choice != nil {
			s := string(*t.Choice)
			rt.Choice = &s
		}
		raw.Tasks = append(raw.Tasks, rt)
	}
	return normalize(raw)
}

func normalize(raw rawJob) Job {
	pt, _ := ParseProjectType(raw.ProjectType)
	dm, _ := ParseDeliveryMode(raw.DeliveryMode)
	pt, dm = ResolvePair(pt, dm)

	job := Job{
		ID:           normalizeID(raw.ID),
		ClientName:   strings.TrimSpace(raw.ClientName),
		EventName:    strings.TrimSpace(raw.EventName),
		Notes:        raw.Notes,
		ProjectType:  pt,
		DeliveryMode: dm,
		EventDate:    normalizeDate(raw.EventDate),
		DueDate:      normalizeDate(raw.DueDate),
		IsCompleted:  raw.IsCompleted,
		CreatedAt:    normalizeDate(raw.CreatedAt),
	}
	if job.IsCompleted {
		job.CompletedAt = normalizeDate(raw.CompletedAt)
	}

	existing := make([]Task, 0, len(raw.Tasks))
	for _, rt := range raw.Tasks {
		t := Task{
			ID:    strings.TrimSpace(rt.ID),
			Done:  rt.Done,
			Date:  normalizeDate(rt.Date),
			Notes: rt.Notes,
		}
		if rt.Choice != nil {
			if c, ok := ParseChoice(*rt.Choice); ok {
				t.Choice = &c
			}
		}
		existing = append(existing, t)
	}
	job.Tasks = ReconcileTasks(TemplateFor(pt, dm), existing)
	return job
}

func normalizeID(v any) string {
	switch id := v.(type) {
	case string:
		if s := strings.TrimSpace(id); s != "" {
			return s
		}
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		return id.String()
	case int:
		return strconv.Itoa(id)
	}
	return uuid.NewString()
}

// normalizeDate keeps YYYY-MM-DD dates, trims timestamps down to their date
// part and drops anything else.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if d, ok := calendar.Parse(s); ok {
		return calendar.Format(d)
	}
	if len(s) > len(calendar.Layout) {
		if d, ok := calendar.Parse(s[:len(calendar.Layout)]); ok {
			return calendar.Format(d)
		}
	}
	return ""
}

// EncodeJobsYAML writes jobs as a YAML envelope.
func EncodeJobsYAML(jobs []Job) ([]byte, error) {
	if jobs == nil {
		jobs = []Job{}
	}
	data, err := yaml.Marshal(Envelope{Version: SchemaVersion, Jobs: jobs})
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return data, nil
}

// DecodeJobsYAML reads a YAML envelope or sequence through the same
// normalization as DecodeJobs.
func DecodeJobsYAML(data []byte) ([]Job, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return []Job{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc == nil {
		return []Job{}, nil
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return []Job{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return DecodeJobs(asJSON)
}

// DecodeJobMap normalizes a job held as a generic map, as returned by
// document stores and YAML frontmatter.
func DecodeJobMap(m map[string]any) (Job, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return Job{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return DecodeJob(data)
}
