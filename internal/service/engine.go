// Package service holds the job model engine and the stateful service that
// the command line and tool server drive.
//
// Engine functions are pure: they take a State and return a new State,
// leaving their input untouched.
package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/raphaelgruber/studioflow/internal/calendar"
	"github.com/raphaelgruber/studioflow/internal/models"
)

// DueBusinessDays is how many business days after the event a job is due.
const DueBusinessDays = 45

// State is the ordered job collection the engine transforms.
type State struct {
	Jobs []models.Job
}

// NewState builds a State from jobs, copying them.
func NewState(jobs []models.Job) State {
	out := make([]models.Job, len(jobs))
	for i, j := range jobs {
		out[i] = j.Clone()
	}
	return State{Jobs: out}
}

// Len returns the number of jobs.
func (s State) Len() int {
	return len(s.Jobs)
}

func (s State) index(id string) int {
	for i, j := range s.Jobs {
		if j.ID == id {
			return i
		}
	}
	return -1
}

// Find resolves ref to a job: an exact id wins, otherwise ref must be the
// prefix of exactly one id.
func (s State) Find(ref string) (models.Job, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Job{}, ErrJobNotFound
	}
	if i := s.index(ref); i >= 0 {
		return s.Jobs[i].Clone(), nil
	}

	match := -1
	for i, j := range s.Jobs {
		if strings.HasPrefix(j.ID, ref) {
			if match >= 0 {
				return models.Job{}, fmt.Errorf("%w: %s", ErrAmbiguousRef, ref)
			}
			match = i
		}
	}
	if match < 0 {
		return models.Job{}, fmt.Errorf("%w: %s", ErrJobNotFound, ref)
	}
	return s.Jobs[match].Clone(), nil
}

// with returns a copy of s where the job at i is replaced by j.
func (s State) with(i int, j models.Job) State {
	jobs := make([]models.Job, len(s.Jobs))
	copy(jobs, s.Jobs)
	jobs[i] = j
	return State{Jobs: jobs}
}

// update runs fn on a copy of the job identified by ref and stores the result.
func (s State) update(ref string, fn func(*models.Job) error) (State, models.Job, error) {
	found, err := s.Find(ref)
	if err != nil {
		return s, models.Job{}, err
	}
	job := found
	if err := fn(&job); err != nil {
		return s, found, err
	}
	return s.with(s.index(found.ID), job), job.Clone(), nil
}

// NewJob is the input to CreateJob.
type NewJob struct {
	ClientName   string
	EventName    string
	Notes        string
	ProjectType  models.ProjectType
	DeliveryMode models.DeliveryMode
	EventDate    string
}

// CreateJob appends a job built from the template selected by the input's
// project type and delivery mode. Blank client or event names leave the state
// unchanged and return ErrMissingFields.
func CreateJob(s State, in NewJob, today time.Time, newID IDFunc) (State, models.Job, error) {
	client := strings.TrimSpace(in.ClientName)
	event := strings.TrimSpace(in.EventName)
	if client == "" || event == "" {
		return s, models.Job{}, ErrMissingFields
	}
	eventDate, err := normalizeDate(in.EventDate)
	if err != nil {
		return s, models.Job{}, err
	}
	if newID == nil {
		newID = NewID
	}

	pt, dm := models.ResolvePair(in.ProjectType, in.DeliveryMode)
	job := models.Job{
		ID:           newID(),
		ClientName:   client,
		EventName:    event,
		Notes:        in.Notes,
		ProjectType:  pt,
		DeliveryMode: dm,
		EventDate:    eventDate,
		DueDate:      calendar.AddBusinessDaysString(eventDate, DueBusinessDays),
		CreatedAt:    calendar.Format(today),
		Tasks:        models.NewTasks(models.TemplateFor(pt, dm)),
	}

	jobs := make([]models.Job, len(s.Jobs), len(s.Jobs)+1)
	copy(jobs, s.Jobs)
	jobs = append(jobs, job)
	return State{Jobs: jobs}, job.Clone(), nil
}

// SetDeliveryMode switches the job's delivery mode and reconciles its task
// list against the new template. Tasks that only exist in the old template
// are dropped with their progress. Finalized jobs refuse the change.
func SetDeliveryMode(s State, ref string, mode models.DeliveryMode) (State, models.Job, error) {
	if !mode.Valid() {
		return s, models.Job{}, fmt.Errorf("%w: %q", ErrInvalidDeliveryMode, mode)
	}
	return s.update(ref, func(j *models.Job) error {
		if j.IsCompleted {
			return ErrJobFinalized
		}
		j.DeliveryMode = mode
		pt, dm := models.ResolvePair(j.ProjectType, mode)
		j.ProjectType, j.DeliveryMode = pt, dm
		j.Tasks = models.ReconcileTasks(models.TemplateFor(pt, dm), j.Tasks)
		return nil
	})
}

// SetEventDate stores the event date and re-derives the due date
// DueBusinessDays business days later. Clearing the event date clears the
// due date.
func SetEventDate(s State, ref, date string) (State, models.Job, error) {
	d, err := normalizeDate(date)
	if err != nil {
		return s, models.Job{}, err
	}
	return s.update(ref, func(j *models.Job) error {
		j.EventDate = d
		j.DueDate = calendar.AddBusinessDaysString(d, DueBusinessDays)
		return nil
	})
}

// SetDueDate overrides the derived due date.
func SetDueDate(s State, ref, date string) (State, models.Job, error) {
	d, err := normalizeDate(date)
	if err != nil {
		return s, models.Job{}, err
	}
	return s.update(ref, func(j *models.Job) error {
		j.DueDate = d
		return nil
	})
}

// DetailsPatch edits the descriptive fields of a job. Nil fields are kept.
type DetailsPatch struct {
	ClientName *string
	EventName  *string
	Notes      *string
}

// UpdateDetails applies p. Names may change but not become blank.
func UpdateDetails(s State, ref string, p DetailsPatch) (State, models.Job, error) {
	return s.update(ref, func(j *models.Job) error {
		if p.ClientName != nil {
			v := strings.TrimSpace(*p.ClientName)
			if v == "" {
				return ErrMissingFields
			}
			j.ClientName = v
		}
		if p.EventName != nil {
			v := strings.TrimSpace(*p.EventName)
			if v == "" {
				return ErrMissingFields
			}
			j.EventName = v
		}
		if p.Notes != nil {
			j.Notes = *p.Notes
		}
		return nil
	})
}

// TaskPatch edits one task. Nil fields are kept.
type TaskPatch struct {
	Done   *bool
	Date   *string
	Notes  *string
	Choice *models.Choice
}

// UpdateTask applies p to the task taskID of the job. Dates are only
// accepted on tasks whose template entry has a date, choices only on tasks
// that carry a choice control.
func UpdateTask(s State, ref, taskID string, p TaskPatch) (State, models.Job, error) {
	var date string
	if p.Date != nil {
		d, err := normalizeDate(*p.Date)
		if err != nil {
			return s, models.Job{}, err
		}
		date = d
	}
	if p.Choice != nil && !p.Choice.Valid() {
		return s, models.Job{}, fmt.Errorf("%w: %q", ErrInvalidChoice, *p.Choice)
	}

	return s.update(ref, func(j *models.Job) error {
		i := j.TaskByID(taskID)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
		}
		bp, ok := j.Blueprint(taskID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
		}

		t := j.Tasks[i]
		if p.Done != nil {
			t.Done = *p.Done
		}
		if p.Notes != nil {
			t.Notes = *p.Notes
		}
		if p.Date != nil {
			if !bp.HasDate && date != "" {
				return fmt.Errorf("%w: date on %s", ErrFieldNotAllowed, taskID)
			}
			t.Date = date
		}
		if p.Choice != nil {
			if !bp.ExtraChoice {
				return fmt.Errorf("%w: choice on %s", ErrFieldNotAllowed, taskID)
			}
			c := *p.Choice
			t.Choice = &c
		}
		j.Tasks[i] = t
		return nil
	})
}

// Finalize marks the job completed and stamps today as its completion date.
// Finalizing an already finalized job changes nothing.
func Finalize(s State, ref string, today time.Time) (State, models.Job, error) {
	return s.update(ref, func(j *models.Job) error {
		if j.IsCompleted {
			return nil
		}
		j.IsCompleted = true
		j.CompletedAt = calendar.Format(today)
		return nil
	})
}

// Delete removes the job from the collection.
func Delete(s State, ref string) (State, models.Job, error) {
	found, err := s.Find(ref)
	if err != nil {
		return s, models.Job{}, err
	}
	i := s.index(found.ID)
	jobs := make([]models.Job, 0, len(s.Jobs)-1)
	jobs = append(jobs, s.Jobs[:i]...)
	jobs = append(jobs, s.Jobs[i+1:]...)
	return State{Jobs: jobs}, found, nil
}

// Import merges jobs into the state after normalizing them. With replace the
// imported jobs become the whole collection; otherwise jobs whose id already
// exists overwrite the stored copy and the rest are appended.
// Repeated ids within jobs are resolved first: later copies get fresh ids.
func Import(s State, jobs []models.Job, replace bool) State {
	incoming := normalizeJobs(jobs)
	if replace {
		return State{Jobs: incoming}
	}

	out := NewState(s.Jobs)
	for _, j := range incoming {
		if i := out.index(j.ID); i >= 0 {
			out.Jobs[i] = j
			continue
		}
		out.Jobs = append(out.Jobs, j)
	}
	return out
}

// normalizeJobs copies jobs through the normalization pass and makes their
// ids unique.
func normalizeJobs(jobs []models.Job) []models.Job {
	out := make([]models.Job, len(jobs))
	for i, j := range jobs {
		out[i] = models.NormalizeJob(j)
	}
	return models.UniqueIDs(out)
}

// normalizeDate accepts "" (absent) or a YYYY-MM-DD date.
func normalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	d, ok := calendar.Parse(s)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return calendar.Format(d), nil
}
