package service

import (
	"math"
	"time"

	"github.com/raphaelgruber/studioflow/internal/calendar"
	"github.com/raphaelgruber/studioflow/internal/models"
)

const (
	// DueSoonBusinessDays is the window, in business days before the due
	// date, in which a job counts as due soon.
	DueSoonBusinessDays = 7

	// StaleBusinessDays is how long after the event a job may sit before it
	// is flagged as aging.
	StaleBusinessDays = 30
)

// Status is the lifecycle label of a job relative to today.
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusDueSoon    Status = "DUE_SOON"
	StatusOverdue    Status = "OVERDUE"
	StatusFinalized  Status = "FINALIZED"
)

// Label returns a human readable form of the status.
func (s Status) Label() string {
	switch s {
	case StatusDueSoon:
		return "due soon"
	case StatusOverdue:
		return "overdue"
	case StatusFinalized:
		return "finalized"
	default:
		return "in progress"
	}
}

// Tone is the urgency grouping of a job.
type Tone string

const (
	ToneCritical Tone = "CRITICAL"
	ToneStale    Tone = "STALE"
	ToneNominal  Tone = "NOMINAL"
	ToneNeutral  Tone = "NEUTRAL"
)

// ComputeProgress returns the rounded percentage of done tasks. A job
// without tasks is at 0.
func ComputeProgress(j models.Job) int {
	if len(j.Tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range j.Tasks {
		if t.Done {
			done++
		}
	}
	return int(math.Floor(100*float64(done)/float64(len(j.Tasks)) + 0.5))
}

// ComputeStatus derives the job status for today.
func ComputeStatus(j models.Job, today time.Time) Status {
	if j.IsCompleted {
		return StatusFinalized
	}
	due, ok := calendar.Parse(j.DueDate)
	if !ok {
		return StatusInProgress
	}
	today = calendar.Day(today)
	if due.Before(today) {
		return StatusOverdue
	}
	if calendar.BusinessDaysBetween(today, due) <= DueSoonBusinessDays {
		return StatusDueSoon
	}
	return StatusInProgress
}

// ComputeTone classifies the job for visual grouping. Critical is checked
// before stale.
func ComputeTone(j models.Job, today time.Time) Tone {
	if j.IsCompleted {
		return ToneNeutral
	}
	if due, ok := calendar.Parse(j.DueDate); ok {
		if calendar.BusinessDaysBetween(today, due) <= DueSoonBusinessDays {
			return ToneCritical
		}
	}
	if event, ok := calendar.Parse(j.EventDate); ok {
		if calendar.BusinessDaysBetween(event, today) > StaleBusinessDays {
			return ToneStale
		}
	}
	return ToneNominal
}

// JobView is a job together with everything derived from it for one day.
type JobView struct {
	models.Job
	Progress  int    `json:"progress"`
	Status    Status `json:"status"`
	Tone      Tone   `json:"tone"`
	DoneCount int    `json:"doneCount"`
	// DaysLeft is the signed business-day distance to the due date, nil
	// when there is no due date.
	DaysLeft *int `json:"daysLeft,omitempty"`
}

// Describe derives the view of j for today.
func Describe(j models.Job, today time.Time) JobView {
	v := JobView{
		Job:      j.Clone(),
		Progress: ComputeProgress(j),
		Status:   ComputeStatus(j, today),
		Tone:     ComputeTone(j, today),
	}
	for _, t := range j.Tasks {
		if t.Done {
			v.DoneCount++
		}
	}
	if due, ok := calendar.Parse(j.DueDate); ok {
		n := calendar.BusinessDaysBetween(today, due)
		v.DaysLeft = &n
	}
	return v
}

// Summary holds the dashboard counters.
type Summary struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	InProgress int `json:"inProgress"`
	DueSoon    int `json:"dueSoon"`
	Overdue    int `json:"overdue"`
	Finalized  int `json:"finalized"`
}

// Summarize counts the jobs of s by status for today.
func Summarize(s State, today time.Time) Summary {
	var sum Summary
	for _, j := range s.Jobs {
		sum.Total++
		switch ComputeStatus(j, today) {
		case StatusFinalized:
			sum.Finalized++
			continue
		case StatusDueSoon:
			sum.DueSoon++
		case StatusOverdue:
			sum.Overdue++
		default:
			sum.InProgress++
		}
		sum.Active++
	}
	return sum
}
