// Package models defines data structures for the StudioFlow job checklist.
package models

// ProjectType is the kind of shoot a job was booked for.
// It is chosen at creation and is informational afterwards.
type ProjectType string

const (
	ProjectEvent           ProjectType = "EVENT"
	ProjectPortraitSession ProjectType = "PORTRAIT_SESSION"
)

// Valid reports whether p is a known project type.
func (p ProjectType) Valid() bool {
	return p == ProjectEvent || p == ProjectPortraitSession
}

// DeliveryMode is what the client receives at the end of the pipeline.
type DeliveryMode string

const (
	DeliveryDigitalOnly      DeliveryMode = "DIGITAL_ONLY"
	DeliveryDigitalPlusAlbum DeliveryMode = "DIGITAL_PLUS_ALBUM"
)

// Valid reports whether d is a known delivery mode.
func (d DeliveryMode) Valid() bool {
	return d == DeliveryDigitalOnly || d == DeliveryDigitalPlusAlbum
}

// Choice records how a client-facing step happened.
type Choice string

const (
	ChoiceNone     Choice = ""
	ChoiceOnline   Choice = "ONLINE"
	ChoiceInPerson Choice = "IN_PERSON"
)

// Valid reports whether c is a value a task choice may hold.
// The empty choice is valid and means "not decided yet".
func (c Choice) Valid() bool {
	return c == ChoiceNone || c == ChoiceOnline || c == ChoiceInPerson
}

// Job is one client engagement tracked through the delivery pipeline.
//
// Dates use the YYYY-MM-DD wire format; the empty string means the date is
// not known.
type Job struct {
	ID           string       `json:"id" yaml:"id"`
	ClientName   string       `json:"clientName" yaml:"clientName"`
	EventName    string       `json:"eventName" yaml:"eventName"`
	Notes        string       `json:"notes" yaml:"notes"`
	ProjectType  ProjectType  `json:"projectType" yaml:"projectType"`
	DeliveryMode DeliveryMode `json:"deliveryMode" yaml:"deliveryMode"`
	EventDate    string       `json:"eventDate" yaml:"eventDate"`
	DueDate      string       `json:"dueDate" yaml:"dueDate"`
	IsCompleted  bool         `json:"isCompleted" yaml:"isCompleted"`
	CompletedAt  string       `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	CreatedAt    string       `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	Tasks        []Task       `json:"tasks" yaml:"tasks"`
}

// Task is one checklist line of a job. Its ID matches a Blueprint ID.
type Task struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Done  bool   `json:"done" yaml:"done"`
	Date  string `json:"date" yaml:"date"`
	Notes string `json:"notes" yaml:"notes"`

	// Choice is nil when the task's blueprint has no choice control, and
	// points at ChoiceNone when the control exists but nothing is picked.
	Choice *Choice `json:"choice,omitempty" yaml:"choice,omitempty"`
}

// HasChoice reports whether the task carries a choice control.
func (t Task) HasChoice() bool {
	return t.Choice != nil
}

// ChoiceValue returns the current choice, or ChoiceNone when absent.
func (t Task) ChoiceValue() Choice {
	if t.Choice == nil {
		return ChoiceNone
	}
	return *t.Choice
}

// Clone returns a deep copy of the job, so engine operations never share
// task slices or choice pointers with their input.
func (j Job) Clone() Job {
	out := j
	if j.Tasks != nil {
		out.Tasks = make([]Task, len(j.Tasks))
		for i, t := range j.Tasks {
			out.Tasks[i] = t.clone()
		}
	}
	return out
}

func (t Task) clone() Task {
	if t.Choice != nil {
		c := *t.Choice
		t.Choice = &c
	}
	return t
}

// TaskByID returns the index of the task with the given ID, or -1.
func (j Job) TaskByID(id string) int {
	for i, t := range j.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
