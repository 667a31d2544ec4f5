package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphaelgruber/studioflow/internal/calendar"
	"github.com/raphaelgruber/studioflow/internal/models"
)

func jobWithDone(total, done int) models.Job {
	tasks := make([]models.Task, total)
	for i := range tasks {
		tasks[i] = models.Task{ID: string(rune('a' + i)), Done: i < done}
	}
	return models.Job{Tasks: tasks}
}

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name        string
		total, done int
		want        int
	}{
		{"no tasks", 0, 0, 0},
		{"none done", 11, 0, 0},
		{"half of sixteen", 16, 8, 50},
		{"rounds down", 11, 1, 9},
		{"rounds half up", 8, 1, 13},
		{"all done", 13, 13, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeProgress(jobWithDone(tt.total, tt.done)))
		})
	}
}

func TestComputeProgressMonotonic(t *testing.T) {
	prev := 0
	for done := 0; done <= 16; done++ {
		p := ComputeProgress(jobWithDone(16, done))
		assert.GreaterOrEqual(t, p, prev)
		prev = p
	}
	assert.Equal(t, 100, prev)
}

func TestComputeStatus(t *testing.T) {
	tests := []struct {
		name string
		job  models.Job
		want Status
	}{
		{"no due date", models.Job{}, StatusInProgress},
		{"due in three business days", models.Job{DueDate: calendar.Format(calendar.AddBusinessDays(monday, 3))}, StatusDueSoon},
		{"due today", models.Job{DueDate: "2026-03-02"}, StatusDueSoon},
		{"due in seven business days", models.Job{DueDate: calendar.Format(calendar.AddBusinessDays(monday, 7))}, StatusDueSoon},
		{"due in eight business days", models.Job{DueDate: calendar.Format(calendar.AddBusinessDays(monday, 8))}, StatusInProgress},
		{"due yesterday", models.Job{DueDate: "2026-03-01"}, StatusOverdue},
		{"due last friday", models.Job{DueDate: "2026-02-27"}, StatusOverdue},
		{"finalized wins", models.Job{DueDate: "2026-01-01", IsCompleted: true}, StatusFinalized},
		{"unparsable due date", models.Job{DueDate: "soon"}, StatusInProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStatus(tt.job, monday))
		})
	}
}

func TestComputeTone(t *testing.T) {
	tests := []struct {
		name string
		job  models.Job
		want Tone
	}{
		{"no dates", models.Job{}, ToneNominal},
		{"finalized", models.Job{DueDate: "2026-03-03", IsCompleted: true}, ToneNeutral},
		{"due soon", models.Job{DueDate: "2026-03-05"}, ToneCritical},
		{"overdue", models.Job{DueDate: "2026-02-10"}, ToneCritical},
		// 2026-01-15 is 32 business days before monday.
		{"aging event", models.Job{EventDate: "2026-01-15", DueDate: "2026-03-19"}, ToneStale},
		{"aging but due soon", models.Job{EventDate: "2026-01-15", DueDate: "2026-03-04"}, ToneCritical},
		{"recent event", models.Job{EventDate: "2026-02-20", DueDate: "2026-04-30"}, ToneNominal},
		// 2026-01-19 is exactly 30 business days before monday.
		{"thirty days is not stale", models.Job{EventDate: "2026-01-19"}, ToneNominal},
		{"thirty one days is stale", models.Job{EventDate: "2026-01-16"}, ToneStale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeTone(tt.job, monday))
		})
	}
}

func TestDescribe(t *testing.T) {
	in := weddingInput()
	in.EventDate = "2026-01-15"
	st := newTestState(t, in)
	st, _, err := UpdateTask(st, "job-1", "backup_raw", TaskPatch{Done: ptr(true)})
	require.NoError(t, err)

	v := Describe(st.Jobs[0], monday)
	assert.Equal(t, "job-1", v.ID)
	assert.Equal(t, 1, v.DoneCount)
	assert.Equal(t, 6, v.Progress)
	assert.Equal(t, StatusInProgress, v.Status)
	assert.Equal(t, ToneStale, v.Tone)
	require.NotNil(t, v.DaysLeft)
	assert.Equal(t, 13, *v.DaysLeft)

	v = Describe(models.Job{ID: "x"}, monday)
	assert.Nil(t, v.DaysLeft)
}

func TestSummarize(t *testing.T) {
	st := NewState([]models.Job{
		{ID: "a"},
		{ID: "b", DueDate: "2026-03-04"},
		{ID: "c", DueDate: "2026-02-20"},
		{ID: "d", DueDate: "2026-02-20", IsCompleted: true},
		{ID: "e", DueDate: "2026-06-01"},
	})

	assert.Equal(t, Summary{
		Total:      5,
		Active:     4,
		InProgress: 2,
		DueSoon:    1,
		Overdue:    1,
		Finalized:  1,
	}, Summarize(st, monday))
}
