package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/raphaelgruber/studioflow/internal/models"
)

func TestCalendarICS(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 4, 5, 0, time.UTC)
	jobs := []models.Job{
		{
			ID: "w1", ClientName: "Carla, Gilvan", EventName: "Wedding",
			EventDate: "2026-01-15", DueDate: "2026-03-19", Notes: "two venues; one day",
			Tasks: []models.Task{{ID: "a", Done: true}, {ID: "b"}},
		},
		{ID: "done", ClientName: "Old", EventName: "Shoot", DueDate: "2026-02-01", IsCompleted: true},
		{ID: "nodate", ClientName: "Ana", EventName: "Party"},
	}

	ics := CalendarICS(jobs, "Casa Foto", now)
	lines := strings.Split(ics, "\r\n")

	assert.Equal(t, "BEGIN:VCALENDAR", lines[0])
	assert.Contains(t, ics, "PRODID:-//Casa Foto//Job Export//EN")
	assert.Equal(t, 2, strings.Count(ics, "BEGIN:VEVENT"))
	assert.Contains(t, ics, "UID:event-w1@studioflow")
	assert.Contains(t, ics, "UID:due-w1@studioflow")
	assert.Contains(t, ics, "DTSTAMP:20260302T150405Z")
	assert.Contains(t, ics, "SUMMARY:Delivery due: Carla\\, Gilvan: Wedding")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20260319")
	assert.Contains(t, ics, "DTEND;VALUE=DATE:20260320")
	assert.Contains(t, ics, "DESCRIPTION:1/2 tasks done\\ntwo venues\\; one day")
	assert.NotContains(t, ics, "done@studioflow")
	assert.True(t, strings.HasSuffix(ics, "END:VCALENDAR\r\n"))
}

func TestCalendarICSDefaultsStudioName(t *testing.T) {
	ics := CalendarICS(nil, "  ", time.Now())
	assert.Contains(t, ics, "X-WR-CALNAME:StudioFlow")
	assert.NotContains(t, ics, "BEGIN:VEVENT")
}
