// Package export renders the job collection into calendar files.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/raphaelgruber/studioflow/internal/calendar"
	"github.com/raphaelgruber/studioflow/internal/models"
)

const icsDateLayout = "20060102"

// CalendarICS builds an iCalendar file with an all-day event for every
// unfinished job's event date and due date. Finalized jobs and jobs without
// dates contribute nothing.
func CalendarICS(jobs []models.Job, studio string, now time.Time) string {
	if strings.TrimSpace(studio) == "" {
		studio = "StudioFlow"
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//" + escapeICSText(studio) + "//Job Export//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:" + escapeICSText(studio),
	}

	stamp := now.UTC().Format("20060102T150405Z")
	for _, j := range jobs {
		if j.IsCompleted {
			continue
		}
		label := j.ClientName + ": " + j.EventName
		if d, ok := calendar.Parse(j.EventDate); ok {
			lines = append(lines, vevent("event-"+j.ID, stamp, d, label, describe(j))...)
		}
		if d, ok := calendar.Parse(j.DueDate); ok {
			lines = append(lines, vevent("due-"+j.ID, stamp, d, "Delivery due: "+label, describe(j))...)
		}
	}

	lines = append(lines, "END:VCALENDAR", "")
	return strings.Join(lines, "\r\n")
}

func vevent(uid, stamp string, day time.Time, summary, desc string) []string {
	lines := []string{
		"BEGIN:VEVENT",
		"UID:" + escapeICSText(uid+"@studioflow"),
		"DTSTAMP:" + stamp,
		"SUMMARY:" + escapeICSText(summary),
		"DTSTART;VALUE=DATE:" + day.Format(icsDateLayout),
		"DTEND;VALUE=DATE:" + day.AddDate(0, 0, 1).Format(icsDateLayout),
	}
	if desc != "" {
		lines = append(lines, "DESCRIPTION:"+escapeICSText(desc))
	}
	return append(lines, "END:VEVENT")
}

func describe(j models.Job) string {
	done := 0
	for _, t := range j.Tasks {
		if t.Done {
			done++
		}
	}
	desc := fmt.Sprintf("%d/%d tasks done", done, len(j.Tasks))
	if notes := strings.TrimSpace(j.Notes); notes != "" {
		desc += "\n" + notes
	}
	return desc
}

func escapeICSText(s string) string {
	repl := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
	)
	return repl.Replace(s)
}
