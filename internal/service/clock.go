package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/raphaelgruber/studioflow/internal/calendar"
)

// Clock is the current-date source for status, tone and finalize stamps.
type Clock interface {
	Today() time.Time
}

// SystemClock reads the wall clock in the studio's timezone.
type SystemClock struct {
	Location *time.Location
}

// Today returns the current civil date in c.Location (UTC when nil).
func (c SystemClock) Today() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return calendar.Day(time.Now().In(loc))
}

// FixedClock always reports the same day. Useful in tests.
type FixedClock struct {
	Day time.Time
}

// Today returns the fixed day.
func (c FixedClock) Today() time.Time {
	return calendar.Day(c.Day)
}

// IDFunc produces identifiers for new jobs.
type IDFunc func() string

// NewID is the default IDFunc.
func NewID() string {
	return uuid.NewString()
}
