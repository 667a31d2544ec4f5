// Package calendar classifies civil dates as business days and does
// business-day arithmetic over them.
//
// A business day is a weekday whose month-day is not one of the fixed national
// holidays. Holidays match by month and day only, so they recur every year and
// movable holidays are not modeled.
package calendar

import (
	"strings"
	"time"
)

// Layout is the wire format for civil dates.
const Layout = "2006-01-02"

// Holiday is a fixed month-day that is never a business day.
type Holiday struct {
	Month time.Month
	Day   int
	Name  string
}

var holidays = []Holiday{
	{time.January, 1, "New Year's Day"},
	{time.April, 21, "Tiradentes"},
	{time.May, 1, "Labour Day"},
	{time.September, 7, "Independence Day"},
	{time.October, 12, "Our Lady of Aparecida"},
	{time.November, 2, "All Souls' Day"},
	{time.November, 15, "Proclamation of the Republic"},
	{time.December, 25, "Christmas Day"},
}

// Holidays returns a copy of the fixed holiday list in calendar order.
func Holidays() []Holiday {
	out := make([]Holiday, len(holidays))
	copy(out, holidays)
	return out
}

// Day returns the civil date of t (in t's own location) as midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsHoliday reports whether d falls on one of the fixed holidays.
func IsHoliday(d time.Time) bool {
	_, m, day := d.Date()
	for _, h := range holidays {
		if h.Month == m && h.Day == day {
			return true
		}
	}
	return false
}

// IsBusinessDay reports whether d is neither a weekend day nor a holiday.
func IsBusinessDay(d time.Time) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !IsHoliday(d)
}

// AddBusinessDays advances from start one calendar day at a time and returns
// the day on which the n-th business day is reached. For n <= 0 it returns
// start unchanged.
func AddBusinessDays(start time.Time, n int) time.Time {
	cur := Day(start)
	for added := 0; added < n; {
		cur = cur.AddDate(0, 0, 1)
		if IsBusinessDay(cur) {
			added++
		}
	}
	return cur
}

// BusinessDaysBetween counts the business days after the earlier of a and b
// up to and including the later one. The count is positive when b is after a,
// negative when b is before a, and zero when both are the same day.
//
// Counting landed-on days keeps it the inverse of AddBusinessDays:
// BusinessDaysBetween(d, AddBusinessDays(d, n)) == n.
func BusinessDaysBetween(a, b time.Time) int {
	from, to := Day(a), Day(b)
	sign := 1
	if to.Before(from) {
		from, to = to, from
		sign = -1
	}

	count := 0
	for cur := from; cur.Before(to); {
		cur = cur.AddDate(0, 0, 1)
		if IsBusinessDay(cur) {
			count++
		}
	}
	return sign * count
}

// Parse reads a YYYY-MM-DD date. Blank or unparsable input reports false,
// which callers must treat as "unknown" rather than as any particular day.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Format renders d as YYYY-MM-DD.
func Format(d time.Time) string {
	return Day(d).Format(Layout)
}

// AddBusinessDaysString is AddBusinessDays over the wire format.
// An absent or invalid start yields "".
func AddBusinessDaysString(start string, n int) string {
	d, ok := Parse(start)
	if !ok {
		return ""
	}
	return Format(AddBusinessDays(d, n))
}

// BusinessDaysBetweenStrings is BusinessDaysBetween over the wire format.
// It reports false when either date is absent or invalid.
func BusinessDaysBetweenStrings(a, b string) (int, bool) {
	da, ok := Parse(a)
	if !ok {
		return 0, false
	}
	db, ok := Parse(b)
	if !ok {
		return 0, false
	}
	return BusinessDaysBetween(da, db), true
}
