package daybucket

import "time"

// Attendance and sales deliberately bucket timestamps onto calendar days with
// two different conventions. Attendance rows key on UTC midnight, sales and
// assignments key on server-local midnight. Keep both functions: collapsing
// them into one shifts which day a record lands on near midnight and near
// timezone boundaries.

// AttendanceDay returns the UTC midnight of the calendar day t falls on in UTC.
func AttendanceDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// SalesDay returns the midnight of the calendar day t falls on in loc.
// A nil loc means the server timezone.
func SalesDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	l := t.In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, loc)
}

// MinutesIntoDay returns how many minutes past midnight t is, in its own location.
func MinutesIntoDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
