package schedule

import "time"

// The classifier works at day granularity in the reference time's location:
// time-of-day is ignored, so a follow-up at 23:59 today is due today, not
// overdue. Overdue and due-today are mutually exclusive by construction and
// together with "future" partition every timestamp.

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// IsOverdueAt reports whether t falls on a calendar day strictly before now's.
func IsOverdueAt(t, now time.Time) bool {
	return startOfDay(t, now.Location()).Before(startOfDay(now, now.Location()))
}

// IsDueTodayAt reports whether t falls on the same calendar day as now.
func IsDueTodayAt(t, now time.Time) bool {
	return startOfDay(t, now.Location()).Equal(startOfDay(now, now.Location()))
}

// IsOverdue evaluates against the wall clock, fresh on every call.
func IsOverdue(t time.Time) bool {
	return IsOverdueAt(t, time.Now())
}

// IsDueToday evaluates against the wall clock, fresh on every call.
func IsDueToday(t time.Time) bool {
	return IsDueTodayAt(t, time.Now())
}
