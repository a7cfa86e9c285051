// Package schedule holds the follow-up recurrence calculator and the
// overdue/due-today date classifier. Everything here is pure: callers pass
// values in and get values out, so a reminder chain is advanced one hop at a
// time rather than materialized up front.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

// Recurrence describes how a completed follow-up reschedules itself.
type Recurrence string

const (
	None    Recurrence = "none"
	Daily   Recurrence = "daily"
	Weekly  Recurrence = "weekly"
	Monthly Recurrence = "monthly"
	Custom  Recurrence = "custom"
)

// ErrInvalidDate is returned when a follow-up date string does not parse.
// Callers treat it as "no occurrence", never as a fatal condition.
var ErrInvalidDate = errors.New("invalid date")

// Valid reports whether r is a known recurrence rule.
func Valid(r Recurrence) bool {
	switch r {
	case None, Daily, Weekly, Monthly, Custom:
		return true
	}
	return false
}

// ParseTime parses an RFC 3339 timestamp, wrapping failures in ErrInvalidDate.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// NextOccurrence computes the follow-up after base under the given rule.
// The second return value is false when the rule produces no further
// occurrence (None or an unknown rule).
//
// Monthly uses AddDate(0, 1, 0), so an out-of-range day normalizes into the
// following month (Jan 31 -> Mar 2/3). A custom interval below 1 is treated
// as 1.
func NextOccurrence(base time.Time, rule Recurrence, interval int) (time.Time, bool) {
	switch rule {
	case Daily:
		return base.AddDate(0, 0, 1), true
	case Weekly:
		return base.AddDate(0, 0, 7), true
	case Monthly:
		return base.AddDate(0, 1, 0), true
	case Custom:
		if interval < 1 {
			interval = 1
		}
		return base.AddDate(0, 0, interval), true
	default:
		return time.Time{}, false
	}
}
