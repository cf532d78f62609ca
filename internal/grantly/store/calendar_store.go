package store

import (
	"context"
	"time"
)

// DayKey normalizes a timestamp to its calendar day. The caller is expected
// to pass a time already in the policy timezone; only the date part is kept.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// CalendarStore holds the set of restricted calendar dates (holidays).
// It is a set: adding a date twice is a no-op, absence is not an error.
type CalendarStore interface {
	// IsRestricted reports whether the day of t is in the restricted set.
	IsRestricted(ctx context.Context, t time.Time) (bool, error)

	AddDates(ctx context.Context, days []time.Time) error
	RemoveDates(ctx context.Context, days []time.Time) error

	// ListDates returns the configured days in ascending order.
	ListDates(ctx context.Context) ([]string, error)
}
