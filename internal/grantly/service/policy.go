package service

import (
	"context"
	"time"

	"github.com/grantlyhq/grantly/internal/grantly/store"
	"github.com/grantlyhq/grantly/internal/grantly/types"
)

// Evaluate applies the write-window rule to a single instant: deny on any
// weekday (Mon-Fri), and deny on any configured holiday. The two predicates
// are independent, so a holiday falling on a weekend is still denied and a
// weekday attempt may carry both reasons.
//
// The caller is expected to pass now already converted to the policy
// timezone; the weekday and calendar day are derived from it directly.
// Evaluate is deterministic given (now, calendar) and has no side effects.
func Evaluate(ctx context.Context, now time.Time, cal store.CalendarStore) (types.Decision, error) {
	var reasons []string

	switch now.Weekday() {
	case time.Saturday, time.Sunday:
		// weekend: fine on the weekday rule
	default:
		reasons = append(reasons, types.ReasonWeekday)
	}

	restricted, err := cal.IsRestricted(ctx, now)
	if err != nil {
		return types.Decision{}, err
	}
	if restricted {
		reasons = append(reasons, types.ReasonHoliday)
	}

	return types.Decision{Allow: len(reasons) == 0, Reasons: reasons}, nil
}
