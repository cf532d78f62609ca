package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/grantlyhq/grantly/internal/grantly/service"
	"github.com/grantlyhq/grantly/internal/grantly/store/memory"
	"github.com/grantlyhq/grantly/internal/grantly/types"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestEvaluate(t *testing.T) {
	holidays := []string{"2025-06-01", "2025-06-15"} // both Sundays

	cases := []struct {
		name        string
		now         string
		wantAllow   bool
		wantReasons []string
	}{
		{"monday not holiday", "2025-05-26", false, []string{types.ReasonWeekday}},
		{"friday not holiday", "2025-05-30", false, []string{types.ReasonWeekday}},
		{"saturday not holiday", "2025-05-31", true, nil},
		{"sunday not holiday", "2025-06-08", true, nil},
		{"sunday holiday", "2025-06-01", false, []string{types.ReasonHoliday}},
		{"second sunday holiday", "2025-06-15", false, []string{types.ReasonHoliday}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var days []time.Time
			for _, h := range holidays {
				days = append(days, day(t, h))
			}
			cal := memory.NewCalendarStore(days)

			dec, err := service.Evaluate(context.Background(), day(t, tc.now), cal)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if dec.Allow != tc.wantAllow {
				t.Errorf("allow=%v, want %v", dec.Allow, tc.wantAllow)
			}
			if len(dec.Reasons) != len(tc.wantReasons) {
				t.Fatalf("reasons=%v, want %v", dec.Reasons, tc.wantReasons)
			}
			for i := range tc.wantReasons {
				if dec.Reasons[i] != tc.wantReasons[i] {
					t.Errorf("reasons=%v, want %v", dec.Reasons, tc.wantReasons)
				}
			}
		})
	}
}

func TestEvaluate_WeekdayHoliday_BothReasons(t *testing.T) {
	// 2025-06-02 is a Monday; flagging it a holiday must not mask the
	// weekday reason — the two predicates are independent.
	cal := memory.NewCalendarStore([]time.Time{day(t, "2025-06-02")})

	dec, err := service.Evaluate(context.Background(), day(t, "2025-06-02"), cal)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if dec.Allow {
		t.Fatal("expected deny")
	}
	if len(dec.Reasons) != 2 || dec.Reasons[0] != types.ReasonWeekday || dec.Reasons[1] != types.ReasonHoliday {
		t.Errorf("expected [weekday holiday], got %v", dec.Reasons)
	}
}

func TestEvaluate_ArbitraryDates_NoMonthScoping(t *testing.T) {
	// The restricted set is not limited to any month or year.
	cal := memory.NewCalendarStore([]time.Time{day(t, "2026-01-03")}) // a Saturday

	dec, err := service.Evaluate(context.Background(), day(t, "2026-01-03"), cal)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if dec.Allow {
		t.Error("expected deny for a holiday outside the seed month")
	}
}
