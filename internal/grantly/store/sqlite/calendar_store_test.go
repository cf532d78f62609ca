package sqlite_test

import (
	"context"
	"testing"
	"time"

	sqlitestore "github.com/grantlyhq/grantly/internal/grantly/store/sqlite"
)

func utcDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestCalendarStore_AddAndLookup(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	cs := sqlitestore.NewCalendarStore(conn, w)
	ctx := context.Background()

	days := []time.Time{utcDay(t, "2025-06-01"), utcDay(t, "2025-06-15")}
	if err := cs.AddDates(ctx, days); err != nil {
		t.Fatalf("AddDates: %v", err)
	}

	restricted, err := cs.IsRestricted(ctx, utcDay(t, "2025-06-01"))
	if err != nil {
		t.Fatalf("IsRestricted: %v", err)
	}
	if !restricted {
		t.Error("expected 2025-06-01 to be restricted")
	}

	// Time-of-day must not matter: only the calendar day is compared.
	restricted, err = cs.IsRestricted(ctx, utcDay(t, "2025-06-15").Add(14*time.Hour))
	if err != nil {
		t.Fatalf("IsRestricted: %v", err)
	}
	if !restricted {
		t.Error("expected 2025-06-15T14:00 to be restricted")
	}

	restricted, err = cs.IsRestricted(ctx, utcDay(t, "2025-06-08"))
	if err != nil {
		t.Fatalf("IsRestricted: %v", err)
	}
	if restricted {
		t.Error("absence is a plain false, not an error")
	}
}

func TestCalendarStore_AddIsIdempotent(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	cs := sqlitestore.NewCalendarStore(conn, w)
	ctx := context.Background()

	d := []time.Time{utcDay(t, "2025-06-01")}
	if err := cs.AddDates(ctx, d); err != nil {
		t.Fatalf("AddDates: %v", err)
	}
	if err := cs.AddDates(ctx, d); err != nil {
		t.Fatalf("AddDates (repeat): %v", err)
	}

	dates, err := cs.ListDates(ctx)
	if err != nil {
		t.Fatalf("ListDates: %v", err)
	}
	if len(dates) != 1 {
		t.Errorf("the store is a set; expected 1 date, got %d", len(dates))
	}
}

func TestCalendarStore_RemoveDates(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	cs := sqlitestore.NewCalendarStore(conn, w)
	ctx := context.Background()

	if err := cs.AddDates(ctx, []time.Time{utcDay(t, "2025-06-01"), utcDay(t, "2025-06-15")}); err != nil {
		t.Fatalf("AddDates: %v", err)
	}
	if err := cs.RemoveDates(ctx, []time.Time{utcDay(t, "2025-06-01")}); err != nil {
		t.Fatalf("RemoveDates: %v", err)
	}

	dates, err := cs.ListDates(ctx)
	if err != nil {
		t.Fatalf("ListDates: %v", err)
	}
	if len(dates) != 1 || dates[0] != "2025-06-15" {
		t.Errorf("expected only 2025-06-15 left, got %v", dates)
	}
}
