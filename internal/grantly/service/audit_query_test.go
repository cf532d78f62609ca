package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/grantlyhq/grantly/internal/grantly/service"
	"github.com/grantlyhq/grantly/internal/grantly/store/memory"
)

func TestAuditWindow_DefaultsToSevenDays(t *testing.T) {
	audit := memory.NewAuditStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	appendAt(t, audit, now.Add(-8*24*time.Hour)) // outside the window
	appendAt(t, audit, now.Add(-6*24*time.Hour))
	appendAt(t, audit, now)

	svc := service.NewAuditQueryService(audit, clockwork.NewFakeClockAt(now))

	recs, err := svc.Window(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("Window: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records in the default window, got %d", len(recs))
	}
	if recs[0].ID >= recs[1].ID {
		t.Error("expected insertion order")
	}
}

func TestAuditWindow_ExplicitHours(t *testing.T) {
	audit := memory.NewAuditStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	appendAt(t, audit, now.Add(-3*time.Hour))
	appendAt(t, audit, now.Add(-30*time.Minute))

	svc := service.NewAuditQueryService(audit, clockwork.NewFakeClockAt(now))

	recs, err := svc.Window(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("Window: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("expected 1 record in the last hour, got %d", len(recs))
	}
}
