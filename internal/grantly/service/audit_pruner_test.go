package service_test

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/grantlyhq/grantly/internal/grantly/service"
	"github.com/grantlyhq/grantly/internal/grantly/store/memory"
	"github.com/grantlyhq/grantly/internal/grantly/types"
)

func appendAt(t *testing.T, audit *memory.AuditStore, at time.Time) {
	t.Helper()
	_, err := audit.Append(context.Background(), types.AuditRecord{
		Actor: "registrar", Resource: "applications", Operation: types.OpInsert,
		Status: types.StatusAllowed, AttemptedAt: at,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
}

func TestAuditPruner_RemovesOldRecordsOnStart(t *testing.T) {
	audit := memory.NewAuditStore()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	appendAt(t, audit, now.Add(-40*24*time.Hour)) // past retention
	appendAt(t, audit, now.Add(-1*24*time.Hour))  // recent

	clock := clockwork.NewFakeClockAt(now)
	p := service.NewAuditPruner(audit, service.PrunerConfig{
		RetentionDays: 30,
		IntervalHours: 24,
	}, clock, log.New(io.Discard, "", 0))

	p.Start(context.Background())
	defer p.Stop()

	// The initial prune runs synchronously before the ticker loop blocks;
	// once the clock has a waiter the startup prune has finished.
	if err := clock.BlockUntilContext(context.Background(), 1); err != nil {
		t.Fatalf("waiting for pruner loop: %v", err)
	}

	recs := audit.Records()
	if len(recs) != 1 {
		t.Fatalf("expected 1 record after prune, got %d", len(recs))
	}
	if !recs[0].AttemptedAt.Equal(now.Add(-24 * time.Hour)) {
		t.Errorf("wrong record survived: %+v", recs[0])
	}
}

func TestAuditPruner_ZeroRetention_NeverStarts(t *testing.T) {
	audit := memory.NewAuditStore()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	appendAt(t, audit, now.Add(-400*24*time.Hour))

	p := service.NewAuditPruner(audit, service.PrunerConfig{RetentionDays: 0},
		clockwork.NewFakeClockAt(now), log.New(io.Discard, "", 0))

	p.Start(context.Background())
	p.Stop()

	if len(audit.Records()) != 1 {
		t.Error("retention=0 must keep everything")
	}
}
