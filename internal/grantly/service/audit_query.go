package service

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/grantlyhq/grantly/internal/grantly/store"
	"github.com/grantlyhq/grantly/internal/grantly/types"
)

// AuditQueryService is the read side of the audit ledger, consumed by the
// reporting surface ("everything in the last N hours").
type AuditQueryService struct {
	audit store.AuditStore
	clock clockwork.Clock
}

func NewAuditQueryService(audit store.AuditStore, clock clockwork.Clock) *AuditQueryService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &AuditQueryService{audit: audit, clock: clock}
}

// Window returns audit records from the last `hours` hours in insertion
// order. hours <= 0 defaults to 168 (seven days).
func (s *AuditQueryService) Window(ctx context.Context, hours, limit int) ([]types.AuditRecord, error) {
	if hours <= 0 {
		hours = 7 * 24
	}
	now := s.clock.Now().UTC()
	from := now.Add(-time.Duration(hours) * time.Hour)
	// Nudge `to` past now so records stamped at this exact instant land
	// inside the half-open range.
	return s.audit.ListRange(ctx, from, now.Add(time.Millisecond), limit)
}
