package store

import (
	"context"
	"time"

	"github.com/grantlyhq/grantly/internal/grantly/types"
)

// AuditStore persists mutation attempts as a write-once, read-many ledger.
// Append is the only write operation; no method mutates or removes an
// existing record. Retention is handled separately (see AuditRetention).
type AuditStore interface {
	// Append adds one record and returns its assigned id. Ids are
	// monotonically increasing and unique under concurrent appends.
	Append(ctx context.Context, rec types.AuditRecord) (int64, error)

	// ListRange returns records with AttemptedAt in [from, to), in
	// insertion (id) order, up to limit rows. limit <= 0 means no limit.
	ListRange(ctx context.Context, from, to time.Time, limit int) ([]types.AuditRecord, error)
}

// AuditRetention is the out-of-band retention hook. It is deliberately kept
// off AuditStore so the recorder surface stays append-only.
type AuditRetention interface {
	// PruneOlderThan deletes records attempted before cutoff and returns
	// the number of rows removed.
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
