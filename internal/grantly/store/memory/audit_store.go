package memory

import (
	"context"
	"sync"
	"time"

	"github.com/grantlyhq/grantly/internal/grantly/types"
)

// AuditStore is an in-memory append-only audit ledger. Ids are assigned from
// a counter under the same lock as the append, so they are unique and strictly
// increasing even with many concurrent callers.
type AuditStore struct {
	mu      sync.Mutex
	nextID  int64
	records []types.AuditRecord

	// FailAppends makes every Append return this error. Test-only knob for
	// exercising the audit-write-failure path.
	FailAppends error
}

func NewAuditStore() *AuditStore {
	return &AuditStore{nextID: 1}
}

func (s *AuditStore) Append(_ context.Context, rec types.AuditRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAppends != nil {
		return 0, s.FailAppends
	}
	rec.ID = s.nextID
	s.nextID++
	s.records = append(s.records, rec)
	return rec.ID, nil
}

func (s *AuditStore) ListRange(_ context.Context, from, to time.Time, limit int) ([]types.AuditRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []types.AuditRecord
	for _, r := range s.records {
		if r.AttemptedAt.Before(from) || !r.AttemptedAt.Before(to) {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *AuditStore) PruneOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.records[:0]
	var deleted int64
	for _, r := range s.records {
		if r.AttemptedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept
	return deleted, nil
}

// Records returns a copy of all appended records. Test-only helper.
func (s *AuditStore) Records() []types.AuditRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.AuditRecord, len(s.records))
	copy(out, s.records)
	return out
}
