package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbpkg "github.com/grantlyhq/grantly/internal/db"
	"github.com/grantlyhq/grantly/internal/grantly/types"
)

// AuditStore persists the audit ledger. All appends go through the single
// writer, so AUTOINCREMENT ids come out strictly increasing with no duplicates
// regardless of caller concurrency.
type AuditStore struct {
	db     *sql.DB
	writer *dbpkg.Writer
}

func NewAuditStore(db *sql.DB, writer *dbpkg.Writer) *AuditStore {
	return &AuditStore{db: db, writer: writer}
}

func (s *AuditStore) Append(ctx context.Context, rec types.AuditRecord) (int64, error) {
	if rec.AttemptedAt.IsZero() {
		rec.AttemptedAt = time.Now().UTC()
	}
	attemptedMs := rec.AttemptedAt.UTC().UnixMilli()

	var id int64
	err := s.writer.Exec(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO audit_log(actor, resource, operation, status, attempted_at_ms)
VALUES (?, ?, ?, ?, ?);
`, rec.Actor, rec.Resource, string(rec.Operation), rec.Status, attemptedMs)
		if err != nil {
			return fmt.Errorf("Append insert: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("Append last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *AuditStore) ListRange(ctx context.Context, from, to time.Time, limit int) ([]types.AuditRecord, error) {
	q := `
SELECT id, actor, resource, operation, status, attempted_at_ms
FROM audit_log
WHERE attempted_at_ms >= ? AND attempted_at_ms < ?
ORDER BY id`
	args := []any{from.UTC().UnixMilli(), to.UTC().UnixMilli()}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q+";", args...)
	if err != nil {
		return nil, fmt.Errorf("ListRange: %w", err)
	}
	defer rows.Close()

	var out []types.AuditRecord
	for rows.Next() {
		var (
			rec         types.AuditRecord
			op          string
			attemptedMs int64
		)
		if err := rows.Scan(&rec.ID, &rec.Actor, &rec.Resource, &op, &rec.Status, &attemptedMs); err != nil {
			return nil, fmt.Errorf("ListRange scan: %w", err)
		}
		rec.Operation = types.Operation(op)
		rec.AttemptedAt = time.UnixMilli(attemptedMs).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}

// PruneOlderThan implements the out-of-band retention policy. It is the only
// code path that deletes audit rows.
func (s *AuditStore) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	cutoffMs := cutoff.UTC().UnixMilli()

	var deleted int64
	err := s.writer.Exec(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
DELETE FROM audit_log WHERE attempted_at_ms < ?;
`, cutoffMs)
		if err != nil {
			return fmt.Errorf("PruneOlderThan: %w", err)
		}
		deleted, _ = res.RowsAffected()
		return nil
	})
	return deleted, err
}
