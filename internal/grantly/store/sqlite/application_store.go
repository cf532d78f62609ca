package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	dbpkg "github.com/grantlyhq/grantly/internal/db"
	"github.com/grantlyhq/grantly/internal/grantly/store"
	"github.com/grantlyhq/grantly/internal/grantly/types"
)

type ApplicationStore struct {
	db     *sql.DB
	writer *dbpkg.Writer
}

func NewApplicationStore(db *sql.DB, writer *dbpkg.Writer) *ApplicationStore {
	return &ApplicationStore{db: db, writer: writer}
}

func (s *ApplicationStore) Insert(ctx context.Context, app types.Application) error {
	submittedMs := app.SubmittedAt.UTC().UnixMilli()
	updatedMs := app.UpdatedAt.UTC().UnixMilli()

	err := s.writer.Exec(ctx, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO applications(
  application_id, student_id, scholarship_id, status, submitted_at_ms, updated_at_ms
) VALUES (?, ?, ?, ?, ?, ?);
`, app.ID, app.StudentID, app.ScholarshipID, app.Status, submittedMs, updatedMs)
		return err
	})
	if err != nil {
		if isConstraint(err) {
			return fmt.Errorf("insert application: %w: %v", store.ErrDuplicate, err)
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (s *ApplicationStore) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	updatedMs := updatedAt.UTC().UnixMilli()

	return s.writer.Exec(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE applications SET status = ?, updated_at_ms = ? WHERE application_id = ?;
`, status, updatedMs, id)
		if err != nil {
			return fmt.Errorf("update application status: %w", err)
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return fmt.Errorf("update application %s: %w", id, store.ErrNotFound)
		}
		return nil
	})
}

func (s *ApplicationStore) Delete(ctx context.Context, id string) error {
	return s.writer.Exec(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
DELETE FROM applications WHERE application_id = ?;
`, id)
		if err != nil {
			return fmt.Errorf("delete application: %w", err)
		}
		n, _ := res.RowsAffected()
		if n == 0 {
			return fmt.Errorf("delete application %s: %w", id, store.ErrNotFound)
		}
		return nil
	})
}

func (s *ApplicationStore) Get(ctx context.Context, id string) (types.Application, error) {
	var (
		app         types.Application
		submittedMs int64
		updatedMs   int64
	)
	err := s.db.QueryRowContext(ctx, `
SELECT application_id, student_id, scholarship_id, status, submitted_at_ms, updated_at_ms
FROM applications WHERE application_id = ?;
`, id).Scan(&app.ID, &app.StudentID, &app.ScholarshipID, &app.Status, &submittedMs, &updatedMs)
	if err == sql.ErrNoRows {
		return types.Application{}, fmt.Errorf("get application %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return types.Application{}, fmt.Errorf("get application: %w", err)
	}
	app.SubmittedAt = time.UnixMilli(submittedMs).UTC()
	app.UpdatedAt = time.UnixMilli(updatedMs).UTC()
	return app, nil
}

func (s *ApplicationStore) EligibleStudents(ctx context.Context, scholarshipID string) ([]types.Student, error) {
	// Existence check first so an unknown scholarship is a clean ErrNotFound
	// rather than an empty result.
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM scholarships WHERE scholarship_id = ?;`, scholarshipID,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("scholarship %s: %w", scholarshipID, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("EligibleStudents: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT s.student_id, s.name, s.email, s.gpa
FROM students s
WHERE s.gpa >= (SELECT min_gpa FROM scholarships WHERE scholarship_id = ?)
  AND NOT EXISTS (
    SELECT 1 FROM applications a
    WHERE a.student_id = s.student_id AND a.scholarship_id = ?
  )
ORDER BY s.gpa DESC, s.student_id;
`, scholarshipID, scholarshipID)
	if err != nil {
		return nil, fmt.Errorf("EligibleStudents query: %w", err)
	}
	defer rows.Close()

	var out []types.Student
	for rows.Next() {
		var st types.Student
		if err := rows.Scan(&st.ID, &st.Name, &st.Email, &st.GPA); err != nil {
			return nil, fmt.Errorf("EligibleStudents scan: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// isConstraint reports whether err is a SQLite constraint violation
// (uniqueness or foreign key). modernc.org/sqlite surfaces these as plain
// errors, so the message is the only discriminator available.
func isConstraint(err error) bool {
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
