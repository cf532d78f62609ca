package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbpkg "github.com/grantlyhq/grantly/internal/db"
	"github.com/grantlyhq/grantly/internal/grantly/store"
)

type CalendarStore struct {
	db     *sql.DB
	writer *dbpkg.Writer
}

func NewCalendarStore(db *sql.DB, writer *dbpkg.Writer) *CalendarStore {
	return &CalendarStore{db: db, writer: writer}
}

func (s *CalendarStore) IsRestricted(ctx context.Context, t time.Time) (bool, error) {
	var day string
	err := s.db.QueryRowContext(ctx,
		`SELECT day FROM calendar_dates WHERE day = ?;`, store.DayKey(t),
	).Scan(&day)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("IsRestricted: %w", err)
	}
	return true, nil
}

func (s *CalendarStore) AddDates(ctx context.Context, days []time.Time) error {
	if len(days) == 0 {
		return nil
	}
	return s.writer.Exec(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for _, d := range days {
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO calendar_dates(day) VALUES (?);`, store.DayKey(d),
			); err != nil {
				return fmt.Errorf("AddDates %s: %w", store.DayKey(d), err)
			}
		}
		return nil
	})
}

func (s *CalendarStore) RemoveDates(ctx context.Context, days []time.Time) error {
	if len(days) == 0 {
		return nil
	}
	return s.writer.Exec(ctx, func(ctx context.Context, tx *sql.Tx) error {
		for _, d := range days {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM calendar_dates WHERE day = ?;`, store.DayKey(d),
			); err != nil {
				return fmt.Errorf("RemoveDates %s: %w", store.DayKey(d), err)
			}
		}
		return nil
	})
}

func (s *CalendarStore) ListDates(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT day FROM calendar_dates ORDER BY day;`)
	if err != nil {
		return nil, fmt.Errorf("ListDates: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("ListDates scan: %w", err)
		}
		out = append(out, day)
	}
	return out, rows.Err()
}
