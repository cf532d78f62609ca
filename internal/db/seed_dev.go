package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type SeedDevOptions struct {
	// Holidays to pre-populate, ISO yyyy-mm-dd.
	Holidays []string
}

// SeedDev inserts a small roster so a fresh dev database has something to
// query against. Idempotent: reruns leave existing rows alone.
func SeedDev(ctx context.Context, db *sql.DB, opt SeedDevOptions) error {
	now := time.Now().UTC().UnixMilli()

	students := []struct {
		id, name, email string
		gpa             float64
	}{
		{"stu-001", "Ada Moreno", "ada.moreno@example.edu", 3.9},
		{"stu-002", "Ben Okafor", "ben.okafor@example.edu", 3.4},
		{"stu-003", "Cleo Tanaka", "cleo.tanaka@example.edu", 2.8},
	}
	for _, s := range students {
		if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO students(student_id, name, email, gpa, created_at_ms)
VALUES (?, ?, ?, ?, ?);`, s.id, s.name, s.email, s.gpa, now); err != nil {
			return fmt.Errorf("seed student %s: %w", s.id, err)
		}
	}

	scholarships := []struct {
		id, name string
		minGPA   float64
		cents    int64
	}{
		{"sch-merit", "Merit Award", 3.5, 250000},
		{"sch-need", "Access Grant", 0.0, 100000},
	}
	for _, s := range scholarships {
		if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO scholarships(scholarship_id, name, min_gpa, amount_cents, created_at_ms)
VALUES (?, ?, ?, ?, ?);`, s.id, s.name, s.minGPA, s.cents, now); err != nil {
			return fmt.Errorf("seed scholarship %s: %w", s.id, err)
		}
	}

	for _, day := range opt.Holidays {
		if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO calendar_dates(day) VALUES (?);`, day); err != nil {
			return fmt.Errorf("seed holiday %s: %w", day, err)
		}
	}

	return nil
}
