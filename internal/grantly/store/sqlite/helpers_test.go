package sqlite_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/grantlyhq/grantly/internal/db"
)

// openTestDB returns an in-memory SQLite connection with the same PRAGMAs
// and schema as production. The connection is closed automatically when the
// test finishes.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// Each call gets a unique in-memory database. The shared-cache URI
	// keeps it alive for the lifetime of the connection pool.
	dsn := fmt.Sprintf(
		"file:test_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)",
		t.Name(),
	)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("openTestDB: sql.Open: %v", err)
	}

	// Match production: single connection.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if err := conn.Ping(); err != nil {
		conn.Close()
		t.Fatalf("openTestDB: ping: %v", err)
	}

	if err := db.Migrate(context.Background(), conn); err != nil {
		conn.Close()
		t.Fatalf("openTestDB: migrate: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// newTestWriter returns a db.Writer backed by conn, closed when the test ends.
func newTestWriter(t *testing.T, conn *sql.DB) *db.Writer {
	t.Helper()

	w := db.NewWriter(conn)
	t.Cleanup(func() { w.Close() })
	return w
}

// seedStudent and seedScholarship satisfy the FK constraints on applications.
func seedStudent(t *testing.T, conn *sql.DB, id string, gpa float64) {
	t.Helper()
	nowMs := time.Now().UTC().UnixMilli()
	_, err := conn.ExecContext(context.Background(), `
INSERT OR IGNORE INTO students(student_id, name, email, gpa, created_at_ms)
VALUES (?, ?, ?, ?, ?);`, id, "Student "+id, id+"@example.edu", gpa, nowMs)
	if err != nil {
		t.Fatalf("seedStudent(%s): %v", id, err)
	}
}

func seedScholarship(t *testing.T, conn *sql.DB, id string, minGPA float64) {
	t.Helper()
	nowMs := time.Now().UTC().UnixMilli()
	_, err := conn.ExecContext(context.Background(), `
INSERT OR IGNORE INTO scholarships(scholarship_id, name, min_gpa, amount_cents, created_at_ms)
VALUES (?, ?, ?, 100000, ?);`, id, "Scholarship "+id, minGPA, nowMs)
	if err != nil {
		t.Fatalf("seedScholarship(%s): %v", id, err)
	}
}
