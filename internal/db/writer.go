package db

import (
	"context"
	"database/sql"
)

type TxFn func(ctx context.Context, tx *sql.Tx) error

type writeJob struct {
	ctx context.Context
	fn  TxFn
	ch  chan error
}

// Writer serializes all write transactions through one goroutine. SQLite
// allows a single writer at a time; funneling writes here avoids SQLITE_BUSY
// churn and gives audit appends a total order (and therefore strictly
// increasing ids) no matter how many callers are in flight.
type Writer struct {
	db   *sql.DB
	jobs chan writeJob
	done chan struct{}
}

func NewWriter(db *sql.DB) *Writer {
	w := &Writer{
		db:   db,
		jobs: make(chan writeJob, 256),
		done: make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *Writer) Close() {
	close(w.jobs)
	<-w.done
}

// Exec runs fn inside its own transaction on the writer goroutine.
func (w *Writer) Exec(ctx context.Context, fn TxFn) error {
	ch := make(chan error, 1)
	j := writeJob{ctx: ctx, fn: fn, ch: ch}

	// Enqueue — bail out if the caller's context expires while the buffer is full.
	select {
	case w.jobs <- j:
	case <-ctx.Done():
		return ctx.Err()
	}

	// Wait for the result. If the caller's context expires first, the loop
	// still finishes the transaction; the result lands in the buffered ch
	// and is discarded.
	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Writer) loop() {
	defer close(w.done)

	for j := range w.jobs {
		tx, err := w.db.BeginTx(j.ctx, nil)
		if err != nil {
			j.ch <- err
			continue
		}

		if err := j.fn(j.ctx, tx); err != nil {
			_ = tx.Rollback()
			j.ch <- err
			continue
		}

		j.ch <- tx.Commit()
	}
}
