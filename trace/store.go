// CLAUDE:SUMMARY Async SQLite log of extraction runs — buffered channel, batched flushes, drop on backpressure.
// Package trace persists one row per extraction run so operators can inspect
// what the converter has been fed and how each document fared.
package trace

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"time"
)

// Schema for the extraction_runs table. Call Store.Init() or apply manually.
const Schema = `
CREATE TABLE IF NOT EXISTS extraction_runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	request_id  TEXT,
	source      TEXT NOT NULL,
	rounds      INTEGER NOT NULL,
	entries     INTEGER NOT NULL,
	blocks      INTEGER NOT NULL,
	duration_us INTEGER NOT NULL,
	error       TEXT,
	timestamp   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extraction_runs_ts ON extraction_runs(timestamp);
CREATE INDEX IF NOT EXISTS idx_extraction_runs_err ON extraction_runs(error) WHERE error != '';
`

// Run is one extraction attempt.
type Run struct {
	RequestID  string `json:"request_id,omitempty"`
	Source     string `json:"source"`
	Rounds     int    `json:"rounds"`
	Entries    int    `json:"entries"`
	Blocks     int    `json:"blocks"`
	DurationUs int64  `json:"duration_us"`
	Error      string `json:"error,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// Store persists runs to SQLite asynchronously. Writes never block or fail
// the conversion they describe: the buffer drops on backpressure and flush
// errors are only logged.
type Store struct {
	db   *sql.DB
	ch   chan *Run
	done chan struct{}
	once sync.Once
}

// NewStore creates a run store backed by the given database connection.
func NewStore(db *sql.DB) *Store {
	s := &Store{
		db:   db,
		ch:   make(chan *Run, 1024),
		done: make(chan struct{}),
	}
	go s.flushLoop()
	return s
}

// Init creates the extraction_runs table if it doesn't exist.
func (s *Store) Init() error {
	_, err := s.db.Exec(Schema)
	return err
}

// RecordAsync queues a run for async persistence. Non-blocking; drops if the
// buffer is full.
func (s *Store) RecordAsync(r *Run) {
	if r.Timestamp == 0 {
		r.Timestamp = time.Now().Unix()
	}
	select {
	case s.ch <- r:
	default:
		// buffer full — drop rather than stall the pipeline
	}
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT request_id, source, rounds, entries, blocks, duration_us, error, timestamp
		FROM extraction_runs ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RequestID, &r.Source, &r.Rounds, &r.Entries, &r.Blocks,
			&r.DurationUs, &r.Error, &r.Timestamp); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close drains the buffer and stops the flush goroutine.
func (s *Store) Close() error {
	s.once.Do(func() {
		close(s.ch)
		<-s.done
	})
	return nil
}

func (s *Store) flushLoop() {
	defer close(s.done)

	batch := make([]*Run, 0, 64)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case r, ok := <-s.ch:
			if !ok {
				s.flushBatch(batch)
				return
			}
			batch = append(batch, r)
			if len(batch) >= 64 {
				s.flushBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flushBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *Store) flushBatch(batch []*Run) {
	if len(batch) == 0 {
		return
	}

	tx, err := s.db.Begin()
	if err != nil {
		slog.Error("trace store: begin tx", "error", err)
		return
	}

	stmt, err := tx.Prepare(`INSERT INTO extraction_runs
		(request_id, source, rounds, entries, blocks, duration_us, error, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		slog.Error("trace store: prepare", "error", err)
		return
	}
	defer stmt.Close()

	for _, r := range batch {
		if _, err := stmt.Exec(r.RequestID, r.Source, r.Rounds, r.Entries, r.Blocks,
			r.DurationUs, r.Error, r.Timestamp); err != nil {
			slog.Error("trace store: insert", "error", err)
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("trace store: commit", "error", err)
	}
}
