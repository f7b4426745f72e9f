package trace_test

import (
	"context"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/rubrique/dbopen"
	"github.com/hazyhaar/rubrique/trace"
)

func newStore(t *testing.T) *trace.Store {
	t.Helper()
	db := dbopen.OpenMemory(t)
	s := trace.NewStore(db)
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordAndRecent(t *testing.T) {
	// WHAT: A recorded run is readable back after Close drains the buffer.
	// WHY: The run log is the only record of what the converter processed.
	s := newStore(t)

	s.RecordAsync(&trace.Run{
		Source:     "quiz_2026-08-31.pdf",
		Rounds:     7,
		Entries:    52,
		Blocks:     12,
		DurationUs: 4200,
	})
	s.Close()

	runs, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs: got %d, want 1", len(runs))
	}
	r := runs[0]
	if r.Source != "quiz_2026-08-31.pdf" || r.Rounds != 7 || r.Entries != 52 {
		t.Fatalf("run round-trip mismatch: %+v", r)
	}
	if r.Timestamp == 0 {
		t.Error("expected auto-filled timestamp")
	}
}

func TestStore_RecentOrder(t *testing.T) {
	// WHAT: Recent returns newest runs first.
	// WHY: Operators scan the tail of the log, not its head.
	s := newStore(t)

	now := time.Now().Unix()
	s.RecordAsync(&trace.Run{Source: "old.pdf", Timestamp: now - 100})
	s.RecordAsync(&trace.Run{Source: "new.pdf", Timestamp: now})
	s.Close()

	runs, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs: got %d, want 2", len(runs))
	}
	if runs[0].Source != "new.pdf" {
		t.Fatalf("order: got %q first, want new.pdf", runs[0].Source)
	}
}

func TestStore_FailedRun(t *testing.T) {
	// WHAT: Runs with an error string survive the round-trip.
	// WHY: Failure history matters more than success history.
	s := newStore(t)

	s.RecordAsync(&trace.Run{Source: "broken.pdf", Error: "no rounds recovered"})
	s.Close()

	runs, err := s.Recent(context.Background(), 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 1 || runs[0].Error != "no rounds recovered" {
		t.Fatalf("failed run not recorded: %+v", runs)
	}
}
