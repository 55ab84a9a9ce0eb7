package results

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
	"github.com/robalobadob/wordle/apps/go-solver/internal/trial"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "results.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(db, assets.Migrations()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewStore(db)
}

func summary(id string, started time.Time) trial.Summary {
	return trial.Summary{
		ID:         id,
		StartedAt:  started,
		Rounds:     2,
		Solved:     1,
		AvgGuesses: 4.5,
		Elapsed:    1500 * time.Millisecond,
		TopK:       10,
		Words:      5,
		Games: []trial.GameResult{
			{Round: 0, Target: "peach", Guesses: []string{"grape", "peach"}, Solved: true},
			{Round: 1, Target: "melon", Guesses: []string{"grape", "apple", "mango", "peach", "lemon", "melts", "mulch"}, Degraded: true},
		},
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "r.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	for i := 0; i < 2; i++ {
		if err := Migrate(db, assets.Migrations()); err != nil {
			t.Fatalf("migrate pass %d: %v", i, err)
		}
	}
	var n int
	if err := db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 recorded migration, got %d", n)
	}
}

func TestMigrateSelfManagedScript(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "r.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	fsys := fstest.MapFS{"001_self.sql": {Data: []byte(
		"BEGIN TRANSACTION;\nCREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT);\nCOMMIT;\n")}}
	for i := 0; i < 2; i++ {
		if err := Migrate(db, fsys); err != nil {
			t.Fatalf("migrate pass %d: %v", i, err)
		}
	}

	var names []string
	rows, err := db.Query(`SELECT name FROM _migrations`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			t.Fatalf("scan: %v", err)
		}
		names = append(names, n)
	}
	_ = rows.Close()
	if diff := cmp.Diff([]string{"001_self.sql"}, names); diff != "" {
		t.Fatalf("recorded migrations mismatch (-want +got):\n%s", diff)
	}

	if _, err := db.Exec(`INSERT INTO notes(body) VALUES ('ok')`); err != nil {
		t.Fatalf("notes table missing after self-managed script: %v", err)
	}
}

func TestMigrateRejectsBrokenScript(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "r.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	fsys := fstest.MapFS{"001_bad.sql": {Data: []byte("CREATE TABLE (")}}
	if err := Migrate(db, fsys); err == nil {
		t.Fatal("expected an error for invalid SQL")
	}
	var n int
	_ = db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n)
	if n != 0 {
		t.Fatalf("failed migration must not be recorded, got %d rows", n)
	}
}

func TestInsertAndRead(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	older := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	if err := s.InsertRun(ctx, summary("run-a", older)); err != nil {
		t.Fatalf("insert a: %v", err)
	}
	if err := s.InsertRun(ctx, summary("run-b", newer)); err != nil {
		t.Fatalf("insert b: %v", err)
	}

	runs, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	want := []Run{
		{ID: "run-b", StartedAt: newer, Rounds: 2, Solved: 1, AvgGuesses: 4.5, ElapsedMs: 1500, TopK: 10, Words: 5},
		{ID: "run-a", StartedAt: older, Rounds: 2, Solved: 1, AvgGuesses: 4.5, ElapsedMs: 1500, TopK: 10, Words: 5},
	}
	if diff := cmp.Diff(want, runs); diff != "" {
		t.Fatalf("runs mismatch (-want +got):\n%s", diff)
	}
	if runs[0].SolvedRatio() != 0.5 {
		t.Fatalf("expected ratio 0.5, got %v", runs[0].SolvedRatio())
	}

	games, err := s.Games(ctx, "run-a")
	if err != nil {
		t.Fatalf("games: %v", err)
	}
	if diff := cmp.Diff(summary("run-a", older).Games, games); diff != "" {
		t.Fatalf("games mismatch (-want +got):\n%s", diff)
	}

	limited, err := s.Recent(ctx, 1)
	if err != nil || len(limited) != 1 || limited[0].ID != "run-b" {
		t.Fatalf("expected only run-b, got %+v (%v)", limited, err)
	}
}

func TestInsertRunIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	bad := summary("run-dup", time.Now().UTC())
	bad.Games = append(bad.Games, bad.Games[0]) // duplicate (run_id, round)
	if err := s.InsertRun(ctx, bad); err == nil {
		t.Fatal("expected a primary key violation")
	}
	runs, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected rollback, found %d runs", len(runs))
	}
}
