package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robalobadob/wordle/apps/go-solver/internal/results"
)

func writeList(t *testing.T, ws ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte(strings.Join(ws, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestBenchCSV(t *testing.T) {
	list := writeList(t, "apple", "grape", "mango", "peach", "melon")
	code, out, errOut := runCLI(t, "", "-r", "3", "-words", list)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	fields := strings.Split(strings.TrimSpace(out), ",")
	if len(fields) != 3 || fields[0] != "100.00%" {
		t.Fatalf("unexpected csv %q", out)
	}
}

func TestBenchPrint(t *testing.T) {
	list := writeList(t, "apple", "grape", "mango", "peach", "melon")
	code, out, errOut := runCLI(t, "", "-r", "2", "-p", "-words", list)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "Proportion of words guessed correctly: 100.00%") {
		t.Fatalf("missing summary in %q", out)
	}
	if !strings.Contains(out, "Average number of guesses:") {
		t.Fatalf("missing average in %q", out)
	}
}

func TestBenchPersists(t *testing.T) {
	list := writeList(t, "apple", "grape", "mango", "peach", "melon")
	dbPath := filepath.Join(t.TempDir(), "runs", "results.db")
	if code, _, errOut := runCLI(t, "", "-r", "2", "-words", list, "-db", dbPath); code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}

	db, err := results.Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	runs, err := results.NewStore(db).Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 1 || runs[0].Rounds != 2 {
		t.Fatalf("expected one persisted 2-round run, got %+v", runs)
	}
}

func TestManualFeedback(t *testing.T) {
	list := writeList(t, "apple", "grape", "mango", "peach", "melon")
	// target peach: a short line, a bad symbol, letters grape lacks, grape's real pattern, the word
	in := "xx\n++a-*\np+a--\n++a--\npeach\n"
	code, out, errOut := runCLI(t, in, "-m", "-words", list)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	for _, want := range []string{
		"Solver suggests: grape",
		"Please enter exactly 5 characters of feedback",
		"Invalid feedback format",
		"Letters in the feedback must match grape at the same position",
		"Solver suggests: peach",
		"Great! The word was guessed in 2 attempts.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestManualFeedbackEOF(t *testing.T) {
	list := writeList(t, "apple", "grape")
	if code, _, _ := runCLI(t, "", "-m", "-words", list); code != 1 {
		t.Fatalf("expected exit 1 on closed stdin, got %d", code)
	}
}

func TestPlay(t *testing.T) {
	list := writeList(t, "apple")
	code, out, errOut := runCLI(t, "ab\nzebra\napple\n", "-words", list)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	for _, want := range []string{
		"Please enter a five-letter word",
		"That word is not in the list",
		"You got it in 1 guesses",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestFlagConflicts(t *testing.T) {
	if code, _, _ := runCLI(t, "", "-r", "2", "-m"); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if code, _, _ := runCLI(t, "", "-nope"); code != 2 {
		t.Fatalf("expected exit 2 for unknown flag, got %d", code)
	}
}
