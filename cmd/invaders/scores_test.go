package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	return store
}

func TestPrintResults(t *testing.T) {
	store := openStore(t)
	defer store.Close()

	for _, r := range []storage.Result{
		{Outcome: storage.OutcomeWon, Destroyed: 72, Duration: 80 * time.Second, Backend: "ansi", Player: "alice"},
		{Outcome: storage.OutcomeLost, Destroyed: 9, Duration: 20 * time.Second, Backend: "tcell", Player: "bob"},
	} {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() error: %v", err)
		}
	}

	tests := []struct {
		name   string
		recent bool
		want   []string
	}{
		{"best", false, []string{"Best Games", "alice", "bob", "Games: 2  Won: 1  Lost: 1", "Fastest win: 1:20.0"}},
		{"recent", true, []string{"Recent Games", "alice", "bob"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := printResults(&out, store, tc.recent, 10); err != nil {
				t.Fatalf("printResults() error: %v", err)
			}
			for _, w := range tc.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out.String())
				}
			}
		})
	}
}

func TestPrintResultsEmpty(t *testing.T) {
	store := openStore(t)
	defer store.Close()

	var out bytes.Buffer
	if err := printResults(&out, store, false, 10); err != nil {
		t.Fatalf("printResults() error: %v", err)
	}
	if !strings.Contains(out.String(), "No games recorded yet.") {
		t.Errorf("expected the empty message, got:\n%s", out.String())
	}
}

func TestPrintResultsStoreError(t *testing.T) {
	store := openStore(t)
	store.Close()

	var out bytes.Buffer
	err := printResults(&out, store, false, 10)
	if err == nil {
		t.Fatal("expected an error from a closed store")
	}
	if !strings.Contains(err.Error(), "retrieving results") {
		t.Errorf("error = %v, expected it to mention retrieving results", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed on error, got %q", out.String())
	}
}
