package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gosheet/internal/prompt"
	"gosheet/storage"
)

func TestRenderHistory(t *testing.T) {
	var out bytes.Buffer
	err := renderHistory(&out, []storage.Export{{
		ID:        7,
		CreatedAt: time.Date(2026, 2, 1, 9, 0, 0, 0, time.Local),
		Path:      "/tmp/work.xlsx",
		Status:    "fallback",
		Sheets:    3,
		Rows:      12,
		Elapsed:   1500 * time.Millisecond,
	}})
	if err != nil {
		t.Fatalf("render history: %v", err)
	}

	text := out.String()
	for _, want := range []string{"09:00:00", "fallback", "/tmp/work.xlsx", "1.5s"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
}

func TestConfirmClearHistory(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "yes by number", input: "1\n", want: true},
		{name: "yes by text", input: "是\n", want: true},
		{name: "no", input: "2\n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := confirmClearHistory(prompt.NewConsole(strings.NewReader(tt.input), &out), "./gosheet.db")
			if err != nil {
				t.Fatalf("confirm returned error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if out.Len() == 0 {
				t.Fatalf("expected prompt output")
			}
		})
	}
}

func TestClearHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := storage.OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := store.InsertExport(storage.Export{Path: "a.xlsx", Status: "completed"}); err != nil {
			t.Fatalf("insert export: %v", err)
		}
	}
	_ = store.Close()

	deleted, err := clearHistory(dbPath)
	if err != nil {
		t.Fatalf("clear history: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 deleted records, got %d", deleted)
	}
}
