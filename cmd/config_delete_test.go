package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gosheet/internal/prompt"
)

func TestDeleteConfig(t *testing.T) {
	tests := []struct {
		name    string
		choice  string
		deleted bool
	}{
		{name: "confirmed", choice: prompt.Yes, deleted: true},
		{name: "declined", choice: prompt.No, deleted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "gosheet.yaml")
			if err := os.WriteFile(path, []byte("lists:\n"), 0o644); err != nil {
				t.Fatal(err)
			}

			got, err := deleteConfig(prompt.Fixed{Choice: tt.choice}, path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.deleted {
				t.Fatalf("expected deleted=%v, got %v", tt.deleted, got)
			}
			_, statErr := os.Stat(path)
			if exists := statErr == nil; exists == tt.deleted {
				t.Fatalf("file existence %v does not match deleted=%v", exists, tt.deleted)
			}
		})
	}
}

func TestDeleteConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := deleteConfig(prompt.Fixed{Choice: prompt.Yes}, path)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
