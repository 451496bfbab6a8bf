package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateConfigWritesExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "create-template.yaml")

	result, err := createConfig(path, false)
	if err != nil {
		t.Fatalf("unexpected error creating config: %v", err)
	}
	if !result.Created || len(result.Lists) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, "# gosheet configuration") {
		t.Fatalf("expected example header in config file, got:\n%s", text)
	}
	if !strings.Contains(text, "lists:") || !strings.Contains(text, "service: \"service\"") {
		t.Fatalf("expected list file example in config file, got:\n%s", text)
	}
}

func TestCreateConfigKeepsExistingFileAndCreatesLists(t *testing.T) {
	dir := t.TempDir()
	listDir := filepath.Join(dir, "lists")
	path := filepath.Join(dir, "existing.yaml")
	original := "lists:\n  dir: \"" + filepath.ToSlash(listDir) + "\"\n  service: \"pools\"\nhistory:\n  enabled: false\n"
	if err := os.WriteFile(path, []byte(original), 0o644); err != nil {
		t.Fatalf("failed writing initial config: %v", err)
	}

	result, err := createConfig(path, true)
	if err != nil {
		t.Fatalf("unexpected error creating config: %v", err)
	}
	if result.Created {
		t.Fatalf("did not expect existing config to be recreated")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed reading existing config after create: %v", err)
	}
	if string(content) != original {
		t.Fatalf("expected existing config to remain unchanged")
	}

	if len(result.Lists) != 3 {
		t.Fatalf("expected 3 list files, got %v", result.Lists)
	}
	for _, name := range []string{"pools", "from_account", "master_account"} {
		if _, err := os.Stat(filepath.Join(listDir, name)); err != nil {
			t.Fatalf("expected list file %s: %v", name, err)
		}
	}
}

func TestCreateConfigRejectsInvalidExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("lists:\n  encoding: latin1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := createConfig(path, true); err == nil {
		t.Fatalf("expected validation error for unsupported encoding")
	}
}
