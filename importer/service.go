package importer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Names are the base names of the three list files inside a list directory.
type Names struct {
	Resources      string
	SubAccounts    string
	MasterAccounts string
}

func DefaultNames() Names {
	return Names{Resources: "service", SubAccounts: "from_account", MasterAccounts: "master_account"}
}

func (n Names) all() []string {
	return []string{n.Resources, n.SubAccounts, n.MasterAccounts}
}

type Lists struct {
	Resources      []string
	SubAccounts    []string
	MasterAccounts []string
	// Files maps each list name to the file it was read from; missing
	// lists are absent.
	Files map[string]string
}

var listExtensions = []string{"", ".txt", ".csv", ".xlsx", ".xlsm"}

// Resolve returns the first existing file for a list name, trying the bare
// name before the known extensions.
func Resolve(dir, name string) (string, bool) {
	for _, ext := range listExtensions {
		candidate := filepath.Join(dir, name+ext)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// Load reads all three lists. A missing list file yields an empty list.
func Load(dir string, names Names, encoding string) (*Lists, error) {
	lists := &Lists{Files: make(map[string]string, 3)}

	var err error
	if lists.Resources, err = loadList(dir, names.Resources, encoding, resourceFromFields, lists.Files); err != nil {
		return nil, err
	}
	if lists.SubAccounts, err = loadList(dir, names.SubAccounts, encoding, accountFromFields, lists.Files); err != nil {
		return nil, err
	}
	if lists.MasterAccounts, err = loadList(dir, names.MasterAccounts, encoding, accountFromFields, lists.Files); err != nil {
		return nil, err
	}
	return lists, nil
}

func loadList(dir, name, encoding string, entry func([]string) string, files map[string]string) ([]string, error) {
	path, ok := Resolve(dir, name)
	if !ok {
		return []string{}, nil
	}
	files[name] = path

	reader, err := ReaderForPath(path, encoding)
	if err != nil {
		return nil, err
	}
	lines, err := reader.Read(path)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(lines))
	for _, line := range lines {
		if value := entry(line.Fields); value != "" {
			values = append(values, value)
		}
	}
	return values, nil
}

// EnsureFiles creates dir and an empty file for every list that has no file
// yet. It returns the paths it created.
func EnsureFiles(dir string, names Names) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create list directory %s: %w", dir, err)
	}

	created := make([]string, 0, 3)
	for _, name := range names.all() {
		if _, ok := Resolve(dir, name); ok {
			continue
		}
		path := filepath.Join(dir, name)
		file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("create list file %s: %w", path, err)
		}
		if err := file.Close(); err != nil {
			return created, fmt.Errorf("close list file %s: %w", path, err)
		}
		created = append(created, path)
	}
	return created, nil
}
