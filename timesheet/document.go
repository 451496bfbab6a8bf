package timesheet

import (
	_ "embed"
	"fmt"

	"gosheet/output"
	"gosheet/table"
)

//go:embed work_table.yaml
var workTableYAML []byte

// Template returns a fresh copy of the built-in work table layout.
func Template() (*table.Config, error) {
	cfg, err := table.ParseTemplate(workTableYAML)
	if err != nil {
		return nil, fmt.Errorf("built-in work table template: %w", err)
	}
	return cfg, nil
}

// BuildDocument lays every generated sheet out with its own copy of cfg.
func BuildDocument(title string, cfg *table.Config, sheets []Sheet, opts ...output.DocumentOption) (*output.Document, error) {
	names := make([]string, len(sheets))
	for i, sheet := range sheets {
		names[i] = sheet.Name
	}
	doc, err := output.NewSharedDocument(title, cfg, names, opts...)
	if err != nil {
		return nil, err
	}
	for _, sheet := range sheets {
		if err := doc.UpdateSheetData(sheet.Name, sheet.Data); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
