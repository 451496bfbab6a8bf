package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"gosheet/config"
	"gosheet/importer"
	"gosheet/internal/timeutil"
	"gosheet/output"
	"gosheet/table"
	"gosheet/timesheet"
)

// workbookOptions are the flag values shared by generate and preview.
type workbookOptions struct {
	From     string
	To       string
	NoPrefix bool
	Title    string
}

func buildRequest(cfg *config.Config, opts workbookOptions) (timesheet.Request, error) {
	start, err := timeutil.ParseDate(opts.From)
	if err != nil {
		return timesheet.Request{}, fmt.Errorf("invalid --from value: %w", err)
	}
	end := start
	if strings.TrimSpace(opts.To) != "" {
		end, err = timeutil.ParseDate(opts.To)
		if err != nil {
			return timesheet.Request{}, fmt.Errorf("invalid --to value: %w", err)
		}
	}

	lists, err := importer.Load(cfg.Lists.Dir, listNames(cfg), cfg.Lists.Encoding)
	if err != nil {
		return timesheet.Request{}, err
	}
	if len(lists.Resources) == 0 {
		return timesheet.Request{}, fmt.Errorf(
			"no resources configured in %s; create list files with \"gosheet config lists\" and add one \"pool ip\" per line",
			filepath.Join(cfg.Lists.Dir, cfg.Lists.Service),
		)
	}
	log.Debug().
		Int("resources", len(lists.Resources)).
		Int("sub_accounts", len(lists.SubAccounts)).
		Int("master_accounts", len(lists.MasterAccounts)).
		Str("dir", cfg.Lists.Dir).
		Msg("lists loaded")

	return timesheet.Request{
		Start:          start,
		End:            end,
		Resources:      lists.Resources,
		SubAccounts:    lists.SubAccounts,
		MasterAccounts: lists.MasterAccounts,
		MonthPrefix:    cfg.Generate.SheetPrefix && !opts.NoPrefix,
	}, nil
}

func loadTableTemplate(cfg *config.Config) (*table.Config, error) {
	if strings.TrimSpace(cfg.Template.File) == "" {
		return timesheet.Template()
	}
	return table.LoadTemplate(cfg.Template.File)
}

func buildWorkbook(cfg *config.Config, opts workbookOptions) (*output.Document, error) {
	req, err := buildRequest(cfg, opts)
	if err != nil {
		return nil, err
	}

	sheets, err := timesheet.NewGenerator(log.Logger).Generate(req)
	if err != nil {
		return nil, err
	}

	layout, err := loadTableTemplate(cfg)
	if err != nil {
		return nil, err
	}

	title := firstNonEmpty(opts.Title, cfg.Generate.Title, cfg.Output.FilePrefix)
	return timesheet.BuildDocument(title, layout, sheets, output.WithLogger(log.Logger))
}

// resolveOutputPath returns the explicit path or a timestamped name in the
// output directory. Paths that are neither csv nor xlsx get ".xlsx".
func resolveOutputPath(cfg *config.Config, explicit string, now time.Time) string {
	path := strings.TrimSpace(explicit)
	if path == "" {
		name := fmt.Sprintf("%s_%s.xlsx", cfg.Output.FilePrefix, timeutil.Stamp(now))
		return filepath.Join(cfg.Output.Dir, name)
	}
	switch output.FormatFromPath(path) {
	case "csv", "xlsx":
		return path
	default:
		return path + ".xlsx"
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
