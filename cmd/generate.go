package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"gosheet/config"
	"gosheet/internal/prompt"
	"gosheet/output"
	"gosheet/progress"
	"gosheet/storage"
)

var (
	generateFrom     string
	generateTo       string
	generateOutput   string
	generateTitle    string
	generateIndex    bool
	generateNoPrefix bool
	generateYes      bool
)

var (
	generatePromptInput  io.Reader = os.Stdin
	generatePromptOutput io.Writer = os.Stdout
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the authorisation workbook for a date range",
	Long: `Expand the configured resource, sub-account and master-account lists over a date range
and write one sheet per day and shift (晨 00-08, 昼 08-16, 夜 16-24).

Each sheet uses the built-in work table layout unless template.file points to a YAML
table template. The workbook is written atomically: a cancelled or failed render never
leaves a partial file behind. If the styled render fails, the data is written once more
without styling.

Press Ctrl+C during rendering to cancel. Every run is recorded in the export history
unless history.enabled is false.

Output format follows the --output extension:
- .xlsx: styled workbook
- .csv: raw rows of all sheets with a leading "sheet" column`,
	Example: `
  # One week into the configured output directory
  gosheet generate --from 2026-02-01 --to 2026-02-07

  # Single day with an index sheet, explicit file, overwrite without asking
  gosheet generate --from 2026-02-01 --index -o ./work.xlsx --yes

  # Sheet names without the month prefix (1日晨 instead of 2月1日晨)
  gosheet generate --from 2026-02-01 --to 2026-02-03 --no-prefix

  # Raw CSV export
  gosheet generate --from 2026-02-01 -o ./work.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		doc, err := buildWorkbook(cfg, workbookOptions{
			From:     generateFrom,
			To:       generateTo,
			NoPrefix: generateNoPrefix,
			Title:    generateTitle,
		})
		if err != nil {
			return err
		}

		path := resolveOutputPath(cfg, generateOutput, time.Now())
		confirmed, err := confirmOverwrite(confirmerFor(generateYes), path)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("generate aborted: %s already exists", path)
		}

		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
		defer stop()

		result, renderErr := writeWorkbook(ctx, doc, path, output.RenderOptions{
			IncludeIndexSheet: cfg.Generate.IncludeIndexSheet || generateIndex,
			Progress:          consoleProgress(ctx, log.Logger),
		})
		recordHistory(cfg, doc.Title(), path, result, renderErr)

		printResult(result)
		return renderErr
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateFrom, "from", "", "First day (YYYY-MM-DD, YYYY/MM/DD or YYYYMMDD)")
	generateCmd.Flags().StringVar(&generateTo, "to", "", "Last day, inclusive (default: --from)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file path (default: output.dir/output.file_prefix_TIMESTAMP.xlsx)")
	generateCmd.Flags().StringVar(&generateTitle, "title", "", "Workbook title used by the index sheet")
	generateCmd.Flags().BoolVar(&generateIndex, "index", false, "Append an index sheet linking every sheet")
	generateCmd.Flags().BoolVar(&generateNoPrefix, "no-prefix", false, "Name sheets without the month prefix")
	generateCmd.Flags().BoolVarP(&generateYes, "yes", "y", false, "Overwrite an existing output file without asking")

	_ = generateCmd.MarkFlagRequired("from")
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

func confirmerFor(yes bool) prompt.Confirmer {
	if yes {
		return prompt.Fixed{Choice: prompt.Yes}
	}
	return prompt.NewConsole(generatePromptInput, generatePromptOutput)
}

// confirmOverwrite returns true when path does not exist or the user agrees
// to replace it.
func confirmOverwrite(confirmer prompt.Confirmer, path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat output file: %w", err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("output path is a directory: %s", path)
	}

	choice, err := confirmer.Confirm(prompt.Question, "文件已存在", fmt.Sprintf("%s already exists. Overwrite?", path), []string{prompt.Yes, prompt.No})
	if err != nil {
		return false, fmt.Errorf("confirm overwrite: %w", err)
	}
	return choice == prompt.Yes, nil
}

// writeWorkbook renders xlsx output and exports csv output raw.
func writeWorkbook(ctx context.Context, doc *output.Document, path string, opts output.RenderOptions) (*output.Result, error) {
	if output.FormatFromPath(path) != "csv" {
		return doc.Render(ctx, path, opts)
	}

	started := time.Now()
	meta := doc.Metadata()
	result := &output.Result{Sheets: meta.SheetCount, Rows: meta.TotalRows}
	if err := doc.Export(path, "csv"); err != nil {
		result.Status = output.StatusFailed
		result.Cause = err
		result.Elapsed = time.Since(started)
		return result, err
	}
	result.Status = output.StatusCompleted
	result.Path = path
	result.Elapsed = time.Since(started)
	return result, nil
}

// consoleProgress logs progress and stops the render once ctx is done.
func consoleProgress(ctx context.Context, logger zerolog.Logger) progress.Callback {
	report := progress.ConsoleCallback(logger)
	return func(percent int, status string) bool {
		if ctx.Err() != nil {
			return false
		}
		return report(percent, status)
	}
}

func recordHistory(cfg *config.Config, title, path string, result *output.Result, renderErr error) {
	if !cfg.History.Enabled || result == nil {
		return
	}

	store, err := storage.OpenSQLite(cfg.History.DB)
	if err != nil {
		log.Warn().Err(err).Str("db", cfg.History.DB).Msg("export history unavailable")
		return
	}
	defer store.Close()

	if _, err := store.InsertExport(historyEntry(title, path, result, renderErr)); err != nil {
		log.Warn().Err(err).Msg("recording export history failed")
	}
}

func historyEntry(title, path string, result *output.Result, renderErr error) storage.Export {
	entry := storage.Export{
		CreatedAt: time.Now(),
		Path:      path,
		Title:     title,
		Status:    string(result.Status),
		Sheets:    result.Sheets,
		Rows:      result.Rows,
		Elapsed:   result.Elapsed,
	}
	switch {
	case renderErr != nil:
		entry.Error = renderErr.Error()
	case result.Cause != nil:
		entry.Error = result.Cause.Error()
	}
	return entry
}

func printResult(result *output.Result) {
	if result == nil {
		return
	}
	switch result.Status {
	case output.StatusCompleted:
		fmt.Printf("Export completed. Sheets: %d, Rows: %d, Time: %s, File: %s\n", result.Sheets, result.Rows, result.Elapsed.Round(time.Millisecond), result.Path)
	case output.StatusFallback:
		fmt.Printf("Export completed without styling. Sheets: %d, Rows: %d, File: %s\n", result.Sheets, result.Rows, result.Path)
		if result.Cause != nil {
			fmt.Printf("Styled render failed: %v\n", result.Cause)
		}
	case output.StatusCancelled:
		fmt.Println("Export cancelled. No file was written.")
	case output.StatusFailed:
		fmt.Println("Export failed. No file was written.")
	}
}
