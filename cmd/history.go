package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"gosheet/config"
	"gosheet/storage"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent workbook exports",
	Long: `List the most recent exports recorded in history.db, newest first.

Every generate run is recorded with its status (completed, fallback, cancelled, failed),
sheet and row counts, duration and error message.`,
	Example: `
  # Last 10 exports
  gosheet history

  # All exports
  gosheet history --limit 0
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(cfg.History.DB)
		if err != nil {
			return err
		}
		defer store.Close()

		exports, err := store.ListExports(historyLimit)
		if err != nil {
			return err
		}
		if len(exports) == 0 {
			fmt.Println("No exports recorded.")
			return nil
		}
		return renderHistory(os.Stdout, exports)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of exports to show (0 for all)")
}

func renderHistory(w io.Writer, exports []storage.Export) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Time", "Status", "Sheets", "Rows", "Duration", "File", "Error")
	for _, export := range exports {
		if err := table.Append([]string{
			strconv.FormatInt(export.ID, 10),
			export.CreatedAt.Format(time.DateTime),
			export.Status,
			strconv.Itoa(export.Sheets),
			strconv.Itoa(export.Rows),
			export.Elapsed.String(),
			export.Path,
			export.Error,
		}); err != nil {
			return fmt.Errorf("append export %d: %w", export.ID, err)
		}
	}
	return table.Render()
}
