package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gosheet/config"
	"gosheet/internal/prompt"
	"gosheet/storage"
)

var historyClearYes bool

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded exports",
	Long: `Destructive history cleanup command.

Deletes every row from the export history. Workbook files on disk are not touched.
Unless --yes is given, an interactive prompt asks for confirmation first.`,
	Example: `
  # Clear history (asks for confirmation)
  gosheet history clear

  # Clear without asking
  gosheet history clear --yes
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		confirmed, err := confirmClearHistory(confirmerFor(historyClearYes), cfg.History.DB)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("history clear aborted")
		}

		deleted, err := clearHistory(cfg.History.DB)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d export records from: %s\n", deleted, cfg.History.DB)
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)

	historyClearCmd.Flags().BoolVarP(&historyClearYes, "yes", "y", false, "Clear without asking")
}

func confirmClearHistory(confirmer prompt.Confirmer, dbPath string) (bool, error) {
	choice, err := confirmer.Confirm(prompt.Warning, "清空历史记录", fmt.Sprintf("Delete all export records in %q?", dbPath), []string{prompt.Yes, prompt.No})
	if err != nil {
		return false, fmt.Errorf("confirm history clear: %w", err)
	}
	return choice == prompt.Yes, nil
}

func clearHistory(dbPath string) (int64, error) {
	store, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	return store.DeleteAllExports()
}
