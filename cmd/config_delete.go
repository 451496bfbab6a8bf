package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gosheet/internal/prompt"
)

var configDeleteYes bool

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by gosheet.

List files, generated workbooks and the export history are not touched.
Unless --yes is given, an interactive prompt asks for confirmation first.`,
	Example: `
  # Delete active config (asks for confirmation)
  gosheet config delete

  # Delete config at a custom path without asking
  gosheet --configFile ./custom-gosheet.yaml config delete --yes
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.ConfigFileUsed()
		if path == "" {
			return errors.New("no configuration file found")
		}

		deleted, err := deleteConfig(confirmerFor(configDeleteYes), path)
		if err != nil {
			return err
		}
		if !deleted {
			return errors.New("config delete aborted")
		}
		fmt.Printf("Configuration file successfully deleted: %s\n", path)
		return nil
	},
}

func deleteConfig(confirmer prompt.Confirmer, path string) (bool, error) {
	choice, err := confirmer.Confirm(prompt.Warning, "删除配置", fmt.Sprintf("Delete configuration file %q?", path), []string{prompt.Yes, prompt.No})
	if err != nil {
		return false, fmt.Errorf("confirm config delete: %w", err)
	}
	if choice != prompt.Yes {
		return false, nil
	}
	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("delete configuration file: %w", err)
	}
	return true, nil
}

func init() {
	configCmd.AddCommand(configDeleteCmd)

	configDeleteCmd.Flags().BoolVarP(&configDeleteYes, "yes", "y", false, "Delete without asking")
}
