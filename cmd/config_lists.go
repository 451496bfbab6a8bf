package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gosheet/config"
	"gosheet/importer"
)

var configListsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Create empty resource and account list files.",
	Long: `Create lists.dir and an empty file for every list that does not exist yet.

Existing list files, including .txt, .csv and .xlsx variants, are left untouched.`,
	Example: `
  # Create service, from_account and master_account in ./config
  gosheet config lists
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		created, err := importer.EnsureFiles(cfg.Lists.Dir, listNames(cfg))
		if err != nil {
			return err
		}
		if len(created) == 0 {
			fmt.Printf("All list files already exist in: %s\n", cfg.Lists.Dir)
			return nil
		}
		for _, path := range created {
			fmt.Printf("Created list file: %s\n", path)
		}
		return nil
	},
}

func listNames(cfg *config.Config) importer.Names {
	return importer.Names{
		Resources:      cfg.Lists.Service,
		SubAccounts:    cfg.Lists.SubAccounts,
		MasterAccounts: cfg.Lists.MasterAccounts,
	}
}

func init() {
	configCmd.AddCommand(configListsCmd)
}
