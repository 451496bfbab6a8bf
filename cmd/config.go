package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage gosheet configuration file values.",
	Long: `Create, edit, display, and delete the gosheet configuration file.

The configuration stores application-wide values:
- lists.dir / lists.service / lists.sub_accounts / lists.master_accounts / lists.encoding
- generate.sheet_prefix / generate.include_index_sheet / generate.title
- output.dir / output.file_prefix
- template.file
- history.db / history.enabled`,
	Example: `
  # Create default config in $HOME/.gosheet.yaml
  gosheet config create

  # Show active config and source file
  gosheet config show

  # Open active config in editor (creates example if missing)
  gosheet config edit

  # Create empty list files in lists.dir
  gosheet config lists

  # Delete active config file
  gosheet config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
