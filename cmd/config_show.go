package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gosheet/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.`,
	Example: `
  # Show active configuration
  gosheet config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		} else {
			fmt.Println("No config file loaded, showing defaults.")
		}
		fmt.Println("Configuration:")
		printConfig(cfg)
	},
}

func printConfig(cfg *config.Config) {
	fmt.Printf("%s: %s\n", config.KeyListsDir, cfg.Lists.Dir)
	fmt.Printf("%s: %s\n", config.KeyListsService, cfg.Lists.Service)
	fmt.Printf("%s: %s\n", config.KeyListsSubAccounts, cfg.Lists.SubAccounts)
	fmt.Printf("%s: %s\n", config.KeyListsMasterAccounts, cfg.Lists.MasterAccounts)
	fmt.Printf("%s: %s\n", config.KeyListsEncoding, cfg.Lists.Encoding)
	fmt.Printf("%s: %t\n", config.KeyGenerateSheetPrefix, cfg.Generate.SheetPrefix)
	fmt.Printf("%s: %t\n", config.KeyGenerateIncludeIndexSheet, cfg.Generate.IncludeIndexSheet)
	fmt.Printf("%s: %s\n", config.KeyGenerateTitle, cfg.Generate.Title)
	fmt.Printf("%s: %s\n", config.KeyOutputDir, cfg.Output.Dir)
	fmt.Printf("%s: %s\n", config.KeyOutputFilePrefix, cfg.Output.FilePrefix)
	templateFile := cfg.Template.File
	if templateFile == "" {
		templateFile = "(built-in work table)"
	}
	fmt.Printf("%s: %s\n", config.KeyTemplateFile, templateFile)
	fmt.Printf("%s: %s\n", config.KeyHistoryDB, cfg.History.DB)
	fmt.Printf("%s: %t\n", config.KeyHistoryEnabled, cfg.History.Enabled)
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
