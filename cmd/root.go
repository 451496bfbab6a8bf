/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gosheet/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gosheet",
	Short: "Generate multi-sheet authorisation workbooks from resource and account lists.",
	Long: `
**********************************************
*                 GO SHEET                   *
**********************************************

This CLI expands resource, sub-account and master-account lists over a date range
into one sheet per day and shift, renders them into a styled workbook and keeps a
local history of every export.

Supported list formats:
- Text: one entry per line, "pool ip" separated by tab, space, comma, colon, pipe or semicolon
- CSV: .csv
- Excel: .xlsx, .xlsm
`,
	Example: `
  # Create configuration file and empty list files
  gosheet config create
  gosheet config lists

  # Generate one week of sheets into the configured output directory
  gosheet generate --from 2026-02-01 --to 2026-02-07

  # Generate with an index sheet into an explicit file, overwriting without asking
  gosheet generate --from 2026-02-01 --to 2026-02-03 --index -o ./work.xlsx --yes

  # Preview sheet names and row counts, then one sheet
  gosheet preview --from 2026-02-01 --to 2026-02-01
  gosheet preview --from 2026-02-01 --to 2026-02-01 --sheet 2月1日昼

  # Show recent exports
  gosheet history --limit 20
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.gosheet.yaml, then ./.gosheet.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func setupLogging(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().
		Timestamp().
		Logger()
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".gosheet" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".gosheet")
	}

	viper.SetEnvPrefix("gosheet")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults. Create one with: gosheet config create")
	}
}
