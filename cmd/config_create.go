package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gosheet/importer"
)

var configCreateLists bool

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	Long: `Write the example configuration used by "config edit" unless a config file
already exists at the target path.

With --lists the empty resource and account list files named by the
configuration are created as well, like "config lists".`,
	Example: `
  # Create default config at $HOME/.gosheet.yaml
  gosheet config create

  # Create config and list files in one step
  gosheet --configFile ./gosheet.yaml config create --lists
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		result, err := createConfig(path, configCreateLists)
		if err != nil {
			return err
		}
		if result.Created {
			fmt.Printf("New config file created at: %s\n", path)
		} else {
			fmt.Printf("Config file already exists at: %s\n", path)
		}
		for _, list := range result.Lists {
			fmt.Printf("Created list file: %s\n", list)
		}
		return nil
	},
}

type createResult struct {
	Created bool
	Lists   []string
}

// createConfig writes the example config if needed and, when withLists is
// set, creates the list files of whatever config ends up at path.
func createConfig(path string, withLists bool) (*createResult, error) {
	created, err := writeExampleConfig(path)
	if err != nil {
		return nil, err
	}
	result := &createResult{Created: created}
	if !withLists {
		return result, nil
	}

	check, err := checkConfigFile(path)
	if err != nil {
		return nil, err
	}
	result.Lists, err = importer.EnsureFiles(check.Config.Lists.Dir, listNames(check.Config))
	if err != nil {
		return nil, err
	}
	return result, nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)

	configCreateCmd.Flags().BoolVar(&configCreateLists, "lists", false, "Also create empty list files in lists.dir")
}
