package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gosheet/config"
	"gosheet/importer"
	"gosheet/table"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the active config in an editor.",
	Long: `Open the active gosheet config file in your editor.

The editor is $VISUAL, then $EDITOR, then vi. A missing config file is created
from the example first. When the editor exits the file is checked again: the
YAML must validate, template.file must be a loadable table template, and list
files that do not exist yet are reported.`,
	Example: `
  # Edit active config
  gosheet config edit

  # Edit with a specific editor
  EDITOR="code --wait" gosheet config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		created, err := writeExampleConfig(path)
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("No config file found. Created example config at: %s\n", path)
		}

		editor, err := editorCommand(editorFor(os.Getenv("VISUAL"), os.Getenv("EDITOR")), path)
		if err != nil {
			return err
		}
		editor.Stdin = os.Stdin
		editor.Stdout = os.Stdout
		editor.Stderr = os.Stderr
		log.Debug().Strs("args", editor.Args).Msg("starting editor")
		if err := editor.Run(); err != nil {
			return fmt.Errorf("run editor: %w", err)
		}

		check, err := checkConfigFile(path)
		if err != nil {
			return err
		}
		for _, name := range check.MissingLists {
			fmt.Printf("List file not found yet: %s (run \"gosheet config lists\")\n", filepath.Join(check.Config.Lists.Dir, name))
		}
		fmt.Printf("Configuration saved and validated: %s\n", path)
		return nil
	},
}

// configFilePath prefers the --configFile flag, then the file viper loaded,
// then $HOME/.gosheet.yaml.
func configFilePath(flagValue, used string) (string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return flagValue, nil
	}
	if strings.TrimSpace(used) != "" {
		return used, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".gosheet.yaml"), nil
}

// writeExampleConfig writes the example config unless path already exists.
func writeExampleConfig(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config file %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.ExampleYAML()), 0o600); err != nil {
		return false, fmt.Errorf("write example config %s: %w", path, err)
	}
	return true, nil
}

type configCheck struct {
	Config       *config.Config
	MissingLists []string
}

// checkConfigFile validates the file at path and loads its table template.
// Missing list files are not an error; generate treats them as empty.
func checkConfigFile(path string) (*configCheck, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := config.ValidateYAMLContent(content)
	if err != nil {
		return nil, fmt.Errorf("config validation failed in %s: %w", path, err)
	}
	if cfg.Template.File != "" {
		if _, err := table.LoadTemplate(cfg.Template.File); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	check := &configCheck{Config: cfg}
	names := listNames(cfg)
	for _, name := range []string{names.Resources, names.SubAccounts, names.MasterAccounts} {
		if _, ok := importer.Resolve(cfg.Lists.Dir, name); !ok {
			check.MissingLists = append(check.MissingLists, name)
		}
	}
	return check, nil
}

func editorFor(visual, editor string) string {
	if strings.TrimSpace(visual) != "" {
		return visual
	}
	if strings.TrimSpace(editor) != "" {
		return editor
	}
	return "vi"
}

func editorCommand(editor, path string) (*exec.Cmd, error) {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return nil, errors.New("editor command is empty")
	}
	return exec.Command(fields[0], append(fields[1:], path)...), nil
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
