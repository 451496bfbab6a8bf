package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyListsDir            = "lists.dir"
	KeyListsService        = "lists.service"
	KeyListsSubAccounts    = "lists.sub_accounts"
	KeyListsMasterAccounts = "lists.master_accounts"
	KeyListsEncoding       = "lists.encoding"

	KeyGenerateSheetPrefix       = "generate.sheet_prefix"
	KeyGenerateIncludeIndexSheet = "generate.include_index_sheet"
	KeyGenerateTitle             = "generate.title"

	KeyOutputDir        = "output.dir"
	KeyOutputFilePrefix = "output.file_prefix"

	KeyTemplateFile = "template.file"

	KeyHistoryDB      = "history.db"
	KeyHistoryEnabled = "history.enabled"
)

type Config struct {
	Lists    ListsConfig    `mapstructure:"lists" validate:"required"`
	Generate GenerateConfig `mapstructure:"generate"`
	Output   OutputConfig   `mapstructure:"output" validate:"required"`
	Template TemplateConfig `mapstructure:"template"`
	History  HistoryConfig  `mapstructure:"history"`
}

type ListsConfig struct {
	Dir            string `mapstructure:"dir" validate:"required"`
	Service        string `mapstructure:"service" validate:"required,excludesall=/\\"`
	SubAccounts    string `mapstructure:"sub_accounts" validate:"required,excludesall=/\\"`
	MasterAccounts string `mapstructure:"master_accounts" validate:"required,excludesall=/\\"`
	Encoding       string `mapstructure:"encoding" validate:"oneof=auto utf-8 utf-16 gbk"`
}

type GenerateConfig struct {
	SheetPrefix       bool   `mapstructure:"sheet_prefix"`
	IncludeIndexSheet bool   `mapstructure:"include_index_sheet"`
	Title             string `mapstructure:"title"`
}

type OutputConfig struct {
	Dir        string `mapstructure:"dir" validate:"required"`
	FilePrefix string `mapstructure:"file_prefix" validate:"required"`
}

type TemplateConfig struct {
	File string `mapstructure:"file" validate:"omitempty,file"`
}

type HistoryConfig struct {
	DB      string `mapstructure:"db" validate:"required_if=Enabled true"`
	Enabled bool   `mapstructure:"enabled"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# gosheet configuration
lists:
  dir: "./config"
  service: "service"
  sub_accounts: "from_account"
  master_accounts: "master_account"
  encoding: "auto"

generate:
  sheet_prefix: true
  include_index_sheet: false
  title: ""

output:
  dir: '` + DefaultOutputDir() + `'
  file_prefix: "数据表"

template:
  file: ""

history:
  db: "./gosheet.db"
  enabled: true
`
}

// DefaultOutputDir is ~/Downloads when it exists, else the working directory.
func DefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	downloads := filepath.Join(home, "Downloads")
	if info, err := os.Stat(downloads); err == nil && info.IsDir() {
		return downloads
	}
	return "."
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Lists.Encoding = strings.ToLower(strings.TrimSpace(cfg.Lists.Encoding))
	cfg.Lists.Dir = ExpandHome(cfg.Lists.Dir)
	cfg.Output.Dir = ExpandHome(cfg.Output.Dir)
	cfg.Template.File = ExpandHome(cfg.Template.File)
	cfg.History.DB = ExpandHome(cfg.History.DB)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateListNames(cfg.Lists); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyListsDir, "./config")
	v.SetDefault(KeyListsService, "service")
	v.SetDefault(KeyListsSubAccounts, "from_account")
	v.SetDefault(KeyListsMasterAccounts, "master_account")
	v.SetDefault(KeyListsEncoding, "auto")
	v.SetDefault(KeyGenerateSheetPrefix, true)
	v.SetDefault(KeyGenerateIncludeIndexSheet, false)
	v.SetDefault(KeyGenerateTitle, "")
	v.SetDefault(KeyOutputDir, DefaultOutputDir())
	v.SetDefault(KeyOutputFilePrefix, "数据表")
	v.SetDefault(KeyTemplateFile, "")
	v.SetDefault(KeyHistoryDB, "./gosheet.db")
	v.SetDefault(KeyHistoryEnabled, true)
}

func validateListNames(lists ListsConfig) error {
	seen := make(map[string]string, 3)
	for key, name := range map[string]string{
		KeyListsService:        lists.Service,
		KeyListsSubAccounts:    lists.SubAccounts,
		KeyListsMasterAccounts: lists.MasterAccounts,
	} {
		normalized := strings.ToLower(strings.TrimSpace(name))
		if other, exists := seen[normalized]; exists {
			first, second := other, key
			if second < first {
				first, second = second, first
			}
			return fmt.Errorf("validation failed: %s and %s name the same list file %q", first, second, name)
		}
		seen[normalized] = key
	}
	return nil
}
