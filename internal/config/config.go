package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "amfcli/internal/errors"
)

// Default values applied when neither environment nor config file set a
// field. The input path default matches the workbook name the tool is
// usually pointed at.
const (
	DefaultInputPath = "AMF_US-Ne1_BIF_20230922.xlsx"
	DefaultSheet     = "AMF-BIF"
	DefaultOutputDir = "."
	DefaultWorkers   = 1
)

// Config represents the complete application configuration.
// Precedence: environment variables (AMF_ prefix) over config file over
// built-in defaults. CLI flags are applied on top by the caller.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig locates the workbook to transform.
//
// Env var names derive from the AMF prefix and the field path
// (AMF_INPUT_PATH, ...); an explicit envconfig tag would register an
// unprefixed alternate key and e.g. read the system $PATH.
type InputConfig struct {
	Path  string `yaml:"path" validate:"required"`
	Sheet string `yaml:"sheet" validate:"required"`
}

// OutputConfig controls where and how group CSVs are written.
type OutputConfig struct {
	Dir     string `yaml:"dir" validate:"required"`
	Workers int    `yaml:"workers" validate:"min=1,max=64"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" validate:"oneof=json text"`
	Output   string `yaml:"output" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" split_words:"true"`
}

// Load loads configuration from environment variables and, when present,
// a config.yaml in the working directory.
func Load() (*Config, error) {
	return LoadFrom(findConfigFile())
}

// LoadFrom loads configuration layered from the given YAML file. An empty
// path skips the file layer.
func LoadFrom(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("AMF", &cfg); err != nil {
		return nil, apperrors.ConfigError(fmt.Errorf("failed to read environment: %w", err))
	}

	if configFile != "" {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, apperrors.ConfigError(fmt.Errorf("failed to load %s: %w", configFile, err))
		}
		cfg.merge(fileCfg)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, apperrors.ConfigError(err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// merge fills fields the environment left unset from the file config.
func (c *Config) merge(file *Config) {
	if c.Input.Path == "" {
		c.Input.Path = file.Input.Path
	}
	if c.Input.Sheet == "" {
		c.Input.Sheet = file.Input.Sheet
	}
	if c.Output.Dir == "" {
		c.Output.Dir = file.Output.Dir
	}
	if c.Output.Workers == 0 {
		c.Output.Workers = file.Output.Workers
	}
	if c.Logging.Level == "" {
		c.Logging.Level = file.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = file.Logging.Format
	}
	if c.Logging.Output == "" {
		c.Logging.Output = file.Logging.Output
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = file.Logging.FilePath
	}
}

// applyDefaults fills whatever neither environment nor file provided.
func (c *Config) applyDefaults() {
	if c.Input.Path == "" {
		c.Input.Path = DefaultInputPath
	}
	if c.Input.Sheet == "" {
		c.Input.Sheet = DefaultSheet
	}
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
	if c.Output.Workers == 0 {
		c.Output.Workers = DefaultWorkers
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Logging.Output != "stdout" && c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/processor.log"
	}
}

// validate checks the assembled configuration against the struct tags.
func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, ve := range verrs {
				return fmt.Errorf("field %s failed %q validation (value %v)",
					ve.Namespace(), ve.Tag(), ve.Value())
			}
		}
		return err
	}
	return nil
}

// findConfigFile returns the path to the config file, checking the common
// locations relative to the working directory.
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}
