// Package config provides CLI configuration management for the chatwrapped
// command-line tool. It supports loading configuration from YAML files and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// OutputFormat defines the supported output formats for CLI results.
type OutputFormat string

const (
	// OutputFormatText is human-readable plain text output.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON is JSON-formatted output for machine processing.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML is YAML-formatted output for machine processing.
	OutputFormatYAML OutputFormat = "yaml"
)

// Default configuration values.
const (
	DefaultTimeout      = 2 * time.Minute
	DefaultOutputFormat = OutputFormatText
	DefaultConfigDir    = ".chatwrapped"
	DefaultConfigFile   = "config.yaml"

	DefaultMinMessages = 10

	DefaultNarratorEndpoint = "https://api.openai.com/v1/chat/completions"
	DefaultAPIKeyEnv        = "CHATWRAPPED_API_KEY"
)

// DefaultNarratorModels is the ordered model fallback list for remote
// narrative generation.
var DefaultNarratorModels = []string{
	"google/gemini-2.5-flash",
	"google/gemini-2.5-flash-lite",
	"openai/gpt-5-nano",
}

// AnalysisConfig holds thresholds for the analytics pipeline.
type AnalysisConfig struct {
	// MinMessages is the minimum number of parsed messages required before
	// a report is generated.
	MinMessages int `yaml:"min_messages"`
}

// NarratorConfig holds settings for the remote narrator.
type NarratorConfig struct {
	// Enabled gates the remote path entirely; when false the ai tone
	// falls straight back to templates.
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OpenAI-compatible chat completions URL.
	Endpoint string `yaml:"endpoint"`

	// APIKey is the bearer token. Prefer APIKeyEnv so the key stays out
	// of the config file.
	APIKey string `yaml:"api_key,omitempty"`

	// APIKeyEnv names the environment variable holding the bearer token.
	APIKeyEnv string `yaml:"api_key_env"`

	// Models is the ordered fallback list; each model is tried in turn.
	Models []string `yaml:"models"`
}

// ResolveAPIKey returns the bearer token: the literal APIKey when set,
// otherwise the value of the APIKeyEnv environment variable.
func (n *NarratorConfig) ResolveAPIKey() string {
	if n.APIKey != "" {
		return n.APIKey
	}
	return os.Getenv(n.APIKeyEnv)
}

// CLIConfig holds the CLI configuration settings.
type CLIConfig struct {
	// OutputFormat specifies the default output format for commands.
	OutputFormat OutputFormat `yaml:"output_format"`

	// Timeout bounds narrator requests.
	Timeout time.Duration `yaml:"timeout"`

	// Debug enables verbose debug logging.
	Debug bool `yaml:"debug,omitempty"`

	// LogJSON forces JSON log output even on a terminal.
	LogJSON bool `yaml:"log_json,omitempty"`

	// Analysis holds analytics thresholds.
	Analysis AnalysisConfig `yaml:"analysis"`

	// Narrator holds remote narrator settings.
	Narrator NarratorConfig `yaml:"narrator"`
}

// DefaultConfig returns a CLIConfig with default values. Every deterministic
// command path works with the defaults alone; only the narrator needs more.
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		OutputFormat: DefaultOutputFormat,
		Timeout:      DefaultTimeout,
		Analysis: AnalysisConfig{
			MinMessages: DefaultMinMessages,
		},
		Narrator: NarratorConfig{
			Endpoint:  DefaultNarratorEndpoint,
			APIKeyEnv: DefaultAPIKeyEnv,
			Models:    append([]string(nil), DefaultNarratorModels...),
		},
	}
}

// ConfigDir returns the configuration directory path.
// Uses $CHATWRAPPED_CONFIG_DIR if set, otherwise ~/.chatwrapped
func ConfigDir() (string, error) {
	if dir := os.Getenv("CHATWRAPPED_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir), nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFile), nil
}

// LoadConfig loads the CLI configuration from file and environment variables.
// Configuration is loaded in this order (later sources override earlier):
// 1. Default values
// 2. Config file (~/.chatwrapped/config.yaml or $CHATWRAPPED_CONFIG_DIR/config.yaml)
// 3. Environment variables (CHATWRAPPED_OUTPUT_FORMAT, CHATWRAPPED_TIMEOUT, ...)
func LoadConfig() (*CLIConfig, error) {
	cfg := DefaultConfig()

	configPath, err := ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("getting config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadConfigFrom loads the configuration from an explicit file path instead
// of the default location. Environment variables still override the file.
func LoadConfigFrom(path string) (*CLIConfig, error) {
	cfg := DefaultConfig()

	if err := loadFromFile(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config file: %w", err)
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(cfg *CLIConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	// Temp struct so the duration can be written as a string ("90s").
	type configFile struct {
		OutputFormat OutputFormat    `yaml:"output_format"`
		Timeout      string          `yaml:"timeout"`
		Debug        bool            `yaml:"debug"`
		LogJSON      bool            `yaml:"log_json"`
		Analysis     *AnalysisConfig `yaml:"analysis"`
		Narrator     *NarratorConfig `yaml:"narrator"`
	}

	var fileCfg configFile
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if fileCfg.OutputFormat != "" {
		cfg.OutputFormat = fileCfg.OutputFormat
	}
	if fileCfg.Timeout != "" {
		timeout, err := time.ParseDuration(fileCfg.Timeout)
		if err != nil {
			return fmt.Errorf("parsing timeout: %w", err)
		}
		cfg.Timeout = timeout
	}
	cfg.Debug = fileCfg.Debug
	cfg.LogJSON = fileCfg.LogJSON

	if fileCfg.Analysis != nil && fileCfg.Analysis.MinMessages > 0 {
		cfg.Analysis.MinMessages = fileCfg.Analysis.MinMessages
	}
	if fileCfg.Narrator != nil {
		cfg.Narrator.Enabled = fileCfg.Narrator.Enabled
		if fileCfg.Narrator.Endpoint != "" {
			cfg.Narrator.Endpoint = fileCfg.Narrator.Endpoint
		}
		if fileCfg.Narrator.APIKey != "" {
			cfg.Narrator.APIKey = fileCfg.Narrator.APIKey
		}
		if fileCfg.Narrator.APIKeyEnv != "" {
			cfg.Narrator.APIKeyEnv = fileCfg.Narrator.APIKeyEnv
		}
		if len(fileCfg.Narrator.Models) > 0 {
			cfg.Narrator.Models = fileCfg.Narrator.Models
		}
	}

	return nil
}

// loadFromEnv overlays environment variables onto the configuration.
func loadFromEnv(cfg *CLIConfig) {
	if v := os.Getenv("CHATWRAPPED_OUTPUT_FORMAT"); v != "" {
		cfg.OutputFormat = OutputFormat(v)
	}

	if v := os.Getenv("CHATWRAPPED_TIMEOUT"); v != "" {
		if timeout, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = timeout
		}
	}

	if v := os.Getenv("CHATWRAPPED_DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}

	if v := os.Getenv("CHATWRAPPED_LOG_JSON"); v == "true" || v == "1" {
		cfg.LogJSON = true
	}

	if v := os.Getenv("CHATWRAPPED_NARRATOR_ENABLED"); v == "true" || v == "1" {
		cfg.Narrator.Enabled = true
	}

	if v := os.Getenv("CHATWRAPPED_NARRATOR_ENDPOINT"); v != "" {
		cfg.Narrator.Endpoint = v
	}

	if v := os.Getenv("CHATWRAPPED_NARRATOR_MODELS"); v != "" {
		var models []string
		for _, m := range strings.Split(v, ",") {
			if m = strings.TrimSpace(m); m != "" {
				models = append(models, m)
			}
		}
		if len(models) > 0 {
			cfg.Narrator.Models = models
		}
	}
}

// Validate checks that the configuration is valid.
func (c *CLIConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	if !c.OutputFormat.IsValid() {
		return fmt.Errorf("invalid output_format: %q (must be text, json, or yaml)", c.OutputFormat)
	}

	if c.Analysis.MinMessages < 1 {
		return fmt.Errorf("analysis.min_messages must be at least 1")
	}

	if c.Narrator.Enabled {
		if c.Narrator.Endpoint == "" {
			return fmt.Errorf("narrator.endpoint is required when the narrator is enabled")
		}
		if len(c.Narrator.Models) == 0 {
			return fmt.Errorf("narrator.models must list at least one model")
		}
	}

	return nil
}

// IsValid checks if the output format is valid.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// SaveConfig saves the configuration to the config file.
func SaveConfig(cfg *CLIConfig) error {
	configDir, err := ConfigDir()
	if err != nil {
		return fmt.Errorf("getting config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(configDir, DefaultConfigFile)

	// Mirror of the load-side temp struct: duration as string.
	type configFile struct {
		OutputFormat OutputFormat   `yaml:"output_format"`
		Timeout      string         `yaml:"timeout"`
		Debug        bool           `yaml:"debug,omitempty"`
		LogJSON      bool           `yaml:"log_json,omitempty"`
		Analysis     AnalysisConfig `yaml:"analysis"`
		Narrator     NarratorConfig `yaml:"narrator"`
	}

	fileCfg := configFile{
		OutputFormat: cfg.OutputFormat,
		Timeout:      cfg.Timeout.String(),
		Debug:        cfg.Debug,
		LogJSON:      cfg.LogJSON,
		Analysis:     cfg.Analysis,
		Narrator:     cfg.Narrator,
	}

	data, err := yaml.Marshal(&fileCfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}
