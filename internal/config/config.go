// Package config handles configuration loading and management for triage.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Suggestion modes.
const (
	SuggestLocal     = "local"
	SuggestAnthropic = "anthropic"
	SuggestBedrock   = "bedrock"
)

// Config holds all configuration for triage.
type Config struct {
	User      UserConfig      `mapstructure:"user"`
	Tasks     TasksConfig     `mapstructure:"tasks"`
	Suggest   SuggestConfig   `mapstructure:"suggest"`
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	AWS       AWSConfig       `mapstructure:"aws"`
	Prompt    PromptConfig    `mapstructure:"prompt"`
	Log       LogConfig       `mapstructure:"log"`
}

// UserConfig identifies who is triaging.
type UserConfig struct {
	Name string `mapstructure:"name"`
}

// TasksConfig selects where tasks are loaded from.
type TasksConfig struct {
	// Source is sample, file or sqlite.
	Source string `mapstructure:"source"`
	Path   string `mapstructure:"path"`
	Table  string `mapstructure:"table"`
	Column string `mapstructure:"column"`
	Filter string `mapstructure:"filter"`
	// Owner is named in the "added to your bucket" banner.
	Owner string `mapstructure:"owner"`
}

// SuggestConfig configures the priority suggestion call.
type SuggestConfig struct {
	// Mode is local, anthropic or bedrock.
	Mode    string        `mapstructure:"mode"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// AWSConfig holds Bedrock settings.
type AWSConfig struct {
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`
}

// PromptConfig controls the selection prompt.
type PromptConfig struct {
	// Timeout bounds the wait for a selection. Zero waits forever.
	Timeout time.Duration `mapstructure:"timeout"`
	// TUI uses the full-screen prompt instead of a plain line read.
	TUI bool `mapstructure:"tui"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY, TRIAGE_*)
// 2. Project config (.triage.yaml in current directory or parent)
// 3. User config (~/.config/triage/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := newViper()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	return unmarshal(v)
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := newViper()

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	return unmarshal(v)
}

// newViper returns a viper instance with defaults and environment bindings.
func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("triage")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("anthropic.api_key", "TRIAGE_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")

	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)
	cfg.Tasks.Path = expandEnv(cfg.Tasks.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated and duration values.
func (c *Config) Validate() error {
	switch c.Suggest.Mode {
	case SuggestLocal, SuggestAnthropic, SuggestBedrock:
	default:
		return fmt.Errorf("invalid suggest.mode %q: expected local, anthropic or bedrock", c.Suggest.Mode)
	}
	switch c.Tasks.Source {
	case "sample", "file", "sqlite":
	default:
		return fmt.Errorf("invalid tasks.source %q: expected sample, file or sqlite", c.Tasks.Source)
	}
	if c.Suggest.Timeout < 0 {
		return fmt.Errorf("invalid suggest.timeout %s: must not be negative", c.Suggest.Timeout)
	}
	if c.Prompt.Timeout < 0 {
		return fmt.Errorf("invalid prompt.timeout %s: must not be negative", c.Prompt.Timeout)
	}
	return nil
}

// Save writes the configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return SaveToPath(cfg, filepath.Join(userConfigDir, "config.yaml"))
}

// SaveToPath writes the configuration to path.
func SaveToPath(cfg *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)

	for _, key := range Keys {
		value, err := cfg.Get(key)
		if err != nil {
			return err
		}
		v.Set(key, value)
	}
	// Get masks the key for display; store the real value.
	v.Set("anthropic.api_key", cfg.Anthropic.APIKey)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("user.name", d.User.Name)

	v.SetDefault("tasks.source", d.Tasks.Source)
	v.SetDefault("tasks.path", d.Tasks.Path)
	v.SetDefault("tasks.table", d.Tasks.Table)
	v.SetDefault("tasks.column", d.Tasks.Column)
	v.SetDefault("tasks.filter", d.Tasks.Filter)
	v.SetDefault("tasks.owner", d.Tasks.Owner)

	v.SetDefault("suggest.mode", d.Suggest.Mode)
	v.SetDefault("suggest.timeout", d.Suggest.Timeout.String())

	v.SetDefault("anthropic.api_key", d.Anthropic.APIKey)
	v.SetDefault("anthropic.model", d.Anthropic.Model)

	v.SetDefault("aws.region", d.AWS.Region)
	v.SetDefault("aws.profile", d.AWS.Profile)

	v.SetDefault("prompt.timeout", d.Prompt.Timeout.String())
	v.SetDefault("prompt.tui", d.Prompt.TUI)

	v.SetDefault("log.debug", d.Log.Debug)
}

// getUserConfigDir returns the XDG config directory for triage.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "triage")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "triage")
	}
	return filepath.Join(home, ".config", "triage")
}

// findProjectConfig searches for .triage.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".triage.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Tasks: TasksConfig{
			Source: "sample",
			Table:  "tasks",
			Column: "title",
		},
		Suggest: SuggestConfig{
			Mode:    SuggestLocal,
			Timeout: 30 * time.Second,
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku-4-5-20251001",
		},
		Prompt: PromptConfig{
			Timeout: 0,
		},
	}
}
