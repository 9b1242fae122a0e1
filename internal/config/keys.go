package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrNoAPIKey is returned when no API key is configured.
var ErrNoAPIKey = errors.New("no Anthropic API key configured")

// ErrUnknownKey is returned for a dot-notation key that isn't a setting.
var ErrUnknownKey = errors.New("unknown configuration key")

// Keys lists every settable key in display order.
var Keys = []string{
	"user.name",
	"tasks.source",
	"tasks.path",
	"tasks.table",
	"tasks.column",
	"tasks.filter",
	"tasks.owner",
	"suggest.mode",
	"suggest.timeout",
	"anthropic.api_key",
	"anthropic.model",
	"aws.region",
	"aws.profile",
	"prompt.timeout",
	"prompt.tui",
	"log.debug",
}

// Get returns a configuration value by dot-notation key, formatted for
// display. The API key is masked.
func (c *Config) Get(key string) (string, error) {
	switch strings.ToLower(key) {
	case "user.name":
		return c.User.Name, nil
	case "tasks.source":
		return c.Tasks.Source, nil
	case "tasks.path":
		return c.Tasks.Path, nil
	case "tasks.table":
		return c.Tasks.Table, nil
	case "tasks.column":
		return c.Tasks.Column, nil
	case "tasks.filter":
		return c.Tasks.Filter, nil
	case "tasks.owner":
		return c.Tasks.Owner, nil
	case "suggest.mode":
		return c.Suggest.Mode, nil
	case "suggest.timeout":
		return c.Suggest.Timeout.String(), nil
	case "anthropic.api_key":
		return MaskAPIKey(c.Anthropic.APIKey), nil
	case "anthropic.model":
		return c.Anthropic.Model, nil
	case "aws.region":
		return c.AWS.Region, nil
	case "aws.profile":
		return c.AWS.Profile, nil
	case "prompt.timeout":
		return c.Prompt.Timeout.String(), nil
	case "prompt.tui":
		return strconv.FormatBool(c.Prompt.TUI), nil
	case "log.debug":
		return strconv.FormatBool(c.Log.Debug), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set parses value and stores it under the dot-notation key.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "user.name":
		c.User.Name = value
	case "tasks.source":
		c.Tasks.Source = value
	case "tasks.path":
		c.Tasks.Path = value
	case "tasks.table":
		c.Tasks.Table = value
	case "tasks.column":
		c.Tasks.Column = value
	case "tasks.filter":
		c.Tasks.Filter = value
	case "tasks.owner":
		c.Tasks.Owner = value
	case "suggest.mode":
		c.Suggest.Mode = value
	case "suggest.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for suggest.timeout: %w", err)
		}
		c.Suggest.Timeout = d
	case "anthropic.api_key":
		c.Anthropic.APIKey = value
	case "anthropic.model":
		c.Anthropic.Model = value
	case "aws.region":
		c.AWS.Region = value
	case "aws.profile":
		c.AWS.Profile = value
	case "prompt.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for prompt.timeout: %w", err)
		}
		c.Prompt.Timeout = d
	case "prompt.tui":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for prompt.tui: %w", err)
		}
		c.Prompt.TUI = b
	case "log.debug":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for log.debug: %w", err)
		}
		c.Log.Debug = b
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return c.Validate()
}

// GetAPIKey returns the Anthropic API key from the configuration.
// It checks in order: environment variable, config file.
func GetAPIKey(cfg *Config) (string, error) {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return key, nil
	}

	if cfg != nil && cfg.Anthropic.APIKey != "" {
		// Expand any remaining env var references
		key := os.ExpandEnv(cfg.Anthropic.APIKey)
		if key != "" && !strings.HasPrefix(key, "${") {
			return key, nil
		}
	}

	return "", ErrNoAPIKey
}

// ValidateAPIKey performs basic validation on an API key.
// It checks format but does not verify the key with Anthropic's API.
func ValidateAPIKey(key string) error {
	if key == "" {
		return ErrNoAPIKey
	}

	if !strings.HasPrefix(key, "sk-ant-") {
		return errors.New("invalid API key format: expected 'sk-ant-' prefix")
	}

	if len(key) < 20 {
		return errors.New("invalid API key format: key too short")
	}

	return nil
}

// MaskAPIKey returns a masked version of the API key for display.
// Shows the first 7 characters (sk-ant-) and last 4 characters.
func MaskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}

	if len(key) <= 15 {
		return "***"
	}

	return key[:7] + "..." + key[len(key)-4:]
}

// KeySource represents where an API key was loaded from.
type KeySource string

const (
	KeySourceEnv    KeySource = "environment"
	KeySourceConfig KeySource = "config_file"
	KeySourceNone   KeySource = "none"
)

// GetAPIKeySource returns where the API key was sourced from.
func GetAPIKeySource(cfg *Config) KeySource {
	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		return KeySourceEnv
	}

	if cfg != nil && cfg.Anthropic.APIKey != "" {
		key := os.ExpandEnv(cfg.Anthropic.APIKey)
		if key != "" && !strings.HasPrefix(key, "${") {
			return KeySourceConfig
		}
	}

	return KeySourceNone
}
