package config

import (
	"errors"
	"testing"
	"time"
)

func TestGetAPIKey(t *testing.T) {
	t.Run("from environment variable", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test-key")

		key, err := GetAPIKey(&Config{})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if key != "sk-ant-test-key" {
			t.Errorf("expected 'sk-ant-test-key', got %q", key)
		}
	})

	t.Run("from config", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")

		cfg := &Config{Anthropic: AnthropicConfig{APIKey: "sk-ant-config-key"}}
		key, err := GetAPIKey(cfg)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if key != "sk-ant-config-key" {
			t.Errorf("expected 'sk-ant-config-key', got %q", key)
		}
	})

	t.Run("unresolved reference", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")
		t.Setenv("TRIAGE_TEST_UNSET", "")

		cfg := &Config{Anthropic: AnthropicConfig{APIKey: "${TRIAGE_TEST_UNSET}"}}
		if _, err := GetAPIKey(cfg); !errors.Is(err, ErrNoAPIKey) {
			t.Errorf("expected ErrNoAPIKey, got %v", err)
		}
	})

	t.Run("no key configured", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")

		if _, err := GetAPIKey(&Config{}); !errors.Is(err, ErrNoAPIKey) {
			t.Errorf("expected ErrNoAPIKey, got %v", err)
		}
	})
}

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid key", "sk-ant-REDACTED", false},
		{"empty key", "", true},
		{"wrong prefix", "sk-openai-12345678901234567890", true},
		{"too short", "sk-ant-abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAPIKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAPIKey() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"sk-ant-REDACTED", "sk-ant-...wxyz"},
		{"", "(not set)"},
		{"short", "***"},
	}

	for _, tt := range tests {
		if got := MaskAPIKey(tt.key); got != tt.expected {
			t.Errorf("MaskAPIKey(%q) = %q, want %q", tt.key, got, tt.expected)
		}
	}
}

func TestGetAPIKeySource(t *testing.T) {
	t.Run("from environment", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "test-key")

		if source := GetAPIKeySource(&Config{}); source != KeySourceEnv {
			t.Errorf("expected KeySourceEnv, got %v", source)
		}
	})

	t.Run("from config", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")

		cfg := &Config{Anthropic: AnthropicConfig{APIKey: "sk-ant-config-key"}}
		if source := GetAPIKeySource(cfg); source != KeySourceConfig {
			t.Errorf("expected KeySourceConfig, got %v", source)
		}
	})

	t.Run("no key", func(t *testing.T) {
		t.Setenv("ANTHROPIC_API_KEY", "")

		if source := GetAPIKeySource(&Config{}); source != KeySourceNone {
			t.Errorf("expected KeySourceNone, got %v", source)
		}
	})
}

func TestConfigGetSet(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  string
	}{
		{"user.name", "Ada", "Ada"},
		{"tasks.source", "sqlite", "sqlite"},
		{"tasks.path", "/tmp/tickets.db", "/tmp/tickets.db"},
		{"tasks.table", "tickets", "tickets"},
		{"tasks.column", "summary", "summary"},
		{"tasks.filter", "status != 'done'", "status != 'done'"},
		{"tasks.owner", "Priyanka", "Priyanka"},
		{"suggest.mode", "anthropic", "anthropic"},
		{"suggest.timeout", "45s", "45s"},
		{"anthropic.api_key", "sk-ant-REDACTED", "sk-ant-...wxyz"},
		{"anthropic.model", "claude-sonnet-4-5-20250929", "claude-sonnet-4-5-20250929"},
		{"aws.region", "us-west-2", "us-west-2"},
		{"aws.profile", "bedrock", "bedrock"},
		{"prompt.timeout", "2m", "2m0s"},
		{"PROMPT.TUI", "true", "true"},
		{"log.debug", "1", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := Default()
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%q, %q) returned error: %v", tt.key, tt.value, err)
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) returned error: %v", tt.key, err)
			}
			if got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}

	cfg := Default()
	if err := cfg.Set("prompt.timeout", "90s"); err != nil || cfg.Prompt.Timeout != 90*time.Second {
		t.Errorf("prompt.timeout = %v (err %v), want 90s", cfg.Prompt.Timeout, err)
	}
}

func TestConfigSet_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"suggest.timeout", "soon"},
		{"prompt.tui", "maybe"},
		{"log.debug", "kinda"},
		{"suggest.mode", "telepathy"},
		{"tasks.source", "jira"},
		{"prompt.timeout", "-5s"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := Default().Set(tt.key, tt.value); err == nil {
				t.Errorf("Set(%q, %q) should fail", tt.key, tt.value)
			}
		})
	}

	if err := Default().Set("no.such.key", "x"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}
	if _, err := Default().Get("no.such.key"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}
}

func TestKeysAreGettable(t *testing.T) {
	cfg := Default()
	for _, key := range Keys {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) returned error: %v", key, err)
		}
	}
}
