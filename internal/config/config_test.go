package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// clearEnv removes environment overrides that would leak into Load.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ANTHROPIC_API_KEY",
		"TRIAGE_ANTHROPIC_API_KEY",
		"TRIAGE_USER_NAME",
		"TRIAGE_SUGGEST_MODE",
		"TRIAGE_TASKS_SOURCE",
		"TRIAGE_PROMPT_TIMEOUT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Tasks.Source != "sample" {
		t.Errorf("expected default source 'sample', got %q", cfg.Tasks.Source)
	}
	if cfg.Tasks.Table != "tasks" || cfg.Tasks.Column != "title" {
		t.Errorf("unexpected sqlite defaults: %+v", cfg.Tasks)
	}
	if cfg.Suggest.Mode != SuggestLocal {
		t.Errorf("expected suggest mode 'local', got %q", cfg.Suggest.Mode)
	}
	if cfg.Suggest.Timeout != 30*time.Second {
		t.Errorf("expected suggest timeout 30s, got %v", cfg.Suggest.Timeout)
	}
	if cfg.Prompt.Timeout != 0 {
		t.Errorf("expected no prompt timeout, got %v", cfg.Prompt.Timeout)
	}
	if cfg.Prompt.TUI || cfg.Log.Debug {
		t.Error("expected tui and debug logging to be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	clearEnv(t)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	configContent := `
user:
  name: Ada
tasks:
  source: sqlite
  path: /data/tickets.db
  table: tickets
  column: summary
  filter: "status != 'done'"
suggest:
  mode: bedrock
  timeout: 10s
anthropic:
  model: claude-sonnet-4-5-20250929
aws:
  region: us-west-2
  profile: bedrock
prompt:
  timeout: 1m
  tui: true
log:
  debug: true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	want := &Config{
		User: UserConfig{Name: "Ada"},
		Tasks: TasksConfig{
			Source: "sqlite",
			Path:   "/data/tickets.db",
			Table:  "tickets",
			Column: "summary",
			Filter: "status != 'done'",
		},
		Suggest:   SuggestConfig{Mode: SuggestBedrock, Timeout: 10 * time.Second},
		Anthropic: AnthropicConfig{Model: "claude-sonnet-4-5-20250929"},
		AWS:       AWSConfig{Region: "us-west-2", Profile: "bedrock"},
		Prompt:    PromptConfig{Timeout: time.Minute, TUI: true},
		Log:       LogConfig{Debug: true},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromPath_Partial(t *testing.T) {
	clearEnv(t)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("user:\n  name: Ada\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	want := Default()
	want.User.Name = "Ada"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("defaults not applied (-want +got):\n%s", diff)
	}
}

func TestLoadFromPath_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIAGE_USER_NAME", "Grace")
	t.Setenv("TRIAGE_SUGGEST_MODE", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-from-env-1234567890")

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("user:\n  name: Ada\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.User.Name != "Grace" {
		t.Errorf("user.name = %q, want env override 'Grace'", cfg.User.Name)
	}
	if cfg.Suggest.Mode != SuggestAnthropic {
		t.Errorf("suggest.mode = %q, want 'anthropic'", cfg.Suggest.Mode)
	}
	if cfg.Anthropic.APIKey != "sk-ant-from-env-1234567890" {
		t.Errorf("api key = %q, want value from ANTHROPIC_API_KEY", cfg.Anthropic.APIKey)
	}
}

func TestLoadFromPath_Invalid(t *testing.T) {
	clearEnv(t)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("suggest:\n  mode: psychic\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := LoadFromPath(configPath); err == nil {
		t.Error("expected error for invalid suggest.mode")
	}

	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_ProjectOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	project := t.TempDir()
	nested := filepath.Join(project, "sub", "dir")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(project, ".triage.yaml"), []byte("tasks:\n  source: file\n  path: todo.txt\n"), 0644); err != nil {
		t.Fatalf("write project config: %v", err)
	}
	t.Chdir(nested)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Tasks.Source != "file" || cfg.Tasks.Path != "todo.txt" {
		t.Errorf("project override not applied: %+v", cfg.Tasks)
	}
	if GetProjectConfigPath() != filepath.Join(project, ".triage.yaml") {
		t.Errorf("GetProjectConfigPath = %q", GetProjectConfigPath())
	}
}

func TestSaveToPath_RoundTrip(t *testing.T) {
	clearEnv(t)

	cfg := Default()
	cfg.User.Name = "Ada"
	cfg.Anthropic.APIKey = "sk-ant-secret-abcdefghijkl"
	cfg.Prompt.Timeout = 45 * time.Second
	cfg.Prompt.TUI = true

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := SaveToPath(cfg, path); err != nil {
		t.Fatalf("SaveToPath failed: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("TEST_VAR", "expanded-value")

	if result := expandEnv("${TEST_VAR}"); result != "expanded-value" {
		t.Errorf("expected 'expanded-value', got %q", result)
	}
	if result := expandEnv("prefix-${TEST_VAR}-suffix"); result != "prefix-expanded-value-suffix" {
		t.Errorf("expected 'prefix-expanded-value-suffix', got %q", result)
	}
}

func TestGetUserConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	if dir := getUserConfigDir(); dir != "/custom/config/triage" {
		t.Errorf("expected %q, got %q", "/custom/config/triage", dir)
	}
	if path := GetUserConfigPath(); path != "/custom/config/triage/config.yaml" {
		t.Errorf("GetUserConfigPath = %q", path)
	}
}
