package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ochronus/gocatbox/internal/config"
)

func staticPrompt(hash string) Prompter {
	return func() (string, error) { return hash, nil }
}

func TestConfigTemplateContent(t *testing.T) {
	requiredSections := []string{
		"loglevel",
		"[catbox]",
		"userhash",
		"endpoint",
		"timeout",
		"[relay]",
		"bind_address",
		"port",
		"username",
		"password",
	}

	for _, section := range requiredSections {
		if !strings.Contains(configTemplate, section) {
			t.Errorf("configTemplate missing required section: %s", section)
		}
	}
}

func TestConfigTemplatePlaceholder(t *testing.T) {
	if !strings.Contains(configTemplate, "{{CATBOX_USERHASH}}") {
		t.Error("configTemplate missing {{CATBOX_USERHASH}} placeholder")
	}
}

func TestValidateUserHash(t *testing.T) {
	tests := []struct {
		hash    string
		wantErr bool
	}{
		{"", false},
		{"1234567890abcdefABCDEF123", false},
		{"has space", true},
		{`quote"`, true},
		{"back\\slash", true},
		{"ünïcode", true},
	}

	for _, tt := range tests {
		err := ValidateUserHash(tt.hash)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateUserHash(%q): expected error %v, got %v", tt.hash, tt.wantErr, err)
		}
	}
}

func TestRenderConfigLoadsBack(t *testing.T) {
	rendered, err := RenderConfig("abc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte(rendered), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("rendered config does not parse: %v", err)
	}
	if cfg.Catbox.UserHash != "abc123" {
		t.Errorf("expected userhash 'abc123', got %q", cfg.Catbox.UserHash)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("rendered config is invalid: %v", err)
	}

	defaults := config.DefaultConfig()
	if cfg.Relay.Port != defaults.Relay.Port || cfg.Relay.BindAddress != defaults.Relay.BindAddress {
		t.Errorf("template relay defaults drifted from DefaultConfig: %+v", cfg.Relay)
	}
	if cfg.Catbox.Endpoint != defaults.Catbox.Endpoint {
		t.Errorf("template endpoint drifted from DefaultConfig: %q", cfg.Catbox.Endpoint)
	}
}

func TestRenderConfigRejectsInvalidHash(t *testing.T) {
	if _, err := RenderConfig(`bad"hash`); err == nil {
		t.Error("expected error for invalid userhash")
	}
}

func TestGenerateConfigCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "nested", "config.toml")

	if err := GenerateConfig(configPath, staticPrompt("abc123")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("expected config file to exist: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if !strings.Contains(string(data), `userhash = "abc123"`) {
		t.Errorf("expected userhash in config, got:\n%s", data)
	}
}

func TestGenerateConfigBacksUpExisting(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	if err := os.WriteFile(configPath, []byte("old"), 0644); err != nil {
		t.Fatalf("failed to write existing config: %v", err)
	}

	if err := GenerateConfig(configPath, staticPrompt("")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	backup, err := os.ReadFile(configPath + ".bak")
	if err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
	if string(backup) != "old" {
		t.Errorf("unexpected backup content %q", backup)
	}
}

func TestGenerateConfigPromptError(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	failing := func() (string, error) { return "", errors.New("interrupted") }

	err := GenerateConfig(configPath, failing)
	if err == nil {
		t.Fatal("expected error")
	}
	if _, statErr := os.Stat(configPath); !os.IsNotExist(statErr) {
		t.Error("expected no config file to be written")
	}
}
