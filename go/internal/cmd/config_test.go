package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Server.Port != "5000" {
		t.Fatalf("expected default port 5000, got %q", cfg.Server.Port)
	}
	if cfg.Game.RoundSeconds != 15 || cfg.Game.QuestionsPerGame != 5 {
		t.Fatalf("unexpected game defaults: %+v", cfg.Game)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("server:\n  port: \"8080\"\ngame:\n  round_seconds: 30\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Server.Port)
	}
	if got := cfg.sessionConfig().RoundDuration; got != 30*time.Second {
		t.Fatalf("expected 30s rounds, got %v", got)
	}
	// Untouched keys keep their defaults.
	if cfg.Game.QuestionsPerGame != 5 {
		t.Fatalf("expected default questions per game, got %d", cfg.Game.QuestionsPerGame)
	}
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := loadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}
