package main

import (
	"fmt"
	"os"
	"time"

	"github.com/quizclash/quizclash/go/internal/game/session"
	"gopkg.in/yaml.v3"
)

// Config holds server and game settings loaded from YAML.
type Config struct {
	Server struct {
		Port     string `yaml:"port"`
		MaxConns int    `yaml:"max_conns"`
	} `yaml:"server"`
	Game struct {
		RoundSeconds     int `yaml:"round_seconds"`
		QuestionsPerGame int `yaml:"questions_per_game"`
	} `yaml:"game"`
}

func defaultConfig() *Config {
	var cfg Config
	cfg.Server.Port = "5000"
	cfg.Server.MaxConns = 1024
	cfg.Game.RoundSeconds = 15
	cfg.Game.QuestionsPerGame = 5
	return &cfg
}

func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) sessionConfig() session.Config {
	return session.Config{
		RoundDuration:    time.Duration(c.Game.RoundSeconds) * time.Second,
		QuestionsPerGame: c.Game.QuestionsPerGame,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
