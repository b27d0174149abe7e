package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Discord       DiscordConfig       `yaml:"discord"`
	Database      DatabaseConfig      `yaml:"database"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// DiscordConfig holds gateway credentials and command registration scope.
type DiscordConfig struct {
	Token string `yaml:"token"`
	// GuildID scopes slash-command registration to one guild; empty means
	// global registration.
	GuildID string `yaml:"guild_id"`
}

// DatabaseConfig holds the embedded store location.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ObservabilityConfig holds configuration for the ops HTTP server.
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
}

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables when the file is absent. Env vars always win over
// file values.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if v := os.Getenv("DISCORD_TOKEN"); v != "" {
		cfg.Discord.Token = v
	}
	if v := os.Getenv("GUILD_ID"); v != "" {
		cfg.Discord.GuildID = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "data.db"
	}

	return &cfg, nil
}

// Validate checks the fields the gateway cannot run without. The store-only
// commands (storectl) skip this.
func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("missing DISCORD_TOKEN")
	}
	return nil
}
