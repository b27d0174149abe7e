package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
discord:
  token: file-token
  guild_id: "123"
database:
  path: /tmp/state.db
observability:
  metrics_address: ":9090"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "file-token", cfg.Discord.Token)
	require.Equal(t, "123", cfg.Discord.GuildID)
	require.Equal(t, "/tmp/state.db", cfg.Database.Path)
	require.Equal(t, ":9090", cfg.Observability.MetricsAddress)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
discord:
  token: file-token
database:
  path: /tmp/state.db
`)
	t.Setenv("DISCORD_TOKEN", "env-token")
	t.Setenv("DATABASE_PATH", "/tmp/env.db")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "env-token", cfg.Discord.Token)
	require.Equal(t, "/tmp/env.db", cfg.Database.Path)
}

func TestLoadConfig_MissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "env-token")
	t.Setenv("GUILD_ID", "456")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Equal(t, "env-token", cfg.Discord.Token)
	require.Equal(t, "456", cfg.Discord.GuildID)
	require.Equal(t, "data.db", cfg.Database.Path, "database path gets a default")
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := writeConfigFile(t, "discord: [not a mapping")

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.Validate())

	cfg.Discord.Token = "token"
	require.NoError(t, cfg.Validate())
}
