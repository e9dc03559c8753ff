package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setServiceEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FTEAM_AUTH_URL", "https://api.example.com/auth")
	t.Setenv("FTEAM_USERS_URL", "https://api.example.com/users")
	t.Setenv("FTEAM_GAMES_URL", "https://api.example.com/games")
	t.Setenv("FTEAM_FRAMES_URL", "https://api.example.com/frames")
	t.Setenv("FTEAM_MARKET_URL", "https://api.example.com/market")
}

func TestLoad_FromEnvironment(t *testing.T) {
	setServiceEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://api.example.com/auth", cfg.AuthURL)
	assert.Equal(t, "https://api.example.com/market", cfg.MarketURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.NotEmpty(t, cfg.SessionPath)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
auth_url: https://file.example.com/auth
users_url: https://file.example.com/users
games_url: https://file.example.com/games
frames_url: https://file.example.com/frames
market_url: https://file.example.com/market
http_timeout: 5s
log_level: debug
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://file.example.com/auth", cfg.AuthURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
auth_url: https://file.example.com/auth
`), 0600))

	t.Setenv("FTEAM_AUTH_URL", "https://env.example.com/auth")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/auth", cfg.AuthURL)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate_ReportsMissingEndpoints(t *testing.T) {
	cfg := &Config{AuthURL: "https://api.example.com/auth"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "market_url")
}
