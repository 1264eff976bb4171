package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8082", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, int64(10<<20), cfg.Fetch.MaxBodyBytes)
	assert.Equal(t, DefaultUserAgent, cfg.Fetch.UserAgent)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 2, cfg.Server.StatsRetention)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: "9000"
fetch:
  timeout: 3s
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("PORT", "9100")
	t.Setenv("GEOCHECKER_FETCH_MAX_BODY_BYTES", "2048")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, int64(2048), cfg.Fetch.MaxBodyBytes)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadUserAgentOverride(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("GEOCHECKER_FETCH_USER_AGENT", "custom-agent/2.0")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "custom-agent/2.0", cfg.Fetch.UserAgent)

	t.Setenv("GEOCHECKER_FETCH_USER_AGENT", "")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, cfg.Fetch.UserAgent)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Server: ServerConfig{Port: "1", StatsRetention: 1},
		Fetch:  FetchConfig{Timeout: time.Second, MaxBodyBytes: 1},
	}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultUserAgent, cfg.Fetch.UserAgent)

	cfg.Fetch.Timeout = 0
	assert.Error(t, cfg.Validate())

	cfg.Fetch.Timeout = time.Second
	cfg.Fetch.MaxBodyBytes = 0
	assert.Error(t, cfg.Validate())

	cfg.Fetch.MaxBodyBytes = 1
	cfg.Server.Port = ""
	assert.Error(t, cfg.Validate())

	cfg.Server.Port = "1"
	cfg.Server.StatsRetention = 0
	assert.Error(t, cfg.Validate())
}
