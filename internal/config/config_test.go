package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.GetServerAddr())
	assert.Equal(t, "inmemory", cfg.Repository.Type)
	assert.False(t, cfg.Repository.ResetOnStart)
	assert.Equal(t, "/brands", cfg.Backend.BrandsPath)
	assert.Equal(t, "/api/task", cfg.Backend.TasksPath)
	assert.Zero(t, cfg.Backend.Timeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.Invite.CloseDelay)
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerMinute)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := `
server:
  port: "9000"
backend:
  base_url: "http://backend:5000"
  timeout: 3s
worker:
  enabled: true
  interval: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "http://backend:5000", cfg.Backend.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.True(t, cfg.Worker.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Worker.Interval)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9000\"\n"), 0o600))
	t.Setenv("BRANDTRACKER_SERVER_PORT", "7070")
	t.Setenv("BRANDTRACKER_REPOSITORY_RESET_ON_START", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.True(t, cfg.Repository.ResetOnStart)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(c *Config)
		expectErr bool
	}{
		{name: "inmemory", modify: func(c *Config) {}},
		{name: "postgres with url", modify: func(c *Config) {
			c.Repository.Type = "postgres"
			c.Database.URL = "postgres://u:p@localhost/db"
		}},
		{name: "postgres without url", modify: func(c *Config) { c.Repository.Type = "postgres" }, expectErr: true},
		{name: "unknown repository", modify: func(c *Config) { c.Repository.Type = "redis" }, expectErr: true},
		{name: "empty backend url", modify: func(c *Config) { c.Backend.BaseURL = "" }, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Repository: RepositoryConfig{Type: "inmemory"},
				Backend:    BackendConfig{BaseURL: "http://localhost:5000"},
			}
			tt.modify(c)

			err := c.Validate()
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
