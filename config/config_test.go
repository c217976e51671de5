package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		API:     APIConfig{URL: "http://localhost:8000/api", Timeout: 30 * time.Second},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing url",
			mutate:  func(c *Config) { c.API.URL = "" },
			wantErr: "api.url is required",
		},
		{
			name:    "non http url",
			mutate:  func(c *Config) { c.API.URL = "ftp://example.com" },
			wantErr: "api.url must be an http(s) URL",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.API.Timeout = -time.Second },
			wantErr: "api.timeout must not be negative",
		},
		{
			name:    "bad level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "invalid logging level: trace",
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
		{
			name:    "empty preset",
			mutate:  func(c *Config) { c.Filter.Presets = map[string]string{"x": " "} },
			wantErr: "filter preset 'x' has an empty expression",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  url: https://movies.example.com/api
  timeout: 5s
credentials:
  path: ""
filter:
  presets:
    classics: Year < 1980
logging:
  level: debug
  format: json
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://movies.example.com/api", cfg.API.URL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "marquee", cfg.API.UserAgent)
	assert.Empty(t, cfg.Credentials.Path)
	assert.Equal(t, "Year < 1980", cfg.Filter.Presets["classics"])
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Display.ShowDetails)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.API.URL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".marquee", "credentials.db"), cfg.Credentials.Path)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MARQUEE_API_URL", "http://api.internal:9000/api")
	t.Setenv("MARQUEE_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://api.internal:9000/api", cfg.API.URL)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
