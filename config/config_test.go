package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	config, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.NotNil(t, config)

	assert.Equal(t, "skycast", config.AppName)
	assert.Equal(t, "local", config.AppEnv)
	assert.Equal(t, "8080", config.Port)
	assert.False(t, config.DarkMode)
	assert.Equal(t, "https://api.openweathermap.org", config.Provider.BaseURL)
	assert.Equal(t, 10*time.Second, config.Provider.Timeout)
	assert.Equal(t, "data/weather-cache.db", config.Cache.Path)

	// Missing key is reported on fetch, not at startup
	assert.Empty(t, config.Provider.APIKey)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeYAML(t, `
app_name: skycast-yaml
port: "9000"
dark_mode: true
provider:
  base_url: http://localhost:1234
  api_key: yaml-key
  timeout: 3s
cache:
  path: /tmp/skycast.db
`)

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "skycast-yaml", config.AppName)
	assert.Equal(t, "local", config.AppEnv)
	assert.Equal(t, "9000", config.Port)
	assert.True(t, config.DarkMode)
	assert.Equal(t, "http://localhost:1234", config.Provider.BaseURL)
	assert.Equal(t, "yaml-key", config.Provider.APIKey)
	assert.Equal(t, 3*time.Second, config.Provider.Timeout)
	assert.Equal(t, "/tmp/skycast.db", config.Cache.Path)
}

func TestLoad_EnvironmentOverridesYAML(t *testing.T) {
	path := writeYAML(t, `
port: "9000"
provider:
  api_key: yaml-key
`)

	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("OPENWEATHER_API_KEY", "env-key")
	t.Setenv("OPENWEATHER_TIMEOUT", "7s")
	t.Setenv("CACHE_PATH", "/var/lib/skycast/cache.db")
	t.Setenv("DARK_MODE", "true")

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", config.Port)
	assert.Equal(t, "prod", config.AppEnv)
	assert.Equal(t, "env-key", config.Provider.APIKey)
	assert.Equal(t, 7*time.Second, config.Provider.Timeout)
	assert.Equal(t, "/var/lib/skycast/cache.db", config.Cache.Path)
	assert.True(t, config.DarkMode)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeYAML(t, "port: [unclosed")

	config, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, config)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("OPENWEATHER_TIMEOUT", "soon")

	config, err := Load("nonexistent.yaml")
	assert.Error(t, err)
	assert.Nil(t, config)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "empty port", mutate: func(c *Config) { c.Port = "" }, wantErr: true},
		{name: "empty base url", mutate: func(c *Config) { c.Provider.BaseURL = "" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.Provider.Timeout = 0 }, wantErr: true},
		{name: "empty cache path", mutate: func(c *Config) { c.Cache.Path = "" }, wantErr: true},
		{name: "no api key", mutate: func(c *Config) { c.Provider.APIKey = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.mutate(config)

			err := config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
