package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config/config.yaml"

type Config struct {
	AppName   string         `envconfig:"APP_NAME" yaml:"app_name"`
	AppEnv    string         `envconfig:"APP_ENV" yaml:"app_env"`
	Port      string         `envconfig:"PORT" yaml:"port"`
	SentryDSN string         `envconfig:"SENTRY_DSN" yaml:"sentry_dsn,omitempty"`
	DarkMode  bool           `envconfig:"DARK_MODE" yaml:"dark_mode"`
	Provider  ProviderConfig `envconfig:"PROVIDER" yaml:"provider"`
	Cache     CacheConfig    `envconfig:"CACHE" yaml:"cache"`
}

type ProviderConfig struct {
	BaseURL string        `envconfig:"OPENWEATHER_BASE_URL" yaml:"base_url"`
	APIKey  string        `envconfig:"OPENWEATHER_API_KEY" yaml:"api_key,omitempty"`
	Timeout time.Duration `envconfig:"OPENWEATHER_TIMEOUT" yaml:"timeout"`
}

type CacheConfig struct {
	Path string `envconfig:"CACHE_PATH" yaml:"path"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		AppName: "skycast",
		AppEnv:  "local",
		Port:    "8080",
		Provider: ProviderConfig{
			BaseURL: "https://api.openweathermap.org",
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Path: "data/weather-cache.db",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (optional),
// a .env file (optional) and finally the environment.
func Load(path string) (*Config, error) {
	cnf := Default()

	if yamlData, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(yamlData, cnf); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	}

	_ = godotenv.Load()

	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	if err := cnf.Validate(); err != nil {
		return nil, err
	}

	return cnf, nil
}

// NewConfig loads the configuration from CONFIG_PATH or DefaultPath and panics on failure.
func NewConfig() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}

	cnf, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cnf
}

// Validate checks the settings the process cannot start without.
// A missing provider key is not one of them: fetches report it instead.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider base url cannot be empty")
	}
	if c.Provider.Timeout <= 0 {
		return fmt.Errorf("provider timeout must be positive, got %s", c.Provider.Timeout)
	}
	if c.Cache.Path == "" {
		return fmt.Errorf("cache path cannot be empty")
	}
	return nil
}
