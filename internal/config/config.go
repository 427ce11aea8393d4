package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "ANALYTICS_CONFIG_PATH"

// envPrefix namespaces every environment override, e.g.
// ANALYTICS_POSTGRES_DSN -> postgres.dsn, ANALYTICS_SERVER_PORT -> server.port.
const envPrefix = "ANALYTICS_"

var defaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

type PostgresConfig struct {
	DSN             string        `koanf:"dsn"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type StoreConfig struct {
	ReadPageSize int `koanf:"read_page_size"`
}

type LoggingConfig struct {
	Level string `koanf:"level"`
}

type Config struct {
	Postgres PostgresConfig `koanf:"postgres"`
	Server   ServerConfig   `koanf:"server"`
	Store    StoreConfig    `koanf:"store"`
	Logging  LoggingConfig  `koanf:"logging"`
}

func defaultConfig() *Config {
	return &Config{
		Postgres: PostgresConfig{
			MaxOpenConns:    20,
			MaxIdleConns:    10,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Server: ServerConfig{
			Port:            8787,
			ShutdownTimeout: 5 * time.Second,
		},
		Store: StoreConfig{
			ReadPageSize: 1000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration in three layers: built-in defaults, an
// optional YAML file, then ANALYTICS_* environment variables on top.
// Callers that need the store must also call Validate; commands that never
// touch it (a dry-run parse, for instance) can run without a DSN.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required (set ANALYTICS_POSTGRES_DSN)")
	}
	if c.Store.ReadPageSize <= 0 {
		return errors.New("store.read_page_size must be positive")
	}
	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range defaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
