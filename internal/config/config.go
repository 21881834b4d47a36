// Package config loads process settings from defaults, an optional YAML
// file and AIEXPLORER_* environment variables, in that order.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the entrypoint needs to build the store, the
// executors and the HTTP server.
type Config struct {
	DB   DBConfig   `yaml:"db"`
	HTTP HTTPConfig `yaml:"http"`
	Log  LogConfig  `yaml:"log"`
	// TxTimeout bounds every batch transaction.
	TxTimeout time.Duration `yaml:"tx_timeout"`
}

type DBConfig struct {
	Driver      string        `yaml:"driver"`
	DSN         string        `yaml:"dsn"`
	BusyTimeout time.Duration `yaml:"busy_timeout"`
	LockTimeout time.Duration `yaml:"lock_timeout"`
	// ManualIDTables are created without a generated id by migrate.
	ManualIDTables []string `yaml:"manual_id_tables"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Calls logs every service call and batch, not only failures.
	Calls bool `yaml:"calls"`
}

// Default returns a config for a local SQLite file store.
func Default() Config {
	return Config{
		DB: DBConfig{
			Driver:      "sqlite",
			DSN:         "aiexplorer.db",
			BusyTimeout: 5 * time.Second,
			LockTimeout: 5 * time.Second,
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log:       LogConfig{Level: "info"},
		TxTimeout: 15 * time.Second,
	}
}

// Load applies the YAML file named by AIEXPLORER_CONFIG (if any) and then the
// environment on top of Default. Only an unreadable or malformed file is an
// error; invalid environment values are ignored.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("AIEXPLORER_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("AIEXPLORER_DB_DRIVER"); v != "" {
		c.DB.Driver = v
	}
	if v := os.Getenv("AIEXPLORER_DB"); v != "" {
		c.DB.DSN = v
	}
	if v := os.Getenv("AIEXPLORER_HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	applyMillisEnv(&c.TxTimeout, "AIEXPLORER_TX_TIMEOUT_MS")
	applyMillisEnv(&c.DB.LockTimeout, "AIEXPLORER_LOCK_TIMEOUT_MS")
	applyMillisEnv(&c.DB.BusyTimeout, "AIEXPLORER_BUSY_TIMEOUT_MS")
	if v, ok := os.LookupEnv("AIEXPLORER_MANUAL_ID_TABLES"); ok {
		c.DB.ManualIDTables = splitList(v)
	}
	if v := os.Getenv("AIEXPLORER_LOG_LEVEL"); v != "" {
		if _, err := parseLevel(v); err == nil {
			c.Log.Level = v
		}
	}
	if v := os.Getenv("AIEXPLORER_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Log.Calls = b
		}
	}
}

func applyMillisEnv(dst *time.Duration, name string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	*dst = time.Duration(n) * time.Millisecond
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SlogLevel returns the configured level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	lvl, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(strings.TrimSpace(s)))
	return lvl, err
}

// Validate reports settings the process cannot start with.
func (c Config) Validate() error {
	switch strings.ToLower(c.DB.Driver) {
	case "sqlite", "postgres", "pgx":
	default:
		return fmt.Errorf("unsupported db driver %q", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("db dsn is required")
	}
	if c.TxTimeout <= 0 {
		return fmt.Errorf("tx timeout must be positive")
	}
	return nil
}
