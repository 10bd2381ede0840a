// Package config resolves service configuration from defaults, an optional
// YAML file, and environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures the runtime configuration for the schedule service.
type Config struct {
	HTTPPort         int    `yaml:"http_port"`
	SQLiteDSN        string `yaml:"sqlite_dsn"`
	Seed             bool   `yaml:"seed"`
	NotifyWebhookURL string `yaml:"notify_webhook_url"`
	LogLevel         string `yaml:"log_level"`
}

// Load resolves configuration in three layers: built-in defaults, then the
// YAML file named by EVENTFLOW_CONFIG_FILE (if set), then individual
// environment variables. Later layers win.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:  8080,
		SQLiteDSN: "file:eventflow.db",
		Seed:      true,
		LogLevel:  "info",
	}

	if path := strings.TrimSpace(os.Getenv("EVENTFLOW_CONFIG_FILE")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("EVENTFLOW_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "EVENTFLOW_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("EVENTFLOW_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if seedValue := strings.TrimSpace(os.Getenv("EVENTFLOW_SEED")); seedValue != "" {
		seed, err := strconv.ParseBool(seedValue)
		if err != nil {
			invalid = append(invalid, "EVENTFLOW_SEED")
		} else {
			cfg.Seed = seed
		}
	}

	if webhook := strings.TrimSpace(os.Getenv("EVENTFLOW_NOTIFY_WEBHOOK_URL")); webhook != "" {
		cfg.NotifyWebhookURL = webhook
	}

	if level := strings.TrimSpace(os.Getenv("EVENTFLOW_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
