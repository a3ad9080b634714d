// FILE: proflog/src/internal/config/config.go
package config

import (
	"os"
	"path/filepath"
	"strings"

	"proflog/src/internal/core"
)

type Config struct {
	Log     LogConfig     `toml:"log"`
	Backend HandlerConfig `toml:"backend"`
	Logger  LoggerConfig  `toml:"logger"`
}

// Operational logging for proflog itself, not the persisted log stream
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// HandlerConfig is the configuration bundle one backend is constructed with.
// Path is a file location for the file backends and the database file for
// the sqlite backend.
type HandlerConfig struct {
	Backend  string `toml:"type"` // text, json, csv, sqlite
	Path     string `toml:"path"`
	Encoding string `toml:"encoding"` // only utf-8 is supported
}

// Threshold for the logger facade
type LoggerConfig struct {
	Level string `toml:"level"`
}

func defaults() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Backend: HandlerConfig{
			Backend:  "json",
			Path:     "./proflog.jsonl",
			Encoding: "utf-8",
		},
		Logger: LoggerConfig{
			Level: "INFO",
		},
	}
}

// BackendTypes lists the supported backend type names.
var BackendTypes = []string{"text", "json", "csv", "sqlite"}

func (c *Config) validate() error {
	validBackends := map[string]bool{
		"text": true, "json": true, "csv": true, "sqlite": true,
	}
	if !validBackends[c.Backend.Backend] {
		return &core.ConfigurationError{
			Field:  "backend.type",
			Reason: "must be one of: " + strings.Join(BackendTypes, ", "),
		}
	}

	if err := c.Backend.Validate(); err != nil {
		return err
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return &core.ConfigurationError{
			Field:  "log.level",
			Reason: "must be one of: debug, info, warn, error",
		}
	}

	if _, err := core.ParseLevel(c.Logger.Level); err != nil {
		return &core.ConfigurationError{
			Field:  "logger.level",
			Reason: "unknown level " + c.Logger.Level,
		}
	}

	return nil
}

// Validate checks the bundle without touching the backend resource.
// Handlers run it again at construction before probing the path.
func (c HandlerConfig) Validate() error {
	if strings.TrimSpace(c.Path) == "" {
		return &core.ConfigurationError{Field: "backend.path", Reason: "must not be empty"}
	}

	switch strings.ToLower(c.Encoding) {
	case "", "utf-8", "utf8":
	default:
		return &core.ConfigurationError{
			Field:  "backend.encoding",
			Reason: "unsupported encoding " + c.Encoding + " (only utf-8)",
		}
	}

	return nil
}

func GetConfigPath() string {
	if configFile := os.Getenv("PROFLOG_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("PROFLOG_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("PROFLOG_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "proflog.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "proflog.toml")
	}

	return "proflog.toml"
}
