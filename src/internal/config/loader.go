// FILE: proflog/src/internal/config/loader.go
package config

import (
	"fmt"
	"strings"

	lconfig "github.com/lixenwraith/config"
)

// Load builds the configuration from defaults, the config file (if present)
// and PROFLOG_* environment variables, in ascending precedence.
func Load() (*Config, error) {
	configPath := GetConfigPath()

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("PROFLOG_").
		WithFile(configPath).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		// A missing config file is fine, defaults and env still apply
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	finalConfig := &Config{}
	if err := cfg.Scan(finalConfig); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	return finalConfig, finalConfig.validate()
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	env = "PROFLOG_" + env
	return env
}
