// FILE: proflog/src/cmd/proflog/bootstrap.go
package main

import (
	"flag"
	"fmt"
	"strings"

	"proflog/src/internal/config"

	"github.com/lixenwraith/log"
)

// initializeLogger sets up the operational logger. Diagnostics go to stderr
// so query output on stdout stays machine-readable.
func initializeLogger(cfg *config.Config) error {
	opLog = log.NewLogger()

	levelValue, err := parseLogLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	return opLog.ApplyConfigString(
		fmt.Sprintf("level=%d", levelValue),
		"disable_file=true",
		"enable_stdout=true",
		"stdout_target=stderr",
	)
}

func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}

func flagArgs() []string {
	return flag.Args()
}
