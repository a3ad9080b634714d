// FILE: proflog/src/cmd/proflog/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"proflog/src/internal/config"
	"proflog/src/internal/core"
	"proflog/src/internal/handler"
	"proflog/src/internal/logger"
	"proflog/src/internal/reader"
	"proflog/src/internal/version"

	"github.com/lixenwraith/log"
)

var opLog *log.Logger

func main() {
	if err := parseFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// CLI overrides on top of file/env config
	if *backendType != "" {
		cfg.Backend.Backend = *backendType
	}
	if *backendPath != "" {
		cfg.Backend.Path = *backendPath
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	if err := initializeLogger(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer opLog.Shutdown(2 * time.Second)

	h, err := handler.New(cfg.Backend, opLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create %s backend: %v\n", cfg.Backend.Backend, err)
		os.Exit(1)
	}

	if err := run(cfg, h); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, h handler.Handler) error {
	switch {
	case *doWrite:
		return runWrite(cfg, h)
	case *findLevel != "":
		return runFindLevel(h)
	case *since != "" || *until != "":
		return runFindRange(h)
	case *doGroup:
		return runGroup(h)
	case *findText != "":
		return runFindText(h)
	case *sortOrder != "":
		return runSort(h)
	default:
		return fmt.Errorf("no operation given (try -write, -find-level, -since/-until, -group, -find-text or -sort)")
	}
}

func runWrite(cfg *config.Config, h handler.Handler) error {
	args := flagArgs()
	level, err := core.ParseLevel(args[0])
	if err != nil {
		return err
	}

	l := logger.New([]handler.Handler{h}, opLog)

	threshold, err := core.ParseLevel(cfg.Logger.Level)
	if err != nil {
		return err
	}
	l.SetLevel(threshold)

	if err := l.Log(level, args[1]); err != nil {
		return err
	}

	if l.Stats().TotalLogged == 0 {
		opLog.Info("msg", "Entry below threshold, not persisted",
			"level", level.String(),
			"threshold", threshold.String())
	}
	return nil
}

func runFindLevel(h handler.Handler) error {
	level, err := core.ParseLevel(*findLevel)
	if err != nil {
		return err
	}

	entries, err := reader.New(h, opLog).FindByLevel(level)
	if err != nil {
		return err
	}
	printEntries(entries)
	return nil
}

func runFindRange(h handler.Handler) error {
	if *since == "" || *until == "" {
		return fmt.Errorf("range queries need both -since and -until")
	}

	start, err := time.Parse(time.RFC3339, *since)
	if err != nil {
		return fmt.Errorf("invalid -since: %w", err)
	}
	end, err := time.Parse(time.RFC3339, *until)
	if err != nil {
		return fmt.Errorf("invalid -until: %w", err)
	}

	entries, err := reader.New(h, opLog).FindByTimeRange(start, end)
	if err != nil {
		return err
	}
	printEntries(entries)
	return nil
}

func runGroup(h handler.Handler) error {
	groups, err := reader.New(h, opLog).GroupByLevel()
	if err != nil {
		return err
	}

	for _, level := range core.Levels() {
		entries, ok := groups[level]
		if !ok {
			continue
		}
		fmt.Printf("%s (%d):\n", level, len(entries))
		for _, e := range entries {
			fmt.Printf("  %s\n", e)
		}
	}
	return nil
}

func runFindText(h handler.Handler) error {
	entries, err := reader.New(h, opLog).FindByText(*findText, *caseSense)
	if err != nil {
		return err
	}
	printEntries(entries)
	return nil
}

func runSort(h handler.Handler) error {
	entries, err := reader.New(h, opLog).SortByTime(*sortOrder == "asc")
	if err != nil {
		return err
	}
	printEntries(entries)
	return nil
}

func printEntries(entries []core.LogEntry) {
	for _, e := range entries {
		fmt.Println(e)
	}
}
