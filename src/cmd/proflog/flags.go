// FILE: proflog/src/cmd/proflog/flags.go
package main

import (
	"flag"
	"fmt"
	"os"
)

// Command-line flags
var (
	// General flags
	showVersion = flag.Bool("version", false, "Show version information")
	logLevel    = flag.String("log-level", "", "Operational log level: debug, info, warn, error (overrides config)")

	// Backend overrides
	backendType = flag.String("backend", "", "Backend type: text, json, csv, sqlite (overrides config)")
	backendPath = flag.String("path", "", "Backend file or database path (overrides config)")

	// Write operation: proflog -write LEVEL MESSAGE
	doWrite = flag.Bool("write", false, "Persist one entry; takes LEVEL and MESSAGE as arguments")

	// Query operations
	findLevel = flag.String("find-level", "", "Return entries with exactly this level")
	since     = flag.String("since", "", "Range query start, RFC 3339 (inclusive)")
	until     = flag.String("until", "", "Range query end, RFC 3339 (inclusive)")
	doGroup   = flag.Bool("group", false, "Group all entries by level")
	findText  = flag.String("find-text", "", "Return entries whose message contains this text")
	caseSense = flag.Bool("case", false, "Make -find-text case sensitive")
	sortOrder = flag.String("sort", "", "Return all entries sorted by time: asc or desc")
)

func init() {
	flag.Usage = customUsage
}

func customUsage() {
	fmt.Fprintf(os.Stderr, "proflog - Leveled Logging with Pluggable Storage Backends\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Options:\n")

	fmt.Fprintf(os.Stderr, "\nGeneral:\n")
	fmt.Fprintf(os.Stderr, "  -version\n\tShow version information\n")
	fmt.Fprintf(os.Stderr, "  -log-level string\n\tOperational log level: debug, info, warn, error (overrides config)\n")

	fmt.Fprintf(os.Stderr, "\nBackend:\n")
	fmt.Fprintf(os.Stderr, "  -backend string\n\tBackend type: text, json, csv, sqlite (overrides config)\n")
	fmt.Fprintf(os.Stderr, "  -path string\n\tBackend file or database path (overrides config)\n")

	fmt.Fprintf(os.Stderr, "\nOperations:\n")
	fmt.Fprintf(os.Stderr, "  -write LEVEL MESSAGE\n\tPersist one entry\n")
	fmt.Fprintf(os.Stderr, "  -find-level string\n\tReturn entries with exactly this level\n")
	fmt.Fprintf(os.Stderr, "  -since string -until string\n\tReturn entries in an inclusive RFC 3339 time range\n")
	fmt.Fprintf(os.Stderr, "  -group\n\tGroup all entries by level\n")
	fmt.Fprintf(os.Stderr, "  -find-text string [-case]\n\tReturn entries whose message contains the text\n")
	fmt.Fprintf(os.Stderr, "  -sort string\n\tReturn all entries sorted by time: asc or desc\n")

	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  # Write an entry to the configured backend\n")
	fmt.Fprintf(os.Stderr, "  %s -write ERROR \"connection lost\"\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Write to an explicit CSV backend\n")
	fmt.Fprintf(os.Stderr, "  %s -backend csv -path app.csv -write INFO \"started\"\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Query by level\n")
	fmt.Fprintf(os.Stderr, "  %s -backend sqlite -path app.db -find-level ERROR\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Query a time range\n")
	fmt.Fprintf(os.Stderr, "  %s -since 2024-06-01T00:00:00Z -until 2024-06-02T00:00:00Z\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "Environment Variables:\n")
	fmt.Fprintf(os.Stderr, "  PROFLOG_CONFIG_FILE  Config file path\n")
	fmt.Fprintf(os.Stderr, "  PROFLOG_CONFIG_DIR   Config directory\n")
}

func parseFlags() error {
	flag.Parse()

	if *logLevel != "" {
		validLevels := map[string]bool{
			"debug": true, "info": true, "warn": true, "error": true,
		}
		if !validLevels[*logLevel] {
			return fmt.Errorf("invalid log-level: %s (valid: debug, info, warn, error)", *logLevel)
		}
	}

	if *backendType != "" {
		validBackends := map[string]bool{
			"text": true, "json": true, "csv": true, "sqlite": true,
		}
		if !validBackends[*backendType] {
			return fmt.Errorf("invalid backend: %s (valid: text, json, csv, sqlite)", *backendType)
		}
	}

	if *sortOrder != "" && *sortOrder != "asc" && *sortOrder != "desc" {
		return fmt.Errorf("invalid sort: %s (valid: asc, desc)", *sortOrder)
	}

	if *doWrite && flag.NArg() != 2 {
		return fmt.Errorf("-write requires exactly two arguments: LEVEL MESSAGE")
	}

	return nil
}
