package main

import (
	"fmt"
	"os"

	"github.com/unte2002/NL2PL/internal/config"
	"github.com/unte2002/NL2PL/internal/logging"
	"github.com/unte2002/NL2PL/internal/parser"
	"github.com/unte2002/NL2PL/internal/snapshot"
)

// newLogger creates a logger honoring the --log-level flag.
func newLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ParseLevel(logLevelFlag),
	})
}

// setup builds the per-run logger and config. Config loading itself is
// logged with a flag-level logger; once the config is known, its logging
// group applies unless --log-level was given explicitly.
func setup() (*logging.Logger, *config.Config) {
	logger := newLogger()
	cfg := loadConfigOrDefault(logger)

	if f := rootCmd.PersistentFlags().Lookup("log-level"); f != nil && !f.Changed {
		logger = logging.NewLogger(logging.Config{
			Format: logging.ParseFormat(cfg.Logging.Format),
			Level:  logging.ParseLevel(cfg.Logging.Level),
		})
	}

	return logger, cfg
}

// loadConfigOrDefault loads .nl2pl/config.json from the working
// directory. A missing, broken or invalid config falls back to the
// defaults so commands always run.
func loadConfigOrDefault(logger *logging.Logger) *config.Config {
	cwd, err := os.Getwd()
	if err != nil {
		return config.DefaultConfig()
	}

	cfg, err := config.LoadConfig(cwd)
	if err != nil {
		logger.Warn("Failed to load config, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return config.DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		logger.Warn("Invalid config, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return config.DefaultConfig()
	}

	return cfg
}

// newParser builds a parser honoring the configured identifier start.
func newParser(cfg *config.Config) *parser.Parser {
	return parser.New(parser.WithIDStart(cfg.Parse.IDStart))
}

// mustLoadSnapshot parses the spec file at path or exits. Every call
// gets a fresh parser so identical text always yields identical
// identifiers.
func mustLoadSnapshot(path string, cfg *config.Config) *snapshot.Snapshot {
	snap, err := snapshot.Load(path, newParser(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return snap
}
