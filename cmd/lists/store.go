package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/amonks/lists/internal/config"
	"github.com/amonks/lists/internal/paths"
	"github.com/amonks/lists/tasklist"
)

// loadConfig reads configuration for the working directory, honoring the
// global --config and --dir flags.
func loadConfig() (*config.Config, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadProject(cwd, configPath)
	if err != nil {
		return nil, err
	}

	if tasksDir != "" {
		cfg.Store.Dir = paths.ResolveRelative(cwd, tasksDir)
	}
	return cfg, nil
}

// openStore opens the configured store. Warnings go to logger; nil discards
// them.
func openStore(cfg *config.Config, logger *log.Logger) (*tasklist.Store, error) {
	backend, err := cfg.Store.OpenBackend()
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return tasklist.New(backend, tasklist.Options{
		Lists:            cfg.Lists,
		KeepUnreferenced: cfg.Store.KeepUnreferenced,
		Logger:           logger,
	}), nil
}

// loadStore combines loadConfig and openStore for the one-shot commands.
func loadStore() (*tasklist.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openStore(cfg, nil)
}

func newLogger() *log.Logger {
	return log.New(os.Stderr, "lists: ", log.LstdFlags)
}
