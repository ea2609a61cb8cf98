package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"seasonfix/internal/config"
	"seasonfix/internal/logging"
	"seasonfix/internal/tvdb"
)

type commandContext struct {
	configFlag    *string
	directoryFlag *string
	logLevelFlag  *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, directoryFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		directoryFlag: directoryFlag,
		logLevelFlag:  logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		level := cfg.Logging.Level
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			level = strings.TrimSpace(*c.logLevelFlag)
		}
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:  level,
			Format: cfg.Logging.Format,
		})
	})
	return c.logger, c.loggerErr
}

// workingDir resolves the --directory flag to an absolute, existing directory.
func (c *commandContext) workingDir() (string, error) {
	dir := "."
	if c.directoryFlag != nil && strings.TrimSpace(*c.directoryFlag) != "" {
		dir = strings.TrimSpace(*c.directoryFlag)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("directory %s does not exist", abs)
		}
		return "", fmt.Errorf("inspect directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

// statePaths derives the per-directory state dir and lock file locations.
func (c *commandContext) statePaths(dir string, cfg *config.Config) (stateDir, lockPath string) {
	stateDir = filepath.Join(dir, cfg.Rename.StateDirName)
	return stateDir, filepath.Join(stateDir, "run.lock")
}

// metadataClient builds the remote episode metadata client, failing with a
// configuration hint when no API token is set.
func (c *commandContext) metadataClient(cfg *config.Config) (*tvdb.Client, error) {
	if cfg.TVDB.APIKey == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/seasonfix/config.toml"
		}
		return nil, fmt.Errorf("tvdb.api_key is required for remote lookups; set it in %s (create with 'seasonfix config init')", defaultPath)
	}
	return tvdb.New(cfg.TVDB.APIKey, cfg.TVDB.BaseURL, cfg.TVDB.Language)
}
