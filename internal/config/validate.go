package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable. The TVDB API key is
// deliberately not required here; it is only checked when a command
// actually reaches for the remote service.
func (c *Config) Validate() error {
	if err := c.validateRename(); err != nil {
		return err
	}
	if err := c.validateTVDB(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRename() error {
	hasExt := false
	for _, ext := range c.Rename.VideoExtensions {
		if ext != "" {
			hasExt = true
		}
	}
	if !hasExt {
		return fmt.Errorf("rename.video_extensions must list at least one extension")
	}

	hasName := false
	for _, name := range c.Rename.SpecFileNames {
		if name == "" {
			continue
		}
		if strings.ContainsAny(name, "/\\") {
			return fmt.Errorf("rename.spec_file_names entry %q must be a bare filename", name)
		}
		hasName = true
	}
	if !hasName {
		return fmt.Errorf("rename.spec_file_names must list at least one filename")
	}

	if c.Rename.StateDirName == "" {
		return fmt.Errorf("rename.state_dir_name must not be empty")
	}
	if strings.ContainsAny(c.Rename.StateDirName, "/\\") {
		return fmt.Errorf("rename.state_dir_name %q must be a bare directory name", c.Rename.StateDirName)
	}
	return nil
}

func (c *Config) validateTVDB() error {
	if c.TVDB.BaseURL == "" {
		return nil
	}
	parsed, err := url.Parse(c.TVDB.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("tvdb.base_url %q is not a valid URL", c.TVDB.BaseURL)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not a recognized level", c.Logging.Level)
	}
	return nil
}
