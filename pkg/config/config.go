package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file. An empty path falls back to
// the per-user default location; a missing file there is not an error and
// yields the defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// No per-user config; defaults apply.
		default:
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors and compiles the exit line
// patterns so bad regexes surface at load time, not mid-watch.
func Validate(cfg *Config) error {
	if cfg.CommandTimeout < 0 {
		return errors.New("command_timeout: must not be negative")
	}
	if cfg.Logcat.ReadTimeout < 0 {
		return errors.New("logcat.read_timeout: must not be negative")
	}
	if cfg.Logcat.Format == "" {
		cfg.Logcat.Format = DefaultLogcatFormat
	}

	cfg.Logcat.compiledExitLines = cfg.Logcat.compiledExitLines[:0]
	for i, pattern := range cfg.Logcat.ExitLines {
		if pattern == "" {
			return fmt.Errorf("logcat.exit_lines[%d]: pattern must not be empty", i)
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			// Not valid regex syntax; matched as a literal, same as
			// the accumulator does.
			re = regexp.MustCompile(regexp.QuoteMeta(pattern))
		}
		cfg.Logcat.compiledExitLines = append(cfg.Logcat.compiledExitLines, re)
	}
	return nil
}
