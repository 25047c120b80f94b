package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values for configuration.
const (
	DefaultLogcatFormat   = "threadtime"
	DefaultReadTimeout    = 3 * time.Second
	DefaultCommandTimeout = 30 * time.Second
	DefaultFileName       = ".droidctl.yaml"
)

// Environment variable names.
const (
	EnvSDK    = "DROIDCTL_SDK"
	EnvSerial = "DROIDCTL_SERIAL"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		CommandTimeout: DefaultCommandTimeout,
		Logcat: LogcatConfig{
			Format:      DefaultLogcatFormat,
			ReadTimeout: DefaultReadTimeout,
		},
	}
}

// DefaultPath returns the per-user config file location, or an empty string
// when the home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultFileName)
}

// applyEnvironmentOverrides applies environment variable overrides.
func (c *Config) applyEnvironmentOverrides() {
	if sdk := os.Getenv(EnvSDK); sdk != "" {
		c.SDKPath = sdk
	}
	if serial := os.Getenv(EnvSerial); serial != "" {
		c.Serial = serial
	}
}
