// Package config provides configuration loading and validation for droidctl.
package config

import (
	"regexp"
	"time"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// SDKPath is the Android SDK root. Empty means the ANDROID_HOME /
	// ANDROID_SDK_ROOT environment chain.
	SDKPath string `yaml:"sdk_path,omitempty"`

	// Serial pins all commands to one device (adb -s).
	Serial string `yaml:"serial,omitempty"`

	// Package is the default package name for operations that take one.
	Package string `yaml:"package,omitempty"`

	// CommandTimeout bounds every one-shot adb invocation.
	CommandTimeout time.Duration `yaml:"command_timeout,omitempty"`

	Logcat LogcatConfig `yaml:"logcat,omitempty"`
}

// LogcatConfig configures logcat sessions and accumulation.
type LogcatConfig struct {
	// Format is the logcat -v output format.
	Format string `yaml:"format,omitempty"`

	// ExitLines is an always-stop pattern set merged into every
	// accumulation's stop patterns. Useful for crash markers that should
	// end a watch immediately instead of letting it run into the timeout.
	ExitLines []string `yaml:"exit_lines,omitempty"`

	// ReadTimeout is the default drain window for logcat read.
	ReadTimeout time.Duration `yaml:"read_timeout,omitempty"`

	// compiledExitLines is populated during validation.
	compiledExitLines []*regexp.Regexp
}

// CompiledExitLines returns the pre-compiled exit line patterns.
func (l *LogcatConfig) CompiledExitLines() []*regexp.Regexp {
	return l.compiledExitLines
}
