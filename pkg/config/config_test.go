package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "droidctl.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	// Point the default location at an empty directory so a developer's real
	// config cannot leak into the test.
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CommandTimeout != DefaultCommandTimeout {
		t.Errorf("expected default command timeout, got %v", cfg.CommandTimeout)
	}
	if cfg.Logcat.Format != DefaultLogcatFormat {
		t.Errorf("expected default format, got %q", cfg.Logcat.Format)
	}
	if cfg.Logcat.ReadTimeout != DefaultReadTimeout {
		t.Errorf("expected default read timeout, got %v", cfg.Logcat.ReadTimeout)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
sdk_path: /opt/android-sdk
serial: emulator-5554
package: com.example.app
command_timeout: 10s
logcat:
  format: brief
  read_timeout: 5s
  exit_lines:
    - "FATAL EXCEPTION"
    - "Force finishing activity"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SDKPath != "/opt/android-sdk" || cfg.Serial != "emulator-5554" {
		t.Errorf("unexpected device config: %+v", cfg)
	}
	if cfg.Package != "com.example.app" {
		t.Errorf("unexpected package: %q", cfg.Package)
	}
	if cfg.CommandTimeout != 10*time.Second {
		t.Errorf("unexpected command timeout: %v", cfg.CommandTimeout)
	}
	if cfg.Logcat.Format != "brief" || cfg.Logcat.ReadTimeout != 5*time.Second {
		t.Errorf("unexpected logcat config: %+v", cfg.Logcat)
	}
	if len(cfg.Logcat.ExitLines) != 2 {
		t.Errorf("unexpected exit lines: %v", cfg.Logcat.ExitLines)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("an explicitly given missing file should be an error")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "serial: [unclosed\n")
	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "sdk_path: /from/file\nserial: file-serial\n")

	t.Setenv(EnvSDK, "/from/env")
	t.Setenv(EnvSerial, "env-serial")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SDKPath != "/from/env" {
		t.Errorf("environment should override file, got %q", cfg.SDKPath)
	}
	if cfg.Serial != "env-serial" {
		t.Errorf("environment should override file, got %q", cfg.Serial)
	}
}

func TestValidateNegativeTimeouts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CommandTimeout = -time.Second
	if err := Validate(cfg); err == nil {
		t.Error("negative command timeout should be rejected")
	}

	cfg = DefaultConfig()
	cfg.Logcat.ReadTimeout = -time.Second
	if err := Validate(cfg); err == nil {
		t.Error("negative read timeout should be rejected")
	}
}

func TestValidateCompilesExitLines(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logcat.ExitLines = []string{"FATAL EXCEPTION", "crash [code"}

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	compiled := cfg.Logcat.CompiledExitLines()
	if len(compiled) != 2 {
		t.Fatalf("expected 2 compiled patterns, got %d", len(compiled))
	}
	if !compiled[0].MatchString("E/AndroidRuntime: FATAL EXCEPTION: main") {
		t.Error("regex pattern should match")
	}
	// "[code" is invalid regex syntax and must fall back to a literal match.
	if !compiled[1].MatchString("app crash [code 11]") {
		t.Error("invalid regex should match as a literal")
	}
}

func TestValidateRejectsEmptyExitLine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logcat.ExitLines = []string{""}
	if err := Validate(cfg); err == nil {
		t.Error("empty exit line pattern should be rejected")
	}
}

func TestValidateDefaultsEmptyFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logcat.Format = ""
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Logcat.Format != DefaultLogcatFormat {
		t.Errorf("expected format default, got %q", cfg.Logcat.Format)
	}
}
