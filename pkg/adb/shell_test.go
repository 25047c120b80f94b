package adb

import (
	"context"
	"errors"
	"testing"
)

func TestShell(t *testing.T) {
	c, f := newTestClient(t)
	f.responses["shell ls /sdcard"] = "Download\nDCIM\n"

	lines, err := c.Shell(context.Background(), []string{"ls", "/sdcard"}, ShellOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "Download" {
		t.Errorf("unexpected output: %v", lines)
	}
}

func TestShellRunAs(t *testing.T) {
	c, f := newTestClient(t, WithDefaultPackage("com.example.app"))
	f.responses["shell getprop ro.build.version.sdk"] = "29\n"
	f.responses["shell run-as com.example.app ls files"] = "state.db\n"

	lines, err := c.Shell(context.Background(), []string{"ls", "files"}, ShellOptions{RunAs: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 1 || lines[0] != "state.db" {
		t.Errorf("unexpected output: %v", lines)
	}
}

func TestShellRunAsOldDevice(t *testing.T) {
	c, f := newTestClient(t, WithDefaultPackage("com.example.app"))
	f.responses["shell getprop ro.build.version.sdk"] = "19\n"

	_, err := c.Shell(context.Background(), []string{"ls"}, ShellOptions{RunAs: true})

	var envErr *EnvironmentError
	if !errors.As(err, &envErr) {
		t.Fatalf("expected *EnvironmentError, got %v", err)
	}
	if envErr.Need != runAsMinAPI || envErr.Have != 19 {
		t.Errorf("unexpected levels in error: %+v", envErr)
	}
}

func TestShellRunAsSkipVersionCheck(t *testing.T) {
	c, f := newTestClient(t, WithDefaultPackage("com.example.app"))
	f.responses["shell run-as com.example.app id"] = "uid=10123\n"

	_, err := c.Shell(context.Background(), []string{"id"}, ShellOptions{RunAs: true, SkipVersionCheck: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// No getprop round trip.
	if len(f.calls) != 1 {
		t.Errorf("expected 1 call, got %v", f.calls)
	}
}

func TestShellRunAsNoPackage(t *testing.T) {
	c, _ := newTestClient(t)
	_, err := c.Shell(context.Background(), []string{"ls"}, ShellOptions{RunAs: true})
	if !errors.Is(err, ErrPackageNotSet) {
		t.Errorf("expected ErrPackageNotSet, got %v", err)
	}
}

func TestStartActivity(t *testing.T) {
	c, f := newTestClient(t, WithDefaultPackage("com.example.app"))
	f.responses["shell am start -n com.example.app/.MainActivity --ez fast true"] = "Starting: Intent\n"

	err := c.StartActivity(context.Background(), "", ".MainActivity", []string{"--ez", "fast", "true"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStartActivityExplicitPackage(t *testing.T) {
	c, f := newTestClient(t)
	f.responses["shell am start -n com.other.app/.Main"] = "Starting: Intent\n"

	if err := c.StartActivity(context.Background(), "com.other.app", ".Main", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
