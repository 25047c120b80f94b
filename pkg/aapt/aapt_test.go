package aapt

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const badgingOutput = `package: name='com.example.app' versionCode='42' versionName='1.2.3' platformBuildVersionName='13'
sdkVersion:'21'
targetSdkVersion:'33'
application-label:'Example App'
application: label='Example App' icon='res/mipmap/ic_launcher.png'
launchable-activity: name='com.example.app.MainActivity'  label='Example App' icon=''
native-code: 'arm64-v8a' 'armeabi-v7a'
`

func newTestTool(t *testing.T, output string, runErr error) *Tool {
	t.Helper()

	bin := filepath.Join(t.TempDir(), "aapt")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("failed to create fake aapt: %v", err)
	}

	tool, err := New(bin, WithRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte(output), runErr
	}))
	if err != nil {
		t.Fatalf("failed to create tool: %v", err)
	}
	return tool
}

func TestNewMissingBinary(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "no-such-aapt")); err == nil {
		t.Error("expected an error for a missing binary")
	}
}

func TestBadging(t *testing.T) {
	tool := newTestTool(t, badgingOutput, nil)

	info, err := tool.Badging(context.Background(), "app.apk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if info.Package != "com.example.app" {
		t.Errorf("expected package name, got %q", info.Package)
	}
	if info.VersionCode != "42" || info.VersionName != "1.2.3" {
		t.Errorf("unexpected version fields: %+v", info)
	}
	if info.SDKVersion != "21" || info.TargetSDK != "33" {
		t.Errorf("unexpected sdk fields: %+v", info)
	}
	if info.Label != "Example App" {
		t.Errorf("unexpected label: %q", info.Label)
	}
	if len(info.NativeCode) != 2 || info.NativeCode[0] != "arm64-v8a" {
		t.Errorf("unexpected native code: %v", info.NativeCode)
	}
}

func TestBadgingNoPackageEntry(t *testing.T) {
	tool := newTestTool(t, "sdkVersion:'21'\n", nil)

	if _, err := tool.Badging(context.Background(), "app.apk"); err == nil {
		t.Error("expected an error when no package entry is present")
	}
}

func TestBadgingValue(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"sdkVersion:'21'", "21"},
		{"application-label:'With ''quotes'", "With ''quotes"},
		{"sdkVersion:", ""},
	}
	for _, tt := range tests {
		if got := badgingValue(tt.line); got != tt.want {
			t.Errorf("badgingValue(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
