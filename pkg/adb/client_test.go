package adb

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// fakeRunner resolves commands from a canned map keyed by the joined
// argument list, and records every call. Safe for concurrent use since
// DeviceInfo fetches properties in parallel.
type fakeRunner struct {
	mu        sync.Mutex
	calls     []string
	responses map[string]string
	errs      map[string]error
}

func (f *fakeRunner) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	key := strings.Join(args, " ")
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()
	return []byte(f.responses[key]), f.errs[key]
}

func (f *fakeRunner) lastCall() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func newTestClient(t *testing.T, opts ...Option) (*Client, *fakeRunner) {
	t.Helper()

	bin := filepath.Join(t.TempDir(), "adb")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("failed to create fake adb: %v", err)
	}

	f := &fakeRunner{
		responses: make(map[string]string),
		errs:      make(map[string]error),
	}
	c, err := New(bin, append(opts, WithRunner(f.run))...)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c, f
}

func TestNewMissingBinary(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "no-such-adb")); err == nil {
		t.Error("expected an error for a missing binary")
	}
}

func TestCommandInjectsSerial(t *testing.T) {
	c, f := newTestClient(t, WithSerial("emulator-5554"))
	f.responses["-s emulator-5554 shell getprop ro.product.model"] = "Pixel 4\n"

	v, err := c.Prop(context.Background(), "ro.product.model")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "Pixel 4" {
		t.Errorf("expected %q, got %q", "Pixel 4", v)
	}
}

func TestAdbKeepsOutputOnExitError(t *testing.T) {
	// adb reports most failures on stdout with a non-zero exit; the output
	// is what callers parse, so it wins over the exit error.
	c, f := newTestClient(t)
	f.responses["uninstall com.example.app"] = "Failure [DELETE_FAILED_INTERNAL_ERROR]\n"
	f.errs["uninstall com.example.app"] = errors.New("exit status 1")

	err := c.Uninstall(context.Background(), "com.example.app")

	var installErr *InstallError
	if !errors.As(err, &installErr) {
		t.Fatalf("expected *InstallError, got %v", err)
	}
	if installErr.Reason != "DELETE_FAILED_INTERNAL_ERROR" {
		t.Errorf("expected pm reason, got %q", installErr.Reason)
	}
}

func TestResolvePackageFallback(t *testing.T) {
	c, _ := newTestClient(t, WithDefaultPackage("com.example.app"))

	pkg, err := c.resolvePackage("")
	if err != nil || pkg != "com.example.app" {
		t.Errorf("expected default package, got %q (%v)", pkg, err)
	}

	pkg, err = c.resolvePackage("com.other.app")
	if err != nil || pkg != "com.other.app" {
		t.Errorf("explicit package should win, got %q (%v)", pkg, err)
	}
}

func TestResolvePackageUnset(t *testing.T) {
	c, _ := newTestClient(t)
	if _, err := c.resolvePackage(""); !errors.Is(err, ErrPackageNotSet) {
		t.Errorf("expected ErrPackageNotSet, got %v", err)
	}
}

func TestCleanOutput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"blank lines dropped", "a\r\n\r\nb\r\n", []string{"a", "b"}},
		{"whitespace trimmed", "  a  \n", []string{"a"}},
		{"invalid utf8 replaced", "a\xffb\n", []string{"a�b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanOutput([]byte(tt.raw))
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("line %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestLogcatInheritsSerial(t *testing.T) {
	c, _ := newTestClient(t, WithSerial("emulator-5554"))
	if s := c.Logcat(); s == nil {
		t.Fatal("expected a session")
	}
}
