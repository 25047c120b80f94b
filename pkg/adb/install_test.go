package adb

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestInstallFlags(t *testing.T) {
	tests := []struct {
		name string
		opts InstallOptions
		want string
	}{
		{"plain", InstallOptions{}, "install app.apk"},
		{"replace", InstallOptions{Replace: true}, "install -r app.apk"},
		{"downgrade", InstallOptions{Replace: true, Downgrade: true}, "install -r -d app.apk"},
		{"grant", InstallOptions{GrantPermissions: true}, "install -g app.apk"},
		{"test only", InstallOptions{AllowTest: true}, "install -t app.apk"},
		{"sdcard", InstallOptions{ToSDCard: true}, "install -s app.apk"},
		{
			"everything",
			InstallOptions{Replace: true, Downgrade: true, GrantPermissions: true, AllowTest: true, ToSDCard: true},
			"install -r -d -g -t -s app.apk",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, f := newTestClient(t)
			f.responses[tt.want] = "Success\n"

			if err := c.Install(context.Background(), "app.apk", tt.opts); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.lastCall() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, f.lastCall())
			}
		})
	}
}

func TestInstallAutoGrant(t *testing.T) {
	tests := []struct {
		name       string
		sdkVersion string
		want       string
	}{
		{"modern device gets -g", "23", "install -g app.apk"},
		{"old device does not", "19", "install app.apk"},
		{"unknown version does not", "garbage", "install app.apk"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, f := newTestClient(t)
			f.responses["shell getprop ro.build.version.sdk"] = tt.sdkVersion + "\n"
			f.responses[tt.want] = "Success\n"

			err := c.Install(context.Background(), "app.apk", InstallOptions{AutoGrantPermissions: true})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.lastCall() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, f.lastCall())
			}
		})
	}
}

func TestInstallFailure(t *testing.T) {
	c, f := newTestClient(t)
	f.responses["install app.apk"] = strings.Join([]string{
		"Performing Streamed Install",
		"Failure [INSTALL_FAILED_ALREADY_EXISTS: Attempt to re-install without first uninstalling]",
	}, "\n")

	err := c.Install(context.Background(), "app.apk", InstallOptions{})

	var installErr *InstallError
	if !errors.As(err, &installErr) {
		t.Fatalf("expected *InstallError, got %v", err)
	}
	if installErr.Op != "install" {
		t.Errorf("expected op install, got %q", installErr.Op)
	}
	if !strings.HasPrefix(installErr.Reason, "INSTALL_FAILED_ALREADY_EXISTS") {
		t.Errorf("expected bracketed reason, got %q", installErr.Reason)
	}
}

func TestInstallFailureReason(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"Failure [INSTALL_FAILED_OLDER_SDK]", "INSTALL_FAILED_OLDER_SDK"},
		{"Failure [INSTALL_FAILED_TEST_ONLY: installPackageLI]", "INSTALL_FAILED_TEST_ONLY: installPackageLI"},
		{"Failure DELETE_FAILED_INTERNAL_ERROR", "DELETE_FAILED_INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		if got := installFailureReason(tt.line); got != tt.want {
			t.Errorf("installFailureReason(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestUninstallDefaultPackage(t *testing.T) {
	c, f := newTestClient(t, WithDefaultPackage("com.example.app"))
	f.responses["uninstall com.example.app"] = "Success\n"

	if err := c.Uninstall(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUninstallNoPackage(t *testing.T) {
	c, _ := newTestClient(t)
	if err := c.Uninstall(context.Background(), ""); !errors.Is(err, ErrPackageNotSet) {
		t.Errorf("expected ErrPackageNotSet, got %v", err)
	}
}

func TestPackages(t *testing.T) {
	c, f := newTestClient(t)
	f.responses["shell pm list packages"] = `package:com.android.settings
package:com.example.app
garbage line
`

	pkgs, err := c.Packages(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pkgs) != 2 {
		t.Fatalf("expected 2 packages, got %v", pkgs)
	}
	if pkgs[1] != "com.example.app" {
		t.Errorf("expected stripped package name, got %q", pkgs[1])
	}
}

func TestIsInstalled(t *testing.T) {
	c, f := newTestClient(t)
	f.responses["shell pm list packages"] = "package:com.example.app\n"

	installed, err := c.IsInstalled(context.Background(), "com.example.app")
	if err != nil || !installed {
		t.Errorf("expected installed, got %v (%v)", installed, err)
	}

	installed, err = c.IsInstalled(context.Background(), "com.missing.app")
	if err != nil || installed {
		t.Errorf("expected not installed, got %v (%v)", installed, err)
	}
}
