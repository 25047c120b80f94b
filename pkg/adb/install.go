package adb

import (
	"context"
	"fmt"
	"strings"
)

// runtimePermissionAPI is the SDK version above which pm understands the
// install -g flag (grant runtime permissions).
const runtimePermissionAPI = 22

// InstallOptions mirror the useful adb install flags.
type InstallOptions struct {
	// Replace allows installing over an existing package (-r).
	Replace bool

	// Downgrade allows a version downgrade (-d, debuggable packages only).
	Downgrade bool

	// GrantPermissions grants all runtime permissions at install time (-g).
	// Older devices reject the flag; prefer AutoGrantPermissions unless the
	// device version is known in advance.
	GrantPermissions bool

	// AutoGrantPermissions queries the device's SDK version and adds -g
	// only where it is supported.
	AutoGrantPermissions bool

	// AllowTest permits packages marked test-only (-t). Debug builds from
	// the IDE typically carry that flag.
	AllowTest bool

	// ToSDCard installs on external storage (-s).
	ToSDCard bool
}

// Install installs an apk file on the device. A package manager failure is
// reported as an *InstallError carrying the pm reason.
func (c *Client) Install(ctx context.Context, apk string, opts InstallOptions) error {
	args := []string{"install"}
	if opts.Replace {
		args = append(args, "-r")
	}
	if opts.Downgrade {
		args = append(args, "-d")
	}
	switch {
	case opts.GrantPermissions:
		args = append(args, "-g")
	case opts.AutoGrantPermissions:
		v, err := c.SDKVersion(ctx)
		if err != nil {
			return err
		}
		if v > runtimePermissionAPI {
			args = append(args, "-g")
		}
	}
	if opts.AllowTest {
		args = append(args, "-t")
	}
	if opts.ToSDCard {
		args = append(args, "-s")
	}
	args = append(args, apk)

	lines, err := c.adb(ctx, args...)
	if err != nil {
		return fmt.Errorf("installing %s: %w", apk, err)
	}
	return checkInstallResult(lines, "install")
}

// Uninstall removes a package from the device. An empty package falls back
// to the client default.
func (c *Client) Uninstall(ctx context.Context, pkg string) error {
	pkg, err := c.resolvePackage(pkg)
	if err != nil {
		return err
	}
	lines, err := c.adb(ctx, "uninstall", pkg)
	if err != nil {
		return fmt.Errorf("uninstalling %s: %w", pkg, err)
	}
	return checkInstallResult(lines, "uninstall")
}

// Packages lists installed package names via pm list packages.
func (c *Client) Packages(ctx context.Context) ([]string, error) {
	lines, err := c.Shell(ctx, []string{"pm", "list", "packages"}, ShellOptions{})
	if err != nil {
		return nil, err
	}
	var pkgs []string
	for _, line := range lines {
		if strings.HasPrefix(line, "package:") {
			pkgs = append(pkgs, strings.TrimPrefix(line, "package:"))
		}
	}
	return pkgs, nil
}

// IsInstalled reports whether pkg (or the client default) is installed.
func (c *Client) IsInstalled(ctx context.Context, pkg string) (bool, error) {
	pkg, err := c.resolvePackage(pkg)
	if err != nil {
		return false, err
	}
	pkgs, err := c.Packages(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range pkgs {
		if p == pkg {
			return true, nil
		}
	}
	return false, nil
}

// checkInstallResult scans pm output for the Success/Failure verdict.
func checkInstallResult(lines []string, op string) error {
	for _, line := range lines {
		if strings.Contains(line, "Success") {
			return nil
		}
		if strings.Contains(line, "Failure") {
			return &InstallError{Op: op, Reason: installFailureReason(line)}
		}
	}
	return nil
}

// installFailureReason extracts the reason from lines like
// "Failure [INSTALL_FAILED_ALREADY_EXISTS]".
func installFailureReason(line string) string {
	if open := strings.Index(line, "["); open >= 0 {
		if end := strings.LastIndex(line, "]"); end > open {
			return line[open+1 : end]
		}
	}
	fields := strings.Fields(line)
	return fields[len(fields)-1]
}
