package adb

import (
	"context"
	"fmt"
)

// runAsMinAPI is the first API level where run-as is generally usable.
const runAsMinAPI = 21

// ShellOptions controls how a shell command is executed on the device.
type ShellOptions struct {
	// RunAs executes the command with the identity of the client's default
	// package (run-as). Debuggable builds only; needs API >= 21.
	RunAs bool

	// SkipVersionCheck skips the API level probe before run-as. Saves one
	// round trip when the device version is known to be recent enough.
	SkipVersionCheck bool
}

// Shell runs a command in the device shell and returns the cleaned output.
func (c *Client) Shell(ctx context.Context, args []string, opts ShellOptions) ([]string, error) {
	full := []string{"shell"}
	if opts.RunAs {
		pkg, err := c.resolvePackage("")
		if err != nil {
			return nil, err
		}
		if !opts.SkipVersionCheck {
			v, err := c.SDKVersion(ctx)
			if err != nil {
				return nil, err
			}
			if v < runAsMinAPI {
				return nil, &EnvironmentError{Need: runAsMinAPI, Have: v}
			}
		}
		full = append(full, "run-as", pkg)
	}
	full = append(full, args...)

	lines, err := c.adb(ctx, full...)
	if err != nil {
		return nil, fmt.Errorf("shell %v: %w", args, err)
	}
	return lines, nil
}

// StartActivity launches an activity via am start -n <package>/<activity>.
// An empty package falls back to the client default.
func (c *Client) StartActivity(ctx context.Context, pkg, activity string, extra []string) error {
	pkg, err := c.resolvePackage(pkg)
	if err != nil {
		return err
	}
	args := []string{"am", "start", "-n", pkg + "/" + activity}
	args = append(args, extra...)
	if _, err := c.Shell(ctx, args, ShellOptions{}); err != nil {
		return fmt.Errorf("starting %s/%s: %w", pkg, activity, err)
	}
	return nil
}
