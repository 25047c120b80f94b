package adb

import (
	"context"
	"os/exec"
	"strings"
)

// RunFunc executes a command and returns its combined stdout and stderr.
// The output is returned even when the command exits non-zero.
type RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func runExec(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// command builds the full argument list for an adb invocation, injecting
// -s <serial> when a device is pinned.
func (c *Client) command(args ...string) []string {
	var full []string
	if c.serial != "" {
		full = append(full, "-s", c.serial)
	}
	return append(full, args...)
}

// adb runs an adb command and returns its cleaned output lines. adb reports
// many failures on stdout with a zero exit, so output parsing stays with the
// callers; a non-nil error here means the process itself failed to run.
func (c *Client) adb(ctx context.Context, args ...string) ([]string, error) {
	out, err := c.run(ctx, c.bin, c.command(args...)...)
	lines := cleanOutput(out)
	if err != nil {
		if len(lines) > 0 {
			return lines, nil
		}
		return nil, err
	}
	return lines, nil
}

// cleanOutput decodes raw command output into trimmed, non-blank lines.
// Invalid byte sequences are replaced rather than rejected.
func cleanOutput(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(strings.ToValidUTF8(string(raw), "�"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
