// Package plugins discovers and runs external droidctl subcommands.
// An unknown command name resolves to a droidctl-<name> binary looked up
// next to the droidctl executable, under ~/.droidctl/plugins/, and finally
// on PATH, the way kubectl and git resolve theirs.
package plugins

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// KnownPlugins maps plugin command names to a note on where to obtain them,
// surfaced when the binary is missing.
var KnownPlugins = map[string]string{}

// ErrPluginNotFound is returned when no plugin binary can be located.
var ErrPluginNotFound = errors.New("plugin not found")

// FindPlugin resolves command to a droidctl-<command> binary and returns its
// full path. Locations next to the droidctl binary win over the per-user
// plugin directory, which wins over PATH.
func FindPlugin(command string) (string, error) {
	name := "droidctl-" + command

	var candidates []string
	if execPath, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(execPath), name))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".droidctl", "plugins", name))
	}
	for _, candidate := range candidates {
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}
	return "", ErrPluginNotFound
}

// Execute runs the plugin binary with the caller's stdio attached and
// returns its exit code.
func Execute(pluginPath string, args []string) int {
	cmd := exec.Command(pluginPath, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		// The process never ran (missing interpreter, permissions, ...).
		fmt.Fprintf(os.Stderr, "Error executing plugin: %v\n", err)
		return 1
	}
	return 0
}

// FormatNotFoundError explains an unknown command in terms of the plugin
// lookup, including where to obtain known plugins.
func FormatNotFoundError(command string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "unknown command %q for \"droidctl\"\n", command)
	if info, ok := KnownPlugins[command]; ok {
		fmt.Fprintf(&sb, "\n%q is available as a plugin.\n%s\n", command, info)
	}

	fmt.Fprintf(&sb, "\nExternal subcommands are looked up as droidctl-%s in:\n", command)
	sb.WriteString("  - the directory holding the droidctl binary\n")
	sb.WriteString("  - ~/.droidctl/plugins/\n")
	sb.WriteString("  - PATH\n")
	sb.WriteString("\nRun 'droidctl --help' for the built-in commands.")

	return sb.String()
}

// isExecutable reports whether path is a regular file with an execute bit.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return info.Mode()&0111 != 0
}
