// Package cli provides the command-line interface for droidctl.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/droidctl/droidctl/internal/cli/commands"
	"github.com/droidctl/droidctl/internal/cli/plugins"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	// Check if the first argument might be a plugin command
	if len(os.Args) > 1 {
		potentialCommand := os.Args[1]
		// Skip flags (start with -)
		if len(potentialCommand) > 0 && potentialCommand[0] != '-' {
			// Check if it's a known built-in command
			if !isBuiltinCommand(rootCmd, potentialCommand) {
				// Try to find and execute a plugin
				if pluginPath, err := plugins.FindPlugin(potentialCommand); err == nil {
					// Plugin found - execute it with remaining args
					return plugins.Execute(pluginPath, os.Args[2:])
				}
				// Plugin not found - will fall through to Cobra which will show error
			}
		}
	}

	if err := rootCmd.Execute(); err != nil {
		// Check if this was an unknown command that could be a plugin
		if len(os.Args) > 1 {
			potentialCommand := os.Args[1]
			if len(potentialCommand) > 0 && potentialCommand[0] != '-' {
				if !isBuiltinCommand(rootCmd, potentialCommand) {
					// Show helpful plugin error message
					_, _ = fmt.Fprintln(os.Stderr, plugins.FormatNotFoundError(potentialCommand))
					return 2
				}
			}
		}
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// isBuiltinCommand checks if a command name is a built-in cobra command.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	// Also check for special commands like help and completion
	return name == "help" || name == "completion"
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "droidctl",
		Short: "Control Android devices from the command line",
		Long: `droidctl wraps the Android SDK's adb and aapt tools behind one CLI.

It covers the day-to-day device loop:
  - Install, uninstall and launch apps
  - Push, pull and inspect files on the device
  - Read device properties and APK metadata
  - Watch logcat and accumulate lines until a pattern matches

Tools are located from the configured SDK path or ANDROID_HOME.

PLUGINS:
  droidctl supports plugins for extended functionality. Plugins are standalone
  binaries named droidctl-<command> that are automatically discovered and invoked.

  Plugin locations (searched in order):
    1. Same directory as the droidctl binary
    2. ~/.droidctl/plugins/
    3. Anywhere in PATH`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&commands.Global.ConfigPath, "config", "", "Config file (default: ~/.droidctl.yaml)")
	rootCmd.PersistentFlags().StringVar(&commands.Global.SDKPath, "sdk", "", "Android SDK root (default: config or ANDROID_HOME)")
	rootCmd.PersistentFlags().StringVarP(&commands.Global.Serial, "serial", "s", "", "Device serial to target")

	// Add subcommands
	rootCmd.AddCommand(commands.NewDevicesCommand())
	rootCmd.AddCommand(commands.NewInfoCommand())
	rootCmd.AddCommand(commands.NewInstallCommand())
	rootCmd.AddCommand(commands.NewUninstallCommand())
	rootCmd.AddCommand(commands.NewPackagesCommand())
	rootCmd.AddCommand(commands.NewShellCommand())
	rootCmd.AddCommand(commands.NewStartCommand())
	rootCmd.AddCommand(commands.NewPushCommand())
	rootCmd.AddCommand(commands.NewPullCommand())
	rootCmd.AddCommand(commands.NewLsCommand())
	rootCmd.AddCommand(commands.NewRmCommand())
	rootCmd.AddCommand(commands.NewMkdirCommand())
	rootCmd.AddCommand(commands.NewRmdirCommand())
	rootCmd.AddCommand(commands.NewLogcatCommand())
	rootCmd.AddCommand(commands.NewApkInfoCommand())
	rootCmd.AddCommand(commands.NewDoctorCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
