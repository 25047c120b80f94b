package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/droidctl/droidctl/pkg/adb"
)

// ShellOptions holds command-line options for the shell command.
type ShellOptions struct {
	RunAs bool
}

// NewShellCommand creates the shell command.
func NewShellCommand() *cobra.Command {
	opts := &ShellOptions{}

	cmd := &cobra.Command{
		Use:   "shell <command> [args...]",
		Short: "Run a command in the device shell",
		Long: `Run a command in the device shell and print its output.

With --run-as the command runs with the identity of the configured default
package (debuggable builds, API 21+ only).

Example:
  droidctl shell getprop ro.product.model
  droidctl shell --run-as ls files/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.RunAs, "run-as", false, "Run with the default package's identity")

	return cmd
}

func runShell(cmd *cobra.Command, args []string, opts *ShellOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd, cfg)
	defer cancel()

	lines, err := client.Shell(ctx, args, adb.ShellOptions{RunAs: opts.RunAs})
	if err != nil {
		return fmt.Errorf("shell %s: %w", strings.Join(args, " "), err)
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}
