package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/droidctl/droidctl/pkg/adb"
)

// NewUninstallCommand creates the uninstall command.
func NewUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall [package]",
		Short: "Remove a package from the device",
		Long: `Remove a package from the device. Without an argument the default
package from the configuration file is used.

Exit codes:
  0 - Removed
  1 - Package manager reported a failure
  2 - Configuration or runtime error`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUninstall,
	}
}

func runUninstall(cmd *cobra.Command, args []string) error {
	var pkg string
	if len(args) > 0 {
		pkg = args[0]
	}

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

	err = client.Uninstall(ctx, pkg)

	var installErr *adb.InstallError
	if errors.As(err, &installErr) {
		fmt.Fprintf(os.Stderr, "Uninstall failed: %s\n", installErr.Reason)
		ExitCode = 1
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println("Uninstalled")
	return nil
}
