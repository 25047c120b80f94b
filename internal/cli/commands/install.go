package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/droidctl/droidctl/pkg/adb"
)

// InstallOptions holds command-line options for the install command.
type InstallOptions struct {
	Replace   bool
	Downgrade bool
	Grant     bool
	AutoGrant bool
	AllowTest bool
	SDCard    bool
}

// NewInstallCommand creates the install command.
func NewInstallCommand() *cobra.Command {
	opts := &InstallOptions{}

	cmd := &cobra.Command{
		Use:   "install <apk-file>",
		Short: "Install an apk on the device",
		Long: `Install an apk file on the device.

--grant passes -g unconditionally; Android 5 and older reject the flag.
--auto-grant queries the device version first and only passes -g where it
is supported.

Exit codes:
  0 - Installed
  1 - Package manager reported a failure
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Replace, "replace", "r", false, "Replace an existing installation")
	cmd.Flags().BoolVarP(&opts.Downgrade, "downgrade", "d", false, "Allow version downgrade")
	cmd.Flags().BoolVarP(&opts.Grant, "grant", "g", false, "Grant all runtime permissions")
	cmd.Flags().BoolVar(&opts.AutoGrant, "auto-grant", false, "Grant runtime permissions where the device supports it")
	cmd.Flags().BoolVarP(&opts.AllowTest, "allow-test", "t", true, "Allow test-only packages")
	cmd.Flags().BoolVar(&opts.SDCard, "sdcard", false, "Install on external storage")

	return cmd
}

func runInstall(cmd *cobra.Command, args []string, opts *InstallOptions) error {
	apk := args[0]
	if _, err := os.Stat(apk); err != nil {
		return fmt.Errorf("apk file: %w", err)
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

	err = client.Install(ctx, apk, adb.InstallOptions{
		Replace:              opts.Replace,
		Downgrade:            opts.Downgrade,
		GrantPermissions:     opts.Grant,
		AutoGrantPermissions: opts.AutoGrant,
		AllowTest:            opts.AllowTest,
		ToSDCard:             opts.SDCard,
	})

	var installErr *adb.InstallError
	if errors.As(err, &installErr) {
		fmt.Fprintf(os.Stderr, "Install failed: %s\n", installErr.Reason)
		ExitCode = 1
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Installed %s\n", apk)
	return nil
}
