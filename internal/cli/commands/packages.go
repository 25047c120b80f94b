package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/droidctl/droidctl/pkg/output"
)

// PackagesOptions holds command-line options for the packages command.
type PackagesOptions struct {
	Output   string
	Contains string
}

// NewPackagesCommand creates the packages command.
func NewPackagesCommand() *cobra.Command {
	opts := &PackagesOptions{}

	cmd := &cobra.Command{
		Use:   "packages",
		Short: "List installed packages",
		Long: `List packages installed on the device (pm list packages).

With --contains, checks whether a specific package is installed instead.

Exit codes:
  0 - Listed, or --contains package is installed
  1 - --contains package is not installed
  2 - Configuration or runtime error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackages(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringVar(&opts.Contains, "contains", "", "Check for a specific package")

	return cmd
}

func runPackages(cmd *cobra.Command, opts *PackagesOptions) error {
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

	if opts.Contains != "" {
		installed, err := client.IsInstalled(ctx, opts.Contains)
		if err != nil {
			return err
		}
		if !installed {
			fmt.Printf("%s is not installed\n", opts.Contains)
			ExitCode = 1
			return nil
		}
		fmt.Printf("%s is installed\n", opts.Contains)
		return nil
	}

	pkgs, err := client.Packages(ctx)
	if err != nil {
		return err
	}

	formatter, err := output.New(opts.Output, output.FormatOptions{})
	if err != nil {
		return err
	}
	return formatter.Format(ctx, &output.Report{Lines: pkgs}, os.Stdout)
}
