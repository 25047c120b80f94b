package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/droidctl/droidctl/pkg/output"
)

// InfoOptions holds command-line options for the info command.
type InfoOptions struct {
	Output string
	Quiet  bool
}

// NewInfoCommand creates the info command.
func NewInfoCommand() *cobra.Command {
	opts := &InfoOptions{}

	cmd := &cobra.Command{
		Use:   "info [property...]",
		Short: "Show device properties",
		Long: `Show a summary of the device's identifying properties, or the values
of specific system properties when names are given.

Examples:
  droidctl info
  droidctl info ro.product.locale.language
  droidctl -s emulator-5554 info ro.build.version.sdk`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Print values only")

	return cmd
}

func runInfo(cmd *cobra.Command, args []string, opts *InfoOptions) error {
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

	formatter, err := output.New(opts.Output, output.FormatOptions{Quiet: opts.Quiet})
	if err != nil {
		return err
	}

	report := &output.Report{}

	if len(args) > 0 {
		fields := make([]output.Field, 0, len(args))
		for _, name := range args {
			value, err := client.Prop(ctx, name)
			if err != nil {
				return err
			}
			fields = append(fields, output.Field{Key: name, Value: value})
		}
		report.AddSection("", fields...)
		return formatter.Format(ctx, report, os.Stdout)
	}

	info, err := client.DeviceInfo(ctx)
	if err != nil {
		return err
	}
	report.Title = "Device Information"
	report.AddSection("", infoFields(info)...)
	return formatter.Format(ctx, report, os.Stdout)
}
