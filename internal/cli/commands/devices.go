package commands

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/droidctl/droidctl/pkg/adb"
	"github.com/droidctl/droidctl/pkg/output"
)

// DevicesOptions holds command-line options for the devices command.
type DevicesOptions struct {
	Output string
	Info   bool
	Quiet  bool
}

// NewDevicesCommand creates the devices command.
func NewDevicesCommand() *cobra.Command {
	opts := &DevicesOptions{}

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List connected devices",
		Long: `List devices known to the adb server.

With --info, each device is additionally queried for its identifying
system properties (model, Android version, API level, ...).

Exit codes:
  0 - At least one device connected
  1 - No devices found
  2 - Configuration or runtime error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDevices(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVar(&opts.Info, "info", false, "Query device properties for each device")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Print serial numbers only")

	return cmd
}

func runDevices(cmd *cobra.Command, opts *DevicesOptions) error {
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

	devices, err := client.Devices(ctx)
	if errors.Is(err, adb.ErrDeviceNotFound) {
		fmt.Fprintln(os.Stderr, "No devices found.")
		ExitCode = 1
		return nil
	}
	if err != nil {
		return err
	}

	formatter, err := output.New(opts.Output, output.FormatOptions{Quiet: opts.Quiet})
	if err != nil {
		return err
	}

	report := &output.Report{Title: fmt.Sprintf("Connected devices: %d", len(devices))}
	for _, d := range devices {
		if opts.Quiet {
			report.Lines = append(report.Lines, d.Serial)
			continue
		}
		report.AddSection(fmt.Sprintf("%s (%s)", d.Serial, d.State), deviceFields(d)...)

		if opts.Info {
			client.SetSerial(d.Serial)
			info, err := client.DeviceInfo(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: querying %s: %v\n", d.Serial, err)
				continue
			}
			last := &report.Sections[len(report.Sections)-1]
			last.Fields = append(last.Fields, infoFields(info)...)
		}
	}
	if opts.Quiet {
		report.Title = ""
	}

	return formatter.Format(ctx, report, os.Stdout)
}

func deviceFields(d adb.Device) []output.Field {
	keys := make([]string, 0, len(d.Description))
	for k := range d.Description {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]output.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, output.Field{Key: k, Value: d.Description[k]})
	}
	return fields
}

func infoFields(info *adb.DeviceInfo) []output.Field {
	return []output.Field{
		{Key: "model", Value: info.Model},
		{Key: "manufacturer", Value: info.Manufacturer},
		{Key: "android", Value: info.AndroidVersion},
		{Key: "api level", Value: info.APILevel},
		{Key: "abi", Value: info.ABI},
		{Key: "build", Value: info.BuildID},
		{Key: "security patch", Value: info.SecurityPatch},
	}
}
