package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/droidctl/droidctl/pkg/aapt"
	"github.com/droidctl/droidctl/pkg/output"
)

// ApkInfoOptions holds command-line options for the apkinfo command.
type ApkInfoOptions struct {
	Output string
	Quiet  bool
}

// NewApkInfoCommand creates the apkinfo command.
func NewApkInfoCommand() *cobra.Command {
	opts := &ApkInfoOptions{}

	cmd := &cobra.Command{
		Use:   "apkinfo <apk>",
		Short: "Show package details of a local APK",
		Long: `Read package name, version and SDK levels from a local APK using
aapt dump badging.

Example:
  droidctl apkinfo build/app-debug.apk`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApkInfo(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Print only the package name")

	return cmd
}

func runApkInfo(cmd *cobra.Command, args []string, opts *ApkInfoOptions) error {
	if _, err := os.Stat(args[0]); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := newSDK(cfg)
	if err != nil {
		return err
	}
	bin, err := s.AAPT()
	if err != nil {
		return err
	}
	tool, err := aapt.New(bin)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd, cfg)
	defer cancel()

	info, err := tool.Badging(ctx, args[0])
	if err != nil {
		return err
	}

	formatter, err := output.New(opts.Output, output.FormatOptions{Quiet: opts.Quiet})
	if err != nil {
		return err
	}
	return formatter.Format(ctx, apkInfoReport(args[0], info, opts.Quiet), os.Stdout)
}

// apkInfoReport builds the badging report. Quiet mode reduces it to the bare
// package name; otherwise the fields go into one section, never both.
func apkInfoReport(apk string, info *aapt.PackageInfo, quiet bool) *output.Report {
	report := &output.Report{Title: apk}
	if quiet {
		report.Lines = []string{info.Package}
		return report
	}
	return report.AddSection("package",
		output.Field{Key: "name", Value: info.Package},
		output.Field{Key: "versionCode", Value: info.VersionCode},
		output.Field{Key: "versionName", Value: info.VersionName},
		output.Field{Key: "sdkVersion", Value: info.SDKVersion},
		output.Field{Key: "targetSdkVersion", Value: info.TargetSDK},
		output.Field{Key: "label", Value: info.Label},
		output.Field{Key: "nativeCode", Value: strings.Join(info.NativeCode, " ")},
	)
}
