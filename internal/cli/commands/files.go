package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/droidctl/droidctl/pkg/output"
)

// NewPushCommand creates the push command.
func NewPushCommand() *cobra.Command {
	var sync bool

	cmd := &cobra.Command{
		Use:   "push <source>... <destination>",
		Short: "Copy files and directories to the device",
		Long: `Copy local files and directories to the device. The destination path
is created when missing; directory structure is preserved.

With --sync only files that are missing or newer than the on-device copy
are transferred.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(cmd, args, sync)
		},
	}

	cmd.Flags().BoolVar(&sync, "sync", false, "Only push missing or newer files")

	return cmd
}

func runPush(cmd *cobra.Command, args []string, sync bool) error {
	sources, dest := args[:len(args)-1], args[len(args)-1]

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

	lines, err := client.Push(ctx, sources, dest, sync)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}

// NewPullCommand creates the pull command.
func NewPullCommand() *cobra.Command {
	var preserveTimes bool

	cmd := &cobra.Command{
		Use:   "pull <source>... <destination>",
		Short: "Copy files and directories from the device",
		Long: `Copy files and directories from the device into a local directory,
creating it when missing.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPull(cmd, args, preserveTimes)
		},
	}

	cmd.Flags().BoolVarP(&preserveTimes, "preserve-times", "a", false, "Keep on-device file timestamps")

	return cmd
}

func runPull(cmd *cobra.Command, args []string, preserveTimes bool) error {
	sources, dest := args[:len(args)-1], args[len(args)-1]

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

	lines, err := client.Pull(ctx, sources, dest, preserveTimes)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}

// LsOptions holds command-line options for the ls command.
type LsOptions struct {
	Output string
	RunAs  bool
}

// NewLsCommand creates the ls command.
func NewLsCommand() *cobra.Command {
	opts := &LsOptions{}

	cmd := &cobra.Command{
		Use:   "ls <path>",
		Short: "List a directory on the device",
		Long: `List a device path with ls -la and parse each entry into its mode,
owner, size, timestamps and name. Entries that cannot be read are reported
as warnings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLs(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVar(&opts.RunAs, "run-as", false, "List with the default package's identity")

	return cmd
}

func runLs(cmd *cobra.Command, args []string, opts *LsOptions) error {
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

	files, accessErrs, err := client.ListDir(ctx, args[0], opts.RunAs)
	if err != nil {
		return err
	}

	formatter, err := output.New(opts.Output, output.FormatOptions{})
	if err != nil {
		return err
	}

	report := &output.Report{}
	for _, f := range files {
		report.Lines = append(report.Lines, fmt.Sprintf("%s %6s %s %s %s %s",
			f.Mode, f.Size, f.Owner, f.Date, f.Time, f.Name))
	}
	if err := formatter.Format(ctx, report, os.Stdout); err != nil {
		return err
	}

	for _, ae := range accessErrs {
		fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", ae.Path, ae.Reason)
	}
	return nil
}

// NewRmCommand creates the rm command.
func NewRmCommand() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "rm <path>...",
		Short: "Delete files on the device",
		Long: `Delete files on the device. Directories are only removed with
--recursive, so a stray wildcard cannot wipe a whole card by accident.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRm(cmd, args, recursive)
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Remove directories and their contents")

	return cmd
}

func runRm(cmd *cobra.Command, args []string, recursive bool) error {
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

	lines, err := client.Remove(ctx, args, recursive)
	if err != nil {
		return err
	}
	// rm is silent on success; anything it printed is a problem.
	for _, line := range lines {
		fmt.Fprintln(os.Stderr, line)
	}
	if len(lines) > 0 {
		ExitCode = 1
	}
	return nil
}

// NewMkdirCommand creates the mkdir command.
func NewMkdirCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <path>",
		Short: "Create a directory on the device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			return client.Mkdir(ctx, args[0])
		},
	}
}

// NewRmdirCommand creates the rmdir command.
func NewRmdirCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rmdir <path>",
		Short: "Remove a directory tree on the device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			return client.Rmdir(ctx, args[0])
		},
	}
}
