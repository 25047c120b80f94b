package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/droidctl/droidctl/pkg/config"
	"github.com/droidctl/droidctl/pkg/logcat"
	"github.com/droidctl/droidctl/pkg/output"
)

// NewLogcatCommand creates the logcat command group.
func NewLogcatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logcat",
		Short: "Read and watch device logs",
	}

	cmd.AddCommand(newLogcatDumpCommand())
	cmd.AddCommand(newLogcatClearCommand())
	cmd.AddCommand(newLogcatReadCommand())
	cmd.AddCommand(newLogcatWatchCommand())

	return cmd
}

func newLogcatDumpCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the current logcat buffer and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, session, err := logcatSession()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd, cfg)
			defer cancel()

			if format == "" {
				format = cfg.Logcat.Format
			}
			lines, err := session.Dump(ctx, format)
			if err != nil {
				return err
			}
			for _, line := range lines {
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "logcat -v output format")

	return cmd
}

func newLogcatClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the device's logcat buffer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, session, err := logcatSession()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd, cfg)
			defer cancel()
			return session.Clear(ctx)
		},
	}
}

func newLogcatReadCommand() *cobra.Command {
	var (
		window  time.Duration
		noClear bool
		format  string
	)

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Capture live logs for a fixed window",
		Long: `Start a logcat stream, collect everything it produces for the given
window, then terminate it and print the collected lines.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, session, err := logcatSession()
			if err != nil {
				return err
			}
			defer session.Stop()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			if window <= 0 {
				window = cfg.Logcat.ReadTimeout
			}
			if format == "" {
				format = cfg.Logcat.Format
			}

			if err := session.Start(ctx, logcat.StartOptions{Clear: !noClear, Format: format}); err != nil {
				return err
			}
			lines, err := session.Read(ctx, window)
			if err != nil {
				return err
			}
			for _, line := range lines {
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&window, "window", 0, "Capture window (default: configured read timeout)")
	cmd.Flags().BoolVar(&noClear, "no-clear", false, "Keep old buffer contents")
	cmd.Flags().StringVar(&format, "format", "", "logcat -v output format")

	return cmd
}

// LogcatWatchOptions holds command-line options for logcat watch.
type LogcatWatchOptions struct {
	Stop    []string
	Start   []string
	Timeout time.Duration
	NoClear bool
	Format  string
	Output  string
}

func newLogcatWatchCommand() *cobra.Command {
	opts := &LogcatWatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch --stop <pattern> [flags]",
		Short: "Accumulate log lines until a stop pattern matches",
		Long: `Stream logcat and accumulate lines until one of the stop patterns
matches, then print everything collected, including the matching line.

Patterns are regular expressions; a pattern that is not valid regex syntax
is matched as a literal substring. Stop patterns given here are merged
with the exit_lines configured in the config file, so crash markers end a
watch immediately. With --start, lines are discarded until a start pattern
matches; the matching line is included.

Blank lines never appear in the output.

Exit codes:
  0 - A stop pattern matched
  1 - Timeout, or the log stream ended without a match
  2 - Configuration or runtime error

Example:
  droidctl logcat watch --stop 'Test run complete' --timeout 2m
  droidctl logcat watch --start 'BEGIN' --stop 'END|FATAL' --timeout 30s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogcatWatch(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Stop, "stop", nil, "Stop pattern (can be repeated)")
	cmd.Flags().StringSliceVar(&opts.Start, "start", nil, "Start pattern (can be repeated)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 0, "Give up after this long (0 = wait forever)")
	cmd.Flags().BoolVar(&opts.NoClear, "no-clear", false, "Keep old buffer contents")
	cmd.Flags().StringVar(&opts.Format, "format", "", "logcat -v output format")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	_ = cmd.MarkFlagRequired("stop")

	return cmd
}

func runLogcatWatch(cmd *cobra.Command, opts *LogcatWatchOptions) error {
	cfg, session, err := logcatSession()
	if err != nil {
		return err
	}
	defer session.Stop()

	formatter, err := output.New(opts.Output, output.FormatOptions{})
	if err != nil {
		return err
	}

	// The watch runs until a pattern or its own timeout fires; the one-shot
	// command timeout does not apply.
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	format := opts.Format
	if format == "" {
		format = cfg.Logcat.Format
	}

	if err := session.Start(ctx, logcat.StartOptions{Clear: !opts.NoClear, Format: format}); err != nil {
		return err
	}

	lines, err := session.Accumulate(ctx, logcat.Options{
		Stop:      opts.Stop,
		Start:     opts.Start,
		ExtraStop: cfg.Logcat.CompiledExitLines(),
		Timeout:   opts.Timeout,
	})

	var timeoutErr *logcat.TimeoutError
	switch {
	case errors.As(err, &timeoutErr):
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeoutErr)
		ExitCode = 1
		return nil
	case errors.Is(err, logcat.ErrStreamClosed):
		fmt.Fprintf(os.Stderr, "Log stream ended: %v\n", err)
		ExitCode = 1
		return nil
	case err != nil:
		return err
	}

	return formatter.Format(ctx, &output.Report{Lines: lines}, os.Stdout)
}

// logcatSession builds a session from config plus global flags.
func logcatSession() (*config.Config, *logcat.Session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	client, err := newClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, client.Logcat(), nil
}
