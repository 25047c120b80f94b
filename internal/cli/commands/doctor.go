package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/droidctl/droidctl/pkg/output"
	"github.com/droidctl/droidctl/pkg/sdk"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the SDK installation",
		Long: `Resolve the Android SDK root and every tool droidctl uses, and report
what was found. A missing tool does not stop the check; all results are
printed and the exit code is 1 when anything is missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, format)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "text", "Output format (text|json)")

	return cmd
}

func runDoctor(cmd *cobra.Command, format string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	formatter, err := output.New(format, output.FormatOptions{})
	if err != nil {
		return err
	}
	ctx, cancel := commandContext(cmd, cfg)
	defer cancel()

	report := &output.Report{Title: "droidctl doctor"}

	s, err := newSDK(cfg)
	if err != nil {
		report.AddSection("sdk", output.Field{Key: "root", Value: fmt.Sprintf("MISSING (%v)", err)})
		ExitCode = 1
		return formatter.Format(ctx, report, os.Stdout)
	}
	report.AddSection("sdk", output.Field{Key: "root", Value: s.Root()})

	tools := []string{sdk.ToolADB, sdk.ToolAAPT, sdk.ToolZipalign, sdk.ToolEmulator}
	var fields []output.Field
	missing := 0
	for _, name := range tools {
		path, err := s.Resolve(name)
		if err != nil {
			fields = append(fields, output.Field{Key: name, Value: fmt.Sprintf("MISSING (%v)", err)})
			missing++
			continue
		}
		fields = append(fields, output.Field{Key: name, Value: path})
	}
	report.AddSection("tools", fields...)

	if missing > 0 {
		ExitCode = 1
	}
	return formatter.Format(ctx, report, os.Stdout)
}
