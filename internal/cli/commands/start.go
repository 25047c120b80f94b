package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewStartCommand creates the start command.
func NewStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start <[package/]activity> [-- am-args...]",
		Short: "Launch an activity",
		Long: `Launch an activity via am start -n.

The activity may be given as package/activity. A bare activity name uses
the default package from the configuration file. Arguments after -- are
passed to am start unchanged.

Example:
  droidctl start com.example.app/.MainActivity
  droidctl start .MainActivity -- --ez fast true`,
		Args: cobra.MinimumNArgs(1),
		RunE: runStart,
	}
}

func runStart(cmd *cobra.Command, args []string) error {
	var pkg, activity string
	if before, after, found := strings.Cut(args[0], "/"); found {
		pkg, activity = before, after
	} else {
		activity = args[0]
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

	if err := client.StartActivity(ctx, pkg, activity, args[1:]); err != nil {
		return err
	}
	fmt.Printf("Started %s\n", args[0])
	return nil
}
