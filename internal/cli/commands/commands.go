// Package commands implements the droidctl subcommands.
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/droidctl/droidctl/pkg/adb"
	"github.com/droidctl/droidctl/pkg/config"
	"github.com/droidctl/droidctl/pkg/sdk"
)

// ExitCode is set by commands to indicate the result:
// 0 success, 1 operation failure (device missing, install failure,
// logcat timeout), 2 configuration or usage error.
var ExitCode = 0

// GlobalOptions holds the root command's persistent flags.
type GlobalOptions struct {
	ConfigPath string
	SDKPath    string
	Serial     string
}

// Global is bound to the root command's persistent flags by the cli package.
var Global GlobalOptions

// loadConfig loads the configuration file and applies the global flag
// overrides on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(Global.ConfigPath)
	if err != nil {
		return nil, err
	}
	if Global.SDKPath != "" {
		cfg.SDKPath = Global.SDKPath
	}
	if Global.Serial != "" {
		cfg.Serial = Global.Serial
	}
	return cfg, nil
}

// newSDK resolves the SDK installation from config.
func newSDK(cfg *config.Config) (*sdk.SDK, error) {
	return sdk.New(cfg.SDKPath)
}

// newClient builds an adb client from config: SDK resolution, pinned serial
// and default package.
func newClient(cfg *config.Config) (*adb.Client, error) {
	s, err := newSDK(cfg)
	if err != nil {
		return nil, err
	}
	bin, err := s.ADB()
	if err != nil {
		return nil, err
	}

	var opts []adb.Option
	if cfg.Serial != "" {
		opts = append(opts, adb.WithSerial(cfg.Serial))
	}
	if cfg.Package != "" {
		opts = append(opts, adb.WithDefaultPackage(cfg.Package))
	}
	return adb.New(bin, opts...)
}

// commandContext derives a context for one-shot adb invocations, bounded by
// the configured command timeout. Long-lived operations (logcat watch)
// derive their own instead.
func commandContext(cmd *cobra.Command, cfg *config.Config) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.CommandTimeout > 0 {
		return context.WithTimeout(ctx, cfg.CommandTimeout)
	}
	return context.WithCancel(ctx)
}
