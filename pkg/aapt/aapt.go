// Package aapt wraps the aapt build tool for inspecting apk files.
package aapt

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/droidctl/droidctl/pkg/sdk"
)

// RunFunc executes a command and returns its combined output.
type RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Tool invokes the aapt binary.
type Tool struct {
	bin string
	run RunFunc
}

// Option configures a Tool.
type Option func(*Tool)

// WithRunner replaces the command runner. Used by tests.
func WithRunner(run RunFunc) Option {
	return func(t *Tool) { t.run = run }
}

// New creates a wrapper for the aapt binary at bin. The path is checked for
// existence after ~ and environment variable expansion.
func New(bin string, opts ...Option) (*Tool, error) {
	bin = sdk.ExpandPath(bin)
	if err := sdk.CheckTool(bin); err != nil {
		return nil, err
	}

	t := &Tool{
		bin: bin,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// PackageInfo is the subset of aapt dump badging output droidctl surfaces.
type PackageInfo struct {
	Package     string   `json:"package"`
	VersionCode string   `json:"version_code"`
	VersionName string   `json:"version_name"`
	SDKVersion  string   `json:"sdk_version,omitempty"`
	TargetSDK   string   `json:"target_sdk,omitempty"`
	Label       string   `json:"label,omitempty"`
	NativeCode  []string `json:"native_code,omitempty"`
}

var (
	badgingAttr   = regexp.MustCompile(`([\w-]+)='([^']*)'`)
	badgingQuoted = regexp.MustCompile(`'([^']+)'`)
)

// Badging runs aapt dump badging on an apk and parses the result.
func (t *Tool) Badging(ctx context.Context, apk string) (*PackageInfo, error) {
	out, err := t.run(ctx, t.bin, "dump", "badging", apk)
	if err != nil {
		return nil, fmt.Errorf("aapt dump badging %s: %w", apk, err)
	}

	info := &PackageInfo{}
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "package:"):
			for _, m := range badgingAttr.FindAllStringSubmatch(line, -1) {
				switch m[1] {
				case "name":
					info.Package = m[2]
				case "versionCode":
					info.VersionCode = m[2]
				case "versionName":
					info.VersionName = m[2]
				}
			}
		case strings.HasPrefix(line, "sdkVersion:"):
			info.SDKVersion = badgingValue(line)
		case strings.HasPrefix(line, "targetSdkVersion:"):
			info.TargetSDK = badgingValue(line)
		case strings.HasPrefix(line, "application-label:"):
			info.Label = badgingValue(line)
		case strings.HasPrefix(line, "native-code:"):
			for _, m := range badgingQuoted.FindAllStringSubmatch(line, -1) {
				info.NativeCode = append(info.NativeCode, m[1])
			}
		}
	}

	if info.Package == "" {
		return nil, fmt.Errorf("no package entry in badging output for %s", apk)
	}
	return info, nil
}

// badgingValue extracts the quoted value from a "key:'value'" line.
func badgingValue(line string) string {
	if i := strings.Index(line, "'"); i >= 0 {
		if j := strings.LastIndex(line, "'"); j > i {
			return line[i+1 : j]
		}
	}
	return ""
}
