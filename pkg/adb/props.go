package adb

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// Well-known system property names.
const (
	propAndroidVersion = "ro.build.version.release"
	propSDKVersion     = "ro.build.version.sdk"
	propSecurityPatch  = "ro.build.version.security_patch"
	propModel          = "ro.product.model"
	propManufacturer   = "ro.product.manufacturer"
	propABI            = "ro.product.cpu.abi"
	propBuildID        = "ro.build.display.id"
)

// Prop returns a system property value, or an empty string when the
// property does not exist.
func (c *Client) Prop(ctx context.Context, name string) (string, error) {
	lines, err := c.Shell(ctx, []string{"getprop", name}, ShellOptions{})
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", nil
	}
	return lines[0], nil
}

// AndroidVersion returns the release version string, e.g. "5.1.1".
func (c *Client) AndroidVersion(ctx context.Context) (string, error) {
	return c.Prop(ctx, propAndroidVersion)
}

// SDKVersion returns the device's SDK version (API level), or -1 when it
// cannot be determined.
func (c *Client) SDKVersion(ctx context.Context) (int, error) {
	v, err := c.Prop(ctx, propSDKVersion)
	if err != nil {
		return -1, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1, nil
	}
	return n, nil
}

// APILevel is an alias for SDKVersion.
func (c *Client) APILevel(ctx context.Context) (int, error) {
	return c.SDKVersion(ctx)
}

// SecurityPatch returns the security patch date, e.g. "2015-11-01".
func (c *Client) SecurityPatch(ctx context.Context) (string, error) {
	return c.Prop(ctx, propSecurityPatch)
}

// DeviceInfo is a summary of the device's identifying properties.
type DeviceInfo struct {
	Model          string `json:"model"`
	Manufacturer   string `json:"manufacturer"`
	AndroidVersion string `json:"android_version"`
	APILevel       string `json:"api_level"`
	ABI            string `json:"abi"`
	BuildID        string `json:"build_id"`
	SecurityPatch  string `json:"security_patch"`
}

// DeviceInfo gathers the summary properties. Each property is a separate
// adb round trip, so they are fetched concurrently.
func (c *Client) DeviceInfo(ctx context.Context) (*DeviceInfo, error) {
	info := &DeviceInfo{}
	fields := []struct {
		prop string
		dst  *string
	}{
		{propModel, &info.Model},
		{propManufacturer, &info.Manufacturer},
		{propAndroidVersion, &info.AndroidVersion},
		{propSDKVersion, &info.APILevel},
		{propABI, &info.ABI},
		{propBuildID, &info.BuildID},
		{propSecurityPatch, &info.SecurityPatch},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range fields {
		f := f
		g.Go(func() error {
			v, err := c.Prop(gctx, f.prop)
			if err != nil {
				return err
			}
			*f.dst = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return info, nil
}
