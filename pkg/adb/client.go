// Package adb wraps the adb command-line tool: device enumeration, package
// management, system properties, file transfer, and shell execution.
package adb

import (
	"github.com/droidctl/droidctl/pkg/logcat"
	"github.com/droidctl/droidctl/pkg/sdk"
)

// Client issues adb commands, optionally pinned to one device serial.
// It is not safe for concurrent use with a live logcat session, which owns
// the device's log stream exclusively.
type Client struct {
	bin    string
	serial string
	pkg    string

	run RunFunc
}

// Option configures a Client.
type Option func(*Client)

// WithSerial pins all commands to the device with the given serial (adb -s).
func WithSerial(serial string) Option {
	return func(c *Client) { c.serial = serial }
}

// WithDefaultPackage sets the package name used by operations that accept
// an empty package argument.
func WithDefaultPackage(pkg string) Option {
	return func(c *Client) { c.pkg = pkg }
}

// WithRunner replaces the command runner. Used by tests.
func WithRunner(run RunFunc) Option {
	return func(c *Client) { c.run = run }
}

// New creates a client for the adb binary at bin. The path is checked for
// existence after ~ and environment variable expansion.
func New(bin string, opts ...Option) (*Client, error) {
	bin = sdk.ExpandPath(bin)
	if err := sdk.CheckTool(bin); err != nil {
		return nil, err
	}

	c := &Client{bin: bin, run: runExec}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetSerial changes the pinned device serial.
func (c *Client) SetSerial(serial string) { c.serial = serial }

// Serial returns the pinned device serial, if any.
func (c *Client) Serial() string { return c.serial }

// SetDefaultPackage changes the default package name.
func (c *Client) SetDefaultPackage(pkg string) { c.pkg = pkg }

// Logcat creates an idle logcat session bound to the same binary and serial.
func (c *Client) Logcat() *logcat.Session {
	var opts []logcat.SessionOption
	if c.serial != "" {
		opts = append(opts, logcat.WithSerial(c.serial))
	}
	return logcat.NewSession(c.bin, opts...)
}

// resolvePackage picks the explicit package or falls back to the default.
func (c *Client) resolvePackage(pkg string) (string, error) {
	if pkg != "" {
		return pkg, nil
	}
	if c.pkg != "" {
		return c.pkg, nil
	}
	return "", ErrPackageNotSet
}
