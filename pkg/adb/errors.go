package adb

import (
	"errors"
	"fmt"
)

// ErrDeviceNotFound is returned when no connected devices are reported.
var ErrDeviceNotFound = errors.New("no devices found")

// ErrPackageNotSet is returned when an operation needs a package name and
// neither an argument nor a client default was provided.
var ErrPackageNotSet = errors.New("package name not set")

// InstallError reports a failed install or uninstall with the reason the
// package manager printed.
type InstallError struct {
	Op     string // "install" or "uninstall"
	Reason string
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Op, e.Reason)
}

// EnvironmentError reports that the device's Android version cannot support
// the requested operation.
type EnvironmentError struct {
	Need int // minimum API level
	Have int
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("device API level is %d but %d or above is needed", e.Have, e.Need)
}
