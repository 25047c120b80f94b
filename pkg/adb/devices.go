package adb

import (
	"context"
	"fmt"
	"strings"
)

// Device is one row of adb devices -l output.
type Device struct {
	Serial      string            `json:"serial"`
	State       string            `json:"state"`
	Description map[string]string `json:"description,omitempty"`
}

// Model returns the model reported in the device description, if any.
func (d Device) Model() string {
	return d.Description["model"]
}

// Devices lists connected devices. An empty list yields ErrDeviceNotFound.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	lines, err := c.adb(ctx, "devices", "-l")
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}

	var devices []Device
	for _, line := range lines {
		// Header and server startup noise.
		if strings.HasPrefix(line, "List of devices") ||
			strings.HasPrefix(line, "*") ||
			strings.Contains(line, "daemon") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		d := Device{
			Serial:      fields[0],
			State:       fields[1],
			Description: make(map[string]string),
		}
		for _, tok := range fields[2:] {
			kv := strings.SplitN(tok, ":", 2)
			if len(kv) == 2 {
				d.Description[kv[0]] = kv[1]
			}
		}
		devices = append(devices, d)
	}

	if len(devices) == 0 {
		return nil, ErrDeviceNotFound
	}
	return devices, nil
}

// Reconnect forces the device connection to be re-established.
func (c *Client) Reconnect(ctx context.Context) error {
	if _, err := c.adb(ctx, "reconnect"); err != nil {
		return fmt.Errorf("reconnecting: %w", err)
	}
	return nil
}
