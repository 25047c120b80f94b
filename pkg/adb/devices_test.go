package adb

import (
	"context"
	"errors"
	"testing"
)

func TestDevices(t *testing.T) {
	c, f := newTestClient(t)
	f.responses["devices -l"] = `List of devices attached
* daemon not running; starting now at tcp:5037
* daemon started successfully
emulator-5554          device product:sdk_gphone64_x86_64 model:sdk_gphone64_x86_64 device:emu64x transport_id:1
0a1b2c3d               unauthorized transport_id:2
`

	devices, err := c.Devices(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(devices))
	}

	d := devices[0]
	if d.Serial != "emulator-5554" || d.State != "device" {
		t.Errorf("unexpected first device: %+v", d)
	}
	if d.Model() != "sdk_gphone64_x86_64" {
		t.Errorf("expected model from description, got %q", d.Model())
	}
	if d.Description["transport_id"] != "1" {
		t.Errorf("expected parsed description, got %v", d.Description)
	}

	if devices[1].State != "unauthorized" {
		t.Errorf("expected unauthorized state, got %q", devices[1].State)
	}
}

func TestReconnect(t *testing.T) {
	c, f := newTestClient(t)
	f.responses["reconnect"] = "reconnecting emulator-5554 [device]\n"

	if err := c.Reconnect(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.lastCall() != "reconnect" {
		t.Errorf("unexpected call: %q", f.lastCall())
	}
}

func TestDevicesNoneConnected(t *testing.T) {
	c, f := newTestClient(t)
	f.responses["devices -l"] = "List of devices attached\n"

	if _, err := c.Devices(context.Background()); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("expected ErrDeviceNotFound, got %v", err)
	}
}
