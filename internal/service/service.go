// Package service installs the systemd units that start the Pi services at
// boot.
package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/coreos/go-systemd/v22/unit"
)

// Locations relative to the root filesystem.
const (
	InstallDir = "lib/systemd/system"
	WantsDir   = "etc/systemd/system/multi-user.target.wants"
)

// Unit is one long-running service.
type Unit struct {
	Name        string
	Description string
	ExecStart   string
	After       []string
}

// Options returns the unit as systemd options: a simple service restarted
// on failure and wanted by multi-user.target.
func (u Unit) Options() []*unit.UnitOption {
	opts := []*unit.UnitOption{
		unit.NewUnitOption("Unit", "Description", u.Description),
	}
	for _, after := range u.After {
		opts = append(opts, unit.NewUnitOption("Unit", "After", after))
	}
	return append(opts,
		unit.NewUnitOption("Service", "ExecStart", u.ExecStart),
		unit.NewUnitOption("Service", "Type", "simple"),
		unit.NewUnitOption("Service", "Restart", "on-failure"),
		unit.NewUnitOption("Service", "RestartSec", "5"),
		unit.NewUnitOption("Install", "WantedBy", "multi-user.target"),
	)
}

// Render returns the unit file contents.
func (u Unit) Render() ([]byte, error) {
	if u.Name == "" || u.ExecStart == "" {
		return nil, errors.New("unit needs a name and ExecStart")
	}
	data, err := io.ReadAll(unit.Serialize(u.Options()))
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", u.Name, err)
	}
	return data, nil
}

// Install writes each unit under root and enables it by linking it into
// multi-user.target.wants. An existing link is left alone.
func Install(root string, units ...Unit) error {
	installDir := filepath.Join(root, InstallDir)
	wantsDir := filepath.Join(root, WantsDir)
	for _, dir := range []string{installDir, wantsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	for _, u := range units {
		data, err := u.Render()
		if err != nil {
			return err
		}
		file := u.Name + ".service"
		src := filepath.Join(installDir, file)
		if err := os.WriteFile(src, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", src, err)
		}
		// The link target is the path as seen from the installed system.
		target := filepath.Join("/", InstallDir, file)
		dst := filepath.Join(wantsDir, file)
		if err := os.Symlink(target, dst); err != nil && !errors.Is(err, os.ErrExist) {
			return fmt.Errorf("enabling %s: %w", u.Name, err)
		}
	}
	return nil
}

// Units returns the units of the shutdown button and wifi checker services,
// with their binaries under binDir.
func Units(binDir string) []Unit {
	return []Unit{
		{
			Name:        "shutdown-button",
			Description: "Save the clock to the RTC and power off when the shutdown button is pressed",
			ExecStart:   filepath.Join(binDir, "shutdown-button"),
		},
		{
			Name:        "wifi-checker",
			Description: "Show wifi association on the status LED",
			ExecStart:   filepath.Join(binDir, "wifi-checker"),
			After:       []string{"network.target"},
		},
	}
}
