// Package rtc copies the system time into the battery-backed real-time clock
// so the Pi comes back with the right time after a power cut.
package rtc

import (
	"context"
	"fmt"

	"piservices/internal/command"
)

// Syncer writes the current time to the RTC.
type Syncer interface {
	Sync(ctx context.Context) error
}

// CommandSyncer runs an external program that talks to the clock chip, such
// as the DS1302 bit-banging script.
type CommandSyncer struct {
	Runner command.Runner
	Path   string
	Args   []string
}

// Sync runs the program once. Its errors are returned wrapped; the caller
// decides whether they matter.
func (s CommandSyncer) Sync(ctx context.Context) error {
	if _, err := s.Runner.Run(ctx, s.Path, s.Args...); err != nil {
		return fmt.Errorf("rtc sync: %w", err)
	}
	return nil
}
