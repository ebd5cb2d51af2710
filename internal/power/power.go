// Package power halts the machine.
package power

import (
	"context"
	"errors"
	"fmt"

	"piservices/internal/command"
)

// Halter powers the system off. A successful Halt usually does not return
// for long: the service is killed as the system goes down.
type Halter interface {
	Halt(ctx context.Context) error
}

// CommandHalter runs the OS shutdown command, by default "shutdown -h now".
type CommandHalter struct {
	Runner  command.Runner
	Command []string
}

// Halt runs the configured command, first element as the program.
func (h CommandHalter) Halt(ctx context.Context) error {
	if len(h.Command) == 0 {
		return errors.New("halt: no shutdown command configured")
	}
	if _, err := h.Runner.Run(ctx, h.Command[0], h.Command[1:]...); err != nil {
		return fmt.Errorf("halt: %w", err)
	}
	return nil
}
