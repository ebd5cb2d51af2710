//go:build !linux

package power

import (
	"context"
	"errors"
)

// SyscallHalter is only implemented on Linux.
type SyscallHalter struct{}

func (SyscallHalter) Halt(ctx context.Context) error {
	return errors.New("halt: reboot syscall is only supported on linux")
}
