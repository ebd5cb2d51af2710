//go:build linux

package power

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"
)

// SyscallHalter powers off through reboot(2) without going through the init
// system. Filesystems are synced first. Needs CAP_SYS_BOOT.
type SyscallHalter struct{}

// Halt syncs and powers off. It only returns on failure.
func (SyscallHalter) Halt(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	unix.Sync()
	if err := unix.Reboot(unix.LINUX_REBOOT_CMD_POWER_OFF); err != nil {
		return fmt.Errorf("halt: reboot(POWER_OFF): %w", err)
	}
	return nil
}
