//go:build !linux

package rtc

import (
	"context"
	"errors"
	"time"
)

// DeviceSyncer is only implemented on Linux.
type DeviceSyncer struct {
	Device string
	Now    func() time.Time
}

func (s DeviceSyncer) Sync(ctx context.Context) error {
	return errors.New("rtc sync: rtc devices are only supported on linux")
}
