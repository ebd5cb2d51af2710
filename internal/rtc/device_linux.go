//go:build linux

package rtc

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// DeviceSyncer sets an RTC exposed by the kernel (/dev/rtcN) with the
// RTC_SET_TIME ioctl. The clock is kept in UTC.
type DeviceSyncer struct {
	Device string
	Now    func() time.Time // nil means time.Now
}

// Sync opens the device and sets it to the current time.
func (s DeviceSyncer) Sync(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(s.Device)
	if err != nil {
		return fmt.Errorf("rtc sync: %w", err)
	}
	defer f.Close()

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	t := toRTCTime(now())
	if err := unix.IoctlSetRTCTime(int(f.Fd()), &t); err != nil {
		return fmt.Errorf("rtc sync: set time on %s: %w", s.Device, err)
	}
	return nil
}

// toRTCTime converts t to the kernel's struct rtc_time, which follows
// struct tm: months from 0, years since 1900.
func toRTCTime(t time.Time) unix.RTCTime {
	t = t.UTC()
	return unix.RTCTime{
		Sec:  int32(t.Second()),
		Min:  int32(t.Minute()),
		Hour: int32(t.Hour()),
		Mday: int32(t.Day()),
		Mon:  int32(t.Month()) - 1,
		Year: int32(t.Year() - 1900),
		Wday: int32(t.Weekday()),
		Yday: int32(t.YearDay() - 1),
	}
}
