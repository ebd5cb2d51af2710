//go:build linux

package rtc

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRTCTime(t *testing.T) {
	ts := time.Date(2024, time.February, 29, 23, 59, 58, 0, time.FixedZone("CET", 3600))
	got := toRTCTime(ts)

	// 2024-02-29 22:59:58 UTC, a Thursday, day 60 of a leap year
	assert.EqualValues(t, 58, got.Sec)
	assert.EqualValues(t, 59, got.Min)
	assert.EqualValues(t, 22, got.Hour)
	assert.EqualValues(t, 29, got.Mday)
	assert.EqualValues(t, 1, got.Mon)
	assert.EqualValues(t, 124, got.Year)
	assert.EqualValues(t, 4, got.Wday)
	assert.EqualValues(t, 59, got.Yday)
}

func TestDeviceSyncer_MissingDevice(t *testing.T) {
	s := DeviceSyncer{Device: filepath.Join(t.TempDir(), "rtc9")}
	err := s.Sync(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDeviceSyncer_NotAnRTC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rtc0")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	err := DeviceSyncer{Device: path}.Sync(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set time")
}
