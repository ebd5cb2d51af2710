package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 3, cfg.Button.Pin)
	assert.Equal(t, 10, cfg.Indicator.Pin)
	assert.Equal(t, time.Second, cfg.Indicator.Interval)
	assert.Equal(t, []string{"1"}, cfg.RTC.Args)
	assert.Equal(t, []string{"shutdown", "-h", "now"}, cfg.Power.Command)
	assert.Equal(t, "ESSID", cfg.Wifi.Marker)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `
gpio:
  driver: rpio
button:
  pin: 17
  debounce: 50ms
indicator:
  pin: 27
  interval: 2s
  active_low: true
  on_error: hold
wifi:
  interface: wlan0
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "rpio", cfg.GPIO.Driver)
	assert.Equal(t, 17, cfg.Button.Pin)
	assert.Equal(t, 50*time.Millisecond, cfg.Button.Debounce)
	assert.Equal(t, 27, cfg.Indicator.Pin)
	assert.Equal(t, 2*time.Second, cfg.Indicator.Interval)
	assert.True(t, cfg.Indicator.ActiveLow)
	assert.Equal(t, OnErrorHold, cfg.Indicator.OnError)
	assert.Equal(t, "wlan0", cfg.Wifi.Interface)
	// untouched sections keep their defaults
	assert.Equal(t, "iwgetid", cfg.Wifi.Command)
	assert.Equal(t, RTCMethodCommand, cfg.RTC.Method)
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := writeFile(t, "config.yaml", "indicator:\n  interval: soon\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time.Duration")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvGPIODriver, "stub")
	t.Setenv(EnvButtonPin, "5")
	t.Setenv(EnvLEDPin, "6")
	t.Setenv(EnvWifiInterface, "wlan1")
	t.Setenv(EnvLogFile, "/tmp/piservices.log")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "stub", cfg.GPIO.Driver)
	assert.Equal(t, 5, cfg.Button.Pin)
	assert.Equal(t, 6, cfg.Indicator.Pin)
	assert.Equal(t, "wlan1", cfg.Wifi.Interface)
	assert.Equal(t, "/tmp/piservices.log", cfg.LogFile)
}

func TestLoad_EnvBadNumber(t *testing.T) {
	t.Setenv(EnvLEDPin, "ten")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvLEDPin)
}

func TestFromEnvironment_EnvFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	envPath := writeFile(t, "piservices.env", "PISERVICES_CONFIG="+cfgPath+"\nPISERVICES_LED_PIN=22\n")
	require.NoError(t, os.WriteFile(cfgPath, []byte("indicator:\n  pin: 11\n"), 0644))

	t.Setenv(EnvEnvFile, envPath)
	// godotenv exports into the process; make sure t restores them.
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvLEDPin, "")
	os.Unsetenv(EnvConfig)
	os.Unsetenv(EnvLEDPin)

	cfg, path, err := FromEnvironment()
	require.NoError(t, err)
	assert.Equal(t, cfgPath, path)
	assert.Equal(t, 22, cfg.Indicator.Pin, "environment beats the file")
}

func TestSave_WritesDurationStrings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "interval: 1s")
	assert.Contains(t, string(data), "timeout: 30s")
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etc", "piservices", "config.yaml")
	cfg := Default()
	cfg.Indicator.Pin = 12
	cfg.Button.Debounce = 20 * time.Millisecond

	require.NoError(t, Save(path, cfg))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file must be renamed away")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
