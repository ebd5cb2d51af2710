package config

import (
	"time"

	"piservices/internal/hal"
)

// Method and policy names.
const (
	RTCMethodCommand = "command"
	RTCMethodDevice  = "device"

	PowerMethodCommand = "command"
	PowerMethodSyscall = "syscall"

	ProbeIwgetid = "iwgetid"
	ProbeNetlink = "nl80211"

	OnErrorOff  = "off"
	OnErrorHold = "hold"
)

// Config is the top-level structure read from config.yaml. Durations are
// written as Go duration strings ("1s", "50ms"). Both services
// read the same file; each only looks at its own sections.
type Config struct {
	GPIO      GPIOConfig      `yaml:"gpio"`
	LogFile   string          `yaml:"log_file"` // empty logs to stderr only
	Button    ButtonConfig    `yaml:"button"`
	RTC       RTCConfig       `yaml:"rtc"`
	Power     PowerConfig     `yaml:"power"`
	Wifi      WifiConfig      `yaml:"wifi"`
	Indicator IndicatorConfig `yaml:"indicator"`
}

type GPIOConfig struct {
	Driver string `yaml:"driver"` // periph (also when empty), rpio or stub
}

// ButtonConfig describes the shutdown button, wired from the pin to ground.
type ButtonConfig struct {
	Pin      int           `yaml:"pin"`      // BCM numbering
	Debounce time.Duration `yaml:"debounce"` // 0 acts on the first falling edge
}

type RTCConfig struct {
	Method  string        `yaml:"method"`
	Command string        `yaml:"command"`
	Args    []string      `yaml:"args"`
	Device  string        `yaml:"device"`
	Timeout time.Duration `yaml:"timeout"`
}

type PowerConfig struct {
	Method  string   `yaml:"method"`
	Command []string `yaml:"command"`
}

type WifiConfig struct {
	Probe     string        `yaml:"probe"`
	Command   string        `yaml:"command"`
	Interface string        `yaml:"interface"` // empty checks any wireless interface
	Marker    string        `yaml:"marker"`
	Timeout   time.Duration `yaml:"timeout"`
}

// IndicatorConfig describes the Wi-Fi status LED.
type IndicatorConfig struct {
	Pin       int           `yaml:"pin"`
	Interval  time.Duration `yaml:"interval"`
	ActiveLow bool          `yaml:"active_low"` // LED wired to 3V3, lit when the pin is low
	OnError   string        `yaml:"on_error"`   // off or hold
}

// Default returns the built-in configuration: button on BCM 3, LED on BCM 10,
// DS1302 clock script, shutdown(8) and iwgetid.
func Default() Config {
	return Config{
		GPIO: GPIOConfig{Driver: hal.DriverPeriph},
		Button: ButtonConfig{
			Pin: 3,
		},
		RTC: RTCConfig{
			Method:  RTCMethodCommand,
			Command: "/home/pi/services/DS1302/setDateToRTC.py",
			Args:    []string{"1"},
			Device:  "/dev/rtc0",
			Timeout: 30 * time.Second,
		},
		Power: PowerConfig{
			Method:  PowerMethodCommand,
			Command: []string{"shutdown", "-h", "now"},
		},
		Wifi: WifiConfig{
			Probe:   ProbeIwgetid,
			Command: "iwgetid",
			Marker:  "ESSID",
			Timeout: 5 * time.Second,
		},
		Indicator: IndicatorConfig{
			Pin:      10,
			Interval: time.Second,
			OnError:  OnErrorOff,
		},
	}
}
