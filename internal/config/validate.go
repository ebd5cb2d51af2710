package config

import (
	"errors"
	"fmt"

	"piservices/internal/hal"
)

// Validate checks configuration correctness. All problems are reported,
// not just the first.
func Validate(cfg *Config) error {
	var errs []error

	switch cfg.GPIO.Driver {
	case "", hal.DriverPeriph, hal.DriverRPIO, hal.DriverStub:
	default:
		errs = append(errs, fmt.Errorf("gpio.driver: unknown driver %q", cfg.GPIO.Driver))
	}

	if cfg.Button.Pin < 0 {
		errs = append(errs, fmt.Errorf("button.pin: %d is negative", cfg.Button.Pin))
	}
	if cfg.Indicator.Pin < 0 {
		errs = append(errs, fmt.Errorf("indicator.pin: %d is negative", cfg.Indicator.Pin))
	}
	if cfg.Button.Pin == cfg.Indicator.Pin {
		errs = append(errs, fmt.Errorf("button.pin and indicator.pin both use GPIO%d", cfg.Button.Pin))
	}
	if cfg.Button.Debounce < 0 {
		errs = append(errs, errors.New("button.debounce: must not be negative"))
	}

	switch cfg.RTC.Method {
	case RTCMethodCommand:
		if cfg.RTC.Command == "" {
			errs = append(errs, errors.New("rtc.command: required for method command"))
		}
	case RTCMethodDevice:
		if cfg.RTC.Device == "" {
			errs = append(errs, errors.New("rtc.device: required for method device"))
		}
	default:
		errs = append(errs, fmt.Errorf("rtc.method: unknown method %q", cfg.RTC.Method))
	}

	switch cfg.Power.Method {
	case PowerMethodCommand:
		if len(cfg.Power.Command) == 0 || cfg.Power.Command[0] == "" {
			errs = append(errs, errors.New("power.command: required for method command"))
		}
	case PowerMethodSyscall:
	default:
		errs = append(errs, fmt.Errorf("power.method: unknown method %q", cfg.Power.Method))
	}

	switch cfg.Wifi.Probe {
	case ProbeIwgetid:
		if cfg.Wifi.Command == "" {
			errs = append(errs, errors.New("wifi.command: required for probe iwgetid"))
		}
		if cfg.Wifi.Marker == "" {
			errs = append(errs, errors.New("wifi.marker: must not be empty"))
		}
	case ProbeNetlink:
	default:
		errs = append(errs, fmt.Errorf("wifi.probe: unknown probe %q", cfg.Wifi.Probe))
	}

	if cfg.Indicator.Interval <= 0 {
		errs = append(errs, errors.New("indicator.interval: must be positive"))
	}
	switch cfg.Indicator.OnError {
	case OnErrorOff, OnErrorHold:
	default:
		errs = append(errs, fmt.Errorf("indicator.on_error: unknown policy %q", cfg.Indicator.OnError))
	}

	return errors.Join(errs...)
}
