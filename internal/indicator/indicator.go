// Package indicator drives a status LED from the Wi-Fi association state.
package indicator

import (
	"context"
	"fmt"
	"time"

	"piservices/internal/clock"
	"piservices/internal/eventlog"
	"piservices/internal/hal"
	"piservices/internal/wifi"
)

// Config describes the LED wiring and polling.
type Config struct {
	Pin      int
	Interval time.Duration
	// ActiveLow is set for an LED wired between 3V3 and the pin: it is lit
	// while the pin is driven low.
	ActiveLow bool
	// HoldOnError leaves the LED as it was when the probe fails. Otherwise
	// a failed probe switches the LED off.
	HoldOnError bool
}

// Indicator polls a wifi.Probe and mirrors the result on an output pin.
type Indicator struct {
	cfg    Config
	pin    hal.OutputPin
	probe  wifi.Probe
	logger *eventlog.EventLogger
	sleep  func(ctx context.Context, d time.Duration) error

	reported bool
	last     wifi.Result
	lastErr  string
}

// New configures the LED pin as an output, initially off.
func New(host hal.Host, cfg Config, probe wifi.Probe, logger *eventlog.EventLogger) (*Indicator, error) {
	ind := &Indicator{cfg: cfg, probe: probe, logger: logger, sleep: clock.Sleep}
	pin, err := host.Output(cfg.Pin, ind.level(false))
	if err != nil {
		return nil, fmt.Errorf("wifi indicator: %w", err)
	}
	ind.pin = pin
	return ind, nil
}

// Run sleeps one interval, probes and updates the LED, until ctx is
// cancelled. Probe and pin errors are logged and the loop carries on. The
// LED is switched off on the way out; Run returns ctx.Err().
func (ind *Indicator) Run(ctx context.Context) error {
	ind.logger.Log("watching wifi, led on GPIO%d every %s", ind.cfg.Pin, ind.cfg.Interval)
	defer ind.pin.Halt()
	for {
		if err := ind.sleep(ctx, ind.cfg.Interval); err != nil {
			ind.set(false)
			return err
		}
		if _, err := ind.Step(ctx); err != nil {
			if ctx.Err() != nil {
				continue
			}
			ind.logger.Log("%v", err)
		}
	}
}

// Step runs one probe and drives the LED from it. A probe failure yields
// status Unknown and is not returned; the error is only logged. The returned
// error is a failure to drive the pin.
func (ind *Indicator) Step(ctx context.Context) (wifi.Result, error) {
	res, err := ind.probe.Check(ctx)
	if err != nil {
		res = wifi.Result{Status: wifi.Unknown}
		if ctx.Err() != nil {
			return res, nil
		}
		ind.report(res, err)
		if ind.cfg.HoldOnError {
			return res, nil
		}
		return res, ind.set(false)
	}
	ind.report(res, nil)
	return res, ind.set(res.Status == wifi.Associated)
}

func (ind *Indicator) level(on bool) hal.Level {
	return hal.Level(on != ind.cfg.ActiveLow)
}

func (ind *Indicator) set(on bool) error {
	if err := ind.pin.Set(ind.level(on)); err != nil {
		return fmt.Errorf("wifi indicator: %w", err)
	}
	return nil
}

// report logs status changes only, so a steady state is logged once.
func (ind *Indicator) report(res wifi.Result, err error) {
	var msg string
	if err != nil {
		msg = err.Error()
	}
	if ind.reported && res == ind.last && msg == ind.lastErr {
		return
	}
	ind.reported, ind.last, ind.lastErr = true, res, msg

	switch {
	case err != nil:
		ind.logger.Log("wifi state %s: %v", res.Status, err)
	case res.Status == wifi.Associated:
		ind.logger.Log("associated with %q", res.SSID)
	default:
		ind.logger.Log("%s", res.Status)
	}
}
