// Package button implements the shutdown button service: a push button
// between a GPIO pin and ground that saves the clock to the RTC and powers
// the Pi off when pressed.
package button

import (
	"context"
	"fmt"
	"time"

	"piservices/internal/clock"
	"piservices/internal/eventlog"
	"piservices/internal/hal"
	"piservices/internal/power"
	"piservices/internal/rtc"
)

// Config describes the button wiring.
type Config struct {
	Pin int // BCM numbering
	// Debounce, when positive, re-reads the pin this long after the falling
	// edge and ignores the press if the pin is high again.
	Debounce time.Duration
}

// Watcher waits for one press and then runs the shutdown sequence.
type Watcher struct {
	cfg    Config
	pin    hal.InputPin
	rtc    rtc.Syncer
	halter power.Halter
	logger *eventlog.EventLogger
	sleep  func(ctx context.Context, d time.Duration) error
}

// New configures the button pin as a pulled-up input reporting falling
// edges. A pin that cannot be configured is returned as an error so the
// service fails at start instead of never reacting to the button.
func New(host hal.Host, cfg Config, syncer rtc.Syncer, halter power.Halter, logger *eventlog.EventLogger) (*Watcher, error) {
	pin, err := host.Input(cfg.Pin, hal.PullUp, hal.EdgeFalling)
	if err != nil {
		return nil, fmt.Errorf("shutdown button: %w", err)
	}
	return &Watcher{
		cfg:    cfg,
		pin:    pin,
		rtc:    syncer,
		halter: halter,
		logger: logger,
		sleep:  clock.Sleep,
	}, nil
}

// Run blocks until the button is pressed, writes the time to the RTC and
// halts the system. An RTC failure is logged and does not stop the halt.
// If ctx is cancelled before the press, Run returns ctx.Err() and nothing
// else happens.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.pin.Halt()

	w.logger.Log("waiting for button on GPIO%d", w.cfg.Pin)
	if err := w.waitForPress(ctx); err != nil {
		return err
	}
	w.logger.Log("button pressed, shutting down")

	// Once the button has been pressed the sequence is not cancellable: the
	// init system may already be signalling us while we halt.
	seq := context.Background()
	if err := w.rtc.Sync(seq); err != nil {
		w.logger.Log("continuing without rtc update: %v", err)
	} else {
		w.logger.Log("rtc updated")
	}
	if err := w.halter.Halt(seq); err != nil {
		return err
	}
	return nil
}

func (w *Watcher) waitForPress(ctx context.Context) error {
	for {
		if err := w.pin.WaitForEdge(ctx); err != nil {
			return err
		}
		if w.cfg.Debounce <= 0 {
			return nil
		}
		if err := w.sleep(ctx, w.cfg.Debounce); err != nil {
			return err
		}
		lvl, err := w.pin.Read()
		if err != nil {
			return fmt.Errorf("shutdown button: read GPIO%d: %w", w.cfg.Pin, err)
		}
		if lvl == hal.Low {
			return nil
		}
		w.logger.Log("ignoring glitch on GPIO%d, released within %s", w.cfg.Pin, w.cfg.Debounce)
	}
}
