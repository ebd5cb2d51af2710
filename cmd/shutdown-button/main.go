// Command shutdown-button powers the Pi off when the button wired to the
// configured GPIO is pressed, after saving the clock to the RTC.
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"piservices/internal/button"
	"piservices/internal/command"
	"piservices/internal/config"
	"piservices/internal/eventlog"
	"piservices/internal/hal"
	"piservices/internal/power"
	"piservices/internal/rtc"
)

func main() {
	cfg, path, err := config.FromEnvironment()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	logger := eventlog.New("shutdown-button", cfg.LogFile)
	logger.Log("starting, configuration %s, gpio driver %s", path, cfg.GPIO.Driver)

	host, err := hal.Open(cfg.GPIO.Driver)
	if err != nil {
		log.Fatalf("gpio initialisation error: %v", err)
	}
	defer host.Close()

	w, err := button.New(host,
		button.Config{Pin: cfg.Button.Pin, Debounce: cfg.Button.Debounce},
		newSyncer(cfg.RTC),
		newHalter(cfg.Power),
		logger,
	)
	if err != nil {
		log.Fatalf("initialisation error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := w.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Log("stopped")
			return
		}
		log.Fatalf("shutdown failed: %v", err)
	}
}

func newSyncer(cfg config.RTCConfig) rtc.Syncer {
	if cfg.Method == config.RTCMethodDevice {
		return rtc.DeviceSyncer{Device: cfg.Device}
	}
	return rtc.CommandSyncer{
		Runner: command.ExecRunner{Timeout: cfg.Timeout},
		Path:   cfg.Command,
		Args:   cfg.Args,
	}
}

func newHalter(cfg config.PowerConfig) power.Halter {
	if cfg.Method == config.PowerMethodSyscall {
		return power.SyscallHalter{}
	}
	return power.CommandHalter{Runner: command.ExecRunner{}, Command: cfg.Command}
}
