// Command wifi-checker lights the status LED while the Pi is associated with
// a wireless network.
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"piservices/internal/command"
	"piservices/internal/config"
	"piservices/internal/eventlog"
	"piservices/internal/hal"
	"piservices/internal/indicator"
	"piservices/internal/wifi"
)

func main() {
	cfg, path, err := config.FromEnvironment()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	logger := eventlog.New("wifi-checker", cfg.LogFile)
	logger.Log("starting, configuration %s, gpio driver %s, probe %s", path, cfg.GPIO.Driver, cfg.Wifi.Probe)

	host, err := hal.Open(cfg.GPIO.Driver)
	if err != nil {
		log.Fatalf("gpio initialisation error: %v", err)
	}
	defer host.Close()

	var probe wifi.Probe
	switch cfg.Wifi.Probe {
	case config.ProbeNetlink:
		p, err := wifi.NewNetlinkProbe(cfg.Wifi.Interface)
		if err != nil {
			log.Fatalf("initialisation error: %v", err)
		}
		defer p.Close()
		probe = p
	default:
		probe = wifi.IwgetidProbe{
			Runner:    command.ExecRunner{Timeout: cfg.Wifi.Timeout},
			Command:   cfg.Wifi.Command,
			Interface: cfg.Wifi.Interface,
			Marker:    cfg.Wifi.Marker,
		}
	}

	ind, err := indicator.New(host, indicator.Config{
		Pin:         cfg.Indicator.Pin,
		Interval:    cfg.Indicator.Interval,
		ActiveLow:   cfg.Indicator.ActiveLow,
		HoldOnError: cfg.Indicator.OnError == config.OnErrorHold,
	}, probe, logger)
	if err != nil {
		log.Fatalf("initialisation error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := ind.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("wifi checker exited: %v", err)
	}
	logger.Log("stopped")
}
