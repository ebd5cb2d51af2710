//go:build linux && !disablegpio

package hal

import (
	"context"
	"fmt"

	// Use the new periph module layout.  See https://periph.io/news/2020/a_new_start/
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

type periphHost struct{}

// openPeriph initialises periph host state. host.Init can safely be called
// multiple times; subsequent calls are no-ops.
func openPeriph() (Host, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	return periphHost{}, nil
}

func (periphHost) lookup(pin int) (gpio.PinIO, error) {
	p := gpioreg.ByName(fmt.Sprintf("GPIO%d", pin))
	if p == nil {
		return nil, fmt.Errorf("gpio%d: no such pin", pin)
	}
	return p, nil
}

func (h periphHost) Input(pin int, pull Pull, edge Edge) (InputPin, error) {
	p, err := h.lookup(pin)
	if err != nil {
		return nil, err
	}
	if err := p.In(periphPull(pull), periphEdge(edge)); err != nil {
		return nil, fmt.Errorf("gpio%d: configure input: %w", pin, err)
	}
	return &periphInput{num: pin, p: p}, nil
}

func (h periphHost) Output(pin int, initial Level) (OutputPin, error) {
	p, err := h.lookup(pin)
	if err != nil {
		return nil, err
	}
	if err := p.Out(gpio.Level(initial)); err != nil {
		return nil, fmt.Errorf("gpio%d: configure output: %w", pin, err)
	}
	return &periphOutput{num: pin, p: p}, nil
}

func (periphHost) Close() error { return nil }

func periphPull(p Pull) gpio.Pull {
	switch p {
	case PullUp:
		return gpio.PullUp
	case PullDown:
		return gpio.PullDown
	default:
		return gpio.Float
	}
}

func periphEdge(e Edge) gpio.Edge {
	switch e {
	case EdgeFalling:
		return gpio.FallingEdge
	case EdgeRising:
		return gpio.RisingEdge
	case EdgeBoth:
		return gpio.BothEdges
	default:
		return gpio.NoEdge
	}
}

type periphInput struct {
	num int
	p   gpio.PinIO
}

func (in *periphInput) Number() int { return in.num }

func (in *periphInput) Read() (Level, error) {
	return Level(in.p.Read()), nil
}

// WaitForEdge sleeps in the kernel's edge wait. The wait is cut into
// edgePollInterval slices so a cancelled context is noticed.
func (in *periphInput) WaitForEdge(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if in.p.WaitForEdge(edgePollInterval) {
			return nil
		}
	}
}

func (in *periphInput) Halt() error { return in.p.Halt() }

type periphOutput struct {
	num int
	p   gpio.PinIO
}

func (out *periphOutput) Number() int { return out.num }

func (out *periphOutput) Set(level Level) error {
	if err := out.p.Out(gpio.Level(level)); err != nil {
		return fmt.Errorf("gpio%d: set %s: %w", out.num, level, err)
	}
	return nil
}

func (out *periphOutput) Halt() error { return out.p.Halt() }
