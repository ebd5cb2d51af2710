//go:build linux && !disablegpio

package hal

import (
	"context"
	"fmt"
	"time"

	"github.com/stianeikeland/go-rpio/v4"
)

// rpioMaxPin is the highest BCM pin exposed by the BCM283x GPIO block.
const rpioMaxPin = 53

// rpioEdgePoll is how often the edge status register is sampled. rpio has
// no blocking edge wait, so the rpio driver polls the register while
// waiting; periph, the default driver, sleeps in the kernel until the edge.
const rpioEdgePoll = 10 * time.Millisecond

type rpioHost struct{}

func openRPIO() (Host, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("rpio open: %w", err)
	}
	return rpioHost{}, nil
}

func rpioPin(pin int) (rpio.Pin, error) {
	if pin < 0 || pin > rpioMaxPin {
		return 0, fmt.Errorf("gpio%d: no such pin", pin)
	}
	return rpio.Pin(pin), nil
}

func (rpioHost) Input(pin int, pull Pull, edge Edge) (InputPin, error) {
	p, err := rpioPin(pin)
	if err != nil {
		return nil, err
	}
	p.Input()
	switch pull {
	case PullUp:
		p.PullUp()
	case PullDown:
		p.PullDown()
	default:
		p.PullOff()
	}
	switch edge {
	case EdgeFalling:
		p.Detect(rpio.FallEdge)
	case EdgeRising:
		p.Detect(rpio.RiseEdge)
	case EdgeBoth:
		p.Detect(rpio.AnyEdge)
	default:
		p.Detect(rpio.NoEdge)
	}
	return &rpioInput{num: pin, p: p}, nil
}

func (rpioHost) Output(pin int, initial Level) (OutputPin, error) {
	p, err := rpioPin(pin)
	if err != nil {
		return nil, err
	}
	p.Output()
	p.Write(rpioState(initial))
	return &rpioOutput{num: pin, p: p}, nil
}

func (rpioHost) Close() error { return rpio.Close() }

func rpioState(l Level) rpio.State {
	if l {
		return rpio.High
	}
	return rpio.Low
}

type rpioInput struct {
	num int
	p   rpio.Pin
}

func (in *rpioInput) Number() int { return in.num }

func (in *rpioInput) Read() (Level, error) {
	return in.p.Read() == rpio.High, nil
}

// WaitForEdge polls the event detect status register every rpioEdgePoll.
// Unlike the periph driver it is not a blocking wait.
func (in *rpioInput) WaitForEdge(ctx context.Context) error {
	ticker := time.NewTicker(rpioEdgePoll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if in.p.EdgeDetected() {
				return nil
			}
		}
	}
}

func (in *rpioInput) Halt() error {
	in.p.Detect(rpio.NoEdge)
	return nil
}

type rpioOutput struct {
	num int
	p   rpio.Pin
}

func (out *rpioOutput) Number() int { return out.num }

func (out *rpioOutput) Set(level Level) error {
	out.p.Write(rpioState(level))
	return nil
}

func (out *rpioOutput) Halt() error { return nil }
