// Package hal is a small hardware abstraction layer for GPIO access.
//
// A Host is opened once per process for a named driver and hands out pin
// handles addressed by BCM number. The periph driver is the default on the
// Pi; rpio drives the same pins through memory-mapped registers; stub is an
// in-memory host so the services can run on a desktop machine without
// Raspberry Pi hardware.
package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Driver names accepted by Open.
const (
	DriverPeriph = "periph"
	DriverRPIO   = "rpio"
	DriverStub   = "stub"
)

// ErrUnsupported is returned by Open when the requested driver was not
// compiled into this binary (non-Linux builds or the disablegpio tag).
var ErrUnsupported = errors.New("gpio driver not supported on this platform")

// edgePollInterval bounds how long a driver blocks inside a single
// WaitForEdge call before looking at the context again.
const edgePollInterval = 500 * time.Millisecond

// Level is the logic level of a pin.
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "high"
	}
	return "low"
}

// Pull is the internal bias resistor configuration of an input.
type Pull int

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Edge selects which transitions WaitForEdge reports.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeFalling
	EdgeRising
	EdgeBoth
)

// InputPin is a pin configured as input.
type InputPin interface {
	Number() int
	Read() (Level, error)
	// WaitForEdge blocks until the configured edge is observed. It has no
	// timeout; it returns ctx.Err() only when ctx is cancelled.
	WaitForEdge(ctx context.Context) error
	Halt() error
}

// OutputPin is a pin configured as output.
type OutputPin interface {
	Number() int
	Set(level Level) error
	Halt() error
}

// Host is an initialised GPIO driver.
type Host interface {
	Input(pin int, pull Pull, edge Edge) (InputPin, error)
	// Output configures pin as output and drives it to initial before
	// returning.
	Output(pin int, initial Level) (OutputPin, error)
	Close() error
}

// Open initialises the named driver. An empty name selects periph.
func Open(driver string) (Host, error) {
	switch driver {
	case "", DriverPeriph:
		return openPeriph()
	case DriverRPIO:
		return openRPIO()
	case DriverStub:
		return NewFake(), nil
	default:
		return nil, fmt.Errorf("unknown gpio driver %q", driver)
	}
}
