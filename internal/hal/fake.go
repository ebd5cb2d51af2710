package hal

import (
	"context"
	"fmt"
	"sync"
)

// Fake is an in-memory Host. It backs the stub driver and is what tests use
// to inject button edges and observe LED writes.
type Fake struct {
	mu      sync.Mutex
	inputs  map[int]*FakeInput
	outputs map[int]*FakeOutput
	fail    map[int]error
	closed  bool
}

// NewFake returns an empty fake host.
func NewFake() *Fake {
	return &Fake{
		inputs:  make(map[int]*FakeInput),
		outputs: make(map[int]*FakeOutput),
		fail:    make(map[int]error),
	}
}

// FailPin makes any later attempt to configure pin return err.
func (f *Fake) FailPin(pin int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[pin] = err
}

// Input configures a fake input. A pulled-up input reads high until an
// edge or SetLevel changes it.
func (f *Fake) Input(pin int, pull Pull, edge Edge) (InputPin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail[pin]; err != nil {
		return nil, fmt.Errorf("gpio%d: configure input: %w", pin, err)
	}
	in := &FakeInput{
		num:   pin,
		Pull:  pull,
		Edge:  edge,
		level: pull == PullUp,
		edges: make(chan struct{}, 16),
	}
	f.inputs[pin] = in
	return in, nil
}

// Output configures a fake output at initial. Initial is not recorded in
// History.
func (f *Fake) Output(pin int, initial Level) (OutputPin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail[pin]; err != nil {
		return nil, fmt.Errorf("gpio%d: configure output: %w", pin, err)
	}
	out := &FakeOutput{num: pin, Initial: initial, level: initial}
	f.outputs[pin] = out
	return out, nil
}

// InputPin returns the input configured on pin, or nil.
func (f *Fake) InputPin(pin int) *FakeInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inputs[pin]
}

// OutputPin returns the output configured on pin, or nil.
func (f *Fake) OutputPin(pin int) *FakeOutput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outputs[pin]
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Closed reports whether Close was called.
func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// FakeInput is an input pin of a Fake host.
type FakeInput struct {
	num  int
	Pull Pull
	Edge Edge

	mu     sync.Mutex
	level  Level
	halted bool
	edges  chan struct{}
}

func (p *FakeInput) Number() int { return p.num }

// Trigger moves the pin to level and delivers one edge to WaitForEdge.
func (p *FakeInput) Trigger(level Level) {
	p.SetLevel(level)
	p.edges <- struct{}{}
}

// SetLevel changes what Read returns without delivering an edge.
func (p *FakeInput) SetLevel(level Level) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

func (p *FakeInput) Read() (Level, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

// WaitForEdge returns once per delivered Trigger.
func (p *FakeInput) WaitForEdge(ctx context.Context) error {
	select {
	case <-p.edges:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *FakeInput) Halt() error {
	p.mu.Lock()
	p.halted = true
	p.mu.Unlock()
	return nil
}

// Halted reports whether Halt was called.
func (p *FakeInput) Halted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.halted
}

// FakeOutput is an output pin of a Fake host. Every Set is recorded.
type FakeOutput struct {
	num     int
	Initial Level

	mu      sync.Mutex
	level   Level
	history []Level
	halted  bool
}

func (p *FakeOutput) Number() int { return p.num }

func (p *FakeOutput) Set(level Level) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	p.history = append(p.history, level)
	return nil
}

// Level returns the level last driven.
func (p *FakeOutput) Level() Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// History returns every level passed to Set, oldest first.
func (p *FakeOutput) History() []Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Level(nil), p.history...)
}

func (p *FakeOutput) Halt() error {
	p.mu.Lock()
	p.halted = true
	p.mu.Unlock()
	return nil
}

// Halted reports whether Halt was called.
func (p *FakeOutput) Halted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.halted
}
