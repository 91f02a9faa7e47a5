package api

import (
	"io"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/everisa/core"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	engine    sim.Engine
	freq      sim.Freq
	strict    bool
	stateDump io.Writer
	hooks     []sim.Hook
}

// WithEngine sets the engine.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the machine.
func (b DriverBuilder) WithFreq(freq sim.Freq) DriverBuilder {
	b.freq = freq
	return b
}

// WithStrictOpcodes makes unknown opcodes fail execution.
func (b DriverBuilder) WithStrictOpcodes(strict bool) DriverBuilder {
	b.strict = strict
	return b
}

// WithStateDump prints the machine state to w after each run.
func (b DriverBuilder) WithStateDump(w io.Writer) DriverBuilder {
	b.stateDump = w
	return b
}

// WithHook attaches a hook to the machine.
func (b DriverBuilder) WithHook(hook sim.Hook) DriverBuilder {
	b.hooks = append(append([]sim.Hook(nil), b.hooks...), hook)
	return b
}

// Build creates a driver together with the machine it runs on.
func (b DriverBuilder) Build(name string) Driver {
	cb := core.NewBuilder().
		WithEngine(b.engine).
		WithStrictOpcodes(b.strict).
		WithStateDump(b.stateDump)
	if b.freq > 0 {
		cb = cb.WithFreq(b.freq)
	}

	c := cb.Build(name + ".Core")
	for _, h := range b.hooks {
		c.AcceptHook(h)
	}

	return &driverImpl{
		name:    name,
		machine: c,
	}
}
