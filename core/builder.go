package core

import (
	"io"

	"github.com/sarchlab/akita/v4/sim"
)

// Builder can create new cores.
type Builder struct {
	engine    sim.Engine
	freq      sim.Freq
	strict    bool
	stateDump io.Writer
}

// NewBuilder returns a builder with a 1 GHz clock and lenient decoding.
func NewBuilder() Builder {
	return Builder{
		freq: 1 * sim.GHz,
	}
}

// WithEngine sets the engine. Without one, Build creates a serial engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	if freq <= 0 {
		panic("core frequency must be positive")
	}
	b.freq = freq
	return b
}

// WithStrictOpcodes makes unknown opcodes fail execution instead of being
// skipped.
func (b Builder) WithStrictOpcodes(strict bool) Builder {
	b.strict = strict
	return b
}

// WithStateDump prints a state table to w after every run.
func (b Builder) WithStateDump(w io.Writer) Builder {
	b.stateDump = w
	return b
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	c := &Core{
		emu:       newInstEmulator(b.strict),
		stateDump: b.stateDump,
	}
	c.TickingComponent = sim.NewTickingComponent(name, engine, b.freq, c)

	return c
}
