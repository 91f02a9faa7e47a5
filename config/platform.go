package config

import (
	"io"
	"math"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/everisa/api"
	"github.com/sarchlab/everisa/core"
)

// Platform is a driver together with the engine that runs it.
type Platform struct {
	Engine sim.Engine
	Driver api.Driver
	Tracer *core.InstTracer
}

// PlatformBuilder can build platforms from a configuration.
type PlatformBuilder struct {
	cfg       Config
	engine    sim.Engine
	stateDump io.Writer
}

// MakePlatformBuilder returns a builder for the given configuration.
func MakePlatformBuilder(cfg Config) PlatformBuilder {
	return PlatformBuilder{cfg: cfg}
}

// WithEngine sets the engine that drives the simulation.
func (b PlatformBuilder) WithEngine(engine sim.Engine) PlatformBuilder {
	b.engine = engine
	return b
}

// WithStateDump sets where the state table goes when machine.print_state is
// enabled.
func (b PlatformBuilder) WithStateDump(w io.Writer) PlatformBuilder {
	b.stateDump = w
	return b
}

// Build creates the platform.
func (b PlatformBuilder) Build(name string) *Platform {
	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	p := &Platform{Engine: engine}

	db := api.DriverBuilder{}.
		WithEngine(engine).
		WithFreq(freq(b.cfg.Machine.FreqGHz)).
		WithStrictOpcodes(b.cfg.Machine.StrictOpcodes)

	if b.cfg.Machine.PrintState {
		db = db.WithStateDump(b.stateDump)
	}

	if b.cfg.Machine.Trace {
		p.Tracer = core.NewInstTracer()
		db = db.WithHook(p.Tracer)
	}

	p.Driver = db.Build(name)

	return p
}

func freq(ghz float64) sim.Freq {
	if ghz <= 0 {
		return 1 * sim.GHz
	}

	return sim.Freq(math.Round(ghz * float64(sim.GHz)))
}
