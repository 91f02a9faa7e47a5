// Package core implements the EverISA machine: two registers, RAX and RBX,
// and a stack of integers. The machine is an akita ticking component that
// retires one instruction per tick.
package core

import (
	"io"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/everisa/instr"
)

// HookPosInstRetired marks the hook invoked after every instruction. The
// hook item is an InstRecord.
var HookPosInstRetired = &sim.HookPos{Name: "InstRetired"}

// InstRecord describes one executed instruction.
type InstRecord struct {
	PC         int
	Inst       instr.Inst
	RAX, RBX   int64
	StackDepth int
	Err        error
}

// Core is an EverISA machine. A Core is not safe for concurrent use.
type Core struct {
	*sim.TickingComponent

	state coreState
	emu   instEmulator

	stateDump io.Writer
	ticks     int
}

// MapProgram loads a program and rewinds the PC. Registers and the stack are
// kept; call Reset for a clean machine.
func (c *Core) MapProgram(program instr.Program) {
	c.state.Code = program
	c.state.PC = 0
	c.state.Err = nil

	Trace("MapProgram",
		"Core", c.Name(),
		"Length", len(program),
	)
}

// Execute decodes program text lines and runs them to completion.
func (c *Core) Execute(lines []string) error {
	program, err := instr.DecodeLines(lines)
	if err != nil {
		return err
	}

	return c.ExecuteProgram(program)
}

// ExecuteProgram runs a structured program to completion. The call returns
// once the engine has no more events; the first failing instruction stops
// the run and is reported as an *ExecError.
func (c *Core) ExecuteProgram(program instr.Program) error {
	c.MapProgram(program)

	if !c.state.halted() {
		c.TickLater()

		if err := c.Engine.Run(); err != nil {
			return err
		}
	}

	LogState(c.Name(), &c.state)

	if c.stateDump != nil {
		PrintState(c.stateDump, c.Name(), &c.state)
	}

	return c.state.Err
}

// Tick retires one instruction.
func (c *Core) Tick() (madeProgress bool) {
	if c.state.halted() {
		return false
	}

	c.ticks++

	pc := c.state.PC
	inst := c.state.Code[pc]

	err := c.emu.RunInst(inst, &c.state)
	if err != nil {
		c.state.Err = &ExecError{PC: pc, Inst: inst, Err: err}
	}
	c.state.Retired++

	Trace("Inst",
		"Core", c.Name(),
		"Time", float64(c.Engine.CurrentTime()*1e9),
		"PC", pc,
		"Inst", inst.String(),
		"RAX", c.state.Registers[instr.RAX],
		"RBX", c.state.Registers[instr.RBX],
		"Stack", len(c.state.Stack),
	)

	if c.NumHooks() > 0 {
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosInstRetired,
			Item: InstRecord{
				PC:         pc,
				Inst:       inst,
				RAX:        c.state.Registers[instr.RAX],
				RBX:        c.state.Registers[instr.RBX],
				StackDepth: len(c.state.Stack),
				Err:        c.state.Err,
			},
		})
	}

	return !c.state.halted()
}

// Register returns the value held by reg.
func (c *Core) Register(reg instr.Register) int64 {
	return c.state.Registers[reg]
}

// Registers returns a copy of the register file, indexed by instr.Register.
func (c *Core) Registers() [instr.NumRegisters]int64 {
	return c.state.Registers
}

// Stack returns a copy of the stack, bottom first.
func (c *Core) Stack() []int64 {
	return append([]int64(nil), c.state.Stack...)
}

// StackDepth returns the number of values on the stack.
func (c *Core) StackDepth() int {
	return len(c.state.Stack)
}

// PC returns the index of the next instruction.
func (c *Core) PC() int {
	return c.state.PC
}

// Retired returns how many instructions have executed since the last Reset.
func (c *Core) Retired() int {
	return c.state.Retired
}

// Ticks returns how many ticks retired an instruction since the last Reset.
func (c *Core) Ticks() int {
	return c.ticks
}

// Reset zeroes the registers, empties the stack and unloads the program.
func (c *Core) Reset() {
	c.state = coreState{}
	c.ticks = 0
}
