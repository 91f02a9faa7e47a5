package api

import "github.com/sarchlab/everisa/instr"

//go:generate mockgen -source=machine.go -destination=mock_machine_test.go -package=api

// machine is the part of core.Core the driver depends on.
type machine interface {
	Reset()
	ExecuteProgram(program instr.Program) error
	Registers() [instr.NumRegisters]int64
	StackDepth() int
	Retired() int
	Ticks() int
}
