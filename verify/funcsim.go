package verify

import (
	"fmt"

	"github.com/sarchlab/everisa/core"
	"github.com/sarchlab/everisa/instr"
)

// MachineState is the register and stack state of the functional simulator.
type MachineState struct {
	RAX, RBX int64
	Stack    []int64
	Retired  int
}

func (s *MachineState) reg(r instr.Register) *int64 {
	if r == instr.RBX {
		return &s.RBX
	}
	return &s.RAX
}

// FunctionalSimulator executes instruction programs one after another
// without timing. It is the oracle the machine is compared against.
type FunctionalSimulator struct {
	State MachineState

	// TraceInst, when set, is called after every retired instruction.
	TraceInst func(pc int, inst instr.Inst, state *MachineState)
}

// NewFunctionalSimulator creates a simulator with zeroed state.
func NewFunctionalSimulator() *FunctionalSimulator {
	return &FunctionalSimulator{}
}

// Run executes program on the current state. Unknown opcodes are skipped.
// Failures are reported as *core.ExecError, as the machine does.
func (fs *FunctionalSimulator) Run(program instr.Program) error {
	for pc, inst := range program {
		if err := fs.step(inst); err != nil {
			return &core.ExecError{PC: pc, Inst: inst, Err: err}
		}

		fs.State.Retired++
		if fs.TraceInst != nil {
			fs.TraceInst(pc, inst, &fs.State)
		}
	}

	return nil
}

func (fs *FunctionalSimulator) step(inst instr.Inst) error {
	s := &fs.State

	switch inst.Op {
	case instr.MOV:
		*s.reg(inst.Reg) = inst.Imm
	case instr.PUSH:
		s.Stack = append(s.Stack, *s.reg(inst.Reg))
	case instr.POP:
		if len(s.Stack) == 0 {
			return core.ErrStackUnderflow
		}
		*s.reg(inst.Reg) = s.Stack[len(s.Stack)-1]
		s.Stack = s.Stack[:len(s.Stack)-1]
	case instr.ADD, instr.SUB, instr.MUL, instr.DIV:
		v, err := core.Arith(inst.Op, s.RBX, s.RAX)
		if err != nil {
			return err
		}
		s.RAX = v
	case instr.Unknown:
	default:
		return fmt.Errorf("funcsim: unhandled opcode %v", inst.Op)
	}

	return nil
}

// Interpret runs program on a fresh functional simulator.
func Interpret(program instr.Program) (MachineState, error) {
	fs := NewFunctionalSimulator()
	err := fs.Run(program)
	return fs.State, err
}
