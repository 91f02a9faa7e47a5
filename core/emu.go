package core

import (
	"github.com/sarchlab/everisa/instr"
)

type coreState struct {
	PC        int
	Registers [instr.NumRegisters]int64
	Stack     []int64
	Code      instr.Program

	Retired int // instructions executed, skipped unknown ones included
	Err     error
}

func (s *coreState) halted() bool {
	return s.Err != nil || s.PC >= len(s.Code)
}

type instFunc func(inst instr.Inst, state *coreState) error

type instEmulator struct {
	strict bool
	funcs  map[instr.Opcode]instFunc
}

func newInstEmulator(strict bool) instEmulator {
	i := instEmulator{strict: strict}

	i.funcs = map[instr.Opcode]instFunc{
		instr.MOV:  i.runMov,
		instr.PUSH: i.runPush,
		instr.POP:  i.runPop,
		instr.ADD:  i.runAdd,
		instr.SUB:  i.runSub,
		instr.MUL:  i.runMul,
		instr.DIV:  i.runDiv,
	}

	return i
}

// RunInst executes one instruction and advances the PC. On error the PC
// keeps pointing at the failing instruction.
func (i instEmulator) RunInst(inst instr.Inst, state *coreState) error {
	if f, ok := i.funcs[inst.Op]; ok {
		return f(inst, state)
	}

	if i.strict {
		return instr.ErrUnknownOpcode
	}

	Trace("Skip", "PC", state.PC, "Inst", inst.Raw)
	state.PC++

	return nil
}

func (i instEmulator) checkRegister(reg instr.Register) error {
	if reg < 0 || int(reg) >= instr.NumRegisters {
		return instr.ErrUnknownRegister
	}
	return nil
}

// runMov handles MOV Reg, Imm.
func (i instEmulator) runMov(inst instr.Inst, state *coreState) error {
	if err := i.checkRegister(inst.Reg); err != nil {
		return err
	}

	state.Registers[inst.Reg] = inst.Imm
	state.PC++

	return nil
}

// runPush handles PUSH Reg.
func (i instEmulator) runPush(inst instr.Inst, state *coreState) error {
	if err := i.checkRegister(inst.Reg); err != nil {
		return err
	}

	state.Stack = append(state.Stack, state.Registers[inst.Reg])
	state.PC++

	return nil
}

// runPop handles POP Reg.
func (i instEmulator) runPop(inst instr.Inst, state *coreState) error {
	if err := i.checkRegister(inst.Reg); err != nil {
		return err
	}

	top := len(state.Stack) - 1
	if top < 0 {
		return ErrStackUnderflow
	}

	state.Registers[inst.Reg] = state.Stack[top]
	state.Stack = state.Stack[:top]
	state.PC++

	return nil
}

// Arithmetic always leaves its result in RAX, whatever operands the text
// form spells out. POP RBX restores the left operand after the right one
// has been computed into RAX, so SUB and DIV take RBX as the left side. A
// failing operation leaves the registers and the PC untouched.

func (i instEmulator) runArith(
	state *coreState,
	op func(left, right int64) (int64, error),
) error {
	v, err := op(state.Registers[instr.RBX], state.Registers[instr.RAX])
	if err != nil {
		return err
	}

	state.Registers[instr.RAX] = v
	state.PC++

	return nil
}

func (i instEmulator) runAdd(_ instr.Inst, state *coreState) error {
	return i.runArith(state, CheckedAdd)
}

func (i instEmulator) runSub(_ instr.Inst, state *coreState) error {
	return i.runArith(state, CheckedSub)
}

func (i instEmulator) runMul(_ instr.Inst, state *coreState) error {
	return i.runArith(state, CheckedMul)
}

func (i instEmulator) runDiv(_ instr.Inst, state *coreState) error {
	return i.runArith(state, CheckedFloorDiv)
}
