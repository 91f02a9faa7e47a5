// Package instr defines the EverISA instruction set and its text encoding.
//
// The in-process representation is a structured Inst. Text is only produced
// and consumed at the boundary between the code generator and the machine:
//
//	MOV RAX, 5
//	PUSH RAX
//	POP RBX
//	ADD RAX, RBX
//	SUB RAX, RBX
//	MUL RBX
//	DIV RBX
package instr

import (
	"fmt"
	"strings"
)

// Opcode identifies an instruction.
type Opcode int

const (
	// Unknown marks a decoded line whose opcode is not part of the ISA.
	Unknown Opcode = iota
	MOV
	PUSH
	POP
	ADD
	SUB
	MUL
	DIV
)

var opcodeNames = [...]string{
	Unknown: "UNKNOWN",
	MOV:     "MOV",
	PUSH:    "PUSH",
	POP:     "POP",
	ADD:     "ADD",
	SUB:     "SUB",
	MUL:     "MUL",
	DIV:     "DIV",
}

func (o Opcode) String() string {
	if int(o) >= 0 && int(o) < len(opcodeNames) {
		return opcodeNames[o]
	}
	return fmt.Sprintf("Opcode(%d)", int(o))
}

// LookupOpcode maps a mnemonic to its Opcode. Mnemonics are case sensitive.
func LookupOpcode(name string) (Opcode, bool) {
	for op := MOV; op <= DIV; op++ {
		if opcodeNames[op] == name {
			return op, true
		}
	}
	return Unknown, false
}

// Register names one of the two machine registers.
type Register int

const (
	RAX Register = iota
	RBX

	// NumRegisters is the size of the register file.
	NumRegisters = 2
)

func (r Register) String() string {
	switch r {
	case RAX:
		return "RAX"
	case RBX:
		return "RBX"
	default:
		return fmt.Sprintf("Register(%d)", int(r))
	}
}

// LookupRegister maps a register name to its Register.
func LookupRegister(name string) (Register, bool) {
	switch name {
	case "RAX":
		return RAX, true
	case "RBX":
		return RBX, true
	default:
		return 0, false
	}
}

// Inst is one structured instruction.
type Inst struct {
	Op  Opcode
	Reg Register // MOV, PUSH and POP target; implicit for arithmetic
	Imm int64    // MOV immediate

	// Raw keeps the source line of an Unknown instruction.
	Raw string
}

// Mov builds MOV reg, imm.
func Mov(reg Register, imm int64) Inst { return Inst{Op: MOV, Reg: reg, Imm: imm} }

// Push builds PUSH reg.
func Push(reg Register) Inst { return Inst{Op: PUSH, Reg: reg} }

// Pop builds POP reg.
func Pop(reg Register) Inst { return Inst{Op: POP, Reg: reg} }

// Add builds ADD RAX, RBX.
func Add() Inst { return Inst{Op: ADD, Reg: RAX} }

// Sub builds SUB RAX, RBX.
func Sub() Inst { return Inst{Op: SUB, Reg: RAX} }

// Mul builds MUL RBX.
func Mul() Inst { return Inst{Op: MUL, Reg: RBX} }

// Div builds DIV RBX.
func Div() Inst { return Inst{Op: DIV, Reg: RBX} }

// String encodes the instruction as one line of program text.
func (i Inst) String() string {
	switch i.Op {
	case MOV:
		return fmt.Sprintf("MOV %s, %d", i.Reg, i.Imm)
	case PUSH:
		return "PUSH " + i.Reg.String()
	case POP:
		return "POP " + i.Reg.String()
	case ADD:
		return "ADD RAX, RBX"
	case SUB:
		return "SUB RAX, RBX"
	case MUL:
		return "MUL RBX"
	case DIV:
		return "DIV RBX"
	default:
		return i.Raw
	}
}

// Program is an ordered instruction sequence.
type Program []Inst

// Lines encodes every instruction as one text line.
func (p Program) Lines() []string {
	lines := make([]string, 0, len(p))
	for _, inst := range p {
		lines = append(lines, inst.String())
	}
	return lines
}

// String joins the encoded lines with newlines.
func (p Program) String() string {
	return strings.Join(p.Lines(), "\n")
}
