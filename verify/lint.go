package verify

import (
	"fmt"

	"github.com/sarchlab/everisa/core"
	"github.com/sarchlab/everisa/instr"
)

// known is a value the linter may or may not be able to predict.
type known struct {
	val int64
	ok  bool
}

// lintState follows a program without running it. Immediates are tracked
// through the registers and the stack so that constant divisors can be
// checked.
type lintState struct {
	regs    [instr.NumRegisters]known
	stack   []known
	wroteAX bool
}

// RunLint performs static checks on an instruction program and returns the
// issues found, or an empty list if there are none. Arithmetic on known
// values that overflows int64 is reported like a known-zero divisor.
//
// The machine starts with zeroed registers, so reads before any write are
// known zeros. After an underflow the stack depth is clamped at zero and
// checking continues.
func RunLint(program instr.Program) []Issue {
	var issues []Issue

	st := &lintState{}
	for i := range st.regs {
		st.regs[i] = known{ok: true}
	}

	for pc, inst := range program {
		issues = append(issues, st.step(pc, inst)...)
	}

	if depth := len(st.stack); depth != 0 {
		issues = append(issues, Issue{
			Type:    IssueStack,
			PC:      -1,
			Message: fmt.Sprintf("Stack not balanced: %d value(s) left after the last instruction", depth),
			Details: map[string]interface{}{"depth": depth},
		})
	}

	if !st.wroteAX {
		issues = append(issues, Issue{
			Type:    IssueResult,
			PC:      -1,
			Message: "No instruction writes the result register RAX",
		})
	}

	return issues
}

func (st *lintState) step(pc int, inst instr.Inst) []Issue {
	switch inst.Op {
	case instr.Unknown:
		return []Issue{{
			Type:    IssueOpcode,
			PC:      pc,
			Message: fmt.Sprintf("Unknown opcode at %d: %q is skipped by the machine", pc, inst.Raw),
			Details: map[string]interface{}{"text": inst.Raw},
		}}
	case instr.MOV:
		st.write(inst.Reg, known{val: inst.Imm, ok: true})
	case instr.PUSH:
		st.stack = append(st.stack, st.regs[inst.Reg])
	case instr.POP:
		top := len(st.stack) - 1
		if top < 0 {
			st.write(inst.Reg, known{})
			return []Issue{{
				Type:    IssueStack,
				PC:      pc,
				Message: fmt.Sprintf("Stack underflow at %d: POP %s on an empty stack", pc, inst.Reg),
			}}
		}
		st.write(inst.Reg, st.stack[top])
		st.stack = st.stack[:top]
	default:
		return st.arith(pc, inst)
	}

	return nil
}

func (st *lintState) arith(pc int, inst instr.Inst) []Issue {
	left, right := st.regs[instr.RBX], st.regs[instr.RAX]

	if inst.Op == instr.DIV && right.ok && right.val == 0 {
		st.write(instr.RAX, known{})
		return []Issue{{
			Type:    IssueArith,
			PC:      pc,
			Message: fmt.Sprintf("Division by zero at %d: divisor RAX is always 0", pc),
			Details: map[string]interface{}{"dividend": describe(left)},
		}}
	}

	if !left.ok || !right.ok {
		st.write(instr.RAX, known{})
		return nil
	}

	v, err := core.Arith(inst.Op, left.val, right.val)
	if err != nil {
		st.write(instr.RAX, known{})
		return []Issue{{
			Type:    IssueArith,
			PC:      pc,
			Message: fmt.Sprintf("Overflow at %d: %s of %d and %d does not fit in int64", pc, inst.Op, left.val, right.val),
			Details: map[string]interface{}{"left": left.val, "right": right.val},
		}}
	}

	st.write(instr.RAX, known{val: v, ok: true})

	return nil
}

func (st *lintState) write(reg instr.Register, v known) {
	if reg == instr.RAX {
		st.wroteAX = true
	}
	st.regs[reg] = v
}

func describe(k known) string {
	if !k.ok {
		return "unknown"
	}
	return fmt.Sprint(k.val)
}
