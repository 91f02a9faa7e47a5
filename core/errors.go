package core

import (
	"errors"
	"fmt"

	"github.com/sarchlab/everisa/instr"
)

var (
	// ErrDivideByZero matches a DIV whose divisor register holds zero.
	ErrDivideByZero = errors.New("integer division by zero")

	// ErrOverflow matches arithmetic whose result does not fit in int64.
	ErrOverflow = errors.New("integer overflow")

	// ErrStackUnderflow matches a POP on an empty stack.
	ErrStackUnderflow = errors.New("pop from empty stack")
)

// ExecError reports the instruction that stopped execution.
type ExecError struct {
	PC   int
	Inst instr.Inst
	Err  error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("pc %d (%s): %v", e.PC, e.Inst, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }
