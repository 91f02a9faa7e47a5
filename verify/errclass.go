package verify

import (
	"errors"

	"github.com/sarchlab/everisa/codegen"
	"github.com/sarchlab/everisa/core"
	"github.com/sarchlab/everisa/instr"
	"github.com/sarchlab/everisa/parser"
)

// Error classes used by conformance cases.
const (
	ClassSyntax         = "syntax"
	ClassEndOfInput     = "end_of_input"
	ClassUnsupported    = "unsupported"
	ClassDivideByZero   = "divide_by_zero"
	ClassOverflow       = "overflow"
	ClassStackUnderflow = "stack_underflow"
	ClassUnknownReg     = "unknown_register"
	ClassMalformed      = "malformed"
	ClassUnknownOpcode  = "unknown_opcode"
	ClassOther          = "other"
)

var classes = []struct {
	target error
	name   string
}{
	{parser.ErrSyntax, ClassSyntax},
	{parser.ErrEndOfInput, ClassEndOfInput},
	{codegen.ErrUnsupportedNode, ClassUnsupported},
	{core.ErrDivideByZero, ClassDivideByZero},
	{core.ErrOverflow, ClassOverflow},
	{core.ErrStackUnderflow, ClassStackUnderflow},
	{instr.ErrUnknownRegister, ClassUnknownReg},
	{instr.ErrMalformed, ClassMalformed},
	{instr.ErrUnknownOpcode, ClassUnknownOpcode},
}

// ErrorClass names the kind of a pipeline error. It returns "" for nil.
func ErrorClass(err error) string {
	if err == nil {
		return ""
	}

	for _, c := range classes {
		if errors.Is(err, c.target) {
			return c.name
		}
	}

	return ClassOther
}
