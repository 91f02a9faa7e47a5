package instr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrMalformed matches decode failures caused by missing or bad operands.
	ErrMalformed = errors.New("malformed instruction")

	// ErrUnknownRegister matches references to registers outside RAX and RBX.
	ErrUnknownRegister = errors.New("unknown register")

	// ErrUnknownOpcode matches instructions whose opcode is not in the ISA.
	ErrUnknownOpcode = errors.New("unknown opcode")
)

// DecodeError describes a line that cannot be decoded.
type DecodeError struct {
	Line int // 1-based line number, 0 when decoding a single line
	Text string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Text)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode parses one line of program text. The line is split on whitespace;
// a register operand may carry a trailing comma ("RAX,"). Lines with an
// opcode outside the ISA decode to an Unknown instruction without error.
// Operands after the ones an opcode uses are ignored.
func Decode(line string) (Inst, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Inst{}, &DecodeError{Text: line, Err: ErrMalformed}
	}

	op, ok := LookupOpcode(fields[0])
	if !ok {
		return Inst{Op: Unknown, Raw: line}, nil
	}

	switch op {
	case MOV:
		if len(fields) < 3 {
			return Inst{}, &DecodeError{Text: line, Err: ErrMalformed}
		}

		reg, err := decodeRegister(fields[1], line)
		if err != nil {
			return Inst{}, err
		}

		imm, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return Inst{}, &DecodeError{Text: line, Err: ErrMalformed}
		}

		return Mov(reg, imm), nil
	case PUSH, POP:
		if len(fields) < 2 {
			return Inst{}, &DecodeError{Text: line, Err: ErrMalformed}
		}

		reg, err := decodeRegister(fields[1], line)
		if err != nil {
			return Inst{}, err
		}

		return Inst{Op: op, Reg: reg}, nil
	case ADD:
		return Add(), nil
	case SUB:
		return Sub(), nil
	case MUL:
		return Mul(), nil
	default:
		return Div(), nil
	}
}

func decodeRegister(field, line string) (Register, error) {
	reg, ok := LookupRegister(strings.TrimRight(field, ","))
	if !ok {
		return 0, &DecodeError{Text: line, Err: ErrUnknownRegister}
	}
	return reg, nil
}

// DecodeLines decodes a program line by line. Blank lines are skipped.
func DecodeLines(lines []string) (Program, error) {
	prog := make(Program, 0, len(lines))

	for n, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		inst, err := Decode(line)
		if err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				de.Line = n + 1
			}
			return nil, err
		}

		prog = append(prog, inst)
	}

	return prog, nil
}

// DecodeText splits text on newlines and decodes it.
func DecodeText(text string) (Program, error) {
	return DecodeLines(strings.Split(text, "\n"))
}
