package core

import (
	"fmt"
	"math"

	"github.com/sarchlab/everisa/instr"
)

// Arith applies an arithmetic opcode the way the machine does, with left
// taken from RBX and right from RAX.
func Arith(op instr.Opcode, left, right int64) (int64, error) {
	switch op {
	case instr.ADD:
		return CheckedAdd(left, right)
	case instr.SUB:
		return CheckedSub(left, right)
	case instr.MUL:
		return CheckedMul(left, right)
	case instr.DIV:
		return CheckedFloorDiv(left, right)
	default:
		return 0, fmt.Errorf("%v is not an arithmetic opcode", op)
	}
}

// CheckedAdd returns a + b, or ErrOverflow.
func CheckedAdd(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// CheckedSub returns a - b, or ErrOverflow.
func CheckedSub(a, b int64) (int64, error) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, ErrOverflow
	}
	return a - b, nil
}

// CheckedMul returns a * b, or ErrOverflow.
func CheckedMul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}

	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, ErrOverflow
	}

	c := a * b
	if c/b != a {
		return 0, ErrOverflow
	}

	return c, nil
}

// CheckedFloorDiv returns FloorDiv(a, b). It fails with ErrDivideByZero when
// b is zero and with ErrOverflow for math.MinInt64 / -1.
func CheckedFloorDiv(a, b int64) (int64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}

	if a == math.MinInt64 && b == -1 {
		return 0, ErrOverflow
	}

	return FloorDiv(a, b), nil
}

// FloorDiv divides a by b rounding toward negative infinity. b must not be
// zero.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
