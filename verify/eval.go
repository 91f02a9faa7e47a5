package verify

import (
	"fmt"

	"github.com/sarchlab/everisa/ast"
	"github.com/sarchlab/everisa/codegen"
	"github.com/sarchlab/everisa/core"
)

// Evaluate computes the value of an expression tree without compiling it.
// Variables are not bound to anything and fail the same way code generation
// does. Division by zero returns core.ErrDivideByZero and a result outside
// int64 returns core.ErrOverflow.
func Evaluate(node ast.Node) (int64, error) {
	switch n := node.(type) {
	case *ast.Number:
		return n.Value, nil
	case *ast.BinaryOp:
		left, err := Evaluate(n.Left)
		if err != nil {
			return 0, err
		}

		right, err := Evaluate(n.Right)
		if err != nil {
			return 0, err
		}

		return apply(n.Op, left, right)
	case *ast.Variable:
		return 0, &codegen.UnsupportedNodeError{Node: n}
	default:
		return 0, fmt.Errorf("evaluate: unexpected node %T", node)
	}
}

func apply(op ast.Op, left, right int64) (int64, error) {
	switch op {
	case ast.Add:
		return core.CheckedAdd(left, right)
	case ast.Sub:
		return core.CheckedSub(left, right)
	case ast.Mul:
		return core.CheckedMul(left, right)
	case ast.Div:
		return core.CheckedFloorDiv(left, right)
	default:
		return 0, fmt.Errorf("evaluate: unknown operator %q", op)
	}
}
