// Package codegen lowers an expression tree to EverISA instructions.
//
// Every expression leaves its value in RAX. A binary operation saves the
// left value on the stack while the right side is computed, then restores
// it into RBX:
//
//	<left>      ; RAX = left
//	PUSH RAX
//	<right>     ; RAX = right
//	POP RBX     ; RBX = left
//	ADD RAX, RBX
package codegen

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sarchlab/everisa/ast"
	"github.com/sarchlab/everisa/instr"
)

// ErrUnsupportedNode matches every *UnsupportedNodeError.
var ErrUnsupportedNode = errors.New("unsupported node")

// UnsupportedNodeError reports a node that has no lowering rule.
type UnsupportedNodeError struct {
	Node ast.Node
}

func (e *UnsupportedNodeError) Error() string {
	switch n := e.Node.(type) {
	case *ast.Variable:
		return fmt.Sprintf("cannot generate code for variable %q", n.Name)
	default:
		return fmt.Sprintf("cannot generate code for %T", e.Node)
	}
}

func (e *UnsupportedNodeError) Unwrap() error { return ErrUnsupportedNode }

// Generator accumulates the instructions of one compilation unit. Each call
// to Generate appends to what earlier calls produced; use Reset or a fresh
// Generator to start a new unit.
type Generator struct {
	program instr.Program
}

// NewGenerator returns an empty generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate appends the code for node to the unit and returns the whole
// accumulated program and its text. On error the unit is left unchanged.
func (g *Generator) Generate(node ast.Node) (instr.Program, string, error) {
	prog, err := emit(node, g.program)
	if err != nil {
		return nil, "", err
	}

	slog.Debug("Generate",
		"Root", ast.Format(node),
		"Emitted", len(prog)-len(g.program),
		"Total", len(prog),
	)

	g.program = prog

	return g.Program(), g.program.String(), nil
}

// Program returns a copy of the accumulated instructions.
func (g *Generator) Program() instr.Program {
	return append(instr.Program(nil), g.program...)
}

// Text returns the accumulated instructions joined by newlines.
func (g *Generator) Text() string {
	return g.program.String()
}

// Reset discards the accumulated instructions.
func (g *Generator) Reset() {
	g.program = nil
}

// Generate lowers node as a fresh compilation unit.
func Generate(node ast.Node) (instr.Program, error) {
	return emit(node, nil)
}

// emit appends the code for n to acc and returns the extended slice. acc is
// never modified in place beyond its length, so a failed emit leaves the
// caller's view intact.
func emit(n ast.Node, acc instr.Program) (instr.Program, error) {
	switch n := n.(type) {
	case *ast.Number:
		return append(acc, instr.Mov(instr.RAX, n.Value)), nil
	case *ast.BinaryOp:
		return emitBinary(n, acc)
	case *ast.Variable:
		return nil, &UnsupportedNodeError{Node: n}
	default:
		return nil, &UnsupportedNodeError{Node: n}
	}
}

func emitBinary(n *ast.BinaryOp, acc instr.Program) (instr.Program, error) {
	arith, err := arithmetic(n.Op)
	if err != nil {
		return nil, err
	}

	acc, err = emit(n.Left, acc)
	if err != nil {
		return nil, err
	}

	acc = append(acc, instr.Push(instr.RAX))

	acc, err = emit(n.Right, acc)
	if err != nil {
		return nil, err
	}

	return append(acc, instr.Pop(instr.RBX), arith), nil
}

func arithmetic(op ast.Op) (instr.Inst, error) {
	switch op {
	case ast.Add:
		return instr.Add(), nil
	case ast.Sub:
		return instr.Sub(), nil
	case ast.Mul:
		return instr.Mul(), nil
	case ast.Div:
		return instr.Div(), nil
	default:
		return instr.Inst{}, fmt.Errorf("codegen: invalid operator %q", byte(op))
	}
}
