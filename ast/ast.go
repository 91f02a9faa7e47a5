// Package ast defines the expression tree built by the parser.
package ast

import (
	"fmt"
	"strconv"
)

// Node is implemented by every expression node. The set of implementations
// is closed: Number, Variable and BinaryOp.
type Node interface {
	node()
	String() string
}

// Op is a binary arithmetic operator.
type Op byte

const (
	Add Op = '+'
	Sub Op = '-'
	Mul Op = '*'
	Div Op = '/'
)

// ParseOp maps operator text to an Op.
func ParseOp(text string) (Op, bool) {
	if len(text) != 1 {
		return 0, false
	}

	switch op := Op(text[0]); op {
	case Add, Sub, Mul, Div:
		return op, true
	default:
		return 0, false
	}
}

func (o Op) String() string { return string(rune(o)) }

// Number is an integer literal.
//
//	10 + 5
//	^^  Number{Value: 10}
type Number struct {
	Value int64
}

func (*Number) node()            {}
func (n *Number) String() string { return strconv.FormatInt(n.Value, 10) }

// Variable is a named reference. It is parsed but never resolved.
type Variable struct {
	Name string
}

func (*Variable) node()            {}
func (v *Variable) String() string { return v.Name }

// BinaryOp applies Op to Left and Right. The node owns both children.
//
//	a + b * c   parses as   BinaryOp{BinaryOp{a + b} * c}
type BinaryOp struct {
	Left  Node
	Op    Op
	Right Node
}

func (*BinaryOp) node() {}
func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// Format renders a tree fully parenthesized.
func Format(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.String()
}

// Walk visits n and its descendants in pre-order. It stops descending into a
// subtree when fn returns false.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	if b, ok := n.(*BinaryOp); ok {
		Walk(b.Left, fn)
		Walk(b.Right, fn)
	}
}

// Depth returns the height of the tree; a leaf has depth 1.
func Depth(n Node) int {
	b, ok := n.(*BinaryOp)
	if !ok {
		if n == nil {
			return 0
		}
		return 1
	}

	return 1 + max(Depth(b.Left), Depth(b.Right))
}
