// Package formula implements the arithmetic formula language cells can
// hold: a lexer, a recursive-descent parser, an AST with leftmost-first
// error propagation, and a canonical pretty-printer that elides
// redundant parentheses.
package formula

import (
	"io"

	"github.com/arborsoft/cellsheet/position"
)

// Node is the AST contract spec.md §4.2 describes: evaluate under a
// lookup function, list referenced positions in ascending de-duplicated
// order, and canonical-print with redundant parentheses removed.
type Node interface {
	Eval(lookup Lookup) (float64, *Error)
	RefPositions() []position.Position
	Print(w io.Writer)
	// precedence reports the node's operator precedence for the printer;
	// literals and references report the highest precedence so they are
	// never parenthesized.
	precedence() int
}

// NumberNode is a literal numeric constant.
type NumberNode struct {
	Value float64
}

func (n *NumberNode) Eval(Lookup) (float64, *Error)     { return n.Value, nil }
func (n *NumberNode) RefPositions() []position.Position { return nil }
func (n *NumberNode) precedence() int                   { return precAtom }

// RefNode is a reference to another cell's position.
type RefNode struct {
	Pos position.Position
}

func (n *RefNode) Eval(lookup Lookup) (float64, *Error) {
	return lookup(n.Pos)
}

func (n *RefNode) RefPositions() []position.Position { return []position.Position{n.Pos} }
func (n *RefNode) precedence() int                   { return precAtom }

// UnaryNode negates its operand ("-x"). The grammar has no unary plus.
type UnaryNode struct {
	X Node
}

func (n *UnaryNode) Eval(lookup Lookup) (float64, *Error) {
	x, err := n.X.Eval(lookup)
	if err != nil {
		return 0, err
	}
	return -x, nil
}

func (n *UnaryNode) RefPositions() []position.Position { return n.X.RefPositions() }
func (n *UnaryNode) precedence() int                   { return precUnary }

// BinOp identifies one of the four arithmetic operators.
type BinOp byte

const (
	OpAdd BinOp = '+'
	OpSub BinOp = '-'
	OpMul BinOp = '*'
	OpDiv BinOp = '/'
)

// BinaryNode applies a binary arithmetic operator to two subexpressions.
// Errors propagate leftmost-first: X is evaluated (and any error
// returned) before Y is evaluated at all.
type BinaryNode struct {
	Op   BinOp
	X, Y Node
}

func (n *BinaryNode) Eval(lookup Lookup) (float64, *Error) {
	x, err := n.X.Eval(lookup)
	if err != nil {
		return 0, err
	}
	y, err := n.Y.Eval(lookup)
	if err != nil {
		return 0, err
	}
	switch n.Op {
	case OpAdd:
		return x + y, nil
	case OpSub:
		return x - y, nil
	case OpMul:
		return x * y, nil
	case OpDiv:
		if y == 0 {
			return 0, NewError(Div0)
		}
		return x / y, nil
	default:
		return 0, NewError(Value)
	}
}

func (n *BinaryNode) RefPositions() []position.Position {
	return position.SortPositions(append(n.X.RefPositions(), n.Y.RefPositions()...))
}

func (n *BinaryNode) precedence() int {
	switch n.Op {
	case OpAdd, OpSub:
		return precAdditive
	default:
		return precMultiplicative
	}
}

// Precedence levels, lowest to highest; used only by the printer to
// decide whether a child needs parenthesizing.
const (
	precAdditive = iota + 1
	precMultiplicative
	precUnary
	precAtom
)
