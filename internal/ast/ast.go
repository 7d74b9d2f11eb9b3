// Package ast defines the Arx abstract syntax tree: a tagged sum of
// immutable expression and statement nodes built by the parser in a
// single pass. Nodes are owned by their parent and are never mutated
// after construction.
package ast

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cwbudde/go-arx/internal/lexer"
)

// Node is the interface every AST node implements. Every concrete node
// carries a lexer.Position copied in by the parser at construction time.
type Node interface {
	Pos() lexer.Position
	String() string
	node()
}

// FloatExpr is a single-precision float literal (spec.md §3: "All
// numeric literals have type float unless extended").
type FloatExpr struct {
	Value    float64
	Location lexer.Position
}

func (e *FloatExpr) node()            {}
func (e *FloatExpr) Pos() lexer.Position { return e.Location }
func (e *FloatExpr) String() string   { return fmt.Sprintf("%g", e.Value) }

// VariableExpr is a reference to a named binding. TypeName is fixed to
// "float" in this iteration (see SPEC_FULL.md §SUPPLEMENTED FEATURES).
type VariableExpr struct {
	Name     string
	TypeName string
	Location lexer.Position
}

func (e *VariableExpr) node()            {}
func (e *VariableExpr) Pos() lexer.Position { return e.Location }
func (e *VariableExpr) String() string   { return e.Name }

// UnaryExpr applies a prefix operator to its operand. Op is the
// operator's single-character spelling; lowering resolves every unary
// operator as a call to a function named `unary<op>`.
type UnaryExpr struct {
	Op       string
	Operand  Node
	Location lexer.Position
}

func (e *UnaryExpr) node()            {}
func (e *UnaryExpr) Pos() lexer.Position { return e.Location }
func (e *UnaryExpr) String() string   { return "(" + e.Op + e.Operand.String() + ")" }

// BinaryExpr applies an infix operator. The parser only builds it for
// the six operators in the precedence table; lowering resolves any
// other Op as a call to a function named `binary<op>`.
type BinaryExpr struct {
	Op       string
	LHS, RHS Node
	Location lexer.Position
}

func (e *BinaryExpr) node()            {}
func (e *BinaryExpr) Pos() lexer.Position { return e.Location }
func (e *BinaryExpr) String() string {
	return "(" + e.LHS.String() + " " + e.Op + " " + e.RHS.String() + ")"
}

// CallExpr invokes Callee with an ordered list of argument expressions.
type CallExpr struct {
	Callee   string
	Args     []Node
	Location lexer.Position
}

func (e *CallExpr) node()            {}
func (e *CallExpr) Pos() lexer.Position { return e.Location }
func (e *CallExpr) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Callee + "(" + strings.Join(args, ", ") + ")"
}

// ReturnStmt yields Value from the enclosing function.
type ReturnStmt struct {
	Value    Node
	Location lexer.Position
}

func (s *ReturnStmt) node()            {}
func (s *ReturnStmt) Pos() lexer.Position { return s.Location }
func (s *ReturnStmt) String() string   { return "return " + s.Value.String() }

// Block is an ordered sequence of nodes executed in source order. The
// block's value (for lowering purposes) is that of its last node.
type Block struct {
	Nodes    []Node
	Location lexer.Position
}

func (b *Block) node()            {}
func (b *Block) Pos() lexer.Position { return b.Location }
func (b *Block) String() string {
	var out bytes.Buffer
	for _, n := range b.Nodes {
		out.WriteString(n.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Empty reports whether the block has no nodes.
func (b *Block) Empty() bool { return b == nil || len(b.Nodes) == 0 }

// Module is the root node: a named, ordered sequence of top-level
// nodes. Module extends Block per spec.md §3.
type Module struct {
	Name string
	*Block
}

func (m *Module) String() string {
	return "module " + m.Name + "\n" + m.Block.String()
}
