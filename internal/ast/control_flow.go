package ast

import (
	"bytes"

	"github.com/cwbudde/go-arx/internal/lexer"
)

// IfStmt is a conditional. Then is non-empty after a successful parse;
// Else is empty (not nil) when no `else` clause was present.
type IfStmt struct {
	Cond     Node
	Then     *Block
	Else     *Block
	Location lexer.Position
}

func (s *IfStmt) node()            {}
func (s *IfStmt) Pos() lexer.Position { return s.Location }
func (s *IfStmt) String() string {
	var out bytes.Buffer
	out.WriteString("if ")
	out.WriteString(s.Cond.String())
	out.WriteString(":\n")
	out.WriteString(s.Then.String())
	if !s.Else.Empty() {
		out.WriteString("else:\n")
		out.WriteString(s.Else.String())
	}
	return out.String()
}

// ForStmt is a counted loop: `for Var = Start, End[, Step] in Body`.
// Step is never nil — the parser synthesizes FloatExpr(1.0) when the
// source omits it (spec.md §3 invariant).
type ForStmt struct {
	VarName  string
	Start    Node
	End      Node
	Step     Node
	Body     *Block
	Location lexer.Position
}

func (s *ForStmt) node()            {}
func (s *ForStmt) Pos() lexer.Position { return s.Location }
func (s *ForStmt) String() string {
	var out bytes.Buffer
	out.WriteString("for ")
	out.WriteString(s.VarName)
	out.WriteString(" = ")
	out.WriteString(s.Start.String())
	out.WriteString(", ")
	out.WriteString(s.End.String())
	out.WriteString(", ")
	out.WriteString(s.Step.String())
	out.WriteString(" in\n")
	out.WriteString(s.Body.String())
	return out.String()
}
