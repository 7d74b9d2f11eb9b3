package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/go-arx/internal/lexer"
)

// VarBinding is one `name [= init]` clause of a VarExpr. Init is never
// nil — the parser synthesizes FloatExpr(0.0) when omitted.
type VarBinding struct {
	Name string
	Init Node
}

// VarExpr introduces one or more bindings, in scope for Body only.
// Per SPEC_FULL.md's resolution of the corresponding Open Question,
// a VarExpr evaluates to its Body's value, not to the last binding.
type VarExpr struct {
	Bindings []VarBinding
	TypeName string
	Body     Node
	Location lexer.Position
}

func (e *VarExpr) node()            {}
func (e *VarExpr) Pos() lexer.Position { return e.Location }
func (e *VarExpr) String() string {
	var out bytes.Buffer
	out.WriteString("var ")
	parts := make([]string, len(e.Bindings))
	for i, b := range e.Bindings {
		parts[i] = b.Name + " = " + b.Init.String()
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString(" in ")
	out.WriteString(e.Body.String())
	return out.String()
}
