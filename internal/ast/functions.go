package ast

import (
	"strings"

	"github.com/cwbudde/go-arx/internal/lexer"
)

// Prototype is a function signature independent of its body: a name,
// an ordered parameter list, and a return type. All parameter types and
// the return type are fixed to "float" in this iteration.
type Prototype struct {
	Name       string
	ReturnType string
	Params     []*VariableExpr
	Location   lexer.Position
}

func (p *Prototype) node()            {}
func (p *Prototype) Pos() lexer.Position { return p.Location }
func (p *Prototype) String() string {
	names := make([]string, len(p.Params))
	for i, param := range p.Params {
		names[i] = param.Name
	}
	return p.Name + "(" + strings.Join(names, ", ") + ")"
}

// IsBinaryOp reports whether this prototype declares a user-defined
// binary operator (`binary<op>`), per spec.md §4.5.
func (p *Prototype) IsBinaryOp() bool {
	return strings.HasPrefix(p.Name, "binary") && len(p.Name) > len("binary")
}

// IsUnaryOp reports whether this prototype declares a user-defined
// unary operator (`unary<op>`).
func (p *Prototype) IsUnaryOp() bool {
	return strings.HasPrefix(p.Name, "unary") && len(p.Name) > len("unary")
}

// Function pairs a Prototype with its body block.
type Function struct {
	Proto    *Prototype
	Body     *Block
	Location lexer.Position
}

func (f *Function) node()            {}
func (f *Function) Pos() lexer.Position { return f.Location }
func (f *Function) String() string {
	return "fn " + f.Proto.String() + ":\n" + f.Body.String()
}
