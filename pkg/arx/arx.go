// Package arx is the embeddable façade over the Arx compiler pipeline:
// lex, parse, and lower a program without touching the CLI. It mirrors
// the role the teacher's pkg/dwscript package plays for DWScript
// (library entry point for host programs), generalized to Arx's
// lex -> parse -> lower pipeline. This is a supplemented feature: the
// original pyarx implementation wires its stages directly in main.py
// with no embeddable seam of its own.
package arx

import (
	"github.com/cwbudde/go-arx/internal/ast"
	"github.com/cwbudde/go-arx/internal/codegen"
	"github.com/cwbudde/go-arx/internal/codegen/irtext"
	"github.com/cwbudde/go-arx/internal/diag"
	"github.com/cwbudde/go-arx/internal/lexer"
	"github.com/cwbudde/go-arx/internal/parser"
)

// LexString tokenizes src and returns every token, including the
// trailing EOF. name is used only to label diagnostics; it does not
// need to be a real file path.
func LexString(src, name string) ([]lexer.Token, []*diag.Error) {
	l := lexer.New(lexer.NewFromString(src))
	ts, err := l.Lex()
	if err != nil {
		return nil, []*diag.Error{asDiag(err, src, name)}
	}

	var tokens []lexer.Token
	for {
		tok := ts.Current()
		tokens = append(tokens, tok)
		if tok.Kind == lexer.EOF {
			break
		}
		ts.Advance()
	}
	return tokens, nil
}

// ParseString lexes and parses src, returning the resulting Module.
// name becomes both the Module's name and the file label on any
// diagnostic.
func ParseString(src, name string) (*ast.Module, []*diag.Error) {
	l := lexer.New(lexer.NewFromString(src))
	ts, err := l.Lex()
	if err != nil {
		return nil, []*diag.Error{asDiag(err, src, name)}
	}

	mod, err := parser.New(ts, name).Parse()
	if err != nil {
		return nil, []*diag.Error{asDiag(err, src, name)}
	}
	return mod, nil
}

// CompileString lexes, parses, and lowers src against the irtext
// reference IRBuilder, returning the populated Builder. Callers that
// only need the rendered IR can call Format() on the result; callers
// that need a real object file must drive a different IRBuilder, since
// irtext.EmitObject is a documented stub (no native backend is in
// scope here).
func CompileString(src, name string) (*irtext.Builder, []*diag.Error) {
	mod, errs := ParseString(src, name)
	if errs != nil {
		return nil, errs
	}

	b := irtext.NewBuilder()
	v := codegen.NewIRLoweringVisitor(b)
	if err := v.Lower(mod); err != nil {
		return nil, []*diag.Error{asDiag(err, src, name)}
	}
	return b, nil
}

// asDiag normalizes an error returned by the lexer/parser/codegen
// layers into a *diag.Error with source context attached, so every
// façade entry point reports diagnostics uniformly regardless of which
// stage produced the underlying error.
func asDiag(err error, src, name string) *diag.Error {
	if d, ok := err.(*diag.Error); ok {
		return d.WithSource(name, src)
	}
	if le, ok := err.(*lexer.LexError); ok {
		return diag.New(diag.Lexical, le.Pos, "%s", le.Message).WithSource(name, src)
	}
	return diag.NewIO("%v", err)
}
