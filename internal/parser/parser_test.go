package parser

import (
	"testing"

	"github.com/cwbudde/go-arx/internal/ast"
	"github.com/cwbudde/go-arx/internal/lexer"
)

func mustParse(t *testing.T, src string) *ast.Module {
	t.Helper()
	l := lexer.New(lexer.NewFromString(src))
	ts, err := l.Lex()
	if err != nil {
		t.Fatalf("lex(%q): %v", src, err)
	}
	mod, err := New(ts, "test").Parse()
	if err != nil {
		t.Fatalf("parse(%q): %v", src, err)
	}
	return mod
}

// S1: 1 + 1
func TestBinaryAddition(t *testing.T) {
	mod := mustParse(t, "1 + 1")
	if len(mod.Nodes) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(mod.Nodes))
	}
	bin, ok := mod.Nodes[0].(*ast.BinaryExpr)
	if !ok || bin.Op != "+" {
		t.Fatalf("expected top-level '+' BinaryExpr, got %#v", mod.Nodes[0])
	}
	lhs, ok := bin.LHS.(*ast.FloatExpr)
	if !ok || lhs.Value != 1.0 {
		t.Fatalf("expected FloatExpr(1), got %#v", bin.LHS)
	}
	rhs, ok := bin.RHS.(*ast.FloatExpr)
	if !ok || rhs.Value != 1.0 {
		t.Fatalf("expected FloatExpr(1), got %#v", bin.RHS)
	}
}

// S2: 1 + 2 * (3 - 2) — '*' binds tighter than '+', parens override.
func TestPrecedenceAndParens(t *testing.T) {
	mod := mustParse(t, "1 + 2 * (3 - 2)")
	top, ok := mod.Nodes[0].(*ast.BinaryExpr)
	if !ok || top.Op != "+" {
		t.Fatalf("expected top-level '+', got %#v", mod.Nodes[0])
	}
	mul, ok := top.RHS.(*ast.BinaryExpr)
	if !ok || mul.Op != "*" {
		t.Fatalf("expected '*' on the rhs of '+', got %#v", top.RHS)
	}
	sub, ok := mul.RHS.(*ast.BinaryExpr)
	if !ok || sub.Op != "-" {
		t.Fatalf("expected '-' inside parens, got %#v", mul.RHS)
	}
}

// S3: if/else symmetry.
func TestIfElse(t *testing.T) {
	src := "if 1 > 2:\n  a = 1\nelse:\n  a = 2\n"
	mod := mustParse(t, src)
	ifs, ok := mod.Nodes[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected IfStmt, got %#v", mod.Nodes[0])
	}
	cond, ok := ifs.Cond.(*ast.BinaryExpr)
	if !ok || cond.Op != ">" {
		t.Fatalf("expected '>' condition, got %#v", ifs.Cond)
	}
	if len(ifs.Then.Nodes) != 1 {
		t.Fatalf("expected one node in then-block, got %d", len(ifs.Then.Nodes))
	}
	if ifs.Else.Empty() {
		t.Fatalf("expected non-empty else-block")
	}
}

// TestableProperty 6: when else is omitted, else_block.nodes is empty.
func TestIfWithoutElse(t *testing.T) {
	src := "if 1 > 2:\n  a = 1\n"
	mod := mustParse(t, src)
	ifs := mod.Nodes[0].(*ast.IfStmt)
	if !ifs.Else.Empty() {
		t.Fatalf("expected empty else-block, got %#v", ifs.Else)
	}
}

// S4: function definition plus a call.
func TestFunctionAndCall(t *testing.T) {
	src := "fn add_one(a):\n  a + 1\nadd_one(1)\n"
	mod := mustParse(t, src)
	if len(mod.Nodes) != 2 {
		t.Fatalf("expected 2 top-level nodes, got %d", len(mod.Nodes))
	}
	fn, ok := mod.Nodes[0].(*ast.Function)
	if !ok || fn.Proto.Name != "add_one" || len(fn.Proto.Params) != 1 {
		t.Fatalf("expected Function add_one(a), got %#v", mod.Nodes[0])
	}
	call, ok := mod.Nodes[1].(*ast.CallExpr)
	if !ok || call.Callee != "add_one" || len(call.Args) != 1 {
		t.Fatalf("expected CallExpr add_one(1), got %#v", mod.Nodes[1])
	}
}

// S5: function body of length 2 (IfStmt, then ReturnStmt).
func TestFunctionBodyShape(t *testing.T) {
	src := "fn math(x):\n  if 1 > 2:\n    a = 1\n  else:\n    a = 2\n  return a\n"
	mod := mustParse(t, src)
	fn := mod.Nodes[0].(*ast.Function)
	if len(fn.Body.Nodes) != 2 {
		t.Fatalf("expected function body of length 2, got %d", len(fn.Body.Nodes))
	}
	if _, ok := fn.Body.Nodes[0].(*ast.IfStmt); !ok {
		t.Fatalf("expected first body node to be IfStmt, got %#v", fn.Body.Nodes[0])
	}
	ret, ok := fn.Body.Nodes[1].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected second body node to be ReturnStmt, got %#v", fn.Body.Nodes[1])
	}
	v, ok := ret.Value.(*ast.VariableExpr)
	if !ok || v.Name != "a" {
		t.Fatalf("expected return of variable 'a', got %#v", ret.Value)
	}
}

func TestForStepDefault(t *testing.T) {
	src := "for i = 0, 10 in\n  i\n"
	mod := mustParse(t, src)
	f, ok := mod.Nodes[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected ForStmt, got %#v", mod.Nodes[0])
	}
	step, ok := f.Step.(*ast.FloatExpr)
	if !ok || step.Value != 1.0 {
		t.Fatalf("expected default step 1.0, got %#v", f.Step)
	}
}

func TestVarInitDefault(t *testing.T) {
	src := "var a in a\n"
	mod := mustParse(t, src)
	v, ok := mod.Nodes[0].(*ast.VarExpr)
	if !ok {
		t.Fatalf("expected VarExpr, got %#v", mod.Nodes[0])
	}
	if len(v.Bindings) != 1 {
		t.Fatalf("expected 1 binding, got %d", len(v.Bindings))
	}
	init, ok := v.Bindings[0].Init.(*ast.FloatExpr)
	if !ok || init.Value != 0.0 {
		t.Fatalf("expected default init 0.0, got %#v", v.Bindings[0].Init)
	}
}

// Property: re-parsing the same token stream yields structurally equal ASTs.
func TestParserDeterminism(t *testing.T) {
	src := "1 + 2 * (3 - 2)"
	m1 := mustParse(t, src)
	m2 := mustParse(t, src)
	if m1.String() != m2.String() {
		t.Fatalf("expected deterministic parse, got %q vs %q", m1.String(), m2.String())
	}
}

// Property: left-associativity for equal-precedence operators.
func TestLeftAssociativity(t *testing.T) {
	mod := mustParse(t, "a - b - c")
	outer, ok := mod.Nodes[0].(*ast.BinaryExpr)
	if !ok || outer.Op != "-" {
		t.Fatalf("expected outer '-' BinaryExpr, got %#v", mod.Nodes[0])
	}
	inner, ok := outer.LHS.(*ast.BinaryExpr)
	if !ok || inner.Op != "-" {
		t.Fatalf("expected (a - b) on the left, got %#v", outer.LHS)
	}
	if _, ok := outer.RHS.(*ast.VariableExpr); !ok {
		t.Fatalf("expected bare variable 'c' on the right, got %#v", outer.RHS)
	}
}

func TestEmptyBlockIsAParseError(t *testing.T) {
	l := lexer.New(lexer.NewFromString("if 1 > 2:\nreturn 1\n"))
	ts, err := l.Lex()
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	if _, err := New(ts, "test").Parse(); err == nil {
		t.Fatalf("expected a parse error for a missing then-block")
	}
}
