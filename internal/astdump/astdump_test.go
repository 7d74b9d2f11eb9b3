package astdump_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/go-arx/internal/astdump"
	"github.com/cwbudde/go-arx/internal/lexer"
	"github.com/cwbudde/go-arx/internal/parser"
	"github.com/gkampitakis/go-snaps/snaps"
)

func TestASTContainsEveryTopLevelNode(t *testing.T) {
	l := lexer.New(lexer.NewFromString("fn add_one(a):\n  a + 1\nadd_one(2)\n"))
	ts, err := l.Lex()
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	mod, err := parser.New(ts, "test").Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var buf bytes.Buffer
	astdump.AST(&buf, mod)
	out := buf.String()

	for _, want := range []string{"Module", "Function add_one(a)", "CallExpr add_one"} {
		if !strings.Contains(out, want) {
			t.Errorf("AST dump missing %q in:\n%s", want, out)
		}
	}
}

func TestASTSnapshot(t *testing.T) {
	l := lexer.New(lexer.NewFromString("if 1 > 2:\n  a = 1\nelse:\n  a = 2\n"))
	ts, err := l.Lex()
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	mod, err := parser.New(ts, "test").Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var buf bytes.Buffer
	astdump.AST(&buf, mod)
	snaps.MatchSnapshot(t, "if_else_ast", buf.String())
}

func TestTokensIncludePositions(t *testing.T) {
	l := lexer.New(lexer.NewFromString("1 + 1\n"))
	ts, err := l.Lex()
	if err != nil {
		t.Fatalf("lex: %v", err)
	}

	var all []lexer.Token
	for {
		tok := ts.Current()
		all = append(all, tok)
		if tok.Kind == lexer.EOF {
			break
		}
		ts.Advance()
	}

	var buf bytes.Buffer
	astdump.Tokens(&buf, all)
	out := buf.String()

	for _, want := range []string{"FloatLiteral(1)", "Operator(\"+\")", "@1:"} {
		if !strings.Contains(out, want) {
			t.Errorf("token dump missing %q in:\n%s", want, out)
		}
	}
}

func TestASTHandlesNilNode(t *testing.T) {
	var buf bytes.Buffer
	astdump.AST(&buf, nil)
	if !strings.Contains(buf.String(), "<nil>") {
		t.Errorf("expected a <nil> placeholder, got %q", buf.String())
	}
}
