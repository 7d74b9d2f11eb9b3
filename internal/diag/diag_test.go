package diag

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-arx/internal/lexer"
)

func TestFormatWithSource(t *testing.T) {
	src := "fn main():\n  1 +\n"
	e := New(Parse, lexer.Position{Line: 2, Col: 5}, "unexpected token %v", "EOF").
		WithSource("prog.arx", src)

	got := e.Format()
	for _, want := range []string{"ParseError: unexpected token EOF at prog.arx:2:5", "  1 +", "^"} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() = %q, missing %q", got, want)
		}
	}
}

func TestFormatIOErrorHasNoLocation(t *testing.T) {
	e := NewIO("could not open %s", "missing.arx")
	want := "IOError: could not open missing.arx"
	if got := e.Format(); got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
}

func TestKindStrings(t *testing.T) {
	cases := map[Kind]string{
		Lexical:  "LexicalError",
		Parse:    "ParseError",
		Scope:    "ScopeError",
		Lowering: "LoweringError",
		IO:       "IOError",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestFormatAllJoinsDiagnostics(t *testing.T) {
	errs := []*Error{
		New(Lexical, lexer.Position{Line: 1, Col: 1}, "bad token"),
		New(Scope, lexer.Position{Line: 2, Col: 1}, "undefined variable %s", "x"),
	}
	got := FormatAll(errs)
	if !strings.Contains(got, "LexicalError") || !strings.Contains(got, "ScopeError") {
		t.Fatalf("FormatAll() = %q, expected both kinds present", got)
	}
}
