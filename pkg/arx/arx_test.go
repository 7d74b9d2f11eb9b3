package arx_test

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-arx/internal/lexer"
	"github.com/cwbudde/go-arx/pkg/arx"
)

func TestLexStringReturnsTokensWithTrailingEOF(t *testing.T) {
	tokens, errs := arx.LexString("1 + 1\n", "test")
	if errs != nil {
		t.Fatalf("LexString: %v", errs)
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != lexer.EOF {
		t.Fatalf("expected a trailing EOF token, got %v", tokens)
	}
}

func TestLexStringReportsMalformedNumber(t *testing.T) {
	_, errs := arx.LexString("1.2.3\n", "test")
	if len(errs) == 0 {
		t.Fatalf("expected a diagnostic for a malformed numeric literal")
	}
}

func TestParseStringNamesTheModule(t *testing.T) {
	mod, errs := arx.ParseString("1 + 1\n", "myprogram")
	if errs != nil {
		t.Fatalf("ParseString: %v", errs)
	}
	if mod.Name != "myprogram" {
		t.Errorf("got module name %q, want %q", mod.Name, "myprogram")
	}
}

func TestParseStringReportsSyntaxErrors(t *testing.T) {
	_, errs := arx.ParseString("fn add_one(a)\n", "test")
	if len(errs) == 0 {
		t.Fatalf("expected a diagnostic for a missing ':'")
	}
}

func TestCompileStringLowersBuiltins(t *testing.T) {
	b, errs := arx.CompileString("extern foo(x)\n", "test")
	if errs != nil {
		t.Fatalf("CompileString: %v", errs)
	}
	out := b.Format()
	if !strings.Contains(out, "declare i32 @putchar(i32)") {
		t.Errorf("expected the putchar builtin in:\n%s", out)
	}
}

func TestCompileStringReportsLoweringErrors(t *testing.T) {
	_, errs := arx.CompileString("x + 1\n", "test")
	if len(errs) == 0 {
		t.Fatalf("expected a diagnostic for an unbound variable")
	}
}
