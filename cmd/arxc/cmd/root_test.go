package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading captured stdout: %v", err)
	}
	return string(out)
}

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestModuleNameDerivesFromFileStem(t *testing.T) {
	if got := moduleName("/a/b/program.arx"); got != "program" {
		t.Errorf("moduleName() = %q, want %q", got, "program")
	}
}

func TestDumpTokensWritesTokenStream(t *testing.T) {
	out := captureStdout(t, func() {
		if err := dumpTokens("test", "1 + 1\n"); err != nil {
			t.Fatalf("dumpTokens: %v", err)
		}
	})
	for _, want := range []string{"FloatLiteral(1)", "Operator(\"+\")"} {
		if !strings.Contains(out, want) {
			t.Errorf("dumpTokens output missing %q in:\n%s", want, out)
		}
	}
}

func TestDumpASTWritesTree(t *testing.T) {
	out := captureStdout(t, func() {
		if err := dumpAST("test", "fn add_one(a):\n  a + 1\n"); err != nil {
			t.Fatalf("dumpAST: %v", err)
		}
	})
	if !strings.Contains(out, "Function add_one(a)") {
		t.Errorf("dumpAST output missing function node in:\n%s", out)
	}
}

func TestDumpIRIncludesBuiltins(t *testing.T) {
	out := captureStdout(t, func() {
		if err := dumpIR("test", "extern foo(x)\n"); err != nil {
			t.Fatalf("dumpIR: %v", err)
		}
	})
	if !strings.Contains(out, "declare i32 @putchar(i32)") {
		t.Errorf("dumpIR output missing putchar builtin in:\n%s", out)
	}
}

func TestDumpASTReportsParseErrors(t *testing.T) {
	err := dumpAST("test", "fn add_one(a)\n")
	if err == nil {
		t.Fatalf("expected a parse error for a missing ':'")
	}
}

func TestCompileAndWriteFailsWithoutNativeBackend(t *testing.T) {
	path := writeTempFile(t, "program.arx", "1 + 1\n")
	out := filepath.Join(t.TempDir(), "program.o")

	err := compileAndWrite([]string{path}, out)
	if err == nil {
		t.Fatalf("expected EmitObject's stub error to propagate")
	}
	if !strings.Contains(err.Error(), "object emission") {
		t.Errorf("got error %q, want it to mention object emission", err.Error())
	}
}

func TestRunRootShellFlagIsReservedAndExitsZero(t *testing.T) {
	shell = true
	defer func() { shell = false }()

	out := captureStdout(t, func() {
		if err := runRoot(nil, []string{"unused.arx"}); err != nil {
			t.Fatalf("runRoot with --shell: %v", err)
		}
	})
	if !strings.Contains(out, "interactive shell not implemented") {
		t.Errorf("expected the reserved --shell message, got %q", out)
	}
}
