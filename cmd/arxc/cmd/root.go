package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cwbudde/go-arx/internal/ast"
	"github.com/cwbudde/go-arx/internal/astdump"
	"github.com/cwbudde/go-arx/internal/codegen"
	"github.com/cwbudde/go-arx/internal/codegen/irtext"
	"github.com/cwbudde/go-arx/internal/diag"
	"github.com/cwbudde/go-arx/internal/lexer"
	"github.com/cwbudde/go-arx/internal/parser"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	outputFile string
	showAST    bool
	showTokens bool
	showIR     bool
	shell      bool
)

var rootCmd = &cobra.Command{
	Use:   "arxc input_files...",
	Short: "Arx ahead-of-time compiler front-end",
	Long: `arxc compiles Arx source files: an indentation-structured,
statically-typed expression language.

Pipeline: InputBuffer -> Lexer -> TokenStream -> Parser -> AST ->
IRLoweringVisitor -> external IR -> object file.

This is a faithful reimplementation of pyarx's front-end, preserving
its lexical and grammar rules.`,
	Version: Version,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runRoot,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.Flags().StringVar(&outputFile, "output-file", "", "output object file (default: <first-input>.o)")
	rootCmd.Flags().BoolVar(&showAST, "show-ast", false, "emit a structured AST dump and exit")
	rootCmd.Flags().BoolVar(&showTokens, "show-tokens", false, "emit the lexed token stream and exit")
	rootCmd.Flags().BoolVar(&showIR, "show-llvm-ir", false, "lower and print the textual IR, without writing an object file")
	rootCmd.Flags().BoolVar(&shell, "shell", false, "reserved for interactive use")
}

func runRoot(_ *cobra.Command, args []string) error {
	if shell {
		fmt.Println("interactive shell not implemented")
		return nil
	}

	switch {
	case showTokens:
		return forEachInput(args, dumpTokens)
	case showAST:
		return forEachInput(args, dumpAST)
	case showIR:
		return forEachInput(args, dumpIR)
	default:
		return compileAndWrite(args, outputFile)
	}
}

// moduleName derives a Module's name from its input file's stem, the
// way pyarx's main.py does (SPEC_FULL.md SUPPLEMENTED FEATURES #4).
func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", diag.NewIO("failed to read %s: %v", path, err)
	}
	return string(data), nil
}

func forEachInput(paths []string, fn func(path, src string) error) error {
	for _, path := range paths {
		src, err := readSource(path)
		if err != nil {
			return err
		}
		if err := fn(path, src); err != nil {
			return err
		}
	}
	return nil
}

func dumpTokens(path, src string) error {
	l := lexer.New(lexer.NewFromString(src))
	ts, err := l.Lex()
	if err != nil {
		return asDiag(err, path, src)
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
	astdump.Tokens(os.Stdout, tokens)
	return nil
}

func dumpAST(path, src string) error {
	mod, err := parseFile(path, src)
	if err != nil {
		return err
	}
	astdump.AST(os.Stdout, mod)
	return nil
}

func dumpIR(path, src string) error {
	mod, err := parseFile(path, src)
	if err != nil {
		return err
	}
	b := irtext.NewBuilder()
	v := codegen.NewIRLoweringVisitor(b)
	if err := v.Lower(mod); err != nil {
		return asDiag(err, path, src)
	}
	fmt.Print(b.Format())
	return nil
}

func parseFile(path, src string) (*ast.Module, error) {
	l := lexer.New(lexer.NewFromString(src))
	ts, err := l.Lex()
	if err != nil {
		return nil, asDiag(err, path, src)
	}
	mod, err := parser.New(ts, moduleName(path)).Parse()
	if err != nil {
		return nil, asDiag(err, path, src)
	}
	return mod, nil
}

// compileAndWrite lexes, parses, and lowers the first input file, then
// emits an object file. Module linking across multiple input files is
// out of scope (spec.md §1), so only args[0] is compiled; the remaining
// paths are accepted (per the CLI's "one or more paths" surface) but
// unused, matching spec.md's explicit non-goal.
func compileAndWrite(args []string, out string) error {
	path := args[0]
	src, err := readSource(path)
	if err != nil {
		return err
	}
	mod, err := parseFile(path, src)
	if err != nil {
		return err
	}

	b := irtext.NewBuilder()
	v := codegen.NewIRLoweringVisitor(b)
	if err := v.Lower(mod); err != nil {
		return asDiag(err, path, src)
	}

	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".o"
	}
	obj, err := b.EmitObject(defaultTriple())
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, obj, 0o644); err != nil {
		return diag.NewIO("failed to write %s: %v", out, err)
	}
	fmt.Printf("Compiled %s -> %s\n", path, out)
	return nil
}

// defaultTriple derives a target triple from the host toolchain, since
// spec.md never names one and no object backend exists in this repo to
// require a specific target (Open Question resolution #4).
func defaultTriple() string {
	arch := runtime.GOARCH
	if arch == "amd64" {
		arch = "x86_64"
	}
	return fmt.Sprintf("%s-unknown-%s", arch, runtime.GOOS)
}

func asDiag(err error, path, src string) error {
	if d, ok := err.(*diag.Error); ok {
		return d.WithSource(path, src)
	}
	return err
}
