// Package astdump renders a Module's AST and a lexed token stream as
// indented, human-readable text, for the `--show-ast` / `--show-tokens`
// CLI flags. Generalized from the teacher's dumpASTNode helper
// (cmd/dwscript/cmd/parse.go) into its own package, and extended with
// one case per Arx node kind.
package astdump

import (
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/go-arx/internal/ast"
	"github.com/cwbudde/go-arx/internal/lexer"
)

// AST writes node to w as an indented tree, one line per node.
func AST(w io.Writer, node ast.Node) {
	dumpNode(w, node, 0)
}

func indent(w io.Writer, depth int) {
	fmt.Fprint(w, strings.Repeat("  ", depth))
}

func dumpNode(w io.Writer, node ast.Node, depth int) {
	if node == nil {
		indent(w, depth)
		fmt.Fprintln(w, "<nil>")
		return
	}

	switch n := node.(type) {
	case *ast.Module:
		indent(w, depth)
		fmt.Fprintf(w, "Module %q (%d node(s))\n", n.Name, len(n.Nodes))
		for _, child := range n.Nodes {
			dumpNode(w, child, depth+1)
		}

	case *ast.Block:
		indent(w, depth)
		fmt.Fprintf(w, "Block (%d node(s))\n", len(n.Nodes))
		for _, child := range n.Nodes {
			dumpNode(w, child, depth+1)
		}

	case *ast.FloatExpr:
		indent(w, depth)
		fmt.Fprintf(w, "FloatExpr %g @%s\n", n.Value, n.Location)

	case *ast.VariableExpr:
		indent(w, depth)
		fmt.Fprintf(w, "VariableExpr %s @%s\n", n.Name, n.Location)

	case *ast.UnaryExpr:
		indent(w, depth)
		fmt.Fprintf(w, "UnaryExpr %q @%s\n", n.Op, n.Location)
		dumpNode(w, n.Operand, depth+1)

	case *ast.BinaryExpr:
		indent(w, depth)
		fmt.Fprintf(w, "BinaryExpr %q @%s\n", n.Op, n.Location)
		dumpNode(w, n.LHS, depth+1)
		dumpNode(w, n.RHS, depth+1)

	case *ast.CallExpr:
		indent(w, depth)
		fmt.Fprintf(w, "CallExpr %s (%d arg(s)) @%s\n", n.Callee, len(n.Args), n.Location)
		for _, a := range n.Args {
			dumpNode(w, a, depth+1)
		}

	case *ast.IfStmt:
		indent(w, depth)
		fmt.Fprintf(w, "IfStmt @%s\n", n.Location)
		indent(w, depth+1)
		fmt.Fprintln(w, "Cond:")
		dumpNode(w, n.Cond, depth+2)
		indent(w, depth+1)
		fmt.Fprintln(w, "Then:")
		dumpNode(w, n.Then, depth+2)
		if !n.Else.Empty() {
			indent(w, depth+1)
			fmt.Fprintln(w, "Else:")
			dumpNode(w, n.Else, depth+2)
		}

	case *ast.ForStmt:
		indent(w, depth)
		fmt.Fprintf(w, "ForStmt %s @%s\n", n.VarName, n.Location)
		indent(w, depth+1)
		fmt.Fprintln(w, "Start:")
		dumpNode(w, n.Start, depth+2)
		indent(w, depth+1)
		fmt.Fprintln(w, "End:")
		dumpNode(w, n.End, depth+2)
		indent(w, depth+1)
		fmt.Fprintln(w, "Step:")
		dumpNode(w, n.Step, depth+2)
		indent(w, depth+1)
		fmt.Fprintln(w, "Body:")
		dumpNode(w, n.Body, depth+2)

	case *ast.VarExpr:
		indent(w, depth)
		fmt.Fprintf(w, "VarExpr (%d binding(s)) @%s\n", len(n.Bindings), n.Location)
		for _, b := range n.Bindings {
			indent(w, depth+1)
			fmt.Fprintf(w, "%s =\n", b.Name)
			dumpNode(w, b.Init, depth+2)
		}
		indent(w, depth+1)
		fmt.Fprintln(w, "Body:")
		dumpNode(w, n.Body, depth+2)

	case *ast.Prototype:
		indent(w, depth)
		fmt.Fprintf(w, "Prototype %s @%s\n", n.String(), n.Location)

	case *ast.Function:
		indent(w, depth)
		fmt.Fprintf(w, "Function %s @%s\n", n.Proto.String(), n.Location)
		dumpNode(w, n.Body, depth+1)

	case *ast.ReturnStmt:
		indent(w, depth)
		fmt.Fprintf(w, "ReturnStmt @%s\n", n.Location)
		dumpNode(w, n.Value, depth+1)

	default:
		indent(w, depth)
		fmt.Fprintf(w, "%T: %s\n", node, node.String())
	}
}

// Tokens writes one line per token to w, in the form the teacher's
// `dwscript lex --show-type --show-pos` prints (cmd/dwscript/cmd/lex.go),
// always including both kind and position since spec.md §6's
// `--show-tokens` has no finer-grained flag surface of its own.
func Tokens(w io.Writer, tokens []lexer.Token) {
	for _, t := range tokens {
		fmt.Fprintf(w, "%s @%s\n", t.String(), t.Pos)
	}
}
