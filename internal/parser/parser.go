// Package parser implements the Arx recursive-descent, precedence-climbing
// parser described in spec.md §4.4: it reads a lexer.TokenStream and
// produces an ast.Module.
package parser

import (
	"github.com/cwbudde/go-arx/internal/ast"
	"github.com/cwbudde/go-arx/internal/diag"
	"github.com/cwbudde/go-arx/internal/lexer"
)

// Parser drives the Arx grammar over a TokenStream, matching the
// teacher's "hold the stream, expose current/advance" shape
// (internal/parser.Parser) trimmed to one-token lookahead, plus a
// single Peek past the current token when looking for `else` — there
// is no backtracking cursor here.
type Parser struct {
	ts         *lexer.TokenStream
	moduleName string
	// indent is the indentation level (leading-space count) of the
	// block currently being parsed; 0 at top level. parseBlock needs
	// this to reject a nested block that fails to indent past its
	// enclosing block (spec.md §4.4 "Blocks and indentation").
	indent int
}

// New creates a Parser over an already-lexed TokenStream. name becomes
// the resulting Module's name (the caller derives it from the input
// file, per spec.md §4.4).
func New(ts *lexer.TokenStream, name string) *Parser {
	return &Parser{ts: ts, moduleName: name}
}

func (p *Parser) cur() lexer.Token  { return p.ts.Current() }
func (p *Parser) advance() lexer.Token { return p.ts.Advance() }

func (p *Parser) errf(format string, args ...any) *diag.Error {
	return diag.New(diag.Parse, p.cur().Pos, format, args...)
}

// Parse consumes the entire TokenStream and returns the resulting
// Module, or the first parse error (spec.md §4.4: "every parse failure
// is fatal ... does not attempt recovery").
func (p *Parser) Parse() (*ast.Module, error) {
	mod := &ast.Module{Name: p.moduleName, Block: &ast.Block{Location: p.cur().Pos}}

	for {
		tok := p.cur()
		switch tok.Kind {
		case lexer.EOF:
			return mod, nil

		case lexer.Indent:
			// Every non-blank line after the first starts with an Indent
			// token, even at the top level (width 0) — it is a statement
			// separator here, not the start of a nested block.
			if tok.Width != p.indent {
				return nil, p.errf("unexpected indentation at top level")
			}
			p.advance()

		case lexer.NotInitialized:
			p.advance()

		case lexer.Operator:
			if tok.Str == ";" {
				p.advance()
				continue
			}
			node, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			mod.Nodes = append(mod.Nodes, node)

		case lexer.KwFunction:
			fn, err := p.parseFunction()
			if err != nil {
				return nil, err
			}
			mod.Nodes = append(mod.Nodes, fn)

		case lexer.KwExtern:
			proto, err := p.parseExtern()
			if err != nil {
				return nil, err
			}
			mod.Nodes = append(mod.Nodes, proto)

		default:
			node, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			mod.Nodes = append(mod.Nodes, node)
		}
	}
}

// parseExpression := parse_unary , parse_bin_op_rhs(0, lhs)
func (p *Parser) parseExpression() (ast.Node, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return p.parseBinOpRHS(0, lhs)
}

func (p *Parser) parseUnary() (ast.Node, error) {
	tok := p.cur()
	if tok.Kind != lexer.Operator || tok.Str == "(" || tok.Str == "," {
		return p.parsePrimary()
	}
	loc := tok.Pos
	op := tok.Str
	p.advance()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Op: op, Operand: operand, Location: loc}, nil
}

func (p *Parser) parseBinOpRHS(minPrec int, lhs ast.Node) (ast.Node, error) {
	for {
		tok := p.cur()
		if tok.Kind != lexer.Operator {
			return lhs, nil
		}
		prec := precedenceOf(tok.Str)
		if prec < minPrec {
			return lhs, nil
		}
		op := tok.Str
		loc := tok.Pos
		p.advance()

		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		next := p.cur()
		if next.Kind == lexer.Operator {
			if nextPrec := precedenceOf(next.Str); nextPrec > prec {
				rhs, err = p.parseBinOpRHS(prec+1, rhs)
				if err != nil {
					return nil, err
				}
			}
		}

		lhs = &ast.BinaryExpr{Op: op, LHS: lhs, RHS: rhs, Location: loc}
	}
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.Identifier:
		return p.parseIdentifierExpr()
	case lexer.FloatLiteral:
		p.advance()
		return &ast.FloatExpr{Value: tok.Num, Location: tok.Pos}, nil
	case lexer.Operator:
		switch tok.Str {
		case "(":
			return p.parseParenExpr()
		case ";":
			p.advance()
			return p.parsePrimary()
		}
		return nil, p.errf("unexpected operator %q", tok.Str)
	case lexer.KwIf:
		return p.parseIfStmt()
	case lexer.KwFor:
		return p.parseForStmt()
	case lexer.KwVar:
		return p.parseVarExpr()
	case lexer.KwReturn:
		return p.parseReturn()
	case lexer.Indent:
		return p.parseBlock(p.indent)
	default:
		p.advance()
		return nil, p.errf("unexpected token %v", tok)
	}
}

func (p *Parser) parseIdentifierExpr() (ast.Node, error) {
	tok := p.cur()
	name := tok.Str
	loc := tok.Pos
	p.advance()

	if p.cur().Kind != lexer.Operator || p.cur().Str != "(" {
		return &ast.VariableExpr{Name: name, TypeName: "float", Location: loc}, nil
	}

	p.advance() // consume '('
	var args []ast.Node
	for !(p.cur().Kind == lexer.Operator && p.cur().Str == ")") {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur().Kind == lexer.Operator && p.cur().Str == "," {
			p.advance()
			continue
		}
		break
	}
	if !(p.cur().Kind == lexer.Operator && p.cur().Str == ")") {
		return nil, p.errf("expected ')' to close call to %q", name)
	}
	p.advance()
	return &ast.CallExpr{Callee: name, Args: args, Location: loc}, nil
}

func (p *Parser) parseParenExpr() (ast.Node, error) {
	p.advance() // consume '('
	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !(p.cur().Kind == lexer.Operator && p.cur().Str == ")") {
		return nil, p.errf("expected ')'")
	}
	p.advance()
	return inner, nil
}

func (p *Parser) parseReturn() (ast.Node, error) {
	loc := p.cur().Pos
	p.advance() // consume 'return'
	value, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Value: value, Location: loc}, nil
}

// parseBlock parses an indented block. outerIndent is the indentation
// level of the enclosing construct (0 at top level).
func (p *Parser) parseBlock(outerIndent int) (*ast.Block, error) {
	tok := p.cur()
	if tok.Kind != lexer.Indent {
		return nil, p.errf("expected indented block")
	}
	n := tok.Width
	if n <= outerIndent {
		return nil, p.errf("empty block: expected indentation greater than %d, got %d", outerIndent, n)
	}
	p.advance()

	savedIndent := p.indent
	p.indent = n
	defer func() { p.indent = savedIndent }()

	block := &ast.Block{Location: tok.Pos}
	for {
		node, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		block.Nodes = append(block.Nodes, node)

		next := p.cur()
		if next.Kind != lexer.Indent {
			return block, nil
		}
		if next.Width < n {
			// Block ends; leave the Indent token for the outer parser.
			return block, nil
		}
		if next.Width > n {
			return nil, p.errf("indentation not allowed here")
		}
		p.advance() // consume the matching Indent, continue the block
	}
}

func (p *Parser) expectOperator(op string) error {
	tok := p.cur()
	if tok.Kind != lexer.Operator || tok.Str != op {
		return p.errf("expected %q, got %v", op, tok)
	}
	p.advance()
	return nil
}

func (p *Parser) parseIfStmt() (ast.Node, error) {
	loc := p.cur().Pos
	p.advance() // consume 'if'
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator(":"); err != nil {
		return nil, err
	}
	then, err := p.parseBlock(p.indent)
	if err != nil {
		return nil, err
	}

	elseBlock := &ast.Block{}
	if p.atSiblingElse() {
		if p.cur().Kind == lexer.Indent {
			p.advance() // consume the separating Indent
		}
		p.advance() // consume 'else'
		if err := p.expectOperator(":"); err != nil {
			return nil, err
		}
		elseBlock, err = p.parseBlock(p.indent)
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStmt{Cond: cond, Then: then, Else: elseBlock, Location: loc}, nil
}

// atSiblingElse reports whether an `else` clause for the if-statement
// just parsed follows: either directly, or past the Indent token that
// starts every line at this statement's own indentation level.
func (p *Parser) atSiblingElse() bool {
	cur := p.cur()
	if cur.Kind == lexer.Indent && cur.Width == p.indent {
		return p.ts.Peek(1).Kind == lexer.KwElse
	}
	return cur.Kind == lexer.KwElse
}

func (p *Parser) parseForStmt() (ast.Node, error) {
	loc := p.cur().Pos
	p.advance() // consume 'for'

	if p.cur().Kind != lexer.Identifier {
		return nil, p.errf("expected loop variable name")
	}
	varName := p.cur().Str
	p.advance()

	if err := p.expectOperator("="); err != nil {
		return nil, err
	}
	start, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator(","); err != nil {
		return nil, err
	}
	end, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	var step ast.Node
	if p.cur().Kind == lexer.Operator && p.cur().Str == "," {
		p.advance()
		step, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	} else {
		step = &ast.FloatExpr{Value: 1.0, Location: loc}
	}

	if p.cur().Kind != lexer.KwIn {
		return nil, p.errf("expected 'in'")
	}
	p.advance()

	body, err := p.parseBlock(p.indent)
	if err != nil {
		return nil, err
	}

	return &ast.ForStmt{VarName: varName, Start: start, End: end, Step: step, Body: body, Location: loc}, nil
}

func (p *Parser) parseVarExpr() (ast.Node, error) {
	loc := p.cur().Pos
	p.advance() // consume 'var'

	var bindings []ast.VarBinding
	for {
		if p.cur().Kind != lexer.Identifier {
			return nil, p.errf("expected identifier in var binding")
		}
		name := p.cur().Str
		p.advance()

		var init ast.Node
		if p.cur().Kind == lexer.Operator && p.cur().Str == "=" {
			p.advance()
			var err error
			init, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		} else {
			init = &ast.FloatExpr{Value: 0.0, Location: loc}
		}
		bindings = append(bindings, ast.VarBinding{Name: name, Init: init})

		if p.cur().Kind == lexer.Operator && p.cur().Str == "," {
			p.advance()
			continue
		}
		break
	}

	if p.cur().Kind != lexer.KwIn {
		return nil, p.errf("expected 'in' after var bindings")
	}
	p.advance()

	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.VarExpr{Bindings: bindings, TypeName: "float", Body: body, Location: loc}, nil
}

func (p *Parser) parsePrototype() (*ast.Prototype, error) {
	if p.cur().Kind != lexer.Identifier {
		return nil, p.errf("expected function name")
	}
	name := p.cur().Str
	loc := p.cur().Pos
	p.advance()

	if err := p.expectOperator("("); err != nil {
		return nil, err
	}

	var params []*ast.VariableExpr
	for !(p.cur().Kind == lexer.Operator && p.cur().Str == ")") {
		if p.cur().Kind != lexer.Identifier {
			return nil, p.errf("expected parameter name")
		}
		params = append(params, &ast.VariableExpr{Name: p.cur().Str, TypeName: "float", Location: p.cur().Pos})
		p.advance()
		if p.cur().Kind == lexer.Operator && p.cur().Str == "," {
			p.advance()
			continue
		}
		break
	}
	if err := p.expectOperator(")"); err != nil {
		return nil, err
	}

	return &ast.Prototype{Name: name, ReturnType: "float", Params: params, Location: loc}, nil
}

func (p *Parser) parseFunction() (ast.Node, error) {
	loc := p.cur().Pos
	p.advance() // consume 'fn'

	proto, err := p.parsePrototype()
	if err != nil {
		return nil, err
	}
	if err := p.expectOperator(":"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(p.indent)
	if err != nil {
		return nil, err
	}

	return &ast.Function{Proto: proto, Body: body, Location: loc}, nil
}

func (p *Parser) parseExtern() (ast.Node, error) {
	p.advance() // consume 'extern'
	return p.parsePrototype()
}
