// Package parser implements the syntax analysis for Astro.
// It uses Pratt parsing for the left-associative operator levels and
// recursive descent for statements, factors and primaries.
package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rtoal/astro-interpreter/internal/ast"
	"github.com/rtoal/astro-interpreter/internal/config"
	"github.com/rtoal/astro-interpreter/internal/diag"
	"github.com/rtoal/astro-interpreter/internal/span"
	"github.com/rtoal/astro-interpreter/internal/token"
)

// ============================================================
// Binding power (precedence) levels
// ============================================================

const (
	bpNone     = 0
	bpAdditive = 10 // + -
	bpMultiply = 20 // * / %
)

// infixBP returns the left binding power for an infix operator.
// ** is handled by parseFactor since it is right-associative.
func (p *Parser) infixBP(kind token.Kind) int {
	switch kind {
	case token.PLUS, token.MINUS:
		return bpAdditive
	case token.STAR, token.SLASH:
		return bpMultiply
	case token.PERCENT:
		if p.dialect.Modulo {
			return bpMultiply
		}
		return bpNone
	default:
		return bpNone
	}
}

// ============================================================
// Parser
// ============================================================

// Parser performs syntax analysis on a stream of tokens.
type Parser struct {
	tokens  []token.Token
	pos     int
	diags   []diag.Diagnostic
	dialect config.Dialect
}

// New creates a new parser from a token slice.
func New(tokens []token.Token, dialect config.Dialect) *Parser {
	return &Parser{tokens: tokens, pos: 0, dialect: dialect}
}

// ParseFile parses the entire program and returns the AST root and diagnostics.
func (p *Parser) ParseFile() (*ast.File, []diag.Diagnostic) {
	file := &ast.File{}
	startPos := p.peek().Span.Start

	if p.isAtEnd() {
		p.error("E2004", p.peek().Span, "expected at least one statement")
	}
	for !p.isAtEnd() {
		if stmt := p.parseStmt(); stmt != nil {
			file.Body = append(file.Body, stmt)
		}
	}

	endPos := p.peek().Span.End
	file.Span = span.Span{Start: startPos, End: endPos}
	return file, p.diags
}

// ---- navigation helpers ----

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekKind() token.Kind {
	return p.peek().Kind
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peekKind() == kind
}

func (p *Parser) expect(kind token.Kind) (token.Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	tok := p.peek()
	p.error("E2001", tok.Span, fmt.Sprintf("expected '%s', got %s", kind, describe(tok)))
	return tok, false
}

func (p *Parser) isAtEnd() bool {
	return p.peekKind() == token.EOF
}

// isName reports whether tok can be used as an identifier. In the procedure
// dialect print is an ordinary name bound in the symbol table.
func (p *Parser) isName(tok token.Token) bool {
	return tok.Kind == token.IDENT ||
		(tok.Kind == token.KW_PRINT && p.dialect.Print == config.PrintProcedure)
}

func (p *Parser) error(code string, s span.Span, msg string) {
	p.diags = append(p.diags, diag.Errorf(code, s, "%s", msg))
}

// describe renders a token for use in a message.
func describe(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", tok.Lexeme)
}

// ============================================================
// Error recovery
// ============================================================

// synchronize skips tokens up to and including the next ';'.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.advance().Kind == token.SEMICOLON {
			return
		}
	}
}

// ============================================================
// Statement parsing
// ============================================================

func (p *Parser) parseStmt() ast.Stmt {
	tok := p.peek()
	switch {
	case tok.Kind == token.KW_PRINT && p.dialect.Print == config.PrintKeyword:
		return p.parsePrintStmt()
	case p.isName(tok):
		return p.parseNameStmt()
	default:
		p.error("E2002", tok.Span, fmt.Sprintf("expected a statement, got %s", describe(tok)))
		p.synchronize()
		return nil
	}
}

// parsePrintStmt parses: print expr ;
func (p *Parser) parsePrintStmt() ast.Stmt {
	start := p.advance() // consume 'print'
	value := p.parseExpr(bpNone)
	if value == nil || !p.expectSemicolon() {
		p.synchronize()
		return nil
	}
	return &ast.PrintStmt{
		StmtBase: makeStmtBase(start.Span.Start, p.prevEnd()),
		Value:    value,
	}
}

// parseNameStmt parses: id = expr ;  or  id ( args ) ;
func (p *Parser) parseNameStmt() ast.Stmt {
	nameTok := p.advance()
	target := &ast.IdentExpr{
		ExprBase: makeExprBase(nameTok.Span.Start, nameTok.Span.End),
		Name:     nameTok.Lexeme,
	}

	switch p.peekKind() {
	case token.ASSIGN:
		p.advance()
		value := p.parseExpr(bpNone)
		if value == nil || !p.expectSemicolon() {
			p.synchronize()
			return nil
		}
		return &ast.AssignStmt{
			StmtBase: makeStmtBase(nameTok.Span.Start, p.prevEnd()),
			Target:   target,
			Value:    value,
		}

	case token.LPAREN:
		call := p.parseCallExpr(target)
		if call == nil || !p.expectSemicolon() {
			p.synchronize()
			return nil
		}
		return &ast.CallStmt{
			StmtBase: makeStmtBase(nameTok.Span.Start, p.prevEnd()),
			Call:     call,
		}

	default:
		tok := p.peek()
		p.error("E2003", tok.Span, fmt.Sprintf("expected '=' or '(' after '%s', got %s", nameTok.Lexeme, describe(tok)))
		p.synchronize()
		return nil
	}
}

// expectSemicolon consumes the statement terminator without recovering;
// callers synchronize on failure.
func (p *Parser) expectSemicolon() bool {
	if p.check(token.SEMICOLON) {
		p.advance()
		return true
	}
	tok := p.peek()
	p.error("E2001", tok.Span, fmt.Sprintf("expected ';', got %s", describe(tok)))
	return false
}

// ============================================================
// Expression parsing (Pratt / precedence climbing)
// ============================================================

// parseExpr parses an expression with the given minimum binding power.
// It returns nil after recording a diagnostic.
func (p *Parser) parseExpr(minBP int) ast.Expr {
	left := p.parseFactor()
	if left == nil {
		return nil
	}

	for {
		kind := p.peekKind()
		bp := p.infixBP(kind)
		if bp <= minBP {
			break
		}
		p.advance()
		right := p.parseExpr(bp)
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{
			ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Span: span.Join(left.GetSpan(), right.GetSpan())}},
			Op:       kind,
			Left:     left,
			Right:    right,
		}
	}

	return left
}

// parseFactor parses: Primary "**" Factor | "-" Primary | Primary
func (p *Parser) parseFactor() ast.Expr {
	if p.check(token.MINUS) {
		tok := p.advance()
		if !p.dialect.Negation {
			p.diags = append(p.diags, diag.Diagnostic{
				Code:    "E2005",
				Message: "unary '-' is not enabled in this dialect",
				Span:    tok.Span,
				Hint:    "write 0 - x instead",
			})
			return nil
		}
		operand := p.parsePrimary()
		if operand == nil {
			return nil
		}
		return &ast.UnaryExpr{
			ExprBase: makeExprBase(tok.Span.Start, operand.GetSpan().End),
			Op:       token.MINUS,
			Operand:  operand,
		}
	}

	base := p.parsePrimary()
	if base == nil {
		return nil
	}
	if !p.check(token.POWER) {
		return base
	}
	p.advance() // consume '**'
	exponent := p.parseFactor()
	if exponent == nil {
		return nil
	}
	return &ast.BinaryExpr{
		ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Span: span.Join(base.GetSpan(), exponent.GetSpan())}},
		Op:       token.POWER,
		Left:     base,
		Right:    exponent,
	}
}

// parsePrimary parses: id "(" Args ")" | numeral | id | "(" Exp ")"
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()

	switch {
	case tok.Kind == token.NUMBER:
		p.advance()
		val, err := strconv.ParseFloat(tok.Lexeme, 64)
		// Out-of-range numerals round to ±Inf or 0, like any IEEE conversion.
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			p.error("E2006", tok.Span, fmt.Sprintf("malformed numeral '%s'", tok.Lexeme))
			return nil
		}
		return &ast.NumberLiteral{
			ExprBase: makeExprBase(tok.Span.Start, tok.Span.End),
			Raw:      tok.Lexeme,
			Value:    val,
		}

	case p.isName(tok):
		p.advance()
		ident := &ast.IdentExpr{
			ExprBase: makeExprBase(tok.Span.Start, tok.Span.End),
			Name:     tok.Lexeme,
		}
		if p.check(token.LPAREN) {
			if call := p.parseCallExpr(ident); call != nil {
				return call
			}
			return nil
		}
		return ident

	case tok.Kind == token.LPAREN:
		// Grouped expression: ( expr )
		p.advance() // consume '('
		expr := p.parseExpr(bpNone)
		if expr == nil {
			return nil
		}
		if _, ok := p.expect(token.RPAREN); !ok {
			return nil
		}
		return expr

	default:
		d := diag.Errorf("E2002", tok.Span, "expected an expression, got %s", describe(tok))
		if tok.Kind.IsKeyword() {
			d.Hint = fmt.Sprintf("'%s' is a keyword", tok.Lexeme)
		}
		p.diags = append(p.diags, d)
		return nil
	}
}

// parseCallExpr parses: callee ( args )
func (p *Parser) parseCallExpr(callee *ast.IdentExpr) *ast.CallExpr {
	p.advance() // consume '('
	var args []ast.Expr
	argsStart := p.peek().Span.Start

	if !p.check(token.RPAREN) {
		for {
			arg := p.parseExpr(bpNone)
			if arg == nil {
				return nil
			}
			args = append(args, arg)
			if !p.check(token.COMMA) {
				break
			}
			p.advance() // consume ','
		}
	}

	argsEnd := argsStart
	if len(args) > 0 {
		argsEnd = p.prevEnd()
	}
	end, ok := p.expect(token.RPAREN)
	if !ok {
		return nil
	}

	return &ast.CallExpr{
		ExprBase: makeExprBase(callee.GetSpan().Start, end.Span.End),
		Callee:   callee,
		Args:     args,
		ArgsSpan: span.Span{Start: argsStart, End: argsEnd},
	}
}

// ============================================================
// Span helpers
// ============================================================

func (p *Parser) prevEnd() span.Position {
	if p.pos > 0 && p.pos-1 < len(p.tokens) {
		return p.tokens[p.pos-1].Span.End
	}
	return p.peek().Span.Start
}

func makeExprBase(start, end span.Position) ast.ExprBase {
	return ast.ExprBase{NodeBase: ast.NodeBase{Span: span.Span{Start: start, End: end}}}
}

func makeStmtBase(start, end span.Position) ast.StmtBase {
	return ast.StmtBase{NodeBase: ast.NodeBase{Span: span.Span{Start: start, End: end}}}
}
