// Package ast defines the abstract syntax tree for Astro.
package ast

import (
	"github.com/rtoal/astro-interpreter/internal/span"
	"github.com/rtoal/astro-interpreter/internal/token"
)

// ============================================================
// Node interfaces
// ============================================================

// Node is the interface implemented by all AST nodes.
type Node interface {
	nodeNode()
	GetSpan() span.Span
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// ============================================================
// Base types (embedded to provide common fields)
// ============================================================

// NodeBase provides the common Span field for all AST nodes.
type NodeBase struct {
	Span span.Span
}

func (n NodeBase) nodeNode()          {}
func (n NodeBase) GetSpan() span.Span { return n.Span }

// ExprBase is embedded by all expression nodes.
type ExprBase struct{ NodeBase }

func (ExprBase) exprNode() {}

// StmtBase is embedded by all statement nodes.
type StmtBase struct{ NodeBase }

func (StmtBase) stmtNode() {}

// ============================================================
// File (top-level AST root)
// ============================================================

// File represents an entire program.
type File struct {
	NodeBase
	Body []Stmt
}

// ============================================================
// Expressions
// ============================================================

// IdentExpr represents an identifier reference.
type IdentExpr struct {
	ExprBase
	Name string
}

// NumberLiteral represents a numeral. Raw keeps the source digits.
type NumberLiteral struct {
	ExprBase
	Raw   string
	Value float64
}

// UnaryExpr represents arithmetic negation: -x.
type UnaryExpr struct {
	ExprBase
	Op      token.Kind
	Operand Expr
}

// BinaryExpr represents a binary operation: a + b, a ** b.
type BinaryExpr struct {
	ExprBase
	Op    token.Kind
	Left  Expr
	Right Expr
}

// CallExpr represents a call: f(a, b).
// ArgsSpan covers the argument list between the parentheses.
type CallExpr struct {
	ExprBase
	Callee   *IdentExpr
	Args     []Expr
	ArgsSpan span.Span
}

// ============================================================
// Statements
// ============================================================

// AssignStmt represents an assignment: target = value;
type AssignStmt struct {
	StmtBase
	Target *IdentExpr
	Value  Expr
}

// CallStmt represents a free-standing call: f(a, b);
type CallStmt struct {
	StmtBase
	Call *CallExpr
}

// PrintStmt represents the keyword form: print expr;
type PrintStmt struct {
	StmtBase
	Value Expr
}
