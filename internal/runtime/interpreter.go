package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/rtoal/astro-interpreter/internal/ast"
	"github.com/rtoal/astro-interpreter/internal/config"
	"github.com/rtoal/astro-interpreter/internal/span"
	"github.com/rtoal/astro-interpreter/internal/token"
)

// ============================================================
// Interpreter
// ============================================================

// Interpreter walks the AST and executes it against a symbol table.
type Interpreter struct {
	table  *SymbolTable
	output io.Writer
	logger *slog.Logger
}

// NewInterpreter creates an interpreter with a fresh table seeded with the
// built-ins for dialect.
func NewInterpreter(output io.Writer, dialect config.Dialect) *Interpreter {
	return NewInterpreterWithTable(NewTable(dialect), output)
}

// NewInterpreterWithTable creates an interpreter over an existing table.
func NewInterpreterWithTable(table *SymbolTable, output io.Writer) *Interpreter {
	return &Interpreter{
		table:  table,
		output: output,
		logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})),
	}
}

// SetLogger routes execution tracing to logger at debug level.
func (i *Interpreter) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	i.logger = logger
}

// Table returns the symbol table (useful for REPL).
func (i *Interpreter) Table() *SymbolTable {
	return i.table
}

// Run executes every statement in order and stops at the first error.
func (i *Interpreter) Run(file *ast.File) error {
	for _, stmt := range file.Body {
		if i.logger.Enabled(context.Background(), slog.LevelDebug) {
			i.logger.Debug("exec", "stmt", fmt.Sprintf("%T", stmt), "at", stmt.GetSpan().Start.String())
		}
		if err := i.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Run executes file against table, writing print output to output.
func Run(file *ast.File, table *SymbolTable, output io.Writer) error {
	return NewInterpreterWithTable(table, output).Run(file)
}

// ============================================================
// Statement execution
// ============================================================

func (i *Interpreter) execStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		return i.execAssign(s)
	case *ast.CallStmt:
		return i.execCall(s)
	case *ast.PrintStmt:
		v, err := i.evalExpr(s.Value)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(i.output, FormatNumber(v))
		return err
	default:
		return fmt.Errorf("%s: unhandled statement type: %T", stmt.GetSpan().Start, stmt)
	}
}

// execAssign validates the target before touching the table, so a failed
// assignment leaves it unchanged.
func (i *Interpreter) execAssign(s *ast.AssignStmt) error {
	val, err := i.evalExpr(s.Value)
	if err != nil {
		return err
	}

	name := s.Target.Name
	if existing, ok := i.table.Lookup(name); ok {
		num, isNum := existing.(*Number)
		if !isNum {
			return runtimeErr(TypeMismatch, s.Target.GetSpan(), "cannot assign")
		}
		if !num.Mutable {
			return runtimeErr(NotWritable, s.Target.GetSpan(), "%s not writable", name)
		}
	}

	i.table.Define(name, &Number{Value: val, Mutable: true})
	i.logger.Debug("assign", "name", name, "value", val)
	return nil
}

func (i *Interpreter) execCall(s *ast.CallStmt) error {
	args, err := i.evalArgs(s.Call.Args)
	if err != nil {
		return err
	}

	b, err := i.lookup(s.Call.Callee)
	if err != nil {
		return err
	}
	proc, ok := b.(*Procedure)
	if !ok {
		return runtimeErr(TypeMismatch, s.Call.Callee.GetSpan(), "Procedure expected")
	}
	if err := checkArity(proc.Arity, args, s.Call.ArgsSpan); err != nil {
		return err
	}

	return proc.Fn(i.output, args)
}

// ============================================================
// Expression evaluation
// ============================================================

func (i *Interpreter) evalExpr(expr ast.Expr) (float64, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return e.Value, nil
	case *ast.IdentExpr:
		return i.evalIdent(e)
	case *ast.UnaryExpr:
		v, err := i.evalExpr(e.Operand)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case *ast.BinaryExpr:
		return i.evalBinary(e)
	case *ast.CallExpr:
		return i.evalCall(e)
	default:
		return 0, fmt.Errorf("%s: unhandled expression type: %T", expr.GetSpan().Start, expr)
	}
}

func (i *Interpreter) evalIdent(e *ast.IdentExpr) (float64, error) {
	b, err := i.lookup(e)
	if err != nil {
		return 0, err
	}
	num, ok := b.(*Number)
	if !ok {
		return 0, runtimeErr(TypeMismatch, e.GetSpan(), "expected type number")
	}
	return num.Value, nil
}

// evalBinary applies IEEE-754 double arithmetic.
func (i *Interpreter) evalBinary(e *ast.BinaryExpr) (float64, error) {
	left, err := i.evalExpr(e.Left)
	if err != nil {
		return 0, err
	}
	right, err := i.evalExpr(e.Right)
	if err != nil {
		return 0, err
	}

	switch e.Op {
	case token.PLUS:
		return left + right, nil
	case token.MINUS:
		return left - right, nil
	case token.STAR:
		return left * right, nil
	case token.SLASH:
		return left / right, nil
	case token.PERCENT:
		return math.Mod(left, right), nil
	case token.POWER:
		return power(left, right), nil
	default:
		return 0, fmt.Errorf("%s: unknown operator '%s'", e.GetSpan().Start, e.Op)
	}
}

// power is math.Pow except that a base of 1 or -1 raised to NaN or an
// infinity is NaN, as in ECMAScript exponentiation.
func power(x, y float64) float64 {
	if math.Abs(x) == 1 && (math.IsNaN(y) || math.IsInf(y, 0)) {
		return math.NaN()
	}
	return math.Pow(x, y)
}

func (i *Interpreter) evalCall(e *ast.CallExpr) (float64, error) {
	args, err := i.evalArgs(e.Args)
	if err != nil {
		return 0, err
	}

	b, err := i.lookup(e.Callee)
	if err != nil {
		return 0, err
	}
	fn, ok := b.(*Function)
	if !ok {
		return 0, runtimeErr(TypeMismatch, e.Callee.GetSpan(), "Function expected")
	}
	if err := checkArity(fn.Arity, args, e.ArgsSpan); err != nil {
		return 0, err
	}

	return fn.Fn(args), nil
}

// evalArgs evaluates call arguments strictly left to right.
func (i *Interpreter) evalArgs(exprs []ast.Expr) ([]float64, error) {
	args := make([]float64, len(exprs))
	for idx, argExpr := range exprs {
		v, err := i.evalExpr(argExpr)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}
	return args, nil
}

func (i *Interpreter) lookup(id *ast.IdentExpr) (Binding, error) {
	b, ok := i.table.Lookup(id.Name)
	if !ok {
		return nil, runtimeErr(UndefinedSymbol, id.GetSpan(), "%s not defined", id.Name)
	}
	return b, nil
}

func checkArity(arity int, args []float64, s span.Span) error {
	if len(args) != arity {
		return runtimeErr(ArityMismatch, s, "wrong number of arguments")
	}
	return nil
}
