// Package session ties the lexer, parser and evaluator together. A Session
// owns one symbol table, so successive Exec calls see earlier assignments.
package session

import (
	"errors"
	"io"
	"log/slog"

	"github.com/rtoal/astro-interpreter/internal/ast"
	"github.com/rtoal/astro-interpreter/internal/config"
	"github.com/rtoal/astro-interpreter/internal/diag"
	"github.com/rtoal/astro-interpreter/internal/lexer"
	"github.com/rtoal/astro-interpreter/internal/parser"
	"github.com/rtoal/astro-interpreter/internal/runtime"
)

// Session is one run of the interpreter, or one REPL lifetime.
type Session struct {
	dialect config.Dialect
	interp  *runtime.Interpreter
}

// New creates a session with a freshly seeded symbol table.
func New(output io.Writer, dialect config.Dialect) *Session {
	return &Session{
		dialect: dialect,
		interp:  runtime.NewInterpreter(output, dialect),
	}
}

// SetLogger enables execution tracing.
func (s *Session) SetLogger(logger *slog.Logger) {
	s.interp.SetLogger(logger)
}

// Table exposes the session's symbol table.
func (s *Session) Table() *runtime.SymbolTable {
	return s.interp.Table()
}

// Exec parses and runs source. The returned error is a diag.Diagnostic for
// lexical and syntax errors, or a *runtime.Error.
func (s *Session) Exec(source string) error {
	file, err := Parse(source, s.dialect)
	if err != nil {
		return err
	}
	return s.interp.Run(file)
}

// Parse lexes and parses source, returning the first diagnostic as the error.
func Parse(source string, dialect config.Dialect) (*ast.File, error) {
	file, diags := ParseAll(source, dialect)
	if len(diags) > 0 {
		return nil, diags[0]
	}
	return file, nil
}

// ParseAll lexes and parses source and returns every diagnostic. Parsing is
// skipped when lexing fails.
func ParseAll(source string, dialect config.Dialect) (*ast.File, []diag.Diagnostic) {
	tokens, lexDiags := lexer.New(source).Tokenize()
	if len(lexDiags) > 0 {
		return nil, lexDiags
	}
	return parser.New(tokens, dialect).ParseFile()
}

// Run executes source in a fresh session.
func Run(source string, output io.Writer, dialect config.Dialect) error {
	return New(output, dialect).Exec(source)
}

// Diagnose extracts the diagnostic behind an error returned by Exec or Parse.
func Diagnose(err error) (diag.Diagnostic, bool) {
	var d diag.Diagnostic
	if errors.As(err, &d) {
		return d, true
	}
	var rerr *runtime.Error
	if errors.As(err, &rerr) {
		return rerr.Diagnostic(), true
	}
	return diag.Diagnostic{}, false
}
