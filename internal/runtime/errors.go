package runtime

import (
	"errors"
	"fmt"

	"github.com/rtoal/astro-interpreter/internal/diag"
	"github.com/rtoal/astro-interpreter/internal/span"
)

// ErrorKind classifies runtime failures.
type ErrorKind int

const (
	UndefinedSymbol ErrorKind = iota + 1
	TypeMismatch
	NotWritable
	ArityMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case UndefinedSymbol:
		return "UndefinedSymbol"
	case TypeMismatch:
		return "TypeMismatch"
	case NotWritable:
		return "NotWritable"
	case ArityMismatch:
		return "ArityMismatch"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// code is the stable diagnostic code for the kind.
func (k ErrorKind) code() string {
	return fmt.Sprintf("E3%03d", int(k))
}

// Sentinels for errors.Is.
var (
	ErrUndefinedSymbol = errors.New("undefined symbol")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrNotWritable     = errors.New("not writable")
	ErrArityMismatch   = errors.New("arity mismatch")
)

var sentinels = map[ErrorKind]error{
	UndefinedSymbol: ErrUndefinedSymbol,
	TypeMismatch:    ErrTypeMismatch,
	NotWritable:     ErrNotWritable,
	ArityMismatch:   ErrArityMismatch,
}

// Error represents a failure during evaluation, located at the node that
// triggered it.
type Error struct {
	Kind    ErrorKind
	Message string
	Span    span.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Span.Start.Line, e.Span.Start.Column, e.Message)
}

// Is matches the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	return sentinels[e.Kind] == target
}

// Diagnostic converts the error for uniform reporting with syntax errors.
func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.Errorf(e.Kind.code(), e.Span, "%s", e.Message)
}

func runtimeErr(kind ErrorKind, s span.Span, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Span: s}
}
