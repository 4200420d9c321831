// Package diag provides the error diagnostics reported by the interpreter.
package diag

import (
	"fmt"

	"github.com/rtoal/astro-interpreter/internal/span"
)

// Diagnostic represents an interpreter error message. Every diagnostic is
// fatal to the run that produced it.
type Diagnostic struct {
	Code    string    `json:"code"`           // stable error code, e.g. "E2001"
	Message string    `json:"message"`        // human-readable description
	Span    span.Span `json:"span"`           // source location
	Hint    string    `json:"hint,omitempty"` // optional hint, shown with source context
}

// String renders the diagnostic as "<line>:<column>: <message>".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Span.Start.Line, d.Span.Start.Column, d.Message)
}

// Error makes a Diagnostic usable as an error value.
func (d Diagnostic) Error() string {
	return d.String()
}

// Errorf creates a diagnostic at the given span.
func Errorf(code string, s span.Span, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Span:    s,
	}
}
