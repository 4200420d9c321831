// Package token defines the lexical vocabulary of Astro.
package token

import (
	"fmt"

	"github.com/rtoal/astro-interpreter/internal/span"
)

// Kind classifies a token.
type Kind int

const (
	// End of input and lexical failures
	ILLEGAL Kind = iota
	EOF

	// Names and numerals
	IDENT  // identifiers: x, dozen, π
	NUMBER // numerals: 12, 3.5, 6.02e23

	// Operators
	ASSIGN  // =
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	POWER   // **

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	COMMA     // ,
	SEMICOLON // ;

	// print is reserved only in the keyword dialect; the parser decides.
	KW_PRINT
)

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",

	ASSIGN:  "=",
	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	POWER:   "**",

	LPAREN:    "(",
	RPAREN:    ")",
	COMMA:     ",",
	SEMICOLON: ";",

	KW_PRINT: "print",
}

// String is the kind's name, or its spelling for punctuation.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k == KW_PRINT
}

var keywords = map[string]Kind{
	"print": KW_PRINT,
}

// LookupIdent maps a scanned word to its keyword kind, or IDENT.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return IDENT
}

// Token is one lexeme with its source span.
type Token struct {
	Kind   Kind      `json:"kind"`
	Lexeme string    `json:"lexeme"`
	Span   span.Span `json:"span"`
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q %s", t.Kind, t.Lexeme, t.Span.Start)
}
