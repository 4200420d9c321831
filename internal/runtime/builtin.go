package runtime

import (
	"fmt"
	"io"
	"math"

	"github.com/rtoal/astro-interpreter/internal/config"
)

// RegisterBuiltins adds the built-in constants and routines to the table.
// print is registered only when the dialect spells it as a procedure.
func RegisterBuiltins(t *SymbolTable, dialect config.Dialect) {
	t.Define("π", &Number{Value: math.Pi, Mutable: false})

	t.Define("sin", &Function{Name: "sin", Arity: 1, Fn: func(args []float64) float64 {
		return math.Sin(args[0])
	}})
	t.Define("cos", &Function{Name: "cos", Arity: 1, Fn: func(args []float64) float64 {
		return math.Cos(args[0])
	}})
	t.Define("sqrt", &Function{Name: "sqrt", Arity: 1, Fn: func(args []float64) float64 {
		return math.Sqrt(args[0])
	}})
	t.Define("hypot", &Function{Name: "hypot", Arity: 2, Fn: func(args []float64) float64 {
		return math.Hypot(args[0], args[1])
	}})

	if dialect.Print == config.PrintProcedure {
		t.Define("print", &Procedure{Name: "print", Arity: 1, Fn: func(w io.Writer, args []float64) error {
			_, err := fmt.Fprintln(w, FormatNumber(args[0]))
			return err
		}})
	}
}

// NewTable creates a symbol table seeded with the built-ins for dialect.
func NewTable(dialect config.Dialect) *SymbolTable {
	t := NewSymbolTable()
	RegisterBuiltins(t, dialect)
	return t
}
