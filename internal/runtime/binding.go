// Package runtime implements the symbol table and evaluator for Astro.
package runtime

import (
	"fmt"
	"io"
)

// Kind tags the variant of a Binding.
type Kind int

const (
	KindNumber Kind = iota
	KindFunction
	KindProcedure
)

var kindNames = [...]string{
	KindNumber:    "number",
	KindFunction:  "function",
	KindProcedure: "procedure",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Binding is what a name denotes in the symbol table. The set of
// implementations is closed: *Number, *Function and *Procedure.
type Binding interface {
	Kind() Kind
	String() string
	binding()
}

// Number is a numeric binding. Built-in constants are not Mutable.
type Number struct {
	Value   float64
	Mutable bool
}

func (*Number) Kind() Kind { return KindNumber }
func (*Number) binding()   {}
func (b *Number) String() string {
	access := "RO"
	if b.Mutable {
		access = "RW"
	}
	return fmt.Sprintf("number %s (%s)", FormatNumber(b.Value), access)
}

// Function is a native callable that returns one number.
type Function struct {
	Name  string
	Arity int
	Fn    func(args []float64) float64
}

func (*Function) Kind() Kind { return KindFunction }
func (*Function) binding()   {}
func (b *Function) String() string {
	return fmt.Sprintf("<function %s/%d>", b.Name, b.Arity)
}

// Procedure is a native callable invoked only as a statement. It writes to
// the output of the run that calls it.
type Procedure struct {
	Name  string
	Arity int
	Fn    func(w io.Writer, args []float64) error
}

func (*Procedure) Kind() Kind { return KindProcedure }
func (*Procedure) binding()   {}
func (b *Procedure) String() string {
	return fmt.Sprintf("<procedure %s/%d>", b.Name, b.Arity)
}
