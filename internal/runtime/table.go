package runtime

import "sort"

// SymbolTable maps identifiers to bindings. It is flat: Astro has a single
// global scope.
type SymbolTable struct {
	bindings map[string]Binding
}

// NewSymbolTable creates an empty table. Use NewTable for one seeded with
// built-ins.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{bindings: make(map[string]Binding)}
}

// Lookup returns the binding for name.
func (t *SymbolTable) Lookup(name string) (Binding, bool) {
	b, ok := t.bindings[name]
	return b, ok
}

// Define inserts or replaces the binding for name. Callers check kind and
// mutability first; Define itself never refuses.
func (t *SymbolTable) Define(name string, b Binding) {
	t.bindings[name] = b
}

// Names returns the bound names in sorted order.
func (t *SymbolTable) Names() []string {
	names := make([]string, 0, len(t.bindings))
	for name := range t.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
