package compiler

// Function describes the JML rendering of a Contract-LIB function symbol.
type Function struct {
	Name  string // JML operator or function name
	Arity int    // expected argument count
	Infix bool   // render two-argument applications infix
}

// SymbolTable maps Contract-LIB theory symbols to JML functions.
// A table is immutable after construction and safe for concurrent use.
type SymbolTable struct {
	entries map[string]Function
}

// NewSymbolTable builds a table from entries. The map is copied.
func NewSymbolTable(entries map[string]Function) *SymbolTable {
	t := &SymbolTable{entries: make(map[string]Function, len(entries))}
	for k, v := range entries {
		t.entries[k] = v
	}
	return t
}

// Lookup returns the JML function for symbol. Matching is exact.
func (t *SymbolTable) Lookup(symbol string) (Function, bool) {
	f, ok := t.entries[symbol]
	return f, ok
}

// Len returns the number of symbols in the table.
func (t *SymbolTable) Len() int {
	return len(t.entries)
}

// Core theory: https://smt-lib.org/theories-Core.shtml
// Sequences: https://cvc5.github.io/docs/cvc5-1.1.1/theories/sequences.html
var defaultSymbols = NewSymbolTable(map[string]Function{
	"true":  {Name: "true", Arity: 0, Infix: true},
	"false": {Name: "false", Arity: 0, Infix: true},
	"not":   {Name: "!", Arity: 1, Infix: true},
	"=>":    {Name: "==>", Arity: 2, Infix: true},
	"and":   {Name: "&&", Arity: 2, Infix: true},
	"or":    {Name: "||", Arity: 2, Infix: true},
	"=":     {Name: "==", Arity: 2, Infix: true},

	"seq.empty":    {Name: `\seq_empty`, Arity: 0},
	"seq.unit":     {Name: `\seq_singleton`, Arity: 1},
	"seq.len":      {Name: `\seq_length`, Arity: 1},
	"seq.nth":      {Name: `\seq_get`, Arity: 2},
	"seq.update":   {Name: `\seq_upd`, Arity: 3},
	"seq.++":       {Name: `\seq_concat`, Arity: 2},
	"seq.contains": {Name: `\seq_contains`, Arity: 2},
})

// DefaultSymbols returns the shared core + sequence theory table.
func DefaultSymbols() *SymbolTable {
	return defaultSymbols
}

// With returns a new table holding t's entries overlaid with extra.
// Entries in extra replace same-named entries of t; t is unchanged.
func (t *SymbolTable) With(extra map[string]Function) *SymbolTable {
	merged := make(map[string]Function, len(t.entries)+len(extra))
	for k, v := range t.entries {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return &SymbolTable{entries: merged}
}
