package symbols

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"gradelint/internal/ast"
	"gradelint/internal/source"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Symbols, Refs uint }

// Table aggregates the symbol arena and the node bindings. A binding is a
// lookup-only link from an ast node to a symbol; symbols never point back.
type Table struct {
	Symbols *Symbols
	Strings *source.Interner
	refs    map[ast.NodeID]SymbolID
	decls   map[ast.NodeID]SymbolID
}

// NewTable builds a fresh table with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Symbols: NewSymbols(symCap),
		Strings: strings,
		refs:    make(map[ast.NodeID]SymbolID, h.Refs),
		decls:   make(map[ast.NodeID]SymbolID, h.Symbols),
	}
}

// Declare allocates sym and binds its declaration node to it.
func (t *Table) Declare(sym Symbol) SymbolID {
	id := t.Symbols.New(&sym)
	if sym.Decl.IsValid() {
		t.decls[sym.Decl] = id
	}
	return id
}

// Bind links a referencing node to sym. Rebinding a node to a different
// symbol is refused.
func (t *Table) Bind(node ast.NodeID, sym SymbolID) bool {
	if !node.IsValid() || t.Symbols.Get(sym) == nil {
		return false
	}
	if prev, ok := t.refs[node]; ok && prev != sym {
		return false
	}
	t.refs[node] = sym
	return true
}

// SymbolOf returns the symbol referenced by node, or the symbol declared by
// it when node is a declaration.
func (t *Table) SymbolOf(node ast.NodeID) SymbolID {
	if sym, ok := t.refs[node]; ok {
		return sym
	}
	return t.decls[node]
}

// Declared returns the symbol introduced by a declaration node.
func (t *Table) Declared(decl ast.NodeID) SymbolID {
	return t.decls[decl]
}

// Get returns the symbol or nil.
func (t *Table) Get(id SymbolID) *Symbol {
	return t.Symbols.Get(id)
}

// Name returns the symbol name, or "" for unknown symbols.
func (t *Table) Name(id SymbolID) string {
	sym := t.Symbols.Get(id)
	if sym == nil || t.Strings == nil {
		return ""
	}
	name, _ := t.Strings.Lookup(sym.Name)
	return name
}

// Binding is one node-to-symbol reference.
type Binding struct {
	Node   ast.NodeID
	Symbol SymbolID
}

// Bindings returns every reference binding ordered by node id.
func (t *Table) Bindings() []Binding {
	out := make([]Binding, 0, len(t.refs))
	for node, sym := range t.refs {
		out = append(out, Binding{Node: node, Symbol: sym})
	}
	slices.SortFunc(out, func(a, b Binding) int {
		return int(a.Node) - int(b.Node)
	})
	return out
}
