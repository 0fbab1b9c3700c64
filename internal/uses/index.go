// Package uses indexes where every symbol is declared, read and written.
//
// The index is built once per model with a single pre-order walk and is
// never mutated afterwards, so any number of checks may query it at once.
// Queries about unknown or synthesized symbols return empty results.
package uses

import (
	"slices"

	"gradelint/internal/ast"
	"gradelint/internal/model"
	"gradelint/internal/symbols"
)

// UseKind classifies one occurrence of a symbol.
type UseKind uint8

const (
	Read UseKind = iota
	Write
	Declare
)

func (k UseKind) String() string {
	switch k {
	case Read:
		return "read"
	case Write:
		return "write"
	case Declare:
		return "declare"
	default:
		return "unknown"
	}
}

// Use is one occurrence: the declaration node for Declare, the bound Name
// node otherwise.
type Use struct {
	Node ast.NodeID
	Kind UseKind
}

// Index maps symbols to their uses in declaration order.
type Index struct {
	m    *model.Model
	uses map[symbols.SymbolID][]Use
}

// Build walks the model once and classifies every symbol occurrence.
func Build(m *model.Model) *Index {
	ix := &Index{
		m:    m,
		uses: make(map[symbols.SymbolID][]Use, m.Symbols.Symbols.Len()),
	}
	tree := m.Tree
	m.Walk(func(id ast.NodeID) {
		switch tree.Kind(id) {
		case ast.KindField, ast.KindParam, ast.KindLocal:
			if sym := m.Symbols.Declared(id); sym.IsValid() {
				ix.uses[sym] = append(ix.uses[sym], Use{Node: id, Kind: Declare})
			}
		case ast.KindName:
			sym := m.Symbols.SymbolOf(id)
			if !sym.IsValid() {
				return
			}
			kind := Read
			if isWriteTarget(tree, id) {
				kind = Write
			}
			ix.uses[sym] = append(ix.uses[sym], Use{Node: id, Kind: kind})
		}
	})
	return ix
}

// isWriteTarget reports whether a Name node is stored into.
func isWriteTarget(tree *ast.Builder, id ast.NodeID) bool {
	parent := tree.Parent(id)
	switch tree.Kind(parent) {
	case ast.KindAssign:
		a, ok := tree.Exprs.Assign(parent)
		return ok && a.Target == id
	case ast.KindUnary:
		u, ok := tree.Exprs.Unary(parent)
		return ok && u.Op.IsIncDec()
	}
	return false
}

// Model returns the model the index was built from.
func (ix *Index) Model() *model.Model { return ix.m }

// Uses returns every use of sym in declaration order.
// READONLY: callers must not modify the returned slice.
func (ix *Index) Uses(sym symbols.SymbolID) []Use {
	return ix.uses[sym]
}

// Symbols lists the symbols that have at least one use, ordered by id.
func (ix *Index) Symbols() []symbols.SymbolID {
	out := make([]symbols.SymbolID, 0, len(ix.uses))
	for sym := range ix.uses {
		out = append(out, sym)
	}
	slices.Sort(out)
	return out
}

// FindUses returns, in declaration order, the nodes of the uses of sym
// that satisfy pred. A nil predicate matches everything.
func (ix *Index) FindUses(sym symbols.SymbolID, pred Predicate) []ast.NodeID {
	var out []ast.NodeID
	for _, u := range ix.uses[sym] {
		if pred == nil || pred(ix, u) {
			out = append(out, u.Node)
		}
	}
	return out
}

// HasAnyUses reports whether some use of sym satisfies pred.
func (ix *Index) HasAnyUses(sym symbols.SymbolID, pred Predicate) bool {
	for _, u := range ix.uses[sym] {
		if pred == nil || pred(ix, u) {
			return true
		}
	}
	return false
}

// CountUses counts the uses of sym that satisfy pred.
func (ix *Index) CountUses(sym symbols.SymbolID, pred Predicate) int {
	n := 0
	for _, u := range ix.uses[sym] {
		if pred == nil || pred(ix, u) {
			n++
		}
	}
	return n
}

// Assignment returns the assignment whose target is the given write node.
// Increments and decrements have no assignment.
func (ix *Index) Assignment(node ast.NodeID) (ast.NodeID, *ast.AssignData, bool) {
	parent := ix.m.Tree.Parent(node)
	a, ok := ix.m.Tree.Exprs.Assign(parent)
	if !ok || a.Target != node {
		return ast.NoNodeID, nil, false
	}
	return parent, a, true
}

// EnclosingConstructor returns the nearest constructor or initializer
// declaration around node. Method and type boundaries stop the search.
func (ix *Index) EnclosingConstructor(node ast.NodeID) ast.NodeID {
	return ix.m.Tree.EnclosingUntil(node,
		[]ast.Kind{ast.KindMethod, ast.KindType},
		ast.KindConstructor, ast.KindInitializer)
}

// EnclosingBody returns the nearest method, constructor or initializer
// around node.
func (ix *Index) EnclosingBody(node ast.NodeID) ast.NodeID {
	return ix.m.Tree.EnclosingUntil(node,
		[]ast.Kind{ast.KindType},
		ast.KindMethod, ast.KindConstructor, ast.KindInitializer)
}
