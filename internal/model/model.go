// Package model assembles the resolved tree handed over by the front-end:
// files, interned strings, types, ast nodes and symbol bindings. A Model is
// read-only once Finish returns it.
package model

import (
	"gradelint/internal/ast"
	"gradelint/internal/source"
	"gradelint/internal/symbols"
	"gradelint/internal/types"
)

// Model is the immutable snapshot analysed by checks.
type Model struct {
	Files   *source.FileSet
	Strings *source.Interner
	Types   *types.Interner
	Tree    *ast.Builder
	Symbols *symbols.Table
	Roots   []ast.NodeID
}

// Text resolves an interned string, "" for unknown ids.
func (m *Model) Text(id source.StringID) string {
	s, _ := m.Strings.Lookup(id)
	return s
}

// Walk visits every node of every root in declaration order.
func (m *Model) Walk(fn func(id ast.NodeID)) {
	m.Tree.Walk(m.Roots, fn)
}

// SymbolOf returns the symbol referenced or declared by node.
func (m *Model) SymbolOf(node ast.NodeID) symbols.SymbolID {
	return m.Symbols.SymbolOf(node)
}

// Symbol returns the symbol data or nil.
func (m *Model) Symbol(id symbols.SymbolID) *symbols.Symbol {
	return m.Symbols.Get(id)
}

// SymbolName returns the name of a symbol.
func (m *Model) SymbolName(id symbols.SymbolID) string {
	return m.Symbols.Name(id)
}

// NodeName returns the declared or referenced name of node, "" when the
// node carries no name.
func (m *Model) NodeName(node ast.NodeID) string {
	t := m.Tree
	switch t.Kind(node) {
	case ast.KindType:
		if d, ok := t.Decls.Type(node); ok {
			return m.Text(d.Name)
		}
	case ast.KindField:
		if d, ok := t.Decls.Field(node); ok {
			return m.Text(d.Name)
		}
	case ast.KindMethod:
		if d, ok := t.Decls.Method(node); ok {
			return m.Text(d.Name)
		}
	case ast.KindParam:
		if d, ok := t.Decls.Param(node); ok {
			return m.Text(d.Name)
		}
	case ast.KindLocal:
		if d, ok := t.Decls.Local(node); ok {
			return m.Text(d.Name)
		}
	case ast.KindName:
		if d, ok := t.Exprs.Name(node); ok {
			return m.Text(d.Name)
		}
	case ast.KindCall:
		if d, ok := t.Exprs.Call(node); ok {
			return m.Text(d.Name)
		}
	}
	return ""
}

// TypeOf returns the static type attached to node. Declarations report
// their declared type.
func (m *Model) TypeOf(node ast.NodeID) types.TypeID {
	t := m.Tree
	switch t.Kind(node) {
	case ast.KindField:
		if d, ok := t.Decls.Field(node); ok {
			return d.Type
		}
	case ast.KindParam:
		if d, ok := t.Decls.Param(node); ok {
			return d.Type
		}
	case ast.KindLocal:
		if d, ok := t.Decls.Local(node); ok {
			return d.Type
		}
	}
	if n := t.Node(node); n != nil {
		return n.Type
	}
	return types.NoTypeID
}

// Path returns the path of the file node lives in.
func (m *Model) Path(node ast.NodeID) string {
	return m.Files.Path(m.Tree.Span(node).File)
}
