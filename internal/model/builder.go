package model

import (
	"errors"
	"fmt"

	"gradelint/internal/ast"
	"gradelint/internal/source"
	"gradelint/internal/symbols"
	"gradelint/internal/types"
)

// ErrFinished is returned when a builder is used after Finish.
var ErrFinished = errors.New("model builder already finished")

// Builder collects the pieces of a Model. Declaring a field, parameter or
// local allocates the symbol together with its declaration node.
type Builder struct {
	Files   *source.FileSet
	Strings *source.Interner
	Types   *types.Interner
	Tree    *ast.Builder
	Symbols *symbols.Table

	roots    []ast.NodeID
	finished bool
}

// NewBuilder creates an empty builder. A nil files set is replaced by a
// fresh one.
func NewBuilder(files *source.FileSet) *Builder {
	if files == nil {
		files = source.NewFileSet()
	}
	strings := source.NewInterner()
	return &Builder{
		Files:   files,
		Strings: strings,
		Types:   types.NewInterner(),
		Tree:    ast.NewBuilder(ast.Hints{}),
		Symbols: symbols.NewTable(symbols.Hints{}, strings),
	}
}

// Intern interns a name.
func (b *Builder) Intern(s string) source.StringID {
	return b.Strings.Intern(s)
}

// AddRoot registers a top-level node, normally a File declaration.
func (b *Builder) AddRoot(id ast.NodeID) {
	b.roots = append(b.roots, id)
}

// Roots lists the registered roots.
func (b *Builder) Roots() []ast.NodeID {
	return b.roots
}

// DeclareField allocates a field declaration and its symbol.
func (b *Builder) DeclareField(span source.Span, name string, t types.TypeID, mods ast.Modifiers, init ast.NodeID) (ast.NodeID, symbols.SymbolID) {
	nameID := b.Intern(name)
	decl := b.Tree.Decls.NewField(span, ast.FieldData{Name: nameID, Type: t, Mods: mods, Init: init})
	sym := b.Symbols.Declare(symbols.Symbol{
		Name:       nameID,
		Kind:       symbols.SymbolField,
		Type:       t,
		Decl:       decl,
		Flags:      symbols.FlagsOf(mods),
		Visibility: symbols.VisibilityOf(mods),
		Span:       span,
	})
	return decl, sym
}

// DeclareParam allocates a parameter declaration and its symbol.
func (b *Builder) DeclareParam(span source.Span, name string, t types.TypeID, mods ast.Modifiers) (ast.NodeID, symbols.SymbolID) {
	nameID := b.Intern(name)
	decl := b.Tree.Decls.NewParam(span, ast.ParamData{Name: nameID, Type: t, Mods: mods})
	sym := b.Symbols.Declare(symbols.Symbol{
		Name:  nameID,
		Kind:  symbols.SymbolParam,
		Type:  t,
		Decl:  decl,
		Flags: symbols.FlagsOf(mods),
		Span:  span,
	})
	return decl, sym
}

// DeclareLocal allocates a local variable declaration and its symbol.
func (b *Builder) DeclareLocal(span source.Span, name string, t types.TypeID, mods ast.Modifiers, init ast.NodeID) (ast.NodeID, symbols.SymbolID) {
	nameID := b.Intern(name)
	decl := b.Tree.Decls.NewLocal(span, ast.LocalData{Name: nameID, Type: t, Mods: mods, Init: init})
	sym := b.Symbols.Declare(symbols.Symbol{
		Name:  nameID,
		Kind:  symbols.SymbolLocal,
		Type:  t,
		Decl:  decl,
		Flags: symbols.FlagsOf(mods),
		Span:  span,
	})
	return decl, sym
}

// Ref allocates a Name node bound to sym.
func (b *Builder) Ref(span source.Span, sym symbols.SymbolID) ast.NodeID {
	return b.Select(span, ast.NoNodeID, sym)
}

// Select allocates a qualified reference target.name bound to sym, for
// example this.count.
func (b *Builder) Select(span source.Span, target ast.NodeID, sym symbols.SymbolID) ast.NodeID {
	s := b.Symbols.Get(sym)
	if s == nil {
		return b.Tree.Exprs.NewName(span, source.NoStringID, target)
	}
	id := b.Tree.Exprs.NewName(span, s.Name, target)
	b.Tree.SetType(id, s.Type)
	b.Symbols.Bind(id, sym)
	return id
}

// Finish links the tree, derives symbol owners and validates the result.
// The builder must not be used afterwards.
func (b *Builder) Finish() (*Model, error) {
	if b.finished {
		return nil, ErrFinished
	}
	b.finished = true

	if err := b.Tree.Link(b.roots); err != nil {
		return nil, fmt.Errorf("model: link: %w", err)
	}
	b.assignOwners()
	if err := b.Symbols.Validate(b.Tree); err != nil {
		return nil, fmt.Errorf("model: symbols: %w", err)
	}
	return &Model{
		Files:   b.Files,
		Strings: b.Strings,
		Types:   b.Types,
		Tree:    b.Tree,
		Symbols: b.Symbols,
		Roots:   b.roots,
	}, nil
}

func (b *Builder) assignOwners() {
	for _, id := range b.Symbols.Symbols.IDs() {
		sym := b.Symbols.Get(id)
		if !sym.Decl.IsValid() {
			continue
		}
		if b.Tree.Node(sym.Decl).Implicit() {
			sym.Flags |= symbols.SymbolFlagImplicit
		}
		if sym.Owner.IsValid() {
			continue
		}
		switch sym.Kind {
		case symbols.SymbolField:
			sym.Owner = b.Tree.Enclosing(sym.Decl, ast.KindType)
		case symbols.SymbolParam, symbols.SymbolLocal:
			sym.Owner = b.Tree.Parent(sym.Decl)
		}
	}
}
