package symbols

import (
	"gradelint/internal/ast"
	"gradelint/internal/source"
	"gradelint/internal/types"
)

// SymbolKind classifies the binding a symbol stands for.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolField
	SymbolLocal
	SymbolParam
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolField:
		return "field"
	case SymbolLocal:
		return "local"
	case SymbolParam:
		return "param"
	default:
		return "invalid"
	}
}

// ParseSymbolKind is the inverse of String.
func ParseSymbolKind(s string) (SymbolKind, bool) {
	for k := SymbolField; k <= SymbolParam; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return SymbolInvalid, false
}

// DeclKind returns the ast kind of the node declaring a symbol of this kind.
func (k SymbolKind) DeclKind() ast.Kind {
	switch k {
	case SymbolField:
		return ast.KindField
	case SymbolLocal:
		return ast.KindLocal
	case SymbolParam:
		return ast.KindParam
	default:
		return ast.KindInvalid
	}
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint8

const (
	SymbolFlagFinal SymbolFlags = 1 << iota
	SymbolFlagStatic
	SymbolFlagImplicit
)

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 3)
	if f&SymbolFlagFinal != 0 {
		labels = append(labels, "final")
	}
	if f&SymbolFlagStatic != 0 {
		labels = append(labels, "static")
	}
	if f&SymbolFlagImplicit != 0 {
		labels = append(labels, "implicit")
	}
	return labels
}

// FlagsOf derives symbol flags from declaration modifiers.
func FlagsOf(mods ast.Modifiers) SymbolFlags {
	var f SymbolFlags
	if mods.Has(ast.ModFinal) {
		f |= SymbolFlagFinal
	}
	if mods.Has(ast.ModStatic) {
		f |= SymbolFlagStatic
	}
	return f
}

// Visibility is the access level of a field.
type Visibility uint8

const (
	VisPackage Visibility = iota
	VisPrivate
	VisProtected
	VisPublic
)

func (v Visibility) String() string {
	switch v {
	case VisPrivate:
		return "private"
	case VisProtected:
		return "protected"
	case VisPublic:
		return "public"
	default:
		return "package"
	}
}

// VisibilityOf picks the access level from declaration modifiers.
func VisibilityOf(mods ast.Modifiers) Visibility {
	switch {
	case mods.Has(ast.ModPublic):
		return VisPublic
	case mods.Has(ast.ModProtected):
		return VisProtected
	case mods.Has(ast.ModPrivate):
		return VisPrivate
	default:
		return VisPackage
	}
}

// Symbol describes a field, local variable or parameter.
//
// Owner is the node that opens the declaring scope: the type declaration
// for fields, the method, constructor or catch clause for parameters, and
// the block (or loop/try header) holding the declaration for locals.
type Symbol struct {
	Name       source.StringID
	Kind       SymbolKind
	Type       types.TypeID
	Owner      ast.NodeID
	Decl       ast.NodeID
	Flags      SymbolFlags
	Visibility Visibility
	Span       source.Span
}

func (s *Symbol) IsFinal() bool    { return s.Flags&SymbolFlagFinal != 0 }
func (s *Symbol) IsStatic() bool   { return s.Flags&SymbolFlagStatic != 0 }
func (s *Symbol) IsImplicit() bool { return s.Flags&SymbolFlagImplicit != 0 }
