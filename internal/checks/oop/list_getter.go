// Package oop holds checks about encapsulation.
package oop

import (
	"gradelint/internal/ast"
	"gradelint/internal/check"
	"gradelint/internal/problem"
	"gradelint/internal/symbols"
)

// ListGetter reports public getters that hand out a private mutable
// collection instead of a copy or an unmodifiable view.
var ListGetter = check.Def{
	Name:        "ListGetter",
	Group:       "oop",
	Description: "getter exposes a mutable collection field",
	Kinds:       []problem.Kind{problem.ListNotCopiedInGetter},
	MaxProblems: 4,
	Run:         runListGetter,
}

func init() { check.MustRegister(ListGetter) }

var mutableCollections = map[string]bool{
	"java.util.List":          true,
	"java.util.ArrayList":     true,
	"java.util.LinkedList":    true,
	"java.util.Map":           true,
	"java.util.HashMap":       true,
	"java.util.TreeMap":       true,
	"java.util.Set":           true,
	"java.util.HashSet":       true,
	"java.util.LinkedHashSet": true,
	"java.util.TreeSet":       true,
	"java.util.NavigableMap":  true,
}

func runListGetter(p *check.Pass) error {
	m := p.Model()
	tree := m.Tree
	p.Inspect(func(id ast.NodeID) {
		ret, _ := tree.Stmts.Return(id)
		if ret == nil || tree.Kind(ret.Value) != ast.KindName {
			return
		}
		// return в конструкторе или инициализаторе не геттер
		method := tree.EnclosingUntil(id, []ast.Kind{ast.KindConstructor, ast.KindInitializer, ast.KindType}, ast.KindMethod)
		if !method.IsValid() {
			return
		}
		if mods := tree.Decls.Mods(method); !mods.Has(ast.ModPublic) {
			return
		}
		sym := m.SymbolOf(ret.Value)
		field := m.Symbol(sym)
		if field == nil || field.Kind != symbols.SymbolField || field.Visibility != symbols.VisPrivate {
			return
		}
		if !isMutableCollection(p, field) || !mutablyAssigned(p, sym, field) {
			return
		}
		p.Report(problem.ListNotCopiedInGetter, id, "list-getter-exp", problem.Args{"name": m.SymbolName(sym)})
	}, ast.KindReturn)
	return nil
}

func isMutableCollection(p *check.Pass, field *symbols.Symbol) bool {
	in := p.Model().Types
	return in.IsArray(field.Type) || mutableCollections[in.QualifiedName(field.Type)]
}

// mutablyAssigned reports whether any value stored into the field may be
// modified by its holder. Arrays always can.
func mutablyAssigned(p *check.Pass, sym symbols.SymbolID, field *symbols.Symbol) bool {
	if p.Model().Types.IsArray(field.Type) {
		return true
	}
	return p.Index().MutablyAssigned(sym, p.Eval().IsStructurallyMutable)
}
