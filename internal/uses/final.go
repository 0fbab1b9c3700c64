package uses

import (
	"gradelint/internal/ast"
	"gradelint/internal/symbols"
)

// IsEffectivelyFinal reports whether sym is provably assigned exactly once.
//
// The approximation is textual, not a dataflow analysis, and answers false
// whenever control flow makes the single assignment ambiguous:
//   - a parameter or enhanced-for variable must never be written;
//   - a variable with an explicit initializer must never be written again;
//   - a local without initializer needs exactly one plain assignment that no
//     loop repeats and no branch guards within its declaring block;
//   - a field without initializer additionally needs that assignment inside
//     a constructor (instance fields) or initializer of its own type.
//
// Compound assignments, increments and decrements always disqualify.
func (ix *Index) IsEffectivelyFinal(sym symbols.SymbolID) bool {
	_, ok := ix.effective(sym)
	return ok
}

// EffectiveInitializer returns the expression that gives an effectively
// final symbol its value: the explicit initializer or the right-hand side of
// the single assignment. Parameters have none.
func (ix *Index) EffectiveInitializer(sym symbols.SymbolID) (ast.NodeID, bool) {
	init, ok := ix.effective(sym)
	if !ok || !init.IsValid() {
		return ast.NoNodeID, false
	}
	return init, true
}

func (ix *Index) effective(sym symbols.SymbolID) (ast.NodeID, bool) {
	s := ix.m.Symbols.Get(sym)
	if s == nil || !s.Decl.IsValid() {
		return ast.NoNodeID, false
	}
	writes := ix.FindUses(sym, IsWrite)

	if s.Kind == symbols.SymbolParam || ix.isLoopVar(s.Decl) {
		return ast.NoNodeID, len(writes) == 0
	}

	if init := ix.explicitInit(s.Decl); init.IsValid() {
		return init, len(writes) == 0
	}

	if len(writes) != 1 {
		return ast.NoNodeID, false
	}
	assign, data, ok := ix.Assignment(writes[0])
	if !ok || data.Op != ast.AssignPlain {
		return ast.NoNodeID, false
	}

	switch s.Kind {
	case symbols.SymbolLocal:
		stop := s.Owner
		if ix.m.Tree.Kind(stop) == ast.KindLoop {
			// переменная из заголовка for живёт дольше одной итерации
			stop = ix.m.Tree.Parent(stop)
		}
		if loop, branch := ix.control(assign, stop); loop || branch {
			return ast.NoNodeID, false
		}
	case symbols.SymbolField:
		ctor := ix.EnclosingConstructor(assign)
		if !ctor.IsValid() || ix.m.Tree.Enclosing(ctor, ast.KindType) != s.Owner {
			return ast.NoNodeID, false
		}
		if ix.m.Tree.Kind(ctor) == ast.KindConstructor && s.IsStatic() {
			return ast.NoNodeID, false
		}
		if init, ok := ix.m.Tree.Decls.Initializer(ctor); ok && init.Static != s.IsStatic() {
			return ast.NoNodeID, false
		}
		if loop, branch := ix.control(assign, ctor); loop || branch {
			return ast.NoNodeID, false
		}
	default:
		return ast.NoNodeID, false
	}
	return data.Value, true
}

// isLoopVar reports whether decl is the variable of an enhanced for loop,
// which is assigned on every iteration.
func (ix *Index) isLoopVar(decl ast.NodeID) bool {
	d, ok := ix.m.Tree.Stmts.Loop(ix.m.Tree.Parent(decl))
	return ok && d.Kind == ast.LoopForEach && d.Var == decl
}

// explicitInit returns the initializer written by the author, skipping the
// implicit default values some front-ends synthesize.
func (ix *Index) explicitInit(decl ast.NodeID) ast.NodeID {
	tree := ix.m.Tree
	var init ast.NodeID
	if f, ok := tree.Decls.Field(decl); ok {
		init = f.Init
	} else if l, ok := tree.Decls.Local(decl); ok {
		init = l.Init
	}
	if !init.IsValid() || tree.Node(init).Implicit() {
		return ast.NoNodeID
	}
	return init
}

// ExplicitInit is the author-written initializer of a field or local.
func (ix *Index) ExplicitInit(sym symbols.SymbolID) ast.NodeID {
	s := ix.m.Symbols.Get(sym)
	if s == nil {
		return ast.NoNodeID
	}
	return ix.explicitInit(s.Decl)
}

// Values lists every expression stored into sym: the explicit initializer
// followed by the right-hand sides of plain assignments, in declaration
// order.
func (ix *Index) Values(sym symbols.SymbolID) []ast.NodeID {
	var out []ast.NodeID
	if init := ix.ExplicitInit(sym); init.IsValid() {
		out = append(out, init)
	}
	for _, w := range ix.FindUses(sym, IsWrite) {
		if _, data, ok := ix.Assignment(w); ok && data.Op == ast.AssignPlain {
			out = append(out, data.Value)
		}
	}
	return out
}

// MutablyAssigned reports whether any value stored into sym satisfies
// isMutable.
func (ix *Index) MutablyAssigned(sym symbols.SymbolID, isMutable func(ast.NodeID) bool) bool {
	for _, v := range ix.Values(sym) {
		if isMutable(v) {
			return true
		}
	}
	return false
}
