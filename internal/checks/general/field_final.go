package general

import (
	"gradelint/internal/ast"
	"gradelint/internal/check"
	"gradelint/internal/problem"
	"gradelint/internal/uses"
)

// FieldShouldBeFinal reports fields that are never reassigned after
// construction.
var FieldShouldBeFinal = check.Def{
	Name:        "FieldShouldBeFinal",
	Group:       "general",
	Description: "field is assigned only during construction and could be final",
	Kinds:       []problem.Kind{problem.FieldShouldBeFinal},
	MaxProblems: 4,
	Run:         runFieldShouldBeFinal,
}

func init() { check.MustRegister(FieldShouldBeFinal) }

var (
	writeOutsideCtor = uses.And(uses.IsWrite, uses.OutsideConstructor)
	writeInsideCtor  = uses.And(uses.IsWrite, uses.InsideConstructor)
)

func runFieldShouldBeFinal(p *check.Pass) error {
	m, ix := p.Model(), p.Index()
	p.Inspect(func(id ast.NodeID) {
		sym := m.Symbols.Declared(id)
		s := m.Symbol(sym)
		if s == nil || s.IsImplicit() || s.IsFinal() || m.Tree.Node(id).Implicit() || !m.Tree.Span(id).IsValid() {
			return
		}
		if ix.HasAnyUses(sym, writeOutsideCtor) {
			return
		}
		ctorWrites := ix.CountUses(sym, writeInsideCtor)
		explicit := ix.ExplicitInit(sym).IsValid()

		// static final нужно значение при объявлении и ни одной записи
		if s.IsStatic() && (ctorWrites > 0 || !explicit) {
			return
		}
		if ctorWrites > 0 && explicit {
			return
		}
		// несколько записей или запись под условием: final не скомпилируется
		if ctorWrites > 0 && !ix.IsEffectivelyFinal(sym) {
			return
		}
		p.Report(problem.FieldShouldBeFinal, id, "field-should-be-final", problem.Args{"name": p.Name(id)})
	}, ast.KindField)
	return nil
}
