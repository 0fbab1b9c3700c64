package general

import (
	"gradelint/internal/ast"
	"gradelint/internal/check"
	"gradelint/internal/fold"
	"gradelint/internal/problem"
)

// LocalShouldBeConstant reports effectively final locals initialized with
// a compile-time constant; they belong in a static final field.
var LocalShouldBeConstant = check.Def{
	Name:        "LocalShouldBeConstant",
	Group:       "general",
	Description: "local variable holds a constant value",
	Kinds:       []problem.Kind{problem.LocalVariableShouldBeConstant},
	MaxProblems: 4,
	Run:         runLocalShouldBeConstant,
}

func init() { check.MustRegister(LocalShouldBeConstant) }

func runLocalShouldBeConstant(p *check.Pass) error {
	m, ix, ev := p.Model(), p.Index(), p.Eval()
	p.Inspect(func(id ast.NodeID) {
		sym := m.Symbols.Declared(id)
		init := ix.ExplicitInit(sym)
		if !init.IsValid() || !ix.IsEffectivelyFinal(sym) {
			return
		}
		v, ok := ev.Fold(init)
		if !ok || v.Kind() == fold.KindNull {
			return
		}
		p.Report(problem.LocalVariableShouldBeConstant, id, "local-variable-should-be-constant", problem.Args{
			"name":  p.Name(id),
			"value": v.Literal(),
		})
	}, ast.KindLocal)
	return nil
}
