package general

import (
	"gradelint/internal/ast"
	"gradelint/internal/check"
	"gradelint/internal/model"
	"gradelint/internal/problem"
)

// RedundantSelfAssignment reports x = x and this.x = this.x.
var RedundantSelfAssignment = check.Def{
	Name:        "RedundantSelfAssignment",
	Group:       "general",
	Description: "variable is assigned to itself",
	Kinds:       []problem.Kind{problem.RedundantSelfAssignment},
	MaxProblems: check.Unlimited,
	Run:         runRedundantSelfAssignment,
}

func init() { check.MustRegister(RedundantSelfAssignment) }

func runRedundantSelfAssignment(p *check.Pass) error {
	m := p.Model()
	p.Inspect(func(id ast.NodeID) {
		a, ok := m.Tree.Exprs.Assign(id)
		if !ok || a.Op != ast.AssignPlain || !sameVariable(m, a.Target, a.Value) {
			return
		}
		p.Report(problem.RedundantSelfAssignment, id, "redundant-self-assignment", problem.Args{"name": p.Name(a.Target)})
	}, ast.KindAssign)
	return nil
}

// sameVariable reports whether a and b access the same variable through
// the same qualifier chain. An explicit this qualifier equals none.
func sameVariable(m *model.Model, a, b ast.NodeID) bool {
	a, b = unqualified(m, a), unqualified(m, b)
	if !a.IsValid() || !b.IsValid() {
		return !a.IsValid() && !b.IsValid()
	}
	na, okA := m.Tree.Exprs.Name(a)
	nb, okB := m.Tree.Exprs.Name(b)
	if !okA || !okB {
		return false
	}
	sym := m.SymbolOf(a)
	if !sym.IsValid() || sym != m.SymbolOf(b) {
		return false
	}
	return sameVariable(m, na.Target, nb.Target)
}

func unqualified(m *model.Model, id ast.NodeID) ast.NodeID {
	if m.Tree.Kind(id) == ast.KindThis {
		return ast.NoNodeID
	}
	return id
}
