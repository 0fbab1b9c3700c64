package general

import (
	"gradelint/internal/ast"
	"gradelint/internal/check"
	"gradelint/internal/problem"
	"gradelint/internal/uses"
)

// ReassignedParameter reports the first write to a parameter.
var ReassignedParameter = check.Def{
	Name:        "ReassignedParameter",
	Group:       "general",
	Description: "parameter is assigned a new value",
	Kinds:       []problem.Kind{problem.ReassignedParameter},
	MaxProblems: check.Unlimited,
	Run:         runReassignedParameter,
}

func init() { check.MustRegister(ReassignedParameter) }

func runReassignedParameter(p *check.Pass) error {
	m, ix := p.Model(), p.Index()
	p.Inspect(func(id ast.NodeID) {
		sym := m.Symbols.Declared(id)
		writes := ix.FindUses(sym, uses.IsWrite)
		if len(writes) == 0 {
			return
		}
		p.Report(problem.ReassignedParameter, writes[0], "reassigned-parameter", problem.Args{"name": p.Name(id)})
	}, ast.KindParam)
	return nil
}
