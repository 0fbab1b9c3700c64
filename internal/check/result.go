package check

import (
	"github.com/google/uuid"

	"gradelint/internal/observ"
	"gradelint/internal/problem"
)

// Result is the output of one engine run. Problems are in registration
// order of their checks and, within a check, in emission order.
type Result struct {
	RunID        uuid.UUID
	Problems     []problem.Problem
	EngineErrors []problem.EngineError
	Timings      observ.Report
}

// ByCheck returns the problems reported by the named check.
func (r *Result) ByCheck(name string) []problem.Problem {
	var out []problem.Problem
	for _, p := range r.Problems {
		if p.Check() == name {
			out = append(out, p)
		}
	}
	return out
}

// Report aggregates the run with compiler diagnostics and external
// sections into a sorted, deduplicated report.
func (r *Result) Report(diags []problem.CompilerDiagnostic, sections ...problem.Section) *problem.Report {
	return problem.NewReport(r.Problems, diags, r.EngineErrors, sections...)
}
