package testkit

import (
	"context"
	"testing"

	"gradelint/internal/check"
	"gradelint/internal/model"
	"gradelint/internal/problem"
)

// RunChecks runs defs over m on a fresh engine and fails the test on
// registration, run or engine errors.
func RunChecks(tb testing.TB, m *model.Model, opts check.Options, defs ...check.Def) *check.Result {
	tb.Helper()
	e := check.NewEngine(opts)
	for _, d := range defs {
		if err := e.Register(d); err != nil {
			tb.Fatalf("register %s: %v", d.Name, err)
		}
	}
	res, err := e.Run(context.Background(), m)
	if err != nil {
		tb.Fatalf("run: %v", err)
	}
	for _, ee := range res.EngineErrors {
		tb.Errorf("engine error: %v", ee)
	}
	return res
}

// Arg returns the substitution name of p, "" when it is absent.
func Arg(p problem.Problem, name string) string {
	v, _ := p.Arg(name)
	return v
}
