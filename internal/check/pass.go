package check

import (
	"context"
	"fmt"
	"math"

	"gradelint/internal/ast"
	"gradelint/internal/fold"
	"gradelint/internal/model"
	"gradelint/internal/problem"
	"gradelint/internal/source"
	"gradelint/internal/symbols"
	"gradelint/internal/types"
	"gradelint/internal/uses"
)

// Pass is what one check invocation sees: read-only access to the model
// and the shared analyses, plus its private problem collector.
type Pass struct {
	ctx      context.Context
	def      *Def
	shared   *shared
	reporter problem.Reporter
	settings Settings
	severity *problem.Severity
}

// fault is a check bug detected by the pass itself. It is raised as a
// panic and recorded as a non-panic EngineError.
type fault struct{ msg string }

func (p *Pass) fail(format string, args ...any) {
	panic(fault{msg: fmt.Sprintf(format, args...)})
}

// Context is canceled when the run is abandoned.
func (p *Pass) Context() context.Context { return p.ctx }

// Check returns the name of the running check.
func (p *Pass) Check() string { return p.def.Name }

func (p *Pass) Model() *model.Model   { return p.shared.m }
func (p *Pass) Index() *uses.Index    { return p.shared.Index() }
func (p *Pass) Eval() *fold.Evaluator { return p.shared.Eval() }

// Name returns the simple name node declares or refers to.
func (p *Pass) Name(node ast.NodeID) string {
	return p.shared.m.NodeName(node)
}

// Symbol returns the symbol node declares or refers to, or nil.
func (p *Pass) Symbol(node ast.NodeID) *symbols.Symbol {
	return p.shared.m.Symbol(p.shared.m.SymbolOf(node))
}

// Type returns the static type of node; declarations report their
// declared type.
func (p *Pass) Type(node ast.NodeID) types.TypeID {
	return p.shared.m.TypeOf(node)
}

// Report records a problem located at node.
func (p *Pass) Report(kind problem.Kind, node ast.NodeID, key problem.Key, args problem.Args) bool {
	return p.ReportAt(kind, p.shared.m.Tree.Span(node), key, args)
}

// ReportAt records a problem located at span. It returns false when the
// problem was dropped: a duplicate, past the cap, or without a position.
// Reporting a kind the check did not declare is a check fault.
func (p *Pass) ReportAt(kind problem.Kind, span source.Span, key problem.Key, args problem.Args) bool {
	if !p.def.Declares(kind) {
		p.fail("reported undeclared problem kind %s", kind.Name())
	}
	pos := problem.PositionOf(p.shared.m.Files, span)
	if !pos.IsValid() {
		return false
	}
	pr := problem.New(kind, pos, key, args).WithCheck(p.def.Name).WithSpan(span)
	if p.severity != nil {
		pr = pr.WithSeverity(*p.severity)
	}
	return p.reporter.Report(pr)
}

// Inspect calls fn for every node of the given kinds (all nodes when none
// are given) in pre-order. It stops early once the run is canceled.
func (p *Pass) Inspect(fn func(id ast.NodeID), kinds ...ast.Kind) {
	order, byKind := p.shared.table()
	nodes := order
	switch len(kinds) {
	case 0:
	case 1:
		nodes = byKind[kinds[0]]
	default:
		want := make(map[ast.Kind]bool, len(kinds))
		for _, k := range kinds {
			want[k] = true
		}
		nodes = make([]ast.NodeID, 0, len(order))
		for _, id := range order {
			if want[p.shared.m.Tree.Kind(id)] {
				nodes = append(nodes, id)
			}
		}
	}
	for _, id := range nodes {
		if p.ctx.Err() != nil {
			return
		}
		fn(id)
	}
}

// IntOption returns the integer setting name, or def when unset.
// A setting of another type is a check fault.
func (p *Pass) IntOption(name string, def int) int {
	v, ok := p.settings[name]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		if n >= math.MinInt && n <= math.MaxInt {
			return int(n)
		}
	case uint64:
		if n <= math.MaxInt {
			return int(n) //nolint:gosec // bounded above
		}
	case float64:
		if n == math.Trunc(n) && math.Abs(n) <= math.MaxInt32 {
			return int(n)
		}
	}
	p.fail("option %s: want integer, got %v", name, v)
	return def
}

// StringOption returns the string setting name, or def when unset.
func (p *Pass) StringOption(name, def string) string {
	v, ok := p.settings[name]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		p.fail("option %s: want string, got %v", name, v)
	}
	return s
}

// BoolOption returns the boolean setting name, or def when unset.
func (p *Pass) BoolOption(name string, def bool) bool {
	v, ok := p.settings[name]
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		p.fail("option %s: want bool, got %v", name, v)
	}
	return b
}
