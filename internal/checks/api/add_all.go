// Package api holds checks about misuse of the standard library.
package api

import (
	"fmt"
	"strings"

	"gradelint/internal/ast"
	"gradelint/internal/check"
	"gradelint/internal/model"
	"gradelint/internal/problem"
	"gradelint/internal/symbols"
)

// CollectionAddAll reports runs of add calls with constant arguments on
// one collection that a single addAll would replace.
var CollectionAddAll = check.Def{
	Name:        "CollectionAddAll",
	Group:       "api",
	Description: "consecutive add calls could be one addAll",
	Kinds:       []problem.Kind{problem.CommonReimplementationAddAll, problem.CommonReimplementationAddEnumValues},
	MaxProblems: check.Unlimited,
	Run:         runCollectionAddAll,
}

func init() { check.MustRegister(CollectionAddAll) }

// DefaultMinCalls is the shortest run of add calls that is reported.
const DefaultMinCalls = 3

// collections maps the supported receiver types to whether their
// iteration order ignores insertion order.
var collections = map[string]bool{
	"java.util.Collection":    false,
	"java.util.List":          false,
	"java.util.ArrayList":     false,
	"java.util.LinkedList":    false,
	"java.util.Set":           true,
	"java.util.HashSet":       true,
	"java.util.LinkedHashSet": false,
	"java.util.TreeSet":       true,
}

// addCall is one statement recv.add(<constant>).
type addCall struct {
	stmt      ast.NodeID
	recv      symbols.SymbolID
	name      string
	unordered bool
	text      string
	// enum is the declaring enum when the argument is an enum constant.
	enum     ast.NodeID
	constant symbols.SymbolID
}

func runCollectionAddAll(p *check.Pass) error {
	minCalls := p.IntOption("min_calls", DefaultMinCalls)
	if minCalls < 2 {
		return fmt.Errorf("min_calls must be at least 2, got %d", minCalls)
	}
	tree := p.Model().Tree
	p.Inspect(func(id ast.NodeID) {
		switch tree.Kind(id) {
		case ast.KindBlock:
			if b, ok := tree.Stmts.Block(id); ok {
				scan(p, b.Stmts, minCalls)
			}
		case ast.KindCase:
			if c, ok := tree.Stmts.Case(id); ok {
				scan(p, c.Body, minCalls)
			}
		}
	}, ast.KindBlock, ast.KindCase)
	return nil
}

// scan reports every maximal run of add calls on the same receiver in a
// statement list.
func scan(p *check.Pass, stmts []ast.NodeID, minCalls int) {
	var run []addCall
	flush := func() {
		if len(run) >= minCalls {
			report(p, run)
		}
		run = run[:0]
	}
	for _, stmt := range stmts {
		c, ok := asAddCall(p, stmt)
		if !ok {
			flush()
			continue
		}
		if len(run) > 0 && run[0].recv != c.recv {
			flush()
		}
		run = append(run, c)
	}
	flush()
}

func report(p *check.Pass, run []addCall) {
	if enum, ok := allEnumValues(p.Model(), run); ok {
		p.Report(problem.CommonReimplementationAddEnumValues, run[0].stmt, "common-reimplementation", problem.Args{
			"suggestion": fmt.Sprintf("%s.addAll(Arrays.asList(%s.values()))", run[0].name, enum),
		})
		return
	}
	args := make([]string, len(run))
	for i, c := range run {
		args[i] = c.text
	}
	p.Report(problem.CommonReimplementationAddAll, run[0].stmt, "common-reimplementation", problem.Args{
		"suggestion": fmt.Sprintf("%s.addAll(List.of(%s))", run[0].name, strings.Join(args, ", ")),
	})
}

func asAddCall(p *check.Pass, stmt ast.NodeID) (addCall, bool) {
	m := p.Model()
	es, ok := m.Tree.Stmts.ExprStmt(stmt)
	if !ok {
		return addCall{}, false
	}
	call, ok := m.Tree.Exprs.Call(es.Expr)
	if !ok || call.Static || len(call.Args) != 1 || m.Text(call.Name) != "add" {
		return addCall{}, false
	}
	recv := m.SymbolOf(call.Target)
	sym := m.Symbol(recv)
	if sym == nil || m.Tree.Kind(call.Target) != ast.KindName {
		return addCall{}, false
	}
	unordered, ok := collections[m.Types.QualifiedName(sym.Type)]
	if !ok {
		return addCall{}, false
	}
	c := addCall{stmt: stmt, recv: recv, name: m.SymbolName(recv), unordered: unordered}
	if constant, enum, ok := enumConstant(m, call.Args[0]); ok {
		c.enum, c.constant = enum, constant
		c.text = m.NodeName(enum) + "." + m.SymbolName(constant)
		return c, true
	}
	// List.of не принимает null
	v, ok := p.Eval().Fold(call.Args[0])
	if !ok || v.IsNull() {
		return addCall{}, false
	}
	c.text = v.Literal()
	return c, true
}

// enumConstant resolves a read of an enum constant: a static final field
// of an enum declaration typed as the enum itself, without an explicit
// initializer.
func enumConstant(m *model.Model, node ast.NodeID) (symbols.SymbolID, ast.NodeID, bool) {
	if m.Tree.Kind(node) != ast.KindName {
		return symbols.NoSymbolID, ast.NoNodeID, false
	}
	sym := m.SymbolOf(node)
	if !isEnumConstant(m, sym) {
		return symbols.NoSymbolID, ast.NoNodeID, false
	}
	return sym, m.Symbol(sym).Owner, true
}

func isEnumConstant(m *model.Model, sym symbols.SymbolID) bool {
	s := m.Symbol(sym)
	if s == nil || s.Kind != symbols.SymbolField || !s.IsStatic() || !s.IsFinal() {
		return false
	}
	if field, ok := m.Tree.Decls.Field(s.Decl); !ok || (field.Init.IsValid() && !m.Tree.Node(field.Init).Implicit()) {
		return false
	}
	decl, ok := m.Tree.Decls.Type(s.Owner)
	return ok && decl.Kind == ast.TypeEnum && decl.Self == s.Type
}

// enumConstants lists the constants of an enum in declaration order.
func enumConstants(m *model.Model, enum ast.NodeID) []symbols.SymbolID {
	decl, ok := m.Tree.Decls.Type(enum)
	if !ok {
		return nil
	}
	var out []symbols.SymbolID
	for _, member := range decl.Members {
		if m.Tree.Kind(member) != ast.KindField {
			continue
		}
		if sym := m.SymbolOf(member); isEnumConstant(m, sym) {
			out = append(out, sym)
		}
	}
	return out
}

// allEnumValues reports whether the run adds exactly what
// Arrays.asList(E.values()) holds. Ordered receivers need the declaration
// order; for sets every constant must appear.
func allEnumValues(m *model.Model, run []addCall) (string, bool) {
	enum := run[0].enum
	if !enum.IsValid() {
		return "", false
	}
	all := enumConstants(m, enum)
	if run[0].unordered {
		seen := make(map[symbols.SymbolID]bool, len(all))
		for _, c := range run {
			if c.enum != enum {
				return "", false
			}
			seen[c.constant] = true
		}
		return m.NodeName(enum), len(seen) == len(all)
	}
	if len(run) != len(all) {
		return "", false
	}
	for i, c := range run {
		if c.constant != all[i] {
			return "", false
		}
	}
	return m.NodeName(enum), true
}
