// Package exceptions holds checks about throwing and handling exceptions.
package exceptions

import (
	"strings"

	"gradelint/internal/ast"
	"gradelint/internal/check"
	"gradelint/internal/problem"
	"gradelint/internal/types"
)

// ExceptionMessage reports library exceptions thrown without a message.
var ExceptionMessage = check.Def{
	Name:        "ExceptionMessage",
	Group:       "exceptions",
	Description: "exception is thrown without a message",
	Kinds:       []problem.Kind{problem.ExceptionWithoutMessage},
	MaxProblems: check.Unlimited,
	Run:         runExceptionMessage,
}

func init() { check.MustRegister(ExceptionMessage) }

const unsupportedOperation = "java.lang.UnsupportedOperationException"

func runExceptionMessage(p *check.Pass) error {
	m := p.Model()
	tree := m.Tree
	p.Inspect(func(id ast.NodeID) {
		th, _ := tree.Stmts.Throw(id)
		if th == nil {
			return
		}
		n, ok := tree.Exprs.New(th.Value)
		if !ok {
			return
		}
		// собственные исключения обычно задают сообщение сами
		typ := m.Types.QualifiedName(n.Type)
		if !types.IsLibraryClass(typ) || hasMessage(p, n.Args) || allowed(p, id, typ) {
			return
		}
		p.Report(problem.ExceptionWithoutMessage, id, "exception-message", nil)
	}, ast.KindThrow)
	return nil
}

// hasMessage holds when the first argument is anything but a blank string
// constant: a computed message or a wrapped cause.
func hasMessage(p *check.Pass, args []ast.NodeID) bool {
	if len(args) == 0 {
		return false
	}
	s, ok := p.Eval().FoldString(args[0])
	return !ok || strings.TrimSpace(s) != ""
}

// allowed covers the idioms where a message adds nothing: the private
// constructor of a utility class and the unreachable default branch.
func allowed(p *check.Pass, throw ast.NodeID, typ string) bool {
	tree := p.Model().Tree
	body := p.Index().EnclosingBody(throw)
	if typ == unsupportedOperation && tree.Kind(body) == ast.KindConstructor && tree.Decls.Mods(body).Has(ast.ModPrivate) {
		return true
	}
	cs := tree.EnclosingUntil(throw, []ast.Kind{ast.KindMethod, ast.KindConstructor, ast.KindInitializer}, ast.KindCase)
	c, ok := tree.Stmts.Case(cs)
	return ok && c.Default
}
