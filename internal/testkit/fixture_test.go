package testkit

import (
	"testing"

	"gradelint/internal/ast"
	"gradelint/internal/symbols"
)

func TestFixturePositionsFollowCallOrder(t *testing.T) {
	f := NewFixture("Main.java")
	field, fsym := f.Field(ast.ModPrivate, "int", "count", ast.NoNodeID)
	set := f.Set(f.ThisRef(fsym), f.Int(1))
	ctor := f.Ctor(ast.ModPublic, nil, set)
	cls := f.Class(ast.ModPublic, "Main", field, ctor)
	m := f.Finish(t, cls)

	if got := m.Tree.Span(field).Start.Line; got != 1 {
		t.Fatalf("field line = %d, want 1", got)
	}
	if got := m.Tree.Span(set).Start.Line; got != 2 {
		t.Fatalf("assignment line = %d, want 2", got)
	}
	if !m.Tree.Span(cls).Contains(m.Tree.Span(set)) {
		t.Fatalf("class span %v must cover %v", m.Tree.Span(cls), m.Tree.Span(set))
	}
	if m.Path(set) != "Main.java" {
		t.Fatalf("unexpected path %q", m.Path(set))
	}
	sym := m.Symbol(fsym)
	if sym.Owner != cls || sym.Visibility != symbols.VisPrivate {
		t.Fatalf("field owner %d visibility %s", sym.Owner, sym.Visibility)
	}
}

func TestInvariantsRejectOutOfOrderSiblings(t *testing.T) {
	f := NewFixture("Main.java")
	second := f.Expr(f.This())
	first := f.Expr(f.This())
	m, err := f.Build(f.Class(0, "Main", f.Method(0, "void", "run", nil, first, second)))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := CheckTreeInvariants(m); err == nil {
		t.Fatalf("expected sibling order violation")
	}
}

func TestResolveTypeNames(t *testing.T) {
	f := NewFixture("Main.java")
	if got := f.B.Types.Format(f.T("int[][]")); got != "int[][]" {
		t.Fatalf("format = %q", got)
	}
	if got := f.B.Types.QualifiedName(f.T("List<String>")); got != "java.util.List" {
		t.Fatalf("qualified = %q", got)
	}
	if f.T("String") != f.B.Types.Builtins().String {
		t.Fatalf("String must resolve to the builtin")
	}
}
