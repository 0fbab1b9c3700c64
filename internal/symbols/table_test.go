package symbols

import (
	"testing"

	"gradelint/internal/ast"
	"gradelint/internal/source"
)

func TestTableDeclareAndBind(t *testing.T) {
	tree := ast.NewBuilder(ast.Hints{})
	table := NewTable(Hints{}, nil)
	span := source.At(1, 2, 5)

	name := table.Strings.Intern("count")
	decl := tree.Decls.NewLocal(span, ast.LocalData{Name: name})
	ref := tree.Exprs.NewName(source.At(1, 3, 5), name, ast.NoNodeID)
	block := tree.Stmts.NewBlock(span, decl, tree.Stmts.NewExprStmt(source.At(1, 3, 5), ref))
	if err := tree.Link([]ast.NodeID{block}); err != nil {
		t.Fatalf("link: %v", err)
	}

	sym := table.Declare(Symbol{Name: name, Kind: SymbolLocal, Owner: block, Decl: decl, Span: span})
	if !sym.IsValid() {
		t.Fatalf("expected valid symbol")
	}
	if !table.Bind(ref, sym) {
		t.Fatalf("bind refused")
	}
	if got := table.SymbolOf(ref); got != sym {
		t.Fatalf("SymbolOf(ref) = %d, want %d", got, sym)
	}
	if got := table.SymbolOf(decl); got != sym {
		t.Fatalf("SymbolOf(decl) = %d, want %d", got, sym)
	}
	if table.Name(sym) != "count" {
		t.Fatalf("unexpected name %q", table.Name(sym))
	}
	if err := table.Validate(tree); err != nil {
		t.Fatalf("validate: %v", err)
	}

	other := table.Declare(Symbol{Name: name, Kind: SymbolLocal, Flags: SymbolFlagImplicit})
	if table.Bind(ref, other) {
		t.Fatalf("rebinding to another symbol must fail")
	}
	if table.Bind(ref, SymbolID(99)) {
		t.Fatalf("binding to unknown symbol must fail")
	}
}

func TestValidateReportsMismatches(t *testing.T) {
	tree := ast.NewBuilder(ast.Hints{})
	table := NewTable(Hints{}, nil)
	lit := tree.Exprs.NewLiteral(source.At(1, 1, 1), ast.LitInt, 0)
	if err := tree.Link([]ast.NodeID{lit}); err != nil {
		t.Fatalf("link: %v", err)
	}
	sym := table.Declare(Symbol{Kind: SymbolField, Decl: lit})
	table.Bind(lit, sym)
	if err := table.Validate(tree); err == nil {
		t.Fatalf("expected validation errors")
	}
}

func TestUnknownSymbolLookups(t *testing.T) {
	table := NewTable(Hints{}, nil)
	if table.Get(NoSymbolID) != nil || table.Name(SymbolID(3)) != "" {
		t.Fatalf("unknown symbols must resolve to nothing")
	}
	if table.SymbolOf(ast.NodeID(7)).IsValid() {
		t.Fatalf("unbound node must have no symbol")
	}
}

func TestModifierDerivedAttributes(t *testing.T) {
	mods := ast.ModPrivate | ast.ModStatic | ast.ModFinal
	if VisibilityOf(mods) != VisPrivate {
		t.Fatalf("expected private visibility")
	}
	flags := FlagsOf(mods)
	sym := Symbol{Flags: flags}
	if !sym.IsFinal() || !sym.IsStatic() || sym.IsImplicit() {
		t.Fatalf("unexpected flags %v", flags.Strings())
	}
	if k, ok := ParseSymbolKind("param"); !ok || k.DeclKind() != ast.KindParam {
		t.Fatalf("ParseSymbolKind(param) = %v %v", k, ok)
	}
}
