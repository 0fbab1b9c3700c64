package ast

import (
	"errors"
	"slices"
	"testing"

	"gradelint/internal/source"
)

func sp(line, col uint32) source.Span { return source.At(1, line, col) }

// buildSample builds
//
//	class C { int x; C() { x = 1; if (x > 0) { x++; } } }
func buildSample(t *testing.T) (b *Builder, file, field, ctor, assign, inc NodeID) {
	t.Helper()
	b = NewBuilder(Hints{})
	field = b.Decls.NewField(sp(1, 11), FieldData{})
	lhs := b.Exprs.NewName(sp(1, 24), 0, NoNodeID)
	one := b.Exprs.NewLiteral(sp(1, 28), LitInt, 0)
	assign = b.Exprs.NewAssign(sp(1, 24), AssignPlain, lhs, one)
	st1 := b.Stmts.NewExprStmt(sp(1, 24), assign)
	x := b.Exprs.NewName(sp(1, 35), 0, NoNodeID)
	zero := b.Exprs.NewLiteral(sp(1, 39), LitInt, 0)
	cond := b.Exprs.NewBinary(sp(1, 35), BinGt, x, zero)
	operand := b.Exprs.NewName(sp(1, 44), 0, NoNodeID)
	inc = b.Exprs.NewUnary(sp(1, 44), UnaryPostInc, operand)
	then := b.Stmts.NewBlock(sp(1, 42), b.Stmts.NewExprStmt(sp(1, 44), inc))
	ifStmt := b.Stmts.NewIf(sp(1, 31), cond, then, NoNodeID)
	body := b.Stmts.NewBlock(sp(1, 22), st1, ifStmt)
	ctor = b.Decls.NewConstructor(sp(1, 18), ConstructorData{Body: body})
	typ := b.Decls.NewType(sp(1, 1), TypeData{Members: []NodeID{field, ctor}})
	file = b.Decls.NewFile(sp(1, 1), FileData{File: 1, Types: []NodeID{typ}})
	if err := b.Link([]NodeID{file}); err != nil {
		t.Fatalf("link: %v", err)
	}
	return b, file, field, ctor, assign, inc
}

func TestLinkSetsParents(t *testing.T) {
	b, file, field, ctor, assign, inc := buildSample(t)
	if b.Parent(file).IsValid() {
		t.Fatalf("root must have no parent")
	}
	typ := b.Parent(field)
	if b.Kind(typ) != KindType || b.Parent(ctor) != typ {
		t.Fatalf("members must hang off the type, got %s", b.Kind(typ))
	}
	if got := b.Enclosing(inc, KindConstructor, KindMethod); got != ctor {
		t.Fatalf("enclosing body = %d, want %d", got, ctor)
	}
	if got := b.Enclosing(assign, KindLoop); got.IsValid() {
		t.Fatalf("unexpected loop ancestor %d", got)
	}
	if !b.IsAncestor(ctor, inc) || b.IsAncestor(inc, ctor) {
		t.Fatalf("IsAncestor mismatch")
	}
	anc := b.Ancestors(assign)
	if len(anc) != b.Depth(assign) || anc[len(anc)-1] != file {
		t.Fatalf("ancestors %v do not end at root", anc)
	}
}

func TestWalkIsSourceOrder(t *testing.T) {
	b, file, _, _, _, _ := buildSample(t)
	var kinds []Kind
	b.Walk([]NodeID{file}, func(id NodeID) { kinds = append(kinds, b.Kind(id)) })
	want := []Kind{
		KindFile, KindType, KindField, KindConstructor, KindBlock,
		KindExprStmt, KindAssign, KindName, KindLiteral,
		KindIf, KindBinary, KindName, KindLiteral, KindBlock, KindExprStmt, KindUnary, KindName,
	}
	if !slices.Equal(kinds, want) {
		t.Fatalf("walk order:\n got %v\nwant %v", kinds, want)
	}
	var prev source.Span
	b.Walk([]NodeID{file}, func(id NodeID) {
		s := b.Span(id)
		if s.Start.Less(prev.Start) {
			t.Fatalf("node %d at %s precedes %s", id, s, prev)
		}
		prev = s
	})
}

func TestInspectPrunes(t *testing.T) {
	b, file, _, _, _, _ := buildSample(t)
	count := 0
	b.Inspect(file, func(id NodeID) bool {
		count++
		return b.Kind(id) != KindConstructor
	})
	if count != 4 {
		t.Fatalf("visited %d nodes, want 4 (file, type, field, ctor)", count)
	}
}

func TestLinkRejectsSharedNode(t *testing.T) {
	b := NewBuilder(Hints{})
	lit := b.Exprs.NewLiteral(sp(1, 1), LitInt, 0)
	bin := b.Exprs.NewBinary(sp(1, 1), BinAdd, lit, lit)
	err := b.Link([]NodeID{bin})
	if !errors.Is(err, ErrSharedNode) {
		t.Fatalf("expected ErrSharedNode, got %v", err)
	}
}

func TestLinkRejectsDanglingAndOrphans(t *testing.T) {
	b := NewBuilder(Hints{})
	ret := b.Stmts.NewReturn(sp(1, 1), NodeID(42))
	if err := b.Link([]NodeID{ret}); !errors.Is(err, ErrDanglingChild) {
		t.Fatalf("expected ErrDanglingChild, got %v", err)
	}

	b = NewBuilder(Hints{})
	root := b.Stmts.NewBlock(sp(1, 1))
	b.Exprs.NewThis(sp(2, 1))
	if err := b.Link([]NodeID{root}); !errors.Is(err, ErrOrphanNode) {
		t.Fatalf("expected ErrOrphanNode, got %v", err)
	}
}

func TestChildrenLoopOrder(t *testing.T) {
	b := NewBuilder(Hints{})
	body := b.Stmts.NewBlock(sp(2, 1))
	cond := b.Exprs.NewLiteral(sp(3, 1), LitBool, 0)
	do := b.Stmts.NewLoop(sp(1, 1), LoopData{Kind: LoopDoWhile, Cond: cond, Body: body})
	if got := b.Children(do); !slices.Equal(got, []NodeID{body, cond}) {
		t.Fatalf("do-while children = %v", got)
	}
	initDecl := b.Decls.NewLocal(sp(4, 6), LocalData{})
	upd := b.Exprs.NewThis(sp(4, 20))
	forBody := b.Stmts.NewBlock(sp(4, 30))
	loop := b.Stmts.NewLoop(sp(4, 1), LoopData{Kind: LoopFor, Init: []NodeID{initDecl}, Update: []NodeID{upd}, Body: forBody})
	if got := b.Children(loop); !slices.Equal(got, []NodeID{initDecl, upd, forBody}) {
		t.Fatalf("for children = %v", got)
	}
}

func TestPayloadKindMismatch(t *testing.T) {
	b := NewBuilder(Hints{})
	lit := b.Exprs.NewLiteral(sp(1, 1), LitString, 0)
	if _, ok := b.Exprs.Name(lit); ok {
		t.Fatalf("literal must not decode as name")
	}
	if _, ok := b.Exprs.Literal(NoNodeID); ok {
		t.Fatalf("NoNodeID must not decode")
	}
	if d, ok := b.Exprs.Literal(lit); !ok || d.Kind != LitString {
		t.Fatalf("literal payload lost")
	}
}

func TestKindNamesRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
		classes := 0
		for _, is := range []bool{k.IsDecl(), k.IsStmt(), k.IsExpr()} {
			if is {
				classes++
			}
		}
		if classes != 1 {
			t.Fatalf("%s belongs to %d classes", k, classes)
		}
	}
}

func TestModifiersAndOps(t *testing.T) {
	m, ok := ParseModifiers("private static final")
	if !ok || m.String() != "private static final" {
		t.Fatalf("modifiers round trip: %q %v", m, ok)
	}
	if _, ok := ParseModifiers("volatile"); ok {
		t.Fatalf("unknown modifier accepted")
	}
	op, ok := ParseAssignOp(">>>=")
	if !ok || op != AssignUShr || !op.IsCompound() {
		t.Fatalf("ParseAssignOp(>>>=) = %v %v", op, ok)
	}
	if bin, ok := op.Binary(); !ok || bin != BinUShr {
		t.Fatalf("AssignUShr.Binary() = %v %v", bin, ok)
	}
	if _, ok := AssignPlain.Binary(); ok {
		t.Fatalf("plain assignment has no binary operator")
	}
}
