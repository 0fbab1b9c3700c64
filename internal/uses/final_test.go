package uses_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradelint/internal/ast"
	"gradelint/internal/fold"
	"gradelint/internal/model"
	"gradelint/internal/symbols"
	"gradelint/internal/testkit"
	"gradelint/internal/uses"
)

type finalCase struct {
	name  string
	build func(t *testing.T) (*model.Model, symbols.SymbolID)
	want  bool
}

// inMethod wraps statements into class K { void m(params) { stmts } }.
func inMethod(t *testing.T, f *testkit.Fixture, params []ast.NodeID, stmts ...ast.NodeID) *model.Model {
	t.Helper()
	return f.Finish(t, f.Class(0, "K", f.Method(0, "void", "m", params, stmts...)))
}

func TestIsEffectivelyFinal(t *testing.T) {
	cases := []finalCase{
		{"param never written", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			p, ps := f.Param("int", "p")
			return inMethod(t, f, []ast.NodeID{p}, f.Return(f.Ref(ps))), ps
		}, true},
		{"param reassigned", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			p, ps := f.Param("int", "p")
			return inMethod(t, f, []ast.NodeID{p}, f.Set(f.Ref(ps), f.Int(0))), ps
		}, false},
		{"local with initializer", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			l, ls := f.Local("int", "x", f.Int(1))
			return inMethod(t, f, nil, l, f.Return(f.Ref(ls))), ls
		}, true},
		{"local with initializer written again", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			l, ls := f.Local("int", "x", f.Int(1))
			return inMethod(t, f, nil, l, f.Set(f.Ref(ls), f.Int(2))), ls
		}, false},
		{"local assigned once", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			l, ls := f.Local("int", "x", ast.NoNodeID)
			return inMethod(t, f, nil, l, f.Set(f.Ref(ls), f.Int(2))), ls
		}, true},
		{"local assigned twice", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			l, ls := f.Local("int", "x", ast.NoNodeID)
			return inMethod(t, f, nil, l, f.Set(f.Ref(ls), f.Int(2)), f.Set(f.Ref(ls), f.Int(3))), ls
		}, false},
		{"local assigned in branch", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			l, ls := f.Local("int", "x", ast.NoNodeID)
			cond := f.Bool(true)
			return inMethod(t, f, nil, l, f.If(cond, f.Set(f.Ref(ls), f.Int(2)), ast.NoNodeID)), ls
		}, false},
		{"local assigned in loop", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			l, ls := f.Local("int", "x", ast.NoNodeID)
			cond := f.Bool(false)
			return inMethod(t, f, nil, l, f.While(cond, f.Block(f.Set(f.Ref(ls), f.Int(2))))), ls
		}, false},
		{"local declared and assigned inside loop body", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			cond := f.Bool(false)
			l, ls := f.Local("int", "x", ast.NoNodeID)
			return inMethod(t, f, nil, f.While(cond, f.Block(l, f.Set(f.Ref(ls), f.Int(2))))), ls
		}, true},
		{"compound assignment", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			l, ls := f.Local("int", "x", ast.NoNodeID)
			return inMethod(t, f, nil, l, f.Expr(f.AssignOp(ast.AssignAdd, f.Ref(ls), f.Int(1)))), ls
		}, false},
		{"increment", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			l, ls := f.Local("int", "x", f.Int(0))
			return inMethod(t, f, nil, l, f.Expr(f.Inc(f.Ref(ls)))), ls
		}, false},
		{"for header variable assigned in body", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			l, ls := f.Local("int", "i", ast.NoNodeID)
			cond := f.Bool(true)
			return inMethod(t, f, nil, f.For([]ast.NodeID{l}, cond, nil, f.Block(f.Set(f.Ref(ls), f.Int(1))))), ls
		}, false},
		{"enhanced for variable", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			p, ps := f.Param("int[]", "xs")
			v, vs := f.LoopVar("int", "x")
			iter := f.Ref(ps)
			return inMethod(t, f, []ast.NodeID{p}, f.ForEach(v, iter, f.Block(f.Return(f.Ref(vs))))), vs
		}, true},
		{"enhanced for variable reassigned", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			p, ps := f.Param("int[]", "xs")
			v, vs := f.LoopVar("int", "x")
			iter := f.Ref(ps)
			return inMethod(t, f, []ast.NodeID{p}, f.ForEach(v, iter, f.Block(f.Set(f.Ref(vs), f.Int(0))))), vs
		}, false},
		{"field assigned once in constructor", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			fd, fs := f.Field(ast.ModPrivate, "int", "x", ast.NoNodeID)
			ctor := f.Ctor(0, nil, f.Set(f.ThisRef(fs), f.Int(5)))
			return f.Finish(t, f.Class(0, "K", fd, ctor)), fs
		}, true},
		{"field with implicit default assigned in constructor", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			fd, fs := f.Field(ast.ModPrivate, "int", "x", f.Implicit(f.Int(0)))
			ctor := f.Ctor(0, nil, f.Set(f.ThisRef(fs), f.Int(5)))
			return f.Finish(t, f.Class(0, "K", fd, ctor)), fs
		}, true},
		{"field also written in method", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			fd, fs := f.Field(ast.ModPrivate, "int", "x", ast.NoNodeID)
			ctor := f.Ctor(0, nil, f.Set(f.ThisRef(fs), f.Int(5)))
			m := f.Method(0, "void", "reset", nil, f.Set(f.ThisRef(fs), f.Int(0)))
			return f.Finish(t, f.Class(0, "K", fd, ctor, m)), fs
		}, false},
		{"field written only in method", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			fd, fs := f.Field(ast.ModPrivate, "int", "x", ast.NoNodeID)
			m := f.Method(0, "void", "set", nil, f.Set(f.ThisRef(fs), f.Int(0)))
			return f.Finish(t, f.Class(0, "K", fd, m)), fs
		}, false},
		{"static field assigned in static initializer", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			fd, fs := f.Field(ast.ModStatic, "int", "x", ast.NoNodeID)
			init := f.Initializer(true, f.Set(f.Ref(fs), f.Int(5)))
			return f.Finish(t, f.Class(0, "K", fd, init)), fs
		}, true},
		{"static field assigned in constructor", func(t *testing.T) (*model.Model, symbols.SymbolID) {
			f := testkit.NewFixture("K.java")
			fd, fs := f.Field(ast.ModStatic, "int", "x", ast.NoNodeID)
			ctor := f.Ctor(0, nil, f.Set(f.Ref(fs), f.Int(5)))
			return f.Finish(t, f.Class(0, "K", fd, ctor)), fs
		}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, sym := tc.build(t)
			ix := uses.Build(m)
			assert.Equal(t, tc.want, ix.IsEffectivelyFinal(sym))
		})
	}
}

// A symbol with a single write folds to the value of that write.
func TestSingleWriteFoldsLikeItsValue(t *testing.T) {
	f := testkit.NewFixture("K.java")
	l, ls := f.Local("int", "x", ast.NoNodeID)
	target := f.Ref(ls)
	value := f.Bin(ast.BinMul, f.Int(6), f.Int(7))
	set := f.Set(target, value)
	read := f.Ref(ls)
	m := inMethod(t, f, nil, l, set, f.Return(read))
	ix := uses.Build(m)

	require.True(t, ix.IsEffectivelyFinal(ls))
	init, ok := ix.EffectiveInitializer(ls)
	require.True(t, ok)
	assert.Equal(t, value, init)

	ev := fold.New(m, ix)
	got, ok := ev.Fold(read)
	require.True(t, ok)
	want, ok := ev.Fold(value)
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Equal(t, "42", got.String())
}

func TestMutablyAssigned(t *testing.T) {
	f := testkit.NewFixture("K.java")
	fd, fs := f.Field(ast.ModPrivate, "List", "items", f.StaticCall("List", "of"))
	reset := f.Method(0, "void", "reset", nil, f.Set(f.ThisRef(fs), f.New("ArrayList")))
	m := f.Finish(t, f.Class(0, "K", fd, reset))
	ix := uses.Build(m)

	isNew := func(id ast.NodeID) bool { return m.Tree.Kind(id) == ast.KindNew }
	assert.True(t, ix.MutablyAssigned(fs, isNew))
	assert.Len(t, ix.Values(fs), 2)
	assert.False(t, ix.MutablyAssigned(fs, func(ast.NodeID) bool { return false }))
}
