package api_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradelint/internal/ast"
	"gradelint/internal/check"
	"gradelint/internal/checks/api"
	"gradelint/internal/model"
	"gradelint/internal/problem"
	"gradelint/internal/symbols"
	"gradelint/internal/testkit"
)

type argFn = func(f *testkit.Fixture, list symbols.SymbolID) ast.NodeID

// addCalls builds void foo(List<String> list) { list.add(<arg>); ... } with
// one add statement per argument builder.
func addCalls(t *testing.T, typ string, args ...argFn) *model.Model {
	t.Helper()
	f := testkit.NewFixture("Test.java")
	p, ps := f.Param(typ, "list")
	body := make([]ast.NodeID, len(args))
	for i, arg := range args {
		recv := f.Ref(ps)
		body[i] = f.Expr(f.Call(recv, "add", arg(f, ps)))
	}
	method := f.Method(ast.ModPublic, "void", "foo", []ast.NodeID{p}, body...)
	return f.Finish(t, f.Class(ast.ModPublic, "Test", method))
}

func str(s string) argFn {
	return func(f *testkit.Fixture, _ symbols.SymbolID) ast.NodeID { return f.Str(s) }
}

func suggestions(ps []problem.Problem) []string {
	out := []string{}
	for _, p := range ps {
		out = append(out, testkit.Arg(p, "suggestion"))
	}
	return out
}

func TestCollectionAddAll(t *testing.T) {
	m := addCalls(t, "List<String>", str(" "), str("a"), str("b"), str("c"))
	res := testkit.RunChecks(t, m, check.Options{}, api.CollectionAddAll)
	require.Len(t, res.Problems, 1)
	p := res.Problems[0]
	assert.Equal(t, problem.CommonReimplementationAddAll, p.Kind())
	assert.Equal(t, problem.Key("common-reimplementation"), p.Key())
	assert.Equal(t, `list.addAll(List.of(" ", "a", "b", "c"))`, testkit.Arg(p, "suggestion"))
	assert.Equal(t, problem.SevInfo, p.Severity())
}

func TestCollectionAddAllRuns(t *testing.T) {
	concat := func(f *testkit.Fixture, _ symbols.SymbolID) ast.NodeID {
		return f.Bin(ast.BinAdd, f.Str("x"), f.Int(1))
	}
	self := func(f *testkit.Fixture, list symbols.SymbolID) ast.NodeID {
		return f.Call(f.Ref(list), "size")
	}
	null := func(f *testkit.Fixture, _ symbols.SymbolID) ast.NodeID { return f.Null() }

	tests := []struct {
		name string
		typ  string
		args []argFn
		want []string
	}{
		{"too short", "List<String>", []argFn{str("a"), str("b")}, []string{}},
		{"folded arguments", "Set<String>", []argFn{concat, str("a"), str("b")},
			[]string{`list.addAll(List.of("x1", "a", "b"))`}},
		{"non constant breaks the run", "List<String>", []argFn{str("a"), str("b"), self, str("c"), str("d"), str("e")},
			[]string{`list.addAll(List.of("c", "d", "e"))`}},
		{"null breaks the run", "List<String>", []argFn{str("a"), null, str("b"), str("c")}, []string{}},
		{"not a collection", "StringBuilder", []argFn{str("a"), str("b"), str("c")}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := addCalls(t, tt.typ, tt.args...)
			res := testkit.RunChecks(t, m, check.Options{}, api.CollectionAddAll)
			assert.Equal(t, tt.want, suggestions(res.Problems))
		})
	}
}

func TestCollectionAddAllMinCalls(t *testing.T) {
	m := addCalls(t, "List<String>", str("a"), str("b"))
	opts := check.Options{Settings: map[string]check.Settings{"CollectionAddAll": {"min_calls": 2}}}
	res := testkit.RunChecks(t, m, opts, api.CollectionAddAll)
	assert.Equal(t, []string{`list.addAll(List.of("a", "b"))`}, suggestions(res.Problems))

	e := check.NewEngine(check.Options{Settings: map[string]check.Settings{"CollectionAddAll": {"min_calls": 1}}})
	require.NoError(t, e.Register(api.CollectionAddAll))
	out, err := e.Run(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, out.EngineErrors, 1)
	assert.Contains(t, out.EngineErrors[0].Message, "min_calls")
}

// enumAdds builds
//
//	enum Fruit { APPLE, BANANA, CHERRY }
//	class Test { void foo(<typ> fruits) { fruits.add(Fruit.<name>); ... } }
func enumAdds(t *testing.T, typ string, names ...string) *model.Model {
	t.Helper()
	f := testkit.NewFixture("Test.java")
	constants := map[string]symbols.SymbolID{}
	var members []ast.NodeID
	for _, name := range []string{"APPLE", "BANANA", "CHERRY"} {
		decl, sym := f.Field(ast.ModPublic|ast.ModStatic|ast.ModFinal, "Fruit", name, ast.NoNodeID)
		constants[name] = sym
		members = append(members, decl)
	}
	enum := f.TypeDecl(ast.TypeEnum, 0, "Fruit", "", members...)

	p, ps := f.Param(typ, "fruits")
	body := make([]ast.NodeID, len(names))
	for i, name := range names {
		recv := f.Ref(ps)
		body[i] = f.Expr(f.Call(recv, "add", f.Select(f.TypeRef("Fruit"), constants[name])))
	}
	method := f.Method(ast.ModPublic, "void", "foo", []ast.NodeID{p}, body...)
	return f.Finish(t, enum, f.Class(ast.ModPublic, "Test", method))
}

func TestCollectionAddAllEnumConstants(t *testing.T) {
	tests := []struct {
		name  string
		typ   string
		names []string
		kind  problem.Kind
		want  string
	}{
		{"set in any order", "Set<Fruit>", []string{"CHERRY", "APPLE", "BANANA"},
			problem.CommonReimplementationAddEnumValues, "fruits.addAll(Arrays.asList(Fruit.values()))"},
		{"list in declaration order", "List<Fruit>", []string{"APPLE", "BANANA", "CHERRY"},
			problem.CommonReimplementationAddEnumValues, "fruits.addAll(Arrays.asList(Fruit.values()))"},
		{"list reversed", "List<Fruit>", []string{"CHERRY", "BANANA", "APPLE"},
			problem.CommonReimplementationAddAll, "fruits.addAll(List.of(Fruit.CHERRY, Fruit.BANANA, Fruit.APPLE))"},
		{"list with duplicate", "List<Fruit>", []string{"APPLE", "BANANA", "BANANA", "CHERRY"},
			problem.CommonReimplementationAddAll, "fruits.addAll(List.of(Fruit.APPLE, Fruit.BANANA, Fruit.BANANA, Fruit.CHERRY))"},
		{"set missing a constant", "Set<Fruit>", []string{"APPLE", "BANANA", "APPLE"},
			problem.CommonReimplementationAddAll, "fruits.addAll(List.of(Fruit.APPLE, Fruit.BANANA, Fruit.APPLE))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := enumAdds(t, tt.typ, tt.names...)
			res := testkit.RunChecks(t, m, check.Options{}, api.CollectionAddAll)
			require.Len(t, res.Problems, 1)
			assert.Equal(t, tt.kind, res.Problems[0].Kind())
			assert.Equal(t, problem.Key("common-reimplementation"), res.Problems[0].Key())
			assert.Equal(t, tt.want, testkit.Arg(res.Problems[0], "suggestion"))
		})
	}
}

func TestCollectionAddAllIgnoresInitializedEnumFields(t *testing.T) {
	f := testkit.NewFixture("Test.java")
	apple, as := f.Field(ast.ModPublic|ast.ModStatic|ast.ModFinal, "Fruit", "APPLE", ast.NoNodeID)
	fallback, fs := f.Field(ast.ModPublic|ast.ModStatic|ast.ModFinal, "Fruit", "DEFAULT", f.Ref(as))
	enum := f.TypeDecl(ast.TypeEnum, 0, "Fruit", "", apple, fallback)
	p, ps := f.Param("List<Fruit>", "fruits")
	var body []ast.NodeID
	for range 3 {
		recv := f.Ref(ps)
		body = append(body, f.Expr(f.Call(recv, "add", f.Select(f.TypeRef("Fruit"), fs))))
	}
	method := f.Method(ast.ModPublic, "void", "foo", []ast.NodeID{p}, body...)
	m := f.Finish(t, enum, f.Class(ast.ModPublic, "Test", method))

	res := testkit.RunChecks(t, m, check.Options{}, api.CollectionAddAll)
	assert.Empty(t, res.Problems)
}
