package oop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradelint/internal/ast"
	"gradelint/internal/check"
	"gradelint/internal/checks/oop"
	"gradelint/internal/problem"
	"gradelint/internal/symbols"
	"gradelint/internal/testkit"
)

// getterClass builds
//
//	class Box { private <typ> items; Box() { this.items = <value>; } public <typ> getItems() { return items; } }
func getterClass(t *testing.T, fieldMods ast.Modifiers, typ string, getterMods ast.Modifiers, value func(f *testkit.Fixture) ast.NodeID) []problem.Problem {
	t.Helper()
	f := testkit.NewFixture("Box.java")
	field, fs := f.Field(fieldMods, typ, "items", ast.NoNodeID)
	ctor := f.Ctor(ast.ModPublic, nil, f.Set(f.ThisRef(fs), value(f)))
	getter := f.Method(getterMods, typ, "getItems", nil, f.Return(f.Ref(fs)))
	m := f.Finish(t, f.Class(ast.ModPublic, "Box", field, ctor, getter))
	return testkit.RunChecks(t, m, check.Options{}, oop.ListGetter).Problems
}

func newArrayList(f *testkit.Fixture) ast.NodeID { return f.New("ArrayList") }

func TestListGetter(t *testing.T) {
	tests := []struct {
		name       string
		fieldMods  ast.Modifiers
		typ        string
		getterMods ast.Modifiers
		value      func(f *testkit.Fixture) ast.NodeID
		want       int
	}{
		{"fresh list", ast.ModPrivate, "List<String>", ast.ModPublic, newArrayList, 1},
		{"list factory", ast.ModPrivate, "List<String>", ast.ModPublic, func(f *testkit.Fixture) ast.NodeID {
			return f.StaticCall("List", "of", f.Str("a"))
		}, 0},
		{"unmodifiable view", ast.ModPrivate, "List<String>", ast.ModPublic, func(f *testkit.Fixture) ast.NodeID {
			return f.StaticCall("Collections", "unmodifiableList", f.New("ArrayList"))
		}, 0},
		{"unknown call", ast.ModPrivate, "Map<String, Integer>", ast.ModPublic, func(f *testkit.Fixture) ast.NodeID {
			return f.StaticCall("Helpers", "load")
		}, 1},
		{"array", ast.ModPrivate, "int[]", ast.ModPublic, func(f *testkit.Fixture) ast.NodeID {
			return f.Null()
		}, 1},
		{"not a collection", ast.ModPrivate, "StringBuilder", ast.ModPublic, func(f *testkit.Fixture) ast.NodeID {
			return f.New("StringBuilder")
		}, 0},
		{"package private field", 0, "List<String>", ast.ModPublic, newArrayList, 0},
		{"private getter", ast.ModPrivate, "List<String>", ast.ModPrivate, newArrayList, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := getterClass(t, tt.fieldMods, tt.typ, tt.getterMods, tt.value)
			require.Len(t, got, tt.want)
			for _, p := range got {
				assert.Equal(t, problem.ListNotCopiedInGetter, p.Kind())
				assert.Equal(t, problem.Key("list-getter-exp"), p.Key())
				assert.Equal(t, "items", testkit.Arg(p, "name"))
			}
		})
	}
}

func TestListGetterMixedAssignments(t *testing.T) {
	f := testkit.NewFixture("Box.java")
	field, fs := f.Field(ast.ModPrivate, "Set<String>", "items", f.StaticCall("Set", "of"))
	reset := f.Method(ast.ModPublic, "void", "reset", nil, f.Set(f.Ref(fs), f.New("HashSet")))
	getter := f.Method(ast.ModPublic, "Set<String>", "getItems", nil, f.Return(f.ThisRef(fs)))
	m := f.Finish(t, f.Class(ast.ModPublic, "Box", field, reset, getter))

	res := testkit.RunChecks(t, m, check.Options{}, oop.ListGetter)
	require.Len(t, res.Problems, 1)
	assert.Equal(t, m.Path(getter), res.Problems[0].Position().Path)
	assert.Equal(t, symbols.VisPrivate, m.Symbol(fs).Visibility)
}

func TestListGetterStatic(t *testing.T) {
	f := testkit.NewFixture("Registry.java")
	field, fs := f.Field(ast.ModPrivate|ast.ModStatic, "List<String>", "ITEMS", f.New("ArrayList"))
	getter := f.Method(ast.ModPublic|ast.ModStatic, "List<String>", "items", nil, f.Return(f.Ref(fs)))
	m := f.Finish(t, f.Class(ast.ModPublic, "Registry", field, getter))

	res := testkit.RunChecks(t, m, check.Options{}, oop.ListGetter)
	require.Len(t, res.Problems, 1)
	assert.Equal(t, "ITEMS", testkit.Arg(res.Problems[0], "name"))
}
