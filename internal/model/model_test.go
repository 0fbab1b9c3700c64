package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradelint/internal/ast"
	"gradelint/internal/model"
	"gradelint/internal/source"
	"gradelint/internal/symbols"
	"gradelint/internal/testkit"
)

func TestFinishDerivesOwners(t *testing.T) {
	f := testkit.NewFixture("Box.java")
	field, fsym := f.Field(ast.ModPrivate|ast.ModFinal, "int", "size", ast.NoNodeID)
	param, psym := f.Param("int", "size")
	local, lsym := f.Local("int", "twice", f.Bin(ast.BinMul, f.Ref(psym), f.Int(2)))
	ctor := f.Ctor(ast.ModPublic, []ast.NodeID{param}, local, f.Set(f.ThisRef(fsym), f.Ref(lsym)))
	cls := f.Class(ast.ModPublic, "Box", field, ctor)
	m := f.Finish(t, cls)

	assert.Equal(t, cls, m.Symbol(fsym).Owner)
	assert.Equal(t, ctor, m.Symbol(psym).Owner)
	assert.Equal(t, m.Tree.Decls.Body(ctor), m.Symbol(lsym).Owner)
	assert.True(t, m.Symbol(fsym).IsFinal())

	assert.Equal(t, "size", m.NodeName(field))
	assert.Equal(t, "twice", m.NodeName(local))
	assert.Equal(t, "int", m.Types.Format(m.TypeOf(param)))
	assert.Equal(t, fsym, m.SymbolOf(field))
}

func TestFinishMarksImplicitSymbols(t *testing.T) {
	f := testkit.NewFixture("A.java")
	field, fsym := f.Field(0, "int", "n", ast.NoNodeID)
	f.Implicit(field)
	m := f.Finish(t, f.Class(0, "A", field))
	assert.True(t, m.Symbol(fsym).IsImplicit())
}

func TestFinishTwice(t *testing.T) {
	b := model.NewBuilder(nil)
	file := b.Tree.Decls.NewFile(source.At(1, 1, 1), ast.FileData{})
	b.AddRoot(file)
	_, err := b.Finish()
	require.NoError(t, err)
	_, err = b.Finish()
	require.ErrorIs(t, err, model.ErrFinished)
}

func TestFinishRejectsBrokenTree(t *testing.T) {
	b := model.NewBuilder(nil)
	lit := b.Tree.Exprs.NewLiteral(source.At(1, 1, 1), ast.LitInt, b.Intern("1"))
	b.AddRoot(b.Tree.Stmts.NewBlock(source.At(1, 1, 1), b.Tree.Stmts.NewExprStmt(source.At(1, 1, 1), lit), b.Tree.Stmts.NewExprStmt(source.At(1, 1, 1), lit)))
	_, err := b.Finish()
	require.ErrorIs(t, err, ast.ErrSharedNode)
}

func TestRefBindsSymbol(t *testing.T) {
	b := model.NewBuilder(nil)
	sp := source.At(1, 1, 1)
	decl, sym := b.DeclareLocal(sp, "x", b.Types.Builtins().Int, 0, ast.NoNodeID)
	ref := b.Ref(source.At(1, 2, 1), sym)
	block := b.Tree.Stmts.NewBlock(sp, decl, b.Tree.Stmts.NewExprStmt(source.At(1, 2, 1), ref))
	b.AddRoot(block)
	m, err := b.Finish()
	require.NoError(t, err)
	assert.Equal(t, sym, m.SymbolOf(ref))
	assert.Equal(t, "x", m.NodeName(ref))
	assert.Equal(t, b.Types.Builtins().Int, m.TypeOf(ref))
	assert.Equal(t, symbols.SymbolLocal, m.Symbol(sym).Kind)
}
