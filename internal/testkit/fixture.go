package testkit

import (
	"strconv"
	"testing"

	"gradelint/internal/ast"
	"gradelint/internal/model"
	"gradelint/internal/source"
	"gradelint/internal/symbols"
	"gradelint/internal/types"
)

// Fixture builds small resolved models for tests without a front-end.
//
// Positions follow call order: every node takes the next column on the
// current line, statements and member declarations end the line, and
// nodes with children cover the spans of their children. Building nodes
// in source order therefore yields source-ordered positions.
type Fixture struct {
	B    *model.Builder
	File source.FileID

	line, col uint32
}

// NewFixture starts a fixture for a single virtual file.
func NewFixture(path string) *Fixture {
	b := model.NewBuilder(nil)
	return &Fixture{
		B:    b,
		File: b.Files.AddPath(path),
		line: 1,
		col:  1,
	}
}

// Line reports the line the next node lands on.
func (f *Fixture) Line() uint32 { return f.line }

// Skip advances to a fresh line, leaving n blank lines.
func (f *Fixture) Skip(n uint32) {
	f.line += n + 1
	f.col = 1
}

func (f *Fixture) pos() source.Span {
	sp := source.At(f.File, f.line, f.col)
	f.col++
	return sp
}

func (f *Fixture) endLine() {
	f.line++
	f.col = 1
}

func (f *Fixture) cover(children ...ast.NodeID) source.Span {
	var sp source.Span
	for _, c := range children {
		if c.IsValid() {
			sp = sp.Cover(f.B.Tree.Span(c))
		}
	}
	return sp
}

// around is the span of a node written after its children.
func (f *Fixture) around(children ...ast.NodeID) source.Span {
	return f.pos().Cover(f.cover(children...))
}

// container is the span of a node that only groups its children.
func (f *Fixture) container(children ...ast.NodeID) source.Span {
	if sp := f.cover(children...); sp.IsValid() {
		return sp
	}
	return f.pos()
}

func joined(groups ...[]ast.NodeID) []ast.NodeID {
	var out []ast.NodeID
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// T resolves a source-spelled type name.
func (f *Fixture) T(name string) types.TypeID {
	return f.B.Types.Resolve(name)
}

// Implicit marks id as synthesized and returns it.
func (f *Fixture) Implicit(id ast.NodeID) ast.NodeID {
	f.B.Tree.MarkImplicit(id)
	return id
}

// ---- declarations ----

func (f *Fixture) Field(mods ast.Modifiers, typ, name string, init ast.NodeID) (ast.NodeID, symbols.SymbolID) {
	decl, sym := f.B.DeclareField(f.around(init), name, f.T(typ), mods, init)
	f.endLine()
	return decl, sym
}

func (f *Fixture) Param(typ, name string) (ast.NodeID, symbols.SymbolID) {
	return f.B.DeclareParam(f.pos(), name, f.T(typ), 0)
}

func (f *Fixture) FinalParam(typ, name string) (ast.NodeID, symbols.SymbolID) {
	return f.B.DeclareParam(f.pos(), name, f.T(typ), ast.ModFinal)
}

// Local declares a local variable statement; init may be NoNodeID.
func (f *Fixture) Local(typ, name string, init ast.NodeID) (ast.NodeID, symbols.SymbolID) {
	return f.LocalMods(0, typ, name, init)
}

func (f *Fixture) LocalMods(mods ast.Modifiers, typ, name string, init ast.NodeID) (ast.NodeID, symbols.SymbolID) {
	decl, sym := f.B.DeclareLocal(f.around(init), name, f.T(typ), mods, init)
	f.endLine()
	return decl, sym
}

// LoopVar declares the variable of an enhanced for loop.
func (f *Fixture) LoopVar(typ, name string) (ast.NodeID, symbols.SymbolID) {
	return f.B.DeclareLocal(f.pos(), name, f.T(typ), 0, ast.NoNodeID)
}

func (f *Fixture) Method(mods ast.Modifiers, result, name string, params []ast.NodeID, stmts ...ast.NodeID) ast.NodeID {
	body := f.Block(stmts...)
	return f.B.Tree.Decls.NewMethod(f.container(joined(params, []ast.NodeID{body})...), ast.MethodData{
		Name:   f.B.Intern(name),
		Mods:   mods,
		Result: f.T(result),
		Params: params,
		Body:   body,
	})
}

// AbstractMethod declares a method without a body.
func (f *Fixture) AbstractMethod(mods ast.Modifiers, result, name string, params ...ast.NodeID) ast.NodeID {
	span := f.around(params...)
	f.endLine()
	return f.B.Tree.Decls.NewMethod(span, ast.MethodData{
		Name:   f.B.Intern(name),
		Mods:   mods | ast.ModAbstract,
		Result: f.T(result),
		Params: params,
	})
}

func (f *Fixture) Ctor(mods ast.Modifiers, params []ast.NodeID, stmts ...ast.NodeID) ast.NodeID {
	body := f.Block(stmts...)
	return f.B.Tree.Decls.NewConstructor(f.container(joined(params, []ast.NodeID{body})...), ast.ConstructorData{
		Mods:   mods,
		Params: params,
		Body:   body,
	})
}

// Initializer declares an instance (or static) initializer block.
func (f *Fixture) Initializer(static bool, stmts ...ast.NodeID) ast.NodeID {
	body := f.Block(stmts...)
	return f.B.Tree.Decls.NewInitializer(f.container(body), ast.InitializerData{Static: static, Body: body})
}

// Class declares a class named name; the type is registered as a named type.
func (f *Fixture) Class(mods ast.Modifiers, name string, members ...ast.NodeID) ast.NodeID {
	return f.TypeDecl(ast.TypeClass, mods, name, "", members...)
}

func (f *Fixture) TypeDecl(kind ast.TypeDeclKind, mods ast.Modifiers, name, super string, members ...ast.NodeID) ast.NodeID {
	var superID types.TypeID
	if super != "" {
		superID = f.T(super)
	}
	return f.B.Tree.Decls.NewType(f.container(members...), ast.TypeData{
		Name:    f.B.Intern(name),
		Kind:    kind,
		Mods:    mods,
		Self:    f.T(name),
		Super:   superID,
		Members: members,
	})
}

// Finish wraps the given type declarations into the fixture file, builds
// the model and checks the tree invariants.
func (f *Fixture) Finish(tb testing.TB, decls ...ast.NodeID) *model.Model {
	tb.Helper()
	m, err := f.Build(decls...)
	if err != nil {
		tb.Fatalf("fixture: %v", err)
	}
	if err := CheckTreeInvariants(m); err != nil {
		tb.Fatalf("fixture invariants: %v", err)
	}
	return m
}

// Build is Finish without a testing.TB; errors are returned as is.
func (f *Fixture) Build(decls ...ast.NodeID) (*model.Model, error) {
	file := f.B.Tree.Decls.NewFile(f.container(decls...), ast.FileData{File: f.File, Types: decls})
	f.B.AddRoot(file)
	return f.B.Finish()
}

// ---- statements ----

func (f *Fixture) Block(stmts ...ast.NodeID) ast.NodeID {
	return f.B.Tree.Stmts.NewBlock(f.container(stmts...), stmts...)
}

// Expr wraps an expression into a statement.
func (f *Fixture) Expr(e ast.NodeID) ast.NodeID {
	id := f.B.Tree.Stmts.NewExprStmt(f.around(e), e)
	f.endLine()
	return id
}

// Set is the statement target = value.
func (f *Fixture) Set(target, value ast.NodeID) ast.NodeID {
	return f.Expr(f.Assign(target, value))
}

func (f *Fixture) Return(value ast.NodeID) ast.NodeID {
	id := f.B.Tree.Stmts.NewReturn(f.around(value), value)
	f.endLine()
	return id
}

func (f *Fixture) Throw(value ast.NodeID) ast.NodeID {
	id := f.B.Tree.Stmts.NewThrow(f.around(value), value)
	f.endLine()
	return id
}

func (f *Fixture) If(cond, then, els ast.NodeID) ast.NodeID {
	return f.B.Tree.Stmts.NewIf(f.container(cond, then, els), cond, then, els)
}

func (f *Fixture) While(cond, body ast.NodeID) ast.NodeID {
	return f.B.Tree.Stmts.NewLoop(f.container(cond, body), ast.LoopData{Kind: ast.LoopWhile, Cond: cond, Body: body})
}

func (f *Fixture) DoWhile(body, cond ast.NodeID) ast.NodeID {
	return f.B.Tree.Stmts.NewLoop(f.container(body, cond), ast.LoopData{Kind: ast.LoopDoWhile, Cond: cond, Body: body})
}

func (f *Fixture) For(init []ast.NodeID, cond ast.NodeID, update []ast.NodeID, body ast.NodeID) ast.NodeID {
	all := joined(init, []ast.NodeID{cond}, update, []ast.NodeID{body})
	return f.B.Tree.Stmts.NewLoop(f.container(all...), ast.LoopData{
		Kind:   ast.LoopFor,
		Init:   init,
		Cond:   cond,
		Update: update,
		Body:   body,
	})
}

func (f *Fixture) ForEach(v, iterable, body ast.NodeID) ast.NodeID {
	return f.B.Tree.Stmts.NewLoop(f.container(v, iterable, body), ast.LoopData{
		Kind:     ast.LoopForEach,
		Var:      v,
		Iterable: iterable,
		Body:     body,
	})
}

func (f *Fixture) Switch(selector ast.NodeID, cases ...ast.NodeID) ast.NodeID {
	return f.B.Tree.Stmts.NewSwitch(f.container(append([]ast.NodeID{selector}, cases...)...), selector, cases...)
}

func (f *Fixture) Case(labels []ast.NodeID, stmts ...ast.NodeID) ast.NodeID {
	return f.B.Tree.Stmts.NewCase(f.container(joined(labels, stmts)...), ast.CaseData{Labels: labels, Body: stmts})
}

func (f *Fixture) Default(stmts ...ast.NodeID) ast.NodeID {
	return f.B.Tree.Stmts.NewCase(f.container(stmts...), ast.CaseData{Default: true, Body: stmts})
}

// Try builds try { body } catch... with an optional finally block.
func (f *Fixture) Try(body ast.NodeID, finally ast.NodeID, catches ...ast.NodeID) ast.NodeID {
	all := joined([]ast.NodeID{body}, catches, []ast.NodeID{finally})
	return f.B.Tree.Stmts.NewTry(f.container(all...), ast.TryData{
		Body:    body,
		Catches: catches,
		Finally: finally,
	})
}

func (f *Fixture) Catch(param, body ast.NodeID) ast.NodeID {
	return f.B.Tree.Stmts.NewCatch(f.container(param, body), param, body)
}

// ---- expressions ----

func (f *Fixture) Ref(sym symbols.SymbolID) ast.NodeID {
	return f.B.Ref(f.pos(), sym)
}

// ThisRef is this.name bound to a field symbol.
func (f *Fixture) ThisRef(sym symbols.SymbolID) ast.NodeID {
	this := f.This()
	return f.B.Select(f.around(this), this, sym)
}

// Select is target.name bound to sym.
func (f *Fixture) Select(target ast.NodeID, sym symbols.SymbolID) ast.NodeID {
	return f.B.Select(f.around(target), target, sym)
}

func (f *Fixture) This() ast.NodeID {
	return f.B.Tree.Exprs.NewThis(f.pos())
}

func (f *Fixture) Lit(kind ast.LitKind, text string) ast.NodeID {
	id := f.B.Tree.Exprs.NewLiteral(f.pos(), kind, f.B.Intern(text))
	f.B.Tree.SetType(id, f.litType(kind))
	return id
}

func (f *Fixture) litType(kind ast.LitKind) types.TypeID {
	bt := f.B.Types.Builtins()
	switch kind {
	case ast.LitInt:
		return bt.Int
	case ast.LitLong:
		return bt.Long
	case ast.LitFloat:
		return bt.Float
	case ast.LitDouble:
		return bt.Double
	case ast.LitChar:
		return bt.Char
	case ast.LitString:
		return bt.String
	case ast.LitBool:
		return bt.Boolean
	default:
		return bt.Null
	}
}

func (f *Fixture) Int(v int) ast.NodeID { return f.Lit(ast.LitInt, strconv.Itoa(v)) }

func (f *Fixture) Long(v int64) ast.NodeID {
	return f.Lit(ast.LitLong, strconv.FormatInt(v, 10)+"L")
}

func (f *Fixture) Double(text string) ast.NodeID { return f.Lit(ast.LitDouble, text) }

// Str is a string literal; the text is quoted the way source spells it.
func (f *Fixture) Str(s string) ast.NodeID { return f.Lit(ast.LitString, strconv.Quote(s)) }

func (f *Fixture) Char(text string) ast.NodeID { return f.Lit(ast.LitChar, text) }

func (f *Fixture) Bool(v bool) ast.NodeID { return f.Lit(ast.LitBool, strconv.FormatBool(v)) }

func (f *Fixture) Null() ast.NodeID { return f.Lit(ast.LitNull, "null") }

func (f *Fixture) Assign(target, value ast.NodeID) ast.NodeID {
	return f.AssignOp(ast.AssignPlain, target, value)
}

func (f *Fixture) AssignOp(op ast.AssignOp, target, value ast.NodeID) ast.NodeID {
	id := f.B.Tree.Exprs.NewAssign(f.around(target, value), op, target, value)
	f.B.Tree.SetType(id, f.B.Tree.Node(target).Type)
	return id
}

func (f *Fixture) Unary(op ast.UnaryOp, operand ast.NodeID) ast.NodeID {
	return f.B.Tree.Exprs.NewUnary(f.around(operand), op, operand)
}

// Inc is operand++.
func (f *Fixture) Inc(operand ast.NodeID) ast.NodeID {
	return f.Unary(ast.UnaryPostInc, operand)
}

func (f *Fixture) Bin(op ast.BinaryOp, left, right ast.NodeID) ast.NodeID {
	return f.B.Tree.Exprs.NewBinary(f.around(left, right), op, left, right)
}

// Call is target.name(args...).
func (f *Fixture) Call(target ast.NodeID, name string, args ...ast.NodeID) ast.NodeID {
	var owner types.TypeID
	if n := f.B.Tree.Node(target); n != nil {
		owner = n.Type
	}
	return f.B.Tree.Exprs.NewCall(f.around(append([]ast.NodeID{target}, args...)...), ast.CallData{
		Target: target,
		Name:   f.B.Intern(name),
		Owner:  owner,
		Args:   args,
	})
}

// StaticCall is Owner.name(args...).
func (f *Fixture) StaticCall(owner, name string, args ...ast.NodeID) ast.NodeID {
	return f.B.Tree.Exprs.NewCall(f.around(args...), ast.CallData{
		Name:   f.B.Intern(name),
		Owner:  f.T(owner),
		Static: true,
		Args:   args,
	})
}

func (f *Fixture) New(typ string, args ...ast.NodeID) ast.NodeID {
	t := f.T(typ)
	id := f.B.Tree.Exprs.NewNew(f.around(args...), t, args...)
	f.B.Tree.SetType(id, t)
	return id
}

// NewArray is new elem[dims...].
func (f *Fixture) NewArray(elem string, dims ...ast.NodeID) ast.NodeID {
	return f.newArray(elem, dims, nil)
}

// ArrayLit is new elem[]{values...}.
func (f *Fixture) ArrayLit(elem string, values ...ast.NodeID) ast.NodeID {
	return f.newArray(elem, nil, values)
}

func (f *Fixture) newArray(elem string, dims, values []ast.NodeID) ast.NodeID {
	elemID := f.T(elem)
	id := f.B.Tree.Exprs.NewNewArray(f.around(joined(dims, values)...), ast.NewArrayData{
		Elem: elemID,
		Dims: dims,
		Init: values,
	})
	f.B.Tree.SetType(id, f.B.Types.ArrayOf(elemID))
	return id
}

func (f *Fixture) Index(array, index ast.NodeID) ast.NodeID {
	return f.B.Tree.Exprs.NewIndex(f.around(array, index), array, index)
}

func (f *Fixture) Cond(cond, then, els ast.NodeID) ast.NodeID {
	return f.B.Tree.Exprs.NewCond(f.around(cond, then, els), cond, then, els)
}

func (f *Fixture) Cast(typ string, operand ast.NodeID) ast.NodeID {
	t := f.T(typ)
	id := f.B.Tree.Exprs.NewCast(f.around(operand), t, operand)
	f.B.Tree.SetType(id, t)
	return id
}

func (f *Fixture) TypeRef(typ string) ast.NodeID {
	return f.B.Tree.Exprs.NewTypeRef(f.pos(), f.T(typ))
}
