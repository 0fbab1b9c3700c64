package ast

import (
	"gradelint/internal/source"
	"gradelint/internal/types"
)

// LitKind classifies literal tokens.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitLong
	LitFloat
	LitDouble
	LitChar
	LitString
	LitBool
	LitNull
)

func (k LitKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitLong:
		return "long"
	case LitFloat:
		return "float"
	case LitDouble:
		return "double"
	case LitChar:
		return "char"
	case LitString:
		return "string"
	case LitBool:
		return "bool"
	case LitNull:
		return "null"
	default:
		return "?"
	}
}

type LiteralData struct {
	Kind LitKind
	Text source.StringID // исходный текст токена, с кавычками для char/string
}

// NameData is a variable or field access. Target is the qualifying
// expression of a field access (a.b, this.b) or NoNodeID.
type NameData struct {
	Name   source.StringID
	Target NodeID
}

type TypeRefData struct {
	Type types.TypeID
}

type AssignData struct {
	Op     AssignOp
	Target NodeID
	Value  NodeID
}

type UnaryData struct {
	Op      UnaryOp
	Operand NodeID
}

type BinaryData struct {
	Op    BinaryOp
	Left  NodeID
	Right NodeID
}

// CallData is a method invocation. Owner is the declaring type of the
// invoked method as resolved by the front-end.
type CallData struct {
	Target NodeID
	Name   source.StringID
	Owner  types.TypeID
	Static bool
	Args   []NodeID
}

type NewData struct {
	Type types.TypeID
	Args []NodeID
}

type NewArrayData struct {
	Elem types.TypeID
	Dims []NodeID
	Init []NodeID
}

type IndexData struct {
	Array NodeID
	Index NodeID
}

type CondData struct {
	Cond NodeID
	Then NodeID
	Else NodeID
}

type CastData struct {
	Type    types.TypeID
	Operand NodeID
}

// Exprs manages expression payloads.
type Exprs struct {
	nodes     *Arena[Node]
	Literals  *Arena[LiteralData]
	Names     *Arena[NameData]
	TypeRefs  *Arena[TypeRefData]
	Assigns   *Arena[AssignData]
	Unaries   *Arena[UnaryData]
	Binaries  *Arena[BinaryData]
	Calls     *Arena[CallData]
	News      *Arena[NewData]
	NewArrays *Arena[NewArrayData]
	Indices   *Arena[IndexData]
	Conds     *Arena[CondData]
	Casts     *Arena[CastData]
}

func newExprs(nodes *Arena[Node], capHint uint) *Exprs {
	return &Exprs{
		nodes:     nodes,
		Literals:  NewArena[LiteralData](capHint),
		Names:     NewArena[NameData](capHint),
		TypeRefs:  NewArena[TypeRefData](capHint),
		Assigns:   NewArena[AssignData](capHint),
		Unaries:   NewArena[UnaryData](capHint),
		Binaries:  NewArena[BinaryData](capHint),
		Calls:     NewArena[CallData](capHint),
		News:      NewArena[NewData](capHint),
		NewArrays: NewArena[NewArrayData](capHint),
		Indices:   NewArena[IndexData](capHint),
		Conds:     NewArena[CondData](capHint),
		Casts:     NewArena[CastData](capHint),
	}
}

func (e *Exprs) NewLiteral(span source.Span, kind LitKind, text source.StringID) NodeID {
	return newNode(e.nodes, e.Literals, KindLiteral, span, LiteralData{Kind: kind, Text: text})
}

func (e *Exprs) Literal(id NodeID) (*LiteralData, bool) {
	return payloadOf(e.nodes, e.Literals, id, KindLiteral)
}

func (e *Exprs) NewName(span source.Span, name source.StringID, target NodeID) NodeID {
	return newNode(e.nodes, e.Names, KindName, span, NameData{Name: name, Target: target})
}

func (e *Exprs) Name(id NodeID) (*NameData, bool) {
	return payloadOf(e.nodes, e.Names, id, KindName)
}

// NewThis has no payload.
func (e *Exprs) NewThis(span source.Span) NodeID {
	return allocNode(e.nodes, KindThis, span, NoPayloadID)
}

func (e *Exprs) NewTypeRef(span source.Span, t types.TypeID) NodeID {
	return newNode(e.nodes, e.TypeRefs, KindTypeRef, span, TypeRefData{Type: t})
}

func (e *Exprs) TypeRef(id NodeID) (*TypeRefData, bool) {
	return payloadOf(e.nodes, e.TypeRefs, id, KindTypeRef)
}

func (e *Exprs) NewAssign(span source.Span, op AssignOp, target, value NodeID) NodeID {
	return newNode(e.nodes, e.Assigns, KindAssign, span, AssignData{Op: op, Target: target, Value: value})
}

func (e *Exprs) Assign(id NodeID) (*AssignData, bool) {
	return payloadOf(e.nodes, e.Assigns, id, KindAssign)
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand NodeID) NodeID {
	return newNode(e.nodes, e.Unaries, KindUnary, span, UnaryData{Op: op, Operand: operand})
}

func (e *Exprs) Unary(id NodeID) (*UnaryData, bool) {
	return payloadOf(e.nodes, e.Unaries, id, KindUnary)
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right NodeID) NodeID {
	return newNode(e.nodes, e.Binaries, KindBinary, span, BinaryData{Op: op, Left: left, Right: right})
}

func (e *Exprs) Binary(id NodeID) (*BinaryData, bool) {
	return payloadOf(e.nodes, e.Binaries, id, KindBinary)
}

func (e *Exprs) NewCall(span source.Span, data CallData) NodeID {
	return newNode(e.nodes, e.Calls, KindCall, span, data)
}

func (e *Exprs) Call(id NodeID) (*CallData, bool) {
	return payloadOf(e.nodes, e.Calls, id, KindCall)
}

func (e *Exprs) NewNew(span source.Span, t types.TypeID, args ...NodeID) NodeID {
	return newNode(e.nodes, e.News, KindNew, span, NewData{Type: t, Args: args})
}

func (e *Exprs) New(id NodeID) (*NewData, bool) {
	return payloadOf(e.nodes, e.News, id, KindNew)
}

func (e *Exprs) NewNewArray(span source.Span, data NewArrayData) NodeID {
	return newNode(e.nodes, e.NewArrays, KindNewArray, span, data)
}

func (e *Exprs) NewArray(id NodeID) (*NewArrayData, bool) {
	return payloadOf(e.nodes, e.NewArrays, id, KindNewArray)
}

func (e *Exprs) NewIndex(span source.Span, array, index NodeID) NodeID {
	return newNode(e.nodes, e.Indices, KindIndex, span, IndexData{Array: array, Index: index})
}

func (e *Exprs) Index(id NodeID) (*IndexData, bool) {
	return payloadOf(e.nodes, e.Indices, id, KindIndex)
}

func (e *Exprs) NewCond(span source.Span, cond, then, els NodeID) NodeID {
	return newNode(e.nodes, e.Conds, KindCond, span, CondData{Cond: cond, Then: then, Else: els})
}

func (e *Exprs) Cond(id NodeID) (*CondData, bool) {
	return payloadOf(e.nodes, e.Conds, id, KindCond)
}

func (e *Exprs) NewCast(span source.Span, t types.TypeID, operand NodeID) NodeID {
	return newNode(e.nodes, e.Casts, KindCast, span, CastData{Type: t, Operand: operand})
}

func (e *Exprs) Cast(id NodeID) (*CastData, bool) {
	return payloadOf(e.nodes, e.Casts, id, KindCast)
}
