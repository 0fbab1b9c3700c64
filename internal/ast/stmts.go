package ast

import "gradelint/internal/source"

// LoopKind distinguishes loop statements.
type LoopKind uint8

const (
	LoopWhile LoopKind = iota
	LoopDoWhile
	LoopFor
	LoopForEach
)

type BlockData struct {
	Stmts []NodeID
}

type ExprStmtData struct {
	Expr NodeID
}

type ReturnData struct {
	Value NodeID
}

type IfData struct {
	Cond NodeID
	Then NodeID
	Else NodeID
}

type LoopData struct {
	Kind     LoopKind
	Init     []NodeID // for
	Cond     NodeID
	Update   []NodeID // for
	Var      NodeID   // foreach: Local без Init
	Iterable NodeID   // foreach
	Body     NodeID
}

type ThrowData struct {
	Value NodeID
}

type SwitchData struct {
	Selector NodeID
	Cases    []NodeID
}

type CaseData struct {
	Labels  []NodeID
	Default bool
	Body    []NodeID
}

type TryData struct {
	Resources []NodeID
	Body      NodeID
	Catches   []NodeID
	Finally   NodeID
}

type CatchData struct {
	Param NodeID
	Body  NodeID
}

// Stmts manages statement payloads.
type Stmts struct {
	nodes     *Arena[Node]
	Blocks    *Arena[BlockData]
	ExprStmts *Arena[ExprStmtData]
	Returns   *Arena[ReturnData]
	Ifs       *Arena[IfData]
	Loops     *Arena[LoopData]
	Throws    *Arena[ThrowData]
	Switches  *Arena[SwitchData]
	Cases     *Arena[CaseData]
	Tries     *Arena[TryData]
	Catches   *Arena[CatchData]
}

func newStmts(nodes *Arena[Node], capHint uint) *Stmts {
	return &Stmts{
		nodes:     nodes,
		Blocks:    NewArena[BlockData](capHint),
		ExprStmts: NewArena[ExprStmtData](capHint),
		Returns:   NewArena[ReturnData](capHint),
		Ifs:       NewArena[IfData](capHint),
		Loops:     NewArena[LoopData](capHint),
		Throws:    NewArena[ThrowData](capHint),
		Switches:  NewArena[SwitchData](capHint),
		Cases:     NewArena[CaseData](capHint),
		Tries:     NewArena[TryData](capHint),
		Catches:   NewArena[CatchData](capHint),
	}
}

func (s *Stmts) NewBlock(span source.Span, stmts ...NodeID) NodeID {
	return newNode(s.nodes, s.Blocks, KindBlock, span, BlockData{Stmts: stmts})
}

func (s *Stmts) Block(id NodeID) (*BlockData, bool) {
	return payloadOf(s.nodes, s.Blocks, id, KindBlock)
}

func (s *Stmts) NewExprStmt(span source.Span, expr NodeID) NodeID {
	return newNode(s.nodes, s.ExprStmts, KindExprStmt, span, ExprStmtData{Expr: expr})
}

func (s *Stmts) ExprStmt(id NodeID) (*ExprStmtData, bool) {
	return payloadOf(s.nodes, s.ExprStmts, id, KindExprStmt)
}

func (s *Stmts) NewReturn(span source.Span, value NodeID) NodeID {
	return newNode(s.nodes, s.Returns, KindReturn, span, ReturnData{Value: value})
}

func (s *Stmts) Return(id NodeID) (*ReturnData, bool) {
	return payloadOf(s.nodes, s.Returns, id, KindReturn)
}

func (s *Stmts) NewIf(span source.Span, cond, then, els NodeID) NodeID {
	return newNode(s.nodes, s.Ifs, KindIf, span, IfData{Cond: cond, Then: then, Else: els})
}

func (s *Stmts) If(id NodeID) (*IfData, bool) {
	return payloadOf(s.nodes, s.Ifs, id, KindIf)
}

func (s *Stmts) NewLoop(span source.Span, data LoopData) NodeID {
	return newNode(s.nodes, s.Loops, KindLoop, span, data)
}

func (s *Stmts) Loop(id NodeID) (*LoopData, bool) {
	return payloadOf(s.nodes, s.Loops, id, KindLoop)
}

func (s *Stmts) NewThrow(span source.Span, value NodeID) NodeID {
	return newNode(s.nodes, s.Throws, KindThrow, span, ThrowData{Value: value})
}

func (s *Stmts) Throw(id NodeID) (*ThrowData, bool) {
	return payloadOf(s.nodes, s.Throws, id, KindThrow)
}

func (s *Stmts) NewSwitch(span source.Span, selector NodeID, cases ...NodeID) NodeID {
	return newNode(s.nodes, s.Switches, KindSwitch, span, SwitchData{Selector: selector, Cases: cases})
}

func (s *Stmts) Switch(id NodeID) (*SwitchData, bool) {
	return payloadOf(s.nodes, s.Switches, id, KindSwitch)
}

func (s *Stmts) NewCase(span source.Span, data CaseData) NodeID {
	return newNode(s.nodes, s.Cases, KindCase, span, data)
}

func (s *Stmts) Case(id NodeID) (*CaseData, bool) {
	return payloadOf(s.nodes, s.Cases, id, KindCase)
}

func (s *Stmts) NewTry(span source.Span, data TryData) NodeID {
	return newNode(s.nodes, s.Tries, KindTry, span, data)
}

func (s *Stmts) Try(id NodeID) (*TryData, bool) {
	return payloadOf(s.nodes, s.Tries, id, KindTry)
}

func (s *Stmts) NewCatch(span source.Span, param, body NodeID) NodeID {
	return newNode(s.nodes, s.Catches, KindCatch, span, CatchData{Param: param, Body: body})
}

func (s *Stmts) Catch(id NodeID) (*CatchData, bool) {
	return payloadOf(s.nodes, s.Catches, id, KindCatch)
}
