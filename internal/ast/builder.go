package ast

import (
	"gradelint/internal/source"
	"gradelint/internal/types"
)

type Hints struct{ Nodes, Decls, Stmts, Exprs uint }

// Builder owns the node arena and the payload arenas of every kind.
type Builder struct {
	Nodes *Arena[Node]
	Decls *Decls
	Stmts *Stmts
	Exprs *Exprs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Nodes == 0 {
		hints.Nodes = 1 << 9
	}
	if hints.Decls == 0 {
		hints.Decls = 1 << 6
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	nodes := NewArena[Node](hints.Nodes)
	return &Builder{
		Nodes: nodes,
		Decls: newDecls(nodes, hints.Decls),
		Stmts: newStmts(nodes, hints.Stmts),
		Exprs: newExprs(nodes, hints.Exprs),
	}
}

// Node returns the node header or nil.
func (b *Builder) Node(id NodeID) *Node {
	return b.Nodes.Get(uint32(id))
}

// Kind returns the kind of id, KindInvalid for unknown ids.
func (b *Builder) Kind(id NodeID) Kind {
	if n := b.Node(id); n != nil {
		return n.Kind
	}
	return KindInvalid
}

// Parent returns the parent link set by Link.
func (b *Builder) Parent(id NodeID) NodeID {
	if n := b.Node(id); n != nil {
		return n.Parent
	}
	return NoNodeID
}

// Span returns the position of id or an invalid span.
func (b *Builder) Span(id NodeID) source.Span {
	if n := b.Node(id); n != nil {
		return n.Span
	}
	return source.Span{}
}

// SetType attaches the static type reported by the front-end.
func (b *Builder) SetType(id NodeID, t types.TypeID) {
	if n := b.Node(id); n != nil {
		n.Type = t
	}
}

// MarkImplicit flags id as synthesized.
func (b *Builder) MarkImplicit(id NodeID) {
	if n := b.Node(id); n != nil {
		n.Flags |= FlagImplicit
	}
}

// Len reports the number of allocated nodes.
func (b *Builder) Len() uint32 {
	return b.Nodes.Len()
}

func allocNode(nodes *Arena[Node], kind Kind, span source.Span, payload PayloadID) NodeID {
	return NodeID(nodes.Allocate(Node{Kind: kind, Span: span, Payload: payload}))
}

func newNode[T any](nodes *Arena[Node], payloads *Arena[T], kind Kind, span source.Span, data T) NodeID {
	return allocNode(nodes, kind, span, PayloadID(payloads.Allocate(data)))
}

func payloadOf[T any](nodes *Arena[Node], payloads *Arena[T], id NodeID, kind Kind) (*T, bool) {
	n := nodes.Get(uint32(id))
	if n == nil || n.Kind != kind {
		return nil, false
	}
	data := payloads.Get(uint32(n.Payload))
	return data, data != nil
}
