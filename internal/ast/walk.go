package ast

import (
	"errors"
	"fmt"
)

var (
	// ErrSharedNode reports a node reachable from two parents.
	ErrSharedNode = errors.New("node has more than one parent")
	// ErrDanglingChild reports a child id with no node behind it.
	ErrDanglingChild = errors.New("child refers to unknown node")
	// ErrOrphanNode reports a node unreachable from every root.
	ErrOrphanNode = errors.New("node is not reachable from any root")
)

// Children returns the children of id in source order.
func (b *Builder) Children(id NodeID) []NodeID {
	return b.AppendChildren(nil, id)
}

// AppendChildren appends the children of id to dst in source order.
// Absent optional children (NoNodeID) are skipped.
func (b *Builder) AppendChildren(dst []NodeID, id NodeID) []NodeID {
	n := b.Node(id)
	if n == nil {
		return dst
	}
	add := func(ids ...NodeID) {
		for _, c := range ids {
			if c.IsValid() {
				dst = append(dst, c)
			}
		}
	}
	switch n.Kind {
	case KindFile:
		if d, ok := b.Decls.File(id); ok {
			add(d.Types...)
		}
	case KindType:
		if d, ok := b.Decls.Type(id); ok {
			add(d.Members...)
		}
	case KindField:
		if d, ok := b.Decls.Field(id); ok {
			add(d.Init)
		}
	case KindMethod:
		if d, ok := b.Decls.Method(id); ok {
			add(d.Params...)
			add(d.Body)
		}
	case KindConstructor:
		if d, ok := b.Decls.Constructor(id); ok {
			add(d.Params...)
			add(d.Body)
		}
	case KindInitializer:
		if d, ok := b.Decls.Initializer(id); ok {
			add(d.Body)
		}
	case KindParam:
	case KindLocal:
		if d, ok := b.Decls.Local(id); ok {
			add(d.Init)
		}
	case KindBlock:
		if d, ok := b.Stmts.Block(id); ok {
			add(d.Stmts...)
		}
	case KindExprStmt:
		if d, ok := b.Stmts.ExprStmt(id); ok {
			add(d.Expr)
		}
	case KindReturn:
		if d, ok := b.Stmts.Return(id); ok {
			add(d.Value)
		}
	case KindIf:
		if d, ok := b.Stmts.If(id); ok {
			add(d.Cond, d.Then, d.Else)
		}
	case KindLoop:
		if d, ok := b.Stmts.Loop(id); ok {
			switch d.Kind {
			case LoopWhile:
				add(d.Cond, d.Body)
			case LoopDoWhile:
				add(d.Body, d.Cond)
			case LoopFor:
				add(d.Init...)
				add(d.Cond)
				add(d.Update...)
				add(d.Body)
			case LoopForEach:
				add(d.Var, d.Iterable, d.Body)
			}
		}
	case KindThrow:
		if d, ok := b.Stmts.Throw(id); ok {
			add(d.Value)
		}
	case KindSwitch:
		if d, ok := b.Stmts.Switch(id); ok {
			add(d.Selector)
			add(d.Cases...)
		}
	case KindCase:
		if d, ok := b.Stmts.Case(id); ok {
			add(d.Labels...)
			add(d.Body...)
		}
	case KindTry:
		if d, ok := b.Stmts.Try(id); ok {
			add(d.Resources...)
			add(d.Body)
			add(d.Catches...)
			add(d.Finally)
		}
	case KindCatch:
		if d, ok := b.Stmts.Catch(id); ok {
			add(d.Param, d.Body)
		}
	case KindLiteral, KindThis, KindTypeRef:
	case KindName:
		if d, ok := b.Exprs.Name(id); ok {
			add(d.Target)
		}
	case KindAssign:
		if d, ok := b.Exprs.Assign(id); ok {
			add(d.Target, d.Value)
		}
	case KindUnary:
		if d, ok := b.Exprs.Unary(id); ok {
			add(d.Operand)
		}
	case KindBinary:
		if d, ok := b.Exprs.Binary(id); ok {
			add(d.Left, d.Right)
		}
	case KindCall:
		if d, ok := b.Exprs.Call(id); ok {
			add(d.Target)
			add(d.Args...)
		}
	case KindNew:
		if d, ok := b.Exprs.New(id); ok {
			add(d.Args...)
		}
	case KindNewArray:
		if d, ok := b.Exprs.NewArray(id); ok {
			add(d.Dims...)
			add(d.Init...)
		}
	case KindIndex:
		if d, ok := b.Exprs.Index(id); ok {
			add(d.Array, d.Index)
		}
	case KindCond:
		if d, ok := b.Exprs.Cond(id); ok {
			add(d.Cond, d.Then, d.Else)
		}
	case KindCast:
		if d, ok := b.Exprs.Cast(id); ok {
			add(d.Operand)
		}
	case KindInvalid, kindCount:
	}
	return dst
}

// Link rebuilds every parent link from the given roots and checks the tree
// shape: each non-root node has exactly one parent and every node is reachable.
func (b *Builder) Link(roots []NodeID) error {
	nodes := b.Nodes.Slice()
	for i := range nodes {
		nodes[i].Parent = NoNodeID
	}
	seen := make([]bool, len(nodes)+1)
	stack := make([]NodeID, 0, 64)
	for _, root := range roots {
		if b.Node(root) == nil {
			return fmt.Errorf("root %d: %w", root, ErrDanglingChild)
		}
		if seen[root] {
			return fmt.Errorf("root %d: %w", root, ErrSharedNode)
		}
		seen[root] = true
		stack = append(stack[:0], root)
		var children []NodeID
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			children = b.AppendChildren(children[:0], id)
			for _, c := range children {
				cn := b.Node(c)
				if cn == nil {
					return fmt.Errorf("%s %d -> %d: %w", b.Kind(id), id, c, ErrDanglingChild)
				}
				if seen[c] {
					return fmt.Errorf("%s %d: %w", cn.Kind, c, ErrSharedNode)
				}
				seen[c] = true
				cn.Parent = id
				stack = append(stack, c)
			}
		}
	}
	for i := 1; i < len(seen); i++ {
		if !seen[i] {
			return fmt.Errorf("%s %d: %w", nodes[i-1].Kind, i, ErrOrphanNode)
		}
	}
	return nil
}

// Inspect traverses the subtree of root in pre-order. Returning false from
// fn skips the children of the current node.
func (b *Builder) Inspect(root NodeID, fn func(id NodeID) bool) {
	if b.Node(root) == nil {
		return
	}
	stack := []NodeID{root}
	var children []NodeID
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(id) {
			continue
		}
		children = b.AppendChildren(children[:0], id)
		// в обратном порядке, чтобы первый ребёнок был снят первым
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// Walk visits every node under roots in declaration order.
func (b *Builder) Walk(roots []NodeID, fn func(id NodeID)) {
	for _, root := range roots {
		b.Inspect(root, func(id NodeID) bool {
			fn(id)
			return true
		})
	}
}

// Enclosing returns the nearest proper ancestor of id whose kind is one of
// kinds, or NoNodeID.
func (b *Builder) Enclosing(id NodeID, kinds ...Kind) NodeID {
	for cur := b.Parent(id); cur.IsValid(); cur = b.Parent(cur) {
		k := b.Kind(cur)
		for _, want := range kinds {
			if k == want {
				return cur
			}
		}
	}
	return NoNodeID
}

// EnclosingUntil is Enclosing that gives up once an ancestor of a stop kind
// is reached.
func (b *Builder) EnclosingUntil(id NodeID, stop []Kind, kinds ...Kind) NodeID {
	for cur := b.Parent(id); cur.IsValid(); cur = b.Parent(cur) {
		k := b.Kind(cur)
		for _, want := range kinds {
			if k == want {
				return cur
			}
		}
		for _, s := range stop {
			if k == s {
				return NoNodeID
			}
		}
	}
	return NoNodeID
}

// IsAncestor reports whether anc is a proper ancestor of id.
func (b *Builder) IsAncestor(anc, id NodeID) bool {
	for cur := b.Parent(id); cur.IsValid(); cur = b.Parent(cur) {
		if cur == anc {
			return true
		}
	}
	return false
}

// Depth returns the number of ancestors of id.
func (b *Builder) Depth(id NodeID) int {
	depth := 0
	for cur := b.Parent(id); cur.IsValid(); cur = b.Parent(cur) {
		depth++
	}
	return depth
}

// Ancestors returns the proper ancestors of id, nearest first.
func (b *Builder) Ancestors(id NodeID) []NodeID {
	var out []NodeID
	for cur := b.Parent(id); cur.IsValid(); cur = b.Parent(cur) {
		out = append(out, cur)
	}
	return out
}
