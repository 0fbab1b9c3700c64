package uses

import (
	"slices"

	"gradelint/internal/ast"
)

// Predicate filters uses by kind and structural context.
type Predicate func(ix *Index, u Use) bool

func IsRead(_ *Index, u Use) bool    { return u.Kind == Read }
func IsWrite(_ *Index, u Use) bool   { return u.Kind == Write }
func IsDeclare(_ *Index, u Use) bool { return u.Kind == Declare }

// InsideConstructor holds when a constructor or initializer encloses the use.
func InsideConstructor(ix *Index, u Use) bool {
	return ix.EnclosingConstructor(u.Node).IsValid()
}

// OutsideConstructor holds when no constructor or initializer encloses the use.
func OutsideConstructor(ix *Index, u Use) bool {
	return !InsideConstructor(ix, u)
}

// InsideLoop holds when a loop that repeats the use lies between the use
// and its enclosing body.
func InsideLoop(ix *Index, u Use) bool {
	loop, _ := ix.control(u.Node, ix.EnclosingBody(u.Node))
	return loop
}

// InsideBranch holds when the use is evaluated only conditionally within
// its enclosing body.
func InsideBranch(ix *Index, u Use) bool {
	_, branch := ix.control(u.Node, ix.EnclosingBody(u.Node))
	return branch
}

// And matches when every predicate matches.
func And(preds ...Predicate) Predicate {
	return func(ix *Index, u Use) bool {
		for _, p := range preds {
			if !p(ix, u) {
				return false
			}
		}
		return true
	}
}

// Or matches when some predicate matches.
func Or(preds ...Predicate) Predicate {
	return func(ix *Index, u Use) bool {
		for _, p := range preds {
			if p(ix, u) {
				return true
			}
		}
		return false
	}
}

func Not(p Predicate) Predicate {
	return func(ix *Index, u Use) bool { return !p(ix, u) }
}

// Any matches every use.
func Any(*Index, Use) bool { return true }

// control walks from node up to stop (exclusive) and reports whether a
// loop repeats node or a branch makes it conditional.
func (ix *Index) control(node, stop ast.NodeID) (loop, branch bool) {
	tree := ix.m.Tree
	child := node
	for cur := tree.Parent(node); cur.IsValid() && cur != stop; child, cur = cur, tree.Parent(cur) {
		switch tree.Kind(cur) {
		case ast.KindLoop:
			d, ok := tree.Stmts.Loop(cur)
			if !ok {
				continue
			}
			// инициализатор for и итерируемое выражение выполняются один раз
			if child == d.Iterable || slices.Contains(d.Init, child) {
				continue
			}
			loop = true
		case ast.KindIf:
			if d, ok := tree.Stmts.If(cur); ok && child != d.Cond {
				branch = true
			}
		case ast.KindSwitch:
			if d, ok := tree.Stmts.Switch(cur); ok && child != d.Selector {
				branch = true
			}
		case ast.KindTry:
			if d, ok := tree.Stmts.Try(cur); ok && child != d.Finally {
				branch = true
			}
		case ast.KindCond:
			if d, ok := tree.Exprs.Cond(cur); ok && child != d.Cond {
				branch = true
			}
		case ast.KindBinary:
			if d, ok := tree.Exprs.Binary(cur); ok && d.Op.IsLogical() && child == d.Right {
				branch = true
			}
		}
	}
	return loop, branch
}
