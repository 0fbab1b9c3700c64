package testkit

import (
	"fmt"

	"gradelint/internal/ast"
	"gradelint/internal/model"
)

// CheckTreeInvariants runs a minimal set of structural invariants on a model:
// 1) every root is a File node without a parent
// 2) every child links back to its parent
// 3) every child span lies inside the parent span (same file)
// 4) sibling spans start in non-decreasing order
func CheckTreeInvariants(m *model.Model) error {
	if m == nil || m.Tree == nil {
		return fmt.Errorf("nil model")
	}
	tree := m.Tree
	var firstErr error
	for _, root := range m.Roots {
		if k := tree.Kind(root); k != ast.KindFile {
			return fmt.Errorf("root %d is %s, want File", root, k)
		}
		if tree.Parent(root).IsValid() {
			return fmt.Errorf("root %d has parent %d", root, tree.Parent(root))
		}
		tree.Inspect(root, func(id ast.NodeID) bool {
			if firstErr != nil {
				return false
			}
			firstErr = checkChildren(tree, id)
			return firstErr == nil
		})
		if firstErr != nil {
			return firstErr
		}
	}
	return nil
}

func checkChildren(tree *ast.Builder, id ast.NodeID) error {
	parentSpan := tree.Span(id)
	var prev ast.NodeID
	for _, child := range tree.Children(id) {
		if got := tree.Parent(child); got != id {
			return fmt.Errorf("%s %d: parent link %d, want %d", tree.Kind(child), child, got, id)
		}
		sp := tree.Span(child)
		if !sp.IsValid() || !parentSpan.IsValid() {
			continue
		}
		// child inside parent
		if !parentSpan.Contains(sp) {
			return fmt.Errorf("%s %d span %v is outside %s %d span %v", tree.Kind(child), child, sp, tree.Kind(id), id, parentSpan)
		}
		if prev.IsValid() && sp.Start.Less(tree.Span(prev).Start) {
			return fmt.Errorf("%s %d at %v precedes its previous sibling at %v", tree.Kind(child), child, sp, tree.Span(prev))
		}
		prev = child
	}
	return nil
}
