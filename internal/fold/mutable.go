package fold

import (
	"slices"
	"strings"

	"gradelint/internal/ast"
)

// immutableFactories maps a static owner to methods whose result cannot
// be modified through the returned reference. A trailing * matches any
// suffix (Collections.unmodifiableList, emptyMap, singletonList ...).
var immutableFactories = map[string][]string{
	"java.util.List":        {"of", "copyOf"},
	"java.util.Set":         {"of", "copyOf"},
	"java.util.Map":         {"of", "ofEntries", "entry", "copyOf"},
	"java.util.Collections": {"unmodifiable*", "empty*", "singleton*"},
}

// immutableInstanceMethods maps a receiver type to methods returning a
// fresh unmodifiable value.
var immutableInstanceMethods = map[string][]string{
	"java.util.stream.Stream": {"toList"},
}

// IsStructurallyMutable reports whether the value of id can be a
// collection or array that callers may modify. Constants and plain
// reads are not; array creation, constructor calls and calls other than
// known unmodifiable factories are. Malformed nodes count as mutable.
func (ev *Evaluator) IsStructurallyMutable(id ast.NodeID) bool {
	tree := ev.m.Tree
	switch tree.Kind(id) {
	case ast.KindNewArray, ast.KindNew:
		return true
	case ast.KindCall:
		call, ok := tree.Exprs.Call(id)
		return !ok || !ev.isImmutableFactory(call)
	case ast.KindCond:
		c, ok := tree.Exprs.Cond(id)
		return !ok || ev.IsStructurallyMutable(c.Then) || ev.IsStructurallyMutable(c.Else)
	case ast.KindCast:
		c, ok := tree.Exprs.Cast(id)
		return !ok || ev.IsStructurallyMutable(c.Operand)
	default:
		return false
	}
}

func (ev *Evaluator) isImmutableFactory(call *ast.CallData) bool {
	name := ev.m.Text(call.Name)
	owner := ev.m.Types.QualifiedName(call.Owner)
	if !call.Static {
		if t := ev.m.TypeOf(call.Target); t.IsValid() {
			owner = ev.m.Types.QualifiedName(t)
		}
		return slices.Contains(immutableInstanceMethods[owner], name)
	}
	for _, pattern := range immutableFactories[owner] {
		if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
			if strings.HasPrefix(name, prefix) {
				return true
			}
		} else if name == pattern {
			return true
		}
	}
	return false
}
