package symbols

import (
	"errors"
	"fmt"

	"gradelint/internal/ast"
)

// Validate checks the table against the tree it was built for. Returns nil
// if everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate(tree *ast.Builder) error {
	var errs []error

	for _, id := range t.Symbols.IDs() {
		sym := t.Symbols.Get(id)
		if sym.Kind == SymbolInvalid {
			errs = append(errs, fmt.Errorf("symbol %d has invalid kind", id))
			continue
		}
		if !sym.Decl.IsValid() {
			// синтезированные символы без объявления допустимы
			if !sym.IsImplicit() {
				errs = append(errs, fmt.Errorf("symbol %d (%s) has no declaration", id, t.Name(id)))
			}
			continue
		}
		if got, want := tree.Kind(sym.Decl), sym.Kind.DeclKind(); got != want {
			errs = append(errs, fmt.Errorf("symbol %d (%s) declared by %s node, want %s", id, t.Name(id), got, want))
		}
		if t.decls[sym.Decl] != id {
			errs = append(errs, fmt.Errorf("symbol %d declaration %d missing backlink", id, sym.Decl))
		}
		if sym.Owner.IsValid() && !tree.IsAncestor(sym.Owner, sym.Decl) {
			errs = append(errs, fmt.Errorf("symbol %d owner %d does not enclose its declaration", id, sym.Owner))
		}
	}

	for _, b := range t.Bindings() {
		if t.Symbols.Get(b.Symbol) == nil {
			errs = append(errs, fmt.Errorf("node %d bound to unknown symbol %d", b.Node, b.Symbol))
			continue
		}
		if k := tree.Kind(b.Node); k != ast.KindName {
			errs = append(errs, fmt.Errorf("node %d bound to symbol %d is %s, want Name", b.Node, b.Symbol, k))
		}
	}

	return errors.Join(errs...)
}
