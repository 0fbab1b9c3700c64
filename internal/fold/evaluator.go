package fold

import (
	"fmt"
	"sync"

	"gradelint/internal/ast"
	"gradelint/internal/model"
	"gradelint/internal/symbols"
	"gradelint/internal/trace"
	"gradelint/internal/uses"
)

// DefaultMaxDepth bounds nested evaluation of one expression.
const DefaultMaxDepth = 256

// Options tune an Evaluator.
type Options struct {
	MaxDepth int          // 0 means DefaultMaxDepth
	Tracer   trace.Tracer // per-node debug events; nil disables
}

// Evaluator folds expressions of one model to compile-time values.
// Results are memoized per node; Fold is safe for concurrent use.
type Evaluator struct {
	m        *model.Model
	ix       *uses.Index
	maxDepth int
	rules    []rule
	tracer   trace.Tracer

	mu   sync.RWMutex
	memo map[ast.NodeID]memoEntry
}

type memoEntry struct {
	v  Value
	ok bool
}

// state is scratch for a single top-level Fold call.
type state struct {
	visiting map[symbols.SymbolID]bool
	depth    int
	scratch  map[ast.NodeID]Value
}

// New returns an evaluator with default options.
func New(m *model.Model, ix *uses.Index) *Evaluator {
	return NewWithOptions(m, ix, Options{})
}

// NewWithOptions returns an evaluator over m, reading variable
// initializers through ix (built from the same model).
func NewWithOptions(m *model.Model, ix *uses.Index, opts Options) *Evaluator {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	return &Evaluator{
		m:        m,
		ix:       ix,
		maxDepth: opts.MaxDepth,
		rules:    defaultRules(),
		tracer:   opts.Tracer,
		memo:     make(map[ast.NodeID]memoEntry),
	}
}

// Fold returns the compile-time value of id. ok is false when the
// expression is not a constant: a non-final variable, a call, integer
// division by zero, a cycle, or nesting beyond MaxDepth.
func (ev *Evaluator) Fold(id ast.NodeID) (Value, bool) {
	ev.mu.RLock()
	e, hit := ev.memo[id]
	ev.mu.RUnlock()
	if hit {
		return e.v, e.ok
	}

	st := &state{
		visiting: make(map[symbols.SymbolID]bool),
		scratch:  make(map[ast.NodeID]Value),
	}
	v, ok := ev.eval(st, id)

	ev.mu.Lock()
	ev.memo[id] = memoEntry{v: v, ok: ok}
	ev.mu.Unlock()
	return v, ok
}

// IsConstant reports whether id folds.
func (ev *Evaluator) IsConstant(id ast.NodeID) bool {
	_, ok := ev.Fold(id)
	return ok
}

// FoldString folds id and returns its text when it is a String constant.
func (ev *Evaluator) FoldString(id ast.NodeID) (string, bool) {
	v, ok := ev.Fold(id)
	if !ok || v.Kind() != KindString {
		return "", false
	}
	return v.AsString(), true
}

// Rules lists rule names in application order.
func (ev *Evaluator) Rules() []string {
	names := make([]string, len(ev.rules))
	for i, r := range ev.rules {
		names[i] = r.name
	}
	return names
}

// MaxDepth reports the configured nesting bound.
func (ev *Evaluator) MaxDepth() int { return ev.maxDepth }

// eval applies the first rule that recognizes id. A stuck rule ends the
// search: later rules never see a node an earlier one claimed.
func (ev *Evaluator) eval(st *state, id ast.NodeID) (Value, bool) {
	if !id.IsValid() {
		return Value{}, false
	}
	if v, ok := st.scratch[id]; ok {
		return v, true
	}
	if st.depth >= ev.maxDepth {
		ev.debug("depth", id, fmt.Sprintf("nesting exceeds %d", ev.maxDepth))
		return Value{}, false
	}
	st.depth++
	defer func() { st.depth-- }()

	for _, r := range ev.rules {
		v, out := r.apply(ev, st, id)
		switch out {
		case skip:
			continue
		case reduced:
			// неудача всплывает наверх, так что кэшировать можно только успех
			st.scratch[id] = v
			return v, true
		default:
			ev.debug(r.name, id, "stuck")
			return Value{}, false
		}
	}
	ev.debug("none", id, ev.m.Tree.Kind(id).String())
	return Value{}, false
}

func (ev *Evaluator) debug(rule string, id ast.NodeID, msg string) {
	if !ev.tracer.Enabled() || !ev.tracer.Level().ShouldEmit(trace.ScopeNode) {
		return
	}
	trace.Point(ev.tracer, trace.ScopeNode, "fold:"+rule, fmt.Sprintf("node %d: %s", id, msg), 0)
}
