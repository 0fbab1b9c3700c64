package check

import (
	"strconv"
	"sync"
	"time"

	"gradelint/internal/ast"
	"gradelint/internal/fold"
	"gradelint/internal/model"
	"gradelint/internal/observ"
	"gradelint/internal/trace"
	"gradelint/internal/uses"
)

// shared holds the per-run analyses every check may use. Each is built
// at most once, on first request, and is read-only afterwards.
type shared struct {
	m         *model.Model
	foldDepth int
	tracer    trace.Tracer
	parent    uint64
	timer     *observ.Timer

	indexOnce sync.Once
	index     *uses.Index

	evalOnce sync.Once
	eval     *fold.Evaluator

	tableOnce sync.Once
	order     []ast.NodeID
	byKind    map[ast.Kind][]ast.NodeID
}

func newShared(m *model.Model, foldDepth int, tracer trace.Tracer, parent uint64) *shared {
	return &shared{
		m:         m,
		foldDepth: foldDepth,
		tracer:    tracer,
		parent:    parent,
		timer:     observ.NewTimer(),
	}
}

func (sh *shared) query(name string, build func() string) {
	span := trace.Begin(sh.tracer, trace.ScopeQuery, name, sh.parent)
	start := time.Now()
	note := build()
	sh.timer.Record(name, start, time.Since(start), note)
	span.End(note)
}

func (sh *shared) Index() *uses.Index {
	sh.indexOnce.Do(func() {
		sh.query("query:uses", func() string {
			sh.index = uses.Build(sh.m)
			return strconv.Itoa(len(sh.index.Symbols())) + " symbols"
		})
	})
	return sh.index
}

func (sh *shared) Eval() *fold.Evaluator {
	sh.evalOnce.Do(func() {
		ix := sh.Index()
		sh.query("query:fold", func() string {
			sh.eval = fold.NewWithOptions(sh.m, ix, fold.Options{
				MaxDepth: sh.foldDepth,
				Tracer:   sh.tracer,
			})
			return ""
		})
	})
	return sh.eval
}

// table returns the nodes of the model in pre-order, overall and per kind.
func (sh *shared) table() ([]ast.NodeID, map[ast.Kind][]ast.NodeID) {
	sh.tableOnce.Do(func() {
		sh.query("query:visit-table", func() string {
			sh.byKind = make(map[ast.Kind][]ast.NodeID)
			sh.m.Walk(func(id ast.NodeID) {
				sh.order = append(sh.order, id)
				k := sh.m.Tree.Kind(id)
				sh.byKind[k] = append(sh.byKind[k], id)
			})
			return strconv.Itoa(len(sh.order)) + " nodes"
		})
	})
	return sh.order, sh.byKind
}
