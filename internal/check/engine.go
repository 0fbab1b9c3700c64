package check

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"gradelint/internal/model"
	"gradelint/internal/problem"
	"gradelint/internal/trace"
)

// State of an engine.
type State uint8

const (
	StateIdle State = iota
	StateRegistered
	StateRunning
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRegistered:
		return "registered"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Engine runs a fixed set of checks over a model:
//
//	Idle → Registered → Running → Completed
//
// Checks can be added in Idle and Registered. Run is allowed from
// Registered and Completed, so a finished engine can run again.
type Engine struct {
	mu     sync.Mutex
	state  State
	opts   Options
	defs   []*Def
	byName map[string]*Def
	kinds  kindOwners
}

// NewEngine returns an idle engine.
func NewEngine(opts Options) *Engine {
	return &Engine{
		opts:   opts,
		byName: make(map[string]*Def),
		kinds:  make(kindOwners),
	}
}

// NewFromRegistry returns an engine with every registered check.
func NewFromRegistry(opts Options) (*Engine, error) {
	e := NewEngine(opts)
	for _, d := range All() {
		if err := e.Register(d); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// State returns the current engine state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Register adds a check. Registration errors are programmer errors and
// are reported eagerly.
func (e *Engine) Register(def Def) error {
	if err := def.validate(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateIdle && e.state != StateRegistered {
		return fmt.Errorf("%w: register in %s", ErrInvalidState, e.state)
	}
	if _, ok := e.byName[def.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCheck, def.Name)
	}
	if err := e.kinds.claim(&def); err != nil {
		return err
	}
	d := def
	d.Kinds = slices.Clone(def.Kinds)
	e.defs = append(e.defs, &d)
	e.byName[d.Name] = &d
	e.state = StateRegistered
	return nil
}

// Checks returns the registered checks in registration order.
func (e *Engine) Checks() []Def {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Def, len(e.defs))
	for i, d := range e.defs {
		out[i] = *d
	}
	return out
}

// slot is the private output of one check invocation.
type slot struct {
	problems []problem.Problem
	fault    *problem.EngineError
	start    time.Time
	dur      time.Duration
}

// Run invokes every enabled check exactly once against m. Checks run in
// parallel; their findings are merged in registration order. A check
// fault becomes an EngineError and the run continues. If ctx is
// canceled the run is abandoned: Run returns the context error, no
// result, and the engine goes back to its previous state.
func (e *Engine) Run(ctx context.Context, m *model.Model) (*Result, error) {
	e.mu.Lock()
	prev := e.state
	if prev != StateRegistered && prev != StateCompleted {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: run in %s", ErrInvalidState, prev)
	}
	if err := e.opts.validate(func(name string) bool { _, ok := e.byName[name]; return ok }); err != nil {
		e.mu.Unlock()
		return nil, err
	}
	e.state = StateRunning
	defs := make([]*Def, 0, len(e.defs))
	for _, d := range e.defs {
		if !e.opts.disabled(d.Name) {
			defs = append(defs, d)
		}
	}
	e.mu.Unlock()

	res, err := e.run(ctx, m, defs)

	e.mu.Lock()
	if err != nil {
		e.state = prev
	} else {
		e.state = StateCompleted
	}
	e.mu.Unlock()
	return res, err
}

func (e *Engine) run(ctx context.Context, m *model.Model, defs []*Def) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracer := trace.FromContext(ctx)
	runID := uuid.New()
	runSpan := trace.Begin(tracer, trace.ScopeRun, "run", trace.Parent(ctx)).
		WithExtra("run_id", runID.String()).
		WithExtra("checks", strconv.Itoa(len(defs)))

	sh := newShared(m, e.opts.FoldMaxDepth, tracer, runSpan.ID())
	slots := make([]slot, len(defs))
	for _, d := range defs {
		e.emit(Event{Check: d.Name, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.jobs(len(defs)))
	for i, d := range defs {
		g.Go(func() error {
			// Проверка отмены
			if err := gctx.Err(); err != nil {
				return err
			}
			e.emit(Event{Check: d.Name, Status: StatusRunning})
			// индекс i уникален для горутины, мьютекс не нужен
			slots[i] = e.invoke(gctx, sh, d, runSpan.ID())
			e.emit(slots[i].event(d.Name))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		runSpan.End("canceled")
		return nil, err
	}
	// чек мог завершиться, но запуск всё равно отменён; частичный результат не отдаём
	if err := ctx.Err(); err != nil {
		runSpan.End("canceled")
		return nil, err
	}

	res := &Result{RunID: runID}
	// сначала общие запросы (index, fold), затем чеки в порядке регистрации
	timer := sh.timer
	for i, d := range defs {
		s := &slots[i]
		res.Problems = append(res.Problems, s.problems...)
		if s.fault != nil {
			res.EngineErrors = append(res.EngineErrors, *s.fault)
		}
		note := strconv.Itoa(len(s.problems)) + " problems"
		if s.fault != nil {
			note = "fault"
		}
		timer.Record("check:"+d.Name, s.start, s.dur, note)
	}
	res.Timings = timer.Report()
	runSpan.End(fmt.Sprintf("%d problems, %d engine errors", len(res.Problems), len(res.EngineErrors)))
	return res, nil
}

// invoke runs one check with its own capped, deduplicating collector and
// converts panics and returned errors into an EngineError. Problems
// reported before a fault are kept.
func (e *Engine) invoke(ctx context.Context, sh *shared, d *Def, parent uint64) (s slot) {
	s.start = time.Now()
	span := trace.Begin(sh.tracer, trace.ScopeCheck, "check:"+d.Name, parent)

	bag := problem.NewBag(e.opts.capFor(d))
	p := &Pass{
		ctx:      ctx,
		def:      d,
		shared:   sh,
		reporter: problem.NewDedupReporter(problem.BagReporter{Bag: bag}),
		settings: e.opts.Settings[d.Name],
	}
	if sev, ok := e.opts.Severity[d.Name]; ok {
		p.severity = &sev
	}

	defer func() {
		if r := recover(); r != nil {
			s.fault = faultFromPanic(d.Name, r)
			trace.Point(sh.tracer, trace.ScopeCheck, "fault:"+d.Name, s.fault.Message, span.ID())
		}
		s.problems = append([]problem.Problem(nil), bag.Items()...)
		s.dur = time.Since(s.start)
		span.WithExtra("problems", strconv.Itoa(len(s.problems))).End("")
	}()

	if err := d.Run(p); err != nil {
		s.fault = &problem.EngineError{Check: d.Name, Message: err.Error()}
		trace.Point(sh.tracer, trace.ScopeCheck, "fault:"+d.Name, err.Error(), span.ID())
	}
	return s
}

func (e *Engine) emit(ev Event) {
	if e.opts.Progress != nil {
		e.opts.Progress.OnEvent(ev)
	}
}

func (s *slot) event(name string) Event {
	ev := Event{Check: name, Status: StatusDone, Problems: len(s.problems), Elapsed: s.dur}
	if s.fault != nil {
		ev.Status = StatusFailed
		ev.Err = s.fault
	}
	return ev
}

func faultFromPanic(check string, r any) *problem.EngineError {
	if f, ok := r.(fault); ok {
		return &problem.EngineError{Check: check, Message: f.msg}
	}
	return &problem.EngineError{Check: check, Message: fmt.Sprint(r), Panic: true}
}
