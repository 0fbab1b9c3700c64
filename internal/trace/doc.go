// Package trace records what an analysis run is doing.
//
// Runs are traced as nested spans: the run itself, each check executing
// inside it, and the shared queries (use index, constant folding) that
// checks lean on. Tracing helps find slow checks and runs that hang.
//
// # Usage
//
//	gradelint check --trace=- --trace-level=phase model.snap
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: writes every event immediately (file/stderr)
//   - RingTracer: keeps the last N events for post-mortem dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only crash dumps
//   - LevelPhase: run and check boundaries
//   - LevelDetail: shared query events
//   - LevelDebug: everything including per-node fold decisions
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeCheck, "check:"+name, parentID)
//	defer span.End("")
package trace
