// Package check runs analysis checks over a resolved model.
//
// A check is a Def: a name, the problem kinds it may report, a problem cap
// and a Run function. Checks register either with the process-wide
// registry (from init) or directly with an Engine. An engine runs every
// enabled check exactly once per Run, in parallel, and merges their
// problems in registration order so the output does not depend on
// scheduling.
//
// Each check sees a Pass. The pass gives read-only access to the model and
// to analyses shared by all checks of the run (the use index and the
// constant evaluator), built lazily on first request. Findings go through
// Pass.Report; a check that panics or returns an error is recorded as an
// EngineError without affecting the other checks.
package check
