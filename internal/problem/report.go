package problem

import (
	"cmp"
	"fmt"
	"slices"
)

// EngineError records a check that failed instead of finishing: it
// returned an error, panicked, or reported a kind it does not declare.
type EngineError struct {
	Check   string `json:"check" msgpack:"check"`
	Message string `json:"message" msgpack:"message"`
	Panic   bool   `json:"panic,omitempty" msgpack:"panic,omitempty"`
}

func (e EngineError) Error() string {
	if e.Panic {
		return fmt.Sprintf("check %s panicked: %s", e.Check, e.Message)
	}
	return fmt.Sprintf("check %s failed: %s", e.Check, e.Message)
}

// Section is an opaque payload produced outside the analysis core (for
// example a test runner or a code-similarity report). It travels with
// the report unchanged.
type Section struct {
	Name    string `json:"name" msgpack:"name"`
	Payload []byte `json:"payload" msgpack:"payload"`
}

// Report is the final aggregation handed to consumers. Problems,
// compiler diagnostics, engine errors and external sections are kept as
// siblings; none is converted into another.
type Report struct {
	Problems     []Problem            `json:"-" msgpack:"-"`
	Diagnostics  []CompilerDiagnostic `json:"diagnostics,omitempty" msgpack:"diagnostics,omitempty"`
	EngineErrors []EngineError        `json:"engine_errors,omitempty" msgpack:"engine_errors,omitempty"`
	Sections     []Section            `json:"sections,omitempty" msgpack:"sections,omitempty"`
}

// NewReport deduplicates problems on (kind, position), keeping the first,
// and sorts them stably.
func NewReport(problems []Problem, diags []CompilerDiagnostic, errs []EngineError, sections ...Section) *Report {
	bag := NewBag(Unlimited)
	for _, p := range problems {
		bag.Add(p)
	}
	bag.Dedup()
	bag.Sort()
	return &Report{
		Problems:     slices.Clone(bag.Items()),
		Diagnostics:  slices.Clone(diags),
		EngineErrors: slices.Clone(errs),
		Sections:     slices.Clone(sections),
	}
}

// Section returns the payload stored under name.
func (r *Report) Section(name string) ([]byte, bool) {
	for _, s := range r.Sections {
		if s.Name == name {
			return s.Payload, true
		}
	}
	return nil, false
}

// HasErrors reports error-severity problems, compiler diagnostics or
// engine errors.
func (r *Report) HasErrors() bool {
	if len(r.Diagnostics) > 0 || len(r.EngineErrors) > 0 {
		return true
	}
	for _, p := range r.Problems {
		if p.Severity() >= SevError {
			return true
		}
	}
	return false
}

// Finding is either a problem or a compiler diagnostic.
type Finding struct {
	Position   CodePosition
	Problem    *Problem
	Diagnostic *CompilerDiagnostic
}

// Findings merges problems and compiler diagnostics into one list ordered
// by (path, line, column). On equal positions compiler diagnostics come
// first, then problems in their report order.
func (r *Report) Findings() []Finding {
	out := make([]Finding, 0, len(r.Problems)+len(r.Diagnostics))
	for i := range r.Diagnostics {
		d := &r.Diagnostics[i]
		out = append(out, Finding{Position: d.Position(), Diagnostic: d})
	}
	for i := range r.Problems {
		p := &r.Problems[i]
		out = append(out, Finding{Position: p.Position(), Problem: p})
	}
	slices.SortStableFunc(out, func(a, b Finding) int {
		return cmp.Or(
			cmp.Compare(a.Position.Path, b.Position.Path),
			cmp.Compare(a.Position.StartLine, b.Position.StartLine),
			cmp.Compare(a.Position.StartColumn, b.Position.StartColumn),
		)
	})
	return out
}
