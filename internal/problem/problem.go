package problem

import (
	"maps"
	"slices"

	"gradelint/internal/source"
)

// Key is the localization key of a problem message, e.g.
// "field-should-be-final". Rendering the text is up to the consumer.
type Key string

// Args are named substitutions for a message key. Order is irrelevant.
type Args map[string]string

// Problem is one finding of one check. Values are immutable: the With*
// methods return modified copies and Args returns a copy.
type Problem struct {
	kind     Kind
	pos      CodePosition
	span     source.Span
	key      Key
	args     Args
	severity Severity
	check    string
}

// New creates a problem with the kind's default severity. args is copied.
func New(kind Kind, pos CodePosition, key Key, args Args) Problem {
	return Problem{
		kind:     kind,
		pos:      pos,
		key:      key,
		args:     maps.Clone(args),
		severity: kind.DefaultSeverity(),
	}
}

func (p Problem) Kind() Kind             { return p.kind }
func (p Problem) Position() CodePosition { return p.pos }
func (p Problem) Key() Key               { return p.key }
func (p Problem) Severity() Severity     { return p.severity }

// Check names the check that reported the problem, "" if unknown.
func (p Problem) Check() string { return p.check }

// Span is the model span the position was resolved from, if any.
func (p Problem) Span() source.Span { return p.span }

// Arg returns the named substitution.
func (p Problem) Arg(name string) (string, bool) {
	v, ok := p.args[name]
	return v, ok
}

// Args returns a copy of the substitutions.
func (p Problem) Args() Args {
	return maps.Clone(p.args)
}

// ArgNames lists substitution names in sorted order.
func (p Problem) ArgNames() []string {
	return slices.Sorted(maps.Keys(p.args))
}

func (p Problem) WithSeverity(sev Severity) Problem {
	p.severity = sev
	return p
}

func (p Problem) WithCheck(name string) Problem {
	p.check = name
	return p
}

// WithSpan records the model span behind the position.
func (p Problem) WithSpan(span source.Span) Problem {
	p.span = span
	return p
}

// Same reports whether two problems collide for deduplication:
// equal kind and equal position.
func (p Problem) Same(other Problem) bool {
	return p.kind == other.kind && p.pos == other.pos
}

type dedupKey struct {
	kind Kind
	pos  CodePosition
}

func (p Problem) dedupKey() dedupKey {
	return dedupKey{kind: p.kind, pos: p.pos}
}

// Compare orders problems by position, then kind, then key.
func (p Problem) Compare(other Problem) int {
	if c := p.pos.Compare(other.pos); c != 0 {
		return c
	}
	if p.kind != other.kind {
		if p.kind < other.kind {
			return -1
		}
		return 1
	}
	switch {
	case p.key < other.key:
		return -1
	case p.key > other.key:
		return 1
	}
	return 0
}

// Record is the serialized form of a problem.
type Record struct {
	Kind     string       `json:"kind" msgpack:"kind"`
	ID       string       `json:"id" msgpack:"id"`
	Severity Severity     `json:"severity" msgpack:"severity"`
	Check    string       `json:"check,omitempty" msgpack:"check,omitempty"`
	Key      Key          `json:"key" msgpack:"key"`
	Args     Args         `json:"args,omitempty" msgpack:"args,omitempty"`
	Position CodePosition `json:"position" msgpack:"position"`
}

// Record returns the serialized form of p.
func (p Problem) Record() Record {
	return Record{
		Kind:     p.kind.Name(),
		ID:       p.kind.ID(),
		Severity: p.severity,
		Check:    p.check,
		Key:      p.key,
		Args:     p.Args(),
		Position: p.pos,
	}
}

// FromRecord restores a problem; unknown kind names are an error.
func FromRecord(r Record) (Problem, error) {
	kind, err := ParseKind(r.Kind)
	if err != nil {
		return Problem{}, err
	}
	return New(kind, r.Position, r.Key, r.Args).WithSeverity(r.Severity).WithCheck(r.Check), nil
}
