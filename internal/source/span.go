package source

import (
	"fmt"
)

// Span is a line/column range inside one file. Front-ends hand positions
// over already resolved, so the span does not keep byte offsets.
type Span struct {
	File  FileID
	Start LineCol // включительно
	End   LineCol // включительно для последней колонки
}

// At returns a point span.
func At(file FileID, line, col uint32) Span {
	lc := LineCol{Line: line, Col: col}
	return Span{File: file, Start: lc, End: lc}
}

// IsValid reports whether the span carries a real position.
func (s Span) IsValid() bool {
	return s.Start.IsValid()
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d:%d-%d:%d", s.File, s.Start.Line, s.Start.Col, s.End.Line, s.End.Col)
}

// Cover returns the smallest span that contains both spans.
// Spans from different files are not merged.
func (s Span) Cover(other Span) Span {
	if !s.IsValid() {
		return other
	}
	if s.File != other.File || !other.IsValid() {
		return s
	}
	if other.Start.Less(s.Start) {
		s.Start = other.Start
	}
	if s.End.Less(other.End) {
		s.End = other.End
	}
	return s
}

// Contains reports whether other lies fully inside s.
func (s Span) Contains(other Span) bool {
	if s.File != other.File || !s.IsValid() || !other.IsValid() {
		return false
	}
	return !other.Start.Less(s.Start) && !s.End.Less(other.End)
}

// Before orders spans by file, start and end.
func (s Span) Before(other Span) bool {
	if s.File != other.File {
		return s.File < other.File
	}
	if s.Start != other.Start {
		return s.Start.Less(other.Start)
	}
	return s.End.Less(other.End)
}
