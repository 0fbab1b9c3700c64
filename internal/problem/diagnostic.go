package problem

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// NoPos marks a compiler diagnostic without a line.
const NoPos = -1

// CompilerDiagnostic is a message produced by the Java compiler for the
// submission. It is carried next to problems, never converted into one.
type CompilerDiagnostic struct {
	Path    string `json:"path" msgpack:"path"`
	Line    int    `json:"line" msgpack:"line"`
	Column  int    `json:"column" msgpack:"column"`
	Message string `json:"message" msgpack:"message"`
	Code    string `json:"code" msgpack:"code"`
}

// Position is a point range at (line, column).
func (d CompilerDiagnostic) Position() CodePosition {
	line := clampPos(d.Line)
	col := clampPos(d.Column)
	return CodePosition{
		Path:        normalizePath(d.Path),
		StartLine:   line,
		EndLine:     line,
		StartColumn: col,
		EndColumn:   col,
	}
}

func clampPos(v int) uint32 {
	if v <= 0 {
		return 0
	}
	return uint32(v) //nolint:gosec // positive, line numbers fit
}

// String renders "path:line message", without the line when unknown.
func (d CompilerDiagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Path)
	if d.Line != NoPos {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(d.Line))
	}
	b.WriteByte(' ')
	b.WriteString(d.Message)
	return b.String()
}

// FormatCompilerDiagnostics joins diagnostics one per line.
func FormatCompilerDiagnostics(diags []CompilerDiagnostic) string {
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

// ErrBadDiagnostics is returned for input that is not a diagnostic list.
var ErrBadDiagnostics = errors.New("invalid compiler diagnostics")

// ReadCompilerDiagnostics decodes a JSON array of diagnostics, as written
// by the compile step of the grading pipeline.
func ReadCompilerDiagnostics(r io.Reader) ([]CompilerDiagnostic, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var out []CompilerDiagnostic
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDiagnostics, err)
	}
	for i, d := range out {
		if d.Path == "" {
			return nil, fmt.Errorf("%w: entry %d has no path", ErrBadDiagnostics, i)
		}
	}
	return out, nil
}
