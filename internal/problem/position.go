package problem

import (
	"cmp"
	"fmt"
	"path/filepath"
	"strings"

	"gradelint/internal/source"
)

// CodePosition is a resolved, file-relative range. Lines and columns are
// 1-based; zero means unknown.
type CodePosition struct {
	Path        string `json:"path" msgpack:"path"`
	StartLine   uint32 `json:"start_line" msgpack:"start_line"`
	EndLine     uint32 `json:"end_line" msgpack:"end_line"`
	StartColumn uint32 `json:"start_column" msgpack:"start_column"`
	EndColumn   uint32 `json:"end_column" msgpack:"end_column"`
}

// IsValid reports whether the position names a file line.
func (p CodePosition) IsValid() bool {
	return p.Path != "" && p.StartLine > 0
}

// Compare orders positions by path, start line, start column, then end.
func (p CodePosition) Compare(other CodePosition) int {
	return cmp.Or(
		cmp.Compare(p.Path, other.Path),
		cmp.Compare(p.StartLine, other.StartLine),
		cmp.Compare(p.StartColumn, other.StartColumn),
		cmp.Compare(p.EndLine, other.EndLine),
		cmp.Compare(p.EndColumn, other.EndColumn),
	)
}

// String renders path:line:col.
func (p CodePosition) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Path, p.StartLine, p.StartColumn)
}

// PositionOf resolves span against fs. Absolute paths are reported
// relative to the file set base directory when one is set.
func PositionOf(fs *source.FileSet, span source.Span) CodePosition {
	if fs == nil || !span.IsValid() {
		return CodePosition{}
	}
	f := fs.Get(span.File)
	if f == nil {
		return CodePosition{}
	}
	path := f.Path
	if fs.BaseDir() != "" && filepath.IsAbs(path) {
		path = f.FormatPath("relative", fs.BaseDir())
	}
	return CodePosition{
		Path:        normalizePath(path),
		StartLine:   span.Start.Line,
		EndLine:     span.End.Line,
		StartColumn: span.Start.Col,
		EndColumn:   span.End.Col,
	}
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}
