package diagfmt

import (
	"fmt"
	"strings"

	"gradelint/internal/observ"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// Format selects one of the report renderers.
type Format string

const (
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
	FormatShort  Format = "short"
)

// ParseFormat accepts pretty, json and short in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPretty, FormatJSON, FormatShort:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (expected: pretty|json|short)", s)
}

// PrettyOpts configures pretty-printing of reports.
type PrettyOpts struct {
	Color       bool
	Context     int8 // строки кода вокруг находки
	PathMode    PathMode
	ShowPreview bool
	ShowArgs    bool
}

// JSONOpts configures JSON output of reports.
type JSONOpts struct {
	PathMode PathMode
	Max      int // обрезка вывода, не Bag
	RunID    string
	Timings  *observ.Report
}
