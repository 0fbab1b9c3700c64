package problem

import (
	"strings"
)

// FormatGolden renders findings into a stable, single-line-per-entry
// representation suitable for golden files and the short CLI format:
//
//	warning GEN1001 src/Main.java:3:5 field-should-be-final name=count
//	error compiler.err.cant.resolve src/Main.java:7:1 cannot find symbol
//
// Lines follow the Findings order; the result has no trailing newline.
func FormatGolden(r *Report) string {
	if r == nil {
		return ""
	}
	findings := r.Findings()
	lines := make([]string, 0, len(findings))
	for _, f := range findings {
		lines = append(lines, goldenLine(f))
	}
	return strings.Join(lines, "\n")
}

func goldenLine(f Finding) string {
	var b strings.Builder
	if d := f.Diagnostic; d != nil {
		b.WriteString("error ")
		b.WriteString(codeOrDefault(d.Code))
		b.WriteByte(' ')
		b.WriteString(f.Position.String())
		b.WriteByte(' ')
		b.WriteString(sanitizeMessage(d.Message))
		return b.String()
	}
	p := f.Problem
	b.WriteString(p.Severity().Label())
	b.WriteByte(' ')
	b.WriteString(p.Kind().ID())
	b.WriteByte(' ')
	b.WriteString(f.Position.String())
	b.WriteByte(' ')
	b.WriteString(string(p.Key()))
	for _, name := range p.ArgNames() {
		v, _ := p.Arg(name)
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(sanitizeMessage(v))
	}
	return b.String()
}

func codeOrDefault(code string) string {
	if code == "" {
		return "compiler"
	}
	return code
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
