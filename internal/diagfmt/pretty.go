package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"gradelint/internal/problem"
	"gradelint/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	loc, gutter     *color.Color
	marker, note    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		loc:    color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		marker: color.New(color.FgGreen, color.Bold),
		note:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.loc, p.gutter, p.marker, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s problem.Severity) *color.Color {
	switch s {
	case problem.SevError:
		return p.err
	case problem.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

type prettyWriter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
	pal  palette
	err  error
}

func (pw *prettyWriter) printf(format string, args ...any) {
	if pw.err != nil {
		return
	}
	_, pw.err = fmt.Fprintf(pw.w, format, args...)
}

// Pretty renders a report for humans. For every finding it prints
//
//	<path>:<line>:<col>: <severity> <ID> <title> [<check>]
//
// followed by the code around the position with ^~~~ under the span when
// the file content is known, and the message key with its arguments.
// Engine errors and a summary line close the output.
func Pretty(w io.Writer, r *problem.Report, fs *source.FileSet, opts PrettyOpts) error {
	if r == nil {
		return nil
	}
	pw := &prettyWriter{w: w, fs: fs, opts: opts, pal: newPalette(opts.Color)}
	for _, f := range r.Findings() {
		if f.Diagnostic != nil {
			pw.diagnostic(f)
		} else {
			pw.problem(f)
		}
	}
	for _, e := range r.EngineErrors {
		pw.printf("%s %s\n", pw.pal.err.Sprint("engine error:"), e.Error())
	}
	pw.summary(r)
	return pw.err
}

func (pw *prettyWriter) location(pos problem.CodePosition) string {
	return pw.pal.loc.Sprintf("%s:%d:%d:", formatPath(pw.fs, pos.Path, pw.opts.PathMode), pos.StartLine, pos.StartColumn)
}

func (pw *prettyWriter) problem(f problem.Finding) {
	p := f.Problem
	sev := pw.pal.severity(p.Severity())
	pw.printf("%s %s %s %s", pw.location(f.Position), sev.Sprint(p.Severity().Label()), p.Kind().ID(), p.Kind().Title())
	if p.Check() != "" {
		pw.printf(" %s", pw.pal.note.Sprintf("[%s]", p.Check()))
	}
	pw.printf("\n")
	pw.preview(f.Position)
	if pw.opts.ShowArgs {
		pw.printf("  %s %s", pw.pal.gutter.Sprint("="), p.Key())
		for _, name := range p.ArgNames() {
			v, _ := p.Arg(name)
			pw.printf(" %s=%s", name, strconv.Quote(v))
		}
		pw.printf("\n")
	}
}

func (pw *prettyWriter) diagnostic(f problem.Finding) {
	d := f.Diagnostic
	code := d.Code
	if code == "" {
		code = "compiler"
	}
	pw.printf("%s %s %s %s\n", pw.location(f.Position), pw.pal.err.Sprint("error"), code, d.Message)
	pw.preview(f.Position)
}

func (pw *prettyWriter) preview(pos problem.CodePosition) {
	if !pw.opts.ShowPreview {
		return
	}
	pv, ok := buildPreview(pw.fs, pos, pw.opts.Context)
	if !ok {
		return
	}
	width := len(strconv.FormatUint(uint64(pv.lines[len(pv.lines)-1].num), 10))
	blank := strings.Repeat(" ", width)
	pw.printf("%s %s\n", blank, pw.pal.gutter.Sprint("|"))
	for i, line := range pv.lines {
		pw.printf("%s %s %s\n", pw.pal.gutter.Sprintf("%*d", width, line.num), pw.pal.gutter.Sprint("|"), expandTabs(line.text))
		if i == pv.focus {
			pw.printf("%s %s %s%s\n", blank, pw.pal.gutter.Sprint("|"), strings.Repeat(" ", pv.pad), pw.pal.marker.Sprint(caret(pv.marker)))
		}
	}
}

func (pw *prettyWriter) summary(r *problem.Report) {
	var errs, warns, infos int
	for _, p := range r.Problems {
		switch p.Severity() {
		case problem.SevError:
			errs++
		case problem.SevWarning:
			warns++
		default:
			infos++
		}
	}
	if len(r.Problems) == 0 && len(r.Diagnostics) == 0 && len(r.EngineErrors) == 0 {
		pw.printf("no problems\n")
		return
	}
	parts := []string{plural(len(r.Problems), "problem")}
	if len(r.Problems) > 0 {
		parts[0] += fmt.Sprintf(" (%d error, %d warning, %d info)", errs, warns, infos)
	}
	if len(r.Diagnostics) > 0 {
		parts = append(parts, plural(len(r.Diagnostics), "compiler diagnostic"))
	}
	if len(r.EngineErrors) > 0 {
		parts = append(parts, plural(len(r.EngineErrors), "engine error"))
	}
	pw.printf("%s\n", strings.Join(parts, ", "))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// formatPath applies mode to a report path. Paths of files unknown to fs are
// formatted as they are.
func formatPath(fs *source.FileSet, path string, mode PathMode) string {
	base := ""
	if fs != nil {
		if f, ok := fs.GetByPath(path); ok {
			return f.FormatPath(mode.String(), fs.BaseDir())
		}
		base = fs.BaseDir()
	}
	f := source.File{Path: path}
	return f.FormatPath(mode.String(), base)
}
