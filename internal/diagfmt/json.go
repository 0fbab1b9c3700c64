package diagfmt

import (
	"encoding/json"
	"io"

	"gradelint/internal/observ"
	"gradelint/internal/problem"
	"gradelint/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// ProblemJSON представляет находку проверки в JSON формате
type ProblemJSON struct {
	ID       string       `json:"id"`
	Kind     string       `json:"kind"`
	Severity string       `json:"severity"`
	Check    string       `json:"check,omitempty"`
	Key      string       `json:"key"`
	Args     problem.Args `json:"args,omitempty"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON представляет диагностику компилятора
type DiagnosticJSON struct {
	Code     string       `json:"code,omitempty"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// SectionJSON carries an external section. Payloads that are valid JSON are
// embedded as is, anything else is emitted as a string.
type SectionJSON struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// ReportOutput представляет корневую структуру JSON вывода
type ReportOutput struct {
	RunID        string                `json:"run_id,omitempty"`
	Problems     []ProblemJSON         `json:"problems"`
	Diagnostics  []DiagnosticJSON      `json:"diagnostics,omitempty"`
	EngineErrors []problem.EngineError `json:"engine_errors,omitempty"`
	Sections     []SectionJSON         `json:"sections,omitempty"`
	Timings      *observ.Report        `json:"timings,omitempty"`
	Count        int                   `json:"count"`
}

func makeLocation(pos problem.CodePosition, fs *source.FileSet, mode PathMode) LocationJSON {
	return LocationJSON{
		File:      formatPath(fs, pos.Path, mode),
		StartLine: pos.StartLine,
		StartCol:  pos.StartColumn,
		EndLine:   pos.EndLine,
		EndCol:    pos.EndColumn,
	}
}

// BuildReportOutput формирует структуру JSON-вывода без сериализации.
// Max limits problems only; diagnostics and engine errors are never cut.
func BuildReportOutput(r *problem.Report, fs *source.FileSet, opts JSONOpts) (ReportOutput, error) {
	out := ReportOutput{
		RunID:        opts.RunID,
		Problems:     []ProblemJSON{},
		EngineErrors: r.EngineErrors,
		Timings:      opts.Timings,
	}

	items := r.Problems
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	for _, p := range items {
		out.Problems = append(out.Problems, ProblemJSON{
			ID:       p.Kind().ID(),
			Kind:     p.Kind().Name(),
			Severity: p.Severity().Label(),
			Check:    p.Check(),
			Key:      string(p.Key()),
			Args:     p.Args(),
			Location: makeLocation(p.Position(), fs, opts.PathMode),
		})
	}
	for _, d := range r.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
			Code:     d.Code,
			Message:  d.Message,
			Location: makeLocation(d.Position(), fs, opts.PathMode),
		})
	}
	for _, s := range r.Sections {
		payload := json.RawMessage(s.Payload)
		if !json.Valid(s.Payload) {
			raw, err := json.Marshal(string(s.Payload))
			if err != nil {
				return ReportOutput{}, err
			}
			payload = raw
		}
		out.Sections = append(out.Sections, SectionJSON{Name: s.Name, Payload: payload})
	}
	out.Count = len(out.Problems)
	return out, nil
}

// JSON форматирует отчёт в JSON формат.
func JSON(w io.Writer, r *problem.Report, fs *source.FileSet, opts JSONOpts) error {
	output, err := BuildReportOutput(r, fs, opts)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// Short writes the golden one-line-per-finding form, followed by one line
// per engine error.
func Short(w io.Writer, r *problem.Report) error {
	if r == nil {
		return nil
	}
	if out := problem.FormatGolden(r); out != "" {
		if _, err := io.WriteString(w, out+"\n"); err != nil {
			return err
		}
	}
	for _, e := range r.EngineErrors {
		if _, err := io.WriteString(w, "engine-error "+e.Check+" "+e.Message+"\n"); err != nil {
			return err
		}
	}
	return nil
}
