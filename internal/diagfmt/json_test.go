package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"gradelint/internal/observ"
	"gradelint/internal/problem"
)

func sampleReport() *problem.Report {
	var ps []problem.Problem
	for i, name := range []string{"a", "b", "c"} {
		pos := problem.CodePosition{Path: "Main.java", StartLine: uint32(i + 1), EndLine: uint32(i + 1), StartColumn: 5, EndColumn: 5}
		ps = append(ps, problem.New(problem.FieldShouldBeFinal, pos, "field-should-be-final", problem.Args{"name": name}).WithCheck("FieldShouldBeFinal"))
	}
	diags := []problem.CompilerDiagnostic{{Path: "Main.java", Line: 9, Column: 2, Message: "';' expected", Code: "compiler.err.expected"}}
	errs := []problem.EngineError{{Check: "ListGetter", Message: "no index"}}
	sections := []problem.Section{
		{Name: "tests", Payload: []byte(`{"passed":3,"failed":0}`)},
		{Name: "cpd", Payload: []byte("not json")},
	}
	return problem.NewReport(ps, diags, errs, sections...)
}

func TestJSONBasic(t *testing.T) {
	timings := &observ.Report{TotalMS: 1.5, Phases: []observ.PhaseReport{{Name: "check:FieldShouldBeFinal", DurationMS: 1.5}}}
	var buf bytes.Buffer
	if err := JSON(&buf, sampleReport(), nil, JSONOpts{RunID: "run-1", Timings: timings}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out ReportOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if out.RunID != "run-1" || out.Count != 3 || len(out.Problems) != 3 {
		t.Fatalf("unexpected header: run=%q count=%d problems=%d", out.RunID, out.Count, len(out.Problems))
	}
	p := out.Problems[0]
	if p.ID != "GEN1001" || p.Kind != "FIELD_SHOULD_BE_FINAL" || p.Severity != "warning" || p.Check != "FieldShouldBeFinal" {
		t.Errorf("unexpected problem: %+v", p)
	}
	if p.Args["name"] != "a" || p.Location.File != "Main.java" || p.Location.StartLine != 1 || p.Location.StartCol != 5 {
		t.Errorf("unexpected problem details: %+v", p)
	}
	if len(out.Diagnostics) != 1 || out.Diagnostics[0].Code != "compiler.err.expected" || out.Diagnostics[0].Location.StartLine != 9 {
		t.Errorf("unexpected diagnostics: %+v", out.Diagnostics)
	}
	if len(out.EngineErrors) != 1 || out.EngineErrors[0].Check != "ListGetter" {
		t.Errorf("unexpected engine errors: %+v", out.EngineErrors)
	}
	if out.Timings == nil || len(out.Timings.Phases) != 1 {
		t.Errorf("timings missing: %+v", out.Timings)
	}
}

func TestJSONSections(t *testing.T) {
	out, err := BuildReportOutput(sampleReport(), nil, JSONOpts{})
	if err != nil {
		t.Fatalf("BuildReportOutput: %v", err)
	}
	if len(out.Sections) != 2 {
		t.Fatalf("want 2 sections, got %d", len(out.Sections))
	}
	var tests struct{ Passed, Failed int }
	if err := json.Unmarshal(out.Sections[0].Payload, &tests); err != nil || tests.Passed != 3 {
		t.Errorf("json section not embedded: %s (%v)", out.Sections[0].Payload, err)
	}
	var text string
	if err := json.Unmarshal(out.Sections[1].Payload, &text); err != nil || text != "not json" {
		t.Errorf("opaque section not quoted: %s (%v)", out.Sections[1].Payload, err)
	}
}

func TestJSONMaxLimit(t *testing.T) {
	out, err := BuildReportOutput(sampleReport(), nil, JSONOpts{Max: 2})
	if err != nil {
		t.Fatalf("BuildReportOutput: %v", err)
	}
	if out.Count != 2 || len(out.Problems) != 2 {
		t.Errorf("want 2 problems, got count=%d len=%d", out.Count, len(out.Problems))
	}
	if len(out.Diagnostics) != 1 || len(out.EngineErrors) != 1 {
		t.Errorf("Max must not cut diagnostics or engine errors")
	}
}

func TestJSONEmptyProblemsIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, problem.NewReport(nil, nil, nil), nil, JSONOpts{}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"problems": []`)) {
		t.Errorf("problems should be an empty array:\n%s", buf.String())
	}
}

func TestShort(t *testing.T) {
	var buf bytes.Buffer
	if err := Short(&buf, sampleReport()); err != nil {
		t.Fatalf("Short: %v", err)
	}
	want := "warning GEN1001 Main.java:1:5 field-should-be-final name=a\n" +
		"warning GEN1001 Main.java:2:5 field-should-be-final name=b\n" +
		"warning GEN1001 Main.java:3:5 field-should-be-final name=c\n" +
		"error compiler.err.expected Main.java:9:2 ';' expected\n" +
		"engine-error ListGetter no index\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"pretty", "JSON", " short "} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("sarif"); err == nil {
		t.Error("sarif should be rejected")
	}
}
