package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"gradelint/internal/ast"
	"gradelint/internal/diagfmt"
	"gradelint/internal/snapshot"
	"gradelint/internal/testkit"
)

// writeSnapshot stores a submission with one field that is only assigned in
// the constructor.
func writeSnapshot(t *testing.T, dir string) string {
	t.Helper()
	f := testkit.NewFixture("Main.java")
	x, xs := f.Field(ast.ModPrivate, "int", "x", ast.NoNodeID)
	ctor := f.Ctor(ast.ModPublic, nil, f.Set(f.ThisRef(xs), f.Int(1)))
	m := f.Finish(t, f.Class(ast.ModPublic, "Main", x, ctor))

	path := filepath.Join(dir, "submission.snap")
	if err := snapshot.WriteFile(path, m); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return path
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
}

// execute runs the root command with args and returns stdout and stderr.
// Commands are package globals, so flags are reset before every run.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd.PersistentFlags())
	for _, c := range []*cobra.Command{checkCmd, checksCmd, versionCmd} {
		resetFlags(c.Flags())
	}
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCheckCommandShort(t *testing.T) {
	dir := t.TempDir()
	snap := writeSnapshot(t, dir)
	cfg := writeFile(t, filepath.Join(dir, "gradelint.toml"), "")

	out, _, err := execute(t, "check", "--config", cfg, "--format", "short", "--ui", "off", snap)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "warning GEN1001 Main.java:") {
		t.Fatalf("missing field problem:\n%s", out)
	}
}

func TestCheckCommandErrorSeverityExitsWithOne(t *testing.T) {
	dir := t.TempDir()
	snap := writeSnapshot(t, dir)
	cfg := writeFile(t, filepath.Join(dir, "gradelint.toml"), "[checks.FieldShouldBeFinal]\nseverity = \"error\"\n")

	out, _, err := execute(t, "check", "--config", cfg, "--format", "pretty", "--color", "off", snap)
	var exit exitError
	if !errors.As(err, &exit) || exit.code != 1 {
		t.Fatalf("want exit status 1, got %v", err)
	}
	if !strings.Contains(out, "error GEN1001") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestCheckCommandDisable(t *testing.T) {
	dir := t.TempDir()
	snap := writeSnapshot(t, dir)
	cfg := writeFile(t, filepath.Join(dir, "gradelint.toml"), "")

	out, _, err := execute(t, "check", "--config", cfg, "--format", "short", "--disable", "FieldShouldBeFinal", snap)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if strings.Contains(out, "GEN1001") {
		t.Fatalf("disabled check reported:\n%s", out)
	}

	_, _, err = execute(t, "check", "--config", cfg, "--disable", "NoSuchCheck", snap)
	if err == nil || !strings.Contains(err.Error(), "NoSuchCheck") {
		t.Fatalf("want unknown check error, got %v", err)
	}
}

func TestCheckCommandJSON(t *testing.T) {
	dir := t.TempDir()
	snap := writeSnapshot(t, dir)
	cfg := writeFile(t, filepath.Join(dir, "gradelint.toml"), "")
	diags := writeFile(t, filepath.Join(dir, "javac.json"), `[{"path":"Main.java","line":3,"column":1,"message":"';' expected","code":"compiler.err.expected"}]`)
	tests := writeFile(t, filepath.Join(dir, "tests.json"), `{"passed":2}`)

	out, _, err := execute(t, "check", "--config", cfg, "--format", "json", "--timings",
		"--compiler-diags", diags, "--section", "tests="+tests, snap)
	var exit exitError
	if !errors.As(err, &exit) || exit.code != 1 {
		t.Fatalf("compiler diagnostics must fail the run, got %v", err)
	}

	var report diagfmt.ReportOutput
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if report.RunID == "" || report.Timings == nil {
		t.Fatalf("run id or timings missing: %+v", report)
	}
	if len(report.Diagnostics) != 1 || report.Diagnostics[0].Code != "compiler.err.expected" {
		t.Fatalf("diagnostics = %+v", report.Diagnostics)
	}
	if len(report.Sections) != 1 || report.Sections[0].Name != "tests" {
		t.Fatalf("sections = %+v", report.Sections)
	}
	found := false
	for _, p := range report.Problems {
		found = found || p.ID == "GEN1001"
	}
	if !found {
		t.Fatalf("field problem missing: %+v", report.Problems)
	}
}

func TestCheckCommandRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, filepath.Join(dir, "gradelint.toml"), "")
	garbage := writeFile(t, filepath.Join(dir, "bad.snap"), "not a snapshot")

	if _, _, err := execute(t, "check", "--config", cfg, garbage); err == nil {
		t.Fatal("corrupt snapshot accepted")
	}
	if _, _, err := execute(t, "check", "--config", cfg, "--format", "sarif", garbage); err == nil {
		t.Fatal("unknown format accepted")
	}
	if _, _, err := execute(t, "check", "--config", cfg, "--max-problems", "-2", garbage); err == nil {
		t.Fatal("negative cap accepted")
	}
}

func TestReadSections(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "cpd.txt"), "no duplicates")

	sections, err := readSections([]string{"cpd=" + path})
	if err != nil {
		t.Fatalf("readSections: %v", err)
	}
	if len(sections) != 1 || sections[0].Name != "cpd" || string(sections[0].Payload) != "no duplicates" {
		t.Fatalf("sections = %+v", sections)
	}

	bad := [][]string{
		{"cpd"},
		{"=" + path},
		{"cpd="},
		{"cpd=" + path, "cpd=" + path},
		{"cpd=" + filepath.Join(dir, "missing")},
	}
	for _, args := range bad {
		if _, err := readSections(args); err == nil {
			t.Errorf("readSections(%q) should fail", args)
		}
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("always"); err == nil {
		t.Error("invalid mode accepted")
	}
	if shouldUseTUI(uiModeAuto, &bytes.Buffer{}) {
		t.Error("auto mode must not use the UI for a buffer")
	}
}

func TestCheckCommandRingTraceDump(t *testing.T) {
	dir := t.TempDir()
	snap := writeSnapshot(t, dir)
	cfg := writeFile(t, filepath.Join(dir, "gradelint.toml"), "")
	out := filepath.Join(dir, "run.ndjson")

	if _, _, err := execute(t, "check", "--config", cfg, "--format", "short",
		"--trace", out, "--trace-mode", "ring", "--trace-level", "phase", snap); err != nil {
		t.Fatalf("check: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("trace is not ndjson: %v\n%s", err, data)
	}
	if first["name"] != "run" || first["kind"] != "begin" {
		t.Fatalf("first event = %v", first)
	}
}
