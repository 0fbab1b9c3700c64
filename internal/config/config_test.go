package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gradelint/internal/check"
	_ "gradelint/internal/checks/all"
	"gradelint/internal/config"
	"gradelint/internal/problem"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

const sampleTOML = `
[engine]
jobs = 4
fold_max_depth = 64

[checks.FieldShouldBeFinal]
enabled = true
max_problems = 2
severity = "error"

[checks.ReassignedParameter]
enabled = false

[checks.CollectionAddAll.options]
min_calls = 4
`

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gradelint.toml")
	writeFile(t, path, sampleTOML)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Engine.Jobs != 4 || cfg.Engine.FoldMaxDepth != 64 {
		t.Fatalf("engine = %+v", cfg.Engine)
	}
	opts, err := cfg.EngineOptions()
	if err != nil {
		t.Fatalf("engine options: %v", err)
	}
	if opts.Jobs != 4 || opts.FoldMaxDepth != 64 {
		t.Fatalf("options = %+v", opts)
	}
	if got := opts.Caps["FieldShouldBeFinal"]; got != 2 {
		t.Fatalf("cap = %d, want 2", got)
	}
	if got := opts.Severity["FieldShouldBeFinal"]; got != problem.SevError {
		t.Fatalf("severity = %v", got)
	}
	if len(opts.Disabled) != 1 || opts.Disabled[0] != "ReassignedParameter" {
		t.Fatalf("disabled = %v", opts.Disabled)
	}
	if got := opts.Settings["CollectionAddAll"]["min_calls"]; got != int64(4) {
		t.Fatalf("min_calls = %#v", got)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gradelint.yaml")
	writeFile(t, path, `
engine:
  jobs: 2
checks:
  ListGetter:
    max_problems: -1
  CollectionAddAll:
    options:
      min_calls: 5
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	opts, err := cfg.EngineOptions()
	if err != nil {
		t.Fatalf("engine options: %v", err)
	}
	if opts.Jobs != 2 {
		t.Fatalf("jobs = %d", opts.Jobs)
	}
	if got := opts.Caps["ListGetter"]; got != check.Unlimited {
		t.Fatalf("cap = %d, want unlimited", got)
	}
	if got := opts.Settings["CollectionAddAll"]["min_calls"]; got != 5 {
		t.Fatalf("min_calls = %#v", got)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name, file, content, want string
	}{
		{"unknown toml key", "gradelint.toml", "[engine]\nthreads = 3\n", "unknown keys: engine.threads"},
		{"unknown yaml key", "gradelint.yml", "engine:\n  threads: 3\n", "field threads not found"},
		{"zero cap", "gradelint.toml", "[checks.ListGetter]\nmax_problems = 0\n", "max_problems must be positive"},
		{"bad severity", "gradelint.toml", "[checks.ListGetter]\nseverity = \"loud\"\n", "checks.ListGetter.severity"},
		{"negative jobs", "gradelint.toml", "[engine]\njobs = -1\n", "engine.jobs"},
		{"broken toml", "gradelint.toml", "[engine\n", "failed to parse TOML"},
		{"unknown format", "gradelint.json", "{}", "unknown file format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)
			_, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestUnknownCheckName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gradelint.toml")
	writeFile(t, path, "[checks.NoSuchCheck]\nenabled = false\n")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := cfg.EngineOptions(); !errors.Is(err, config.ErrUnknownCheck) {
		t.Fatalf("err = %v, want ErrUnknownCheck", err)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := config.Find(nested); err != nil || ok {
		t.Skipf("config found above temp dir: ok=%v err=%v", ok, err)
	}

	writeFile(t, filepath.Join(root, "a", "gradelint.yml"), "engine:\n  jobs: 1\n")
	writeFile(t, filepath.Join(root, "a", "gradelint.toml"), "[engine]\njobs = 3\n")
	path, ok, err := config.Find(nested)
	if err != nil || !ok {
		t.Fatalf("find: ok=%v err=%v", ok, err)
	}
	if want := filepath.Join(root, "a", "gradelint.toml"); path != want {
		t.Fatalf("path = %s, want %s", path, want)
	}

	cfg, err := config.Discover(nested)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if cfg.Engine.Jobs != 3 {
		t.Fatalf("jobs = %d, want 3", cfg.Engine.Jobs)
	}
}

func TestDefault(t *testing.T) {
	opts, err := config.Default().EngineOptions()
	if err != nil {
		t.Fatalf("engine options: %v", err)
	}
	if opts.Jobs != 0 || opts.Disabled != nil || opts.Caps != nil {
		t.Fatalf("default options = %+v", opts)
	}
}
