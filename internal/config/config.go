// Package config loads gradelint.toml (or gradelint.yaml) and turns it into
// engine options.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"gradelint/internal/check"
	"gradelint/internal/problem"
)

// Names are the configuration file names looked up in every directory,
// in order of preference.
var Names = []string{"gradelint.toml", "gradelint.yaml", "gradelint.yml"}

// Config is the decoded configuration file.
type Config struct {
	Path   string                 `toml:"-" yaml:"-"`
	Engine Engine                 `toml:"engine" yaml:"engine"`
	Checks map[string]CheckConfig `toml:"checks" yaml:"checks"`
}

// Engine holds run-wide settings.
type Engine struct {
	Jobs         int `toml:"jobs" yaml:"jobs"`
	FoldMaxDepth int `toml:"fold_max_depth" yaml:"fold_max_depth"`
}

// CheckConfig overrides the defaults of one check. Unset fields keep the
// check's own defaults.
type CheckConfig struct {
	Enabled     *bool          `toml:"enabled" yaml:"enabled"`
	MaxProblems *int           `toml:"max_problems" yaml:"max_problems"`
	Severity    string         `toml:"severity" yaml:"severity"`
	Options     map[string]any `toml:"options" yaml:"options"`
}

var (
	// ErrUnknownFormat is returned for files that are neither TOML nor YAML.
	ErrUnknownFormat = errors.New("config: unknown file format")
	// ErrUnknownCheck is returned when the file configures an unregistered check.
	ErrUnknownCheck = errors.New("config: unknown check")
)

// ValidationError aggregates every problem found in one file.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Path)
	b.WriteString(": invalid configuration:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{Checks: map[string]CheckConfig{}}
}

// Find walks up from startDir to locate a configuration file.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range Names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest configuration file above startDir, or the
// default configuration when there is none.
func Discover(startDir string) (*Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes a configuration file; the format follows the extension.
// Unknown keys are errors.
func Load(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		cfg, err = loadTOML(path)
	case ".yaml", ".yml":
		cfg, err = loadYAML(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	if cfg.Checks == nil {
		cfg.Checks = map[string]CheckConfig{}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadTOML(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &ValidationError{Path: path, Issues: []string{"unknown keys: " + strings.Join(keys, ", ")}}
	}
	return &cfg, nil
}

func loadYAML(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
	}
	return &cfg, nil
}

// validate checks values that do not depend on the registered checks.
func (c *Config) validate() error {
	var issues []string
	if c.Engine.Jobs < 0 {
		issues = append(issues, fmt.Sprintf("engine.jobs must not be negative, got %d", c.Engine.Jobs))
	}
	if c.Engine.FoldMaxDepth < 0 {
		issues = append(issues, fmt.Sprintf("engine.fold_max_depth must not be negative, got %d", c.Engine.FoldMaxDepth))
	}
	for _, name := range c.CheckNames() {
		cc := c.Checks[name]
		if cc.MaxProblems != nil && *cc.MaxProblems != check.Unlimited && *cc.MaxProblems <= 0 {
			issues = append(issues, fmt.Sprintf("checks.%s.max_problems must be positive or %d, got %d", name, check.Unlimited, *cc.MaxProblems))
		}
		if cc.Severity != "" {
			if _, err := problem.ParseSeverity(cc.Severity); err != nil {
				issues = append(issues, fmt.Sprintf("checks.%s.severity: %v", name, err))
			}
		}
	}
	if len(issues) > 0 {
		return &ValidationError{Path: c.Path, Issues: issues}
	}
	return nil
}

// CheckNames returns the configured check names, sorted.
func (c *Config) CheckNames() []string {
	names := make([]string, 0, len(c.Checks))
	for name := range c.Checks {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// EngineOptions converts the configuration into engine options. Every
// configured check must be registered.
func (c *Config) EngineOptions() (check.Options, error) {
	opts := check.Options{
		Jobs:         c.Engine.Jobs,
		FoldMaxDepth: c.Engine.FoldMaxDepth,
	}
	for _, name := range c.CheckNames() {
		if _, ok := check.ByName(name); !ok {
			return check.Options{}, fmt.Errorf("%w: %s", ErrUnknownCheck, name)
		}
		cc := c.Checks[name]
		if cc.Enabled != nil && !*cc.Enabled {
			opts.Disabled = append(opts.Disabled, name)
		}
		if cc.MaxProblems != nil {
			if opts.Caps == nil {
				opts.Caps = make(map[string]int)
			}
			opts.Caps[name] = *cc.MaxProblems
		}
		if cc.Severity != "" {
			sev, err := problem.ParseSeverity(cc.Severity)
			if err != nil {
				return check.Options{}, fmt.Errorf("checks.%s.severity: %w", name, err)
			}
			if opts.Severity == nil {
				opts.Severity = make(map[string]problem.Severity)
			}
			opts.Severity[name] = sev
		}
		if len(cc.Options) > 0 {
			if opts.Settings == nil {
				opts.Settings = make(map[string]check.Settings)
			}
			opts.Settings[name] = check.Settings(cc.Options)
		}
	}
	return opts, nil
}
