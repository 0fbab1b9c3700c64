package check

import (
	"fmt"
	"runtime"
	"slices"

	"gradelint/internal/problem"
)

// Settings are the free-form options of one check, as decoded from
// configuration.
type Settings map[string]any

// Options tune one engine. Maps are keyed by check name.
type Options struct {
	Jobs         int                         // parallel checks; <= 0 means GOMAXPROCS
	Disabled     []string                    // checks that do not run
	Caps         map[string]int              // overrides Def.MaxProblems
	Severity     map[string]problem.Severity // overrides the kind default
	FoldMaxDepth int                         // 0 means fold.DefaultMaxDepth
	Settings     map[string]Settings
	Progress     ProgressSink                // may be nil; called from worker goroutines
}

func (o *Options) jobs(checks int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, checks))
}

func (o *Options) disabled(name string) bool {
	return slices.Contains(o.Disabled, name)
}

func (o *Options) capFor(d *Def) int {
	if c, ok := o.Caps[d.Name]; ok {
		return c
	}
	return d.MaxProblems
}

// validate checks that every named check is known and caps are sane.
func (o *Options) validate(known func(string) bool) error {
	for _, name := range o.Disabled {
		if !known(name) {
			return fmt.Errorf("%w: %s (disabled)", ErrUnknownCheck, name)
		}
	}
	for name, c := range o.Caps {
		if !known(name) {
			return fmt.Errorf("%w: %s (cap)", ErrUnknownCheck, name)
		}
		if err := validCap(name, c); err != nil {
			return err
		}
	}
	for name := range o.Severity {
		if !known(name) {
			return fmt.Errorf("%w: %s (severity)", ErrUnknownCheck, name)
		}
	}
	for name := range o.Settings {
		if !known(name) {
			return fmt.Errorf("%w: %s (settings)", ErrUnknownCheck, name)
		}
	}
	return nil
}
