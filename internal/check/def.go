package check

import (
	"errors"
	"fmt"

	"gradelint/internal/problem"
)

// Unlimited disables the problem cap of a check.
const Unlimited = problem.Unlimited

var (
	// ErrInvalidState is returned for operations the engine state forbids.
	ErrInvalidState = errors.New("check: invalid engine state")
	// ErrZeroCap rejects a problem cap that is neither positive nor Unlimited.
	ErrZeroCap = errors.New("check: problem cap must be positive or unlimited")
	// ErrDuplicateCheck rejects a second check with the same name.
	ErrDuplicateCheck = errors.New("check: duplicate check name")
	// ErrKindConflict rejects a problem kind already owned by another check.
	ErrKindConflict = errors.New("check: problem kind registered by two checks")
	// ErrNoKinds rejects a check that declares no problem kinds.
	ErrNoKinds = errors.New("check: no problem kinds declared")
	// ErrNilRun rejects a check without a Run function.
	ErrNilRun = errors.New("check: nil run function")
	// ErrUnknownCheck is returned when options name a check that is not registered.
	ErrUnknownCheck = errors.New("check: unknown check")
)

// RunFunc is the body of a check. It reports through the pass and
// returns an error only for faults; findings are never errors.
type RunFunc func(p *Pass) error

// Def describes one check.
type Def struct {
	Name        string
	Group       string
	Description string
	Kinds       []problem.Kind
	MaxProblems int // Unlimited or > 0
	Run         RunFunc
}

// Declares reports whether k is one of the kinds of d.
func (d *Def) Declares(k problem.Kind) bool {
	for _, dk := range d.Kinds {
		if dk == k {
			return true
		}
	}
	return false
}

func (d *Def) validate() error {
	if d.Name == "" {
		return errors.New("check: empty check name")
	}
	if d.Run == nil {
		return fmt.Errorf("%w: %s", ErrNilRun, d.Name)
	}
	if len(d.Kinds) == 0 {
		return fmt.Errorf("%w: %s", ErrNoKinds, d.Name)
	}
	for _, k := range d.Kinds {
		if !k.IsValid() {
			return fmt.Errorf("check %s: invalid problem kind %d", d.Name, k)
		}
	}
	return validCap(d.Name, d.MaxProblems)
}

func validCap(name string, c int) error {
	if c == Unlimited || c > 0 {
		return nil
	}
	return fmt.Errorf("%w: %s has cap %d", ErrZeroCap, name, c)
}

// kindOwners tracks which check owns each problem kind.
type kindOwners map[problem.Kind]string

func (o kindOwners) claim(d *Def) error {
	for _, k := range d.Kinds {
		if owner, ok := o[k]; ok && owner != d.Name {
			return fmt.Errorf("%w: %s claimed by %s and %s", ErrKindConflict, k.Name(), owner, d.Name)
		}
	}
	for _, k := range d.Kinds {
		o[k] = d.Name
	}
	return nil
}
