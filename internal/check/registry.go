package check

import (
	"fmt"
	"slices"
	"sync"
)

// Process-wide registry. Check packages add their definitions from init;
// after start-up it is only read.
var registry = struct {
	sync.RWMutex
	defs   []*Def
	byName map[string]*Def
	kinds  kindOwners
}{
	byName: make(map[string]*Def),
	kinds:  make(kindOwners),
}

// Register adds def to the process-wide registry.
func Register(def Def) error {
	if err := def.validate(); err != nil {
		return err
	}
	registry.Lock()
	defer registry.Unlock()
	if _, ok := registry.byName[def.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCheck, def.Name)
	}
	if err := registry.kinds.claim(&def); err != nil {
		return err
	}
	d := def
	d.Kinds = slices.Clone(def.Kinds)
	registry.defs = append(registry.defs, &d)
	registry.byName[d.Name] = &d
	return nil
}

// MustRegister is Register for init functions.
func MustRegister(def Def) {
	if err := Register(def); err != nil {
		panic(err)
	}
}

// All returns registered checks in registration order.
func All() []Def {
	registry.RLock()
	defer registry.RUnlock()
	out := make([]Def, len(registry.defs))
	for i, d := range registry.defs {
		out[i] = *d
	}
	return out
}

// ByName returns the registered check called name.
func ByName(name string) (Def, bool) {
	registry.RLock()
	defer registry.RUnlock()
	d, ok := registry.byName[name]
	if !ok {
		return Def{}, false
	}
	return *d, true
}

// ByGroup returns registered checks of group in registration order.
func ByGroup(group string) []Def {
	registry.RLock()
	defer registry.RUnlock()
	var out []Def
	for _, d := range registry.defs {
		if d.Group == group {
			out = append(out, *d)
		}
	}
	return out
}
