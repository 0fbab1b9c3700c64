package ast

import (
	"strings"

	"gradelint/internal/source"
	"gradelint/internal/types"
)

// NodeFlags carry per-node metadata.
type NodeFlags uint8

const (
	// FlagImplicit marks nodes synthesized by the front-end (default
	// constructors, implicit field defaults, implicit this).
	FlagImplicit NodeFlags = 1 << iota
)

// Node is the kind-agnostic header; kind-specific data lives in a payload arena.
type Node struct {
	Kind    Kind
	Flags   NodeFlags
	Span    source.Span
	Parent  NodeID // заполняется Builder.Link
	Type    types.TypeID
	Payload PayloadID
}

// Implicit reports whether the node was synthesized.
func (n *Node) Implicit() bool {
	return n != nil && n.Flags&FlagImplicit != 0
}

// Modifiers is the modifier set of a declaration.
type Modifiers uint8

const (
	ModPublic Modifiers = 1 << iota
	ModProtected
	ModPrivate
	ModStatic
	ModFinal
	ModAbstract
)

func (m Modifiers) Has(flag Modifiers) bool { return m&flag != 0 }

var modifierNames = []struct {
	mod  Modifiers
	name string
}{
	{ModPublic, "public"},
	{ModProtected, "protected"},
	{ModPrivate, "private"},
	{ModAbstract, "abstract"},
	{ModStatic, "static"},
	{ModFinal, "final"},
}

// String renders modifiers in canonical source order.
func (m Modifiers) String() string {
	parts := make([]string, 0, 3)
	for _, mn := range modifierNames {
		if m.Has(mn.mod) {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, " ")
}

// ParseModifiers is the inverse of String; unknown words are reported.
func ParseModifiers(s string) (Modifiers, bool) {
	var m Modifiers
	for _, word := range strings.Fields(s) {
		found := false
		for _, mn := range modifierNames {
			if mn.name == word {
				m |= mn.mod
				found = true
				break
			}
		}
		if !found {
			return 0, false
		}
	}
	return m, true
}
