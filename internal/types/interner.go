package types

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for primitive and core library types.
type Builtins struct {
	Void    TypeID
	Boolean TypeID
	Byte    TypeID
	Short   TypeID
	Char    TypeID
	Int     TypeID
	Long    TypeID
	Float   TypeID
	Double  TypeID
	Null    TypeID
	String  TypeID
	Object  TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Reads are safe while checks run concurrently.
type Interner struct {
	mu       sync.RWMutex
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
}

// NewInterner constructs an interner seeded with built-in types.
func NewInterner() *Interner {
	in := &Interner{
		types: make([]Type, 1, 64), // 0 reserved for NoTypeID
		index: make(map[Type]TypeID, 64),
	}
	in.builtins = Builtins{
		Void:    in.Intern(Type{Kind: KindVoid}),
		Boolean: in.Intern(Type{Kind: KindBoolean}),
		Byte:    in.Intern(Type{Kind: KindByte}),
		Short:   in.Intern(Type{Kind: KindShort}),
		Char:    in.Intern(Type{Kind: KindChar}),
		Int:     in.Intern(Type{Kind: KindInt}),
		Long:    in.Intern(Type{Kind: KindLong}),
		Float:   in.Intern(Type{Kind: KindFloat}),
		Double:  in.Intern(Type{Kind: KindDouble}),
		Null:    in.Intern(Type{Kind: KindNull}),
		String:  in.Intern(Type{Kind: KindClass, Name: NameString}),
		Object:  in.Intern(Type{Kind: KindClass, Name: NameObject}),
	}
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.index[t]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Named interns a class type by its qualified name.
func (in *Interner) Named(qualified string) TypeID {
	return in.Intern(Type{Kind: KindClass, Name: qualified})
}

// ArrayOf interns the array type with the given element.
func (in *Interner) ArrayOf(elem TypeID) TypeID {
	return in.Intern(Type{Kind: KindArray, Elem: elem})
}

// Primitive returns the builtin id for a primitive kind.
func (in *Interner) Primitive(k Kind) TypeID {
	switch k {
	case KindVoid:
		return in.builtins.Void
	case KindBoolean:
		return in.builtins.Boolean
	case KindByte:
		return in.builtins.Byte
	case KindShort:
		return in.builtins.Short
	case KindChar:
		return in.builtins.Char
	case KindInt:
		return in.builtins.Int
	case KindLong:
		return in.builtins.Long
	case KindFloat:
		return in.builtins.Float
	case KindDouble:
		return in.builtins.Double
	case KindNull:
		return in.builtins.Null
	default:
		return NoTypeID
	}
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Snapshot returns a copy of every descriptor indexed by TypeID, with the
// sentinel at index 0.
func (in *Interner) Snapshot() []Type {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return slices.Clone(in.types)
}

// Len reports the number of interned types without the sentinel.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.types) - 1
}

// KindOf returns the kind of id, KindInvalid for unknown ids.
func (in *Interner) KindOf(id TypeID) Kind {
	t, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return t.Kind
}

// IsString reports whether id is java.lang.String.
func (in *Interner) IsString(id TypeID) bool {
	t, ok := in.Lookup(id)
	return ok && t.Kind == KindClass && t.Name == NameString
}

// IsArray reports whether id is an array type.
func (in *Interner) IsArray(id TypeID) bool {
	return in.KindOf(id) == KindArray
}

// QualifiedName returns the qualified class name of id, or "".
func (in *Interner) QualifiedName(id TypeID) string {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindClass {
		return ""
	}
	return t.Name
}

// SimpleName returns the unqualified class name: java.util.List -> List.
func (in *Interner) SimpleName(id TypeID) string {
	name := in.QualifiedName(id)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Format renders a type the way it is written in source.
func (in *Interner) Format(id TypeID) string {
	t, ok := in.Lookup(id)
	if !ok {
		return "<invalid>"
	}
	switch t.Kind {
	case KindClass:
		if t.Name == NameString {
			return "String"
		}
		return t.Name
	case KindArray:
		return in.Format(t.Elem) + "[]"
	default:
		return t.Kind.String()
	}
}
