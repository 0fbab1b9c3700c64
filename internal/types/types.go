package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// IsValid reports whether the id refers to an interned type.
func (id TypeID) IsValid() bool { return id != NoTypeID }

// Kind enumerates the static type families the front-end reports.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindBoolean
	KindByte
	KindShort
	KindChar
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindNull
	KindClass
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindBoolean:
		return "boolean"
	case KindByte:
		return "byte"
	case KindShort:
		return "short"
	case KindChar:
		return "char"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindNull:
		return "null"
	case KindClass:
		return "class"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// ParseKind maps a primitive keyword (or "class"/"array") to its Kind.
func ParseKind(s string) (Kind, bool) {
	for k := KindVoid; k <= KindArray; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return KindInvalid, false
}

// IsPrimitive reports whether values of the kind are unboxed primitives.
func (k Kind) IsPrimitive() bool {
	return k >= KindBoolean && k <= KindDouble
}

// IsNumeric reports whether the kind takes part in numeric promotion.
// char is numeric in that sense.
func (k Kind) IsNumeric() bool {
	return k >= KindByte && k <= KindDouble
}

// IsIntegral reports whether the kind is an integral primitive (char included).
func (k Kind) IsIntegral() bool {
	return k >= KindByte && k <= KindLong
}

// IsFloating reports whether the kind is float or double.
func (k Kind) IsFloating() bool {
	return k == KindFloat || k == KindDouble
}

// Type is a compact descriptor for a static type. Generic arguments are
// erased: java.util.List<String> is Named("java.util.List").
type Type struct {
	Kind Kind
	Name string // qualified name for classes
	Elem TypeID // element type for arrays
}

// Well-known qualified names.
const (
	NameString = "java.lang.String"
	NameObject = "java.lang.Object"
)
