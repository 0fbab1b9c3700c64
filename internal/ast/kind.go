package ast

import "fmt"

// Kind is the closed set of node kinds. Every switch over Kind in this
// package is exhaustive; adding a kind means visiting each of them.
type Kind uint8

const (
	KindInvalid Kind = iota

	// declarations
	KindFile
	KindType
	KindField
	KindMethod
	KindConstructor
	KindInitializer
	KindParam
	KindLocal

	// statements
	KindBlock
	KindExprStmt
	KindReturn
	KindIf
	KindLoop
	KindThrow
	KindSwitch
	KindCase
	KindTry
	KindCatch

	// expressions
	KindLiteral
	KindName
	KindThis
	KindTypeRef
	KindAssign
	KindUnary
	KindBinary
	KindCall
	KindNew
	KindNewArray
	KindIndex
	KindCond
	KindCast

	kindCount
)

var kindNames = [...]string{
	KindInvalid:     "Invalid",
	KindFile:        "File",
	KindType:        "Type",
	KindField:       "Field",
	KindMethod:      "Method",
	KindConstructor: "Constructor",
	KindInitializer: "Initializer",
	KindParam:       "Param",
	KindLocal:       "Local",
	KindBlock:       "Block",
	KindExprStmt:    "ExprStmt",
	KindReturn:      "Return",
	KindIf:          "If",
	KindLoop:        "Loop",
	KindThrow:       "Throw",
	KindSwitch:      "Switch",
	KindCase:        "Case",
	KindTry:         "Try",
	KindCatch:       "Catch",
	KindLiteral:     "Literal",
	KindName:        "Name",
	KindThis:        "This",
	KindTypeRef:     "TypeRef",
	KindAssign:      "Assign",
	KindUnary:       "Unary",
	KindBinary:      "Binary",
	KindCall:        "Call",
	KindNew:         "New",
	KindNewArray:    "NewArray",
	KindIndex:       "Index",
	KindCond:        "Cond",
	KindCast:        "Cast",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind resolves a kind by its name.
func ParseKind(s string) (Kind, bool) {
	for k := KindFile; k < kindCount; k++ {
		if kindNames[k] == s {
			return k, true
		}
	}
	return KindInvalid, false
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindFile; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) IsDecl() bool { return k >= KindFile && k <= KindLocal }
func (k Kind) IsStmt() bool { return k >= KindBlock && k <= KindCatch }
func (k Kind) IsExpr() bool { return k >= KindLiteral && k < kindCount }

// IsBody reports whether the kind is a method-like body owner.
func (k Kind) IsBody() bool {
	return k == KindMethod || k == KindConstructor || k == KindInitializer
}
