package ast

// AssignOp is the operator of an assignment expression.
type AssignOp uint8

const (
	AssignPlain AssignOp = iota // =
	AssignAdd                   // +=
	AssignSub                   // -=
	AssignMul                   // *=
	AssignDiv                   // /=
	AssignRem                   // %=
	AssignAnd                   // &=
	AssignOr                    // |=
	AssignXor                   // ^=
	AssignShl                   // <<=
	AssignShr                   // >>=
	AssignUShr                  // >>>=
)

var assignOpText = [...]string{"=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<=", ">>=", ">>>="}

func (op AssignOp) String() string {
	if int(op) < len(assignOpText) {
		return assignOpText[op]
	}
	return "?="
}

// IsCompound reports whether the assignment also reads its target.
func (op AssignOp) IsCompound() bool { return op != AssignPlain }

// Binary returns the binary operator a compound assignment applies.
func (op AssignOp) Binary() (BinaryOp, bool) {
	switch op {
	case AssignAdd:
		return BinAdd, true
	case AssignSub:
		return BinSub, true
	case AssignMul:
		return BinMul, true
	case AssignDiv:
		return BinDiv, true
	case AssignRem:
		return BinRem, true
	case AssignAnd:
		return BinAnd, true
	case AssignOr:
		return BinOr, true
	case AssignXor:
		return BinXor, true
	case AssignShl:
		return BinShl, true
	case AssignShr:
		return BinShr, true
	case AssignUShr:
		return BinUShr, true
	default:
		return 0, false
	}
}

// UnaryOp is the operator of a unary expression.
type UnaryOp uint8

const (
	UnaryPlus    UnaryOp = iota // +x
	UnaryNeg                    // -x
	UnaryNot                    // !x
	UnaryBitNot                 // ~x
	UnaryPreInc                 // ++x
	UnaryPreDec                 // --x
	UnaryPostInc                // x++
	UnaryPostDec                // x--
)

var unaryOpText = [...]string{"+", "-", "!", "~", "++", "--", "++", "--"}

func (op UnaryOp) String() string {
	if int(op) < len(unaryOpText) {
		return unaryOpText[op]
	}
	return "?"
}

// IsIncDec reports whether the operator writes its operand.
func (op UnaryOp) IsIncDec() bool { return op >= UnaryPreInc }

// IsPostfix reports whether the operator is written after the operand.
func (op UnaryOp) IsPostfix() bool { return op == UnaryPostInc || op == UnaryPostDec }

// BinaryOp is the operator of a binary expression.
type BinaryOp uint8

const (
	BinAdd    BinaryOp = iota // +
	BinSub                    // -
	BinMul                    // *
	BinDiv                    // /
	BinRem                    // %
	BinShl                    // <<
	BinShr                    // >>
	BinUShr                   // >>>
	BinLt                     // <
	BinLe                     // <=
	BinGt                     // >
	BinGe                     // >=
	BinEq                     // ==
	BinNe                     // !=
	BinAnd                    // &
	BinOr                     // |
	BinXor                    // ^
	BinLogAnd                 // &&
	BinLogOr                  // ||
)

var binaryOpText = [...]string{"+", "-", "*", "/", "%", "<<", ">>", ">>>", "<", "<=", ">", ">=", "==", "!=", "&", "|", "^", "&&", "||"}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsComparison reports relational and equality operators.
func (op BinaryOp) IsComparison() bool { return op >= BinLt && op <= BinNe }

// IsShift reports shift operators.
func (op BinaryOp) IsShift() bool { return op >= BinShl && op <= BinUShr }

// IsLogical reports the short-circuit operators.
func (op BinaryOp) IsLogical() bool { return op == BinLogAnd || op == BinLogOr }

// IsBitwise reports &, | and ^.
func (op BinaryOp) IsBitwise() bool { return op >= BinAnd && op <= BinXor }

func parseOp[T ~uint8](table []string, s string) (T, bool) {
	for i, text := range table {
		if text == s {
			return T(i), true //nolint:gosec // tables are short
		}
	}
	return 0, false
}

// ParseAssignOp resolves the operator spelling.
func ParseAssignOp(s string) (AssignOp, bool) { return parseOp[AssignOp](assignOpText[:], s) }

// ParseBinaryOp resolves the operator spelling.
func ParseBinaryOp(s string) (BinaryOp, bool) { return parseOp[BinaryOp](binaryOpText[:], s) }
