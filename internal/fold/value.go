package fold

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf16"

	"gradelint/internal/types"
)

// Kind is the static type of a folded value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindChar
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindChar:
		return "char"
	case KindByte:
		return "byte"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindString:
		return "String"
	case KindNull:
		return "null"
	default:
		return "invalid"
	}
}

func (k Kind) IsNumeric() bool { return k >= KindChar && k <= KindDouble }
func (k Kind) IsIntegral() bool { return k >= KindChar && k <= KindLong }
func (k Kind) IsFloating() bool { return k == KindFloat || k == KindDouble }

// KindOf maps a static type to a value kind. Only primitives and String
// have one.
func KindOf(in *types.Interner, id types.TypeID) Kind {
	if in.IsString(id) {
		return KindString
	}
	switch in.KindOf(id) {
	case types.KindBoolean:
		return KindBool
	case types.KindChar:
		return KindChar
	case types.KindByte:
		return KindByte
	case types.KindShort:
		return KindShort
	case types.KindInt:
		return KindInt
	case types.KindLong:
		return KindLong
	case types.KindFloat:
		return KindFloat
	case types.KindDouble:
		return KindDouble
	case types.KindNull:
		return KindNull
	default:
		return KindInvalid
	}
}

// Value is a compile-time constant. Integral kinds (and booleans) live in
// bits, sign-extended or zero-extended (char) to 64 bits; floating kinds in
// num, float values always exactly representable as float32.
type Value struct {
	kind Kind
	bits int64
	num  float64
	str  string
}

func Bool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.bits = 1
	}
	return v
}

func Char(c uint16) Value { return Value{kind: KindChar, bits: int64(c)} }
func Byte(b int8) Value { return Value{kind: KindByte, bits: int64(b)} }
func Short(s int16) Value { return Value{kind: KindShort, bits: int64(s)} }
func Int(i int32) Value { return Value{kind: KindInt, bits: int64(i)} }
func Long(l int64) Value { return Value{kind: KindLong, bits: l} }
func Float(f float32) Value { return Value{kind: KindFloat, num: float64(f)} }
func Double(d float64) Value { return Value{kind: KindDouble, num: d} }
func String(s string) Value { return Value{kind: KindString, str: s} }
func Null() Value { return Value{kind: KindNull} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsValid() bool { return v.kind != KindInvalid }
func (v Value) IsNull() bool { return v.kind == KindNull }
func (v Value) AsBool() bool { return v.kind == KindBool && v.bits != 0 }
func (v Value) AsString() string {
	if v.kind == KindString {
		return v.str
	}
	return ""
}

// AsInt64 returns the integral value; floating values are truncated the
// way a cast to long does.
func (v Value) AsInt64() int64 {
	switch {
	case v.kind.IsIntegral():
		return v.bits
	case v.kind.IsFloating():
		return floatToLong(v.num)
	default:
		return 0
	}
}

// AsFloat64 returns the numeric value as a double.
func (v Value) AsFloat64() float64 {
	switch {
	case v.kind.IsFloating():
		return v.num
	case v.kind.IsIntegral():
		return float64(v.bits)
	default:
		return 0
	}
}

// Type returns the static type of the value.
func (v Value) Type(in *types.Interner) types.TypeID {
	bt := in.Builtins()
	switch v.kind {
	case KindBool:
		return bt.Boolean
	case KindChar:
		return bt.Char
	case KindByte:
		return bt.Byte
	case KindShort:
		return bt.Short
	case KindInt:
		return bt.Int
	case KindLong:
		return bt.Long
	case KindFloat:
		return bt.Float
	case KindDouble:
		return bt.Double
	case KindString:
		return bt.String
	case KindNull:
		return bt.Null
	default:
		return types.NoTypeID
	}
}

// String renders the value the way String.valueOf does.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.bits != 0)
	case KindChar:
		return string(utf16.Decode([]uint16{uint16(v.bits)})) //nolint:gosec // char bits are 16-bit
	case KindByte, KindShort, KindInt, KindLong:
		return strconv.FormatInt(v.bits, 10)
	case KindFloat:
		return formatFloating(v.num, 32)
	case KindDouble:
		return formatFloating(v.num, 64)
	case KindString:
		return v.str
	case KindNull:
		return "null"
	default:
		return "<invalid>"
	}
}

// Literal renders the value as source code that evaluates to it.
func (v Value) Literal() string {
	switch v.kind {
	case KindChar:
		return "'" + escape(v.String(), '\'') + "'"
	case KindByte:
		return "(byte) " + strconv.FormatInt(v.bits, 10)
	case KindShort:
		return "(short) " + strconv.FormatInt(v.bits, 10)
	case KindLong:
		return strconv.FormatInt(v.bits, 10) + "L"
	case KindFloat:
		switch {
		case math.IsNaN(v.num):
			return "Float.NaN"
		case math.IsInf(v.num, 1):
			return "Float.POSITIVE_INFINITY"
		case math.IsInf(v.num, -1):
			return "Float.NEGATIVE_INFINITY"
		}
		return formatFloating(v.num, 32) + "f"
	case KindDouble:
		switch {
		case math.IsNaN(v.num):
			return "Double.NaN"
		case math.IsInf(v.num, 1):
			return "Double.POSITIVE_INFINITY"
		case math.IsInf(v.num, -1):
			return "Double.NEGATIVE_INFINITY"
		}
		return formatFloating(v.num, 64)
	case KindString:
		return `"` + escape(v.str, '"') + `"`
	default:
		return v.String()
	}
}

// formatFloating follows Double.toString / Float.toString: plain notation
// for magnitudes in [1e-3, 1e7), computerized scientific notation
// otherwise, always with a fractional part.
func formatFloating(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}
	abs := math.Abs(f)
	if abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(f, 'f', -1, bitSize)
		if !strings.ContainsRune(s, '.') {
			s += ".0"
		}
		return s
	}
	s := strconv.FormatFloat(f, 'e', -1, bitSize)
	mant, exp, _ := strings.Cut(s, "e")
	if !strings.ContainsRune(mant, '.') {
		mant += ".0"
	}
	n, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}
	return mant + "E" + strconv.Itoa(n)
}

// escape quotes s for a Java literal delimited by quote.
func escape(s string, quote rune) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case quote:
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			if r < 0x20 || r == 0x7f {
				b.WriteString(`\u`)
				hex := strconv.FormatInt(int64(r), 16)
				b.WriteString(strings.Repeat("0", 4-len(hex)))
				b.WriteString(hex)
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
