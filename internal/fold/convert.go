package fold

import "math"

// unaryPromote widens byte, short and char to int.
func unaryPromote(k Kind) Kind {
	switch k {
	case KindByte, KindShort, KindChar:
		return KindInt
	default:
		return k
	}
}

// binaryPromote picks the common type of two numeric operands.
func binaryPromote(a, b Kind) Kind {
	switch {
	case a == KindDouble || b == KindDouble:
		return KindDouble
	case a == KindFloat || b == KindFloat:
		return KindFloat
	case a == KindLong || b == KindLong:
		return KindLong
	default:
		return KindInt
	}
}

// Convert applies a casting conversion. Numeric kinds convert among each
// other with narrowing and saturation; booleans and strings only convert
// to themselves.
func (v Value) Convert(to Kind) (Value, bool) {
	if v.kind == to {
		return v, true
	}
	if !v.kind.IsNumeric() || !to.IsNumeric() {
		return Value{}, false
	}
	if v.kind.IsFloating() {
		switch to {
		case KindFloat:
			return Float(float32(v.num)), true
		case KindDouble:
			return Double(v.num), true
		case KindLong:
			return Long(floatToLong(v.num)), true
		default:
			// сначала к int, затем сужение
			return Int(floatToInt(v.num)).Convert(to)
		}
	}
	switch to {
	case KindChar:
		return Char(uint16(v.bits)), true //nolint:gosec // narrowing is the point
	case KindByte:
		return Byte(int8(v.bits)), true //nolint:gosec // narrowing is the point
	case KindShort:
		return Short(int16(v.bits)), true //nolint:gosec // narrowing is the point
	case KindInt:
		return Int(int32(v.bits)), true //nolint:gosec // narrowing is the point
	case KindLong:
		return Long(v.bits), true
	case KindFloat:
		return Float(float32(v.bits)), true
	case KindDouble:
		return Double(float64(v.bits)), true
	}
	return Value{}, false
}

// floatToInt saturates like a Java (int) cast; NaN becomes 0.
func floatToInt(f float64) int32 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	default:
		return int32(f)
	}
}

// floatToLong saturates like a Java (long) cast; NaN becomes 0.
func floatToLong(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= 0x1p63:
		return math.MaxInt64
	case f <= -0x1p63:
		return math.MinInt64
	default:
		return int64(f)
	}
}
