package fold

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"fortio.org/safecast"

	"gradelint/internal/ast"
)

var (
	errMalformedLiteral = errors.New("malformed literal")
	errLiteralRange     = errors.New("literal out of range")
)

// parseLiteral decodes a literal token the way the Java lexer does.
func parseLiteral(kind ast.LitKind, text string) (Value, error) {
	switch kind {
	case ast.LitInt:
		return parseIntegral(text, false, false)
	case ast.LitLong:
		return parseIntegral(text, true, false)
	case ast.LitFloat:
		return parseFloating(text, 32)
	case ast.LitDouble:
		return parseFloating(text, 64)
	case ast.LitChar:
		return parseChar(text)
	case ast.LitString:
		return parseString(text)
	case ast.LitBool:
		switch text {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		}
	case ast.LitNull:
		if text == "null" || text == "" {
			return Null(), nil
		}
	}
	return Value{}, fmt.Errorf("%w: %s %q", errMalformedLiteral, kind, text)
}

// splitIntegral strips underscores and the long suffix and detects the base.
func splitIntegral(text string) (digits string, base int, long bool) {
	s := strings.ReplaceAll(text, "_", "")
	if n := len(s); n > 0 && (s[n-1] == 'l' || s[n-1] == 'L') {
		s = s[:n-1]
		long = true
	}
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "0x"):
		return s[2:], 16, long
	case strings.HasPrefix(lower, "0b"):
		return s[2:], 2, long
	case len(s) > 1 && s[0] == '0':
		return s[1:], 8, long
	default:
		return s, 10, long
	}
}

// parseIntegral decodes an int or long literal. Decimal literals are
// signed ranges, other bases cover the full unsigned width. negated allows
// the one decimal magnitude that only exists behind unary minus.
func parseIntegral(text string, wantLong, negated bool) (Value, error) {
	digits, base, long := splitIntegral(text)
	if long != wantLong || digits == "" {
		return Value{}, fmt.Errorf("%w: %q", errMalformedLiteral, text)
	}
	mag, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Value{}, fmt.Errorf("%w: %q", errLiteralRange, text)
		}
		return Value{}, fmt.Errorf("%w: %q", errMalformedLiteral, text)
	}

	if !long {
		if base != 10 {
			u, err := safecast.Conv[uint32](mag)
			if err != nil {
				return Value{}, fmt.Errorf("%w: %q", errLiteralRange, text)
			}
			return Int(int32(u)), nil //nolint:gosec // two's complement reinterpretation
		}
		if negated && mag == 1<<31 {
			return Int(math.MinInt32), nil
		}
		i, err := safecast.Conv[int32](mag)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %q", errLiteralRange, text)
		}
		if negated {
			i = -i
		}
		return Int(i), nil
	}

	if base != 10 {
		return Long(int64(mag)), nil //nolint:gosec // two's complement reinterpretation
	}
	if negated && mag == 1<<63 {
		return Long(math.MinInt64), nil
	}
	l, err := safecast.Conv[int64](mag)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q", errLiteralRange, text)
	}
	if negated {
		l = -l
	}
	return Long(l), nil
}

// parseFloating decodes float (bitSize 32) and double literals, decimal or
// hexadecimal. Literals that round to infinity, or a nonzero literal that
// rounds to zero, are rejected.
func parseFloating(text string, bitSize int) (Value, error) {
	s := strings.ReplaceAll(text, "_", "")
	if n := len(s); n > 0 {
		switch s[n-1] {
		case 'f', 'F':
			if bitSize != 32 {
				return Value{}, fmt.Errorf("%w: %q", errMalformedLiteral, text)
			}
			s = s[:n-1]
		case 'd', 'D':
			if bitSize != 64 {
				return Value{}, fmt.Errorf("%w: %q", errMalformedLiteral, text)
			}
			s = s[:n-1]
		}
	}
	if s == "" || (strings.ContainsAny(s, "+-") && !strings.ContainsAny(s, "eEpP")) {
		return Value{}, fmt.Errorf("%w: %q", errMalformedLiteral, text)
	}
	f, err := strconv.ParseFloat(s, bitSize)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Value{}, fmt.Errorf("%w: %q", errLiteralRange, text)
		}
		return Value{}, fmt.Errorf("%w: %q", errMalformedLiteral, text)
	}
	if f == 0 && !isZeroLiteral(s) {
		return Value{}, fmt.Errorf("%w: %q", errLiteralRange, text)
	}
	if bitSize == 32 {
		return Float(float32(f)), nil
	}
	return Double(f), nil
}

// isZeroLiteral reports whether the significand of a floating literal is
// zero, so that 0.0 is accepted and 1e-400 is not.
func isZeroLiteral(s string) bool {
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") {
		mant, _, _ := strings.Cut(lower[2:], "p")
		return strings.Trim(mant, "0.") == ""
	}
	mant, _, _ := strings.Cut(lower, "e")
	return strings.Trim(mant, "0.") == ""
}

func parseChar(text string) (Value, error) {
	if len(text) < 3 || text[0] != '\'' || text[len(text)-1] != '\'' {
		return Value{}, fmt.Errorf("%w: char %q", errMalformedLiteral, text)
	}
	units, err := unescape(text[1 : len(text)-1])
	if err != nil {
		return Value{}, err
	}
	if len(units) != 1 {
		return Value{}, fmt.Errorf("%w: char %q", errMalformedLiteral, text)
	}
	return Char(units[0]), nil
}

func parseString(text string) (Value, error) {
	if strings.HasPrefix(text, `"""`) {
		// текстовые блоки требуют удаления отступов; не сворачиваем
		return Value{}, fmt.Errorf("%w: text block", errMalformedLiteral)
	}
	if len(text) < 2 || text[0] != '"' || text[len(text)-1] != '"' {
		return Value{}, fmt.Errorf("%w: string %q", errMalformedLiteral, text)
	}
	units, err := unescape(text[1 : len(text)-1])
	if err != nil {
		return Value{}, err
	}
	return String(string(utf16.Decode(units))), nil
}

// unescape decodes Java escape sequences into UTF-16 code units.
func unescape(s string) ([]uint16, error) {
	out := make([]uint16, 0, len(s))
	for i := 0; i < len(s); {
		if s[i] != '\\' {
			r, size := utf8.DecodeRuneInString(s[i:])
			out = utf16.AppendRune(out, r)
			i += size
			continue
		}
		if i+1 >= len(s) {
			return nil, fmt.Errorf("%w: dangling escape", errMalformedLiteral)
		}
		c := s[i+1]
		switch c {
		case 'b':
			out = append(out, '\b')
		case 't':
			out = append(out, '\t')
		case 'n':
			out = append(out, '\n')
		case 'f':
			out = append(out, '\f')
		case 'r':
			out = append(out, '\r')
		case 's':
			out = append(out, ' ')
		case '"', '\'', '\\':
			out = append(out, uint16(c))
		case 'u':
			j := i + 1
			for j < len(s) && s[j] == 'u' {
				j++
			}
			if j+4 > len(s) {
				return nil, fmt.Errorf("%w: short unicode escape", errMalformedLiteral)
			}
			v, err := strconv.ParseUint(s[j:j+4], 16, 16)
			if err != nil {
				return nil, fmt.Errorf("%w: unicode escape %q", errMalformedLiteral, s[j:j+4])
			}
			out = append(out, uint16(v))
			i = j + 4
			continue
		default:
			if c < '0' || c > '7' {
				return nil, fmt.Errorf("%w: escape \\%c", errMalformedLiteral, c)
			}
			// восьмеричная форма: до трёх цифр, максимум \377
			j := i + 1
			limit := j + 2
			if c <= '3' {
				limit = j + 3
			}
			for j < len(s) && j < limit && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, err := strconv.ParseUint(s[i+1:j], 8, 16)
			if err != nil {
				return nil, fmt.Errorf("%w: octal escape", errMalformedLiteral)
			}
			out = append(out, uint16(v))
			i = j
			continue
		}
		i += 2
	}
	return out, nil
}
