package fold

import (
	"math"

	"gradelint/internal/ast"
	"gradelint/internal/types"
)

// outcome of one rule applied to one node.
type outcome uint8

const (
	skip    outcome = iota // правило не про этот узел
	reduced                // значение получено
	stuck                  // правило применимо, но свернуть нельзя
)

type rule struct {
	name  string
	apply func(ev *Evaluator, st *state, id ast.NodeID) (Value, outcome)
}

// defaultRules is the closed, ordered rule chain. String concatenation
// precedes binary arithmetic so that + on a String operand concatenates.
func defaultRules() []rule {
	return []rule{
		{"literal", foldLiteral},
		{"unary", foldUnary},
		{"concat", foldConcat},
		{"binary", foldBinary},
		{"conditional", foldConditional},
		{"cast", foldCast},
		{"variable-read", foldVariableRead},
	}
}

func result(v Value, ok bool) (Value, outcome) {
	if !ok {
		return Value{}, stuck
	}
	return v, reduced
}

func foldLiteral(ev *Evaluator, _ *state, id ast.NodeID) (Value, outcome) {
	lit, ok := ev.m.Tree.Exprs.Literal(id)
	if !ok {
		return Value{}, skip
	}
	v, err := parseLiteral(lit.Kind, ev.m.Text(lit.Text))
	if err != nil {
		ev.debug("literal", id, err.Error())
		return Value{}, stuck
	}
	return v, reduced
}

func foldUnary(ev *Evaluator, st *state, id ast.NodeID) (Value, outcome) {
	u, ok := ev.m.Tree.Exprs.Unary(id)
	if !ok {
		return Value{}, skip
	}
	if u.Op.IsIncDec() {
		return Value{}, stuck
	}
	if u.Op == ast.UnaryNeg {
		// -2147483648 и -9223372036854775808L существуют только с минусом
		if lit, ok := ev.m.Tree.Exprs.Literal(u.Operand); ok && (lit.Kind == ast.LitInt || lit.Kind == ast.LitLong) {
			text := ev.m.Text(lit.Text)
			if _, base, _ := splitIntegral(text); base == 10 {
				v, err := parseIntegral(text, lit.Kind == ast.LitLong, true)
				return result(v, err == nil)
			}
		}
	}
	v, ok := ev.eval(st, u.Operand)
	if !ok {
		return Value{}, stuck
	}
	return result(applyUnary(u.Op, v))
}

func applyUnary(op ast.UnaryOp, v Value) (Value, bool) {
	switch op {
	case ast.UnaryNot:
		if v.kind != KindBool {
			return Value{}, false
		}
		return Bool(!v.AsBool()), true
	case ast.UnaryPlus, ast.UnaryNeg, ast.UnaryBitNot:
		if !v.kind.IsNumeric() {
			return Value{}, false
		}
		p, _ := v.Convert(unaryPromote(v.kind))
		switch {
		case op == ast.UnaryPlus:
			return p, true
		case op == ast.UnaryBitNot && p.kind == KindInt:
			return Int(^int32(p.bits)), true //nolint:gosec // int bits fit
		case op == ast.UnaryBitNot && p.kind == KindLong:
			return Long(^p.bits), true
		case op == ast.UnaryNeg && p.kind == KindInt:
			return Int(-int32(p.bits)), true //nolint:gosec // int bits fit
		case op == ast.UnaryNeg && p.kind == KindLong:
			return Long(-p.bits), true
		case op == ast.UnaryNeg && p.kind == KindFloat:
			return Float(-float32(p.num)), true
		case op == ast.UnaryNeg && p.kind == KindDouble:
			return Double(-p.num), true
		}
	}
	return Value{}, false
}

func foldConcat(ev *Evaluator, st *state, id ast.NodeID) (Value, outcome) {
	b, ok := ev.m.Tree.Exprs.Binary(id)
	if !ok || b.Op != ast.BinAdd {
		return Value{}, skip
	}
	l, ok := ev.eval(st, b.Left)
	if !ok {
		return Value{}, stuck
	}
	r, ok := ev.eval(st, b.Right)
	if !ok {
		return Value{}, stuck
	}
	if l.kind != KindString && r.kind != KindString {
		return Value{}, skip
	}
	return String(l.String() + r.String()), reduced
}

func foldBinary(ev *Evaluator, st *state, id ast.NodeID) (Value, outcome) {
	b, ok := ev.m.Tree.Exprs.Binary(id)
	if !ok {
		return Value{}, skip
	}
	l, ok := ev.eval(st, b.Left)
	if !ok {
		return Value{}, stuck
	}
	r, ok := ev.eval(st, b.Right)
	if !ok {
		return Value{}, stuck
	}
	return result(applyBinary(b.Op, l, r))
}

func applyBinary(op ast.BinaryOp, l, r Value) (Value, bool) {
	bothBool := l.kind == KindBool && r.kind == KindBool
	bothNumeric := l.kind.IsNumeric() && r.kind.IsNumeric()
	bothIntegral := l.kind.IsIntegral() && r.kind.IsIntegral()

	switch {
	case op.IsLogical():
		if !bothBool {
			return Value{}, false
		}
		if op == ast.BinLogAnd {
			return Bool(l.AsBool() && r.AsBool()), true
		}
		return Bool(l.AsBool() || r.AsBool()), true

	case op == ast.BinEq || op == ast.BinNe:
		var eq bool
		switch {
		case bothBool:
			eq = l.bits == r.bits
		case bothNumeric:
			eq = compare(l, r) == 0
		default:
			return Value{}, false
		}
		return Bool(eq == (op == ast.BinEq)), true

	case op.IsComparison():
		if !bothNumeric {
			return Value{}, false
		}
		c := compare(l, r)
		if c == cmpUnordered {
			return Bool(false), true
		}
		switch op {
		case ast.BinLt:
			return Bool(c < 0), true
		case ast.BinLe:
			return Bool(c <= 0), true
		case ast.BinGt:
			return Bool(c > 0), true
		default:
			return Bool(c >= 0), true
		}

	case op.IsBitwise():
		if bothBool {
			switch op {
			case ast.BinAnd:
				return Bool(l.AsBool() && r.AsBool()), true
			case ast.BinOr:
				return Bool(l.AsBool() || r.AsBool()), true
			default:
				return Bool(l.AsBool() != r.AsBool()), true
			}
		}
		if !bothIntegral {
			return Value{}, false
		}
		k := binaryPromote(l.kind, r.kind)
		x, _ := l.Convert(k)
		y, _ := r.Convert(k)
		var bits int64
		switch op {
		case ast.BinAnd:
			bits = x.bits & y.bits
		case ast.BinOr:
			bits = x.bits | y.bits
		default:
			bits = x.bits ^ y.bits
		}
		return Long(bits).Convert(k)

	case op.IsShift():
		if !bothIntegral {
			return Value{}, false
		}
		x, _ := l.Convert(unaryPromote(l.kind))
		dist := uint(r.bits) //nolint:gosec // masked below
		if x.kind == KindInt {
			dist &= 31
			v := int32(x.bits) //nolint:gosec // int bits fit
			switch op {
			case ast.BinShl:
				return Int(v << dist), true
			case ast.BinShr:
				return Int(v >> dist), true
			default:
				return Int(int32(uint32(v) >> dist)), true //nolint:gosec // logical shift
			}
		}
		dist &= 63
		switch op {
		case ast.BinShl:
			return Long(x.bits << dist), true
		case ast.BinShr:
			return Long(x.bits >> dist), true
		default:
			return Long(int64(uint64(x.bits) >> dist)), true //nolint:gosec // logical shift
		}
	}

	if !bothNumeric {
		return Value{}, false
	}
	return arith(op, l, r)
}

// arith applies + - * / % after binary numeric promotion. Integer
// division by zero has no value.
func arith(op ast.BinaryOp, l, r Value) (Value, bool) {
	k := binaryPromote(l.kind, r.kind)
	x, _ := l.Convert(k)
	y, _ := r.Convert(k)
	switch k {
	case KindInt:
		a, b := int32(x.bits), int32(y.bits) //nolint:gosec // int bits fit
		switch op {
		case ast.BinAdd:
			return Int(a + b), true
		case ast.BinSub:
			return Int(a - b), true
		case ast.BinMul:
			return Int(a * b), true
		case ast.BinDiv:
			if b == 0 {
				return Value{}, false
			}
			return Int(a / b), true
		case ast.BinRem:
			if b == 0 {
				return Value{}, false
			}
			return Int(a % b), true
		}
	case KindLong:
		a, b := x.bits, y.bits
		switch op {
		case ast.BinAdd:
			return Long(a + b), true
		case ast.BinSub:
			return Long(a - b), true
		case ast.BinMul:
			return Long(a * b), true
		case ast.BinDiv:
			if b == 0 {
				return Value{}, false
			}
			return Long(a / b), true
		case ast.BinRem:
			if b == 0 {
				return Value{}, false
			}
			return Long(a % b), true
		}
	case KindFloat:
		a, b := float32(x.num), float32(y.num)
		switch op {
		case ast.BinAdd:
			return Float(float32(a + b)), true
		case ast.BinSub:
			return Float(float32(a - b)), true
		case ast.BinMul:
			return Float(float32(a * b)), true
		case ast.BinDiv:
			return Float(float32(a / b)), true
		case ast.BinRem:
			return Float(float32(math.Mod(float64(a), float64(b)))), true
		}
	case KindDouble:
		a, b := x.num, y.num
		switch op {
		case ast.BinAdd:
			return Double(a + b), true
		case ast.BinSub:
			return Double(a - b), true
		case ast.BinMul:
			return Double(a * b), true
		case ast.BinDiv:
			return Double(a / b), true
		case ast.BinRem:
			return Double(math.Mod(a, b)), true
		}
	}
	return Value{}, false
}

const cmpUnordered = 2

// compare orders two numeric values after promotion; NaN is unordered.
func compare(l, r Value) int {
	k := binaryPromote(l.kind, r.kind)
	x, _ := l.Convert(k)
	y, _ := r.Convert(k)
	if k.IsFloating() {
		switch {
		case math.IsNaN(x.num) || math.IsNaN(y.num):
			return cmpUnordered
		case x.num < y.num:
			return -1
		case x.num > y.num:
			return 1
		default:
			return 0
		}
	}
	switch {
	case x.bits < y.bits:
		return -1
	case x.bits > y.bits:
		return 1
	default:
		return 0
	}
}

func foldConditional(ev *Evaluator, st *state, id ast.NodeID) (Value, outcome) {
	c, ok := ev.m.Tree.Exprs.Cond(id)
	if !ok {
		return Value{}, skip
	}
	cond, ok := ev.eval(st, c.Cond)
	if !ok || cond.kind != KindBool {
		return Value{}, stuck
	}
	branch := c.Else
	if cond.AsBool() {
		branch = c.Then
	}
	v, ok := ev.eval(st, branch)
	if !ok {
		return Value{}, stuck
	}
	// тип всего выражения задаёт front-end (например, true ? 1 : 2.0 даёт double)
	if k := KindOf(ev.m.Types, ev.m.Tree.Node(id).Type); k.IsNumeric() && v.kind.IsNumeric() {
		return result(v.Convert(k))
	}
	return v, reduced
}

func foldCast(ev *Evaluator, st *state, id ast.NodeID) (Value, outcome) {
	c, ok := ev.m.Tree.Exprs.Cast(id)
	if !ok {
		return Value{}, skip
	}
	target := KindOf(ev.m.Types, c.Type)
	if target == KindInvalid || target == KindNull {
		return Value{}, stuck
	}
	v, ok := ev.eval(st, c.Operand)
	if !ok {
		return Value{}, stuck
	}
	return result(v.Convert(target))
}

func foldVariableRead(ev *Evaluator, st *state, id ast.NodeID) (Value, outcome) {
	name, ok := ev.m.Tree.Exprs.Name(id)
	if !ok {
		return Value{}, skip
	}
	// квалификатор с побочными эффектами не сворачиваем
	switch ev.m.Tree.Kind(name.Target) {
	case ast.KindInvalid, ast.KindThis, ast.KindTypeRef:
	default:
		return Value{}, stuck
	}
	sym := ev.m.Symbols.SymbolOf(id)
	s := ev.m.Symbols.Get(sym)
	if s == nil || st.visiting[sym] {
		return Value{}, stuck
	}
	init, ok := ev.ix.EffectiveInitializer(sym)
	if !ok {
		return Value{}, stuck
	}
	st.visiting[sym] = true
	v, ok := ev.eval(st, init)
	delete(st.visiting, sym)
	if !ok {
		return Value{}, stuck
	}
	return result(assignTo(ev.m.Types, s.Type, v))
}

// assignTo converts v to the declared type of a variable. Reference types
// other than String keep the value (boxing is transparent for folding).
func assignTo(in *types.Interner, declared types.TypeID, v Value) (Value, bool) {
	switch k := KindOf(in, declared); {
	case k == KindString:
		return v, v.kind == KindString
	case k == KindBool:
		return v, v.kind == KindBool
	case k.IsNumeric():
		return v.Convert(k)
	default:
		return v, true
	}
}
