package types

import "testing"

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if !b.Int.IsValid() || b.Int == b.Long {
		t.Fatalf("builtins not distinct: %+v", b)
	}
	if in.Primitive(KindChar) != b.Char {
		t.Fatalf("Primitive(char) mismatch")
	}
	if !in.IsString(b.String) || in.Format(b.String) != "String" {
		t.Fatalf("String builtin broken")
	}
}

func TestInternerDedup(t *testing.T) {
	in := NewInterner()
	a := in.Named("java.util.List")
	if in.Named("java.util.List") != a {
		t.Fatalf("same name must intern to the same id")
	}
	arr := in.ArrayOf(in.Builtins().Int)
	if in.ArrayOf(in.Builtins().Int) != arr {
		t.Fatalf("array types must dedup")
	}
	if got := in.Format(in.ArrayOf(arr)); got != "int[][]" {
		t.Fatalf("Format = %q", got)
	}
	if got := in.SimpleName(a); got != "List" {
		t.Fatalf("SimpleName = %q", got)
	}
	if in.Intern(Type{}) != NoTypeID {
		t.Fatalf("invalid descriptor must map to NoTypeID")
	}
}

func TestKindPredicates(t *testing.T) {
	if !KindChar.IsNumeric() || !KindChar.IsIntegral() {
		t.Fatalf("char is an integral numeric kind")
	}
	if !KindLong.IsIntegral() || KindBoolean.IsNumeric() {
		t.Fatalf("predicate mismatch")
	}
	if k, ok := ParseKind("double"); !ok || k != KindDouble {
		t.Fatalf("ParseKind(double) = %v,%v", k, ok)
	}
}
