package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: LineCol{3, 5}, End: LineCol{3, 9}}
	b := Span{File: 1, Start: LineCol{2, 1}, End: LineCol{3, 2}}
	got := a.Cover(b)
	want := Span{File: 1, Start: LineCol{2, 1}, End: LineCol{3, 9}}
	if got != want {
		t.Fatalf("Cover = %v, want %v", got, want)
	}
	if other := a.Cover(Span{File: 2, Start: LineCol{1, 1}, End: LineCol{1, 1}}); other != a {
		t.Fatalf("spans from other files must not merge")
	}
	if (Span{}).Cover(a) != a {
		t.Fatalf("invalid span covered by a must yield a")
	}
}

func TestSpanContainsAndBefore(t *testing.T) {
	outer := Span{File: 0, Start: LineCol{1, 1}, End: LineCol{10, 1}}
	inner := Span{File: 0, Start: LineCol{4, 2}, End: LineCol{4, 8}}
	if !outer.Contains(inner) || inner.Contains(outer) {
		t.Fatalf("Contains mismatch")
	}
	if !outer.Before(inner) || inner.Before(outer) {
		t.Fatalf("Before mismatch")
	}
	if !At(0, 4, 2).Before(At(0, 4, 3)) {
		t.Fatalf("column must break ties")
	}
	if (Span{}).IsValid() {
		t.Fatalf("zero span must be invalid")
	}
}
