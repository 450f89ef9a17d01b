package bitset

import "testing"

func TestFull(t *testing.T) {
	if Full(0) != 0 {
		t.Errorf("Full(0) should be empty")
	}
	if got, want := Full(4), Set(0b1111); got != want {
		t.Errorf("Full(4) = %b, want %b", got, want)
	}
	if Full(MaxColors) != ^Set(0) {
		t.Errorf("Full(MaxColors) should set every bit")
	}
}

func TestSingleAndTest(t *testing.T) {
	s := Single(3)
	if !s.Test(3) {
		t.Error("Single(3) should test true for 3")
	}
	if s.Test(2) {
		t.Error("Single(3) should test false for 2")
	}
}

func TestWithWithout(t *testing.T) {
	s := Clear()
	s = s.With(1).With(4)
	if s.Count() != 2 {
		t.Errorf("expected count 2, got %d", s.Count())
	}
	s = s.Without(1)
	if s.Test(1) {
		t.Error("Without(1) should clear bit 1")
	}
	if !s.Test(4) {
		t.Error("Without(1) should not disturb bit 4")
	}
}

func TestUnionIntersect(t *testing.T) {
	a := Single(0).With(1)
	b := Single(1).With(2)
	if u := a.Union(b); u.Count() != 3 {
		t.Errorf("Union count = %d, want 3", u.Count())
	}
	if i := a.Intersect(b); i != Single(1) {
		t.Errorf("Intersect = %b, want only bit 1", i)
	}
}

func TestOnly(t *testing.T) {
	if c, ok := Single(5).Only(); !ok || c != 5 {
		t.Errorf("Only() = (%d, %v), want (5, true)", c, ok)
	}
	if _, ok := Full(3).Only(); ok {
		t.Error("Only() on a multi-color set should report false")
	}
	if _, ok := Clear().Only(); ok {
		t.Error("Only() on the empty set should report false")
	}
}

func TestIsEmpty(t *testing.T) {
	if !Clear().IsEmpty() {
		t.Error("Clear() should be empty")
	}
	if Single(0).IsEmpty() {
		t.Error("Single(0) should not be empty")
	}
}

func TestToSlice(t *testing.T) {
	s := Single(0).With(2).With(4)
	got := s.ToSlice(5)
	want := []int{0, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("ToSlice = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ToSlice[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
