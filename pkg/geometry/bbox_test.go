package geometry

import (
	"testing"

	"pgregory.net/rapid"
)

func TestNewBBoxNormalizes(t *testing.T) {
	b := NewBBox(10, 10, 0, 0)
	if b.X0 != 0 || b.X1 != 10 || b.Y0 != 0 || b.Y1 != 10 {
		t.Fatalf("expected normalized box, got %+v", b)
	}
}

func TestFullyInside(t *testing.T) {
	outer := NewBBox(0, 0, 100, 100)
	inner := NewBBox(10, 10, 20, 20)
	if !inner.FullyInside(outer) {
		t.Fatal("expected inner fully inside outer")
	}
	if outer.FullyInside(inner) {
		t.Fatal("outer should not be fully inside inner")
	}
}

func TestIntersectsAndOverlapArea(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(5, 5, 15, 15)
	if !a.Intersects(b) {
		t.Fatal("expected intersection")
	}
	if got := a.OverlapArea(b); got != 25 {
		t.Fatalf("expected overlap area 25, got %f", got)
	}

	c := NewBBox(20, 20, 30, 30)
	if a.Intersects(c) {
		t.Fatal("expected no intersection")
	}
	if got := a.OverlapArea(c); got != 0 {
		t.Fatalf("expected 0 overlap area, got %f", got)
	}
}

func TestVerticalHorizontalDistance(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(0, 20, 10, 30)
	if got := a.VerticalDistance(b); got != 10 {
		t.Fatalf("expected vertical distance 10, got %f", got)
	}
	if got := a.HorizontalDistance(b); got != 0 {
		t.Fatalf("expected horizontal distance 0 (columns overlap), got %f", got)
	}
}

func TestValidateRejectsInvertedBox(t *testing.T) {
	b := BBox{X0: 10, Y0: 0, X1: 0, Y1: 10}
	if err := b.Validate(); err == nil {
		t.Fatal("expected validation error for inverted box")
	}
}

// TestFullyInsideIsReflexiveAndBounded fuzzes bbox coordinates to
// verify geometry invariants hold for arbitrary, well-formed boxes.
func TestFullyInsideIsReflexiveAndBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		x0 := rapid.Float64Range(-1000, 1000).Draw(t, "x0")
		y0 := rapid.Float64Range(-1000, 1000).Draw(t, "y0")
		w := rapid.Float64Range(0, 500).Draw(t, "w")
		h := rapid.Float64Range(0, 500).Draw(t, "h")

		b := NewBBox(x0, y0, x0+w, y0+h)
		if err := b.Validate(); err != nil {
			t.Fatalf("well-formed box failed validation: %v", err)
		}
		if !b.FullyInside(b) {
			t.Fatal("a box must be fully inside itself")
		}
		if !b.Intersects(b.Expand(1)) {
			t.Fatal("a box must intersect its own expansion")
		}
		if b.OverlapArea(b) != b.Area() {
			t.Fatalf("self-overlap area %f should equal area %f", b.OverlapArea(b), b.Area())
		}
	})
}
