package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestRectFromPointsNormalizes(t *testing.T) {
	r := RectFromPoints(Point{X: 100, Y: 50}, Point{X: 20, Y: 80})
	if !approx(r.X, 20) || !approx(r.Y, 50) || !approx(r.Width, 80) || !approx(r.Height, 30) {
		t.Errorf("got %+v, want {20 50 80 30}", r)
	}
}

func TestBoundsOf(t *testing.T) {
	pts := []Point{{X: 3, Y: 7}, {X: -2, Y: 4}, {X: 5, Y: -1}}
	r := BoundsOf(pts)
	if !approx(r.X, -2) || !approx(r.Y, -1) || !approx(r.Width, 7) || !approx(r.Height, 8) {
		t.Errorf("got %+v", r)
	}

	if r := BoundsOf(nil); !r.IsEmpty() {
		t.Errorf("empty point set should yield empty bounds, got %+v", r)
	}
}

func TestRectContainsEdges(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	for _, p := range []Point{{0, 0}, {10, 10}, {5, 0}, {0, 5}} {
		if !r.Contains(p) {
			t.Errorf("edge point %+v should be contained", p)
		}
	}
	if r.Contains(Point{X: 10.001, Y: 5}) {
		t.Error("point outside right edge should not be contained")
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 5, Height: 5}
	b := Rect{X: 3, Y: 4, Width: 10, Height: 2}
	u := a.Union(b)
	if !approx(u.X, 0) || !approx(u.Y, 0) || !approx(u.Width, 13) || !approx(u.Height, 6) {
		t.Errorf("got %+v", u)
	}
}

func TestRotateAboutQuarterTurn(t *testing.T) {
	// Rotating the left-edge midpoint of a box 90 degrees about its center
	// lands it on the top-edge midpoint.
	m := RotateAbout(math.Pi/2, 50, 25)
	got := m.Apply(Point{X: 0, Y: 25})
	if !approx(got.X, 50) || !approx(got.Y, -25) {
		t.Errorf("got %+v, want {50 -25}", got)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	m := Translate(13, -4).Multiply(RotateAbout(0.7, 5, 5))
	inv := m.Invert()
	p := Point{X: 3.5, Y: -8.25}
	back := inv.Apply(m.Apply(p))
	if !approx(back.X, p.X) || !approx(back.Y, p.Y) {
		t.Errorf("round trip moved point: %+v -> %+v", p, back)
	}
}

func TestMultiplyOrder(t *testing.T) {
	// m.Multiply(other) applies other first.
	m := Translate(10, 0).Multiply(Rotate(math.Pi / 2))
	got := m.Apply(Point{X: 1, Y: 0})
	if !approx(got.X, 10) || !approx(got.Y, 1) {
		t.Errorf("got %+v, want {10 1}", got)
	}
}
