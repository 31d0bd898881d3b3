package hittest

import (
	"math"
	"testing"

	"github.com/scrawl/scrawl/backend-go/internal/geom"
	"github.com/scrawl/scrawl/backend-go/internal/scene"
)

func rect(id string, a, b geom.Point) *scene.Shape {
	return &scene.Shape{
		ID:     id,
		Tool:   scene.ToolRect,
		Points: []geom.Point{a, b},
		Size:   2,
	}
}

func TestAnchorAlwaysHits(t *testing.T) {
	tools := []scene.Tool{
		scene.ToolRect, scene.ToolRoundRect, scene.ToolCircle,
		scene.ToolLine, scene.ToolDashedLine, scene.ToolArrow,
	}
	scales := []float64{0.05, 0.5, 1, 4, 20}
	anchor := geom.Point{X: 12, Y: 34}
	end := geom.Point{X: 112, Y: 84}

	for _, tool := range tools {
		s := &scene.Shape{ID: "shape_a", Tool: tool, Points: []geom.Point{anchor, end}}
		for _, scale := range scales {
			if !Body(anchor, s, scale) {
				t.Errorf("%s at scale %v: anchor point should hit", tool, scale)
			}
		}
	}
}

func TestFreehandHitsNearSample(t *testing.T) {
	s := &scene.Shape{
		ID:   "shape_p",
		Tool: scene.ToolPencil,
		Points: []geom.Point{
			{X: 0, Y: 0}, {X: 10, Y: 5}, {X: 20, Y: 10}, {X: 30, Y: 15}, {X: 40, Y: 20},
		},
	}
	if !Body(geom.Point{X: 21, Y: 11}, s, 1) {
		t.Error("point within tolerance of a sample should hit")
	}
	if Body(geom.Point{X: 21, Y: 40}, s, 1) {
		t.Error("point far from all samples should miss")
	}
	// Tighter tolerance when zoomed in.
	if Body(geom.Point{X: 25, Y: 12.5}, s, 20) {
		t.Error("midpoint between samples should miss at high zoom")
	}
}

func TestCircleAnnulus(t *testing.T) {
	s := &scene.Shape{
		ID:     "shape_c",
		Tool:   scene.ToolCircle,
		Points: []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 100}},
	}
	center, r := s.CircleGeometry()
	if center.X != 50 || center.Y != 50 {
		t.Fatalf("center = %+v", center)
	}
	if math.Abs(r-50*math.Sqrt2) > 1e-9 {
		t.Fatalf("radius = %v", r)
	}
	if !Body(geom.Point{X: 50, Y: 50}, s, 1) {
		t.Error("circle center should hit")
	}
	if Body(geom.Point{X: 50, Y: 50 - r - 9}, s, 1) {
		t.Error("point outside radius plus tolerance should miss")
	}
}

func TestRotatedHit(t *testing.T) {
	// Rect spanning (0,0)-(100,50), rotated 90 degrees about (50,25).
	s := rect("shape_r", geom.Point{X: 0, Y: 0}, geom.Point{X: 100, Y: 50})
	s.Rotation = math.Pi / 2

	// The former left-edge midpoint (0,25) rotates onto (50,-25), above
	// the unrotated box.
	if !Body(geom.Point{X: 50, Y: -25}, s, 4) {
		t.Error("rotated edge point should hit")
	}
	// The unrotated left-edge midpoint no longer hits at tight tolerance:
	// it lies 25 world units outside the rotated box.
	if Body(geom.Point{X: 0, Y: 25}, s, 4) {
		t.Error("pre-rotation edge point should miss after rotation")
	}
}

func TestHandlePriorityGeometry(t *testing.T) {
	s := rect("shape_h", geom.Point{X: 0, Y: 0}, geom.Point{X: 100, Y: 50})

	cases := []struct {
		p    geom.Point
		want Handle
	}{
		{geom.Point{X: 0, Y: 0}, HandleNW},
		{geom.Point{X: 100, Y: 50}, HandleSE},
		{geom.Point{X: 50, Y: 0}, HandleN},
		{geom.Point{X: 100, Y: 25}, HandleE},
		{geom.Point{X: 50, Y: -24}, HandleRotate},
		{geom.Point{X: 50, Y: 25}, HandleNone},
	}
	for _, c := range cases {
		if got := HandleAt(c.p, s, 1); got != c.want {
			t.Errorf("HandleAt(%+v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestLockedShapeHasNoHandles(t *testing.T) {
	s := rect("shape_l", geom.Point{X: 0, Y: 0}, geom.Point{X: 100, Y: 50})
	s.Locked = true
	for _, p := range []geom.Point{{X: 0, Y: 0}, {X: 50, Y: -24}} {
		if got := HandleAt(p, s, 1); got != HandleNone {
			t.Errorf("locked shape returned handle %v at %+v", got, p)
		}
	}
}

func TestFreehandAndTextOnlyRotate(t *testing.T) {
	text := &scene.Shape{
		ID:     "shape_t",
		Tool:   scene.ToolText,
		Points: []geom.Point{{X: 0, Y: 0}},
		Text:   "hi",
	}
	b := text.Bounds()
	corner := geom.Point{X: b.X, Y: b.Y}
	if got := HandleAt(corner, text, 1); got != HandleNone {
		t.Errorf("text corner returned resize handle %v", got)
	}
	above := geom.Point{X: b.X + b.Width/2, Y: b.Y - 24}
	if got := HandleAt(above, text, 1); got != HandleRotate {
		t.Errorf("text rotation handle = %v", got)
	}
}

func TestTopmostPrefersLaterShapes(t *testing.T) {
	under := rect("shape_under", geom.Point{X: 0, Y: 0}, geom.Point{X: 100, Y: 100})
	over := rect("shape_over", geom.Point{X: 40, Y: 40}, geom.Point{X: 140, Y: 140})
	shapes := []*scene.Shape{under, over}

	if got := Topmost(shapes, geom.Point{X: 60, Y: 60}, 1); got != "shape_over" {
		t.Errorf("overlap pick = %q, want shape_over", got)
	}
	if got := Topmost(shapes, geom.Point{X: 10, Y: 10}, 1); got != "shape_under" {
		t.Errorf("exclusive pick = %q, want shape_under", got)
	}
	if got := Topmost(shapes, geom.Point{X: 300, Y: 300}, 1); got != "" {
		t.Errorf("miss pick = %q, want empty", got)
	}
}
