package camera

import (
	"math"
	"testing"

	"github.com/scrawl/scrawl/backend-go/internal/geom"
)

func TestRoundTripLaw(t *testing.T) {
	scales := []float64{MinScale, 0.5, 1, 2.5, MaxScale}
	offsets := []geom.Point{{X: 0, Y: 0}, {X: -350.5, Y: 120.25}, {X: 9999, Y: -9999}}
	points := []geom.Point{{X: 0, Y: 0}, {X: 123.75, Y: -88.5}, {X: -1e4, Y: 1e4}}

	for _, s := range scales {
		for _, o := range offsets {
			c := Camera{OffsetX: o.X, OffsetY: o.Y, Scale: s}
			for _, p := range points {
				scr := c.ToScreen(p.X, p.Y)
				back := c.ToWorld(scr.X, scr.Y)
				if math.Abs(back.X-p.X) > 1e-6 || math.Abs(back.Y-p.Y) > 1e-6 {
					t.Errorf("scale=%v offset=%+v: %+v -> %+v", s, o, p, back)
				}
			}
		}
	}
}

func TestZoomAnchoredAtPointer(t *testing.T) {
	c := New()
	// Pointer at screen (400,300), scale 1, offset (0,0): the world point
	// under it is (400,300).
	under := c.ToWorld(400, 300)

	c.ZoomAt(400, 300, 1.1)

	if math.Abs(c.Scale-1.1) > 1e-9 {
		t.Errorf("scale = %v, want 1.1", c.Scale)
	}
	after := c.ToScreen(under.X, under.Y)
	if math.Abs(after.X-400) > 1e-6 || math.Abs(after.Y-300) > 1e-6 {
		t.Errorf("anchored world point moved to screen %+v", after)
	}
}

func TestZoomClamping(t *testing.T) {
	c := New()
	for i := 0; i < 100; i++ {
		c.ZoomAt(0, 0, 2)
	}
	if c.Scale != MaxScale {
		t.Errorf("scale = %v, want clamp at %v", c.Scale, MaxScale)
	}
	for i := 0; i < 200; i++ {
		c.ZoomAt(0, 0, 0.5)
	}
	if c.Scale != MinScale {
		t.Errorf("scale = %v, want clamp at %v", c.Scale, MinScale)
	}
}

func TestPanBy(t *testing.T) {
	c := New()
	c.PanBy(15, -7)
	c.PanBy(5, 7)
	if c.OffsetX != 20 || c.OffsetY != 0 {
		t.Errorf("offset = (%v,%v), want (20,0)", c.OffsetX, c.OffsetY)
	}
	// Panning never touches scale.
	if c.Scale != 1 {
		t.Errorf("scale changed to %v during pan", c.Scale)
	}
}
