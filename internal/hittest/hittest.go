// Package hittest answers the geometric pick queries the interaction
// layer depends on: point-in-shape, resize-handle hit, and
// rotation-handle hit. All tolerances are fixed pixel radii divided by
// the current zoom scale, so picking precision is zoom-independent.
package hittest

import (
	"github.com/scrawl/scrawl/backend-go/internal/geom"
	"github.com/scrawl/scrawl/backend-go/internal/scene"
)

// Pick geometry in screen pixels, converted to world units per query.
const (
	PickRadius     = 8.0
	HandleRadius   = 10.0
	RotationOffset = 24.0
)

// Handle identifies a manipulation hotspot around the selected shape.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
	HandleRotate
)

// String returns the compass name of the handle.
func (h Handle) String() string {
	switch h {
	case HandleNW:
		return "nw"
	case HandleN:
		return "n"
	case HandleNE:
		return "ne"
	case HandleE:
		return "e"
	case HandleSE:
		return "se"
	case HandleS:
		return "s"
	case HandleSW:
		return "sw"
	case HandleW:
		return "w"
	case HandleRotate:
		return "rotate"
	default:
		return "none"
	}
}

// Tolerance converts the pick radius to world units at the given scale.
func Tolerance(scale float64) float64 {
	return PickRadius / scale
}

// localPoint maps a world query point into the shape's unrotated local
// frame by inverse-rotating it about the bounding-box center.
func localPoint(p geom.Point, s *scene.Shape) geom.Point {
	if s.Rotation == 0 {
		return p
	}
	c := s.Bounds().Center()
	return geom.RotateAbout(s.Rotation, c.X, c.Y).Invert().Apply(p)
}

// Body reports whether the world point hits the shape's body.
func Body(p geom.Point, s *scene.Shape, scale float64) bool {
	if len(s.Points) == 0 {
		return false
	}
	tol := Tolerance(scale)
	q := localPoint(p, s)

	switch s.Tool {
	case scene.ToolPencil, scene.ToolEraser:
		// O(n) scan over samples; strokes are bounded by gesture length.
		for _, sp := range s.Points {
			if q.Dist(sp) <= tol {
				return true
			}
		}
		return false
	case scene.ToolCircle:
		if len(s.Points) < 2 {
			return false
		}
		center, r := s.CircleGeometry()
		return q.Dist(center) <= r+tol
	default:
		return s.Bounds().Expand(tol).Contains(q)
	}
}

// HandlePoint pairs a handle with its position in the shape's local
// (unrotated) frame.
type HandlePoint struct {
	Handle Handle
	Point  geom.Point
}

// HandlePoints returns the handle hotspots for a bounding box: the 8
// compass points plus the rotation handle floating above the top edge.
// Positions are in the local frame; callers rotate them with the shape.
func HandlePoints(b geom.Rect, scale float64) []HandlePoint {
	cx := b.X + b.Width/2
	cy := b.Y + b.Height/2
	return []HandlePoint{
		{HandleRotate, geom.Point{X: cx, Y: b.Y - RotationOffset/scale}},
		{HandleNW, geom.Point{X: b.X, Y: b.Y}},
		{HandleN, geom.Point{X: cx, Y: b.Y}},
		{HandleNE, geom.Point{X: b.X + b.Width, Y: b.Y}},
		{HandleE, geom.Point{X: b.X + b.Width, Y: cy}},
		{HandleSE, geom.Point{X: b.X + b.Width, Y: b.Y + b.Height}},
		{HandleS, geom.Point{X: cx, Y: b.Y + b.Height}},
		{HandleSW, geom.Point{X: b.X, Y: b.Y + b.Height}},
		{HandleW, geom.Point{X: b.X, Y: cy}},
	}
}

// HandleAt returns the handle hit by the world point, or HandleNone.
// Locked shapes expose no handles. Freehand and text shapes expose only
// the rotation handle; resize additionally requires the anchor/end point
// pair, so a shape with fewer than two points never resizes.
func HandleAt(p geom.Point, s *scene.Shape, scale float64) Handle {
	if s.Locked || len(s.Points) == 0 {
		return HandleNone
	}
	q := localPoint(p, s)
	r := HandleRadius / scale
	resizable := s.Tool.IsTwoPoint() && len(s.Points) >= 2

	for _, hp := range HandlePoints(s.Bounds(), scale) {
		if hp.Handle != HandleRotate && !resizable {
			continue
		}
		if q.Dist(hp.Point) <= r {
			return hp.Handle
		}
	}
	return HandleNone
}

// Topmost returns the id of the frontmost shape hit by the world point,
// walking the z-order back to front. Empty string when nothing hits.
func Topmost(shapes []*scene.Shape, p geom.Point, scale float64) string {
	for i := len(shapes) - 1; i >= 0; i-- {
		if Body(p, shapes[i], scale) {
			return shapes[i].ID
		}
	}
	return ""
}
