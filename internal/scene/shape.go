// Package scene holds the shape data model and the z-ordered scene that
// the whiteboard engine mutates. Shapes serialize to the same JSON wire
// form used by the session protocol and the export endpoints.
package scene

import (
	"github.com/scrawl/scrawl/backend-go/internal/geom"
	"github.com/scrawl/scrawl/backend-go/internal/typeid"
)

// Tool discriminates shape variants and the two non-drawing tools.
// Shapes only ever carry a drawing variant; ToolSelect and ToolPan
// exist for the interaction layer.
type Tool string

const (
	ToolSelect     Tool = "select"
	ToolPan        Tool = "pan"
	ToolPencil     Tool = "pencil"
	ToolEraser     Tool = "eraser"
	ToolRect       Tool = "rect"
	ToolRoundRect  Tool = "roundRect"
	ToolCircle     Tool = "circle"
	ToolLine       Tool = "line"
	ToolDashedLine Tool = "dashedLine"
	ToolArrow      Tool = "arrow"
	ToolText       Tool = "text"
)

// IsFreehand reports whether the tool records one point per pointer sample.
func (t Tool) IsFreehand() bool {
	return t == ToolPencil || t == ToolEraser
}

// IsTwoPoint reports whether the tool produces an anchor/end point pair.
func (t Tool) IsTwoPoint() bool {
	switch t {
	case ToolRect, ToolRoundRect, ToolCircle, ToolLine, ToolDashedLine, ToolArrow:
		return true
	}
	return false
}

// IsShape reports whether the tool creates shapes at all.
func (t Tool) IsShape() bool {
	return t.IsFreehand() || t.IsTwoPoint() || t == ToolText
}

// IsClosed reports whether the variant has an interior that can be filled.
func (t Tool) IsClosed() bool {
	return t == ToolRect || t == ToolRoundRect || t == ToolCircle
}

// Nominal text metrics. The reference behavior hit-tests and exports text
// against a fixed-size box rather than shaped glyph metrics.
const (
	TextCharWidth  = 12.0
	TextLineHeight = 24.0
)

// Shape is the atomic drawable entity. Point semantics depend on Tool:
// freehand variants hold an open polyline, text holds exactly one anchor
// point, and every other variant holds an anchor and a free end corner.
type Shape struct {
	ID       string       `json:"id"`
	Tool     Tool         `json:"tool"`
	Points   []geom.Point `json:"points"`
	Color    string       `json:"color"`
	Size     float64      `json:"size"`
	Filled   bool         `json:"isFilled"`
	Locked   bool         `json:"isLocked,omitempty"`
	Rotation float64      `json:"rotation,omitempty"`
	Text     string       `json:"text,omitempty"`
}

// Clone returns a deep copy of the shape.
func (s *Shape) Clone() *Shape {
	c := *s
	c.Points = make([]geom.Point, len(s.Points))
	copy(c.Points, s.Points)
	return &c
}

// Bounds returns the unrotated axis-aligned bounding box. Rotation is
// always expressed about this box's center, so callers re-derive the
// center from here after any point mutation.
func (s *Shape) Bounds() geom.Rect {
	if s.Tool == ToolText && len(s.Points) > 0 {
		p := s.Points[0]
		w := float64(len([]rune(s.Text))) * TextCharWidth
		if w < TextCharWidth {
			w = TextCharWidth
		}
		return geom.Rect{X: p.X, Y: p.Y, Width: w, Height: TextLineHeight}
	}
	if s.Tool == ToolCircle && len(s.Points) >= 2 {
		c, r := s.CircleGeometry()
		return geom.Rect{X: c.X - r, Y: c.Y - r, Width: 2 * r, Height: 2 * r}
	}
	return geom.BoundsOf(s.Points)
}

// CircleGeometry returns the center and radius of a circle shape. The
// two stored points are treated as diameter endpoints, so both anchors
// lie exactly on the circumference.
func (s *Shape) CircleGeometry() (geom.Point, float64) {
	a, b := s.Points[0], s.Points[1]
	center := geom.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	return center, a.Dist(b) / 2
}

// Translate shifts every point of the shape by (dx, dy).
func (s *Shape) Translate(dx, dy float64) {
	for i := range s.Points {
		s.Points[i].X += dx
		s.Points[i].Y += dy
	}
}

// IDProvider supplies unique shape ids. The production default is a
// typeid generator; tests inject a deterministic counter.
type IDProvider func() string

// DefaultIDProvider returns typeid-based shape ids ("shape_...").
func DefaultIDProvider() IDProvider {
	return typeid.NewShapeID
}
