// Package camera maps between screen pixels and world coordinates.
// World space is invariant under pan/zoom; shapes are stored there.
package camera

import "github.com/scrawl/scrawl/backend-go/internal/geom"

// Scale clamp keeps rendering and pick math away from degenerate zoom.
const (
	MinScale = 0.05
	MaxScale = 20.0
)

// Camera carries the pan offset (in screen pixels) and zoom scale.
type Camera struct {
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
	Scale   float64 `json:"scale"`
}

// New returns a camera at origin with scale 1.
func New() Camera {
	return Camera{Scale: 1}
}

// ToWorld converts a screen pixel position to world coordinates.
func (c Camera) ToWorld(sx, sy float64) geom.Point {
	return geom.Point{
		X: (sx - c.OffsetX) / c.Scale,
		Y: (sy - c.OffsetY) / c.Scale,
	}
}

// ToScreen converts a world position to screen pixels.
func (c Camera) ToScreen(wx, wy float64) geom.Point {
	return geom.Point{
		X: wx*c.Scale + c.OffsetX,
		Y: wy*c.Scale + c.OffsetY,
	}
}

// PanBy shifts the offset by a raw screen-pixel delta.
func (c *Camera) PanBy(dx, dy float64) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// ZoomAt rescales by factor, anchored at the given screen position: the
// world point under the pointer stays under the pointer after the zoom.
func (c *Camera) ZoomAt(sx, sy, factor float64) {
	next := c.Scale * factor
	if next < MinScale {
		next = MinScale
	}
	if next > MaxScale {
		next = MaxScale
	}
	w := c.ToWorld(sx, sy)
	c.Scale = next
	c.OffsetX = sx - w.X*next
	c.OffsetY = sy - w.Y*next
}
