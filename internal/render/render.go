// Package render rasterizes an engine's visible state: background,
// grid, committed shapes, the in-progress preview, and the selection
// chrome. It draws with fogleman/gg into an RGBA frame that hosts can
// blit to a browser canvas or encode as PNG.
package render

import (
	"bytes"
	"image"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/scrawl/scrawl/backend-go/internal/engine"
	"github.com/scrawl/scrawl/backend-go/internal/geom"
	"github.com/scrawl/scrawl/backend-go/internal/hittest"
	"github.com/scrawl/scrawl/backend-go/internal/scene"
)

// Chrome colors and sizes. Handle and accent sizes are screen pixels;
// they get divided by the camera scale so the chrome never zooms.
const (
	BackgroundColor = "#FFFFFF"
	GridColor       = "#E5E7EB"
	AccentColor     = "#3B82F6"
	gridDotRadius   = 1.5
	handleSize      = 8.0
	selectionMargin = 4.0
	arrowHeadLength = 14.0
)

// Renderer draws engine state. It is not safe for concurrent use; each
// host owns one renderer alongside its engine.
type Renderer struct {
	fnt   *truetype.Font
	faces map[int]font.Face // keyed by rounded pixel size
}

// New parses the embedded Go Regular face used for text shapes.
func New() (*Renderer, error) {
	fnt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return &Renderer{fnt: fnt, faces: make(map[int]font.Face)}, nil
}

func (r *Renderer) face(px float64) font.Face {
	key := int(math.Round(px))
	if key < 4 {
		key = 4
	}
	if f, ok := r.faces[key]; ok {
		return f
	}
	f := truetype.NewFace(r.fnt, &truetype.Options{
		Size:    float64(key),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.faces[key] = f
	return f
}

// Frame renders the engine into a fresh context at its canvas size and
// returns the backing RGBA image.
func (r *Renderer) Frame(e *engine.Engine) *image.RGBA {
	w, h := e.Size()
	dc := gg.NewContext(w, h)
	r.Draw(dc, e)
	return dc.Image().(*image.RGBA)
}

// EncodePNG renders the engine and returns the frame as PNG bytes.
func (r *Renderer) EncodePNG(e *engine.Engine) ([]byte, error) {
	w, h := e.Size()
	dc := gg.NewContext(w, h)
	r.Draw(dc, e)
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Draw paints one full frame into dc. Order is fixed: background, grid,
// shapes back to front, preview, then selection chrome on top.
func (r *Renderer) Draw(dc *gg.Context, e *engine.Engine) {
	cam := e.Camera()

	dc.SetHexColor(BackgroundColor)
	dc.Clear()

	if e.ShowGrid() {
		r.drawGrid(dc, e)
	}

	dc.Push()
	dc.Translate(cam.OffsetX, cam.OffsetY)
	dc.Scale(cam.Scale, cam.Scale)

	sc := e.Scene()
	for _, s := range sc.Shapes {
		r.drawShape(dc, s, cam.Scale)
	}
	if p := e.Preview(); p != nil {
		dc.SetDash(6/cam.Scale, 4/cam.Scale)
		r.drawShape(dc, p, cam.Scale)
		dc.SetDash()
	}

	if hov := sc.ByID(sc.HoveredID); hov != nil && hov.ID != sc.SelectedID {
		r.drawGlow(dc, hov, cam.Scale, 0.35)
	}
	if sel := sc.Selected(); sel != nil {
		r.drawGlow(dc, sel, cam.Scale, 0.7)
		r.drawSelection(dc, sel, cam.Scale)
	}
	dc.Pop()
}

// drawGrid paints the dot grid across the visible world rect only.
func (r *Renderer) drawGrid(dc *gg.Context, e *engine.Engine) {
	cam := e.Camera()
	spacing := e.GridSpacing()
	if spacing <= 0 {
		return
	}
	w, h := e.Size()
	topLeft := cam.ToWorld(0, 0)
	botRight := cam.ToWorld(float64(w), float64(h))

	startX := math.Floor(topLeft.X/spacing) * spacing
	startY := math.Floor(topLeft.Y/spacing) * spacing

	dc.SetHexColor(GridColor)
	for x := startX; x <= botRight.X; x += spacing {
		for y := startY; y <= botRight.Y; y += spacing {
			p := cam.ToScreen(x, y)
			dc.DrawCircle(p.X, p.Y, gridDotRadius)
			dc.Fill()
		}
	}
}

// drawShape paints one shape in world coordinates. The context is
// already under the camera transform.
func (r *Renderer) drawShape(dc *gg.Context, s *scene.Shape, scale float64) {
	if len(s.Points) == 0 {
		return
	}
	if s.Rotation != 0 {
		c := s.Bounds().Center()
		dc.Push()
		dc.RotateAbout(s.Rotation, c.X, c.Y)
		defer dc.Pop()
	}

	dc.SetLineCapRound()
	dc.SetLineWidth(s.Size)

	switch s.Tool {
	case scene.ToolPencil:
		dc.SetHexColor(s.Color)
		r.polyline(dc, s.Points)
		dc.Stroke()
	case scene.ToolEraser:
		dc.SetHexColor(BackgroundColor)
		dc.SetLineWidth(s.Size * 4)
		r.polyline(dc, s.Points)
		dc.Stroke()
	case scene.ToolRect, scene.ToolRoundRect:
		b := s.Bounds()
		if s.Tool == scene.ToolRoundRect {
			rad := math.Min(12, math.Min(b.Width, b.Height)/4)
			dc.DrawRoundedRectangle(b.X, b.Y, b.Width, b.Height, rad)
		} else {
			dc.DrawRectangle(b.X, b.Y, b.Width, b.Height)
		}
		r.paint(dc, s)
	case scene.ToolCircle:
		c, rad := s.CircleGeometry()
		dc.DrawCircle(c.X, c.Y, rad)
		r.paint(dc, s)
	case scene.ToolLine:
		r.segment(dc, s)
	case scene.ToolDashedLine:
		dc.SetDash(s.Size*3, s.Size*2)
		r.segment(dc, s)
		dc.SetDash()
	case scene.ToolArrow:
		r.segment(dc, s)
		r.arrowHead(dc, s, scale)
	case scene.ToolText:
		r.drawText(dc, s, scale)
	}
}

func (r *Renderer) polyline(dc *gg.Context, pts []geom.Point) {
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	if len(pts) == 1 {
		// A tap leaves a dot, not nothing.
		dc.LineTo(pts[0].X+0.01, pts[0].Y)
	}
}

func (r *Renderer) segment(dc *gg.Context, s *scene.Shape) {
	if len(s.Points) < 2 {
		return
	}
	dc.SetHexColor(s.Color)
	dc.DrawLine(s.Points[0].X, s.Points[0].Y, s.Points[1].X, s.Points[1].Y)
	dc.Stroke()
}

// paint strokes or fills the queued path per the shape's fill flag.
func (r *Renderer) paint(dc *gg.Context, s *scene.Shape) {
	dc.SetHexColor(s.Color)
	if s.Filled {
		dc.Fill()
		return
	}
	dc.Stroke()
}

// arrowHead draws the two barbs at the end point.
func (r *Renderer) arrowHead(dc *gg.Context, s *scene.Shape, scale float64) {
	if len(s.Points) < 2 {
		return
	}
	from, to := s.Points[0], s.Points[1]
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	length := math.Max(arrowHeadLength/scale, s.Size*3)
	for _, da := range []float64{math.Pi - math.Pi/7, math.Pi + math.Pi/7} {
		dc.DrawLine(to.X, to.Y,
			to.X+length*math.Cos(angle+da),
			to.Y+length*math.Sin(angle+da))
	}
	dc.SetHexColor(s.Color)
	dc.Stroke()
}

func (r *Renderer) drawText(dc *gg.Context, s *scene.Shape, scale float64) {
	anchor := s.Points[0]
	dc.SetFontFace(r.face(scene.TextLineHeight * scale))
	dc.SetHexColor(s.Color)
	// Glyphs rasterize at screen resolution; positions stay in world
	// units under the camera transform.
	lineH := scene.TextLineHeight
	for i, line := range strings.Split(s.Text, "\n") {
		dc.DrawString(line, anchor.X, anchor.Y+float64(i)*lineH+lineH*0.8)
	}
}

// drawGlow outlines a shape's bounds in the accent color. Hover uses a
// faint pass, selection a stronger one.
func (r *Renderer) drawGlow(dc *gg.Context, s *scene.Shape, scale, alpha float64) {
	b := s.Bounds().Expand(selectionMargin / scale)
	dc.Push()
	if s.Rotation != 0 {
		c := s.Bounds().Center()
		dc.RotateAbout(s.Rotation, c.X, c.Y)
	}
	dc.SetRGBA(0.23, 0.51, 0.96, alpha)
	dc.SetLineWidth(3 / scale)
	dc.DrawRectangle(b.X, b.Y, b.Width, b.Height)
	dc.Stroke()
	dc.Pop()
}

// drawSelection paints the dashed box and, for unlocked shapes, the
// resize and rotation handles. Locked shapes show the box only.
func (r *Renderer) drawSelection(dc *gg.Context, s *scene.Shape, scale float64) {
	b := s.Bounds()
	box := b.Expand(selectionMargin / scale)

	dc.Push()
	if s.Rotation != 0 {
		c := b.Center()
		dc.RotateAbout(s.Rotation, c.X, c.Y)
	}

	dc.SetHexColor(AccentColor)
	dc.SetLineWidth(1.5 / scale)
	dc.SetDash(6/scale, 4/scale)
	dc.DrawRectangle(box.X, box.Y, box.Width, box.Height)
	dc.Stroke()
	dc.SetDash()

	if s.Locked {
		r.drawLockBadge(dc, box, scale)
		dc.Pop()
		return
	}

	resizable := s.Tool.IsTwoPoint() && len(s.Points) >= 2
	half := handleSize / scale / 2
	for _, hp := range hittest.HandlePoints(b, scale) {
		if hp.Handle != hittest.HandleRotate && !resizable {
			continue
		}
		if hp.Handle == hittest.HandleRotate {
			// Stem from the box to the rotation knob.
			dc.DrawLine(b.X+b.Width/2, box.Y, hp.Point.X, hp.Point.Y)
			dc.Stroke()
			dc.DrawCircle(hp.Point.X, hp.Point.Y, half)
		} else {
			dc.DrawRectangle(hp.Point.X-half, hp.Point.Y-half, 2*half, 2*half)
		}
		dc.SetHexColor(BackgroundColor)
		dc.FillPreserve()
		dc.SetHexColor(AccentColor)
		dc.Stroke()
	}
	dc.Pop()
}

// drawLockBadge marks a locked selection with a small padlock at the
// box's top-right corner.
func (r *Renderer) drawLockBadge(dc *gg.Context, box geom.Rect, scale float64) {
	sz := handleSize / scale
	cx := box.X + box.Width
	cy := box.Y
	dc.SetHexColor(AccentColor)
	dc.DrawRectangle(cx-sz/2, cy-sz/2, sz, sz*0.75)
	dc.Fill()
	dc.SetLineWidth(1.5 / scale)
	dc.DrawArc(cx, cy-sz/2, sz*0.3, math.Pi, 2*math.Pi)
	dc.Stroke()
}
