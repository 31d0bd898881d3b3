// Package export serializes a shape sequence to portable formats and
// serves them over HTTP. SVG is emitted directly; raster formats go
// through the render package.
package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/scrawl/scrawl/backend-go/internal/geom"
	"github.com/scrawl/scrawl/backend-go/internal/scene"
)

// SVGMargin pads the content bounding box on every side, in world units.
const SVGMargin = 24.0

const backgroundColor = "#FFFFFF"

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// SVG renders the shapes as a standalone SVG document sized to their
// combined bounding box plus a margin. An empty sequence yields nil.
func SVG(shapes []*scene.Shape) []byte {
	if len(shapes) == 0 {
		return nil
	}

	bounds := shapes[0].Bounds()
	for _, s := range shapes[1:] {
		bounds = bounds.Union(s.Bounds())
	}
	bounds = bounds.Expand(SVGMargin)

	var b strings.Builder
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s">`+"\n",
		num(bounds.X), num(bounds.Y), num(bounds.Width), num(bounds.Height),
		num(bounds.Width), num(bounds.Height))
	fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		num(bounds.X), num(bounds.Y), num(bounds.Width), num(bounds.Height), backgroundColor)

	for _, s := range shapes {
		writeShape(&b, s)
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

func writeShape(b *strings.Builder, s *scene.Shape) {
	if len(s.Points) == 0 {
		return
	}
	if s.Rotation != 0 {
		c := s.Bounds().Center()
		fmt.Fprintf(b, `<g transform="rotate(%s %s %s)">`+"\n",
			num(s.Rotation*180/math.Pi), num(c.X), num(c.Y))
		defer b.WriteString("</g>\n")
	}

	switch s.Tool {
	case scene.ToolPencil:
		writePolyline(b, s.Points, s.Color, s.Size)
	case scene.ToolEraser:
		// Erasure is a stroke in the background color, matching how
		// the live canvas composites it.
		writePolyline(b, s.Points, backgroundColor, s.Size*4)
	case scene.ToolRect, scene.ToolRoundRect:
		r := s.Bounds()
		rx := 0.0
		if s.Tool == scene.ToolRoundRect {
			rx = math.Min(12, math.Min(r.Width, r.Height)/4)
		}
		fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" rx="%s" %s/>`+"\n",
			num(r.X), num(r.Y), num(r.Width), num(r.Height), num(rx), paint(s))
	case scene.ToolCircle:
		c, rad := s.CircleGeometry()
		fmt.Fprintf(b, `<circle cx="%s" cy="%s" r="%s" %s/>`+"\n",
			num(c.X), num(c.Y), num(rad), paint(s))
	case scene.ToolLine:
		writeLine(b, s, "")
	case scene.ToolDashedLine:
		writeLine(b, s, fmt.Sprintf(` stroke-dasharray="%s %s"`, num(s.Size*3), num(s.Size*2)))
	case scene.ToolArrow:
		writeLine(b, s, "")
		writeArrowHead(b, s)
	case scene.ToolText:
		writeText(b, s)
	}
}

func writePolyline(b *strings.Builder, pts []geom.Point, color string, width float64) {
	var coords strings.Builder
	for i, p := range pts {
		if i > 0 {
			coords.WriteByte(' ')
		}
		fmt.Fprintf(&coords, "%s,%s", num(p.X), num(p.Y))
	}
	fmt.Fprintf(b,
		`<polyline points="%s" fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round"/>`+"\n",
		coords.String(), color, num(width))
}

func writeLine(b *strings.Builder, s *scene.Shape, extra string) {
	if len(s.Points) < 2 {
		return
	}
	fmt.Fprintf(b,
		`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" stroke-linecap="round"%s/>`+"\n",
		num(s.Points[0].X), num(s.Points[0].Y), num(s.Points[1].X), num(s.Points[1].Y),
		s.Color, num(s.Size), extra)
}

func writeArrowHead(b *strings.Builder, s *scene.Shape) {
	if len(s.Points) < 2 {
		return
	}
	from, to := s.Points[0], s.Points[1]
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	length := math.Max(14, s.Size*3)
	for _, da := range []float64{math.Pi - math.Pi/7, math.Pi + math.Pi/7} {
		fmt.Fprintf(b,
			`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" stroke-linecap="round"/>`+"\n",
			num(to.X), num(to.Y),
			num(to.X+length*math.Cos(angle+da)), num(to.Y+length*math.Sin(angle+da)),
			s.Color, num(s.Size))
	}
}

func writeText(b *strings.Builder, s *scene.Shape) {
	anchor := s.Points[0]
	fmt.Fprintf(b, `<text x="%s" y="%s" fill="%s" font-family="sans-serif" font-size="%s">`,
		num(anchor.X), num(anchor.Y+scene.TextLineHeight*0.8), s.Color, num(scene.TextLineHeight))
	lines := strings.Split(s.Text, "\n")
	if len(lines) == 1 {
		textEscaper.WriteString(b, lines[0])
	} else {
		for i, line := range lines {
			dy := 0.0
			if i > 0 {
				dy = scene.TextLineHeight
			}
			fmt.Fprintf(b, `<tspan x="%s" dy="%s">`, num(anchor.X), num(dy))
			textEscaper.WriteString(b, line)
			b.WriteString("</tspan>")
		}
	}
	b.WriteString("</text>\n")
}

// paint emits the fill/stroke attribute pair for a closed shape.
func paint(s *scene.Shape) string {
	if s.Filled {
		return fmt.Sprintf(`fill="%s"`, s.Color)
	}
	return fmt.Sprintf(`fill="none" stroke="%s" stroke-width="%s"`, s.Color, num(s.Size))
}

// num formats a coordinate with float noise rounded away.
func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*1000)/1000, 'f', -1, 64)
}
