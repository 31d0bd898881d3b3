package render

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/scrawl/scrawl/backend-go/internal/engine"
	"github.com/scrawl/scrawl/backend-go/internal/scene"
)

func testEngine(t *testing.T) (*engine.Engine, *Renderer) {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return engine.New(engine.Options{Width: 200, Height: 150}), r
}

func TestFrameDimensionsAndBackground(t *testing.T) {
	e, r := testEngine(t)
	e.SetShowGrid(false)
	img := r.Frame(e)

	b := img.Bounds()
	if b.Dx() != 200 || b.Dy() != 150 {
		t.Fatalf("frame = %dx%d, want 200x150", b.Dx(), b.Dy())
	}
	if got := img.At(5, 5); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background pixel = %v, want opaque white", got)
	}
}

func TestShapesLeaveInk(t *testing.T) {
	e, r := testEngine(t)
	e.SetShowGrid(false)
	e.SetColor("#000000")
	e.SetFilled(true)
	e.SetTool(scene.ToolRect)
	e.PointerDown(engine.PointerEvent{X: 40, Y: 40})
	e.PointerMove(engine.PointerEvent{X: 120, Y: 100})
	e.PointerUp(engine.PointerEvent{X: 120, Y: 100})

	img := r.Frame(e)
	if got := img.At(80, 70); got == (color.RGBA{255, 255, 255, 255}) {
		t.Error("filled rect interior is still background")
	}
	if got := img.At(190, 140); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("pixel outside the rect = %v, want background", got)
	}
}

func TestMultilineTextRendersEachLine(t *testing.T) {
	e, r := testEngine(t)
	e.SetShowGrid(false)
	e.SetColor("#000000")
	e.SetTool(scene.ToolText)
	e.PointerDown(engine.PointerEvent{X: 20, Y: 20})
	e.PointerUp(engine.PointerEvent{X: 20, Y: 20})
	e.CommitText("MMMM\nMMMM\nMMMM")

	img := r.Frame(e)
	inked := func(y int) bool {
		for x := 20; x < 80; x++ {
			if img.At(x, y) != (color.RGBA{255, 255, 255, 255}) {
				return true
			}
		}
		return false
	}
	// One band per line at the nominal line height.
	for i, y := range []int{32, 56, 80} {
		if !inked(y) {
			t.Errorf("line %d left no ink near y=%d", i, y)
		}
	}
}

func TestEncodePNGMagic(t *testing.T) {
	e, r := testEngine(t)
	data, err := r.EncodePNG(e)
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("output does not start with the PNG signature")
	}
}

func TestSelectionChromeDoesNotPanic(t *testing.T) {
	e, r := testEngine(t)
	e.SetTool(scene.ToolCircle)
	e.PointerDown(engine.PointerEvent{X: 50, Y: 50})
	e.PointerMove(engine.PointerEvent{X: 110, Y: 50})
	e.PointerUp(engine.PointerEvent{X: 110, Y: 50})
	e.SetTool(scene.ToolSelect)
	e.PointerDown(engine.PointerEvent{X: 80, Y: 50})
	e.PointerUp(engine.PointerEvent{X: 80, Y: 50})
	if e.Scene().SelectedID == "" {
		t.Fatal("circle was not selected")
	}
	e.ToggleLock()
	r.Frame(e) // box plus lock badge
	e.ToggleLock()
	r.Frame(e) // box plus handles
}
