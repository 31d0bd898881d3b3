package engine

import (
	"math"

	"github.com/scrawl/scrawl/backend-go/internal/geom"
	"github.com/scrawl/scrawl/backend-go/internal/hittest"
	"github.com/scrawl/scrawl/backend-go/internal/scene"
)

// wheelZoomIntensity converts wheel delta-Y into a zoom factor exponent.
const wheelZoomIntensity = 0.002

// PointerDown starts a gesture. Exactly one interactive mode is active
// at any time; pointer-down in a non-idle mode is ignored.
func (e *Engine) PointerDown(ev PointerEvent) {
	if e.mode != ModeIdle {
		return
	}
	e.shiftHeld = ev.Shift
	e.lastScreen = geom.Point{X: ev.X, Y: ev.Y}
	e.gestureMoved = false
	world := e.cam.ToWorld(ev.X, ev.Y)

	// Pan wins over every tool: dedicated tool, held modifier, or the
	// auxiliary button.
	if e.tool == scene.ToolPan || e.spaceHeld || ev.Button == ButtonAuxiliary {
		e.mode = ModePanning
		return
	}
	if ev.Button != ButtonPrimary {
		return
	}

	switch {
	case e.tool == scene.ToolSelect:
		e.pointerDownSelect(world)
	case e.tool.IsFreehand():
		e.preGesture = scene.CloneShapes(e.scn.Shapes)
		s := &scene.Shape{
			ID:     e.newID(),
			Tool:   e.tool,
			Points: []geom.Point{e.snap(world)},
			Color:  e.color,
			Size:   e.strokeSize / e.cam.Scale,
		}
		e.scn.Append(s)
		e.drawing = s
		e.mode = ModeDrawing
	case e.tool.IsTwoPoint():
		e.anchor = e.snap(world)
		e.cursor = e.anchor
		e.drawing = nil
		e.mode = ModeDrawing
	case e.tool == scene.ToolText:
		e.textAnchor = e.snap(world)
		e.mode = ModeEditingText
	}
}

// pointerDownSelect resolves a selection-tool press: handles first, then
// body, then empty space.
func (e *Engine) pointerDownSelect(world geom.Point) {
	if sel := e.scn.Selected(); sel != nil {
		if h := hittest.HandleAt(world, sel, e.cam.Scale); h != hittest.HandleNone {
			e.preGesture = scene.CloneShapes(e.scn.Shapes)
			e.pivot = sel.Bounds().Center()
			e.activeHandle = h
			e.gestureStart = world
			if h == hittest.HandleRotate {
				e.mode = ModeRotating
			} else {
				e.mode = ModeResizing
			}
			return
		}
	}

	id := hittest.Topmost(e.scn.Shapes, world, e.cam.Scale)
	e.scn.SelectedID = id
	if id == "" {
		return
	}
	s := e.scn.ByID(id)
	if s.Locked {
		return // locked shapes can be selected but never dragged
	}
	e.preGesture = scene.CloneShapes(e.scn.Shapes)
	e.gestureStart = world
	e.origBounds = s.Bounds()
	e.mode = ModeDragging
}

// PointerMove advances the active gesture, or updates hover when idle.
func (e *Engine) PointerMove(ev PointerEvent) {
	e.shiftHeld = ev.Shift
	screen := geom.Point{X: ev.X, Y: ev.Y}
	world := e.cam.ToWorld(ev.X, ev.Y)

	switch e.mode {
	case ModePanning:
		e.cam.PanBy(screen.X-e.lastScreen.X, screen.Y-e.lastScreen.Y)
	case ModeDrawing:
		if e.drawing != nil {
			e.drawing.Points = append(e.drawing.Points, e.snap(world))
		} else {
			e.cursor = e.snap(world)
		}
	case ModeDragging:
		e.moveDrag(world)
	case ModeResizing:
		e.moveResize(world)
	case ModeRotating:
		e.moveRotate(world)
	case ModeIdle:
		if e.tool == scene.ToolSelect {
			e.scn.HoveredID = hittest.Topmost(e.scn.Shapes, world, e.cam.Scale)
		}
	}
	e.lastScreen = screen
}

// moveDrag repositions the selected shape rigidly: the target position
// is derived from the gesture origin (not incrementally) so grid
// snapping cannot accumulate drift.
func (e *Engine) moveDrag(world geom.Point) {
	s := e.scn.Selected()
	if s == nil {
		return
	}
	e.gestureMoved = true
	target := e.snap(geom.Point{
		X: e.origBounds.X + (world.X - e.gestureStart.X),
		Y: e.origBounds.Y + (world.Y - e.gestureStart.Y),
	})
	b := s.Bounds()
	s.Translate(target.X-b.X, target.Y-b.Y)
}

// moveResize applies the 8 standard handle semantics in the shape's
// local frame: corner handles move both axes, edge handles one.
func (e *Engine) moveResize(world geom.Point) {
	s := e.scn.Selected()
	if s == nil || len(s.Points) < 2 {
		return
	}
	e.gestureMoved = true
	q := world
	if s.Rotation != 0 {
		q = geom.RotateAbout(s.Rotation, e.pivot.X, e.pivot.Y).Invert().Apply(world)
	}
	q = e.snap(q)

	p0 := &s.Points[0]
	p1 := &s.Points[1]
	loX, hiX := p0, p1
	if p1.X < p0.X {
		loX, hiX = p1, p0
	}
	loY, hiY := p0, p1
	if p1.Y < p0.Y {
		loY, hiY = p1, p0
	}

	switch e.activeHandle {
	case hittest.HandleNW, hittest.HandleW, hittest.HandleSW:
		loX.X = q.X
	case hittest.HandleNE, hittest.HandleE, hittest.HandleSE:
		hiX.X = q.X
	}
	switch e.activeHandle {
	case hittest.HandleNW, hittest.HandleN, hittest.HandleNE:
		loY.Y = q.Y
	case hittest.HandleSW, hittest.HandleS, hittest.HandleSE:
		hiY.Y = q.Y
	}
}

// moveRotate follows the pointer with the shape's rotation, offset so
// that the handle's resting position above the box reads as zero.
func (e *Engine) moveRotate(world geom.Point) {
	s := e.scn.Selected()
	if s == nil {
		return
	}
	e.gestureMoved = true
	s.Rotation = math.Atan2(world.Y-e.pivot.Y, world.X-e.pivot.X) + math.Pi/2
}

// PointerUp finalizes the active gesture with exactly one commit for
// any scene-mutating mode.
func (e *Engine) PointerUp(ev PointerEvent) {
	e.shiftHeld = ev.Shift
	switch e.mode {
	case ModePanning:
		// Pan is not a scene mutation; no history entry.
	case ModeDrawing:
		if e.drawing != nil {
			e.commit(e.preGesture)
			e.drawing = nil
		} else {
			// The release position is the final sample even when no
			// move event preceded it.
			e.cursor = e.snap(e.cam.ToWorld(ev.X, ev.Y))
			e.finishTwoPoint()
		}
	case ModeDragging, ModeResizing, ModeRotating:
		// A press-and-release that never moved is a plain click: no
		// mutation happened and no history entry is recorded.
		if e.gestureMoved {
			e.commit(e.preGesture)
		}
	default:
		return
	}
	e.preGesture = nil
	e.mode = ModeIdle
}

// finishTwoPoint materializes the previewed shape, shift constraint
// applied, and commits. A release without movement still commits a
// zero-size shape; see PointerLeave.
func (e *Engine) finishTwoPoint() {
	end := constrainEnd(e.anchor, e.cursor, e.shiftHeld)
	e.commit(e.scn.Shapes)
	e.scn.Append(&scene.Shape{
		ID:     e.newID(),
		Tool:   e.tool,
		Points: []geom.Point{e.anchor, end},
		Color:  e.color,
		Size:   e.strokeSize / e.cam.Scale,
		Filled: e.filled && e.tool.IsClosed(),
	})
}

// PointerLeave ends any in-progress gesture as if pointer-up fired at
// the last known position. This can commit a degenerate (zero-size)
// shape; that is the current contract rather than silently dropping the
// gesture.
func (e *Engine) PointerLeave() {
	switch e.mode {
	case ModePanning, ModeDrawing, ModeDragging, ModeResizing, ModeRotating:
		e.PointerUp(PointerEvent{X: e.lastScreen.X, Y: e.lastScreen.Y, Shift: e.shiftHeld})
	}
}

// Wheel pans on a plain gesture and zooms, anchored at the pointer,
// when the ctrl/pinch modifier is set.
func (e *Engine) Wheel(ev WheelEvent) {
	if ev.Ctrl {
		e.Zoom(ev.X, ev.Y, math.Exp(-ev.DeltaY*wheelZoomIntensity))
		return
	}
	e.cam.PanBy(-ev.DeltaX, -ev.DeltaY)
}

// Zoom rescales about a screen position with a clamped factor.
func (e *Engine) Zoom(sx, sy, factor float64) {
	e.cam.ZoomAt(sx, sy, factor)
}
