// Package engine is the whiteboard's interactive core: one Engine owns
// the camera, scene, history, clipboard, and interaction mode, and
// processes pointer/keyboard/wheel events synchronously to completion.
// All mutation must happen from a single logical owner (one goroutine);
// the engine itself never spawns work and never blocks.
package engine

import (
	"math"
	"strings"

	"github.com/scrawl/scrawl/backend-go/internal/camera"
	"github.com/scrawl/scrawl/backend-go/internal/geom"
	"github.com/scrawl/scrawl/backend-go/internal/history"
	"github.com/scrawl/scrawl/backend-go/internal/hittest"
	"github.com/scrawl/scrawl/backend-go/internal/scene"
)

// Pasted and duplicated shapes land offset from their source by this
// many screen pixels so they never exactly overlap it.
const PasteOffset = 16.0

// Options configures a new engine. Zero values fall back to defaults.
type Options struct {
	Width        int
	Height       int
	HistoryDepth int
	GridSpacing  float64
	IDProvider   scene.IDProvider
}

// Engine owns the whole interactive state of one whiteboard.
type Engine struct {
	cam   camera.Camera
	scn   *scene.Scene
	hist  *history.History
	clip  scene.Clipboard
	newID scene.IDProvider

	width, height int
	gridSpacing   float64
	showGrid      bool
	snapToGrid    bool
	showPanel     bool

	// Tool settings applied to newly created shapes.
	tool       scene.Tool
	color      string
	strokeSize float64
	filled     bool

	// Gesture state. Exactly one mode is active at a time; the fields
	// below are only meaningful for the mode that set them.
	mode         Mode
	drawing      *scene.Shape // freehand shape growing in the working sequence
	anchor       geom.Point   // two-point anchor (world)
	cursor       geom.Point   // provisional end point (world)
	shiftHeld    bool
	spaceHeld    bool
	lastScreen   geom.Point
	gestureStart geom.Point // world position at pointer-down
	origBounds   geom.Rect  // dragged shape's bounds at pointer-down
	pivot        geom.Point // rotation/resize center at pointer-down
	activeHandle hittest.Handle
	preGesture   []*scene.Shape // pre-mutation snapshot for in-place gestures
	gestureMoved bool           // drag/resize/rotate saw at least one move sample
	nudging      bool
	textAnchor   geom.Point
}

// New creates an engine with an empty scene.
func New(opts Options) *Engine {
	if opts.Width <= 0 {
		opts.Width = 1280
	}
	if opts.Height <= 0 {
		opts.Height = 720
	}
	if opts.GridSpacing <= 0 {
		opts.GridSpacing = 20
	}
	if opts.IDProvider == nil {
		opts.IDProvider = scene.DefaultIDProvider()
	}
	return &Engine{
		cam:         camera.New(),
		scn:         scene.New(),
		hist:        history.New(opts.HistoryDepth),
		newID:       opts.IDProvider,
		width:       opts.Width,
		height:      opts.Height,
		gridSpacing: opts.GridSpacing,
		showGrid:    true,
		tool:        scene.ToolPencil,
		color:       "#111827",
		strokeSize:  3,
	}
}

// --- Host contract ---

// Clear resets shapes, history, and selection to empty.
func (e *Engine) Clear() {
	e.scn.Reset()
	e.hist.Clear()
	e.drawing = nil
	e.mode = ModeIdle
}

// TogglePanel flips the auxiliary panel flag and returns the new value.
func (e *Engine) TogglePanel() bool {
	e.showPanel = !e.showPanel
	return e.showPanel
}

// Resize keeps the engine's notion of the canvas size in sync with the
// host container.
func (e *Engine) Resize(width, height int) {
	if width > 0 {
		e.width = width
	}
	if height > 0 {
		e.height = height
	}
}

// --- Tool settings ---

// SetTool switches the active tool. Hover is only meaningful for the
// selection tool; selection is dropped when leaving it.
func (e *Engine) SetTool(t scene.Tool) {
	e.tool = t
	e.scn.HoveredID = ""
	if t != scene.ToolSelect {
		e.scn.SelectedID = ""
	}
}

// SetColor sets the stroke/fill color for new shapes.
func (e *Engine) SetColor(c string) { e.color = c }

// SetStrokeSize sets the visual stroke width in screen pixels. The
// world-unit size is derived per shape at creation time.
func (e *Engine) SetStrokeSize(px float64) {
	if px > 0 {
		e.strokeSize = px
	}
}

// SetFilled controls whether new closed shapes are filled.
func (e *Engine) SetFilled(f bool) { e.filled = f }

// SetShowGrid controls grid rendering.
func (e *Engine) SetShowGrid(v bool) { e.showGrid = v }

// SetSnapToGrid controls grid snapping.
func (e *Engine) SetSnapToGrid(v bool) { e.snapToGrid = v }

// --- History ---

// Undo restores the newest undo snapshot; no-op when the stack is empty.
func (e *Engine) Undo() {
	if shapes, ok := e.hist.Undo(e.scn.Shapes); ok {
		e.scn.Shapes = shapes
		e.reconcileSelection()
	}
}

// Redo mirrors Undo.
func (e *Engine) Redo() {
	if shapes, ok := e.hist.Redo(e.scn.Shapes); ok {
		e.scn.Shapes = shapes
		e.reconcileSelection()
	}
}

// commit records the pre-mutation snapshot before the caller replaces or
// has replaced the live sequence. A gesture that produced N pointer-move
// samples still commits exactly once.
func (e *Engine) commit(preMutation []*scene.Shape) {
	e.hist.Push(preMutation)
}

func (e *Engine) reconcileSelection() {
	if e.scn.Selected() == nil {
		e.scn.SelectedID = ""
	}
	if e.scn.ByID(e.scn.HoveredID) == nil {
		e.scn.HoveredID = ""
	}
}

// --- Clipboard ---

// Copy places a copy of the selected shape on the clipboard.
func (e *Engine) Copy() {
	if s := e.scn.Selected(); s != nil {
		e.clip.Set(s)
	}
}

// Paste materializes the clipboard shape with a new id, offset from the
// source, and always unlocked. The pasted shape becomes the selection.
func (e *Engine) Paste() {
	s := e.clip.Take()
	if s == nil {
		return
	}
	e.commit(e.scn.Shapes)
	d := PasteOffset / e.cam.Scale
	s.ID = e.newID()
	s.Locked = false
	s.Translate(d, d)
	e.clip.Set(s) // repeated pastes keep stepping away from the source
	e.scn.Append(s)
	e.scn.SelectedID = s.ID
}

// Duplicate copies the selection and pastes it in one action.
func (e *Engine) Duplicate() {
	if e.scn.Selected() == nil {
		return
	}
	e.Copy()
	e.Paste()
}

// --- Selection ops ---

// DeleteSelected removes the selected shape unless it is locked.
func (e *Engine) DeleteSelected() {
	s := e.scn.Selected()
	if s == nil || s.Locked {
		return
	}
	e.commit(e.scn.Shapes)
	e.scn.Remove(s.ID)
}

// ToggleLock flips the lock flag on the selection. Lock state is not
// history-tracked: toggling it is deliberately not undoable.
func (e *Engine) ToggleLock() {
	if s := e.scn.Selected(); s != nil {
		s.Locked = !s.Locked
	}
}

// --- Queries ---

func (e *Engine) Camera() camera.Camera  { return e.cam }
func (e *Engine) Scene() *scene.Scene    { return e.scn }
func (e *Engine) Mode() Mode             { return e.mode }
func (e *Engine) ActiveTool() scene.Tool { return e.tool }
func (e *Engine) Size() (int, int)       { return e.width, e.height }
func (e *Engine) ShowGrid() bool         { return e.showGrid }
func (e *Engine) SnapToGrid() bool       { return e.snapToGrid }
func (e *Engine) GridSpacing() float64   { return e.gridSpacing }
func (e *Engine) PanelVisible() bool     { return e.showPanel }
func (e *Engine) CanUndo() bool          { return e.hist.CanUndo() }
func (e *Engine) CanRedo() bool          { return e.hist.CanRedo() }

// LoadShapes replaces the scene contents wholesale, dropping history
// and selection. Hosts use it to hydrate an engine from a wire payload.
// Wire payloads are untrusted: missing or duplicate ids would make
// lookups by id ambiguous, so offenders get fresh ids on the way in.
func (e *Engine) LoadShapes(shapes []*scene.Shape) {
	e.Clear()
	loaded := scene.CloneShapes(shapes)
	seen := make(map[string]bool, len(loaded))
	for _, s := range loaded {
		if s.ID == "" || seen[s.ID] {
			s.ID = e.newID()
		}
		seen[s.ID] = true
	}
	e.scn.Shapes = loaded
}

// LoadSample replaces the scene with the built-in sample content.
func (e *Engine) LoadSample() {
	e.Clear()
	e.scn = scene.SampleScene(e.newID)
}

// Preview returns the render-only in-progress shape for a two-point
// draw gesture, or nil. It never enters the committed sequence.
func (e *Engine) Preview() *scene.Shape {
	if e.mode != ModeDrawing || e.drawing != nil {
		return nil
	}
	end := constrainEnd(e.anchor, e.cursor, e.shiftHeld)
	return &scene.Shape{
		ID:     "preview",
		Tool:   e.tool,
		Points: []geom.Point{e.anchor, end},
		Color:  e.color,
		Size:   e.strokeSize / e.cam.Scale,
		Filled: e.filled && e.tool.IsClosed(),
	}
}

// --- Text entry ---

// TextAnchor returns the world position the pending text entry is
// anchored at. Only meaningful while editing text.
func (e *Engine) TextAnchor() geom.Point { return e.textAnchor }

// CommitText finalizes the pending text entry. Empty content discards
// without a history entry.
func (e *Engine) CommitText(value string) {
	if e.mode != ModeEditingText {
		return
	}
	e.mode = ModeIdle
	if strings.TrimSpace(value) == "" {
		return
	}
	e.commit(e.scn.Shapes)
	e.scn.Append(&scene.Shape{
		ID:     e.newID(),
		Tool:   scene.ToolText,
		Points: []geom.Point{e.textAnchor},
		Color:  e.color,
		Size:   e.strokeSize / e.cam.Scale,
		Text:   value,
	})
}

// CancelText discards the pending text entry without side effects.
func (e *Engine) CancelText() {
	if e.mode == ModeEditingText {
		e.mode = ModeIdle
	}
}

// --- Helpers ---

// snap rounds a world point to the grid when snapping is enabled.
func (e *Engine) snap(p geom.Point) geom.Point {
	if !e.snapToGrid || e.gridSpacing <= 0 {
		return p
	}
	return geom.Point{
		X: math.Round(p.X/e.gridSpacing) * e.gridSpacing,
		Y: math.Round(p.Y/e.gridSpacing) * e.gridSpacing,
	}
}

// constrainEnd applies the shift square/circle lock: the end point is
// forced to equal width and height relative to the anchor.
func constrainEnd(anchor, end geom.Point, shift bool) geom.Point {
	if !shift {
		return end
	}
	dx := end.X - anchor.X
	dy := end.Y - anchor.Y
	m := math.Max(math.Abs(dx), math.Abs(dy))
	sx, sy := 1.0, 1.0
	if dx < 0 {
		sx = -1
	}
	if dy < 0 {
		sy = -1
	}
	return geom.Point{X: anchor.X + sx*m, Y: anchor.Y + sy*m}
}
