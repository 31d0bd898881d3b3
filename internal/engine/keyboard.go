package engine

import "github.com/scrawl/scrawl/backend-go/internal/scene"

// nudge distances in world units.
const (
	nudgeStep     = 1.0
	nudgeFastStep = 10.0
)

// KeyDown routes a key press. Shortcuts only apply outside text entry;
// the host's input surface owns the keyboard while editing text.
func (e *Engine) KeyDown(ev KeyEvent) {
	if e.mode == ModeEditingText {
		if ev.Key == KeyEscape {
			e.CancelText()
		}
		return
	}

	switch ev.Key {
	case KeySpace:
		e.spaceHeld = true
		return
	case KeyEscape:
		// Cancel key ends the gesture exactly like pointer-up; the
		// gesture is never silently lost.
		e.PointerLeave()
		return
	case KeyArrowLeft:
		e.nudge(-step(ev.Shift), 0)
		return
	case KeyArrowRight:
		e.nudge(step(ev.Shift), 0)
		return
	case KeyArrowUp:
		e.nudge(0, -step(ev.Shift))
		return
	case KeyArrowDown:
		e.nudge(0, step(ev.Shift))
		return
	case KeyDelete, KeyBackspace:
		if e.mode == ModeIdle {
			e.DeleteSelected()
		}
		return
	}

	if ev.Ctrl {
		// History and clipboard shortcuts apply only between gestures.
		// Mid-gesture they would mutate the scene out from under the
		// pending pre-gesture snapshot.
		if e.mode != ModeIdle {
			return
		}
		switch ev.Key {
		case "z", "Z":
			if ev.Shift {
				e.Redo()
			} else {
				e.Undo()
			}
		case "y", "Y":
			e.Redo()
		case "c", "C":
			e.Copy()
		case "v", "V":
			e.Paste()
		case "d", "D":
			e.Duplicate()
		}
		return
	}

	switch ev.Key {
	case "l", "L":
		if e.mode == ModeIdle {
			e.ToggleLock()
		}
	case "g", "G":
		e.snapToGrid = !e.snapToGrid
	}
}

// KeyUp releases modifiers and closes a nudge gesture: key-down through
// key-up commits once, no matter how many repeats fired.
func (e *Engine) KeyUp(ev KeyEvent) {
	switch ev.Key {
	case KeySpace:
		e.spaceHeld = false
	case KeyArrowLeft, KeyArrowRight, KeyArrowUp, KeyArrowDown:
		if e.nudging {
			e.commit(e.preGesture)
			e.preGesture = nil
			e.nudging = false
		}
	}
}

func step(fast bool) float64 {
	if fast {
		return nudgeFastStep
	}
	return nudgeStep
}

// nudge translates the selected unlocked shape. The pre-gesture
// snapshot is taken on the first repeat only.
func (e *Engine) nudge(dx, dy float64) {
	if e.mode != ModeIdle {
		return
	}
	s := e.scn.Selected()
	if s == nil || s.Locked {
		return
	}
	if !e.nudging {
		e.preGesture = scene.CloneShapes(e.scn.Shapes)
		e.nudging = true
	}
	s.Translate(dx, dy)
}
