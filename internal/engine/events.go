package engine

// Button identifies which pointer button an event carries.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonAuxiliary
	ButtonSecondary
)

// PointerEvent is a pointer sample in screen pixels.
type PointerEvent struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button Button  `json:"button"`
	Shift  bool    `json:"shift"`
}

// WheelEvent is a scroll/pinch sample in screen pixels. Ctrl marks a
// zoom gesture; without it the wheel pans.
type WheelEvent struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DeltaX float64 `json:"deltaX"`
	DeltaY float64 `json:"deltaY"`
	Ctrl   bool    `json:"ctrl"`
}

// KeyEvent is a keyboard sample. Key uses DOM KeyboardEvent.key values
// ("ArrowLeft", "Delete", "z", " ", "Escape").
type KeyEvent struct {
	Key   string `json:"key"`
	Shift bool   `json:"shift"`
	Ctrl  bool   `json:"ctrl"`
}

// Key names the engine reacts to.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyDelete     = "Delete"
	KeyBackspace  = "Backspace"
	KeyEscape     = "Escape"
	KeySpace      = " "
)

// Mode is the single active interaction state.
type Mode int

const (
	ModeIdle Mode = iota
	ModePanning
	ModeDrawing
	ModeDragging
	ModeResizing
	ModeRotating
	ModeEditingText
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModePanning:
		return "panning"
	case ModeDrawing:
		return "drawing"
	case ModeDragging:
		return "dragging"
	case ModeResizing:
		return "resizing"
	case ModeRotating:
		return "rotating"
	case ModeEditingText:
		return "editingText"
	default:
		return "unknown"
	}
}
