package session

import (
	"encoding/json"

	"github.com/scrawl/scrawl/backend-go/internal/camera"
	"github.com/scrawl/scrawl/backend-go/internal/scene"
)

// Message is the envelope for every frame in either direction.
type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Connection
	TypeWelcome = "welcome"
	TypeError   = "error"

	// Client → server input events
	TypePointer = "input.pointer"
	TypeWheel   = "input.wheel"
	TypeKey     = "input.key"
	TypeText    = "input.text"

	// Client → server settings and commands
	TypeTool    = "tool.set"
	TypeCommand = "command"

	// Scene transfer
	TypeSceneLoad  = "scene.load"
	TypeSceneState = "scene.state"
)

// Pointer actions.
const (
	ActionDown  = "down"
	ActionMove  = "move"
	ActionUp    = "up"
	ActionLeave = "leave"
)

// Command names accepted in a CommandPayload.
const (
	CmdUndo        = "undo"
	CmdRedo        = "redo"
	CmdClear       = "clear"
	CmdCopy        = "copy"
	CmdPaste       = "paste"
	CmdDuplicate   = "duplicate"
	CmdDelete      = "delete"
	CmdToggleLock  = "toggleLock"
	CmdTogglePanel = "togglePanel"
	CmdLoadSample  = "loadSample"
	CmdZoom        = "zoom"
	CmdResize      = "resize"
)

type PointerPayload struct {
	Action string  `json:"action"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button int     `json:"button"`
	Shift  bool    `json:"shift,omitempty"`
}

type WheelPayload struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DeltaX float64 `json:"deltaX"`
	DeltaY float64 `json:"deltaY"`
	Ctrl   bool    `json:"ctrl,omitempty"`
}

type KeyPayload struct {
	Action string `json:"action"`
	Key    string `json:"key"`
	Shift  bool   `json:"shift,omitempty"`
	Ctrl   bool   `json:"ctrl,omitempty"`
}

// TextPayload finalizes or cancels the pending text entry.
type TextPayload struct {
	Value  string `json:"value"`
	Cancel bool   `json:"cancel,omitempty"`
}

// ToolPayload carries tool settings. Pointer fields distinguish "not
// sent" from a zero value.
type ToolPayload struct {
	Tool       string   `json:"tool,omitempty"`
	Color      string   `json:"color,omitempty"`
	Size       *float64 `json:"size,omitempty"`
	Filled     *bool    `json:"filled,omitempty"`
	ShowGrid   *bool    `json:"showGrid,omitempty"`
	SnapToGrid *bool    `json:"snapToGrid,omitempty"`
}

type CommandPayload struct {
	Name   string  `json:"name"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Factor float64 `json:"factor,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
}

type SceneLoadPayload struct {
	Shapes []*scene.Shape `json:"shapes"`
}

// SceneStatePayload is the full visible state pushed after each
// processed event.
type SceneStatePayload struct {
	Shapes     []*scene.Shape `json:"shapes"`
	Preview    *scene.Shape   `json:"preview,omitempty"`
	SelectedID string         `json:"selectedId,omitempty"`
	HoveredID  string         `json:"hoveredId,omitempty"`
	Camera     camera.Camera  `json:"camera"`
	Mode       string         `json:"mode"`
	Tool       string         `json:"tool"`
	CanUndo    bool           `json:"canUndo"`
	CanRedo    bool           `json:"canRedo"`
	ShowGrid   bool           `json:"showGrid"`
	SnapToGrid bool           `json:"snapToGrid"`
	ShowPanel  bool           `json:"showPanel"`
}

type WelcomePayload struct {
	SessionID string `json:"sessionId"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
