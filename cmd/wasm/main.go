//go:build js && wasm

package main

import (
	"encoding/base64"
	"encoding/json"
	"syscall/js"

	"github.com/scrawl/scrawl/backend-go/internal/engine"
	"github.com/scrawl/scrawl/backend-go/internal/export"
	"github.com/scrawl/scrawl/backend-go/internal/render"
	"github.com/scrawl/scrawl/backend-go/internal/scene"
)

var (
	eng      *engine.Engine
	renderer *render.Renderer
)

func main() {
	eng = engine.New(engine.Options{})
	var err error
	renderer, err = render.New()
	if err != nil {
		panic(err)
	}

	// Create the engine API object
	board := js.Global().Get("Object").New()

	// --- Input events (frontend → backend) ---
	board.Set("pointerDown", js.FuncOf(pointerDown))
	board.Set("pointerMove", js.FuncOf(pointerMove))
	board.Set("pointerUp", js.FuncOf(pointerUp))
	board.Set("pointerLeave", js.FuncOf(pointerLeave))
	board.Set("wheel", js.FuncOf(wheel))
	board.Set("keyDown", js.FuncOf(keyDown))
	board.Set("keyUp", js.FuncOf(keyUp))

	// --- Settings and commands ---
	board.Set("setTool", js.FuncOf(setTool))
	board.Set("setColor", js.FuncOf(setColor))
	board.Set("setStrokeSize", js.FuncOf(setStrokeSize))
	board.Set("setFilled", js.FuncOf(setFilled))
	board.Set("setShowGrid", js.FuncOf(setShowGrid))
	board.Set("setSnapToGrid", js.FuncOf(setSnapToGrid))
	board.Set("commitText", js.FuncOf(commitText))
	board.Set("cancelText", js.FuncOf(cancelText))
	board.Set("undo", js.FuncOf(undo))
	board.Set("redo", js.FuncOf(redo))
	board.Set("clear", js.FuncOf(clear))
	board.Set("togglePanel", js.FuncOf(togglePanel))
	board.Set("resize", js.FuncOf(resize))
	board.Set("zoom", js.FuncOf(zoom))
	board.Set("loadScene", js.FuncOf(loadScene))
	board.Set("loadSampleScene", js.FuncOf(loadSampleScene))

	// --- Queries (frontend ← backend) ---
	board.Set("renderFrame", js.FuncOf(renderFrame))
	board.Set("getState", js.FuncOf(getState))
	board.Set("getScene", js.FuncOf(getScene))
	board.Set("capture", js.FuncOf(capture))
	board.Set("exportSVG", js.FuncOf(exportSVG))

	// Register on global scope
	js.Global().Set("scrawlBoard", board)

	// Signal that WASM is ready
	js.Global().Set("scrawlWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

func pointerEvent(args []js.Value) engine.PointerEvent {
	ev := engine.PointerEvent{}
	if len(args) >= 2 {
		ev.X = args[0].Float()
		ev.Y = args[1].Float()
	}
	if len(args) >= 3 {
		ev.Button = engine.Button(args[2].Int())
	}
	if len(args) >= 4 {
		ev.Shift = args[3].Bool()
	}
	return ev
}

// --- Input handlers ---

func pointerDown(this js.Value, args []js.Value) interface{} {
	eng.PointerDown(pointerEvent(args))
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	eng.PointerMove(pointerEvent(args))
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	eng.PointerUp(pointerEvent(args))
	return nil
}

func pointerLeave(this js.Value, args []js.Value) interface{} {
	eng.PointerLeave()
	return nil
}

func wheel(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return nil
	}
	ev := engine.WheelEvent{
		X:      args[0].Float(),
		Y:      args[1].Float(),
		DeltaX: args[2].Float(),
		DeltaY: args[3].Float(),
	}
	if len(args) >= 5 {
		ev.Ctrl = args[4].Bool()
	}
	eng.Wheel(ev)
	return nil
}

func keyEvent(args []js.Value) engine.KeyEvent {
	ev := engine.KeyEvent{}
	if len(args) >= 1 {
		ev.Key = args[0].String()
	}
	if len(args) >= 2 {
		ev.Shift = args[1].Bool()
	}
	if len(args) >= 3 {
		ev.Ctrl = args[2].Bool()
	}
	return ev
}

func keyDown(this js.Value, args []js.Value) interface{} {
	eng.KeyDown(keyEvent(args))
	return nil
}

func keyUp(this js.Value, args []js.Value) interface{} {
	eng.KeyUp(keyEvent(args))
	return nil
}

// --- Settings and commands ---

func setTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetTool(scene.Tool(args[0].String()))
	return nil
}

func setColor(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetColor(args[0].String())
	return nil
}

func setStrokeSize(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetStrokeSize(args[0].Float())
	return nil
}

func setFilled(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetFilled(args[0].Bool())
	return nil
}

func setShowGrid(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetShowGrid(args[0].Bool())
	return nil
}

func setSnapToGrid(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetSnapToGrid(args[0].Bool())
	return nil
}

func commitText(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		eng.CancelText()
		return nil
	}
	eng.CommitText(args[0].String())
	return nil
}

func cancelText(this js.Value, args []js.Value) interface{} {
	eng.CancelText()
	return nil
}

func undo(this js.Value, args []js.Value) interface{} {
	eng.Undo()
	return nil
}

func redo(this js.Value, args []js.Value) interface{} {
	eng.Redo()
	return nil
}

func clear(this js.Value, args []js.Value) interface{} {
	eng.Clear()
	return nil
}

func togglePanel(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.TogglePanel())
}

func resize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.Resize(args[0].Int(), args[1].Int())
	return nil
}

func zoom(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	eng.Zoom(args[0].Float(), args[1].Float(), args[2].Float())
	return nil
}

func loadScene(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing scene JSON"})
	}
	var shapes []*scene.Shape
	if err := json.Unmarshal([]byte(args[0].String()), &shapes); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	eng.LoadShapes(shapes)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadSampleScene(this js.Value, args []js.Value) interface{} {
	eng.LoadSample()
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Query handlers ---

// renderFrame draws the current state and copies the RGBA pixels into
// the Uint8ClampedArray the frontend passes in. Returns the number of
// bytes copied so the caller can detect size mismatches.
func renderFrame(this js.Value, args []js.Value) interface{} {
	img := renderer.Frame(eng)
	if len(args) < 1 {
		return js.ValueOf(0)
	}
	n := js.CopyBytesToJS(args[0], img.Pix)
	return js.ValueOf(n)
}

func getState(this js.Value, args []js.Value) interface{} {
	sc := eng.Scene()
	w, h := eng.Size()
	return js.ValueOf(map[string]interface{}{
		"mode":       eng.Mode().String(),
		"tool":       string(eng.ActiveTool()),
		"selectedId": sc.SelectedID,
		"hoveredId":  sc.HoveredID,
		"canUndo":    eng.CanUndo(),
		"canRedo":    eng.CanRedo(),
		"showGrid":   eng.ShowGrid(),
		"snapToGrid": eng.SnapToGrid(),
		"showPanel":  eng.PanelVisible(),
		"width":      w,
		"height":     h,
		"scale":      eng.Camera().Scale,
	})
}

func getScene(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(eng.Scene().Shapes)
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(string(data))
}

// capture renders the board at its live resolution and returns the PNG
// as a base64 string for the frontend to download.
func capture(this js.Value, args []js.Value) interface{} {
	data, err := renderer.EncodePNG(eng)
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(base64.StdEncoding.EncodeToString(data))
}

func exportSVG(this js.Value, args []js.Value) interface{} {
	data := export.SVG(eng.Scene().Shapes)
	if data == nil {
		return js.ValueOf("")
	}
	return js.ValueOf(string(data))
}
