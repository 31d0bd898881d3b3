// Package session runs one whiteboard engine per websocket connection.
// The read loop is the engine's single owner: events apply in arrival
// order and every processed message is answered with a fresh scene
// snapshot, so the client never needs to reconcile partial updates.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"

	"github.com/scrawl/scrawl/backend-go/internal/engine"
	"github.com/scrawl/scrawl/backend-go/internal/scene"
	"github.com/scrawl/scrawl/backend-go/internal/typeid"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 1 << 20
)

// Session couples one connection to one engine.
type Session struct {
	ID   string
	conn *websocket.Conn
	eng  *engine.Engine
	send chan []byte
	seq  int64
}

func New(conn *websocket.Conn, opts engine.Options) *Session {
	return &Session{
		ID:   typeid.NewSessionID(),
		conn: conn,
		eng:  engine.New(opts),
		send: make(chan []byte, 64),
	}
}

// Engine exposes the underlying engine for tests.
func (s *Session) Engine() *engine.Engine { return s.eng }

// Run services the connection until the peer goes away or ctx ends.
func (s *Session) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.writePump(ctx)

	w, h := s.eng.Size()
	s.push(TypeWelcome, WelcomePayload{SessionID: s.ID, Width: w, Height: h})
	s.pushState()

	s.readLoop(ctx)
}

func (s *Session) readLoop(ctx context.Context) {
	defer s.conn.Close(websocket.StatusNormalClosure, "")

	s.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "session", s.ID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "session", s.ID)
			s.push(TypeError, ErrorPayload{Message: "invalid message"})
			continue
		}

		s.Handle(&msg)
		s.pushState()
	}
}

// Handle applies one message to the engine. Unknown types and malformed
// payloads are ignored; input handling never fails a session.
func (s *Session) Handle(msg *Message) {
	switch msg.Type {
	case TypePointer:
		var p PointerPayload
		if json.Unmarshal(msg.Payload, &p) != nil {
			return
		}
		ev := engine.PointerEvent{X: p.X, Y: p.Y, Button: engine.Button(p.Button), Shift: p.Shift}
		switch p.Action {
		case ActionDown:
			s.eng.PointerDown(ev)
		case ActionMove:
			s.eng.PointerMove(ev)
		case ActionUp:
			s.eng.PointerUp(ev)
		case ActionLeave:
			s.eng.PointerLeave()
		}

	case TypeWheel:
		var p WheelPayload
		if json.Unmarshal(msg.Payload, &p) != nil {
			return
		}
		s.eng.Wheel(engine.WheelEvent{X: p.X, Y: p.Y, DeltaX: p.DeltaX, DeltaY: p.DeltaY, Ctrl: p.Ctrl})

	case TypeKey:
		var p KeyPayload
		if json.Unmarshal(msg.Payload, &p) != nil {
			return
		}
		ev := engine.KeyEvent{Key: p.Key, Shift: p.Shift, Ctrl: p.Ctrl}
		if p.Action == ActionUp {
			s.eng.KeyUp(ev)
		} else {
			s.eng.KeyDown(ev)
		}

	case TypeText:
		var p TextPayload
		if json.Unmarshal(msg.Payload, &p) != nil {
			return
		}
		if p.Cancel {
			s.eng.CancelText()
		} else {
			s.eng.CommitText(p.Value)
		}

	case TypeTool:
		var p ToolPayload
		if json.Unmarshal(msg.Payload, &p) != nil {
			return
		}
		if p.Tool != "" {
			s.eng.SetTool(scene.Tool(p.Tool))
		}
		if p.Color != "" {
			s.eng.SetColor(p.Color)
		}
		if p.Size != nil {
			s.eng.SetStrokeSize(*p.Size)
		}
		if p.Filled != nil {
			s.eng.SetFilled(*p.Filled)
		}
		if p.ShowGrid != nil {
			s.eng.SetShowGrid(*p.ShowGrid)
		}
		if p.SnapToGrid != nil {
			s.eng.SetSnapToGrid(*p.SnapToGrid)
		}

	case TypeCommand:
		var p CommandPayload
		if json.Unmarshal(msg.Payload, &p) != nil {
			return
		}
		s.command(p)

	case TypeSceneLoad:
		var p SceneLoadPayload
		if json.Unmarshal(msg.Payload, &p) != nil {
			return
		}
		s.eng.LoadShapes(p.Shapes)

	default:
		slog.Debug("unknown message type", "type", msg.Type, "session", s.ID)
	}
}

func (s *Session) command(p CommandPayload) {
	switch p.Name {
	case CmdUndo:
		s.eng.Undo()
	case CmdRedo:
		s.eng.Redo()
	case CmdClear:
		s.eng.Clear()
	case CmdCopy:
		s.eng.Copy()
	case CmdPaste:
		s.eng.Paste()
	case CmdDuplicate:
		s.eng.Duplicate()
	case CmdDelete:
		s.eng.DeleteSelected()
	case CmdToggleLock:
		s.eng.ToggleLock()
	case CmdTogglePanel:
		s.eng.TogglePanel()
	case CmdLoadSample:
		s.eng.LoadSample()
	case CmdZoom:
		if p.Factor > 0 {
			s.eng.Zoom(p.X, p.Y, p.Factor)
		}
	case CmdResize:
		s.eng.Resize(p.Width, p.Height)
	}
}

// State builds the current snapshot payload.
func (s *Session) State() SceneStatePayload {
	sc := s.eng.Scene()
	return SceneStatePayload{
		Shapes:     sc.Shapes,
		Preview:    s.eng.Preview(),
		SelectedID: sc.SelectedID,
		HoveredID:  sc.HoveredID,
		Camera:     s.eng.Camera(),
		Mode:       s.eng.Mode().String(),
		Tool:       string(s.eng.ActiveTool()),
		CanUndo:    s.eng.CanUndo(),
		CanRedo:    s.eng.CanRedo(),
		ShowGrid:   s.eng.ShowGrid(),
		SnapToGrid: s.eng.SnapToGrid(),
		ShowPanel:  s.eng.PanelVisible(),
	}
}

func (s *Session) pushState() {
	s.push(TypeSceneState, s.State())
}

func (s *Session) push(typ string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal payload", "error", err, "type", typ)
		return
	}
	s.seq++
	data, err := json.Marshal(Message{Type: typ, SessionID: s.ID, Seq: s.seq, Payload: raw})
	if err != nil {
		slog.Error("marshal message", "error", err, "type", typ)
		return
	}
	select {
	case s.send <- data:
	default:
		slog.Warn("send buffer full, dropping message", "session", s.ID, "type", typ)
	}
}

func (s *Session) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case data := <-s.send:
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := s.conn.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "session", s.ID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := s.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}
