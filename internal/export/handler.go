package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/scrawl/scrawl/backend-go/internal/engine"
	"github.com/scrawl/scrawl/backend-go/internal/render"
	"github.com/scrawl/scrawl/backend-go/internal/scene"
	"github.com/scrawl/scrawl/backend-go/internal/typeid"
)

const maxSceneSize = 10 << 20 // 10MB

// Request is the wire payload for both export endpoints: the scene's
// committed shapes plus optional presentation hints.
type Request struct {
	Name   string         `json:"name"`
	Width  int            `json:"width"`
	Height int            `json:"height"`
	Shapes []*scene.Shape `json:"shapes"`
}

// Handler serves scene exports over HTTP.
type Handler struct {
	renderer *render.Renderer
}

func NewHandler(r *render.Renderer) *Handler {
	return &Handler{renderer: r}
}

// ExportSVG returns the posted scene as an SVG attachment.
func (h *Handler) ExportSVG(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	data := SVG(req.Shapes)
	if data == nil {
		http.Error(w, "scene is empty", http.StatusBadRequest)
		return
	}

	id := typeid.NewExportID()
	slog.Info("svg export", "export_id", id, "shapes", len(req.Shapes), "size", len(data))

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.svg"`, req.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// ExportPNG rasterizes the posted scene at the requested resolution.
func (h *Handler) ExportPNG(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	if len(req.Shapes) == 0 {
		http.Error(w, "scene is empty", http.StatusBadRequest)
		return
	}

	e := engine.New(engine.Options{Width: req.Width, Height: req.Height})
	e.SetShowGrid(false)
	e.LoadShapes(req.Shapes)

	data, err := h.renderer.EncodePNG(e)
	if err != nil {
		slog.Error("png encode", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	id := typeid.NewExportID()
	slog.Info("png export", "export_id", id, "shapes", len(req.Shapes), "size", len(data))

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.png"`, req.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// decode parses and validates the common request payload.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Request, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSceneSize)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid scene payload", http.StatusBadRequest)
		return req, false
	}

	if req.Name == "" {
		req.Name = "whiteboard"
	}
	// Sanitize filename
	req.Name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, req.Name)

	for _, s := range req.Shapes {
		if s == nil || s.ID == "" {
			http.Error(w, "malformed shape in scene", http.StatusBadRequest)
			return req, false
		}
	}
	return req, true
}
