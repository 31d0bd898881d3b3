// Package history provides the bounded undo/redo stacks of scene
// snapshots. Every entry is a deep copy: history never aliases live
// shapes, so later in-place edits cannot corrupt an earlier snapshot.
package history

import "github.com/scrawl/scrawl/backend-go/internal/scene"

// DefaultDepth bounds the undo stack when no depth is configured.
const DefaultDepth = 50

// History holds the undo and redo stacks. Oldest undo entries are
// silently dropped once depth is exceeded.
type History struct {
	undo  [][]*scene.Shape
	redo  [][]*scene.Shape
	depth int
}

// New creates a history bounded to the given depth (DefaultDepth if
// depth is not positive).
func New(depth int) *History {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &History{depth: depth}
}

// Push records a pre-mutation snapshot on the undo stack and clears the
// redo stack. The snapshot is deep-copied on the way in.
func (h *History) Push(snapshot []*scene.Shape) {
	h.undo = append(h.undo, scene.CloneShapes(snapshot))
	if len(h.undo) > h.depth {
		h.undo = h.undo[1:]
	}
	h.redo = nil
}

// Undo exchanges the current state for the newest undo entry. The
// current state moves to the redo stack. Returns false (and leaves
// current untouched) when the undo stack is empty.
func (h *History) Undo(current []*scene.Shape) ([]*scene.Shape, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	h.redo = append(h.redo, scene.CloneShapes(current))
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	return top, true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current []*scene.Shape) ([]*scene.Shape, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	h.undo = append(h.undo, scene.CloneShapes(current))
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	return top, true
}

// CanUndo reports whether an undo entry exists.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo entry exists.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Clear drops both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}
