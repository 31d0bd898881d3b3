package scene

// Scene is the z-ordered shape sequence plus selection state. Later
// shapes draw on top and hit-test first. The scene owns its shapes;
// history and clipboard only ever hold copies.
type Scene struct {
	Shapes     []*Shape `json:"shapes"`
	SelectedID string   `json:"selectedId,omitempty"`
	HoveredID  string   `json:"hoveredId,omitempty"`
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// CloneShapes deep-copies a shape sequence.
func CloneShapes(shapes []*Shape) []*Shape {
	out := make([]*Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Clone()
	}
	return out
}

// ByID returns the shape with the given id, or nil.
func (sc *Scene) ByID(id string) *Shape {
	if id == "" {
		return nil
	}
	for _, s := range sc.Shapes {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Selected returns the selected shape, or nil.
func (sc *Scene) Selected() *Shape {
	return sc.ByID(sc.SelectedID)
}

// Append adds a shape at the top of the z-order.
func (sc *Scene) Append(s *Shape) {
	sc.Shapes = append(sc.Shapes, s)
}

// Remove deletes the shape with the given id, preserving z-order, and
// clears selection/hover if they referenced it.
func (sc *Scene) Remove(id string) bool {
	for i, s := range sc.Shapes {
		if s.ID == id {
			sc.Shapes = append(sc.Shapes[:i], sc.Shapes[i+1:]...)
			if sc.SelectedID == id {
				sc.SelectedID = ""
			}
			if sc.HoveredID == id {
				sc.HoveredID = ""
			}
			return true
		}
	}
	return false
}

// Reset drops all shapes and selection state.
func (sc *Scene) Reset() {
	sc.Shapes = nil
	sc.SelectedID = ""
	sc.HoveredID = ""
}

// Clipboard holds at most one copied shape. Set stores a deep copy;
// Take hands out a fresh deep copy each time so repeated pastes never
// alias each other.
type Clipboard struct {
	shape *Shape
}

// Set stores a copy of the given shape.
func (c *Clipboard) Set(s *Shape) {
	if s == nil {
		c.shape = nil
		return
	}
	c.shape = s.Clone()
}

// Take returns a fresh copy of the held shape, or nil when empty.
func (c *Clipboard) Take() *Shape {
	if c.shape == nil {
		return nil
	}
	return c.shape.Clone()
}
