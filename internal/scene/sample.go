package scene

import "github.com/scrawl/scrawl/backend-go/internal/geom"

// SampleScene builds a small demo scene for the playground path.
func SampleScene(newID IDProvider) *Scene {
	sc := New()

	sc.Append(&Shape{
		ID:     newID(),
		Tool:   ToolRect,
		Points: []geom.Point{{X: 120, Y: 90}, {X: 320, Y: 210}},
		Color:  "#2563eb",
		Size:   3,
	})
	sc.Append(&Shape{
		ID:     newID(),
		Tool:   ToolCircle,
		Points: []geom.Point{{X: 380, Y: 90}, {X: 500, Y: 210}},
		Color:  "#dc2626",
		Size:   3,
		Filled: true,
	})
	sc.Append(&Shape{
		ID:     newID(),
		Tool:   ToolArrow,
		Points: []geom.Point{{X: 330, Y: 150}, {X: 375, Y: 150}},
		Color:  "#16a34a",
		Size:   2,
	})
	sc.Append(&Shape{
		ID:     newID(),
		Tool:   ToolText,
		Points: []geom.Point{{X: 120, Y: 240}},
		Color:  "#111827",
		Size:   2,
		Text:   "sketch here",
	})

	return sc
}
