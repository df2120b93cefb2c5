package services

import (
	"math"

	"github.com/GregMSThompson/dashboard-builder/internal/models"
)

// Canvas constants. Coordinates snap to a 20px grid; widgets can never shrink
// below 200x120.
const (
	GridSize        = 20
	MinWidgetWidth  = 200
	MinWidgetHeight = 120
)

// ApplyMove translates the accumulated drag delta into a snapped, clamped
// position. Snapping happens once, at drag-end: intermediate drag frames are
// a client-side preview and never reach the store. Width and height pass
// through untouched.
func ApplyMove(p models.Position, deltaX, deltaY, gridSize int) models.Position {
	p.X = max(0, snap(p.X+deltaX, gridSize))
	p.Y = max(0, snap(p.Y+deltaY, gridSize))
	return p
}

// ApplyResize grows or shrinks the widget from its top-left anchor, clamped
// to the minimum size. Unlike move, resize is applied continuously on every
// pointer-move event, so there is no snapping.
func ApplyResize(p models.Position, deltaX, deltaY int) models.Position {
	p.Width = max(MinWidgetWidth, p.Width+deltaX)
	p.Height = max(MinWidgetHeight, p.Height+deltaY)
	return p
}

// snap quantizes v to the nearest multiple of grid.
func snap(v, grid int) int {
	return int(math.Round(float64(v)/float64(grid))) * grid
}
