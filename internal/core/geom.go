// Package core provides the board geometry, input frames and the cell buffer
// shared by the flight simulation and the terminal platform.
// It has no dependency on Bubble Tea so game logic stays pure and testable.
package core

// Rect is an axis-aligned box in board units.
// Edges are half-open: a rect covers [X, X+W) x [Y, Y+H).
type Rect struct {
	X, Y int // Top-left corner
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rect covers no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects returns true if this rectangle overlaps with another.
// Touching edges do not count as overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Viewport maps board coordinates onto a smaller cell grid.
type Viewport struct {
	BoardW, BoardH int // Logical board size
	CellsW, CellsH int // Target grid size
}

// CellX converts a board x-coordinate to a column.
func (v Viewport) CellX(x int) int {
	if v.BoardW <= 0 {
		return 0
	}
	return floorDiv(x*v.CellsW, v.BoardW)
}

// CellY converts a board y-coordinate to a row.
func (v Viewport) CellY(y int) int {
	if v.BoardH <= 0 {
		return 0
	}
	return floorDiv(y*v.CellsH, v.BoardH)
}

// CellRect converts a board rect to the covering cell rect.
// Non-empty board rects always cover at least one cell.
func (v Viewport) CellRect(r Rect) Rect {
	x0, y0 := v.CellX(r.X), v.CellY(r.Y)
	x1, y1 := v.CellX(r.Right()), v.CellY(r.Bottom())
	if !r.Empty() {
		if x1 <= x0 {
			x1 = x0 + 1
		}
		if y1 <= y0 {
			y1 = y0 + 1
		}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// floorDiv divides rounding toward negative infinity so that
// off-board coordinates do not fold onto column zero.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
