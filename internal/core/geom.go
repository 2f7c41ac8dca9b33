// Package core provides the platform types shared by games and front ends.
// It has no external dependencies (especially no Bubble Tea) so game logic
// stays pure and testable.
package core

// Rect is an axis-aligned area of the screen.
type Rect struct {
	X, Y int // Top-left corner
	W, H int // Width and height
}

// NewRect creates a rectangle with the given position and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// CenteredRect places a w by h rectangle in the middle of a screen.
func CenteredRect(screenW, screenH, w, h int) Rect {
	return Rect{X: (screenW - w) / 2, Y: (screenH - h) / 2, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Inner returns the area inside a one-cell border.
// Rectangles too small to have an inside come back empty.
func (r Rect) Inner() Rect {
	in := Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
	in.W = max(in.W, 0)
	in.H = max(in.H, 0)
	return in
}

// Cell returns the top-left corner of the i-th cell when the rectangle is
// filled row by row with cells of cellW by cellH, cols per row.
func (r Rect) Cell(i, cols, cellW, cellH int) (x, y int) {
	return r.X + (i%cols)*cellW, r.Y + (i/cols)*cellH
}
