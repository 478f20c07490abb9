// Package core provides the platform-neutral types shared by games and the
// terminal host: the screen buffer, colors, input frames and layout
// geometry. It has no Bubble Tea dependency so game logic stays testable.
package core

// Rect is an axis-aligned area on the screen, in character cells.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle with the given position and size.
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

// Contains returns true if the cell (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks the rectangle by n cells on every side.
// The result never has negative size.
func (r Rect) Inset(n int) Rect {
	out := Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
	out.W = max(out.W, 0)
	out.H = max(out.H, 0)
	return out
}

// CenteredIn returns a w x h rectangle centred on a screen of the given
// size. Oversized rectangles are pinned to the top-left corner.
func CenteredIn(screenW, screenH, w, h int) Rect {
	return Rect{
		X: max((screenW-w)/2, 0),
		Y: max((screenH-h)/2, 0),
		W: w,
		H: h,
	}
}

// Fits reports whether a w x h area fits inside the rectangle.
func (r Rect) Fits(w, h int) bool {
	return w <= r.W && h <= r.H
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
