package ui

import "tableflip.dev/datebox/pkg/tui/events"

// Rect is a cell-addressed rectangle. X and Y are the top-left corner.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the cell (x, y) falls inside r.
func (r Rect) Contains(x, y int) bool {
	return r.Width > 0 && r.Height > 0 &&
		x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Anchor names the element a popover attaches to. It is a handle into the
// owning component's view, not an owner of it: Component identifies the view,
// Region the element inside it, and X/Y/Width its position relative to that
// view's top-left cell. An anchor stays valid until the component remounts.
type Anchor struct {
	Component events.ComponentID
	Region    string
	X         int
	Y         int
	Width     int
}

// IsZero reports whether the anchor was never captured.
func (a Anchor) IsZero() bool {
	return a.Component == "" && a.Region == ""
}

// Rect returns the anchor's one-row footprint translated to an origin.
func (a Anchor) Rect(originX, originY int) Rect {
	w := a.Width
	if w <= 0 {
		w = 1
	}
	return Rect{X: originX + a.X, Y: originY + a.Y, Width: w, Height: 1}
}
