package modal

// Rect is a screen region in cells. X/Y are inclusive, W/H exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside the rect
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether the rect covers no cells
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}
