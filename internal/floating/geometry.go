package floating

// Rect is a cell-addressed rectangle on the terminal screen
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Bottom returns the first row below the rectangle
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Right returns the first column right of the rectangle
func (r Rect) Right() int {
	return r.X + r.Width
}

// Contains reports whether the cell at x, y lies inside the rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Empty reports whether the rectangle covers no cells
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Size is the dimension of the visible terminal area
type Size struct {
	Width  int
	Height int
}
