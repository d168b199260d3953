package render

import "roguecore/internal/grid"

// Camera translates between map cells and screen columns. Each cell spans
// CellWidth terminal columns so wide glyphs line up.
type Camera struct {
	OffsetX    int
	OffsetY    int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
	CellWidth  int
}

// NewCamera creates a camera centered on cell.
func NewCamera(cell grid.Point, viewW, viewH, cellWidth int) *Camera {
	if cellWidth < 1 {
		cellWidth = 1
	}
	c := &Camera{ViewWidth: viewW, ViewHeight: viewH, CellWidth: cellWidth}
	c.Center(cell)
	return c
}

// Center repositions the camera so that cell is in the middle of the view.
func (c *Camera) Center(cell grid.Point) {
	c.OffsetX = cell.X - (c.ViewWidth/c.CellWidth)/2
	c.OffsetY = cell.Y - c.ViewHeight/2
}

// WorldToScreen converts cell to screen (sx, sy). visible is false when the
// result falls outside the viewport.
func (c *Camera) WorldToScreen(cell grid.Point) (sx, sy int, visible bool) {
	sx = (cell.X - c.OffsetX) * c.CellWidth
	sy = cell.Y - c.OffsetY
	visible = sx >= 0 && sx+c.CellWidth <= c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts a screen position, such as a mouse event, to the
// cell drawn there.
func (c *Camera) ScreenToWorld(sx, sy int) grid.Point {
	return grid.Pt(floorDiv(sx, c.CellWidth)+c.OffsetX, sy+c.OffsetY)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
