// Package grid holds the cell coordinate and direction types shared by the
// map surface, regions, and actions.
package grid

import "fmt"

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p translated one step toward d.
func (p Point) Add(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Translate returns p shifted by (dx, dy).
func (p Point) Translate(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Direction is one step on the grid, or Wait for no step.
type Direction uint8

const (
	Wait Direction = iota
	North
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

var deltas = [...][2]int{
	Wait:      {0, 0},
	North:     {0, -1},
	South:     {0, 1},
	East:      {1, 0},
	West:      {-1, 0},
	NorthEast: {1, -1},
	NorthWest: {-1, -1},
	SouthEast: {1, 1},
	SouthWest: {-1, 1},
}

var names = [...]string{
	Wait:      "wait",
	North:     "north",
	South:     "south",
	East:      "east",
	West:      "west",
	NorthEast: "northeast",
	NorthWest: "northwest",
	SouthEast: "southeast",
	SouthWest: "southwest",
}

// Delta returns the (dx, dy) step for d. Unknown values behave like Wait.
func (d Direction) Delta() (int, int) {
	if int(d) >= len(deltas) {
		return 0, 0
	}
	return deltas[d][0], deltas[d][1]
}

// IsDiagonal reports whether d moves along both axes.
func (d Direction) IsDiagonal() bool {
	dx, dy := d.Delta()
	return dx != 0 && dy != 0
}

func (d Direction) String() string {
	if int(d) >= len(names) {
		return "unknown"
	}
	return names[d]
}

// Cardinal is the 4-way movement set in a fixed order.
var Cardinal = []Direction{North, South, East, West}

// EightWay is the 8-way movement set; the cardinals come first.
var EightWay = []Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}

// Toward returns the direction whose delta is exactly (to - from), or
// ok=false if to is not a single step away. Equal points yield Wait.
func Toward(from, to Point) (Direction, bool) {
	dx, dy := to.X-from.X, to.Y-from.Y
	for d := range deltas {
		if deltas[d][0] == dx && deltas[d][1] == dy {
			return Direction(d), true
		}
	}
	return Wait, false
}
