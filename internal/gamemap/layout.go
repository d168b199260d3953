package gamemap

import (
	"errors"
	"fmt"
	"strings"

	"roguecore/internal/grid"
)

var (
	ErrEmptyLayout  = errors.New("gamemap: empty layout")
	ErrRaggedLayout = errors.New("gamemap: rows differ in length")
)

// Layout is a parsed text map. Any glyph that is not terrain is recorded in
// Markers and the cell underneath becomes floor, so a layout can place the
// player and monsters too.
type Layout struct {
	Map     *GameMap
	Markers map[rune][]grid.Point
}

// Parse reads a text layout:
//
//	#  wall
//	.  floor
//	+  closed door
//	/  open door
//
// Leading and trailing blank lines are ignored. Every row must have the same
// width.
func Parse(text string, cost int) (*Layout, error) {
	rows := strings.Split(strings.Trim(text, "\n"), "\n")
	for i := range rows {
		rows[i] = strings.TrimRight(rows[i], "\r")
	}
	if len(rows) == 0 || rows[0] == "" {
		return nil, ErrEmptyLayout
	}
	width := len([]rune(rows[0]))
	for i, r := range rows {
		if n := len([]rune(r)); n != width {
			return nil, fmt.Errorf("row %d has width %d, want %d: %w", i, n, width, ErrRaggedLayout)
		}
	}
	if cost <= 0 {
		cost = DefaultCost
	}

	m := New(width, len(rows))
	markers := make(map[rune][]grid.Point)
	for y, row := range rows {
		for x, ch := range []rune(row) {
			var t Tile
			switch ch {
			case '#':
				t = MakeWall()
			case '.':
				t = MakeFloor()
			case '+':
				t = MakeClosedDoor()
			case '/':
				t = MakeOpenDoor()
			default:
				t = MakeFloor()
				markers[ch] = append(markers[ch], grid.Pt(x, y))
			}
			t.Cost = cost
			m.Tiles[y][x] = t
		}
	}
	return &Layout{Map: m, Markers: markers}, nil
}

// Marker returns the first position of glyph ch.
func (l *Layout) Marker(ch rune) (grid.Point, bool) {
	pts := l.Markers[ch]
	if len(pts) == 0 {
		return grid.Point{}, false
	}
	return pts[0], true
}
