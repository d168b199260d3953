package generate

import (
	"math/rand"
	"testing"

	"roguecore/internal/gamemap"
	"roguecore/internal/grid"
)

// carved reports whether every cell on the straight segment from a to b is
// walkable.
func carved(gmap *gamemap.GameMap, a, b grid.Point) bool {
	x1, x2 := min(a.X, b.X), max(a.X, b.X)
	y1, y2 := min(a.Y, b.Y), max(a.Y, b.Y)
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			if !gmap.IsWalkable(x, y) {
				return false
			}
		}
	}
	return true
}

func TestCarveSegments(t *testing.T) {
	gmap := gamemap.New(20, 20)
	carveH(gmap, 8, 3, 5)
	carveV(gmap, 7, 2, 12)

	if !carved(gmap, grid.Pt(3, 5), grid.Pt(8, 5)) {
		t.Error("carveH should swap reversed bounds and carve x=3..8")
	}
	if gmap.IsWalkable(2, 5) || gmap.IsWalkable(9, 5) {
		t.Error("cells past the segment stay wall")
	}
	if !carved(gmap, grid.Pt(12, 2), grid.Pt(12, 7)) {
		t.Error("carveV should carve y=2..7")
	}
	if gmap.IsWalkable(12, 1) || gmap.IsWalkable(12, 8) {
		t.Error("cells past the segment stay wall")
	}
}

func TestCarveClipsToMap(t *testing.T) {
	gmap := gamemap.New(5, 5)
	carveH(gmap, -3, 10, 2)
	if !carved(gmap, grid.Pt(0, 2), grid.Pt(4, 2)) {
		t.Error("the in-bounds part of the segment is carved")
	}
}

func TestCorridorStyles(t *testing.T) {
	a, b := grid.Pt(2, 2), grid.Pt(10, 8)
	midY := (a.Y + b.Y) / 2

	cases := []struct {
		name  string
		style CorridorStyle
		legs  [][2]grid.Point
	}{
		{"straight", CorridorStraight, [][2]grid.Point{
			{a, grid.Pt(b.X, a.Y)}, {grid.Pt(b.X, a.Y), b},
		}},
		{"z-shaped", CorridorZShaped, [][2]grid.Point{
			{a, grid.Pt(a.X, midY)}, {grid.Pt(a.X, midY), grid.Pt(b.X, midY)}, {grid.Pt(b.X, midY), b},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gmap := gamemap.New(20, 20)
			carveCorridor(gmap, a, b, &Config{CorridorStyle: c.style, Rand: rand.New(rand.NewSource(0))})
			for _, leg := range c.legs {
				if !carved(gmap, leg[0], leg[1]) {
					t.Errorf("leg %v-%v not carved", leg[0], leg[1])
				}
			}
		})
	}
}

func TestCorridorLShapedJoinsEndpoints(t *testing.T) {
	a, b := grid.Pt(2, 2), grid.Pt(10, 8)
	for seed := range 10 {
		gmap := gamemap.New(20, 20)
		carveCorridor(gmap, a, b, &Config{CorridorStyle: CorridorLShaped, Rand: rand.New(rand.NewSource(int64(seed)))})

		hFirst := carved(gmap, a, grid.Pt(b.X, a.Y)) && carved(gmap, grid.Pt(b.X, a.Y), b)
		vFirst := carved(gmap, a, grid.Pt(a.X, b.Y)) && carved(gmap, grid.Pt(a.X, b.Y), b)
		if !hFirst && !vFirst {
			t.Errorf("seed %d: endpoints are not joined by an L", seed)
		}
	}
}
