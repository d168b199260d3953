package system

import (
	"testing"

	"roguecore/internal/gamemap"
	"roguecore/internal/grid"
)

// resistanceOf flattens a map's resistance into a row-major buffer.
func resistanceOf(m *gamemap.GameMap) []float64 {
	out := make([]float64, m.Width*m.Height)
	for y := range m.Height {
		for x := range m.Width {
			out[y*m.Width+x] = m.Resistance(grid.Pt(x, y))
		}
	}
	return out
}

func lit(light []float64, width, x, y int) float64 { return light[y*width+x] }

func TestFOVOriginAlwaysVisible(t *testing.T) {
	gmap := openMap(20, 20)
	light := make([]float64, 400)
	ShadowCast(resistanceOf(gmap), light, 20, 20, grid.Pt(5, 5), 5)

	if lit(light, 20, 5, 5) != 1 {
		t.Errorf("origin light = %v, want 1", lit(light, 20, 5, 5))
	}
}

func TestFOVCircularFalloff(t *testing.T) {
	gmap := openMap(20, 20)
	light := make([]float64, 400)
	ShadowCast(resistanceOf(gmap), light, 20, 20, grid.Pt(10, 10), 5)

	if got := lit(light, 20, 14, 10); got < 0.19 || got > 0.21 {
		t.Errorf("light four cells out = %v, want 0.2", got)
	}
	if got := lit(light, 20, 15, 10); got != 0 {
		t.Errorf("cell at the radius should be dark, got %v", got)
	}
	// (13,14) is exactly 5 away; (13,13) is about 4.24 away.
	if lit(light, 20, 13, 14) != 0 {
		t.Error("cell on the circle should be dark")
	}
	if lit(light, 20, 13, 13) <= 0 {
		t.Error("cell inside the circle should be lit")
	}
}

func TestFOVWallBlocksSight(t *testing.T) {
	gmap := openMap(20, 20)
	for y := range 20 {
		gmap.Set(7, y, gamemap.MakeWall())
	}
	light := make([]float64, 400)
	ShadowCast(resistanceOf(gmap), light, 20, 20, grid.Pt(5, 5), 10)

	if lit(light, 20, 7, 5) <= 0 {
		t.Error("the wall itself should be lit")
	}
	for _, p := range []grid.Point{{X: 8, Y: 5}, {X: 9, Y: 3}, {X: 12, Y: 8}} {
		if lit(light, 20, p.X, p.Y) != 0 {
			t.Errorf("%v is behind a wall but lit", p)
		}
	}
	if lit(light, 20, 2, 5) <= 0 {
		t.Error("open side should be lit")
	}
}

func TestFOVReusesBuffer(t *testing.T) {
	gmap := openMap(20, 20)
	res := resistanceOf(gmap)
	light := make([]float64, 400)

	ShadowCast(res, light, 20, 20, grid.Pt(2, 2), 3)
	ShadowCast(res, light, 20, 20, grid.Pt(15, 15), 3)

	if lit(light, 20, 2, 2) != 0 {
		t.Error("a recast should clear stale light")
	}
	if lit(light, 20, 15, 15) != 1 {
		t.Error("new origin should be lit")
	}
}

func TestFOVOriginOffMap(t *testing.T) {
	gmap := openMap(5, 5)
	light := make([]float64, 25)
	light[0] = 1
	ShadowCast(resistanceOf(gmap), light, 5, 5, grid.Pt(-1, -1), 3)
	for i, v := range light {
		if v != 0 {
			t.Fatalf("cell %d lit from an off-map origin", i)
		}
	}
}
