package system

import (
	"math"

	"roguecore/internal/grid"
)

// octant transform matrices.
// For each octant, a (dx, dy) sweep pair maps to a world offset via:
//
//	worldX = cx + dx*xx + dy*xy
//	worldY = cy + dx*yx + dy*yy
//
// where dx sweeps horizontally within the row and dy is the fixed row index.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// lightField is the shared input and output of one shadowcast.
type lightField struct {
	width, height int
	resistance    []float64 // row-major, >= 1 blocks light
	light         []float64 // row-major output, reused across casts
	radius        int
}

func (f *lightField) inBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

func (f *lightField) opaque(x, y int) bool {
	return !f.inBounds(x, y) || f.resistance[y*f.width+x] >= 1
}

// ShadowCast writes a circular field of view around origin into light.
// Lit cells get 1 - dist/radius, so anything strictly inside the radius is
// above zero; everything else is zeroed. light and resistance are row-major
// width×height buffers and light is overwritten in place.
func ShadowCast(resistance, light []float64, width, height int, origin grid.Point, radius int) {
	clear(light)
	f := &lightField{width: width, height: height, resistance: resistance, light: light, radius: radius}
	if !f.inBounds(origin.X, origin.Y) {
		return
	}
	light[origin.Y*width+origin.X] = 1

	for _, m := range octants {
		f.castLight(origin.X, origin.Y, 1, 1.0, 0.0, m[0], m[1], m[2], m[3])
	}
}

// castLight casts light for one octant using recursive shadowcasting.
//   - j is the current row (distance from origin along the main axis)
//   - dy = -j is fixed for the entire inner sweep
//   - dx sweeps from -j to 0 within the row
//   - lSlope = (dx - 0.5) / (dy + 0.5), rSlope = (dx + 0.5) / (dy - 0.5)
func (f *lightField) castLight(cx, cy, row int, start, end float64, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	radius := float64(f.radius)
	newStart := start

	for j := row; j <= f.radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			wx := cx + dx*xx + dy*xy
			wy := cy + dx*yx + dy*yy

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if dist := math.Sqrt(float64(dx*dx + dy*dy)); dist < radius && f.inBounds(wx, wy) {
				f.light[wy*f.width+wx] = 1 - dist/radius
			}

			opaque := f.opaque(wx, wy)
			if blocked {
				if opaque {
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
			} else if opaque && j < f.radius {
				blocked = true
				f.castLight(cx, cy, j+1, start, lSlope, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
