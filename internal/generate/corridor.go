package generate

import (
	"roguecore/internal/gamemap"
	"roguecore/internal/grid"
)

// carveCorridor digs a tunnel from a to b in the configured style.
func carveCorridor(gmap *gamemap.GameMap, a, b grid.Point, cfg *Config) {
	switch cfg.CorridorStyle {
	case CorridorZShaped:
		carveZShaped(gmap, a, b)
	case CorridorStraight:
		carveH(gmap, a.X, b.X, a.Y)
		carveV(gmap, a.Y, b.Y, b.X)
	default:
		if cfg.Rand.Intn(2) == 0 {
			carveH(gmap, a.X, b.X, a.Y)
			carveV(gmap, a.Y, b.Y, b.X)
		} else {
			carveV(gmap, a.Y, b.Y, a.X)
			carveH(gmap, a.X, b.X, b.Y)
		}
	}
}

func carveH(gmap *gamemap.GameMap, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if gmap.InBounds(x, y) {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
}

func carveV(gmap *gamemap.GameMap, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if gmap.InBounds(x, y) {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
}

func carveZShaped(gmap *gamemap.GameMap, a, b grid.Point) {
	midY := (a.Y + b.Y) / 2
	carveV(gmap, a.Y, midY, a.X)
	carveH(gmap, a.X, b.X, midY)
	carveV(gmap, midY, b.Y, b.X)
}
