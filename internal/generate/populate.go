package generate

import (
	"roguecore/internal/gamemap"
	"roguecore/internal/grid"
)

// placeDoors turns corridor cells just outside a room into closed doors
// when they sit between two walls.
func placeDoors(gmap *gamemap.GameMap, rooms []Rect, cfg *Config) {
	if cfg.DoorChance <= 0 {
		return
	}
	for _, room := range rooms {
		for _, cell := range ring(room) {
			if !isChokepoint(gmap, cell) || inAnyRoom(rooms, cell) {
				continue
			}
			if cfg.Rand.Float64() < cfg.DoorChance {
				gmap.Set(cell.X, cell.Y, gamemap.MakeClosedDoor())
			}
		}
	}
}

// ring lists the cells bordering r on the outside, corners excluded.
func ring(r Rect) []grid.Point {
	var out []grid.Point
	for x := r.X1; x <= r.X2; x++ {
		out = append(out, grid.Pt(x, r.Y1-1), grid.Pt(x, r.Y2+1))
	}
	for y := r.Y1; y <= r.Y2; y++ {
		out = append(out, grid.Pt(r.X1-1, y), grid.Pt(r.X2+1, y))
	}
	return out
}

func isFloor(gmap *gamemap.GameMap, c grid.Point) bool {
	return gmap.InBounds(c.X, c.Y) && gmap.At(c.X, c.Y).Kind == gamemap.TileFloor
}

func isWall(gmap *gamemap.GameMap, c grid.Point) bool {
	return !gmap.InBounds(c.X, c.Y) || gmap.At(c.X, c.Y).Kind == gamemap.TileWall
}

// isChokepoint reports whether c is floor with walls on one axis and floor
// on the other.
func isChokepoint(gmap *gamemap.GameMap, c grid.Point) bool {
	if !isFloor(gmap, c) {
		return false
	}
	n, s := c.Add(grid.North), c.Add(grid.South)
	e, w := c.Add(grid.East), c.Add(grid.West)
	vertical := isWall(gmap, e) && isWall(gmap, w) && isFloor(gmap, n) && isFloor(gmap, s)
	horizontal := isWall(gmap, n) && isWall(gmap, s) && isFloor(gmap, e) && isFloor(gmap, w)
	return vertical || horizontal
}

func inAnyRoom(rooms []Rect, c grid.Point) bool {
	for _, r := range rooms {
		if r.Contains(c) {
			return true
		}
	}
	return false
}

// populate picks marker cells: '@' at the first room's centre, then
// monsters and items on distinct free floor cells of the other rooms.
func populate(gmap *gamemap.GameMap, rooms []Rect, cfg *Config) map[rune][]grid.Point {
	markers := make(map[rune][]grid.Point)
	start := rooms[0].Center()
	markers['@'] = []grid.Point{start}

	claimed := map[grid.Point]bool{start: true}
	placeable := rooms[1:]
	if len(placeable) == 0 {
		placeable = rooms
	}
	scatter := func(n int, glyphs string) {
		runes := []rune(glyphs)
		if len(runes) == 0 {
			return
		}
		for range n {
			cell, ok := pickFree(gmap, placeable[cfg.Rand.Intn(len(placeable))], cfg, claimed)
			if !ok {
				continue
			}
			claimed[cell] = true
			g := runes[cfg.Rand.Intn(len(runes))]
			markers[g] = append(markers[g], cell)
		}
	}
	scatter(cfg.Monsters, cfg.MonsterGlyphs)
	scatter(cfg.Items, cfg.ItemGlyphs)
	return markers
}

// pickFree tries random cells of room until one is unclaimed floor.
func pickFree(gmap *gamemap.GameMap, room Rect, cfg *Config, claimed map[grid.Point]bool) (grid.Point, bool) {
	for range 50 {
		c := grid.Pt(
			room.X1+cfg.Rand.Intn(room.X2-room.X1+1),
			room.Y1+cfg.Rand.Intn(room.Y2-room.Y1+1),
		)
		if !claimed[c] && isFloor(gmap, c) {
			return c, true
		}
	}
	return grid.Point{}, false
}
