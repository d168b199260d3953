package gamemap

import (
	"slices"

	"roguecore/internal/ecs"
	"roguecore/internal/grid"
)

// DefaultCost is the energy a single step costs unless a tile says otherwise.
const DefaultCost = 5

// GameMap holds the tile grid for one dungeon level and implements Surface,
// Opener and Occupancy.
type GameMap struct {
	Width, Height int
	Tiles         [][]Tile

	directions []grid.Direction
	occupants  map[grid.Point][]ecs.EntityID
	revision   uint64
}

// New creates a GameMap filled with walls. Movement is 4-way until
// SetDirections says otherwise.
func New(width, height int) *GameMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = MakeWall()
		}
	}
	return &GameMap{
		Width:      width,
		Height:     height,
		Tiles:      tiles,
		directions: grid.Cardinal,
		occupants:  make(map[grid.Point][]ecs.EntityID),
	}
}

// InBounds reports whether (x, y) is within the map boundaries.
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns a pointer to the tile at (x, y). Panics if out of bounds.
func (m *GameMap) At(x, y int) *Tile {
	return &m.Tiles[y][x]
}

// Set replaces the tile at (x, y).
func (m *GameMap) Set(x, y int, t Tile) {
	m.Tiles[y][x] = t
	m.revision++
}

// SetDirections replaces the movement set.
func (m *GameMap) SetDirections(dirs []grid.Direction) {
	m.directions = dirs
}

// IsWalkable returns true when (x, y) is in bounds and walkable.
func (m *GameMap) IsWalkable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[y][x].Walkable
}

// IsTransparent returns true when (x, y) is in bounds and transparent.
func (m *GameMap) IsTransparent(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[y][x].Transparent
}

// Size implements Surface.
func (m *GameMap) Size() (int, int) { return m.Width, m.Height }

// Cost implements Surface. The cost of a step is the cost of the tile being
// entered; waiting costs the tile the actor already stands on. Stepping off
// the map costs DefaultCost, though such a step never resolves.
func (m *GameMap) Cost(cell grid.Point, d grid.Direction) int {
	dst := cell.Add(d)
	if !m.InBounds(dst.X, dst.Y) {
		return DefaultCost
	}
	return m.Tiles[dst.Y][dst.X].Cost
}

// IsPassable implements Surface.
func (m *GameMap) IsPassable(cell grid.Point, d grid.Direction) bool {
	if d == grid.Wait {
		return false
	}
	dst := cell.Add(d)
	return m.IsWalkable(dst.X, dst.Y)
}

// IsOpenable implements Surface.
func (m *GameMap) IsOpenable(cell grid.Point, d grid.Direction) bool {
	if d == grid.Wait {
		return false
	}
	dst := cell.Add(d)
	if !m.InBounds(dst.X, dst.Y) {
		return false
	}
	return m.Tiles[dst.Y][dst.X].Kind == TileDoorClosed
}

// Resistance implements Surface. Out-of-bounds cells are opaque.
func (m *GameMap) Resistance(cell grid.Point) float64 {
	if !m.InBounds(cell.X, cell.Y) {
		return 1
	}
	return m.Tiles[cell.Y][cell.X].Resistance()
}

// Directions implements Surface.
func (m *GameMap) Directions() []grid.Direction { return m.directions }

// Revision implements Surface.
func (m *GameMap) Revision() uint64 { return m.revision }

// Open turns the closed door toward d into an open door. It reports false
// when there is no closed door there.
func (m *GameMap) Open(cell grid.Point, d grid.Direction) bool {
	if !m.IsOpenable(cell, d) {
		return false
	}
	dst := cell.Add(d)
	t := MakeOpenDoor()
	t.Cost = m.Tiles[dst.Y][dst.X].Cost
	m.Set(dst.X, dst.Y, t)
	return true
}

// Occupy records id as standing on cell. A cell holds any number of
// entities, kept in arrival order.
func (m *GameMap) Occupy(cell grid.Point, id ecs.EntityID) {
	if slices.Contains(m.occupants[cell], id) {
		return
	}
	m.occupants[cell] = append(m.occupants[cell], id)
}

// Vacate drops id from cell and leaves everyone else there recorded.
func (m *GameMap) Vacate(cell grid.Point, id ecs.EntityID) {
	ids := slices.DeleteFunc(m.occupants[cell], func(o ecs.EntityID) bool { return o == id })
	if len(ids) == 0 {
		delete(m.occupants, cell)
		return
	}
	m.occupants[cell] = ids
}

// OccupantAt returns the latest arrival on cell.
func (m *GameMap) OccupantAt(cell grid.Point) (ecs.EntityID, bool) {
	ids := m.occupants[cell]
	if len(ids) == 0 {
		return ecs.NilEntity, false
	}
	return ids[len(ids)-1], true
}

// OccupantsAt returns everything recorded on cell, earliest arrival first.
func (m *GameMap) OccupantsAt(cell grid.Point) []ecs.EntityID {
	return slices.Clone(m.occupants[cell])
}
