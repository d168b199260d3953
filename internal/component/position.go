package component

import (
	"roguecore/internal/ecs"
	"roguecore/internal/gamemap"
	"roguecore/internal/grid"
)

const CPosition ecs.ComponentType = 1

// Position is where an entity stands and on which map.
type Position struct {
	Map  gamemap.Surface
	X, Y int
}

func (Position) Type() ecs.ComponentType { return CPosition }

// Cell returns the position as a grid point.
func (p Position) Cell() grid.Point { return grid.Pt(p.X, p.Y) }

// Place puts id on cell of m, registering occupancy when m tracks it.
func Place(w *ecs.World, id ecs.EntityID, m gamemap.Surface, cell grid.Point) {
	if old, ok := ecs.GetAs[Position](w, id, CPosition); ok {
		vacate(old, id)
	}
	pos := Position{Map: m, X: cell.X, Y: cell.Y}
	w.Add(id, pos)
	if occ, ok := m.(gamemap.Occupancy); ok {
		occ.Occupy(cell, id)
	}
}

// UpdateLocation moves id one step toward d on its current map. It is the
// only way a placed entity changes cell. It does not check passability.
func UpdateLocation(w *ecs.World, id ecs.EntityID, d grid.Direction) (Position, bool) {
	pos, ok := ecs.GetAs[Position](w, id, CPosition)
	if !ok {
		return Position{}, false
	}
	vacate(pos, id)
	dst := pos.Cell().Add(d)
	pos.X, pos.Y = dst.X, dst.Y
	w.Add(id, pos)
	if occ, ok := pos.Map.(gamemap.Occupancy); ok {
		occ.Occupy(dst, id)
	}
	return pos, true
}

// Unplace removes id's Position and its occupancy record.
func Unplace(w *ecs.World, id ecs.EntityID) {
	if pos, ok := ecs.GetAs[Position](w, id, CPosition); ok {
		vacate(pos, id)
		w.Remove(id, CPosition)
	}
}

// Destroy takes id off its map and out of the world.
func Destroy(w *ecs.World, id ecs.EntityID) {
	Unplace(w, id)
	w.DestroyEntity(id)
}

func vacate(pos Position, id ecs.EntityID) {
	if occ, ok := pos.Map.(gamemap.Occupancy); ok {
		occ.Vacate(pos.Cell(), id)
	}
}
