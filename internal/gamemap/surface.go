package gamemap

import (
	"roguecore/internal/ecs"
	"roguecore/internal/grid"
)

// Surface is the query side of a dungeon level. Everything in the simulation
// core reads terrain through it; nothing here generates terrain.
type Surface interface {
	Size() (width, height int)
	// Cost is the energy needed to act from cell toward d.
	Cost(cell grid.Point, d grid.Direction) int
	IsPassable(cell grid.Point, d grid.Direction) bool
	// IsOpenable is true when the cell toward d is a closed door.
	IsOpenable(cell grid.Point, d grid.Direction) bool
	// Resistance is the light resistance of cell, 0..1.
	Resistance(cell grid.Point) float64
	// Directions is the movement set wandering and pathing draw from.
	Directions() []grid.Direction
	// Revision changes whenever a terrain fact above changes.
	Revision() uint64
}

// Opener is implemented by surfaces whose doors can be opened.
type Opener interface {
	Open(cell grid.Point, d grid.Direction) bool
}

// Occupancy is implemented by surfaces that track who stands where.
type Occupancy interface {
	Occupy(cell grid.Point, id ecs.EntityID)
	Vacate(cell grid.Point, id ecs.EntityID)
	OccupantAt(cell grid.Point) (ecs.EntityID, bool)
	OccupantsAt(cell grid.Point) []ecs.EntityID
}
