package component

import (
	"roguecore/internal/ecs"
	"roguecore/internal/grid"
)

const CVision ecs.ComponentType = 7

// Vision is a sight radius plus the last location the entity's visibility
// was computed from.
type Vision struct {
	Radius   int
	Location grid.Point
}

func (Vision) Type() ecs.ComponentType { return CVision }
