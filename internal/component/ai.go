package component

import (
	"math/rand"

	"roguecore/internal/ecs"
	"roguecore/internal/grid"
)

const CAI ecs.ComponentType = 5

// Intent is what an AI wants to do this turn.
type Intent uint8

const (
	IntentWait Intent = iota
	IntentMove
	IntentWander
)

func (i Intent) String() string {
	switch i {
	case IntentWait:
		return "wait"
	case IntentMove:
		return "move"
	case IntentWander:
		return "wander"
	}
	return "unknown"
}

// Decision is an Intent plus its direction. Dir only matters for IntentMove.
type Decision struct {
	Intent Intent
	Dir    grid.Direction
}

// Mind is what a Strategy sees when it is polled.
type Mind struct {
	World *ecs.World
	Self  ecs.EntityID
}

// Strategy decides one turn for an AI-controlled entity. Implementations
// must not mutate the world.
type Strategy interface {
	Decide(m Mind, rng *rand.Rand) Decision
}

// AI attaches a Strategy to an entity.
type AI struct {
	Strategy Strategy
}

func (AI) Type() ecs.ComponentType { return CAI }
