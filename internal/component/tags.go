package component

import "roguecore/internal/ecs"

const (
	CActive    ecs.ComponentType = 4
	CTagPlayer ecs.ComponentType = 8
)

// Active marks an entity the scheduler may give a turn to.
type Active struct{}

func (Active) Type() ecs.ComponentType { return CActive }

// TagPlayer marks the player-controlled entity.
type TagPlayer struct{}

func (TagPlayer) Type() ecs.ComponentType { return CTagPlayer }
