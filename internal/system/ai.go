package system

import (
	"math"
	"math/rand"

	"roguecore/internal/action"
	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/grid"
)

// Waiter always waits.
type Waiter struct{}

func (Waiter) Decide(component.Mind, *rand.Rand) component.Decision {
	return component.Decision{Intent: component.IntentWait}
}

// Mover keeps stepping in one direction.
type Mover struct {
	Dir grid.Direction
}

func (mv Mover) Decide(component.Mind, *rand.Rand) component.Decision {
	return component.Decision{Intent: component.IntentMove, Dir: mv.Dir}
}

// Wanderer always wanders.
type Wanderer struct{}

func (Wanderer) Decide(component.Mind, *rand.Rand) component.Decision {
	return component.Decision{Intent: component.IntentWander}
}

// Chaser steps toward the nearest player within SightRange and wanders when
// none is in sight. Bumping the player turns into an attack further down.
type Chaser struct {
	SightRange int
}

func (c Chaser) Decide(m component.Mind, _ *rand.Rand) component.Decision {
	pos, ok := ecs.GetAs[component.Position](m.World, m.Self, component.CPosition)
	if !ok || pos.Map == nil {
		return component.Decision{Intent: component.IntentWait}
	}
	target, ok := nearestPlayer(m.World, pos, c.SightRange)
	if !ok {
		return component.Decision{Intent: component.IntentWander}
	}
	best, bestDist := grid.Wait, distance(pos.Cell(), target)
	for _, d := range pos.Map.Directions() {
		if dist := distance(pos.Cell().Add(d), target); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	if best == grid.Wait {
		return component.Decision{Intent: component.IntentWait}
	}
	return component.Decision{Intent: component.IntentMove, Dir: best}
}

// nearestPlayer returns the cell of the closest player on the same map
// within sightRange.
func nearestPlayer(w *ecs.World, from component.Position, sightRange int) (grid.Point, bool) {
	var best grid.Point
	bestDist := math.MaxFloat64
	for _, pid := range w.Query(component.CTagPlayer, component.CPosition) {
		pp, _ := ecs.GetAs[component.Position](w, pid, component.CPosition)
		if pp.Map != from.Map {
			continue
		}
		dist := distance(from.Cell(), pp.Cell())
		if dist <= float64(sightRange) && dist < bestDist {
			best, bestDist = pp.Cell(), dist
		}
	}
	return best, bestDist != math.MaxFloat64
}

func distance(a, b grid.Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Decide polls id's AI. ok is false when id has no AI or no strategy.
func Decide(w *ecs.World, id ecs.EntityID, rng *rand.Rand) (component.Decision, bool) {
	brain, ok := ecs.GetAs[component.AI](w, id, component.CAI)
	if !ok || brain.Strategy == nil {
		return component.Decision{}, false
	}
	return brain.Strategy.Decide(component.Mind{World: w, Self: id}, rng), true
}

// Intend turns a decision into an action. Wander picks uniformly from the
// actor's map direction set; with no map, or no directions, it waits.
func Intend(env *action.Env, id ecs.EntityID, d component.Decision, rng *rand.Rand) action.Action {
	switch d.Intent {
	case component.IntentMove:
		return action.NewMove(env, id, d.Dir)
	case component.IntentWander:
		return action.NewMove(env, id, wanderDirection(env.World, id, rng))
	default:
		return action.NewMove(env, id, grid.Wait)
	}
}

func wanderDirection(w *ecs.World, id ecs.EntityID, rng *rand.Rand) grid.Direction {
	pos, ok := ecs.GetAs[component.Position](w, id, component.CPosition)
	if !ok || pos.Map == nil {
		return grid.Wait
	}
	dirs := pos.Map.Directions()
	if len(dirs) == 0 {
		return grid.Wait
	}
	return dirs[rng.Intn(len(dirs))]
}
