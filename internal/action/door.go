package action

import (
	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/eventlog"
	"roguecore/internal/gamemap"
	"roguecore/internal/grid"
)

// OpenDoor opens the closed door one step toward Dir.
type OpenDoor struct {
	env   *Env
	actor ecs.EntityID
	Dir   grid.Direction
	cost  int
}

func NewOpenDoor(env *Env, actor ecs.EntityID, d grid.Direction) *OpenDoor {
	o := &OpenDoor{env: env, actor: actor, Dir: d}
	if pos, ok := ecs.GetAs[component.Position](env.World, actor, component.CPosition); ok && pos.Map != nil {
		o.cost = pos.Map.Cost(pos.Cell(), d)
	}
	return o
}

func (o *OpenDoor) Actor() ecs.EntityID { return o.actor }
func (o *OpenDoor) Cost() int           { return o.cost }
func (o *OpenDoor) String() string      { return "open door " + o.Dir.String() }

// Perform implements Action.
func (o *OpenDoor) Perform() Result {
	pos, ok := ecs.GetAs[component.Position](o.env.World, o.actor, component.CPosition)
	if !ok || pos.Map == nil || !pos.Map.IsOpenable(pos.Cell(), o.Dir) {
		return blocked()
	}
	opener, ok := pos.Map.(gamemap.Opener)
	if !ok {
		return blocked()
	}
	if !o.env.canAfford(o.actor, o.cost) {
		return deferred()
	}
	if !opener.Open(pos.Cell(), o.Dir) {
		return blocked()
	}
	o.env.spend(o.actor, o.cost)
	o.env.record(eventlog.Entry{Actor: o.actor, Verb: eventlog.VerbOpenDoor, Cost: o.cost})
	return done()
}
