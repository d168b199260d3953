package action

import (
	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/eventlog"
	"roguecore/internal/grid"
)

// MeleeAttack strikes an adjacent active entity. Damage is not modelled
// here; a successful attack spends energy and is logged.
type MeleeAttack struct {
	env    *Env
	actor  ecs.EntityID
	Target ecs.EntityID
	cost   int
}

// NewMeleeAttack prices the attack as a step toward the target.
func NewMeleeAttack(env *Env, actor, target ecs.EntityID) *MeleeAttack {
	a := &MeleeAttack{env: env, actor: actor, Target: target}
	if pos, ok := ecs.GetAs[component.Position](env.World, actor, component.CPosition); ok && pos.Map != nil {
		d, _ := a.direction(pos)
		a.cost = pos.Map.Cost(pos.Cell(), d)
	}
	return a
}

func (a *MeleeAttack) Actor() ecs.EntityID { return a.actor }
func (a *MeleeAttack) Cost() int           { return a.cost }
func (a *MeleeAttack) String() string      { return "attack " + a.Target.String() }

// Perform implements Action. The attack is blocked once the target has left,
// died, or stopped being active.
func (a *MeleeAttack) Perform() Result {
	w := a.env.World
	pos, ok := ecs.GetAs[component.Position](w, a.actor, component.CPosition)
	if !ok || !w.Alive(a.Target) || !w.Has(a.Target, component.CActive) {
		return blocked()
	}
	if _, ok := a.direction(pos); !ok {
		return blocked()
	}
	if !a.env.spend(a.actor, a.cost) {
		return deferred()
	}
	a.env.record(eventlog.Entry{Actor: a.actor, Verb: eventlog.VerbAttack, Target: a.Target, Cost: a.cost})
	return done()
}

// direction is the single step from the actor to the target, ok=false when
// they are not adjacent on the same map.
func (a *MeleeAttack) direction(pos component.Position) (grid.Direction, bool) {
	tp, ok := ecs.GetAs[component.Position](a.env.World, a.Target, component.CPosition)
	if !ok || tp.Map != pos.Map {
		return grid.Wait, false
	}
	d, ok := grid.Toward(pos.Cell(), tp.Cell())
	if !ok || d == grid.Wait {
		return grid.Wait, false
	}
	return d, true
}
