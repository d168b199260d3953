// Package action defines what an entity can do on its turn. Every action has
// its energy cost fixed when it is built, and Perform reports exactly one
// outcome without touching the actor's action slot; the scheduler owns the
// slot.
package action

import (
	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/eventlog"
)

// Outcome is the result kind of one Perform call.
type Outcome uint8

const (
	// Success: the effect committed and energy was spent.
	Success Outcome = iota
	// Deferred: the actor cannot afford the cost yet. Nothing changed.
	Deferred
	// Rewritten: the action turned into Result.Next, which should be
	// performed straight away. Nothing changed.
	Rewritten
	// Blocked: the action cannot happen. Nothing changed.
	Blocked
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Deferred:
		return "deferred"
	case Rewritten:
		return "rewritten"
	case Blocked:
		return "blocked"
	}
	return "unknown"
}

// Result is what Perform returns. Next is set only for Rewritten.
type Result struct {
	Outcome Outcome
	Next    Action
}

func done() Result               { return Result{Outcome: Success} }
func deferred() Result           { return Result{Outcome: Deferred} }
func blocked() Result            { return Result{Outcome: Blocked} }
func rewrite(next Action) Result { return Result{Outcome: Rewritten, Next: next} }

// Action is one pending intent of one actor.
type Action interface {
	Actor() ecs.EntityID
	Cost() int
	Perform() Result
	String() string
}

// Env is the simulation context actions read and mutate.
type Env struct {
	World *ecs.World
	Log   eventlog.Log
}

func (env *Env) record(e eventlog.Entry) {
	if env.Log != nil {
		env.Log.Record(e)
	}
}

func (env *Env) energy(id ecs.EntityID) component.Energy {
	e, _ := ecs.GetAs[component.Energy](env.World, id, component.CEnergy)
	return e
}

// spend takes cost from id's reservoir. An entity without Energy has none.
func (env *Env) spend(id ecs.EntityID, cost int) bool {
	e, ok := env.energy(id).Spend(cost)
	if !ok {
		return false
	}
	env.World.Add(id, e)
	return true
}

func (env *Env) canAfford(id ecs.EntityID, cost int) bool {
	return env.energy(id).CanAfford(cost)
}
