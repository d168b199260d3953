package action

import (
	"fmt"

	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/eventlog"
	"roguecore/internal/grid"
)

// Move steps the actor one cell toward Dir, or waits in place when Dir is
// grid.Wait. Bumping an active entity turns it into a MeleeAttack; bumping
// a closed door turns it into an OpenDoor.
type Move struct {
	env   *Env
	actor ecs.EntityID
	Dir   grid.Direction
	cost  int
}

// NewMove builds a Move, pricing it from the actor's map. An actor with no
// Position gets a zero cost; such a move can only be blocked.
func NewMove(env *Env, actor ecs.EntityID, d grid.Direction) *Move {
	m := &Move{env: env, actor: actor, Dir: d}
	if pos, ok := ecs.GetAs[component.Position](env.World, actor, component.CPosition); ok && pos.Map != nil {
		m.cost = pos.Map.Cost(pos.Cell(), d)
		if m.cost < 0 {
			panic(fmt.Sprintf("action: map returned negative cost %d at %v toward %v", m.cost, pos.Cell(), d))
		}
	}
	return m
}

func (m *Move) Actor() ecs.EntityID { return m.actor }
func (m *Move) Cost() int           { return m.cost }
func (m *Move) String() string      { return "move " + m.Dir.String() }

// Perform implements Action.
func (m *Move) Perform() Result {
	w := m.env.World
	pos, ok := ecs.GetAs[component.Position](w, m.actor, component.CPosition)
	if !ok || pos.Map == nil {
		return blocked()
	}

	if m.Dir == grid.Wait {
		if !m.env.spend(m.actor, m.cost) {
			return deferred()
		}
		m.env.record(eventlog.Entry{Actor: m.actor, Verb: eventlog.VerbWait, Cost: m.cost})
		return done()
	}

	dst := pos.Cell().Add(m.Dir)
	if victim, ok := m.occupant(pos, dst); ok {
		return rewrite(NewMeleeAttack(m.env, m.actor, victim))
	}

	if pos.Map.IsPassable(pos.Cell(), m.Dir) {
		if !m.env.spend(m.actor, m.cost) {
			return deferred()
		}
		moved, _ := component.UpdateLocation(w, m.actor, m.Dir)
		if vis, ok := ecs.GetAs[component.Vision](w, m.actor, component.CVision); ok {
			vis.Location = moved.Cell()
			w.Add(m.actor, vis)
		}
		m.env.record(eventlog.Entry{Actor: m.actor, Verb: eventlog.VerbMove, Cost: m.cost})
		return done()
	}

	if pos.Map.IsOpenable(pos.Cell(), m.Dir) {
		return rewrite(NewOpenDoor(m.env, m.actor, m.Dir))
	}
	return blocked()
}

// occupant finds an active entity other than the actor standing on dst of
// the same map. Query order is ascending ID, so the scan is stable.
func (m *Move) occupant(pos component.Position, dst grid.Point) (ecs.EntityID, bool) {
	w := m.env.World
	for _, other := range w.Query(component.CActive, component.CPosition) {
		if other == m.actor {
			continue
		}
		op, _ := ecs.GetAs[component.Position](w, other, component.CPosition)
		if op.Map == pos.Map && op.Cell() == dst {
			return other, true
		}
	}
	return ecs.NilEntity, false
}
