package action

import "roguecore/internal/ecs"

const CSlot ecs.ComponentType = 9

// Slot holds at most one pending action. An empty slot means the entity does
// nothing until an AI or the input layer assigns it something.
type Slot struct {
	Pending Action
}

func (Slot) Type() ecs.ComponentType { return CSlot }

// Assign puts a into id's slot, replacing whatever was pending.
func Assign(w *ecs.World, id ecs.EntityID, a Action) {
	w.Add(id, Slot{Pending: a})
}

// Clear empties id's slot. The slot component itself stays.
func Clear(w *ecs.World, id ecs.EntityID) {
	if w.Has(id, CSlot) {
		w.Add(id, Slot{})
	}
}

// PendingOf returns id's pending action.
func PendingOf(w *ecs.World, id ecs.EntityID) (Action, bool) {
	s, ok := ecs.GetAs[Slot](w, id, CSlot)
	if !ok || s.Pending == nil {
		return nil, false
	}
	return s.Pending, true
}
