package ecs

import (
	"maps"
	"slices"
)

// store holds every component of one type, keyed by owner.
type store map[EntityID]Component

// World is the entity registry and component table of one simulation.
// It is owned by a single goroutine; nothing here locks.
type World struct {
	nextID EntityID
	alive  map[EntityID]struct{}
	tables map[ComponentType]store
}

// NewWorld creates an empty World. The first entity it mints is 1.
func NewWorld() *World {
	return &World{
		nextID: 1,
		alive:  make(map[EntityID]struct{}),
		tables: make(map[ComponentType]store),
	}
}

// CreateEntity mints a fresh ID. IDs are never reused.
func (w *World) CreateEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.alive[id] = struct{}{}
	return id
}

// DestroyEntity drops id and everything attached to it.
func (w *World) DestroyEntity(id EntityID) {
	if !w.Alive(id) {
		return
	}
	delete(w.alive, id)
	for _, s := range w.tables {
		delete(s, id)
	}
}

func (w *World) Alive(id EntityID) bool {
	_, ok := w.alive[id]
	return ok
}

// Len counts live entities.
func (w *World) Len() int { return len(w.alive) }

// Add attaches c to id, replacing a component of the same type. A dead or
// unknown id is ignored.
func (w *World) Add(id EntityID, c Component) {
	if !w.Alive(id) {
		return
	}
	s, ok := w.tables[c.Type()]
	if !ok {
		s = make(store)
		w.tables[c.Type()] = s
	}
	s[id] = c
}

// Get looks up id's component of type t. A missing component is not an
// error; ok is simply false.
func (w *World) Get(id EntityID, t ComponentType) (c Component, ok bool) {
	c, ok = w.tables[t][id]
	return c, ok
}

// GetAs is Get with the type assertion folded in.
func GetAs[T Component](w *World, id EntityID, t ComponentType) (T, bool) {
	var zero T
	c, ok := w.Get(id, t)
	if !ok {
		return zero, false
	}
	v, ok := c.(T)
	return v, ok
}

func (w *World) Remove(id EntityID, t ComponentType) {
	delete(w.tables[t], id)
}

func (w *World) Has(id EntityID, t ComponentType) bool {
	_, ok := w.tables[t][id]
	return ok
}

// Query lists the live entities carrying every type in types, ascending.
// No types means no entities.
func (w *World) Query(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	narrowest := slices.MinFunc(types, func(a, b ComponentType) int {
		return len(w.tables[a]) - len(w.tables[b])
	})
	ids := slices.Sorted(maps.Keys(w.tables[narrowest]))
	return slices.DeleteFunc(ids, func(id EntityID) bool {
		if !w.Alive(id) {
			return true
		}
		for _, t := range types {
			if !w.Has(id, t) {
				return true
			}
		}
		return false
	})
}
