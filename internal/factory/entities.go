package factory

import (
	"fmt"

	"roguecore/internal/action"
	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/gamemap"
	"roguecore/internal/grid"

	"github.com/gdamore/tcell/v2"
)

// NewPlayer creates the player entity on cell of m.
func NewPlayer(w *ecs.World, m gamemap.Surface, cell grid.Point, energy, sight int) ecs.EntityID {
	id := w.CreateEntity()
	component.Place(w, id, m, cell)
	w.Add(id, component.Energy{Current: energy})
	w.Add(id, component.Active{})
	w.Add(id, action.Slot{})
	w.Add(id, component.Vision{Radius: sight, Location: cell})
	w.Add(id, component.Inventory{})
	w.Add(id, component.Renderable{
		Glyph:       "@",
		FGColor:     tcell.ColorYellow,
		RenderOrder: 10,
	})
	w.Add(id, component.TagPlayer{})
	return id
}

// NewMonster creates an AI-driven actor on cell of m.
func NewMonster(w *ecs.World, m gamemap.Surface, cell grid.Point, glyph string, strategy component.Strategy, energy int) ecs.EntityID {
	id := w.CreateEntity()
	component.Place(w, id, m, cell)
	w.Add(id, component.Energy{Current: energy})
	w.Add(id, component.Active{})
	w.Add(id, action.Slot{})
	w.Add(id, component.AI{Strategy: strategy})
	w.Add(id, component.Renderable{
		Glyph:       glyph,
		FGColor:     tcell.ColorRed,
		RenderOrder: 5,
	})
	return id
}

// NewItem creates a static item lying on cell of m. Items are never
// scheduled and never block movement.
func NewItem(w *ecs.World, m gamemap.Surface, cell grid.Point, glyph string) ecs.EntityID {
	id := w.CreateEntity()
	component.Place(w, id, m, cell)
	w.Add(id, component.Renderable{
		Glyph:       glyph,
		FGColor:     tcell.ColorGreen,
		RenderOrder: 2,
	})
	return id
}

// NewEquipment creates a wearable item occupying the named slots.
func NewEquipment(w *ecs.World, m gamemap.Surface, cell grid.Point, glyph string, slots ...string) (ecs.EntityID, error) {
	eq, err := component.NewEquippable(slots...)
	if err != nil {
		return ecs.NilEntity, fmt.Errorf("equipment %q: %w", glyph, err)
	}
	id := NewItem(w, m, cell, glyph)
	w.Add(id, eq)
	return id, nil
}

// PickUp moves item off the map into holder's inventory. It reports false
// when holder has no inventory or item is not standing where holder is.
func PickUp(w *ecs.World, holder, item ecs.EntityID) bool {
	inv, ok := ecs.GetAs[component.Inventory](w, holder, component.CInventory)
	if !ok {
		return false
	}
	hp, ok := ecs.GetAs[component.Position](w, holder, component.CPosition)
	if !ok {
		return false
	}
	ip, ok := ecs.GetAs[component.Position](w, item, component.CPosition)
	if !ok || ip.Map != hp.Map || ip.Cell() != hp.Cell() {
		return false
	}
	component.Unplace(w, item)
	w.Add(holder, inv.Add(item))
	return true
}

// ItemsAt returns the unscheduled entities lying on cell of m, ascending.
func ItemsAt(w *ecs.World, m gamemap.Surface, cell grid.Point) []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range w.Query(component.CPosition) {
		if w.Has(id, component.CActive) {
			continue
		}
		pos, _ := ecs.GetAs[component.Position](w, id, component.CPosition)
		if pos.Map == m && pos.Cell() == cell {
			out = append(out, id)
		}
	}
	return out
}
