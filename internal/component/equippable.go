package component

import (
	"errors"
	"fmt"

	"roguecore/internal/ecs"
)

const CEquippable ecs.ComponentType = 10

// EquipSlot is a body location an item occupies when worn.
type EquipSlot uint8

const (
	SlotHead EquipSlot = iota
	SlotChest
	SlotLeftHand
	SlotRightHand
)

var slotNames = map[string]EquipSlot{
	"head":       SlotHead,
	"chest":      SlotChest,
	"left hand":  SlotLeftHand,
	"right hand": SlotRightHand,
}

func (s EquipSlot) String() string {
	switch s {
	case SlotHead:
		return "head"
	case SlotChest:
		return "chest"
	case SlotLeftHand:
		return "left hand"
	case SlotRightHand:
		return "right hand"
	}
	return "unknown"
}

// ErrUnknownSlot is returned for slot names outside the closed set.
var ErrUnknownSlot = errors.New("unknown equipment slot")

// ParseEquipSlot maps a content-file slot name to its EquipSlot.
func ParseEquipSlot(name string) (EquipSlot, bool) {
	s, ok := slotNames[name]
	return s, ok
}

// Equippable lists the slots an item occupies. Nothing in the core enforces it.
type Equippable struct {
	Slots []EquipSlot
}

func (Equippable) Type() ecs.ComponentType { return CEquippable }

// NewEquippable builds an Equippable from slot names.
func NewEquippable(names ...string) (Equippable, error) {
	var e Equippable
	for _, n := range names {
		s, ok := ParseEquipSlot(n)
		if !ok {
			return Equippable{}, fmt.Errorf("%q: %w", n, ErrUnknownSlot)
		}
		e.Slots = append(e.Slots, s)
	}
	return e, nil
}

// Occupies reports whether the item takes up slot s.
func (e Equippable) Occupies(s EquipSlot) bool {
	for _, have := range e.Slots {
		if have == s {
			return true
		}
	}
	return false
}
