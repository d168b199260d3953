package component

import "roguecore/internal/ecs"

const CInventory ecs.ComponentType = 6

// Inventory is the ordered list of held entities. It has no capacity limit.
type Inventory struct {
	Items []ecs.EntityID
}

func (Inventory) Type() ecs.ComponentType { return CInventory }

// Add returns the inventory with item appended.
func (inv Inventory) Add(item ecs.EntityID) Inventory {
	inv.Items = append(inv.Items, item)
	return inv
}
