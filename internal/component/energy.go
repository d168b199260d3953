package component

import "roguecore/internal/ecs"

const CEnergy ecs.ComponentType = 2

// Energy is the reservoir actions are paid from. Max of zero means uncapped.
type Energy struct {
	Current int
	Max     int
}

func (Energy) Type() ecs.ComponentType { return CEnergy }

// CanAfford reports whether cost can be paid without going negative.
func (e Energy) CanAfford(cost int) bool { return e.Current >= cost }

// Spend returns the reservoir after paying cost, or ok=false and the
// reservoir unchanged when it cannot be paid.
func (e Energy) Spend(cost int) (Energy, bool) {
	if !e.CanAfford(cost) {
		return e, false
	}
	e.Current -= cost
	return e, true
}

// Gain returns the reservoir after accruing n, clamped to Max.
func (e Energy) Gain(n int) Energy {
	e.Current += n
	if e.Max > 0 && e.Current > e.Max {
		e.Current = e.Max
	}
	return e
}
