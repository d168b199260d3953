package system

import (
	"github.com/sirupsen/logrus"

	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/gamemap"
	"roguecore/internal/grid"
	"roguecore/internal/logging"
	"roguecore/internal/region"
)

// Visibility is the vantage entity's view of one map: terrain resistance,
// the lit field, the blockage frontier just outside it, and every cell ever
// seen. All four are derived from the vantage position and are refreshed
// whenever it moves or the terrain changes.
type Visibility struct {
	surface       gamemap.Surface
	width, height int
	radius        int

	resistance []float64
	light      []float64
	visible    *region.CellSet
	blockage   region.Region
	seen       *region.CellSet

	revision  uint64
	origin    grid.Point
	ready     bool
	refreshes int
	logger    logrus.FieldLogger
}

// NewVisibility allocates the buffers for m. logger may be nil.
func NewVisibility(m gamemap.Surface, radius int, logger logrus.FieldLogger) *Visibility {
	if logger == nil {
		logger = logging.Discard()
	}
	v := &Visibility{radius: radius, logger: logger}
	v.bind(m)
	return v
}

func (v *Visibility) bind(m gamemap.Surface) {
	v.surface = m
	v.width, v.height = m.Size()
	n := v.width * v.height
	v.resistance = make([]float64, n)
	v.light = make([]float64, n)
	v.visible = region.New()
	v.blockage = region.New()
	v.seen = region.New()
	v.ready = false
	v.deriveResistance()
}

func (v *Visibility) deriveResistance() {
	for y := 0; y < v.height; y++ {
		for x := 0; x < v.width; x++ {
			v.resistance[y*v.width+x] = v.surface.Resistance(grid.Pt(x, y))
		}
	}
	v.revision = v.surface.Revision()
}

// Refresh recomputes everything from origin. The light buffer is reused.
func (v *Visibility) Refresh(origin grid.Point) {
	if v.surface.Revision() != v.revision {
		v.deriveResistance()
	}
	ShadowCast(v.resistance, v.light, v.width, v.height, origin, v.radius)
	v.visible.Refill(v.light, v.width, 0)
	v.blockage = v.visible.Fringe8(v.width, v.height)
	v.seen.Union(v.visible)

	v.origin = origin
	v.ready = true
	v.refreshes++
	v.logger.WithFields(logrus.Fields{
		"origin":   origin.String(),
		"visible":  v.visible.Len(),
		"blockage": v.blockage.Len(),
		"seen":     v.seen.Len(),
	}).Debug("visibility refreshed")
}

// Sync refreshes from the vantage entity's Position when it has moved, has
// changed map, or the terrain changed since the last refresh. A Vision
// component overrides the radius. It reports whether a refresh happened;
// an entity without a Position leaves everything as it was.
func (v *Visibility) Sync(w *ecs.World, vantage ecs.EntityID) bool {
	pos, ok := ecs.GetAs[component.Position](w, vantage, component.CPosition)
	if !ok || pos.Map == nil {
		return false
	}
	if vis, ok := ecs.GetAs[component.Vision](w, vantage, component.CVision); ok && vis.Radius > 0 {
		v.radius = vis.Radius
	}
	if pos.Map != v.surface {
		v.bind(pos.Map)
	}
	if v.ready && pos.Cell() == v.origin && v.surface.Revision() == v.revision {
		return false
	}
	v.Refresh(pos.Cell())
	return true
}

// IsVisible reports whether cell is lit right now.
func (v *Visibility) IsVisible(cell grid.Point) bool { return v.visible.Contains(cell) }

// IsSeenEver reports whether cell has been lit at any point.
func (v *Visibility) IsSeenEver(cell grid.Point) bool { return v.seen.Contains(cell) }

// Light returns the falloff value at cell, zero when unlit or off the map.
func (v *Visibility) Light(cell grid.Point) float64 {
	if cell.X < 0 || cell.Y < 0 || cell.X >= v.width || cell.Y >= v.height {
		return 0
	}
	return v.light[cell.Y*v.width+cell.X]
}

// Blockage is the frontier just outside the visible set.
func (v *Visibility) Blockage() region.Region { return v.blockage }

// Visible is the currently lit set.
func (v *Visibility) Visible() region.Region { return v.visible }

// Seen is every cell ever lit.
func (v *Visibility) Seen() region.Region { return v.seen }

// Origin returns where the last refresh was computed from.
func (v *Visibility) Origin() grid.Point { return v.origin }

// Radius returns the current sight radius.
func (v *Visibility) Radius() int { return v.radius }

// Refreshes counts Refresh calls.
func (v *Visibility) Refreshes() int { return v.refreshes }

// ResetSeen forgets everything seen. The current view is kept.
func (v *Visibility) ResetSeen() {
	v.seen.Clear()
	v.seen.Union(v.visible)
}
