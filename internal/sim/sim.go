// Package sim is the simulation context: one world, one map, the player's
// visibility and path prescan, and the scheduler that drives them. Every
// collaborator is owned here and handed down explicitly.
package sim

import (
	"errors"
	"fmt"
	"maps"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"roguecore/internal/action"
	"roguecore/internal/component"
	"roguecore/internal/config"
	"roguecore/internal/ecs"
	"roguecore/internal/eventlog"
	"roguecore/internal/factory"
	"roguecore/internal/gamemap"
	"roguecore/internal/grid"
	"roguecore/internal/logging"
	"roguecore/internal/region"
	"roguecore/internal/system"
)

// ErrNoPlayer is returned when a layout has no '@' marker.
var ErrNoPlayer = errors.New("sim: layout has no player marker")

// Sim owns one running simulation.
type Sim struct {
	ID     uuid.UUID
	World  *ecs.World
	Map    *gamemap.GameMap
	Player ecs.EntityID

	cfg    config.Config
	rng    *rand.Rand
	env    *action.Env
	log    *eventlog.MessageLog
	sched  *system.Scheduler
	vis    *system.Visibility
	scan   *system.Prescan
	walker *system.Walker
	logger *logrus.Entry
}

// FromText parses a text layout priced at cfg.MoveCost and builds a Sim on it.
func FromText(cfg config.Config, text string, logger logrus.FieldLogger) (*Sim, error) {
	layout, err := gamemap.Parse(text, cfg.MoveCost)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return New(cfg, layout, logger)
}

// New populates layout's markers and prepares the player's first view and
// prescan. logger may be nil.
func New(cfg config.Config, layout *gamemap.Layout, logger logrus.FieldLogger) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Sim{
		ID:    uuid.New(),
		World: ecs.NewWorld(),
		Map:   layout.Map,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
	}
	s.logger = logger.WithField("sim", s.ID.String())
	if cfg.DiagonalMoves {
		s.Map.SetDirections(grid.EightWay)
	}

	start, ok := layout.Marker('@')
	if !ok {
		return nil, ErrNoPlayer
	}
	s.Player = factory.NewPlayer(s.World, s.Map, start, cfg.StartEnergy, cfg.FOVRadius)
	if err := s.populate(layout); err != nil {
		return nil, err
	}

	s.log = eventlog.NewMessageLog(cfg.MessageCapacity, s.logger)
	s.env = &action.Env{World: s.World, Log: s.log}
	s.sched = system.NewScheduler(s.env, s.rng, cfg.MaxRewrites, s.logger)
	s.sched.SetEnergyPerRound(cfg.EnergyPerRound)

	measure := system.Manhattan
	if cfg.Measurement == config.Chebyshev {
		measure = system.Chebyshev
	}
	s.vis = system.NewVisibility(s.Map, cfg.FOVRadius, s.logger)
	s.scan = system.NewPrescan(s.Map, measure, s.logger)
	s.walker = system.NewWalker(s.env, s.sched, s.vis, s.scan, s.Player, cfg.PrescanLimit, s.logger)

	s.vis.Sync(s.World, s.Player)
	s.walker.Rescan()

	s.logger.WithFields(logrus.Fields{
		"width":    s.Map.Width,
		"height":   s.Map.Height,
		"entities": s.World.Len(),
		"seed":     seed,
	}).Info("simulation ready")
	return s, nil
}

// populate spawns whatever the layout's non-terrain glyphs stand for, in
// glyph order so entity IDs are the same on every run.
func (s *Sim) populate(layout *gamemap.Layout) error {
	for _, glyph := range slices.Sorted(maps.Keys(layout.Markers)) {
		if glyph == '@' {
			continue
		}
		for _, cell := range layout.Markers[glyph] {
			if err := s.spawn(glyph, cell); err != nil {
				return fmt.Errorf("spawn %q at %v: %w", glyph, cell, err)
			}
		}
	}
	return nil
}

func (s *Sim) spawn(glyph rune, cell grid.Point) error {
	w, m, energy := s.World, s.Map, s.cfg.StartEnergy
	switch glyph {
	case 'r':
		factory.NewMonster(w, m, cell, "r", system.Wanderer{}, energy)
	case 'g':
		factory.NewMonster(w, m, cell, "g", system.Chaser{SightRange: s.cfg.FOVRadius}, energy)
	case 'z':
		factory.NewMonster(w, m, cell, "z", system.Waiter{}, energy)
	case '!':
		factory.NewItem(w, m, cell, "!")
	case '[':
		_, err := factory.NewEquipment(w, m, cell, "[", "chest")
		return err
	case '^':
		_, err := factory.NewEquipment(w, m, cell, "^", "head")
		return err
	case ')':
		_, err := factory.NewEquipment(w, m, cell, ")", "right hand")
		return err
	case '(':
		_, err := factory.NewEquipment(w, m, cell, "(", "left hand")
		return err
	default:
		s.logger.WithField("glyph", string(glyph)).Warn("unknown layout marker, left as floor")
	}
	return nil
}

// Config returns the configuration the Sim was built with.
func (s *Sim) Config() config.Config { return s.cfg }

// Log returns the resolved-action feed.
func (s *Sim) Log() *eventlog.MessageLog { return s.log }

// Messages returns the last n resolved actions as text.
func (s *Sim) Messages(n int) []string { return s.log.Messages(n) }

// PlayerCell returns where the player stands.
func (s *Sim) PlayerCell() grid.Point {
	pos, _ := ecs.GetAs[component.Position](s.World, s.Player, component.CPosition)
	return pos.Cell()
}

// Advance runs one scheduling step for id and keeps the player's view in
// step with wherever the player now stands.
func (s *Sim) Advance(id ecs.EntityID) system.Report {
	rep := s.sched.Advance(id)
	s.vis.Sync(s.World, s.Player)
	return rep
}

// Order puts a directed Move (or a wait) into the player's slot.
func (s *Sim) Order(d grid.Direction) {
	action.Assign(s.World, s.Player, action.NewMove(s.env, s.Player, d))
}

// Round grants energy and advances every active entity once.
func (s *Sim) Round() map[ecs.EntityID]system.Report {
	reps := s.sched.Round()
	s.vis.Sync(s.World, s.Player)
	return reps
}

// Tick is one frame of the demo loop: everyone accrues energy, the player
// walks one awaited cell or resolves a pending order, then every other
// actor takes its step.
func (s *Sim) Tick() system.Report {
	w := s.World
	for _, id := range w.Query(component.CActive) {
		s.sched.Accrue(id)
	}

	var rep system.Report
	if s.walker.Walking() {
		rep, _ = s.walker.Step()
	} else {
		rep = s.sched.Advance(s.Player)
	}
	for _, id := range w.Query(component.CActive) {
		if id == s.Player || !w.Alive(id) {
			continue
		}
		s.sched.Advance(id)
	}
	s.vis.Sync(w, s.Player)
	return rep
}

// IsVisible reports whether the player can see cell now.
func (s *Sim) IsVisible(cell grid.Point) bool { return s.vis.IsVisible(cell) }

// IsSeenEver reports whether the player has ever seen cell.
func (s *Sim) IsSeenEver(cell grid.Point) bool { return s.vis.IsSeenEver(cell) }

// Light returns the falloff value at cell for shading.
func (s *Sim) Light(cell grid.Point) float64 { return s.vis.Light(cell) }

// Blockage is the frontier just past the player's sight.
func (s *Sim) Blockage() region.Region { return s.vis.Blockage() }

// PrescannedPathTo returns the cells from next to the player up to cell, or
// nothing when cell is out of reach of the current prescan.
func (s *Sim) PrescannedPathTo(cell grid.Point) []grid.Point { return s.scan.PathTo(cell) }

// SetGoal moves the prescan goal.
func (s *Sim) SetGoal(cell grid.Point) { s.scan.SetGoal(cell) }

// Rescan rebuilds the prescan from the current goal.
func (s *Sim) Rescan(bound int, blockage region.Region) { s.scan.Rescan(bound, blockage) }

// Scans counts prescan recomputations.
func (s *Sim) Scans() int { return s.scan.Scans() }

// Enqueue adds awaited cells for the player to walk.
func (s *Sim) Enqueue(cells ...grid.Point) { s.walker.Enqueue(cells...) }

// Walking reports whether awaited cells remain.
func (s *Sim) Walking() bool { return s.walker.Walking() }

// Pending returns the awaited cells, next first.
func (s *Sim) Pending() []grid.Point { return s.walker.Pending() }

// CancelWalk drops the awaited cells.
func (s *Sim) CancelWalk() { s.walker.Cancel() }

// Destroy removes id from the map and the world. The player cannot be
// destroyed.
func (s *Sim) Destroy(id ecs.EntityID) {
	if id == s.Player || !s.World.Alive(id) {
		return
	}
	component.Destroy(s.World, id)
	s.logger.WithField("entity", uint64(id)).Debug("entity destroyed")
}
