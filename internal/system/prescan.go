package system

import (
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/heap"

	"roguecore/internal/gamemap"
	"roguecore/internal/grid"
	"roguecore/internal/logging"
	"roguecore/internal/region"
)

// Measurement sets what a diagonal step counts for in the distance field.
type Measurement uint8

const (
	// Manhattan counts a diagonal step as two.
	Manhattan Measurement = iota
	// Chebyshev counts every step as one.
	Chebyshev
)

const unreached = -1

type scanEntry struct {
	idx  int
	dist int
}

// Prescan is a bounded distance field seeded at a single goal. Once scanned,
// PathTo answers in time proportional to the path length, so callers may
// query it every frame until the goal moves.
type Prescan struct {
	surface       gamemap.Surface
	width, height int
	measure       Measurement

	dist    []int
	goal    grid.Point
	hasGoal bool
	limit   int
	scans   int
	logger  logrus.FieldLogger
}

// NewPrescan returns an empty field over m. logger may be nil.
func NewPrescan(m gamemap.Surface, measure Measurement, logger logrus.FieldLogger) *Prescan {
	if logger == nil {
		logger = logging.Discard()
	}
	w, h := m.Size()
	p := &Prescan{surface: m, width: w, height: h, measure: measure, dist: make([]int, w*h), logger: logger}
	p.invalidate()
	return p
}

func (p *Prescan) invalidate() {
	for i := range p.dist {
		p.dist[i] = unreached
	}
}

func (p *Prescan) inBounds(c grid.Point) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < p.width && c.Y < p.height
}

func (p *Prescan) stepCost(d grid.Direction) int {
	if d.IsDiagonal() && p.measure == Manhattan {
		return 2
	}
	return 1
}

// SetGoal moves the goal and drops the old field. Nothing is reachable until
// the next Rescan.
func (p *Prescan) SetGoal(cell grid.Point) {
	p.goal = cell
	p.hasGoal = p.inBounds(cell)
	p.invalidate()
}

// Goal returns the current goal cell.
func (p *Prescan) Goal() grid.Point { return p.goal }

// Rescan rebuilds the field outward from the goal. Cells farther than limit,
// cells in blockage, and cells that cannot be stepped into or opened are
// never given a distance. blockage may be nil.
func (p *Prescan) Rescan(limit int, blockage region.Region) {
	p.invalidate()
	p.limit = limit
	p.scans++
	if !p.hasGoal {
		return
	}

	goalIdx := p.goal.Y*p.width + p.goal.X
	p.dist[goalIdx] = 0
	open := heap.New[scanEntry](func(a, b scanEntry) bool { return a.dist < b.dist })
	open.Push(scanEntry{idx: goalIdx})

	dirs := p.surface.Directions()
	for open.Size() > 0 {
		e, _ := open.Pop()
		if e.dist > p.dist[e.idx] {
			continue
		}
		cell := grid.Pt(e.idx%p.width, e.idx/p.width)
		for _, d := range dirs {
			n := cell.Add(d)
			if !p.inBounds(n) || (blockage != nil && blockage.Contains(n)) {
				continue
			}
			if !p.surface.IsPassable(cell, d) && !p.surface.IsOpenable(cell, d) {
				continue
			}
			nd := e.dist + p.stepCost(d)
			if nd > limit {
				continue
			}
			ni := n.Y*p.width + n.X
			if p.dist[ni] == unreached || nd < p.dist[ni] {
				p.dist[ni] = nd
				open.Push(scanEntry{idx: ni, dist: nd})
			}
		}
	}
	p.logger.WithFields(logrus.Fields{
		"goal":  p.goal.String(),
		"limit": limit,
		"scans": p.scans,
	}).Debug("prescan recomputed")
}

// Distance returns the scanned distance to cell.
func (p *Prescan) Distance(cell grid.Point) (int, bool) {
	if !p.inBounds(cell) {
		return 0, false
	}
	d := p.dist[cell.Y*p.width+cell.X]
	return d, d != unreached
}

// PathTo walks the field from cell back to the goal and returns the cells
// to step through, nearest the goal first and ending at cell. The goal
// itself is left out. The result is empty when cell is the goal, was not
// reached, or lies beyond the limit.
func (p *Prescan) PathTo(cell grid.Point) []grid.Point {
	cur, ok := p.Distance(cell)
	if !ok || cur == 0 {
		return nil
	}
	path := []grid.Point{cell}
	at := cell
	dirs := p.surface.Directions()
	for {
		best, bestDist := at, cur
		for _, d := range dirs {
			n := at.Add(d)
			if nd, ok := p.Distance(n); ok && nd < bestDist {
				best, bestDist = n, nd
			}
		}
		if best == at {
			return nil
		}
		if bestDist == 0 {
			break
		}
		path = append(path, best)
		at, cur = best, bestDist
	}
	slices.Reverse(path)
	return path
}

// Scans counts Rescan calls.
func (p *Prescan) Scans() int { return p.scans }

// Limit returns the bound used by the last Rescan.
func (p *Prescan) Limit() int { return p.limit }
