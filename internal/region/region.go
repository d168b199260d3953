// Package region provides sets of grid cells with the bulk operations the
// visibility code needs: union, containment, and 8-way fringe extraction.
package region

import (
	"cmp"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"roguecore/internal/grid"
)

// Region is a set of cells.
type Region interface {
	Contains(p grid.Point) bool
	Add(p grid.Point)
	Remove(p grid.Point)
	Len() int
	Each(fn func(p grid.Point))
	Clear()
	// Union adds every cell of other to the receiver.
	Union(other Region)
	// Fringe8 returns the cells outside the region that touch it, including
	// diagonally, clipped to a width×height grid.
	Fringe8(width, height int) Region
	Copy() Region
}

// CellSet is a hash-set Region.
type CellSet struct {
	cells mapset.Set[grid.Point]
}

// New returns an empty CellSet.
func New() *CellSet {
	return &CellSet{cells: mapset.New[grid.Point]()}
}

// Of returns a CellSet holding pts.
func Of(pts ...grid.Point) *CellSet {
	s := New()
	for _, p := range pts {
		s.Add(p)
	}
	return s
}

func (s *CellSet) Contains(p grid.Point) bool { return s.cells.Has(p) }
func (s *CellSet) Add(p grid.Point)           { s.cells.Put(p) }
func (s *CellSet) Remove(p grid.Point)        { s.cells.Remove(p) }
func (s *CellSet) Len() int                   { return s.cells.Size() }
func (s *CellSet) Each(fn func(p grid.Point)) { s.cells.Each(fn) }

// Clear empties the set.
func (s *CellSet) Clear() {
	s.cells = mapset.New[grid.Point]()
}

func (s *CellSet) Union(other Region) {
	other.Each(s.Add)
}

func (s *CellSet) Fringe8(width, height int) Region {
	out := New()
	s.Each(func(p grid.Point) {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				n := p.Translate(dx, dy)
				if n.X < 0 || n.Y < 0 || n.X >= width || n.Y >= height {
					continue
				}
				if !s.Contains(n) {
					out.Add(n)
				}
			}
		}
	})
	return out
}

func (s *CellSet) Copy() Region {
	c := New()
	c.Union(s)
	return c
}

// Refill replaces the contents with every cell of a row-major field whose
// value is above threshold.
func (s *CellSet) Refill(field []float64, width int, threshold float64) {
	s.Clear()
	for i, v := range field {
		if v > threshold {
			s.Add(grid.Pt(i%width, i/width))
		}
	}
}

// Points returns the cells in row-major order.
func Points(r Region) []grid.Point {
	pts := make([]grid.Point, 0, r.Len())
	r.Each(func(p grid.Point) { pts = append(pts, p) })
	slices.SortFunc(pts, func(a, b grid.Point) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return pts
}
