package region

import (
	"testing"

	"roguecore/internal/grid"
)

func TestAddContainsRemove(t *testing.T) {
	s := New()
	p := grid.Pt(2, 3)
	if s.Contains(p) {
		t.Fatal("empty set contains nothing")
	}
	s.Add(p)
	s.Add(p)
	if !s.Contains(p) || s.Len() != 1 {
		t.Fatalf("after Add: contains=%v len=%d", s.Contains(p), s.Len())
	}
	s.Remove(p)
	if s.Contains(p) || s.Len() != 0 {
		t.Fatal("Remove should drop the cell")
	}
}

func TestUnion(t *testing.T) {
	a := Of(grid.Pt(0, 0), grid.Pt(1, 0))
	b := Of(grid.Pt(1, 0), grid.Pt(2, 0))
	a.Union(b)
	if a.Len() != 3 {
		t.Fatalf("union len = %d, want 3", a.Len())
	}
	if b.Len() != 2 {
		t.Fatal("Union must not modify its argument")
	}
}

func TestFringe8SingleCell(t *testing.T) {
	s := Of(grid.Pt(5, 5))
	f := s.Fringe8(10, 10)
	if f.Len() != 8 {
		t.Fatalf("fringe of one interior cell = %d cells, want 8", f.Len())
	}
	if f.Contains(grid.Pt(5, 5)) {
		t.Fatal("fringe must exclude the region itself")
	}
	if !f.Contains(grid.Pt(4, 4)) || !f.Contains(grid.Pt(6, 6)) {
		t.Fatal("fringe must include diagonal neighbours")
	}
}

func TestFringe8ClipsToBounds(t *testing.T) {
	s := Of(grid.Pt(0, 0))
	f := s.Fringe8(3, 3)
	if f.Len() != 3 {
		t.Fatalf("corner fringe = %v, want 3 cells", Points(f))
	}
}

func TestFringe8Block(t *testing.T) {
	s := New()
	for y := 2; y <= 4; y++ {
		for x := 2; x <= 4; x++ {
			s.Add(grid.Pt(x, y))
		}
	}
	f := s.Fringe8(10, 10)
	// 5x5 ring around a 3x3 block.
	if f.Len() != 16 {
		t.Fatalf("ring size = %d, want 16", f.Len())
	}
}

func TestCopyIsIndependent(t *testing.T) {
	s := Of(grid.Pt(1, 1))
	c := s.Copy()
	c.Add(grid.Pt(2, 2))
	if s.Len() != 1 {
		t.Fatal("mutating a copy must not affect the original")
	}
}

func TestRefill(t *testing.T) {
	s := Of(grid.Pt(9, 9))
	field := []float64{
		0, 0.5, 0,
		1, 0, 0,
	}
	s.Refill(field, 3, 0)
	got := Points(s)
	want := []grid.Point{grid.Pt(1, 0), grid.Pt(0, 1)}
	if len(got) != len(want) {
		t.Fatalf("Refill = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Refill = %v, want %v", got, want)
		}
	}
}

func TestClear(t *testing.T) {
	s := Of(grid.Pt(1, 1), grid.Pt(2, 2))
	s.Clear()
	if s.Len() != 0 {
		t.Fatal("Clear should empty the set")
	}
}
