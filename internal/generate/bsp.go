// Package generate builds procedural layouts: BSP rooms joined by
// corridors, doors where corridors leave rooms, and spawn markers in the
// same form a parsed text layout carries.
package generate

import (
	"errors"
	"fmt"
	"math/rand"

	"roguecore/internal/gamemap"
	"roguecore/internal/grid"
)

var (
	ErrTooSmall = errors.New("generate: map too small")
	ErrNoRooms  = errors.New("generate: no room fits")
)

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// Config drives procedural generation for one level.
type Config struct {
	MapWidth, MapHeight int
	MinLeafSize         int
	MaxLeafSize         int
	MinRoomSize         int
	RoomPadding         int
	CorridorStyle       CorridorStyle
	DoorChance          float64 // chance each room exit becomes a closed door
	Monsters            int
	Items               int
	MonsterGlyphs       string // marker glyphs monsters are drawn from
	ItemGlyphs          string
	MoveCost            int
	Rand                *rand.Rand
}

// DefaultConfig returns a medium-sized level using rng.
func DefaultConfig(rng *rand.Rand) *Config {
	return &Config{
		MapWidth:      60,
		MapHeight:     30,
		MinLeafSize:   8,
		MaxLeafSize:   20,
		MinRoomSize:   4,
		RoomPadding:   1,
		CorridorStyle: CorridorLShaped,
		DoorChance:    0.5,
		Monsters:      6,
		Items:         4,
		MonsterGlyphs: "rgz",
		ItemGlyphs:    "![^)(",
		MoveCost:      gamemap.DefaultCost,
		Rand:          rng,
	}
}

// Rect is a room's floor area, inclusive on both corners.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the middle cell of r.
func (r Rect) Center() grid.Point { return grid.Pt((r.X1+r.X2)/2, (r.Y1+r.Y2)/2) }

// Contains reports whether cell lies inside r.
func (r Rect) Contains(cell grid.Point) bool {
	return cell.X >= r.X1 && cell.X <= r.X2 && cell.Y >= r.Y1 && cell.Y <= r.Y2
}

// Intersects reports whether r and o share any cell.
func (r Rect) Intersects(o Rect) bool {
	return r.X1 <= o.X2 && r.X2 >= o.X1 && r.Y1 <= o.Y2 && r.Y2 >= o.Y1
}

// bspLeaf is a node in the BSP tree.
type bspLeaf struct {
	X, Y, W, H  int
	left, right *bspLeaf
	room        *Rect
}

// split divides the leaf into two children, returning false when leaf is too small.
func (l *bspLeaf) split(cfg *Config) bool {
	if l.left != nil || l.right != nil {
		return false
	}
	// Horizontal when taller, vertical when wider, otherwise a coin flip.
	splitH := cfg.Rand.Intn(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		splitH = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		splitH = true
	}

	maxSize := l.H
	if !splitH {
		maxSize = l.W
	}
	lo, hi := cfg.MinLeafSize, maxSize-cfg.MinLeafSize
	if maxSize <= cfg.MinLeafSize*2 || lo >= hi {
		return false
	}
	at := lo + cfg.Rand.Intn(hi-lo+1)

	if splitH {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: l.W, H: at}
		l.right = &bspLeaf{X: l.X, Y: l.Y + at, W: l.W, H: l.H - at}
	} else {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: at, H: l.H}
		l.right = &bspLeaf{X: l.X + at, Y: l.Y, W: l.W - at, H: l.H}
	}
	return true
}

// createRooms recursively carves rooms inside terminal leaves.
func (l *bspLeaf) createRooms(gmap *gamemap.GameMap, cfg *Config, rooms *[]Rect) {
	if l.left != nil || l.right != nil {
		if l.left != nil {
			l.left.createRooms(gmap, cfg, rooms)
		}
		if l.right != nil {
			l.right.createRooms(gmap, cfg, rooms)
		}
		return
	}
	pad := cfg.RoomPadding
	minSize := cfg.MinRoomSize

	availW := max(l.W-2*pad, minSize)
	availH := max(l.H-2*pad, minSize)
	rw := min(minSize+cfg.Rand.Intn(max(1, availW-minSize+1)), l.W-2*pad)
	rh := min(minSize+cfg.Rand.Intn(max(1, availH-minSize+1)), l.H-2*pad)
	rw, rh = max(rw, 3), max(rh, 3)

	rx := max(l.X+pad+cfg.Rand.Intn(max(1, l.W-rw-2*pad+1)), 1)
	ry := max(l.Y+pad+cfg.Rand.Intn(max(1, l.H-rh-2*pad+1)), 1)
	// Keep a one-tile wall border around the map.
	if rx+rw >= gmap.Width {
		rw = gmap.Width - rx - 1
	}
	if ry+rh >= gmap.Height {
		rh = gmap.Height - ry - 1
	}
	if rw < 3 || rh < 3 {
		return
	}

	room := Rect{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	l.room = &room
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
	*rooms = append(*rooms, room)
}

// getRoom returns any room under this leaf.
func (l *bspLeaf) getRoom() *Rect {
	if l.room != nil {
		return l.room
	}
	var lRoom, rRoom *Rect
	if l.left != nil {
		lRoom = l.left.getRoom()
	}
	if l.right != nil {
		rRoom = l.right.getRoom()
	}
	if lRoom == nil {
		return rRoom
	}
	return lRoom
}

// connectChildren carves corridors between the two children of a split leaf.
func (l *bspLeaf) connectChildren(gmap *gamemap.GameMap, cfg *Config) {
	if l.left == nil || l.right == nil {
		return
	}
	l.left.connectChildren(gmap, cfg)
	l.right.connectChildren(gmap, cfg)

	lRoom, rRoom := l.left.getRoom(), l.right.getRoom()
	if lRoom == nil || rRoom == nil {
		return
	}
	carveCorridor(gmap, lRoom.Center(), rRoom.Center(), cfg)
}

// Generate builds a level. The player marker goes in the middle of the
// first room; monsters and items are scattered over the others.
func Generate(cfg *Config) (*gamemap.Layout, []Rect, error) {
	if cfg.MapWidth < 5 || cfg.MapHeight < 5 {
		return nil, nil, fmt.Errorf("%dx%d: %w", cfg.MapWidth, cfg.MapHeight, ErrTooSmall)
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(1))
	}
	gmap := gamemap.New(cfg.MapWidth, cfg.MapHeight)
	root := &bspLeaf{X: 0, Y: 0, W: cfg.MapWidth, H: cfg.MapHeight}

	leaves := []*bspLeaf{root}
	for splitAny := true; splitAny; {
		splitAny = false
		var next []*bspLeaf
		for _, leaf := range leaves {
			if leaf.left != nil || leaf.right != nil {
				next = append(next, leaf.left, leaf.right)
				continue
			}
			if leaf.W > cfg.MaxLeafSize || leaf.H > cfg.MaxLeafSize || cfg.Rand.Float64() > 0.25 {
				if leaf.split(cfg) {
					next = append(next, leaf.left, leaf.right)
					splitAny = true
					continue
				}
			}
			next = append(next, leaf)
		}
		leaves = next
	}

	var rooms []Rect
	root.createRooms(gmap, cfg, &rooms)
	if len(rooms) == 0 {
		return nil, nil, ErrNoRooms
	}
	root.connectChildren(gmap, cfg)
	placeDoors(gmap, rooms, cfg)
	priceTiles(gmap, cfg.MoveCost)

	return &gamemap.Layout{Map: gmap, Markers: populate(gmap, rooms, cfg)}, rooms, nil
}

func priceTiles(gmap *gamemap.GameMap, cost int) {
	if cost <= 0 {
		cost = gamemap.DefaultCost
	}
	for y := range gmap.Height {
		for x := range gmap.Width {
			gmap.At(x, y).Cost = cost
		}
	}
}
