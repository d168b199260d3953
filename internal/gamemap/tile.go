package gamemap

// TileKind identifies the type of a map tile.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileDoorClosed
	TileDoorOpen
)

// Tile holds the terrain facts for one map cell.
type Tile struct {
	Kind        TileKind
	Walkable    bool
	Transparent bool
	Cost        int // energy to step onto this tile
}

// MakeWall returns a blocking, opaque wall tile.
func MakeWall() Tile {
	return Tile{Kind: TileWall, Walkable: false, Transparent: false, Cost: DefaultCost}
}

// MakeFloor returns a passable, transparent floor tile.
func MakeFloor() Tile {
	return Tile{Kind: TileFloor, Walkable: true, Transparent: true, Cost: DefaultCost}
}

// MakeClosedDoor returns a door that blocks movement and sight until opened.
func MakeClosedDoor() Tile {
	return Tile{Kind: TileDoorClosed, Walkable: false, Transparent: false, Cost: DefaultCost}
}

// MakeOpenDoor returns a door that behaves like floor.
func MakeOpenDoor() Tile {
	return Tile{Kind: TileDoorOpen, Walkable: true, Transparent: true, Cost: DefaultCost}
}

// Resistance is the light resistance used as field-of-view input:
// 1 fully blocks light, 0 lets it through.
func (t Tile) Resistance() float64 {
	if t.Transparent {
		return 0
	}
	return 1
}
