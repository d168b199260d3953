package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"roguecore/internal/gamemap"
)

// Theme holds the glyphs and colors used to draw terrain. Lit cells are
// shaded between Dim and their full color by the light falloff; cells that
// were seen once but are dark now use Remembered.
type Theme struct {
	Wall       string
	Floor      string
	DoorClosed string
	DoorOpen   string

	WallColor  tcell.Color
	FloorColor tcell.Color
	DoorColor  tcell.Color
	Remembered tcell.Color
	Path       tcell.Color
}

// ASCII is the default single-column theme.
var ASCII = Theme{
	Wall:       "#",
	Floor:      ".",
	DoorClosed: "+",
	DoorOpen:   "/",
	WallColor:  tcell.ColorSilver,
	FloorColor: tcell.ColorOlive,
	DoorColor:  tcell.ColorOrange,
	Remembered: tcell.ColorDimGray,
	Path:       tcell.ColorTeal,
}

// Emoji draws terrain with double-width glyphs. Terminals color emoji
// themselves, so here shading only shows on the background.
var Emoji = Theme{
	Wall:       "🧱",
	Floor:      "🟫",
	DoorClosed: "🚪",
	DoorOpen:   "🔲",
	WallColor:  tcell.ColorSilver,
	FloorColor: tcell.ColorOlive,
	DoorColor:  tcell.ColorOrange,
	Remembered: tcell.ColorDimGray,
	Path:       tcell.ColorTeal,
}

// CellWidth is the widest terrain glyph in terminal columns.
func (t Theme) CellWidth() int {
	w := 1
	for _, g := range []string{t.Wall, t.Floor, t.DoorClosed, t.DoorOpen} {
		w = max(w, runewidth.StringWidth(g))
	}
	return w
}

func (t Theme) glyph(kind gamemap.TileKind) (string, tcell.Color) {
	switch kind {
	case gamemap.TileWall:
		return t.Wall, t.WallColor
	case gamemap.TileDoorClosed:
		return t.DoorClosed, t.DoorColor
	case gamemap.TileDoorOpen:
		return t.DoorOpen, t.DoorColor
	}
	return t.Floor, t.FloorColor
}

// dimmest fraction of full brightness a lit cell is drawn with.
const minShade = 0.35

// shade scales c toward black by the light value in [0, 1].
func shade(c tcell.Color, light float64) tcell.Color {
	f := minShade + (1-minShade)*min(max(light, 0), 1)
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(float64(r)*f), int32(float64(g)*f), int32(float64(b)*f))
}
