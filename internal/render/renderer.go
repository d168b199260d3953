// Package render draws a simulation onto a tcell screen. It only reads: the
// map, the entities and whatever View reports about the player's sight.
package render

import (
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/gamemap"
	"roguecore/internal/grid"
)

// HUDRows is the number of rows reserved under the map.
const HUDRows = 5

// View is what the renderer needs to know about the player's sight.
type View interface {
	IsVisible(cell grid.Point) bool
	IsSeenEver(cell grid.Point) bool
	Light(cell grid.Point) float64
}

// Renderer draws the world onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	theme  Theme
}

// NewRenderer creates a Renderer for screen using theme.
func NewRenderer(screen tcell.Screen, theme Theme) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(grid.Point{}, w, max(h-HUDRows, 1), theme.CellWidth()),
		theme:  theme,
	}
}

// Resize refits the viewport after the terminal changed size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth, r.camera.ViewHeight = w, max(h-HUDRows, 1)
}

// CenterOn recenters the camera on cell.
func (r *Renderer) CenterOn(cell grid.Point) { r.camera.Center(cell) }

// WorldToScreen converts cell to screen coordinates. visible is false when
// the cell falls outside the viewport.
func (r *Renderer) WorldToScreen(cell grid.Point) (sx, sy int, visible bool) {
	return r.camera.WorldToScreen(cell)
}

// CellAt returns the map cell drawn at screen (sx, sy). ok is false for
// positions in the HUD.
func (r *Renderer) CellAt(sx, sy int) (grid.Point, bool) {
	if sy < 0 || sy >= r.camera.ViewHeight {
		return grid.Point{}, false
	}
	return r.camera.ScreenToWorld(sx, sy), true
}

// DrawFrame renders terrain, the highlighted path and then entities. It
// does not call Show.
func (r *Renderer) DrawFrame(w *ecs.World, gmap *gamemap.GameMap, view View, path []grid.Point) {
	r.screen.Clear()
	r.drawMap(gmap, view)
	r.drawPath(view, path)
	r.drawEntities(w, gmap, view)
}

// drawMap renders every seen tile, shaded by light when visible.
func (r *Renderer) drawMap(gmap *gamemap.GameMap, view View) {
	for y := range gmap.Height {
		for x := range gmap.Width {
			cell := grid.Pt(x, y)
			visible := view.IsVisible(cell)
			if !visible && !view.IsSeenEver(cell) {
				continue
			}
			sx, sy, onScreen := r.camera.WorldToScreen(cell)
			if !onScreen {
				continue
			}
			glyph, color := r.theme.glyph(gmap.At(x, y).Kind)
			if visible {
				color = shade(color, view.Light(cell))
			} else {
				color = r.theme.Remembered
			}
			r.putGlyph(sx, sy, glyph, tcell.StyleDefault.Foreground(color).Background(tcell.ColorBlack))
		}
	}
}

// drawPath paints the background of each path cell the player knows about.
func (r *Renderer) drawPath(view View, path []grid.Point) {
	for _, cell := range path {
		if !view.IsSeenEver(cell) {
			continue
		}
		sx, sy, onScreen := r.camera.WorldToScreen(cell)
		if !onScreen {
			continue
		}
		for col := range r.camera.CellWidth {
			mainc, combc, style, _ := r.screen.GetContent(sx+col, sy)
			r.screen.SetContent(sx+col, sy, mainc, combc, style.Background(r.theme.Path))
		}
	}
}

// renderableEntity holds sorting info for entity rendering.
type renderableEntity struct {
	id    ecs.EntityID
	order int
	pos   component.Position
	rend  component.Renderable
}

// drawEntities renders every visible entity with Renderable and Position,
// lowest RenderOrder first.
func (r *Renderer) drawEntities(w *ecs.World, gmap *gamemap.GameMap, view View) {
	ids := w.Query(component.CRenderable, component.CPosition)
	entities := make([]renderableEntity, 0, len(ids))

	for _, id := range ids {
		pos, _ := ecs.GetAs[component.Position](w, id, component.CPosition)
		rend, _ := ecs.GetAs[component.Renderable](w, id, component.CRenderable)
		if pos.Map != gmap || !view.IsVisible(pos.Cell()) {
			continue
		}
		entities = append(entities, renderableEntity{id: id, order: rend.RenderOrder, pos: pos, rend: rend})
	}

	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].order < entities[j].order
	})

	for _, e := range entities {
		sx, sy, onScreen := r.camera.WorldToScreen(e.pos.Cell())
		if !onScreen {
			continue
		}
		_, _, under, _ := r.screen.GetContent(sx, sy)
		_, bg, _ := under.Decompose()
		r.putGlyph(sx, sy, e.rend.Glyph, tcell.StyleDefault.Foreground(e.rend.FGColor).Background(bg))
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen
// position (x, y) and pads it out to the camera's cell width.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	for col := max(runewidth.StringWidth(glyph), 1); col < r.camera.CellWidth; col++ {
		r.screen.SetContent(x+col, y, ' ', nil, style)
	}
}
