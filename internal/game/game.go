// Package game is the interactive demo around a sim.Sim: it turns keys and
// mouse events into awaited moves and draws each frame with render.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/factory"
	"roguecore/internal/grid"
	"roguecore/internal/logging"
	"roguecore/internal/render"
	"roguecore/internal/sim"
	"roguecore/internal/system"
)

// DefaultFrame is how long one walk step is shown.
const DefaultFrame = 60 * time.Millisecond

// Game is the top-level orchestrator of the demo.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	sim      *sim.Sim
	frame    time.Duration
	logger   logrus.FieldLogger

	hoverCell grid.Point
	hovering  bool
	ordered   bool
	quit      bool
}

// New wraps an initialised screen around s. logger may be nil.
func New(screen tcell.Screen, s *sim.Sim, theme render.Theme, logger logrus.FieldLogger) *Game {
	if logger == nil {
		logger = logging.Discard()
	}
	screen.EnableMouse()
	return &Game{
		screen:   screen,
		renderer: render.NewRenderer(screen, theme),
		sim:      s,
		frame:    DefaultFrame,
		logger:   logger,
	}
}

// SetFrame changes the walk animation period.
func (g *Game) SetFrame(d time.Duration) {
	if d > 0 {
		g.frame = d
	}
}

// Done reports whether the player asked to quit.
func (g *Game) Done() bool { return g.quit }

// Busy reports whether the next frame has a turn to resolve.
func (g *Game) Busy() bool { return g.ordered || g.sim.Walking() }

// Run draws and reads input until the player quits, the screen closes or
// ctx is cancelled. The caller owns the screen and calls Fini.
func (g *Game) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 32)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		defer close(events)
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(g.frame)
	defer ticker.Stop()

	g.Draw()
	for !g.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return ctx.Err()
			}
			g.HandleEvent(ev)
			g.Draw()
		case <-ticker.C:
			if g.Busy() {
				g.Frame()
				g.Draw()
			}
		}
	}
	return nil
}

// HandleEvent applies one input event. Nothing advances until Frame.
func (g *Game) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		g.renderer.Resize()
	case *tcell.EventKey:
		g.handleAction(keyToAction(ev))
	case *tcell.EventMouse:
		sx, sy := ev.Position()
		cell, ok := g.renderer.CellAt(sx, sy)
		g.hoverCell, g.hovering = cell, ok
		if ok && ev.Buttons()&tcell.Button1 != 0 {
			g.walkTo(cell)
		}
	}
}

func (g *Game) handleAction(a Action) {
	switch a {
	case ActionQuit:
		g.quit = true
	case ActionCancel:
		g.sim.CancelWalk()
	case ActionWait:
		g.sim.CancelWalk()
		g.sim.Order(grid.Wait)
		g.ordered = true
	case ActionPickup:
		g.pickUp()
	default:
		d, ok := actionToDirection(a)
		if !ok {
			return
		}
		g.sim.CancelWalk()
		g.sim.Enqueue(g.sim.PlayerCell().Add(d))
	}
}

// walkTo replaces any walk in progress with the prescanned path to cell.
// Cancelling first rescans from where the player stands now.
func (g *Game) walkTo(cell grid.Point) {
	g.sim.CancelWalk()
	path := g.sim.PrescannedPathTo(cell)
	if len(path) == 0 {
		return
	}
	g.sim.Enqueue(path...)
	g.logger.WithFields(logrus.Fields{"target": cell, "steps": len(path)}).Debug("walk queued")
}

func (g *Game) pickUp() {
	w, player := g.sim.World, g.sim.Player
	for _, item := range factory.ItemsAt(w, g.sim.Map, g.sim.PlayerCell()) {
		if factory.PickUp(w, player, item) {
			g.logger.WithField("item", item).Debug("picked up")
		}
	}
}

// Frame resolves one turn when there is something to do.
func (g *Game) Frame() (system.Report, bool) {
	if !g.Busy() {
		return system.Report{}, false
	}
	g.ordered = false
	return g.sim.Tick(), true
}

// Draw renders the current state and shows it.
func (g *Game) Draw() {
	s := g.sim
	g.renderer.CenterOn(s.PlayerCell())

	path := s.Pending()
	if len(path) == 0 && g.hovering {
		path = s.PrescannedPathTo(g.hoverCell)
	}
	g.renderer.DrawFrame(s.World, s.Map, s, path)
	g.renderer.DrawHUD(g.status(), s.Messages(render.HUDRows-2))
}

func (g *Game) status() string {
	w, player := g.sim.World, g.sim.Player
	energy, _ := ecs.GetAs[component.Energy](w, player, component.CEnergy)
	inv, _ := ecs.GetAs[component.Inventory](w, player, component.CInventory)
	cell := g.sim.PlayerCell()
	return fmt.Sprintf("(%d,%d)  energy:%d  items:%d  queued:%d  scans:%d",
		cell.X, cell.Y, energy.Current, len(inv.Items), len(g.sim.Pending()), g.sim.Scans())
}
