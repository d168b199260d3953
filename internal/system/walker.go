package system

import (
	"context"
	"slices"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"

	"roguecore/internal/action"
	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/grid"
	"roguecore/internal/logging"
)

// Walker states and events.
const (
	StateIdle    = "idle"
	StateWalking = "walking"

	eventStart  = "start"
	eventArrive = "arrive"
	eventCancel = "cancel"
)

// Walker drains a queue of awaited cells for the vantage entity, one Move
// per Step. The prescan is rebuilt around the vantage entity each time the
// queue runs dry and at no other point.
type Walker struct {
	env     *action.Env
	sched   *Scheduler
	vis     *Visibility
	scan    *Prescan
	vantage ecs.EntityID
	limit   int

	queue   []grid.Point
	machine *fsm.FSM
	logger  logrus.FieldLogger
}

// NewWalker wires a walker for vantage. limit is the prescan bound used
// whenever the queue empties. logger may be nil.
func NewWalker(env *action.Env, sched *Scheduler, vis *Visibility, scan *Prescan,
	vantage ecs.EntityID, limit int, logger logrus.FieldLogger) *Walker {
	if logger == nil {
		logger = logging.Discard()
	}
	wk := &Walker{env: env, sched: sched, vis: vis, scan: scan, vantage: vantage, limit: limit, logger: logger}
	wk.machine = fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: eventStart, Src: []string{StateIdle}, Dst: StateWalking},
			{Name: eventArrive, Src: []string{StateWalking}, Dst: StateIdle},
			{Name: eventCancel, Src: []string{StateWalking}, Dst: StateIdle},
		},
		fsm.Callbacks{
			"enter_" + StateIdle: func(_ context.Context, e *fsm.Event) {
				wk.logger.WithField("event", e.Event).Debug("walk finished")
				wk.Rescan()
			},
		},
	)
	return wk
}

// State returns "idle" or "walking".
func (wk *Walker) State() string { return wk.machine.Current() }

// Walking reports whether awaited cells remain.
func (wk *Walker) Walking() bool { return wk.machine.Is(StateWalking) }

// Pending returns a copy of the awaited cells, next first.
func (wk *Walker) Pending() []grid.Point { return slices.Clone(wk.queue) }

// Enqueue appends cells to the awaited queue.
func (wk *Walker) Enqueue(cells ...grid.Point) {
	if len(cells) == 0 {
		return
	}
	wk.queue = append(wk.queue, cells...)
	if wk.machine.Can(eventStart) {
		_ = wk.machine.Event(context.Background(), eventStart)
	}
}

// Cancel drops the remaining queue along with any step still waiting in the
// vantage entity's slot. Like running out of cells, it triggers a rescan.
func (wk *Walker) Cancel() {
	wk.queue = nil
	if wk.machine.Can(eventCancel) {
		action.Clear(wk.env.World, wk.vantage)
		_ = wk.machine.Event(context.Background(), eventCancel)
	}
}

// Rescan reseeds the prescan at the vantage entity's cell, bounded by the
// current blockage.
func (wk *Walker) Rescan() {
	pos, ok := ecs.GetAs[component.Position](wk.env.World, wk.vantage, component.CPosition)
	if !ok {
		return
	}
	wk.scan.SetGoal(pos.Cell())
	wk.scan.Rescan(wk.limit, wk.vis.Blockage())
}

// Step advances the vantage entity toward the next awaited cell and drains
// it. A deferred step leaves the cell queued for the next call. A cell that
// is not one step away in the map's direction set cancels the rest of the
// walk. ok is false when there was nothing to drain.
func (wk *Walker) Step() (rep Report, ok bool) {
	if len(wk.queue) == 0 {
		return Report{Idle: true}, false
	}
	next := wk.queue[0]

	w := wk.env.World
	pos, found := ecs.GetAs[component.Position](w, wk.vantage, component.CPosition)
	if !found || pos.Map == nil {
		wk.Cancel()
		return Report{Idle: true}, true
	}
	d, adjacent := grid.Toward(pos.Cell(), next)
	if !adjacent || d == grid.Wait || !slices.Contains(pos.Map.Directions(), d) {
		wk.logger.WithFields(logrus.Fields{"at": pos.Cell().String(), "next": next.String()}).Debug("walk interrupted")
		wk.Cancel()
		return Report{Outcome: action.Blocked}, true
	}

	action.Assign(w, wk.vantage, action.NewMove(wk.env, wk.vantage, d))
	rep = wk.sched.Advance(wk.vantage)
	wk.vis.Sync(w, wk.vantage)
	if rep.Outcome == action.Deferred {
		return rep, true
	}

	wk.queue = wk.queue[1:]
	if len(wk.queue) == 0 && wk.machine.Can(eventArrive) {
		_ = wk.machine.Event(context.Background(), eventArrive)
	}
	return rep, true
}
