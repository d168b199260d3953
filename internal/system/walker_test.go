package system

import (
	"math/rand"
	"testing"

	"roguecore/internal/action"
	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/eventlog"
	"roguecore/internal/gamemap"
	"roguecore/internal/grid"
)

type walkFixture struct {
	env    *action.Env
	gmap   *gamemap.GameMap
	hero   ecs.EntityID
	vis    *Visibility
	scan   *Prescan
	walker *Walker
}

func newWalkFixture(gmap *gamemap.GameMap, start grid.Point) *walkFixture {
	env := &action.Env{World: ecs.NewWorld(), Log: eventlog.NewMessageLog(0, nil)}
	w := env.World
	hero := w.CreateEntity()
	component.Place(w, hero, gmap, start)
	w.Add(hero, component.Energy{Current: 100})
	w.Add(hero, component.Active{})
	w.Add(hero, component.TagPlayer{})
	w.Add(hero, action.Slot{})
	w.Add(hero, component.Vision{Radius: 9, Location: start})

	sched := NewScheduler(env, rand.New(rand.NewSource(1)), DefaultMaxRewrites, nil)
	vis := NewVisibility(gmap, 9, nil)
	vis.Sync(w, hero)
	scan := NewPrescan(gmap, Manhattan, nil)
	return &walkFixture{
		env:    env,
		gmap:   gmap,
		hero:   hero,
		vis:    vis,
		scan:   scan,
		walker: NewWalker(env, sched, vis, scan, hero, 13, nil),
	}
}

func (f *walkFixture) cell() grid.Point {
	pos, _ := ecs.GetAs[component.Position](f.env.World, f.hero, component.CPosition)
	return pos.Cell()
}

func TestWalkerRescansOnlyWhenQueueEmpties(t *testing.T) {
	f := newWalkFixture(openMap(20, 20), grid.Pt(5, 5))
	f.walker.Rescan()
	before := f.scan.Scans()

	f.walker.Enqueue(grid.Pt(6, 5), grid.Pt(7, 5))
	if f.walker.State() != StateWalking {
		t.Fatalf("state = %q, want walking", f.walker.State())
	}

	rep, ok := f.walker.Step()
	if !ok || rep.Outcome != action.Success || f.cell() != grid.Pt(6, 5) {
		t.Fatalf("first step: %+v ok=%v at %v", rep, ok, f.cell())
	}
	if f.scan.Scans() != before {
		t.Fatal("no rescan may happen mid-queue")
	}

	f.walker.Step()
	if f.cell() != grid.Pt(7, 5) {
		t.Fatalf("second step landed at %v", f.cell())
	}
	if f.scan.Scans() != before+1 {
		t.Fatalf("Scans = %d, want exactly one more than %d", f.scan.Scans(), before)
	}
	if f.scan.Goal() != grid.Pt(7, 5) {
		t.Fatalf("goal = %v, want the new position", f.scan.Goal())
	}
	if f.walker.State() != StateIdle {
		t.Fatalf("state = %q, want idle", f.walker.State())
	}
}

func TestWalkerSyncsVisibility(t *testing.T) {
	f := newWalkFixture(openMap(20, 20), grid.Pt(5, 5))
	f.walker.Enqueue(grid.Pt(5, 6))
	f.walker.Step()
	if f.vis.Origin() != grid.Pt(5, 6) {
		t.Fatalf("visibility origin = %v, want (5,6)", f.vis.Origin())
	}
	vision, _ := ecs.GetAs[component.Vision](f.env.World, f.hero, component.CVision)
	if vision.Location != grid.Pt(5, 6) {
		t.Fatalf("vision location = %v", vision.Location)
	}
}

func TestWalkerFollowsPrescannedPath(t *testing.T) {
	f := newWalkFixture(openMap(20, 20), grid.Pt(5, 5))
	f.walker.Rescan()
	before := f.scan.Scans()

	target := grid.Pt(8, 7)
	path := f.scan.PathTo(target)
	if len(path) != 5 {
		t.Fatalf("path = %v, want 5 steps", path)
	}
	f.walker.Enqueue(path...)

	steps := 0
	for {
		if _, ok := f.walker.Step(); !ok {
			break
		}
		steps++
	}
	if steps != len(path) || f.cell() != target {
		t.Fatalf("walked %d steps to %v, want %d to %v", steps, f.cell(), len(path), target)
	}
	if f.scan.Scans() != before+1 {
		t.Fatalf("Scans = %d, want %d", f.scan.Scans(), before+1)
	}
}

func TestWalkerCancelsOnNonAdjacentCell(t *testing.T) {
	f := newWalkFixture(openMap(20, 20), grid.Pt(5, 5))
	before := f.scan.Scans()
	f.walker.Enqueue(grid.Pt(6, 5), grid.Pt(9, 9), grid.Pt(10, 9))

	f.walker.Step()
	rep, ok := f.walker.Step()
	if !ok || rep.Outcome != action.Blocked {
		t.Fatalf("interrupted step = %+v ok=%v", rep, ok)
	}
	if len(f.walker.Pending()) != 0 || f.walker.Walking() {
		t.Fatal("the rest of the walk should be dropped")
	}
	if f.cell() != grid.Pt(6, 5) {
		t.Fatalf("hero at %v, want (6,5)", f.cell())
	}
	if f.scan.Scans() != before+1 {
		t.Fatal("cancelling empties the queue and rescans once")
	}
}

func TestWalkerDoorInterruptsPath(t *testing.T) {
	gmap := openMap(20, 20)
	gmap.Set(6, 5, gamemap.MakeClosedDoor())
	f := newWalkFixture(gmap, grid.Pt(5, 5))
	f.walker.Enqueue(grid.Pt(6, 5), grid.Pt(7, 5))

	f.walker.Step()
	if gmap.At(6, 5).Kind != gamemap.TileDoorOpen || f.cell() != grid.Pt(5, 5) {
		t.Fatal("bumping the door should open it without moving")
	}
	f.walker.Step()
	if f.walker.Walking() || f.cell() != grid.Pt(5, 5) {
		t.Fatal("the next cell is two away, so the walk stops")
	}
}

func TestWalkerIdle(t *testing.T) {
	f := newWalkFixture(openMap(5, 5), grid.Pt(2, 2))
	if rep, ok := f.walker.Step(); ok || !rep.Idle {
		t.Fatalf("Step with nothing queued = %+v, %v", rep, ok)
	}
	f.walker.Enqueue()
	if f.walker.Walking() {
		t.Fatal("enqueueing nothing does not start a walk")
	}
	if f.scan.Scans() != 0 {
		t.Fatal("idle walker never rescans")
	}
}

func TestWalkerAcrossTwoMovesRescansOnce(t *testing.T) {
	f := newWalkFixture(openMap(20, 20), grid.Pt(5, 5))
	f.walker.Enqueue(grid.Pt(5, 4))
	f.walker.Enqueue(grid.Pt(5, 3))
	f.walker.Step()
	f.walker.Step()
	if f.scan.Scans() != 1 {
		t.Fatalf("Scans = %d, want 1", f.scan.Scans())
	}
}

func TestWalkerDeferredStepKeepsItsCell(t *testing.T) {
	f := newWalkFixture(openMap(20, 20), grid.Pt(5, 5))
	w := f.env.World
	w.Add(f.hero, component.Energy{Current: gamemap.DefaultCost})
	f.walker.Enqueue(grid.Pt(6, 5), grid.Pt(7, 5), grid.Pt(8, 5))

	if rep, _ := f.walker.Step(); rep.Outcome != action.Success {
		t.Fatalf("first step = %+v", rep)
	}
	rep, _ := f.walker.Step()
	if rep.Outcome != action.Deferred || f.cell() != grid.Pt(6, 5) {
		t.Fatalf("unaffordable step = %+v at %v", rep, f.cell())
	}
	if got := f.walker.Pending(); len(got) != 2 || got[0] != grid.Pt(7, 5) {
		t.Fatalf("pending = %v, the deferred cell stays at the head", got)
	}

	w.Add(f.hero, component.Energy{Current: 2 * gamemap.DefaultCost})
	for f.walker.Walking() {
		if rep, _ := f.walker.Step(); rep.Outcome != action.Success {
			t.Fatalf("refuelled step = %+v", rep)
		}
	}
	if f.cell() != grid.Pt(8, 5) {
		t.Fatalf("hero at %v, want (8,5)", f.cell())
	}
	if act, ok := action.PendingOf(w, f.hero); ok {
		t.Fatalf("slot still holds %v after the walk", act)
	}
}

func TestWalkerCancelClearsWaitingStep(t *testing.T) {
	f := newWalkFixture(openMap(20, 20), grid.Pt(5, 5))
	w := f.env.World
	w.Add(f.hero, component.Energy{})
	f.walker.Enqueue(grid.Pt(6, 5), grid.Pt(7, 5))

	if rep, _ := f.walker.Step(); rep.Outcome != action.Deferred {
		t.Fatalf("step = %+v", rep)
	}
	f.walker.Cancel()
	if act, ok := action.PendingOf(w, f.hero); ok {
		t.Fatalf("cancelled walk left %v in the slot", act)
	}

	w.Add(f.hero, component.Energy{Current: 100})
	f.walker.sched.Advance(f.hero)
	if f.cell() != grid.Pt(5, 5) {
		t.Fatalf("hero drifted to %v after the walk was cancelled", f.cell())
	}
}
